// Package event injects exogenous life and market shocks into the monthly
// simulation. Events are optionally narrated by an external generator; when
// the generator is absent, slow or broken the month simply passes without
// an event.
package event

import (
	"context"

	"github.com/rustyeddy/decade/game"
)

// Impact tags how an event moves the stock market.
type Impact string

const (
	ImpactBull    Impact = "bull"
	ImpactBear    Impact = "bear"
	ImpactNeutral Impact = "neutral"
)

// Event is the structured record a narrative generator returns.
type Event struct {
	Description string `json:"description"`
	CashImpact  int    `json:"cashImpact"`
	Impact      Impact `json:"marketImpact"`
}

// JobSummary is the slice of career state a generator may see.
type JobSummary struct {
	Title    string
	Category game.JobCategory
}

// Request carries the player context a generator tailors its event to.
type Request struct {
	Year      int
	Job       *JobSummary
	NetWorth  float64
	Education string
	Courses   []string
	Language  string
}

// Generator produces one structured event, or nil for "nothing happened".
// Implementations must honor ctx cancellation; any error is treated by the
// caller exactly like a nil event.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Event, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, req Request) (*Event, error)

func (f GeneratorFunc) Generate(ctx context.Context, req Request) (*Event, error) {
	return f(ctx, req)
}
