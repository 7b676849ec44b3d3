package event

import (
	"context"
	"log/slog"
	"time"

	"github.com/rustyeddy/decade/game"
)

// Source yields uniform randoms in [0, 1).
type Source interface {
	Float64() float64
}

const (
	// BurnoutPenalty is the medical bill charged when hard work backfires.
	BurnoutPenalty = 2000

	baseChance    = 0.1
	hardChance    = 0.2
	burnoutChance = 0.3

	// DefaultTimeout bounds the single suspension point in a tick: the
	// generator either answers in time or the event is skipped.
	DefaultTimeout = 15 * time.Second
)

// Outcome is what one monthly roll produced. At most one of Burnout or
// Event is set; both unset means nothing happened.
type Outcome struct {
	Burnout bool
	Event   *Event
}

// Injector rolls once per month and consults the generator when an event
// fires. A nil generator disables narrated events entirely.
type Injector struct {
	gen     Generator
	timeout time.Duration
	log     *slog.Logger
}

func NewInjector(gen Generator, timeout time.Duration, logger *slog.Logger) *Injector {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Injector{gen: gen, timeout: timeout, log: logger}
}

// Narrated reports whether a generator is wired in at all.
func (inj *Injector) Narrated() bool { return inj.gen != nil }

// Roll decides whether anything happens this month. Hard work doubles the
// event chance and risks burnout, which never consults the generator.
// Generator failures degrade to an empty outcome, never an error.
func (inj *Injector) Roll(ctx context.Context, rnd Source, intensity game.Intensity, req Request) Outcome {
	chance := baseChance
	if intensity == game.IntensityHard {
		chance = hardChance
	}
	if rnd.Float64() >= chance {
		return Outcome{}
	}

	if intensity == game.IntensityHard && rnd.Float64() < burnoutChance {
		return Outcome{Burnout: true}
	}

	if inj.gen == nil {
		return Outcome{}
	}

	ctx, cancel := context.WithTimeout(ctx, inj.timeout)
	defer cancel()

	evt, err := inj.gen.Generate(ctx, req)
	if err != nil {
		inj.log.Info("event generator unavailable, skipping", "err", err)
		return Outcome{}
	}
	if evt == nil {
		return Outcome{}
	}

	switch evt.Impact {
	case ImpactBull, ImpactBear, ImpactNeutral:
	default:
		evt.Impact = ImpactNeutral
	}
	return Outcome{Event: evt}
}
