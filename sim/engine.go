// Package sim owns the game loop: one Engine per running game, advancing a
// single immutable snapshot month by month and applying player actions
// between months.
package sim

import (
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/rustyeddy/decade/event"
	"github.com/rustyeddy/decade/game"
	"github.com/rustyeddy/decade/internal/id"
	"github.com/rustyeddy/decade/journal"
)

// Source yields uniform randoms in [0, 1). Injected so tests can replay
// fixed sequences through the market and the event injector.
type Source interface {
	Float64() float64
}

// Engine is the simulation orchestrator. The current snapshot is the only
// shared resource: it is replaced wholesale on every commit and never
// mutated in place, so a reader always observes a consistent state.
type Engine struct {
	mu    sync.Mutex
	busy  bool // a month advance is in flight
	state *game.State

	rnd      Source
	injector *event.Injector
	journal  journal.Journal
	log      *slog.Logger
	language string
}

func NewEngine(j journal.Journal, inj *event.Injector, logger *slog.Logger) *Engine {
	if j == nil {
		j = journal.Noop{}
	}
	if inj == nil {
		inj = event.NewInjector(nil, 0, logger)
	}
	if logger == nil {
		logger = slog.Default()
	}

	e := &Engine{
		state:    game.NewState(),
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
		injector: inj,
		journal:  j,
		log:      logger,
		language: "English",
	}

	e.state.PushMessage(id.New(), "Welcome! Your goal is to maximize wealth in 10 years.", game.SeverityInfo)
	if !inj.Narrated() {
		e.state.PushMessage(id.New(), "AI narrator disabled. Narrated events will be skipped.", game.SeverityDanger)
	}
	return e
}

// SetRand replaces the random source. Intended for deterministic tests and
// replays; call before the first advance.
func (e *Engine) SetRand(rnd Source) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rnd = rnd
}

// SetLanguage sets the tag passed through to the narrative generator.
func (e *Engine) SetLanguage(lang string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.language = lang
}

// Restore replaces the whole snapshot, e.g. when loading a saved game.
func (e *Engine) Restore(st *game.State) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = st.Clone()
}

// State returns a deep copy of the current snapshot. Callers may keep or
// mutate it freely without affecting the running game.
func (e *Engine) State() *game.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

// Rank is the current standing label for the player's net worth.
func (e *Engine) Rank() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return game.Rank(e.state.NetWorth)
}

// actionableLocked rejects actions while the game is over or a month
// advance is in flight. Callers hold e.mu.
func (e *Engine) actionableLocked() error {
	if e.busy {
		return game.ErrTickInFlight
	}
	if e.state.GameOver {
		return game.ErrGameOver
	}
	return nil
}

// commitLocked publishes a new snapshot. Net worth is re-derived on every
// commit so it is never stored stale; `added` is how many messages the
// mutation pushed, which are forwarded to the journal (best effort).
func (e *Engine) commitLocked(st *game.State, added int) {
	st.NetWorth = st.ComputeNetWorth()
	e.state = st

	if added > len(st.Messages) {
		added = len(st.Messages)
	}
	for i := added - 1; i >= 0; i-- {
		m := st.Messages[i]
		rec := journal.MessageRecord{ID: m.ID, Month: st.GameMonth, Severity: string(m.Severity), Text: m.Text}
		if err := e.journal.RecordMessage(rec); err != nil {
			e.log.Warn("journal message failed", "err", err)
		}
	}
}
