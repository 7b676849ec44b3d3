package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/decade/game"
)

// constSource always yields the same value. 0.5 lands every roll in the
// quiet zone: no rate drift, no score jitter, no events.
type constSource struct{ v float64 }

func (c constSource) Float64() float64 { return c.v }

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e := NewEngine(nil, nil, nil)
	e.SetRand(constSource{0.5})
	return e
}

func TestNewEngineDefaults(t *testing.T) {
	e := newTestEngine(t)
	st := e.State()

	assert.Equal(t, 5000.0, st.Cash)
	assert.Equal(t, 650, st.CreditScore)
	assert.Equal(t, 0, st.GameMonth)
	assert.False(t, st.GameOver)
	assert.Nil(t, st.CurrentJob)
	assert.Equal(t, game.IntensityNormal, st.Intensity)

	require.Len(t, st.History, 1)
	assert.Equal(t, 0, st.History[0].Month)
	assert.Equal(t, 5000.0, st.History[0].NetWorth)

	// Welcome message plus the narrator-disabled warning.
	require.Len(t, st.Messages, 2)
	assert.Equal(t, game.SeverityDanger, st.Messages[0].Severity)
}

func TestStateReturnsIndependentCopy(t *testing.T) {
	e := newTestEngine(t)

	st := e.State()
	st.Cash = -1
	st.Instruments[0].Price = 0
	st.Experience[game.CategoryTech] = 99

	fresh := e.State()
	assert.Equal(t, 5000.0, fresh.Cash)
	assert.NotEqual(t, 0.0, fresh.Instruments[0].Price)
	assert.Zero(t, fresh.Experience[game.CategoryTech])
}

func TestRestore(t *testing.T) {
	e := newTestEngine(t)

	st := game.NewState()
	st.Cash = 123456
	st.GameMonth = 42
	e.Restore(st)

	got := e.State()
	assert.Equal(t, 123456.0, got.Cash)
	assert.Equal(t, 42, got.GameMonth)

	// The engine cloned the argument.
	st.Cash = 0
	assert.Equal(t, 123456.0, e.State().Cash)
}

func TestRank(t *testing.T) {
	e := newTestEngine(t)
	assert.Equal(t, "Survivor", e.Rank())

	st := game.NewState()
	st.Cash = 2_000_000
	st.NetWorth = st.ComputeNetWorth()
	e.Restore(st)
	assert.Equal(t, "Millionaire", e.Rank())
}
