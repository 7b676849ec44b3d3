package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/decade/config"
	"github.com/rustyeddy/decade/game"
	"github.com/rustyeddy/decade/sim"
)

type fixedSource struct{ v float64 }

func (f fixedSource) Float64() float64 { return f.v }

func newTestServer(t *testing.T) (*Server, *sim.Engine) {
	t.Helper()
	engine := sim.NewEngine(nil, nil, nil)
	engine.SetRand(fixedSource{0.5})
	return New(config.ServerConfig{Addr: ":0"}, nil, engine), engine
}

func do(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeState(t *testing.T, rec *httptest.ResponseRecorder) game.State {
	t.Helper()
	var st game.State
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	return st
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetState(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/v1/state", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	st := decodeState(t, rec)
	assert.Equal(t, 5000.0, st.Cash)
	assert.Equal(t, 0, st.GameMonth)
}

func TestAdvance(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/v1/advance", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	st := decodeState(t, rec)
	assert.Equal(t, 1, st.GameMonth)
	assert.Equal(t, 4200.0, st.Cash)
}

func TestOrderBuyAndSell(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/v1/orders", map[string]any{
		"symbol": "GOLD", "side": "buy", "quantity": 1.0,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	st := decodeState(t, rec)
	instr, ok := st.Instrument("GOLD")
	require.True(t, ok)
	assert.Equal(t, 1.0, instr.Owned)

	rec = do(t, s, http.MethodPost, "/v1/orders", map[string]any{
		"symbol": "GOLD", "side": "sell", "quantity": 1.0,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	st = decodeState(t, rec)
	assert.InDelta(t, 5000.0, st.Cash, 1e-9)
}

func TestOrderValidation(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/v1/orders", map[string]any{
		"symbol": "GOLD", "side": "short", "quantity": 1.0,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/v1/orders", map[string]any{
		"symbol": "NOPE", "side": "buy", "quantity": 1.0,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodPost, "/v1/orders", map[string]any{
		"symbol": "GOLD", "side": "buy", "quantity": 1e9,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestBankRoutes(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/v1/bank/loan", map[string]any{"amount": 2000.0})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2000.0, decodeState(t, rec).Debt)

	rec = do(t, s, http.MethodPost, "/v1/bank/repay", map[string]any{"amount": 2000.0})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, decodeState(t, rec).Debt)

	rec = do(t, s, http.MethodPost, "/v1/bank/deposit", map[string]any{"amount": 1000.0})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1000.0, decodeState(t, rec).Deposit)

	rec = do(t, s, http.MethodPost, "/v1/bank/withdraw", map[string]any{"amount": 1000.0})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, decodeState(t, rec).Deposit)

	rec = do(t, s, http.MethodPost, "/v1/bank/loan", map[string]any{"amount": 1e9})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, s, http.MethodPost, "/v1/bank/loan", map[string]any{"amount": -5.0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCareerRoutes(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/v1/catalog/jobs", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var jobs []game.Job
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &jobs))
	assert.Len(t, jobs, len(game.Jobs))

	rec = do(t, s, http.MethodPost, "/v1/career/apply", map[string]any{"job_id": "srv_cashier"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, s, http.MethodPost, "/v1/career/apply", map[string]any{"job_id": "biz_ceo"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, s, http.MethodPost, "/v1/career/intensity", map[string]any{"intensity": "hard"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, game.IntensityHard, decodeState(t, rec).Intensity)

	rec = do(t, s, http.MethodPost, "/v1/career/intensity", map[string]any{"intensity": "brutal"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/v1/career/quit", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, decodeState(t, rec).CurrentJob)

	rec = do(t, s, http.MethodPost, "/v1/career/quit", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestEducationRoutes(t *testing.T) {
	s, engine := newTestServer(t)
	require.NoError(t, engine.AddCash(100000))

	rec := do(t, s, http.MethodPost, "/v1/education/degree", map[string]any{"level": "BACHELOR"})
	require.Equal(t, http.StatusOK, rec.Code)
	st := decodeState(t, rec)
	require.NotNil(t, st.ActiveStudy)

	rec = do(t, s, http.MethodPost, "/v1/education/course", map[string]any{"course_id": "c_soft"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, s, http.MethodPost, "/v1/education/degree", map[string]any{"level": "WIZARD"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCoinflip(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/v1/casino/coinflip", map[string]any{"amount": 1000.0})
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Won   bool       `json:"won"`
		State game.State `json:"state"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	if out.Won {
		assert.Equal(t, 6000.0, out.State.Cash)
	} else {
		assert.Equal(t, 4000.0, out.State.Cash)
	}

	rec = do(t, s, http.MethodPost, "/v1/casino/coinflip", map[string]any{"amount": 1e9})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestAdminRoutes(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/v1/admin/cash", map[string]any{"amount": 100000.0})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 105000.0, decodeState(t, rec).Cash)

	rec = do(t, s, http.MethodPost, "/v1/admin/credit-score", map[string]any{"score": 9000})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 850, decodeState(t, rec).CreditScore)

	rec = do(t, s, http.MethodPost, "/v1/admin/education", map[string]any{"level": "MBA"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, game.EducationMBA, decodeState(t, rec).Education)

	rec = do(t, s, http.MethodPost, "/v1/admin/job", map[string]any{"job_id": "biz_ceo"})
	require.Equal(t, http.StatusOK, rec.Code)
	st := decodeState(t, rec)
	require.NotNil(t, st.CurrentJob)
	assert.Equal(t, "biz_ceo", st.CurrentJob.ID)
}

func TestGameOverConflicts(t *testing.T) {
	s, engine := newTestServer(t)

	st := game.NewState()
	st.GameOver = true
	engine.Restore(st)

	rec := do(t, s, http.MethodPost, "/v1/advance", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, s, http.MethodPost, "/v1/bank/loan", map[string]any{"amount": 10.0})
	assert.Equal(t, http.StatusConflict, rec.Code)
}
