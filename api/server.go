// Package api exposes the running simulation over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rustyeddy/decade/config"
	"github.com/rustyeddy/decade/game"
	"github.com/rustyeddy/decade/sim"
)

type Server struct {
	cfg    config.ServerConfig
	log    *slog.Logger
	engine *sim.Engine
	rnd    *rand.Rand
	mux    *chi.Mux
}

func New(cfg config.ServerConfig, logger *slog.Logger, engine *sim.Engine) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:    cfg,
		log:    logger,
		engine: engine,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		mux:    chi.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	r := s.mux
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Get("/state", s.handleState)
		r.Get("/rank", s.handleRank)
		r.Post("/advance", s.handleAdvance)

		r.Post("/orders", s.handleOrder)

		r.Post("/bank/loan", s.handleLoan)
		r.Post("/bank/repay", s.handleRepay)
		r.Post("/bank/deposit", s.handleDeposit)
		r.Post("/bank/withdraw", s.handleWithdraw)

		r.Get("/catalog/jobs", s.handleJobs)
		r.Get("/catalog/courses", s.handleCourses)
		r.Post("/career/apply", s.handleApply)
		r.Post("/career/quit", s.handleQuit)
		r.Post("/career/intensity", s.handleIntensity)

		r.Post("/education/degree", s.handleDegree)
		r.Post("/education/course", s.handleCourse)

		r.Post("/casino/coinflip", s.handleCoinflip)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/cash", s.handleAdminCash)
			r.Post("/credit-score", s.handleAdminScore)
			r.Post("/education", s.handleAdminEducation)
			r.Post("/job", s.handleAdminJob)
		})
	})
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.State())
}

func (s *Server) handleRank(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"rank": s.engine.Rank()})
}

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.Advance(r.Context()); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.engine.State())
}

func (s *Server) handleOrder(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Symbol   string  `json:"symbol"`
		Side     string  `json:"side"`
		Quantity float64 `json:"quantity"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var err error
	switch in.Side {
	case "buy":
		err = s.engine.Buy(in.Symbol, in.Quantity)
	case "sell":
		err = s.engine.Sell(in.Symbol, in.Quantity)
	default:
		writeError(w, http.StatusBadRequest, "side must be 'buy' or 'sell'")
		return
	}
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.engine.State())
}

func (s *Server) handleLoan(w http.ResponseWriter, r *http.Request) {
	s.amountAction(w, r, s.engine.TakeLoan)
}

func (s *Server) handleRepay(w http.ResponseWriter, r *http.Request) {
	s.amountAction(w, r, s.engine.RepayDebt)
}

func (s *Server) handleDeposit(w http.ResponseWriter, r *http.Request) {
	s.amountAction(w, r, s.engine.DepositCash)
}

func (s *Server) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	s.amountAction(w, r, s.engine.WithdrawDeposit)
}

func (s *Server) amountAction(w http.ResponseWriter, r *http.Request, action func(float64) error) {
	var in struct {
		Amount float64 `json:"amount"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := action(in.Amount); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.engine.State())
}

func (s *Server) handleJobs(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, game.Jobs)
}

func (s *Server) handleCourses(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, game.Courses)
}

func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	var in struct {
		JobID string `json:"job_id"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.engine.ApplyForJob(in.JobID); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.engine.State())
}

func (s *Server) handleQuit(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.QuitJob(); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.engine.State())
}

func (s *Server) handleIntensity(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Intensity string `json:"intensity"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	level := game.Intensity(in.Intensity)
	switch level {
	case game.IntensityRelaxed, game.IntensityNormal, game.IntensityHard:
	default:
		writeError(w, http.StatusBadRequest, "intensity must be 'relaxed', 'normal' or 'hard'")
		return
	}
	if err := s.engine.SetIntensity(level); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.engine.State())
}

func (s *Server) handleDegree(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Level string `json:"level"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	level, err := game.ParseEducationLevel(in.Level)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.engine.StartEducation(level); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.engine.State())
}

func (s *Server) handleCourse(w http.ResponseWriter, r *http.Request) {
	var in struct {
		CourseID string `json:"course_id"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.engine.StartCourse(in.CourseID); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.engine.State())
}

// handleCoinflip plays one double-or-nothing round. The stake leaves cash
// before the flip; a win settles back twice the stake.
func (s *Server) handleCoinflip(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Amount float64 `json:"amount"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := s.engine.PlaceBet(in.Amount); err != nil {
		writeEngineError(w, err)
		return
	}

	won := s.rnd.Float64() < 0.5
	if won {
		if err := s.engine.SettleBet(in.Amount*2, "Coin Flip"); err != nil {
			writeEngineError(w, err)
			return
		}
	} else {
		if err := s.engine.SettleBet(0, "Coin Flip"); err != nil {
			writeEngineError(w, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"won":   won,
		"state": s.engine.State(),
	})
}

func (s *Server) handleAdminCash(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Amount float64 `json:"amount"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.engine.AddCash(in.Amount); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.engine.State())
}

func (s *Server) handleAdminScore(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Score int `json:"score"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.engine.SetCreditScore(in.Score); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.engine.State())
}

func (s *Server) handleAdminEducation(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Level string `json:"level"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	level, err := game.ParseEducationLevel(in.Level)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.engine.SetEducation(level); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.engine.State())
}

func (s *Server) handleAdminJob(w http.ResponseWriter, r *http.Request) {
	var in struct {
		JobID string `json:"job_id"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.engine.SetJob(in.JobID); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.engine.State())
}

// writeEngineError maps engine rejections onto HTTP statuses.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrGameOver), errors.Is(err, game.ErrTickInFlight):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, game.ErrUnknownSymbol),
		errors.Is(err, game.ErrUnknownJob),
		errors.Is(err, game.ErrUnknownCourse):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, game.ErrInvalidAmount):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, game.ErrInsufficientFunds),
		errors.Is(err, game.ErrInsufficientHoldings),
		errors.Is(err, game.ErrInsufficientDeposit),
		errors.Is(err, game.ErrLoanLimitExceeded),
		errors.Is(err, game.ErrRepayExceedsDebt),
		errors.Is(err, game.ErrNotEmployed),
		errors.Is(err, game.ErrStudyInProgress),
		errors.Is(err, game.ErrEducationRequired),
		errors.Is(err, game.ErrExperienceRequired),
		errors.Is(err, game.ErrAlreadyCompleted):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(out)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": strings.TrimSpace(message)})
}
