package sim

import (
	"github.com/rustyeddy/decade/bank"
	"github.com/rustyeddy/decade/game"
)

// Admin operations bypass the usual validation gates. They still respect
// the busy flag so a concurrent advance can never be half-overwritten.

func (e *Engine) AddCash(amount float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.actionableLocked(); err != nil {
		return err
	}

	st := e.state.Clone()
	st.Cash += amount
	e.commitLocked(st, 0)
	return nil
}

func (e *Engine) SetCreditScore(score int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.actionableLocked(); err != nil {
		return err
	}
	if score < bank.MinCreditScore {
		score = bank.MinCreditScore
	}
	if score > bank.MaxCreditScore {
		score = bank.MaxCreditScore
	}

	st := e.state.Clone()
	st.CreditScore = score
	e.commitLocked(st, 0)
	return nil
}

// SetEducation grants a degree outright and abandons any study in
// progress.
func (e *Engine) SetEducation(level game.EducationLevel) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.actionableLocked(); err != nil {
		return err
	}
	if level < game.EducationNone || level > game.EducationMBA {
		return game.ErrInvalidAmount
	}

	st := e.state.Clone()
	st.Education = level
	st.ActiveStudy = nil
	e.commitLocked(st, 0)
	return nil
}

// SetJob installs a catalog job without education or experience checks.
func (e *Engine) SetJob(jobID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.actionableLocked(); err != nil {
		return err
	}
	job, ok := game.FindJob(jobID)
	if !ok {
		return game.ErrUnknownJob
	}

	st := e.state.Clone()
	st.CurrentJob = &job
	st.Intensity = game.IntensityNormal
	e.commitLocked(st, 0)
	return nil
}
