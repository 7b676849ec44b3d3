package sim

import (
	"fmt"

	"github.com/rustyeddy/decade/career"
	"github.com/rustyeddy/decade/game"
	"github.com/rustyeddy/decade/internal/id"
)

// Actions are synchronous and instantaneous: each one either commits a new
// snapshot or returns a typed rejection leaving the published snapshot
// untouched. Every action is rejected once the game is over or while a
// month advance is in flight.

// Buy purchases a fractional quantity of an instrument at its current
// price, updating the average cost basis.
func (e *Engine) Buy(symbol string, qty float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.actionableLocked(); err != nil {
		return err
	}
	if qty <= 0 {
		return game.ErrInvalidAmount
	}

	st := e.state.Clone()
	instr, ok := st.Instrument(symbol)
	if !ok {
		return game.ErrUnknownSymbol
	}
	cost := instr.Price * qty
	if st.Cash < cost {
		return game.ErrInsufficientFunds
	}

	oldCost := instr.Owned * instr.AverageCost
	instr.Owned += qty
	instr.AverageCost = (oldCost + cost) / instr.Owned
	st.Cash -= cost

	st.PushMessage(id.New(), fmt.Sprintf("+%.4f %s", qty, instr.Name), game.SeveritySuccess)
	e.commitLocked(st, 1)
	return nil
}

// Sell liquidates a fractional quantity at the current price. A small
// tolerance absorbs float drift when selling an entire position.
func (e *Engine) Sell(symbol string, qty float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.actionableLocked(); err != nil {
		return err
	}
	if qty <= 0 {
		return game.ErrInvalidAmount
	}

	st := e.state.Clone()
	instr, ok := st.Instrument(symbol)
	if !ok {
		return game.ErrUnknownSymbol
	}
	if instr.Owned < qty-1e-4 {
		return game.ErrInsufficientHoldings
	}

	proceeds := instr.Price * qty
	profit := (instr.Price - instr.AverageCost) * qty
	instr.Owned -= qty
	if instr.Owned < 0 {
		instr.Owned = 0
	}
	if instr.Owned == 0 {
		instr.AverageCost = 0
	}
	st.Cash += proceeds

	sev := game.SeveritySuccess
	if profit < 0 {
		sev = game.SeverityWarning
	}
	st.PushMessage(id.New(), fmt.Sprintf("-%.4f %s. P/L: $%.0f", qty, instr.Name, profit), sev)
	e.commitLocked(st, 1)
	return nil
}

// ApplyForJob hires the player into a catalog job when the education and
// category-experience gates pass. Intensity resets to normal.
func (e *Engine) ApplyForJob(jobID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.actionableLocked(); err != nil {
		return err
	}

	job, ok := game.FindJob(jobID)
	if !ok {
		return game.ErrUnknownJob
	}
	if err := career.CanApply(e.state.Education, e.state.Experience, job); err != nil {
		return err
	}

	st := e.state.Clone()
	st.CurrentJob = &job
	st.Intensity = game.IntensityNormal
	st.PushMessage(id.New(), fmt.Sprintf("Hired: %s", job.Title), game.SeveritySuccess)
	e.commitLocked(st, 1)
	return nil
}

func (e *Engine) QuitJob() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.actionableLocked(); err != nil {
		return err
	}
	if e.state.CurrentJob == nil {
		return game.ErrNotEmployed
	}

	st := e.state.Clone()
	st.CurrentJob = nil
	st.Intensity = game.IntensityNormal
	st.PushMessage(id.New(), "You quit your job.", game.SeverityInfo)
	e.commitLocked(st, 1)
	return nil
}

func (e *Engine) SetIntensity(level game.Intensity) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.actionableLocked(); err != nil {
		return err
	}
	switch level {
	case game.IntensityRelaxed, game.IntensityNormal, game.IntensityHard:
	default:
		return fmt.Errorf("unknown intensity %q", level)
	}

	st := e.state.Clone()
	st.Intensity = level
	e.commitLocked(st, 0)
	return nil
}

// StartEducation begins studying for the next degree. The fee is charged
// up front; only one study item may be active at a time.
func (e *Engine) StartEducation(level game.EducationLevel) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.actionableLocked(); err != nil {
		return err
	}
	if e.state.ActiveStudy != nil {
		return game.ErrStudyInProgress
	}
	cost, ok := game.EducationCosts[level]
	if !ok {
		return fmt.Errorf("no such degree: %s", level)
	}
	if level <= e.state.Education {
		return game.ErrAlreadyCompleted
	}
	if e.state.Cash < cost {
		return game.ErrInsufficientFunds
	}

	st := e.state.Clone()
	st.Cash -= cost
	st.ActiveStudy = &game.Study{
		Kind:       game.StudyDegree,
		Level:      level,
		MonthsLeft: game.EducationDurations[level],
	}
	st.PushMessage(id.New(), fmt.Sprintf("Enrolled: %s.", level.Label()), game.SeverityInfo)
	e.commitLocked(st, 1)
	return nil
}

func (e *Engine) StartCourse(courseID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.actionableLocked(); err != nil {
		return err
	}
	if e.state.ActiveStudy != nil {
		return game.ErrStudyInProgress
	}
	course, ok := game.FindCourse(courseID)
	if !ok {
		return game.ErrUnknownCourse
	}
	for _, owned := range e.state.Courses {
		if owned == courseID {
			return game.ErrAlreadyCompleted
		}
	}
	if e.state.Cash < course.Cost {
		return game.ErrInsufficientFunds
	}

	st := e.state.Clone()
	st.Cash -= course.Cost
	st.ActiveStudy = &game.Study{
		Kind:       game.StudyCourse,
		CourseID:   course.ID,
		MonthsLeft: course.DurationMonths,
	}
	st.PushMessage(id.New(), fmt.Sprintf("Enrolled: %s.", course.Title), game.SeverityInfo)
	e.commitLocked(st, 1)
	return nil
}

// TakeLoan borrows against the remaining credit headroom.
func (e *Engine) TakeLoan(amount float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.actionableLocked(); err != nil {
		return err
	}
	if amount <= 0 {
		return game.ErrInvalidAmount
	}
	if amount > float64(e.state.CreditLimit)-e.state.Debt {
		return game.ErrLoanLimitExceeded
	}

	st := e.state.Clone()
	st.Cash += amount
	st.Debt += amount
	st.PushMessage(id.New(), fmt.Sprintf("Loan taken: $%.0f", amount), game.SeverityInfo)
	e.commitLocked(st, 1)
	return nil
}

func (e *Engine) RepayDebt(amount float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.actionableLocked(); err != nil {
		return err
	}
	if amount <= 0 {
		return game.ErrInvalidAmount
	}
	if amount > e.state.Cash {
		return game.ErrInsufficientFunds
	}
	if amount > e.state.Debt {
		return game.ErrRepayExceedsDebt
	}

	st := e.state.Clone()
	st.Cash -= amount
	st.Debt -= amount
	st.PushMessage(id.New(), fmt.Sprintf("Debt repaid: $%.0f", amount), game.SeveritySuccess)
	e.commitLocked(st, 1)
	return nil
}

func (e *Engine) DepositCash(amount float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.actionableLocked(); err != nil {
		return err
	}
	if amount <= 0 {
		return game.ErrInvalidAmount
	}
	if amount > e.state.Cash {
		return game.ErrInsufficientFunds
	}

	st := e.state.Clone()
	st.Cash -= amount
	st.Deposit += amount
	e.commitLocked(st, 0)
	return nil
}

func (e *Engine) WithdrawDeposit(amount float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.actionableLocked(); err != nil {
		return err
	}
	if amount <= 0 {
		return game.ErrInvalidAmount
	}
	if amount > e.state.Deposit {
		return game.ErrInsufficientDeposit
	}

	st := e.state.Clone()
	st.Deposit -= amount
	st.Cash += amount
	e.commitLocked(st, 0)
	return nil
}

// PlaceBet escrows a casino stake out of cash. Mini-games must settle
// wins exclusively through SettleBet; they never touch cash directly.
func (e *Engine) PlaceBet(amount float64) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.actionableLocked(); err != nil {
		return false, err
	}
	if amount <= 0 {
		return false, game.ErrInvalidAmount
	}
	if amount > e.state.Cash {
		return false, game.ErrInsufficientFunds
	}

	st := e.state.Clone()
	st.Cash -= amount
	e.commitLocked(st, 0)
	return true, nil
}

// SettleBet credits a casino payout. A zero payout records the loss
// without a message.
func (e *Engine) SettleBet(amount float64, label string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.actionableLocked(); err != nil {
		return err
	}
	if amount < 0 {
		return game.ErrInvalidAmount
	}

	st := e.state.Clone()
	added := 0
	if amount > 0 {
		st.Cash += amount
		st.PushMessage(id.New(), fmt.Sprintf("You Win! (%s): +$%.0f", label, amount), game.SeveritySuccess)
		added = 1
	}
	e.commitLocked(st, added)
	return nil
}
