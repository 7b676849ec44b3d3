package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/decade/game"
)

// restore installs a tailored snapshot and returns the engine.
func restore(t *testing.T, mutate func(*game.State)) *Engine {
	t.Helper()
	e := newTestEngine(t)
	st := game.NewState()
	mutate(st)
	st.NetWorth = st.ComputeNetWorth()
	e.Restore(st)
	return e
}

func TestBuy(t *testing.T) {
	e := restore(t, func(st *game.State) {
		st.Cash = 1000
		instr, _ := st.Instrument("TECH")
		instr.Price = 100
	})

	require.NoError(t, e.Buy("TECH", 5))

	st := e.State()
	assert.Equal(t, 500.0, st.Cash)
	instr, _ := st.Instrument("TECH")
	assert.Equal(t, 5.0, instr.Owned)
	assert.Equal(t, 100.0, instr.AverageCost)
	assert.InDelta(t, 1000.0, st.NetWorth, 1e-9)
}

func TestBuyAveragesCost(t *testing.T) {
	e := restore(t, func(st *game.State) {
		st.Cash = 10000
		instr, _ := st.Instrument("TECH")
		instr.Price = 100
		instr.Owned = 10
		instr.AverageCost = 50
	})

	require.NoError(t, e.Buy("TECH", 10))

	instr, _ := e.State().Instrument("TECH")
	assert.Equal(t, 20.0, instr.Owned)
	assert.InDelta(t, 75.0, instr.AverageCost, 1e-9)
}

func TestBuyRejections(t *testing.T) {
	e := newTestEngine(t)
	before := e.State()

	assert.ErrorIs(t, e.Buy("TECH", 0), game.ErrInvalidAmount)
	assert.ErrorIs(t, e.Buy("TECH", -1), game.ErrInvalidAmount)
	assert.ErrorIs(t, e.Buy("NOPE", 1), game.ErrUnknownSymbol)
	assert.ErrorIs(t, e.Buy("TECH", 1e9), game.ErrInsufficientFunds)

	// A rejected action leaves the snapshot untouched.
	assert.Equal(t, before, e.State())
}

func TestSell(t *testing.T) {
	e := restore(t, func(st *game.State) {
		st.Cash = 0
		instr, _ := st.Instrument("TECH")
		instr.Price = 120
		instr.Owned = 5
		instr.AverageCost = 100
	})

	require.NoError(t, e.Sell("TECH", 2))

	st := e.State()
	assert.Equal(t, 240.0, st.Cash)
	instr, _ := st.Instrument("TECH")
	assert.Equal(t, 3.0, instr.Owned)
	assert.Equal(t, 100.0, instr.AverageCost)
}

func TestSellWholePositionResetsCostBasis(t *testing.T) {
	e := restore(t, func(st *game.State) {
		instr, _ := st.Instrument("TECH")
		instr.Price = 100
		// Float drift from repeated fractional buys.
		instr.Owned = 3.00009
		instr.AverageCost = 90
	})

	require.NoError(t, e.Sell("TECH", 3.0001))

	instr, _ := e.State().Instrument("TECH")
	assert.Zero(t, instr.Owned)
	assert.Zero(t, instr.AverageCost)
}

func TestSellRejections(t *testing.T) {
	e := restore(t, func(st *game.State) {
		instr, _ := st.Instrument("TECH")
		instr.Owned = 1
	})

	assert.ErrorIs(t, e.Sell("TECH", 0), game.ErrInvalidAmount)
	assert.ErrorIs(t, e.Sell("NOPE", 1), game.ErrUnknownSymbol)
	assert.ErrorIs(t, e.Sell("TECH", 1.1), game.ErrInsufficientHoldings)
}

func TestApplyForJob(t *testing.T) {
	e := newTestEngine(t)

	require.NoError(t, e.ApplyForJob("srv_fastfood"))

	st := e.State()
	require.NotNil(t, st.CurrentJob)
	assert.Equal(t, "srv_fastfood", st.CurrentJob.ID)
	assert.Equal(t, game.IntensityNormal, st.Intensity)
}

func TestApplyForJobGates(t *testing.T) {
	e := newTestEngine(t)

	assert.ErrorIs(t, e.ApplyForJob("nope"), game.ErrUnknownJob)
	assert.ErrorIs(t, e.ApplyForJob("tech_jun"), game.ErrEducationRequired)

	e = restore(t, func(st *game.State) {
		st.Education = game.EducationBachelor
	})
	assert.ErrorIs(t, e.ApplyForJob("tech_mid"), game.ErrExperienceRequired)
	require.NoError(t, e.ApplyForJob("tech_jun"))
}

func TestQuitJob(t *testing.T) {
	e := newTestEngine(t)
	assert.ErrorIs(t, e.QuitJob(), game.ErrNotEmployed)

	require.NoError(t, e.ApplyForJob("srv_cashier"))
	require.NoError(t, e.SetIntensity(game.IntensityHard))
	require.NoError(t, e.QuitJob())

	st := e.State()
	assert.Nil(t, st.CurrentJob)
	assert.Equal(t, game.IntensityNormal, st.Intensity)
}

func TestSetIntensity(t *testing.T) {
	e := newTestEngine(t)

	require.NoError(t, e.SetIntensity(game.IntensityHard))
	assert.Equal(t, game.IntensityHard, e.State().Intensity)

	assert.Error(t, e.SetIntensity(game.Intensity("brutal")))
}

func TestStartEducation(t *testing.T) {
	e := restore(t, func(st *game.State) {
		st.Cash = 30000
	})

	require.NoError(t, e.StartEducation(game.EducationBachelor))

	st := e.State()
	assert.Equal(t, 10000.0, st.Cash)
	require.NotNil(t, st.ActiveStudy)
	assert.Equal(t, game.StudyDegree, st.ActiveStudy.Kind)
	assert.Equal(t, game.EducationBachelor, st.ActiveStudy.Level)
	assert.Equal(t, 6, st.ActiveStudy.MonthsLeft)

	// Only one study item at a time.
	assert.ErrorIs(t, e.StartEducation(game.EducationHighSchool), game.ErrStudyInProgress)
}

func TestStartEducationRejections(t *testing.T) {
	e := restore(t, func(st *game.State) {
		st.Education = game.EducationBachelor
	})

	assert.ErrorIs(t, e.StartEducation(game.EducationHighSchool), game.ErrAlreadyCompleted)
	assert.ErrorIs(t, e.StartEducation(game.EducationBachelor), game.ErrAlreadyCompleted)
	assert.ErrorIs(t, e.StartEducation(game.EducationMaster), game.ErrInsufficientFunds)
}

func TestStartCourse(t *testing.T) {
	e := newTestEngine(t)

	require.NoError(t, e.StartCourse("c_soft"))

	st := e.State()
	assert.Equal(t, 2000.0, st.Cash)
	require.NotNil(t, st.ActiveStudy)
	assert.Equal(t, game.StudyCourse, st.ActiveStudy.Kind)
	assert.Equal(t, "c_soft", st.ActiveStudy.CourseID)
	assert.Equal(t, 2, st.ActiveStudy.MonthsLeft)
}

func TestStartCourseRejections(t *testing.T) {
	e := restore(t, func(st *game.State) {
		st.Cash = 100000
		st.Courses = []string{"c_soft"}
	})

	assert.ErrorIs(t, e.StartCourse("nope"), game.ErrUnknownCourse)
	assert.ErrorIs(t, e.StartCourse("c_soft"), game.ErrAlreadyCompleted)

	e = restore(t, func(st *game.State) { st.Cash = 100 })
	assert.ErrorIs(t, e.StartCourse("c_soft"), game.ErrInsufficientFunds)
}

func TestTakeLoan(t *testing.T) {
	e := newTestEngine(t)

	require.NoError(t, e.TakeLoan(4000))

	st := e.State()
	assert.Equal(t, 9000.0, st.Cash)
	assert.Equal(t, 4000.0, st.Debt)
	// Borrowing is net-worth neutral.
	assert.InDelta(t, 5000.0, st.NetWorth, 1e-9)
}

func TestTakeLoanBeyondLimitRejected(t *testing.T) {
	e := newTestEngine(t)
	before := e.State()

	err := e.TakeLoan(float64(before.CreditLimit) + 1)
	assert.ErrorIs(t, err, game.ErrLoanLimitExceeded)
	assert.Equal(t, before, e.State())
}

func TestTakeLoanHeadroomShrinksWithDebt(t *testing.T) {
	e := restore(t, func(st *game.State) {
		st.Debt = 9000
		st.CreditLimit = 10000
	})

	assert.ErrorIs(t, e.TakeLoan(1001), game.ErrLoanLimitExceeded)
	require.NoError(t, e.TakeLoan(1000))
}

func TestRepayDebt(t *testing.T) {
	e := restore(t, func(st *game.State) {
		st.Cash = 3000
		st.Debt = 2000
	})

	assert.ErrorIs(t, e.RepayDebt(0), game.ErrInvalidAmount)
	assert.ErrorIs(t, e.RepayDebt(2500), game.ErrRepayExceedsDebt)
	require.NoError(t, e.RepayDebt(2000))

	st := e.State()
	assert.Equal(t, 1000.0, st.Cash)
	assert.Zero(t, st.Debt)
}

func TestRepayDebtNeedsCash(t *testing.T) {
	e := restore(t, func(st *game.State) {
		st.Cash = 100
		st.Debt = 2000
	})
	assert.ErrorIs(t, e.RepayDebt(500), game.ErrInsufficientFunds)
}

func TestDepositAndWithdraw(t *testing.T) {
	e := newTestEngine(t)

	require.NoError(t, e.DepositCash(3000))
	st := e.State()
	assert.Equal(t, 2000.0, st.Cash)
	assert.Equal(t, 3000.0, st.Deposit)
	assert.InDelta(t, 5000.0, st.NetWorth, 1e-9)

	assert.ErrorIs(t, e.WithdrawDeposit(3001), game.ErrInsufficientDeposit)
	require.NoError(t, e.WithdrawDeposit(3000))

	st = e.State()
	assert.Equal(t, 5000.0, st.Cash)
	assert.Zero(t, st.Deposit)
}

func TestDepositRejections(t *testing.T) {
	e := newTestEngine(t)
	assert.ErrorIs(t, e.DepositCash(0), game.ErrInvalidAmount)
	assert.ErrorIs(t, e.DepositCash(5001), game.ErrInsufficientFunds)
	assert.ErrorIs(t, e.WithdrawDeposit(-5), game.ErrInvalidAmount)
}

func TestPlaceAndSettleBet(t *testing.T) {
	e := newTestEngine(t)

	ok, err := e.PlaceBet(1000)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 4000.0, e.State().Cash)

	// Losing round: nothing comes back.
	require.NoError(t, e.SettleBet(0, "blackjack"))
	assert.Equal(t, 4000.0, e.State().Cash)

	ok, err = e.PlaceBet(1000)
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, e.SettleBet(2000, "blackjack"))

	st := e.State()
	assert.Equal(t, 5000.0, st.Cash)
	assert.Contains(t, st.Messages[0].Text, "You Win!")
}

func TestPlaceBetRejections(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.PlaceBet(0)
	assert.ErrorIs(t, err, game.ErrInvalidAmount)
	_, err = e.PlaceBet(6000)
	assert.ErrorIs(t, err, game.ErrInsufficientFunds)
	assert.ErrorIs(t, e.SettleBet(-1, "slots"), game.ErrInvalidAmount)
}

func TestAdminAddCash(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.AddCash(100000))
	assert.Equal(t, 105000.0, e.State().Cash)
}

func TestAdminSetCreditScoreClamps(t *testing.T) {
	e := newTestEngine(t)

	require.NoError(t, e.SetCreditScore(9000))
	assert.Equal(t, 850, e.State().CreditScore)

	require.NoError(t, e.SetCreditScore(-50))
	assert.Equal(t, 300, e.State().CreditScore)
}

func TestAdminSetEducationClearsStudy(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.StartCourse("c_soft"))

	require.NoError(t, e.SetEducation(game.EducationMaster))

	st := e.State()
	assert.Equal(t, game.EducationMaster, st.Education)
	assert.Nil(t, st.ActiveStudy)
}

func TestAdminSetJobBypassesGates(t *testing.T) {
	e := newTestEngine(t)

	require.NoError(t, e.SetJob("biz_ceo"))

	st := e.State()
	require.NotNil(t, st.CurrentJob)
	assert.Equal(t, "biz_ceo", st.CurrentJob.ID)
}

func TestActionsRejectedAfterGameOver(t *testing.T) {
	e := restore(t, func(st *game.State) {
		st.GameOver = true
	})

	assert.ErrorIs(t, e.Buy("TECH", 1), game.ErrGameOver)
	assert.ErrorIs(t, e.TakeLoan(100), game.ErrGameOver)
	assert.ErrorIs(t, e.ApplyForJob("srv_fastfood"), game.ErrGameOver)
	_, err := e.PlaceBet(10)
	assert.ErrorIs(t, err, game.ErrGameOver)
}
