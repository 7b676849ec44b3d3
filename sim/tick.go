package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/rustyeddy/decade/bank"
	"github.com/rustyeddy/decade/career"
	"github.com/rustyeddy/decade/event"
	"github.com/rustyeddy/decade/game"
	"github.com/rustyeddy/decade/internal/id"
	"github.com/rustyeddy/decade/journal"
	"github.com/rustyeddy/decade/market"
)

// Advance simulates exactly one month. It is a no-op returning a sentinel
// error when the game has ended or another advance is in flight; concurrent
// ticks are never run. The narrative generator call inside the event roll
// is the only point where the tick can suspend, bounded by the injector's
// timeout, so an unreachable generator can delay a tick but never hang it.
func (e *Engine) Advance(ctx context.Context) error {
	e.mu.Lock()
	if e.busy {
		e.mu.Unlock()
		return game.ErrTickInFlight
	}
	if e.state.GameOver {
		e.mu.Unlock()
		return game.ErrGameOver
	}
	e.busy = true
	prior := e.state
	rnd := e.rnd
	lang := e.language
	e.mu.Unlock()

	next, added := e.tick(ctx, prior, rnd, lang)

	e.mu.Lock()
	e.busy = false
	e.commitLocked(next, added)
	e.mu.Unlock()

	rec := journal.TickRecord{
		Month:       next.GameMonth,
		Cash:        next.Cash,
		Debt:        next.Debt,
		Deposit:     next.Deposit,
		CreditScore: next.CreditScore,
		NetWorth:    next.NetWorth,
	}
	if err := e.journal.RecordTick(rec); err != nil {
		e.log.Warn("journal tick failed", "err", err)
	}

	e.log.Debug("month advanced",
		"month", next.GameMonth,
		"cash", next.Cash,
		"debt", next.Debt,
		"net_worth", next.NetWorth,
	)
	return nil
}

// tick computes the next snapshot from a stable prior one. All randomness
// flows through rnd; all narration lands on the returned snapshot.
func (e *Engine) tick(ctx context.Context, prior *game.State, rnd Source, lang string) (*game.State, int) {
	next := prior.Clone()
	added := 0
	say := func(text string, sev game.Severity) {
		next.PushMessage(id.New(), text, sev)
		added++
	}

	// 1. Income and cost of living.
	salary := career.Salary(prior.CurrentJob, prior.Courses, prior.Intensity)
	expenses := career.Expenses(salary)

	// 2. Rates drift and interest accrues. Interest is computed at the
	// rates the bank had already quoted; the drifted rates apply from
	// next month.
	depositInterest := bank.MonthlyDepositInterest(prior.Deposit, prior.DepositRate)
	loanInterest := bank.MonthlyLoanInterest(prior.Debt, prior.LoanRate)

	next.DepositRate = bank.DriftDepositRate(prior.DepositRate, rnd)
	next.LoanRate = bank.LoanRate(next.DepositRate, prior.CreditScore)

	cash := prior.Cash + salary - expenses
	next.Deposit = prior.Deposit + depositInterest
	debt := prior.Debt + loanInterest

	if cash >= loanInterest {
		cash -= loanInterest
		debt -= loanInterest
	} else if loanInterest > 0 {
		say("Loan interest payment missed! Credit score dropping.", game.SeverityDanger)
	}

	if cash < 0 {
		shortfall := -cash
		debt += shortfall
		cash = 0
		say(fmt.Sprintf("Automatic overdraft: $%.0f", shortfall), game.SeverityWarning)
	}
	next.Debt = debt

	// Score reacts to utilization of the limit that was in force; the new
	// limit follows from the new score.
	next.CreditScore = bank.NextScore(prior.CreditScore, debt, prior.CreditLimit, rnd)
	next.CreditLimit = bank.CreditLimit(salary, next.CreditScore, prior.NetWorth)

	// 3. Quarterly dividends, at the prices the quarter closed on.
	if career.DividendsDue(prior.GameMonth) {
		if div := career.Dividends(prior.Instruments); div > 0 {
			cash += div
			say(fmt.Sprintf("Dividends received: $%.0f", div), game.SeveritySuccess)
		}
	}

	// 4. Study progress.
	if res := career.AdvanceStudy(next.ActiveStudy); res.Done {
		if res.Degree {
			if res.Level > next.Education {
				next.Education = res.Level
			}
			say(fmt.Sprintf("Degree obtained: %s!", res.Level.Label()), game.SeveritySuccess)
		} else {
			next.Courses = append(next.Courses, res.CourseID)
			if course, ok := game.FindCourse(res.CourseID); ok {
				say(fmt.Sprintf("Course completed: %s!", course.Title), game.SeveritySuccess)
			}
		}
		next.ActiveStudy = nil
	} else if next.ActiveStudy != nil && next.ActiveStudy.MonthsLeft <= 0 {
		next.ActiveStudy = nil
	}

	// 5. Markets move.
	market.StepAll(next.Instruments, rnd)

	// 6. Net worth after the regular monthly flows; the event roll sees
	// this value.
	next.Cash = cash
	preEventWorth := next.ComputeNetWorth()

	// 7. Exogenous events.
	req := event.Request{
		Year:      prior.GameMonth/12 + 1,
		NetWorth:  preEventWorth,
		Education: next.Education.Label(),
		Courses:   courseTitles(next.Courses),
		Language:  lang,
	}
	if prior.CurrentJob != nil {
		req.Job = &event.JobSummary{Title: prior.CurrentJob.Title, Category: prior.CurrentJob.Category}
	}

	out := e.injector.Roll(ctx, rnd, prior.Intensity, req)
	switch {
	case out.Burnout:
		next.Cash -= event.BurnoutPenalty
		next.Intensity = game.IntensityNormal
		say("BURNOUT! Medical bills applied.", game.SeverityDanger)
	case out.Event != nil:
		evt := out.Event
		next.Cash += float64(evt.CashImpact)
		sev := game.SeveritySuccess
		if evt.CashImpact < 0 {
			sev = game.SeverityDanger
		}
		say(fmt.Sprintf("EVENT: %s ($%d)", evt.Description, evt.CashImpact), sev)

		switch evt.Impact {
		case event.ImpactBull:
			market.Rally(next.Instruments, rnd)
			say("Bull market triggered by news!", game.SeveritySuccess)
		case event.ImpactBear:
			market.Slump(next.Instruments, rnd)
			say("Bear market triggered by news!", game.SeverityDanger)
		}
	}

	// 8. Experience accrues at the intensity the month was worked at,
	// even if a burnout just forced it back to normal.
	if prior.CurrentJob != nil {
		cat := prior.CurrentJob.Category
		grown := next.Experience[cat] + prior.Intensity.ExperienceGrowth()
		if math.Floor(grown) > math.Floor(prior.Experience[cat]) {
			say(fmt.Sprintf("Experience in %q increased to %d years.", cat.Label(), int(grown)), game.SeverityInfo)
		}
		next.Experience[cat] = grown
	}

	// 9. Close the month.
	next.GameMonth = prior.GameMonth + 1
	next.AgeMonths = prior.AgeMonths + 1
	next.GameOver = next.GameMonth >= game.MaxMonths
	next.NetWorth = next.ComputeNetWorth()
	next.History = append(next.History, game.Sample{Month: next.GameMonth, NetWorth: next.NetWorth})
	if next.GameOver {
		say(fmt.Sprintf("Game over. Final rank: %s.", game.Rank(next.NetWorth)), game.SeverityInfo)
	}

	return next, added
}

func courseTitles(ids []string) []string {
	titles := make([]string, 0, len(ids))
	for _, cid := range ids {
		if course, ok := game.FindCourse(cid); ok {
			titles = append(titles, course.Title)
		} else {
			titles = append(titles, cid)
		}
	}
	return titles
}
