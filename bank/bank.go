// Package bank models the player's retail bank: interest rate drift,
// monthly accrual, creditworthiness scoring and the credit limit.
//
// Everything here is a pure function of its inputs plus an injected random
// source; the simulation engine owns sequencing and state.
package bank

import "math"

// Source yields uniform randoms in [0, 1).
type Source interface {
	Float64() float64
}

const (
	MinDepositRate = 0.01
	MaxDepositRate = 0.12

	MinCreditScore = 300
	MaxCreditScore = 850
)

// DriftDepositRate moves the savings rate by a small uniform step in
// (-0.0025, 0.0025), clamped to the allowed band.
func DriftDepositRate(rate float64, rnd Source) float64 {
	next := rate + (rnd.Float64()-0.5)*0.005
	return math.Max(MinDepositRate, math.Min(MaxDepositRate, next))
}

// RiskPremium is the spread charged over the deposit rate. A perfect score
// pays 0.02, the worst score roughly 0.20.
func RiskPremium(score int) float64 {
	return 0.02 + (float64(MaxCreditScore-score)/550)*0.18
}

// LoanRate derives the borrowing rate from the deposit rate and the score.
func LoanRate(depositRate float64, score int) float64 {
	return depositRate + RiskPremium(score)
}

// MonthlyDepositInterest is the interest credited to savings this month.
func MonthlyDepositInterest(deposit, annualRate float64) float64 {
	return deposit * annualRate / 12
}

// MonthlyLoanInterest is the interest due on outstanding debt this month.
func MonthlyLoanInterest(debt, annualRate float64) float64 {
	return debt * annualRate / 12
}

// NextScore applies the monthly utilization-based score adjustment.
// Utilization is debt over the limit the bank had already granted; the
// occasional jitter models reporting noise. The result is truncated to an
// integer and clamped to [300, 850].
func NextScore(score int, debt float64, creditLimit int, rnd Source) int {
	next := float64(score)
	utilization := debt / math.Max(1, float64(creditLimit))

	switch {
	case utilization > 1.1:
		next -= 10
	case utilization > 0.8:
		next -= 5
	case utilization > 0.3:
		next--
	case debt > 0:
		next++
	default:
		next += 0.5
	}

	if rnd.Float64() < 0.1 {
		next += (rnd.Float64() - 0.5) * 4
	}

	next = math.Floor(next)
	return int(math.Max(MinCreditScore, math.Min(MaxCreditScore, next)))
}

// CreditLimit recomputes how much the bank will lend in total, from the
// salary, the score and the positive part of net worth.
func CreditLimit(salary float64, score int, netWorth float64) int {
	scoreMultiplier := math.Max(0.1, float64(score-200)/400)
	base := math.Max(5000, salary*6+math.Max(0, netWorth)*0.1)
	return int(math.Floor(base * scoreMultiplier))
}
