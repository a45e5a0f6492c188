// Package loans provides loan repayment calculations for the constant
// amortization system (SAC), where every installment repays the same share
// of principal and the interest portion declines with the balance.
package loans

import (
	"github.com/iwvelando/auction-analyzer/pkg/constants"
)

// Payment holds the values for a given installment.
type Payment struct {
	Period             int
	Payment            float64
	Principal          float64
	Interest           float64
	RemainingPrincipal float64
}

// SACSummary describes a constant-amortization loan without materialising
// the full schedule.
type SACSummary struct {
	Principal           float64
	MonthlyRate         float64
	TermMonths          int
	MonthlyAmortization float64
	FirstInstallment    float64
	LastInstallment     float64
	TotalInterest       float64
	TotalPaid           float64
}

// MonthlyRate converts an annual percentage rate into a monthly fraction.
func MonthlyRate(annualInterestRate float64) float64 {
	return annualInterestRate / (constants.PercentageMultiplier * constants.MonthsPerYear)
}

// CalculateInterestPayment calculates the interest portion of a payment.
func CalculateInterestPayment(remainingPrincipal, annualInterestRate float64) float64 {
	return remainingPrincipal * MonthlyRate(annualInterestRate)
}

// SummarizeSAC computes the headline figures of a SAC loan. A zero rate
// degenerates to an even split of the principal; a non-positive term yields
// an empty summary.
func SummarizeSAC(principal, annualInterestRate float64, termMonths int) SACSummary {
	summary := SACSummary{
		Principal:   principal,
		MonthlyRate: MonthlyRate(annualInterestRate),
		TermMonths:  termMonths,
	}
	if termMonths <= 0 {
		return summary
	}

	n := float64(termMonths)
	summary.MonthlyAmortization = principal / n
	summary.FirstInstallment = summary.MonthlyAmortization + principal*summary.MonthlyRate
	summary.LastInstallment = summary.MonthlyAmortization * (1 + summary.MonthlyRate)

	// Interest falls linearly from P*r to (P/n)*r, so the series sums to P*r*(n+1)/2.
	summary.TotalInterest = principal * summary.MonthlyRate * (n + 1) / 2
	summary.TotalPaid = principal + summary.TotalInterest
	return summary
}

// SACPayment returns installment number period (1-based) of a SAC loan.
// Periods outside 1..termMonths return a zero Payment.
func SACPayment(principal, annualInterestRate float64, termMonths, period int) Payment {
	if termMonths <= 0 || period < 1 || period > termMonths {
		return Payment{Period: period}
	}

	amortization := principal / float64(termMonths)
	balance := principal - amortization*float64(period-1)
	interest := CalculateInterestPayment(balance, annualInterestRate)

	remaining := balance - amortization
	if period == termMonths {
		remaining = 0
	}

	return Payment{
		Period:             period,
		Payment:            amortization + interest,
		Principal:          amortization,
		Interest:           interest,
		RemainingPrincipal: remaining,
	}
}
