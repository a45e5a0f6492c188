package calculator

import (
	"github.com/iwvelando/auction-analyzer/pkg/constants"
	"github.com/iwvelando/auction-analyzer/pkg/loans"
)

// prepareFinancing resolves the loan terms. It runs before the acquisition
// costs because a financed purchase uses the down payment as its cost base.
//
// A financed input with a zero rate still produces a schedule: amortization
// degenerates to principal/termMonths with no interest.
func (d *derived) prepareFinancing() {
	in := d.in
	if !in.Financed {
		return
	}
	d.financing = true

	if in.DownPayment != nil {
		d.downPayment = *in.DownPayment
	} else {
		d.downPayment = in.AuctionValue * d.rates.DefaultDownPaymentRate
	}
	d.principal = in.AuctionValue - d.downPayment

	years := in.FinancingTermYears
	if years <= 0 {
		years = d.rates.DefaultFinancingTermYears
	}
	d.termMonths = years * constants.MonthsPerYear

	d.sac = loans.SummarizeSAC(d.principal, in.AnnualInterestRate, d.termMonths)
	d.insuranceMonthly = d.principal * d.rates.MandatoryInsuranceMonthlyRate
	d.adminFeeMonthly = d.rates.AdministrativeFeeMonthly
}

// financingFigures copies the loan summary into the result.
func (d *derived) financingFigures(res *Result) {
	if !d.financing {
		return
	}

	months := float64(d.termMonths)
	totalCost := d.principal + d.sac.TotalInterest + d.insuranceMonthly*months + d.adminFeeMonthly*months

	res.DownPayment = ptr(d.downPayment)
	res.FinancedPrincipal = ptr(d.principal)
	res.TermMonths = ptr(d.termMonths)
	res.MonthlyAmortization = ptr(d.sac.MonthlyAmortization)
	res.FirstInstallment = ptr(d.sac.FirstInstallment)
	res.LastInstallment = ptr(d.sac.LastInstallment)
	res.AnnualInterestEstimate = ptr(d.principal * d.in.AnnualInterestRate / constants.PercentageMultiplier)
	res.TotalInterest = ptr(d.sac.TotalInterest)
	res.MandatoryInsuranceMonthly = ptr(d.insuranceMonthly)
	res.MandatoryInsuranceAnnual = ptr(d.insuranceMonthly * constants.MonthsPerYear)
	res.AdministrativeFeeMonthly = ptr(d.adminFeeMonthly)
	res.TotalFinancingCost = ptr(totalCost)
}
