package calculator

import (
	"github.com/iwvelando/auction-analyzer/pkg/constants"
	"github.com/iwvelando/auction-analyzer/pkg/mathutil"
)

// profitability evaluates the objective-specific figures. Own use has none.
func (d *derived) profitability(res *Result) {
	switch d.in.Objective {
	case Resell:
		d.resale(res)
	case Rent:
		d.rent(res)
	}
}

// resale measures the gain against the full economic cost of the purchase,
// which always includes the whole auction value even when financed.
func (d *derived) resale(res *Result) {
	if d.in.EstimatedResaleValue == nil {
		return
	}

	base := d.in.AuctionValue + d.transactionCosts()
	gross := *d.in.EstimatedResaleValue - base
	tax := mathutil.Max(0, gross) * d.rates.CapitalGainsTaxRate
	net := gross - tax

	res.SaleCostBase = ptr(base)
	res.GrossGain = ptr(gross)
	res.CapitalGainsTax = ptr(tax)
	res.NetGain = ptr(net)
	res.ProfitMargin = ptr(mathutil.CalculatePercentage(net, base))
}

// rent measures the yield on the cash actually spent up front.
func (d *derived) rent(res *Result) {
	if d.in.MonthlyRent == nil {
		return
	}
	d.rental = true

	d.netMonthlyIncome = *d.in.MonthlyRent - d.in.CondoFee - d.effectivePropertyTax
	d.annualReturn = mathutil.CalculatePercentage(d.netMonthlyIncome*constants.MonthsPerYear, d.totalAcquisitionCost)

	res.NetMonthlyIncome = ptr(d.netMonthlyIncome)
	res.AnnualReturn = ptr(d.annualReturn)

	if !d.financing {
		return
	}

	d.monthlyCashFlow = d.netMonthlyIncome - d.sac.FirstInstallment - d.insuranceMonthly -
		d.in.OtherMonthlyExpenses - d.adminFeeMonthly
	if d.monthlyCashFlow > 0 {
		d.annualReturnFinanced = mathutil.CalculatePercentage(d.monthlyCashFlow*constants.MonthsPerYear, d.totalAcquisitionCost)
	}

	res.MonthlyCashFlow = ptr(d.monthlyCashFlow)
	res.AnnualReturnFinanced = ptr(d.annualReturnFinanced)
}

// effectiveReturn is the return the rental alerts judge: the financed one
// when the purchase is financed.
func (d *derived) effectiveReturn() float64 {
	if d.financing {
		return d.annualReturnFinanced
	}
	return d.annualReturn
}
