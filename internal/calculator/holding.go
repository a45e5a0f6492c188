package calculator

import (
	"github.com/iwvelando/auction-analyzer/pkg/mathutil"
)

// holding computes the recurring cost of keeping the property and the
// discount obtained against the appraisal.
func (d *derived) holding(res *Result) {
	in := d.in

	monthly := in.CondoFee + d.effectivePropertyTax + in.OtherMonthlyExpenses
	res.MonthlyHoldingCost = monthly
	res.PeriodHoldingCost = monthly * float64(in.AnalysisPeriodMonths)

	if d.financing {
		res.MonthlyCostWithFinancing = ptr(monthly + d.sac.FirstInstallment + d.insuranceMonthly + d.adminFeeMonthly)
	}

	d.savings = in.AppraisalValue - in.AuctionValue
	d.savingsPercent = mathutil.CalculatePercentage(d.savings, in.AppraisalValue)
	res.Savings = d.savings
	res.SavingsPercent = d.savingsPercent
}
