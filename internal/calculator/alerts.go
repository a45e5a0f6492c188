package calculator

import (
	"fmt"
	"strconv"

	"github.com/iwvelando/auction-analyzer/pkg/constants"
	"github.com/iwvelando/auction-analyzer/pkg/mathutil"
)

// Alert titles, stable enough for callers to match on.
const (
	TitleOccupiedProperty   = "Occupied property"
	TitleHighRenovationCost = "High renovation cost"
	TitleLowSavings         = "Low savings"
	TitleLowRentalReturn    = "Low rental return"
	TitleNegativeNetIncome  = "Negative net income"
	TitleNegativeCashFlow   = "Negative cash flow"
	TitleHighInterestRate   = "High interest rate"
	TitleGoodOpportunity    = "Good opportunity"
	TitleOwnUse             = "Own use"
)

// alerts evaluates every rule in a fixed order; all matching rules fire.
func (d *derived) alerts() []Alert {
	in := d.in
	r := d.rates
	alerts := []Alert{}

	if in.VacancyCost > 0 {
		alerts = append(alerts, Alert{
			Severity:    SeverityWarning,
			Title:       TitleOccupiedProperty,
			Description: "The property is occupied. Account for the cost and time needed to vacate it.",
		})
	}

	if in.RenovationCost > in.AuctionValue*r.RenovationAlertRatio {
		alerts = append(alerts, Alert{
			Severity: SeverityWarning,
			Title:    TitleHighRenovationCost,
			Description: fmt.Sprintf("Renovation costs exceed %s%% of the auction value. Check whether the deal still pays off.",
				percentLabel(r.RenovationAlertRatio*constants.PercentageMultiplier)),
		})
	}

	if in.AppraisalValue > 0 && d.savingsPercent < r.LowSavingsPercent {
		alerts = append(alerts, Alert{
			Severity: SeverityInfo,
			Title:    TitleLowSavings,
			Description: fmt.Sprintf("The discount against the appraisal value is below %s%%. Consider whether the deal is worth it.",
				percentLabel(r.LowSavingsPercent)),
		})
	}

	if in.Objective == Rent && d.rental {
		if d.effectiveReturn() < r.LowRentalReturnPercent {
			alerts = append(alerts, Alert{
				Severity: SeverityWarning,
				Title:    TitleLowRentalReturn,
				Description: fmt.Sprintf("The annual return is below %s%%. Compare it with other investment options.",
					percentLabel(r.LowRentalReturnPercent)),
			})
		}
		if d.netMonthlyIncome <= 0 {
			alerts = append(alerts, Alert{
				Severity:    SeverityWarning,
				Title:       TitleNegativeNetIncome,
				Description: "Rent does not cover the condominium fee and property tax.",
			})
		}
		if d.financing && d.monthlyCashFlow <= 0 {
			alerts = append(alerts, Alert{
				Severity:    SeverityWarning,
				Title:       TitleNegativeCashFlow,
				Description: "Net rent does not cover the installment, insurance and monthly expenses.",
			})
		}
	}

	if in.Financed && in.AnnualInterestRate > r.HighInterestRatePercent {
		alerts = append(alerts, Alert{
			Severity: SeverityWarning,
			Title:    TitleHighInterestRate,
			Description: fmt.Sprintf("The financing rate is above %s%% a year. Try to negotiate better terms.",
				percentLabel(r.HighInterestRatePercent)),
		})
	}

	if d.savingsPercent > r.GoodOpportunityPercent {
		alerts = append(alerts, Alert{
			Severity:    SeveritySuccess,
			Title:       TitleGoodOpportunity,
			Description: fmt.Sprintf("Excellent discount of %.1f%% against the appraisal value!", d.savingsPercent),
		})
	}

	if in.Objective == OwnUse {
		alerts = append(alerts, Alert{
			Severity:    SeverityInfo,
			Title:       TitleOwnUse,
			Description: "Profitability metrics do not apply to own use. Focus on the total acquisition cost.",
		})
	}

	return alerts
}

// percentLabel prints a threshold without float noise, e.g. 30 rather than 30.000000000000004.
func percentLabel(v float64) string {
	return strconv.FormatFloat(mathutil.Round(v), 'f', -1, 64)
}
