// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/auction-analyzer/internal/calculator"
)

// Float returns a pointer to v, for optional input fields.
func Float(v float64) *float64 {
	return &v
}

// ResaleInput is an unfinanced resale purchase: auction 200000, appraisal
// 250000, ITBI 2% and an estimated resale value of 300000.
func ResaleInput() calculator.PropertyInput {
	return calculator.PropertyInput{
		Objective:            calculator.Resell,
		AppraisalValue:       250000,
		AuctionValue:         200000,
		ITBIPercent:          2,
		EstimatedResaleValue: Float(300000),
		AnalysisPeriodMonths: 12,
	}
}

// FinancedRentalInput is a financed rental purchase with a 20% down payment.
func FinancedRentalInput() calculator.PropertyInput {
	return calculator.PropertyInput{
		Objective:            calculator.Rent,
		AppraisalValue:       250000,
		AuctionValue:         180000,
		Financed:             true,
		AnnualInterestRate:   10.5,
		DownPayment:          Float(36000),
		FinancingTermYears:   30,
		ITBIPercent:          2,
		MonthlyRent:          Float(1800),
		CondoFee:             300,
		OtherMonthlyExpenses: 50,
		AnalysisPeriodMonths: 12,
	}
}

// FindAlert finds an alert by title.
// Returns a pointer to the alert if found, nil otherwise.
func FindAlert(alerts []calculator.Alert, title string) *calculator.Alert {
	for i := range alerts {
		if alerts[i].Title == title {
			return &alerts[i]
		}
	}
	return nil
}

// AlertTitles lists the alert titles in order.
func AlertTitles(alerts []calculator.Alert) []string {
	titles := make([]string, 0, len(alerts))
	for _, alert := range alerts {
		titles = append(titles, alert.Title)
	}
	return titles
}
