package validation

import (
	"errors"
	"fmt"
	"math"

	"github.com/iwvelando/auction-analyzer/internal/calculator"
)

// ValidateInput applies the checks the calculation engine relies on the
// caller to make: presence and positivity of the fields each branch needs
// and non-negativity of every amount. All problems are reported together.
func ValidateInput(in calculator.PropertyInput, rates calculator.Rates) error {
	var errs []error

	switch in.Objective {
	case calculator.Resell, calculator.Rent, calculator.OwnUse:
	default:
		errs = append(errs, fmt.Errorf("objective %q is not one of resell, rent, own_use", in.Objective))
	}

	amounts := []struct {
		name  string
		value float64
	}{
		{"appraisalValue", in.AppraisalValue},
		{"auctionValue", in.AuctionValue},
		{"annualInterestRate", in.AnnualInterestRate},
		{"lawyerFee", in.LawyerFee},
		{"itbiPercent", in.ITBIPercent},
		{"vacancyCost", in.VacancyCost},
		{"renovationCost", in.RenovationCost},
		{"condoFee", in.CondoFee},
		{"monthlyPropertyTax", in.MonthlyPropertyTax},
		{"otherMonthlyExpenses", in.OtherMonthlyExpenses},
	}
	for _, a := range amounts {
		if err := nonNegative(a.name, a.value); err != nil {
			errs = append(errs, err)
		}
	}
	optional := []struct {
		name  string
		value *float64
	}{
		{"downPayment", in.DownPayment},
		{"estimatedResaleValue", in.EstimatedResaleValue},
		{"monthlyRent", in.MonthlyRent},
	}
	for _, o := range optional {
		if o.value == nil {
			continue
		}
		if err := nonNegative(o.name, *o.value); err != nil {
			errs = append(errs, err)
		}
	}

	if in.AuctionValue <= 0 {
		errs = append(errs, errors.New("auctionValue must be greater than zero"))
	}

	if in.Financed {
		if in.AnnualInterestRate <= 0 {
			errs = append(errs, errors.New("annualInterestRate must be greater than zero when financed"))
		}
		if in.DownPayment != nil && *in.DownPayment > in.AuctionValue {
			errs = append(errs, fmt.Errorf("downPayment %.2f exceeds auctionValue %.2f", *in.DownPayment, in.AuctionValue))
		}
		if in.FinancingTermYears < 0 {
			errs = append(errs, fmt.Errorf("financingTermYears must not be negative, got %d", in.FinancingTermYears))
		}
	}

	if in.UsesLawyer && in.LawyerFee <= 0 {
		errs = append(errs, errors.New("lawyerFee must be greater than zero when a lawyer is used"))
	}

	if in.ITBIPercent > rates.MaxITBIPercent {
		errs = append(errs, fmt.Errorf("itbiPercent %.2f exceeds the maximum of %.2f", in.ITBIPercent, rates.MaxITBIPercent))
	}

	switch in.Objective {
	case calculator.Resell:
		if in.EstimatedResaleValue == nil || *in.EstimatedResaleValue <= 0 {
			errs = append(errs, errors.New("estimatedResaleValue must be greater than zero when reselling"))
		}
	case calculator.Rent:
		if in.MonthlyRent == nil || *in.MonthlyRent <= 0 {
			errs = append(errs, errors.New("monthlyRent must be greater than zero when renting"))
		}
	}

	if in.AnalysisPeriodMonths < 1 {
		errs = append(errs, fmt.Errorf("analysisPeriodMonths must be at least 1, got %d", in.AnalysisPeriodMonths))
	}

	return errors.Join(errs...)
}

// InputWarnings lists values that are present but ignored because the
// branch that would use them is inactive.
func InputWarnings(in calculator.PropertyInput) []string {
	var warnings []string

	if !in.Financed {
		if in.AnnualInterestRate > 0 || in.DownPayment != nil || in.FinancingTermYears > 0 {
			warnings = append(warnings, "financing terms are set but financed is false - they will be ignored")
		}
	}
	if !in.UsesLawyer && in.LawyerFee > 0 {
		warnings = append(warnings, "lawyerFee is set but usesLawyer is false - it will be ignored")
	}
	if in.Objective != calculator.Resell && in.EstimatedResaleValue != nil {
		warnings = append(warnings, fmt.Sprintf("estimatedResaleValue is ignored for objective %s", in.Objective))
	}
	if in.Objective != calculator.Rent && in.MonthlyRent != nil {
		warnings = append(warnings, fmt.Sprintf("monthlyRent is ignored for objective %s", in.Objective))
	}
	if in.MonthlyPropertyTax > 0 {
		warnings = append(warnings, "monthlyPropertyTax is set - the bracket estimate will not be used")
	}

	return warnings
}

func nonNegative(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s must be a finite number", name)
	}
	if v < 0 {
		return fmt.Errorf("%s must not be negative, got %.2f", name, v)
	}
	return nil
}
