package calculator

import (
	"errors"
	"fmt"
	"sort"

	"github.com/iwvelando/auction-analyzer/pkg/constants"
	"github.com/iwvelando/auction-analyzer/pkg/propertytax"
)

// Rates is the static table of fees, tax rates and alert thresholds the
// engine applies. Rates are fractions unless the name says Percent.
type Rates struct {
	AuctioneerFeeRate             float64 `json:"auctioneerFeeRate" yaml:"auctioneerFeeRate"`
	NotaryRateFinanced            float64 `json:"notaryRateFinanced" yaml:"notaryRateFinanced"`
	NotaryRateUnfinanced          float64 `json:"notaryRateUnfinanced" yaml:"notaryRateUnfinanced"`
	CapitalGainsTaxRate           float64 `json:"capitalGainsTaxRate" yaml:"capitalGainsTaxRate"`
	MandatoryInsuranceMonthlyRate float64 `json:"mandatoryInsuranceMonthlyRate" yaml:"mandatoryInsuranceMonthlyRate"`
	AdministrativeFeeMonthly      float64 `json:"administrativeFeeMonthly" yaml:"administrativeFeeMonthly"`
	DefaultDownPaymentRate        float64 `json:"defaultDownPaymentRate" yaml:"defaultDownPaymentRate"`
	DefaultFinancingTermYears     int     `json:"defaultFinancingTermYears" yaml:"defaultFinancingTermYears"`
	DefaultITBIPercent            float64 `json:"defaultItbiPercent" yaml:"defaultItbiPercent"`
	MaxITBIPercent                float64 `json:"maxItbiPercent" yaml:"maxItbiPercent"`

	RenovationAlertRatio    float64 `json:"renovationAlertRatio" yaml:"renovationAlertRatio"`
	LowSavingsPercent       float64 `json:"lowSavingsPercent" yaml:"lowSavingsPercent"`
	LowRentalReturnPercent  float64 `json:"lowRentalReturnPercent" yaml:"lowRentalReturnPercent"`
	HighInterestRatePercent float64 `json:"highInterestRatePercent" yaml:"highInterestRatePercent"`
	GoodOpportunityPercent  float64 `json:"goodOpportunityPercent" yaml:"goodOpportunityPercent"`

	PropertyTaxBrackets propertytax.Table `json:"propertyTaxBrackets" yaml:"propertyTaxBrackets"`
}

// DefaultRates returns the rates of the modelled jurisdiction.
func DefaultRates() Rates {
	return Rates{
		AuctioneerFeeRate:             constants.AuctioneerFeeRate,
		NotaryRateFinanced:            constants.NotaryRateFinanced,
		NotaryRateUnfinanced:          constants.NotaryRateUnfinanced,
		CapitalGainsTaxRate:           constants.CapitalGainsTaxRate,
		MandatoryInsuranceMonthlyRate: constants.MandatoryInsuranceMonthlyRate,
		AdministrativeFeeMonthly:      constants.AdministrativeFeeMonthly,
		DefaultDownPaymentRate:        constants.DefaultDownPaymentRate,
		DefaultFinancingTermYears:     constants.DefaultFinancingTermYears,
		DefaultITBIPercent:            constants.DefaultITBIPercent,
		MaxITBIPercent:                constants.MaxITBIPercent,
		RenovationAlertRatio:          constants.RenovationAlertRatio,
		LowSavingsPercent:             constants.LowSavingsPercent,
		LowRentalReturnPercent:        constants.LowRentalReturnPercent,
		HighInterestRatePercent:       constants.HighInterestRatePercent,
		GoodOpportunityPercent:        constants.GoodOpportunityPercent,
		PropertyTaxBrackets:           propertytax.DefaultTable(),
	}
}

// Validate reports every problem with the table at once.
func (r Rates) Validate() error {
	var errs []error

	nonNegative := map[string]float64{
		"auctioneerFeeRate":             r.AuctioneerFeeRate,
		"notaryRateFinanced":            r.NotaryRateFinanced,
		"notaryRateUnfinanced":          r.NotaryRateUnfinanced,
		"capitalGainsTaxRate":           r.CapitalGainsTaxRate,
		"mandatoryInsuranceMonthlyRate": r.MandatoryInsuranceMonthlyRate,
		"administrativeFeeMonthly":      r.AdministrativeFeeMonthly,
		"defaultDownPaymentRate":        r.DefaultDownPaymentRate,
		"defaultItbiPercent":            r.DefaultITBIPercent,
		"maxItbiPercent":                r.MaxITBIPercent,
		"renovationAlertRatio":          r.RenovationAlertRatio,
		"lowSavingsPercent":             r.LowSavingsPercent,
		"lowRentalReturnPercent":        r.LowRentalReturnPercent,
		"highInterestRatePercent":       r.HighInterestRatePercent,
		"goodOpportunityPercent":        r.GoodOpportunityPercent,
	}
	for _, name := range sortedKeys(nonNegative) {
		if nonNegative[name] < 0 {
			errs = append(errs, fmt.Errorf("rate %s must not be negative, got %v", name, nonNegative[name]))
		}
	}

	if r.DefaultDownPaymentRate > 1 {
		errs = append(errs, fmt.Errorf("rate defaultDownPaymentRate must be at most 1, got %v", r.DefaultDownPaymentRate))
	}
	if r.DefaultFinancingTermYears <= 0 {
		errs = append(errs, fmt.Errorf("rate defaultFinancingTermYears must be positive, got %d", r.DefaultFinancingTermYears))
	}
	if r.DefaultITBIPercent > r.MaxITBIPercent {
		errs = append(errs, fmt.Errorf("rate defaultItbiPercent %v exceeds maxItbiPercent %v", r.DefaultITBIPercent, r.MaxITBIPercent))
	}
	if err := r.PropertyTaxBrackets.Validate(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
