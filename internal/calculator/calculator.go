// Package calculator is the auction purchase calculation engine. It turns a
// PropertyInput into acquisition costs, a financing summary, profitability
// figures for the chosen objective and a list of advisory alerts.
//
// Compute is a pure function: no I/O, no shared state, safe for concurrent
// use. It never fails; zero denominators yield zero and branches whose
// inputs are missing are skipped.
package calculator

import (
	"fmt"

	"github.com/iwvelando/auction-analyzer/pkg/loans"
)

// Calculator applies a fixed, validated Rates table.
type Calculator struct {
	rates Rates
}

// New validates rates and returns a Calculator bound to them.
func New(rates Rates) (*Calculator, error) {
	if err := rates.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rates: %w", err)
	}
	rates.PropertyTaxBrackets = append(rates.PropertyTaxBrackets[:0:0], rates.PropertyTaxBrackets...)
	return &Calculator{rates: rates}, nil
}

// Rates returns a copy of the rates in use.
func (c *Calculator) Rates() Rates {
	r := c.rates
	r.PropertyTaxBrackets = append(r.PropertyTaxBrackets[:0:0], r.PropertyTaxBrackets...)
	return r
}

var defaultCalculator = &Calculator{rates: DefaultRates()}

// Compute runs the engine with DefaultRates.
func Compute(input PropertyInput) Result {
	return defaultCalculator.Compute(input)
}

// derived carries the intermediate values shared by the sub-calculators and
// the alert rules.
type derived struct {
	in    PropertyInput
	rates Rates

	// acquisition
	auctioneerFee        float64
	transferTax          float64
	notaryCost           float64
	lawyerFee            float64
	computedPropertyTax  float64
	effectivePropertyTax float64
	acquisitionBase      float64
	totalAcquisitionCost float64

	// financing, valid when financing is true
	financing        bool
	downPayment      float64
	principal        float64
	termMonths       int
	sac              loans.SACSummary
	insuranceMonthly float64
	adminFeeMonthly  float64

	// rental, valid when rental is true
	rental               bool
	netMonthlyIncome     float64
	monthlyCashFlow      float64
	annualReturn         float64
	annualReturnFinanced float64

	savings        float64
	savingsPercent float64
}

// Compute runs every sub-calculator in order and assembles the Result.
func (c *Calculator) Compute(input PropertyInput) Result {
	d := &derived{in: input.sanitized(), rates: c.rates}
	var res Result

	d.prepareFinancing()
	d.acquisition(&res)
	d.financingFigures(&res)
	d.profitability(&res)
	d.holding(&res)
	res.Alerts = d.alerts()

	return res
}
