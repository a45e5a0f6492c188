package calculator

// Severity classifies an Alert.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
)

// Alert is an advisory message derived from the computed figures.
type Alert struct {
	Severity    Severity `json:"severity" yaml:"severity"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
}

// Result holds every figure produced by Compute. Pointer fields are nil when
// the branch that produces them did not run.
type Result struct {
	// Acquisition
	AuctioneerFee         float64 `json:"auctioneerFee" yaml:"auctioneerFee"`
	TransferTax           float64 `json:"transferTax" yaml:"transferTax"`
	NotaryCost            float64 `json:"notaryCost" yaml:"notaryCost"`
	NotaryCostDescription string  `json:"notaryCostDescription" yaml:"notaryCostDescription"`
	LawyerFee             float64 `json:"lawyerFee" yaml:"lawyerFee"`
	VacancyCost           float64 `json:"vacancyCost" yaml:"vacancyCost"`
	RenovationCost        float64 `json:"renovationCost" yaml:"renovationCost"`
	AcquisitionBase       float64 `json:"acquisitionBase" yaml:"acquisitionBase"`
	TotalAcquisitionCost  float64 `json:"totalAcquisitionCost" yaml:"totalAcquisitionCost"`

	// Property tax
	ComputedMonthlyPropertyTax  float64 `json:"computedMonthlyPropertyTax" yaml:"computedMonthlyPropertyTax"`
	EffectiveMonthlyPropertyTax float64 `json:"effectiveMonthlyPropertyTax" yaml:"effectiveMonthlyPropertyTax"`
	PropertyTaxOverridden       bool    `json:"propertyTaxOverridden" yaml:"propertyTaxOverridden"`

	// Financing
	DownPayment               *float64 `json:"downPayment,omitempty" yaml:"downPayment,omitempty"`
	FinancedPrincipal         *float64 `json:"financedPrincipal,omitempty" yaml:"financedPrincipal,omitempty"`
	TermMonths                *int     `json:"termMonths,omitempty" yaml:"termMonths,omitempty"`
	MonthlyAmortization       *float64 `json:"monthlyAmortization,omitempty" yaml:"monthlyAmortization,omitempty"`
	FirstInstallment          *float64 `json:"firstInstallment,omitempty" yaml:"firstInstallment,omitempty"`
	LastInstallment           *float64 `json:"lastInstallment,omitempty" yaml:"lastInstallment,omitempty"`
	AnnualInterestEstimate    *float64 `json:"annualInterestEstimate,omitempty" yaml:"annualInterestEstimate,omitempty"`
	TotalInterest             *float64 `json:"totalInterest,omitempty" yaml:"totalInterest,omitempty"`
	MandatoryInsuranceMonthly *float64 `json:"mandatoryInsuranceMonthly,omitempty" yaml:"mandatoryInsuranceMonthly,omitempty"`
	MandatoryInsuranceAnnual  *float64 `json:"mandatoryInsuranceAnnual,omitempty" yaml:"mandatoryInsuranceAnnual,omitempty"`
	AdministrativeFeeMonthly  *float64 `json:"administrativeFeeMonthly,omitempty" yaml:"administrativeFeeMonthly,omitempty"`
	TotalFinancingCost        *float64 `json:"totalFinancingCost,omitempty" yaml:"totalFinancingCost,omitempty"`

	// Resale
	SaleCostBase    *float64 `json:"saleCostBase,omitempty" yaml:"saleCostBase,omitempty"`
	GrossGain       *float64 `json:"grossGain,omitempty" yaml:"grossGain,omitempty"`
	CapitalGainsTax *float64 `json:"capitalGainsTax,omitempty" yaml:"capitalGainsTax,omitempty"`
	NetGain         *float64 `json:"netGain,omitempty" yaml:"netGain,omitempty"`
	ProfitMargin    *float64 `json:"profitMargin,omitempty" yaml:"profitMargin,omitempty"`

	// Rental
	NetMonthlyIncome     *float64 `json:"netMonthlyIncome,omitempty" yaml:"netMonthlyIncome,omitempty"`
	MonthlyCashFlow      *float64 `json:"monthlyCashFlow,omitempty" yaml:"monthlyCashFlow,omitempty"`
	AnnualReturn         *float64 `json:"annualReturn,omitempty" yaml:"annualReturn,omitempty"`
	AnnualReturnFinanced *float64 `json:"annualReturnFinanced,omitempty" yaml:"annualReturnFinanced,omitempty"`

	// Holding costs
	MonthlyHoldingCost       float64  `json:"monthlyHoldingCost" yaml:"monthlyHoldingCost"`
	PeriodHoldingCost        float64  `json:"periodHoldingCost" yaml:"periodHoldingCost"`
	MonthlyCostWithFinancing *float64 `json:"monthlyCostWithFinancing,omitempty" yaml:"monthlyCostWithFinancing,omitempty"`

	// Comparison with appraisal
	Savings        float64 `json:"savings" yaml:"savings"`
	SavingsPercent float64 `json:"savingsPercent" yaml:"savingsPercent"`

	Alerts []Alert `json:"alerts" yaml:"alerts"`
}

func ptr[T any](v T) *T {
	return &v
}
