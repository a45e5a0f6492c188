package output

import (
	"github.com/iwvelando/auction-analyzer/internal/calculator"
	"github.com/iwvelando/auction-analyzer/pkg/format"
)

// Unit tells how a Field value is displayed.
type Unit int

const (
	UnitCurrency Unit = iota
	UnitPercent
	UnitMonths
)

// Section names, in display order.
const (
	SectionAcquisition   = "Acquisition"
	SectionFinancing     = "Financing"
	SectionProfitability = "Profitability"
	SectionHolding       = "Holding costs"
	SectionMaxBid        = "Maximum bid"
)

// Field is one labelled figure of a result.
type Field struct {
	Section string
	Key     string
	Label   string
	Value   float64
	Unit    Unit
}

// Formatted renders the value for people.
func (f Field) Formatted() string {
	switch f.Unit {
	case UnitPercent:
		return format.Percent(f.Value)
	case UnitMonths:
		return printer().Sprintf("%d months", int(f.Value))
	default:
		return format.Currency(f.Value)
	}
}

// Fields lists the figures of res in display order. Optional figures that
// were not computed are left out.
func Fields(res calculator.Result) []Field {
	var fields []Field
	add := func(section, key, label string, value float64, unit Unit) {
		fields = append(fields, Field{Section: section, Key: key, Label: label, Value: value, Unit: unit})
	}
	addOpt := func(section, key, label string, value *float64, unit Unit) {
		if value != nil {
			add(section, key, label, *value, unit)
		}
	}

	add(SectionAcquisition, "auctioneerFee", "Auctioneer fee", res.AuctioneerFee, UnitCurrency)
	add(SectionAcquisition, "transferTax", "Transfer tax (ITBI)", res.TransferTax, UnitCurrency)
	add(SectionAcquisition, "notaryCost", "Notary ("+res.NotaryCostDescription+")", res.NotaryCost, UnitCurrency)
	if res.LawyerFee > 0 {
		add(SectionAcquisition, "lawyerFee", "Lawyer fee", res.LawyerFee, UnitCurrency)
	}
	if res.VacancyCost > 0 {
		add(SectionAcquisition, "vacancyCost", "Vacancy cost", res.VacancyCost, UnitCurrency)
	}
	if res.RenovationCost > 0 {
		add(SectionAcquisition, "renovationCost", "Renovation cost", res.RenovationCost, UnitCurrency)
	}
	add(SectionAcquisition, "acquisitionBase", "Cash paid for the property", res.AcquisitionBase, UnitCurrency)
	add(SectionAcquisition, "totalAcquisitionCost", "Total acquisition cost", res.TotalAcquisitionCost, UnitCurrency)
	add(SectionAcquisition, "savings", "Savings against appraisal", res.Savings, UnitCurrency)
	add(SectionAcquisition, "savingsPercent", "Savings against appraisal (%)", res.SavingsPercent, UnitPercent)

	addOpt(SectionFinancing, "downPayment", "Down payment", res.DownPayment, UnitCurrency)
	addOpt(SectionFinancing, "financedPrincipal", "Financed principal", res.FinancedPrincipal, UnitCurrency)
	if res.TermMonths != nil {
		add(SectionFinancing, "termMonths", "Term", float64(*res.TermMonths), UnitMonths)
	}
	addOpt(SectionFinancing, "monthlyAmortization", "Monthly amortization", res.MonthlyAmortization, UnitCurrency)
	addOpt(SectionFinancing, "firstInstallment", "First installment", res.FirstInstallment, UnitCurrency)
	addOpt(SectionFinancing, "lastInstallment", "Last installment", res.LastInstallment, UnitCurrency)
	addOpt(SectionFinancing, "annualInterestEstimate", "Interest in the first year (nominal)", res.AnnualInterestEstimate, UnitCurrency)
	addOpt(SectionFinancing, "totalInterest", "Total interest", res.TotalInterest, UnitCurrency)
	addOpt(SectionFinancing, "mandatoryInsuranceMonthly", "Mandatory insurance (monthly)", res.MandatoryInsuranceMonthly, UnitCurrency)
	addOpt(SectionFinancing, "mandatoryInsuranceAnnual", "Mandatory insurance (annual)", res.MandatoryInsuranceAnnual, UnitCurrency)
	addOpt(SectionFinancing, "administrativeFeeMonthly", "Administrative fee (monthly)", res.AdministrativeFeeMonthly, UnitCurrency)
	addOpt(SectionFinancing, "totalFinancingCost", "Total financing cost", res.TotalFinancingCost, UnitCurrency)

	addOpt(SectionProfitability, "saleCostBase", "Cost base for resale", res.SaleCostBase, UnitCurrency)
	addOpt(SectionProfitability, "grossGain", "Gross gain", res.GrossGain, UnitCurrency)
	addOpt(SectionProfitability, "capitalGainsTax", "Capital gains tax", res.CapitalGainsTax, UnitCurrency)
	addOpt(SectionProfitability, "netGain", "Net gain", res.NetGain, UnitCurrency)
	addOpt(SectionProfitability, "profitMargin", "Profit margin", res.ProfitMargin, UnitPercent)
	addOpt(SectionProfitability, "netMonthlyIncome", "Net monthly income", res.NetMonthlyIncome, UnitCurrency)
	addOpt(SectionProfitability, "monthlyCashFlow", "Monthly cash flow", res.MonthlyCashFlow, UnitCurrency)
	addOpt(SectionProfitability, "annualReturn", "Annual return", res.AnnualReturn, UnitPercent)
	addOpt(SectionProfitability, "annualReturnFinanced", "Annual return (financed)", res.AnnualReturnFinanced, UnitPercent)

	propertyTaxLabel := "Property tax (IPTU, estimated)"
	if res.PropertyTaxOverridden {
		propertyTaxLabel = "Property tax (IPTU, informed)"
	}
	add(SectionHolding, "effectiveMonthlyPropertyTax", propertyTaxLabel, res.EffectiveMonthlyPropertyTax, UnitCurrency)
	add(SectionHolding, "monthlyHoldingCost", "Monthly holding cost", res.MonthlyHoldingCost, UnitCurrency)
	add(SectionHolding, "periodHoldingCost", "Holding cost over the period", res.PeriodHoldingCost, UnitCurrency)
	addOpt(SectionHolding, "monthlyCostWithFinancing", "Monthly cost with financing", res.MonthlyCostWithFinancing, UnitCurrency)

	return fields
}

// Formatted maps each field key to its rendered value.
func Formatted(res calculator.Result) map[string]string {
	fields := Fields(res)
	out := make(map[string]string, len(fields))
	for _, f := range fields {
		out[f.Key] = f.Formatted()
	}
	return out
}
