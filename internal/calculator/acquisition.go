package calculator

import (
	"github.com/iwvelando/auction-analyzer/pkg/mathutil"
)

const (
	notaryDescriptionFinanced   = "registration only (deed included in financing)"
	notaryDescriptionUnfinanced = "deed and registration"
)

// acquisition computes the up-front purchase costs. When the purchase is
// financed only the down payment enters the total: the rest of the price is
// paid by the loan and is accounted for in the financing figures.
func (d *derived) acquisition(res *Result) {
	in := d.in

	d.auctioneerFee = in.AuctionValue * d.rates.AuctioneerFeeRate
	d.transferTax = mathutil.ApplyPercentage(in.AuctionValue, in.ITBIPercent)

	if in.Financed {
		d.notaryCost = in.AuctionValue * d.rates.NotaryRateFinanced
		res.NotaryCostDescription = notaryDescriptionFinanced
	} else {
		d.notaryCost = in.AuctionValue * d.rates.NotaryRateUnfinanced
		res.NotaryCostDescription = notaryDescriptionUnfinanced
	}

	if in.UsesLawyer {
		d.lawyerFee = in.LawyerFee
	}

	// A manually entered property tax always wins over the bracket estimate.
	d.computedPropertyTax = d.rates.PropertyTaxBrackets.Monthly(in.AppraisalValue)
	d.effectivePropertyTax = d.computedPropertyTax
	if in.MonthlyPropertyTax > 0 {
		d.effectivePropertyTax = in.MonthlyPropertyTax
		res.PropertyTaxOverridden = true
	}

	d.acquisitionBase = in.AuctionValue
	if d.financing {
		d.acquisitionBase = d.downPayment
	}
	d.totalAcquisitionCost = d.acquisitionBase + d.transactionCosts()

	res.AuctioneerFee = d.auctioneerFee
	res.TransferTax = d.transferTax
	res.NotaryCost = d.notaryCost
	res.LawyerFee = d.lawyerFee
	res.VacancyCost = in.VacancyCost
	res.RenovationCost = in.RenovationCost
	res.AcquisitionBase = d.acquisitionBase
	res.TotalAcquisitionCost = d.totalAcquisitionCost
	res.ComputedMonthlyPropertyTax = d.computedPropertyTax
	res.EffectiveMonthlyPropertyTax = d.effectivePropertyTax
}

// transactionCosts is everything paid on top of the price itself.
func (d *derived) transactionCosts() float64 {
	return d.auctioneerFee + d.transferTax + d.notaryCost + d.lawyerFee + d.in.VacancyCost + d.in.RenovationCost
}
