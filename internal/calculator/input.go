package calculator

import (
	"fmt"
	"strings"

	"github.com/iwvelando/auction-analyzer/pkg/mathutil"
)

// Objective is what the buyer intends to do with the property.
type Objective string

const (
	// Resell evaluates the purchase against an estimated resale value.
	Resell Objective = "resell"
	// Rent evaluates the purchase against a monthly rent.
	Rent Objective = "rent"
	// OwnUse skips profitability analysis.
	OwnUse Objective = "own_use"
)

// ParseObjective maps user-facing spellings onto an Objective.
func ParseObjective(s string) (Objective, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "resell", "resale", "sell":
		return Resell, nil
	case "rent", "rental":
		return Rent, nil
	case "own_use", "own-use", "ownuse", "own use", "personal":
		return OwnUse, nil
	default:
		return "", fmt.Errorf("unknown objective %q: expected resell, rent or own_use", s)
	}
}

// PropertyInput is the validated snapshot the engine works on.
//
// The engine assumes every amount is finite and non-negative. Rejecting
// negative or nonsensical values, and requiring the fields of the chosen
// objective, financing and lawyer branches, is the caller's job (see
// pkg/validation). Non-finite amounts are treated as zero.
type PropertyInput struct {
	Objective      Objective `json:"objective" yaml:"objective"`
	AppraisalValue float64   `json:"appraisalValue" yaml:"appraisalValue"`
	AuctionValue   float64   `json:"auctionValue" yaml:"auctionValue"`

	Financed           bool     `json:"financed" yaml:"financed"`
	AnnualInterestRate float64  `json:"annualInterestRate,omitempty" yaml:"annualInterestRate,omitempty"`
	DownPayment        *float64 `json:"downPayment,omitempty" yaml:"downPayment,omitempty"`
	FinancingTermYears int      `json:"financingTermYears,omitempty" yaml:"financingTermYears,omitempty"`

	UsesLawyer bool    `json:"usesLawyer" yaml:"usesLawyer"`
	LawyerFee  float64 `json:"lawyerFee,omitempty" yaml:"lawyerFee,omitempty"`

	ITBIPercent    float64 `json:"itbiPercent" yaml:"itbiPercent"`
	VacancyCost    float64 `json:"vacancyCost" yaml:"vacancyCost"`
	RenovationCost float64 `json:"renovationCost" yaml:"renovationCost"`

	EstimatedResaleValue *float64 `json:"estimatedResaleValue,omitempty" yaml:"estimatedResaleValue,omitempty"`
	MonthlyRent          *float64 `json:"monthlyRent,omitempty" yaml:"monthlyRent,omitempty"`

	CondoFee             float64 `json:"condoFee" yaml:"condoFee"`
	MonthlyPropertyTax   float64 `json:"monthlyPropertyTax" yaml:"monthlyPropertyTax"`
	OtherMonthlyExpenses float64 `json:"otherMonthlyExpenses" yaml:"otherMonthlyExpenses"`
	AnalysisPeriodMonths int     `json:"analysisPeriodMonths" yaml:"analysisPeriodMonths"`
}

// sanitized returns a copy with every non-finite amount replaced by zero.
// Optional amounts are copied so the caller's pointers are never shared.
func (in PropertyInput) sanitized() PropertyInput {
	out := in
	out.AppraisalValue = mathutil.Finite(in.AppraisalValue)
	out.AuctionValue = mathutil.Finite(in.AuctionValue)
	out.AnnualInterestRate = mathutil.Finite(in.AnnualInterestRate)
	out.LawyerFee = mathutil.Finite(in.LawyerFee)
	out.ITBIPercent = mathutil.Finite(in.ITBIPercent)
	out.VacancyCost = mathutil.Finite(in.VacancyCost)
	out.RenovationCost = mathutil.Finite(in.RenovationCost)
	out.CondoFee = mathutil.Finite(in.CondoFee)
	out.MonthlyPropertyTax = mathutil.Finite(in.MonthlyPropertyTax)
	out.OtherMonthlyExpenses = mathutil.Finite(in.OtherMonthlyExpenses)
	out.DownPayment = finitePtr(in.DownPayment)
	out.EstimatedResaleValue = finitePtr(in.EstimatedResaleValue)
	out.MonthlyRent = finitePtr(in.MonthlyRent)
	return out
}

func finitePtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	f := mathutil.Finite(*v)
	return &f
}
