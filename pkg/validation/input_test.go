package validation

import (
	"math"
	"strings"
	"testing"

	"github.com/iwvelando/auction-analyzer/internal/calculator"
	"github.com/iwvelando/auction-analyzer/pkg/testutil"
)

func TestValidateInput(t *testing.T) {
	rates := calculator.DefaultRates()

	tests := []struct {
		name    string
		modify  func(in *calculator.PropertyInput)
		base    func() calculator.PropertyInput
		wantErr []string
	}{
		{
			name: "valid resale input",
			base: testutil.ResaleInput,
		},
		{
			name: "valid financed rental input",
			base: testutil.FinancedRentalInput,
		},
		{
			name: "own use needs no profitability fields",
			base: testutil.ResaleInput,
			modify: func(in *calculator.PropertyInput) {
				in.Objective = calculator.OwnUse
				in.EstimatedResaleValue = nil
			},
		},
		{
			name:    "zero auction value",
			base:    testutil.ResaleInput,
			modify:  func(in *calculator.PropertyInput) { in.AuctionValue = 0 },
			wantErr: []string{"auctionValue must be greater than zero"},
		},
		{
			name:    "unknown objective",
			base:    testutil.ResaleInput,
			modify:  func(in *calculator.PropertyInput) { in.Objective = "flip" },
			wantErr: []string{"objective \"flip\""},
		},
		{
			name:    "negative renovation cost",
			base:    testutil.ResaleInput,
			modify:  func(in *calculator.PropertyInput) { in.RenovationCost = -1 },
			wantErr: []string{"renovationCost must not be negative"},
		},
		{
			name:    "infinite condo fee",
			base:    testutil.ResaleInput,
			modify:  func(in *calculator.PropertyInput) { in.CondoFee = math.Inf(1) },
			wantErr: []string{"condoFee must be a finite number"},
		},
		{
			name:    "financed without rate",
			base:    testutil.FinancedRentalInput,
			modify:  func(in *calculator.PropertyInput) { in.AnnualInterestRate = 0 },
			wantErr: []string{"annualInterestRate must be greater than zero"},
		},
		{
			name:    "down payment above auction value",
			base:    testutil.FinancedRentalInput,
			modify:  func(in *calculator.PropertyInput) { in.DownPayment = testutil.Float(200000) },
			wantErr: []string{"downPayment 200000.00 exceeds auctionValue"},
		},
		{
			name:    "negative term",
			base:    testutil.FinancedRentalInput,
			modify:  func(in *calculator.PropertyInput) { in.FinancingTermYears = -5 },
			wantErr: []string{"financingTermYears must not be negative"},
		},
		{
			name:    "lawyer without fee",
			base:    testutil.ResaleInput,
			modify:  func(in *calculator.PropertyInput) { in.UsesLawyer = true },
			wantErr: []string{"lawyerFee must be greater than zero"},
		},
		{
			name:    "transfer tax above maximum",
			base:    testutil.ResaleInput,
			modify:  func(in *calculator.PropertyInput) { in.ITBIPercent = 3.5 },
			wantErr: []string{"itbiPercent 3.50 exceeds the maximum of 3.00"},
		},
		{
			name:    "resale without resale value",
			base:    testutil.ResaleInput,
			modify:  func(in *calculator.PropertyInput) { in.EstimatedResaleValue = nil },
			wantErr: []string{"estimatedResaleValue must be greater than zero"},
		},
		{
			name:    "rent without rent",
			base:    testutil.FinancedRentalInput,
			modify:  func(in *calculator.PropertyInput) { in.MonthlyRent = testutil.Float(0) },
			wantErr: []string{"monthlyRent must be greater than zero"},
		},
		{
			name:    "zero analysis period",
			base:    testutil.ResaleInput,
			modify:  func(in *calculator.PropertyInput) { in.AnalysisPeriodMonths = 0 },
			wantErr: []string{"analysisPeriodMonths must be at least 1"},
		},
		{
			name: "every problem is reported",
			base: testutil.FinancedRentalInput,
			modify: func(in *calculator.PropertyInput) {
				in.AuctionValue = 0
				in.AnnualInterestRate = 0
				in.MonthlyRent = nil
			},
			wantErr: []string{
				"auctionValue must be greater than zero",
				"annualInterestRate must be greater than zero",
				"monthlyRent must be greater than zero",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tt.base()
			if tt.modify != nil {
				tt.modify(&in)
			}

			err := ValidateInput(in, rates)
			if len(tt.wantErr) == 0 {
				if err != nil {
					t.Fatalf("ValidateInput() unexpected error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("ValidateInput() expected error containing %q, got nil", tt.wantErr)
			}
			for _, want := range tt.wantErr {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("ValidateInput() error = %q, want it to contain %q", err.Error(), want)
				}
			}
		})
	}
}

func TestInputWarnings(t *testing.T) {
	tests := []struct {
		name     string
		input    func() calculator.PropertyInput
		contains []string
	}{
		{
			name:  "clean resale input",
			input: testutil.ResaleInput,
		},
		{
			name: "financing terms without financing",
			input: func() calculator.PropertyInput {
				in := testutil.ResaleInput()
				in.AnnualInterestRate = 9
				return in
			},
			contains: []string{"financing terms are set but financed is false"},
		},
		{
			name: "lawyer fee without lawyer",
			input: func() calculator.PropertyInput {
				in := testutil.ResaleInput()
				in.LawyerFee = 3000
				return in
			},
			contains: []string{"lawyerFee is set but usesLawyer is false"},
		},
		{
			name: "rent on a resale",
			input: func() calculator.PropertyInput {
				in := testutil.ResaleInput()
				in.MonthlyRent = testutil.Float(1500)
				return in
			},
			contains: []string{"monthlyRent is ignored for objective resell"},
		},
		{
			name: "property tax override",
			input: func() calculator.PropertyInput {
				in := testutil.FinancedRentalInput()
				in.MonthlyPropertyTax = 120
				in.EstimatedResaleValue = testutil.Float(300000)
				return in
			},
			contains: []string{
				"estimatedResaleValue is ignored for objective rent",
				"monthlyPropertyTax is set",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := InputWarnings(tt.input())
			if len(warnings) != len(tt.contains) {
				t.Fatalf("InputWarnings() = %v, want %d warnings", warnings, len(tt.contains))
			}
			for i, want := range tt.contains {
				if !strings.Contains(warnings[i], want) {
					t.Errorf("warning[%d] = %q, want it to contain %q", i, warnings[i], want)
				}
			}
		})
	}
}
