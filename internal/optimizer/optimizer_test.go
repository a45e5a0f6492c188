package optimizer

import (
	"math"
	"strings"
	"testing"

	"github.com/iwvelando/auction-analyzer/internal/calculator"
	"github.com/iwvelando/auction-analyzer/pkg/testutil"
	"go.uber.org/zap"
)

func newRunner(t *testing.T) *Runner {
	t.Helper()
	calc, err := calculator.New(calculator.DefaultRates())
	if err != nil {
		t.Fatalf("calculator.New() error = %v", err)
	}
	runner, err := NewRunner(zap.NewNop(), calc)
	if err != nil {
		t.Fatalf("NewRunner() error = %v", err)
	}
	return runner
}

func TestMaxBidProfitMargin(t *testing.T) {
	runner := newRunner(t)

	summary, err := runner.MaxBid(testutil.ResaleInput(), Target{Metric: "margin", Minimum: 20})
	if err != nil {
		t.Fatalf("MaxBid() error = %v", err)
	}

	// margin = 0.85*(300000 - 1.08b) / 1.08b >= 0.20  =>  b <= 255000 / 1.134
	want := 255000 / 1.134
	if math.Abs(summary.Value-want) > 0.02 {
		t.Errorf("Value = %.2f, want %.2f", summary.Value, want)
	}
	if summary.Value > want {
		t.Errorf("Value = %.4f exceeds the exact limit %.4f", summary.Value, want)
	}
	if summary.Achieved < 20 {
		t.Errorf("Achieved = %v, want at least 20", summary.Achieved)
	}
	if !summary.Converged {
		t.Errorf("expected convergence")
	}
	if summary.Metric != MetricProfitMargin {
		t.Errorf("Metric = %q, want %q", summary.Metric, MetricProfitMargin)
	}
	if summary.Original != 200000 || summary.OriginalDisplay != "R$ 200.000,00" {
		t.Errorf("Original = %v (%q), want 200000", summary.Original, summary.OriginalDisplay)
	}
	if summary.Iterations == 0 {
		t.Errorf("expected bisection iterations")
	}
}

func TestMaxBidSavings(t *testing.T) {
	runner := newRunner(t)

	tests := []struct {
		name      string
		target    Target
		wantValue float64
		converged bool
		note      string
	}{
		{
			name:      "interior",
			target:    Target{Metric: MetricSavingsPercent, Minimum: 20},
			wantValue: 200000,
			converged: true,
		},
		{
			name:      "met at upper bound",
			target:    Target{Metric: MetricSavingsPercent, Minimum: -50},
			wantValue: 300000,
			converged: true,
			note:      "upper bound",
		},
		{
			name:      "explicit bounds",
			target:    Target{Metric: MetricSavingsPercent, Minimum: -50, MinBid: 1000, MaxBid: 150000},
			wantValue: 150000,
			converged: true,
			note:      "upper bound",
		},
		{
			name:      "unreachable",
			target:    Target{Metric: MetricSavingsPercent, Minimum: 100},
			wantValue: 1,
			converged: false,
			note:      "not reachable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary, err := runner.MaxBid(testutil.ResaleInput(), tt.target)
			if err != nil {
				t.Fatalf("MaxBid() error = %v", err)
			}
			if math.Abs(summary.Value-tt.wantValue) > 0.02 {
				t.Errorf("Value = %.2f, want %.2f", summary.Value, tt.wantValue)
			}
			if summary.Converged != tt.converged {
				t.Errorf("Converged = %v, want %v", summary.Converged, tt.converged)
			}
			if tt.note != "" && (len(summary.Notes) == 0 || !strings.Contains(summary.Notes[0], tt.note)) {
				t.Errorf("Notes = %v, want one containing %q", summary.Notes, tt.note)
			}
		})
	}
}

func TestMaxBidScalesDownPayment(t *testing.T) {
	runner := newRunner(t)

	in := testutil.FinancedRentalInput()
	in.MonthlyRent = testutil.Float(4000)

	summary, err := runner.MaxBid(in, Target{Metric: MetricAnnualReturn, Minimum: 10})
	if err != nil {
		t.Fatalf("MaxBid() error = %v", err)
	}
	if summary.Achieved < 10 {
		t.Errorf("Achieved = %v, want at least 10", summary.Achieved)
	}

	// The winning bid with a down payment scaled to 20% must reproduce the metric.
	scaled := withBid(in, summary.Value)
	if math.Abs(*scaled.DownPayment-summary.Value*0.2) > 1e-6 {
		t.Errorf("DownPayment = %v, want 20%% of %v", *scaled.DownPayment, summary.Value)
	}
	res := calculator.Compute(scaled)
	if res.AnnualReturnFinanced == nil || math.Abs(*res.AnnualReturnFinanced-summary.Achieved) > 1e-9 {
		t.Errorf("recomputed return = %v, want %v", res.AnnualReturnFinanced, summary.Achieved)
	}
}

func TestTargetValidate(t *testing.T) {
	resale := testutil.ResaleInput()

	tests := []struct {
		name    string
		target  Target
		wantErr bool
	}{
		{"margin on resale", Target{Metric: "profitMargin"}, false},
		{"savings on anything", Target{Metric: "savings"}, false},
		{"return needs rent", Target{Metric: "annualReturn"}, true},
		{"unknown metric", Target{Metric: "irr"}, true},
		{"negative bound", Target{Metric: "savings", MinBid: -1}, true},
		{"inverted bounds", Target{Metric: "savings", MinBid: 10, MaxBid: 5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.target.Validate(resale)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewRunnerNilCalculator(t *testing.T) {
	if _, err := NewRunner(nil, nil); err == nil {
		t.Errorf("NewRunner() expected error for nil calculator")
	}
}

func TestMaxBidNonPositiveRentalIncome(t *testing.T) {
	runner := newRunner(t)

	in := calculator.PropertyInput{
		Objective:            calculator.Rent,
		AppraisalValue:       250000,
		AuctionValue:         200000,
		ITBIPercent:          2,
		MonthlyRent:          testutil.Float(500),
		CondoFee:             800,
		AnalysisPeriodMonths: 12,
	}

	summary, err := runner.MaxBid(in, Target{Metric: MetricAnnualReturn, Minimum: -10})
	if err != nil {
		t.Fatalf("MaxBid() error = %v", err)
	}
	if summary.Converged {
		t.Errorf("expected no convergence when net income is not positive")
	}
	if summary.Value != in.AuctionValue {
		t.Errorf("Value = %.2f, want the current bid %.2f", summary.Value, in.AuctionValue)
	}

	res := calculator.Compute(in)
	if res.AnnualReturn == nil || math.Abs(summary.Achieved-*res.AnnualReturn) > 1e-9 {
		t.Errorf("Achieved = %v, want the return at the current bid %v", summary.Achieved, res.AnnualReturn)
	}
	if summary.Achieved < -10 {
		t.Errorf("Achieved = %v, the current bid should already meet -10", summary.Achieved)
	}
	if len(summary.Notes) == 0 || !strings.Contains(summary.Notes[0], "not positive") {
		t.Errorf("Notes = %v, want one explaining the non-positive income", summary.Notes)
	}
	if summary.Iterations != 0 {
		t.Errorf("Iterations = %d, want 0", summary.Iterations)
	}
}
