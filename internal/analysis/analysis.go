// Package analysis ties configuration, input validation and the calculation
// engine together into a Report.
package analysis

import (
	"errors"
	"fmt"

	"github.com/iwvelando/auction-analyzer/internal/calculator"
	"github.com/iwvelando/auction-analyzer/internal/config"
	"github.com/iwvelando/auction-analyzer/internal/optimizer"
	"github.com/iwvelando/auction-analyzer/pkg/optimization"
	"github.com/iwvelando/auction-analyzer/pkg/validation"
	"go.uber.org/zap"
)

// ErrInvalidInput is wrapped by every error caused by the property input
// rather than by the rates or the environment.
var ErrInvalidInput = errors.New("invalid property input")

// Report is the outcome of one analysis.
type Report struct {
	Input    calculator.PropertyInput `json:"input" yaml:"input"`
	Result   calculator.Result        `json:"result" yaml:"result"`
	Warnings []string                 `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	MaxBid   *optimization.Summary    `json:"maxBid,omitempty" yaml:"maxBid,omitempty"`
}

// Analyze runs the scenario described by conf.
func Analyze(logger *zap.Logger, conf config.Configuration) (*Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	calc, err := conf.Calculator()
	if err != nil {
		return nil, err
	}

	in, err := conf.PropertyInput()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	report, err := Evaluate(logger, calc, in)
	if err != nil {
		return nil, err
	}

	if conf.Optimizer != nil && conf.Optimizer.Metric != "" {
		summary, err := MaxBid(logger, calc, in, optimizer.Target{
			Metric:  conf.Optimizer.Metric,
			Minimum: conf.Optimizer.Target,
			MinBid:  conf.Optimizer.MinBid,
			MaxBid:  conf.Optimizer.MaxBid,
		})
		if err != nil {
			return nil, err
		}
		report.MaxBid = summary
	}

	return report, nil
}

// MaxBid searches for the highest bid on in that meets target.
func MaxBid(logger *zap.Logger, calc *calculator.Calculator, in calculator.PropertyInput, target optimizer.Target) (*optimization.Summary, error) {
	runner, err := optimizer.NewRunner(logger, calc)
	if err != nil {
		return nil, err
	}
	summary, err := runner.MaxBid(in, target)
	if err != nil {
		return nil, fmt.Errorf("maximum bid search failed: %w", err)
	}
	return &summary, nil
}

// Evaluate validates in against the rates of calc and computes it. Warnings
// about ignored input fields are carried on the Report.
func Evaluate(logger *zap.Logger, calc *calculator.Calculator, in calculator.PropertyInput) (*Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := validation.ValidateInput(in, calc.Rates()); err != nil {
		logger.Debug("property input rejected",
			zap.String("op", "analysis.Evaluate"),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	warnings := validation.InputWarnings(in)
	for _, warning := range warnings {
		logger.Warn("input warning: "+warning,
			zap.String("op", "analysis.Evaluate"),
		)
	}

	result := calc.Compute(in)

	logger.Debug("computed auction analysis",
		zap.String("op", "analysis.Evaluate"),
		zap.String("objective", string(in.Objective)),
		zap.Bool("financed", in.Financed),
		zap.Float64("totalAcquisitionCost", result.TotalAcquisitionCost),
		zap.Float64("savingsPercent", result.SavingsPercent),
		zap.Int("alerts", len(result.Alerts)),
	)

	return &Report{
		Input:    in,
		Result:   result,
		Warnings: warnings,
	}, nil
}
