// Package optimizer searches for the highest auction bid that still meets a
// profitability target.
package optimizer

import (
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/auction-analyzer/internal/calculator"
	"github.com/iwvelando/auction-analyzer/pkg/constants"
	"github.com/iwvelando/auction-analyzer/pkg/format"
	"github.com/iwvelando/auction-analyzer/pkg/mathutil"
	"github.com/iwvelando/auction-analyzer/pkg/optimization"
	"go.uber.org/zap"
)

// Supported metrics.
const (
	MetricProfitMargin   = "profitMargin"
	MetricAnnualReturn   = "annualReturn"
	MetricSavingsPercent = "savingsPercent"
)

const maxIterations = 100

// Target describes the search. Minimum is a percentage the metric must reach.
// MinBid and MaxBid bound the search; zero values pick defaults.
type Target struct {
	Metric  string
	Minimum float64
	MinBid  float64
	MaxBid  float64
}

// CanonicalMetric maps user spellings onto a supported metric name.
func CanonicalMetric(metric string) string {
	switch strings.ToLower(strings.TrimSpace(metric)) {
	case "profitmargin", "profit_margin", "margin":
		return MetricProfitMargin
	case "annualreturn", "annual_return", "return":
		return MetricAnnualReturn
	case "savingspercent", "savings_percent", "savings":
		return MetricSavingsPercent
	default:
		return ""
	}
}

// Validate checks the target against the property it will be applied to.
func (t Target) Validate(in calculator.PropertyInput) error {
	switch CanonicalMetric(t.Metric) {
	case MetricProfitMargin:
		if in.Objective != calculator.Resell {
			return fmt.Errorf("metric %s requires objective %s", MetricProfitMargin, calculator.Resell)
		}
	case MetricAnnualReturn:
		if in.Objective != calculator.Rent {
			return fmt.Errorf("metric %s requires objective %s", MetricAnnualReturn, calculator.Rent)
		}
	case MetricSavingsPercent:
	default:
		return fmt.Errorf("optimizer metric %q is not supported", t.Metric)
	}
	if t.MinBid < 0 || t.MaxBid < 0 {
		return fmt.Errorf("optimizer bounds must not be negative")
	}
	if t.MaxBid > 0 && t.MinBid > t.MaxBid {
		return fmt.Errorf("optimizer minBid %.2f exceeds maxBid %.2f", t.MinBid, t.MaxBid)
	}
	return nil
}

// Runner evaluates bids with a fixed Calculator.
type Runner struct {
	logger *zap.Logger
	calc   *calculator.Calculator
}

type evaluation struct {
	bid    float64
	metric float64
	target float64
}

func (e evaluation) feasible() bool {
	return e.metric >= e.target
}

func (e evaluation) headroom() float64 {
	return e.metric - e.target
}

// NewRunner returns a Runner bound to calc.
func NewRunner(logger *zap.Logger, calc *calculator.Calculator) (*Runner, error) {
	if calc == nil {
		return nil, fmt.Errorf("calculator cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{logger: logger, calc: calc}, nil
}

// MaxBid bisects the auction value between the bounds of target and returns
// the highest bid, to the cent, whose metric still reaches target.Minimum.
// The metrics fall as the bid rises, except the unfinanced rental return
// when net monthly income is not positive; that case is not searched.
func (r *Runner) MaxBid(in calculator.PropertyInput, target Target) (optimization.Summary, error) {
	if err := target.Validate(in); err != nil {
		return optimization.Summary{}, err
	}
	metric := CanonicalMetric(target.Metric)
	minBid, maxBid := bounds(in, target)

	summary := optimization.Summary{
		Metric:          metric,
		Target:          target.Minimum,
		Original:        in.AuctionValue,
		OriginalDisplay: format.Currency(in.AuctionValue),
	}

	finish := func(e evaluation, iterations int, converged bool, notes ...string) optimization.Summary {
		summary.Value = e.bid
		summary.ValueDisplay = format.Currency(e.bid)
		summary.Achieved = e.metric
		summary.Headroom = e.headroom()
		summary.Iterations = iterations
		summary.Converged = converged
		summary.Notes = notes

		r.logger.Info("optimizer found maximum bid",
			zap.String("op", "optimizer.MaxBid"),
			zap.String("metric", metric),
			zap.Float64("target", target.Minimum),
			zap.Float64("originalBid", in.AuctionValue),
			zap.Float64("maxBid", e.bid),
			zap.Float64("achieved", e.metric),
			zap.Int("iterations", iterations),
			zap.Bool("converged", converged),
		)
		return summary
	}

	if metric == MetricAnnualReturn && !in.Financed {
		current := r.calc.Compute(in)
		if current.NetMonthlyIncome != nil && *current.NetMonthlyIncome <= 0 {
			e := evaluation{bid: in.AuctionValue, metric: metricValue(current, metric), target: target.Minimum}
			return finish(e, 0, false, fmt.Sprintf(
				"net monthly income of %s is not positive, %s grows with the bid and has no maximum",
				format.Currency(*current.NetMonthlyIncome), metric,
			)), nil
		}
	}

	lower := r.evaluate(in, metric, target.Minimum, minBid)
	upper := r.evaluate(in, metric, target.Minimum, maxBid)

	if !lower.feasible() {
		return finish(lower, 0, false, fmt.Sprintf(
			"%s of %.2f%% is not reachable even at a bid of %s",
			metric, target.Minimum, format.Currency(minBid),
		)), nil
	}
	if upper.feasible() {
		return finish(upper, 0, true, fmt.Sprintf(
			"target is met at the upper bound %s", format.Currency(maxBid),
		)), nil
	}

	lo, hi := lower, upper
	iterations := 0
	for iterations < maxIterations && !mathutil.WithinTolerance(hi.bid, lo.bid, constants.CurrencyTolerance) {
		iterations++
		mid := r.evaluate(in, metric, target.Minimum, (lo.bid+hi.bid)/2)
		if mid.feasible() {
			lo = mid
		} else {
			hi = mid
		}
	}

	best := lo
	if floored := math.Floor(lo.bid*constants.DecimalPrecision) / constants.DecimalPrecision; floored >= minBid {
		if e := r.evaluate(in, metric, target.Minimum, floored); e.feasible() {
			best = e
		}
	}

	return finish(best, iterations, mathutil.WithinTolerance(hi.bid, lo.bid, constants.CurrencyTolerance)), nil
}

func (r *Runner) evaluate(in calculator.PropertyInput, metric string, minimum, bid float64) evaluation {
	res := r.calc.Compute(withBid(in, bid))
	return evaluation{bid: bid, metric: metricValue(res, metric), target: minimum}
}

// withBid replaces the auction value. An explicit down payment keeps its
// share of the bid so it never exceeds the new value.
func withBid(in calculator.PropertyInput, bid float64) calculator.PropertyInput {
	out := in
	if in.DownPayment != nil {
		ratio := mathutil.SafeDivide(*in.DownPayment, in.AuctionValue)
		dp := bid * ratio
		out.DownPayment = &dp
	}
	out.AuctionValue = bid
	return out
}

func metricValue(res calculator.Result, metric string) float64 {
	switch metric {
	case MetricProfitMargin:
		if res.ProfitMargin != nil {
			return *res.ProfitMargin
		}
	case MetricAnnualReturn:
		if res.AnnualReturnFinanced != nil {
			return *res.AnnualReturnFinanced
		}
		if res.AnnualReturn != nil {
			return *res.AnnualReturn
		}
	case MetricSavingsPercent:
		return res.SavingsPercent
	}
	return math.Inf(-1)
}

func bounds(in calculator.PropertyInput, target Target) (float64, float64) {
	minBid := target.MinBid
	if minBid <= 0 {
		minBid = 1
	}
	maxBid := target.MaxBid
	if maxBid <= 0 {
		maxBid = mathutil.Max(in.AppraisalValue, in.AuctionValue)
		if in.EstimatedResaleValue != nil {
			maxBid = mathutil.Max(maxBid, *in.EstimatedResaleValue)
		}
	}
	if maxBid < minBid {
		maxBid = minBid
	}
	return minBid, maxBid
}
