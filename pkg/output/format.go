// Package output renders analysis reports.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iwvelando/auction-analyzer/internal/analysis"
	"github.com/iwvelando/auction-analyzer/pkg/constants"
	"github.com/iwvelando/auction-analyzer/pkg/format"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

func printer() *message.Printer {
	return message.NewPrinter(language.BrazilianPortuguese)
}

// Write renders report in the named format.
func Write(w io.Writer, outputFormat string, report analysis.Report) error {
	switch outputFormat {
	case constants.OutputFormatPretty:
		return PrettyFormat(w, report)
	case constants.OutputFormatCSV:
		return CsvFormat(w, report)
	case constants.OutputFormatJSON:
		return JSONFormat(w, report)
	case constants.OutputFormatYAML:
		return YAMLFormat(w, report)
	default:
		return fmt.Errorf("unsupported output format %q", outputFormat)
	}
}

// PrettyFormat outputs a human-readable rather than machine-readable report.
func PrettyFormat(w io.Writer, report analysis.Report) error {
	p := printer()
	in := report.Input

	financing := "cash"
	if in.Financed {
		financing = p.Sprintf("financed at %.2f%% a year", in.AnnualInterestRate)
	}
	if _, err := p.Fprintf(w, "--- Auction analysis (%s, %s) ---\n", in.Objective, financing); err != nil {
		return err
	}
	if _, err := p.Fprintf(w, "%-40s %s\n", "Appraisal value", formatValue(in.AppraisalValue)); err != nil {
		return err
	}
	if _, err := p.Fprintf(w, "%-40s %s\n", "Auction value", formatValue(in.AuctionValue)); err != nil {
		return err
	}

	section := ""
	for _, f := range Fields(report.Result) {
		if f.Section != section {
			section = f.Section
			if _, err := p.Fprintf(w, "\n%s\n%s\n", section, strings.Repeat("_", len(section))); err != nil {
				return err
			}
		}
		if _, err := p.Fprintf(w, "%-40s %s\n", f.Label, f.Formatted()); err != nil {
			return err
		}
	}
	if _, err := p.Fprintf(w, "%-40s %s\n", "Analysis period", Field{Value: float64(in.AnalysisPeriodMonths), Unit: UnitMonths}.Formatted()); err != nil {
		return err
	}

	if mb := report.MaxBid; mb != nil {
		if _, err := fmt.Fprintf(w, "\n%s\n%s\n", SectionMaxBid, strings.Repeat("_", len(SectionMaxBid))); err != nil {
			return err
		}
		if _, err := p.Fprintf(w, "%-40s %s >= %s\n", "Target", mb.Metric, format.Percent(mb.Target)); err != nil {
			return err
		}
		if _, err := p.Fprintf(w, "%-40s %s\n", "Maximum bid", mb.ValueDisplay); err != nil {
			return err
		}
		if _, err := p.Fprintf(w, "%-40s %s\n", "Achieved", format.Percent(mb.Achieved)); err != nil {
			return err
		}
		for _, note := range mb.Notes {
			if _, err := fmt.Fprintf(w, "- %s\n", note); err != nil {
				return err
			}
		}
	}

	if len(report.Result.Alerts) > 0 {
		if _, err := fmt.Fprintf(w, "\nAlerts\n______\n"); err != nil {
			return err
		}
		for _, alert := range report.Result.Alerts {
			if _, err := fmt.Fprintf(w, "[%s] %s: %s\n", alert.Severity, alert.Title, alert.Description); err != nil {
				return err
			}
		}
	}

	if len(report.Warnings) > 0 {
		if _, err := fmt.Fprintf(w, "\nWarnings\n________\n"); err != nil {
			return err
		}
		for _, warning := range report.Warnings {
			if _, err := fmt.Fprintf(w, "- %s\n", warning); err != nil {
				return err
			}
		}
	}

	return nil
}

// CsvFormat outputs in comma-separated value format: one row per figure,
// then one row per alert.
func CsvFormat(w io.Writer, report analysis.Report) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"section", "key", "label", "value"}); err != nil {
		return err
	}
	for _, f := range Fields(report.Result) {
		value := strconv.FormatFloat(f.Value, 'f', 2, 64)
		if f.Unit == UnitMonths {
			value = strconv.Itoa(int(f.Value))
		}
		if err := cw.Write([]string{f.Section, f.Key, f.Label, value}); err != nil {
			return err
		}
	}
	if mb := report.MaxBid; mb != nil {
		label := fmt.Sprintf("Maximum bid for %s >= %.2f%%", mb.Metric, mb.Target)
		if err := cw.Write([]string{SectionMaxBid, "maxBid", label, strconv.FormatFloat(mb.Value, 'f', 2, 64)}); err != nil {
			return err
		}
	}
	for _, alert := range report.Result.Alerts {
		if err := cw.Write([]string{"Alerts", string(alert.Severity), alert.Title, alert.Description}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// JSONFormat outputs the full report as indented JSON.
func JSONFormat(w io.Writer, report analysis.Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

// YAMLFormat outputs the full report as YAML.
func YAMLFormat(w io.Writer, report analysis.Report) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(report); err != nil {
		return err
	}
	return encoder.Close()
}

func formatValue(v float64) string {
	return Field{Value: v, Unit: UnitCurrency}.Formatted()
}
