// Package propertytax estimates the municipal property tax (IPTU) from an
// assessed value using a progressive bracket table.
package propertytax

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/iwvelando/auction-analyzer/pkg/constants"
)

// Bracket is one row of the table. The annual tax for a value inside the
// bracket is Value*Rate - Deduction. A MaxValue of zero or +Inf marks the
// open-ended last bracket.
type Bracket struct {
	MinValue  float64 `json:"minValue" yaml:"minValue"`
	MaxValue  float64 `json:"maxValue" yaml:"maxValue"`
	Rate      float64 `json:"rate" yaml:"rate"`
	Deduction float64 `json:"deduction" yaml:"deduction"`
}

// Unbounded reports whether the bracket has no upper limit.
func (b Bracket) Unbounded() bool {
	return b.MaxValue == 0 || math.IsInf(b.MaxValue, 1)
}

func (b Bracket) upper() float64 {
	if b.Unbounded() {
		return constants.Unbounded
	}
	return b.MaxValue
}

// MarshalJSON encodes an unbounded MaxValue as null, since JSON has no infinity.
func (b Bracket) MarshalJSON() ([]byte, error) {
	var max *float64
	if !b.Unbounded() {
		max = &b.MaxValue
	}
	return json.Marshal(struct {
		MinValue  float64  `json:"minValue"`
		MaxValue  *float64 `json:"maxValue"`
		Rate      float64  `json:"rate"`
		Deduction float64  `json:"deduction"`
	}{b.MinValue, max, b.Rate, b.Deduction})
}

// Contains reports whether value falls in [MinValue, MaxValue).
func (b Bracket) Contains(value float64) bool {
	return value >= b.MinValue && value < b.upper()
}

// Annual returns the yearly tax for value under this bracket, never negative.
func (b Bracket) Annual(value float64) float64 {
	return math.Max(0, value*b.Rate-b.Deduction)
}

// Table is an ordered set of contiguous brackets covering [0, +Inf).
type Table []Bracket

// DefaultTable returns the municipal table the calculator ships with. The
// deductions keep the annual tax continuous at every boundary.
func DefaultTable() Table {
	return Table{
		{MinValue: 0, MaxValue: 150000, Rate: 0.007, Deduction: 0},
		{MinValue: 150000, MaxValue: 300000, Rate: 0.009, Deduction: 300},
		{MinValue: 300000, MaxValue: 600000, Rate: 0.011, Deduction: 900},
		{MinValue: 600000, MaxValue: 1200000, Rate: 0.013, Deduction: 2100},
		{MinValue: 1200000, MaxValue: constants.Unbounded, Rate: 0.015, Deduction: 4500},
	}
}

// Validate checks that the table starts at zero, has no gaps or overlaps and
// ends with a single unbounded bracket.
func (t Table) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("property tax table is empty")
	}
	if t[0].MinValue != 0 {
		return fmt.Errorf("first property tax bracket must start at 0, got %.2f", t[0].MinValue)
	}

	for i, b := range t {
		if b.Rate < 0 || b.Deduction < 0 {
			return fmt.Errorf("property tax bracket %d has negative rate or deduction", i)
		}
		last := i == len(t)-1
		if b.Unbounded() != last {
			if last {
				return fmt.Errorf("last property tax bracket must be unbounded, got max %.2f", b.MaxValue)
			}
			return fmt.Errorf("property tax bracket %d is unbounded but is not the last one", i)
		}
		if !last && b.MaxValue <= b.MinValue {
			return fmt.Errorf("property tax bracket %d has max %.2f not above min %.2f", i, b.MaxValue, b.MinValue)
		}
		if i > 0 && b.MinValue != t[i-1].MaxValue {
			return fmt.Errorf("property tax bracket %d starts at %.2f but previous ends at %.2f",
				i, b.MinValue, t[i-1].MaxValue)
		}
	}
	return nil
}

// Lookup returns the bracket containing value. Negative values match nothing.
func (t Table) Lookup(value float64) (Bracket, bool) {
	for _, b := range t {
		if b.Contains(value) {
			return b, true
		}
	}
	return Bracket{}, false
}

// Annual returns the yearly property tax for an assessed value.
func (t Table) Annual(value float64) float64 {
	b, ok := t.Lookup(value)
	if !ok {
		return 0
	}
	return b.Annual(value)
}

// Monthly returns the monthly property tax for an assessed value.
func (t Table) Monthly(value float64) float64 {
	return t.Annual(value) / constants.MonthsPerYear
}
