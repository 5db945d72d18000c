package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var kilo = decimal.NewFromInt(1000)

// Rule describes one contiguous band segment's repeater-pair geometry:
// where outputs may sit, how far apart, how wide, and where the matching
// input lands.
type Rule struct {
	Low       decimal.Decimal // MHz, inclusive
	High      decimal.Decimal // MHz, inclusive
	Offset    decimal.Decimal // MHz; zero means simplex
	Spacing   decimal.Decimal // kHz; zero means a single fixed pair at Low
	Bandwidth decimal.Decimal // kHz, minimum channel bandwidth
}

// MustRule builds a Rule from decimal literals, panicking on malformed
// input. It exists for static band-plan tables; an empty bandwidth means
// the standard 25 kHz channel.
func MustRule(low, high, offset, spacing, bandwidth string) Rule {
	if bandwidth == "" {
		bandwidth = "25"
	}
	return Rule{
		Low:       decimal.RequireFromString(low),
		High:      decimal.RequireFromString(high),
		Offset:    decimal.RequireFromString(offset),
		Spacing:   decimal.RequireFromString(spacing),
		Bandwidth: decimal.RequireFromString(bandwidth),
	}
}

// Contains reports whether an output frequency falls in the rule's range.
func (r Rule) Contains(output decimal.Decimal) bool {
	return r.Low.Cmp(output) <= 0 && output.Cmp(r.High) <= 0
}

// Step is the channel spacing converted from kHz to MHz.
func (r Rule) Step() decimal.Decimal {
	return r.Spacing.Div(kilo)
}

// Aligned reports whether an output frequency sits on the rule's spacing
// grid. Zero-spacing rules align only their single fixed frequency.
func (r Rule) Aligned(output decimal.Decimal) bool {
	if r.Spacing.IsZero() {
		return output.Equal(r.Low)
	}
	return output.Sub(r.Low).Mod(r.Step()).IsZero()
}

func (r Rule) String() string {
	return fmt.Sprintf("%s-%s MHz %s%s MHz |%s kHz| [%s kHz]",
		r.Low.StringFixed(4), r.High.StringFixed(4),
		sign(r.Offset), trimZeros(r.Offset),
		trimZeros(r.Spacing), trimZeros(r.Bandwidth))
}

func sign(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+"
	}
	return ""
}

// BandPlanTable is the ordered sequence of Rules covering all bands of
// interest. Order matters: overlapping ranges resolve by first match.
type BandPlanTable []Rule

// Classify returns the first rule whose range contains the output
// frequency, or false when no segment covers it.
func (t BandPlanTable) Classify(output decimal.Decimal) (Rule, bool) {
	for _, r := range t {
		if r.Contains(output) {
			return r, true
		}
	}
	return Rule{}, false
}
