package bandplan

import (
	"github.com/shopspring/decimal"

	"github.com/pnwcoord/repeater-qa/internal/domain"
)

var narrowBandwidth = decimal.RequireFromString("12.5")

// Enumerator sweeps a rule table into the full theoretical channel-pair
// set, then subtracts observed coordinations.
type Enumerator struct {
	rules domain.BandPlanTable
}

// NewEnumerator builds an enumerator over the given rule table.
func NewEnumerator(rules domain.BandPlanTable) *Enumerator {
	return &Enumerator{rules: rules}
}

// Enumerate returns every theoretically permissible channel pair, deduped
// where rule ranges overlap. Zero-spacing rules contribute exactly one
// fixed pair; simplex (zero-offset) swept rules contribute nothing because
// there is no duplex pair to report; 12.5 kHz rules are outside the scope
// of the standard-bandwidth channel plan and are skipped entirely.
func (e *Enumerator) Enumerate() []domain.Channel {
	seen := make(map[domain.PairKey]struct{})
	var pairs []domain.Channel

	add := func(output decimal.Decimal, rule domain.Rule) {
		ch := domain.Channel{
			Output:    output,
			Input:     output.Add(rule.Offset),
			Bandwidth: rule.Bandwidth,
		}
		if _, dup := seen[ch.Key()]; dup {
			return
		}
		seen[ch.Key()] = struct{}{}
		pairs = append(pairs, ch)
	}

	for _, rule := range e.rules {
		if rule.Bandwidth.Equal(narrowBandwidth) {
			continue
		}
		if rule.Spacing.IsZero() {
			add(rule.Low, rule)
			continue
		}
		if rule.Offset.IsZero() {
			continue
		}
		step := rule.Step()
		for out := rule.Low; out.Cmp(rule.High) <= 0; out = out.Add(step) {
			add(out, rule)
		}
	}
	return pairs
}

// Available subtracts the coordinated channels from the enumerated set, in
// both orientations because a coordinated pair may have been recorded with
// swapped roles. The residual set is sorted by output frequency.
func (e *Enumerator) Available(coordinated []domain.Channel) []domain.Channel {
	taken := make(map[domain.PairKey]struct{}, 2*len(coordinated))
	for _, c := range coordinated {
		taken[c.Key()] = struct{}{}
		taken[c.Reversed().Key()] = struct{}{}
	}

	var available []domain.Channel
	for _, pair := range e.Enumerate() {
		if _, used := taken[pair.Key()]; used {
			continue
		}
		available = append(available, pair)
	}
	domain.Sort(available)
	return available
}
