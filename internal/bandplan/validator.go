// Package bandplan checks coordinated channels against the regulatory band
// plan and enumerates the theoretical channel set it permits.
package bandplan

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/pnwcoord/repeater-qa/internal/domain"
)

// OffsetCase is one permitted duplex offset within a segment, optionally
// conditioned on the input sub-range it pairs with. A zero input range
// means the offset applies to any input.
type OffsetCase struct {
	InputLow  decimal.Decimal // MHz, inclusive
	InputHigh decimal.Decimal // MHz, inclusive
	Offset    decimal.Decimal // MHz
}

func (c OffsetCase) conditioned() bool {
	return !c.InputLow.IsZero() || !c.InputHigh.IsZero()
}

func (c OffsetCase) matchesInput(input decimal.Decimal) bool {
	if !c.conditioned() {
		return true
	}
	return c.InputLow.Cmp(input) <= 0 && input.Cmp(c.InputHigh) <= 0
}

// Pair is a fixed single-frequency exception: this exact output requires
// this exact input, overriding the segment's general cases.
type Pair struct {
	Output decimal.Decimal
	Input  decimal.Decimal
}

// Segment is one ordered validation entry: an output range plus the offset
// cases and fixed pairs permitted inside it. Segments are evaluated in
// order; the first whose range contains the output wins.
type Segment struct {
	Name  string
	Low   decimal.Decimal // MHz, inclusive
	High  decimal.Decimal // MHz, inclusive
	Cases []OffsetCase
	Pairs []Pair
}

func (s Segment) contains(output decimal.Decimal) bool {
	return s.Low.Cmp(output) <= 0 && output.Cmp(s.High) <= 0
}

// Verdict is the validator's result for one channel.
type Verdict struct {
	Channel  domain.Channel
	OK       bool
	Known    bool
	Comments []string
}

func (v *Verdict) fail(format string, args ...any) {
	v.OK = false
	v.Comments = append(v.Comments, fmt.Sprintf(format, args...))
}

// Validator classifies channels against an ordered segment table and grades
// them against the channel-grid geometry. It holds no per-channel state;
// Check may be called in any order.
type Validator struct {
	segments []Segment
	rules    domain.BandPlanTable
	known    map[domain.PairKey]struct{}
}

// NewValidator builds a validator over the given segments and rule
// geometry. Channels in the exceptions allow-list (matched by
// frequency-pair equality) are annotated KNOWN instead of failing.
func NewValidator(segments []Segment, rules domain.BandPlanTable, exceptions []domain.Channel) *Validator {
	known := make(map[domain.PairKey]struct{}, len(exceptions))
	for _, c := range exceptions {
		known[c.Key()] = struct{}{}
	}
	return &Validator{segments: segments, rules: rules, known: known}
}

// Check validates one channel: output classification, duplex offset, grid
// alignment, bandwidth, and FM access signalling.
func (v *Validator) Check(ch domain.Channel) Verdict {
	verdict := Verdict{Channel: ch, OK: true}

	v.checkPlan(&verdict, ch)
	if !verdict.OK && v.conforms(ch.Reversed()) {
		// The pair fits the plan with the roles swapped: recorded
		// backwards, not miscoordinated.
		verdict.OK = true
		verdict.Comments = append(verdict.Comments, "REVERSED")
	}
	checkAccess(&verdict, ch)

	if !verdict.OK {
		if _, known := v.known[ch.Key()]; known {
			// Allow-listed: suppress the failure but keep the annotation
			// so the report stays auditable.
			verdict.OK = true
			verdict.Known = true
			verdict.Comments = append(verdict.Comments, "KNOWN")
		}
	}
	return verdict
}

// checkPlan validates the output classification and the duplex offset, then
// grades the pair against the rule geometry where it covers the output.
func (v *Validator) checkPlan(verdict *Verdict, ch domain.Channel) {
	seg, ok := v.classify(ch.Output)
	if !ok {
		verdict.fail("NO BAND SEGMENT %s %s", ch.Call, ch.Output.StringFixed(4))
		return
	}
	permitted, viaPair := segmentPermits(seg, ch)
	if !permitted {
		verdict.fail("WRONG OFFSET %s %s %s %s", ch.Call,
			ch.Output.StringFixed(4), ch.Input.StringFixed(4), signedFixed(ch.Offset(), 4))
		return
	}
	if viaPair {
		// Fixed exception pairs sit outside the swept grids.
		return
	}
	switch v.geometry(ch) {
	case geometryMisaligned:
		verdict.fail("MISALIGNED %s %s", ch.Call, ch.Output.StringFixed(4))
	case geometryTooWide:
		verdict.fail("TOO WIDE %s %s %s kHz", ch.Call,
			ch.Output.StringFixed(4), ch.Bandwidth.StringFixed(1))
	}
}

// conforms reports whether the pair fits the plan outright, with no
// diagnostics. Used to recognize pairs recorded with the roles swapped.
func (v *Validator) conforms(ch domain.Channel) bool {
	verdict := Verdict{OK: true}
	v.checkPlan(&verdict, ch)
	return verdict.OK
}

type geometryResult int

const (
	geometryOK geometryResult = iota
	geometryMisaligned
	geometryTooWide
)

// geometry grades the channel against every rule covering its output with a
// matching offset. A rule must first align the output on its spacing grid,
// then admit the channel's bandwidth; a channel with no bandwidth recorded
// passes any rule it aligns with. No covering rule at all is not an error
// here; the segment table has already vouched for the pair.
func (v *Validator) geometry(ch domain.Channel) geometryResult {
	offset := ch.Offset()
	covered := false
	aligned := false
	for _, r := range v.rules {
		if !r.Contains(ch.Output) || !r.Offset.Equal(offset) {
			continue
		}
		covered = true
		if !r.Aligned(ch.Output) {
			continue
		}
		aligned = true
		if ch.Bandwidth.IsZero() || ch.Bandwidth.Cmp(r.Bandwidth) <= 0 {
			return geometryOK
		}
	}
	switch {
	case !covered:
		return geometryOK
	case !aligned:
		return geometryMisaligned
	default:
		return geometryTooWide
	}
}

// checkAccess verifies analog FM access signalling: a coordination must
// carry a tone or a DCS code, and not both.
func checkAccess(verdict *Verdict, ch domain.Channel) {
	if !ch.HasMode(domain.ModeFM) {
		return
	}
	hasTone := !ch.InputTone.IsZero()
	hasCode := ch.InputCode != ""
	switch {
	case !hasTone && !hasCode:
		verdict.fail("NO TONE/CODE %s %s", ch.Call, ch.Output.StringFixed(4))
	case hasTone && hasCode:
		verdict.fail("AMBIGUOUS TONE/CODE %s %s", ch.Call, ch.Output.StringFixed(4))
	}
}

// CheckAll validates every channel, accumulating verdicts; it never halts
// on a bad record.
func (v *Validator) CheckAll(channels []domain.Channel) []Verdict {
	verdicts := make([]Verdict, 0, len(channels))
	for _, ch := range channels {
		verdicts = append(verdicts, v.Check(ch))
	}
	return verdicts
}

func (v *Validator) classify(output decimal.Decimal) (Segment, bool) {
	for _, s := range v.segments {
		if s.contains(output) {
			return s, true
		}
	}
	return Segment{}, false
}

// segmentPermits checks the channel's input against the segment's fixed
// pairs first, then its general offset cases. The second result reports
// whether a fixed pair decided the outcome.
func segmentPermits(seg Segment, ch domain.Channel) (bool, bool) {
	for _, p := range seg.Pairs {
		if p.Output.Equal(ch.Output) {
			return p.Input.Equal(ch.Input), true
		}
	}
	offset := ch.Offset()
	for _, c := range seg.Cases {
		if c.matchesInput(ch.Input) && offset.Equal(c.Offset) {
			return true, false
		}
	}
	return false, false
}

func signedFixed(d decimal.Decimal, places int32) string {
	s := d.StringFixed(places)
	if d.Sign() >= 0 {
		s = "+" + s
	}
	return s
}
