package domain

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Mode names as they appear in coordination records.
const (
	ModeFM    = "FM"
	ModeATV   = "ATV"
	ModeDSTAR = "D-STAR"
	ModeDMR   = "DMR"
	ModeC4FM  = "C4FM"
	ModeP25   = "P25"
	ModeNXDN  = "NXDN"
)

// Placeholder access values for records that carry neither a tone nor a
// code. DCS polarity is always normal/normal.
const (
	DefaultCode = "023"
	DCSPolarity = "NN"
)

// DefaultTone is the conventional placeholder CTCSS tone in Hz.
var DefaultTone = decimal.RequireFromString("88.5")

// ErrBadFrequency marks an output or input value that is not an exact decimal.
var ErrBadFrequency = errors.New("unparseable frequency")

const earthRadiusKM = 6371.0

// Channel is one coordinated repeater frequency pair plus metadata. Values
// are immutable after construction; methods are value receivers.
type Channel struct {
	Call     string
	Location string
	Output   decimal.Decimal // MHz
	Input    decimal.Decimal // MHz

	Bandwidth decimal.Decimal // kHz
	Modes     []string

	InputTone  decimal.Decimal // CTCSS Hz; zero when the record carries none
	OutputTone decimal.Decimal
	InputCode  string // DCS
	OutputCode string

	DMRColorCode string
	DStarMode    string
	C4FMDSQ      string
	P25NAC       string
	NXDNRAN      string

	Latitude  float64
	Longitude float64
}

// NewChannel builds a Channel from raw field values. Output and input must
// parse as exact decimals; anything else fails with ErrBadFrequency naming
// the record. The trailing /R repeater-site suffix is stripped from the call.
func NewChannel(call, location, output, input string) (Channel, error) {
	out, err := decimal.NewFromString(strings.TrimSpace(output))
	if err != nil {
		return Channel{}, fmt.Errorf("%w: %s output %q", ErrBadFrequency, call, output)
	}
	in, err := decimal.NewFromString(strings.TrimSpace(input))
	if err != nil {
		return Channel{}, fmt.Errorf("%w: %s input %q", ErrBadFrequency, call, input)
	}
	return Channel{
		Call:     NormalizeCall(call),
		Location: strings.TrimSpace(location),
		Output:   out,
		Input:    in,
	}, nil
}

// NormalizeCall trims whitespace and a trailing /R repeater-site suffix.
func NormalizeCall(call string) string {
	return strings.TrimSuffix(strings.TrimSpace(call), "/R")
}

// PairKey is a Channel's identity: the (output, input) frequency pair at
// fixed precision. It is an explicit key type rather than structural
// equality so adding Channel fields can never widen identity by accident.
type PairKey struct {
	Output string
	Input  string
}

func (k PairKey) String() string {
	return k.Output + "/" + k.Input
}

// Key returns the frequency-pair identity. Five decimal places cover the
// finest grid in any band plan segment (6.25 kHz steps).
func (c Channel) Key() PairKey {
	return PairKey{Output: c.Output.StringFixed(5), Input: c.Input.StringFixed(5)}
}

// Equal reports frequency-pair identity. A channel with swapped output and
// input is NOT equal; direction matters.
func (c Channel) Equal(other Channel) bool {
	return c.Key() == other.Key()
}

// Offset is the signed duplex offset: input minus output, in MHz.
func (c Channel) Offset() decimal.Decimal {
	return c.Input.Sub(c.Output)
}

// Reversed returns a copy with output and input swapped. Coordinated pairs
// are sometimes recorded with the roles flipped.
func (c Channel) Reversed() Channel {
	r := c
	r.Output, r.Input = c.Input, c.Output
	return r
}

// Less orders by output frequency, then call sign, for deterministic reports.
func (c Channel) Less(other Channel) bool {
	if cmp := c.Output.Cmp(other.Output); cmp != 0 {
		return cmp < 0
	}
	return c.Call < other.Call
}

// Sort sorts channels in place by output frequency, then call sign.
func Sort(channels []Channel) {
	sort.Slice(channels, func(i, j int) bool {
		return channels[i].Less(channels[j])
	})
}

// HasMode reports whether the channel carries the given mode flag.
func (c Channel) HasMode(mode string) bool {
	for _, m := range c.Modes {
		if m == mode {
			return true
		}
	}
	return false
}

// Distance returns the great-circle distance in kilometers from the
// channel's site to the given point, by the haversine formula.
func (c Channel) Distance(lat, lon float64) float64 {
	dLat := radians(lat - c.Latitude)
	dLon := radians(lon - c.Longitude)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(c.Latitude))*math.Cos(radians(lat))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusKM * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// ToneOrDefault returns the input CTCSS tone, or the 88.5 Hz placeholder
// when the record carries none.
func (c Channel) ToneOrDefault() decimal.Decimal {
	if c.InputTone.IsZero() {
		return DefaultTone
	}
	return c.InputTone
}

// CodeOrDefault returns the DCS code, or the 023 placeholder when the
// record carries none.
func (c Channel) CodeOrDefault() string {
	if c.InputCode == "" {
		return DefaultCode
	}
	return c.InputCode
}

// Access composes the access description from whichever of tone, DCS code,
// DMR color code, or P25 NAC is populated, in that priority order.
func (c Channel) Access() string {
	switch {
	case !c.InputTone.IsZero():
		return c.InputTone.StringFixed(1)
	case c.InputCode != "":
		return "D" + c.InputCode + "N"
	case c.DMRColorCode != "":
		return "CC" + c.DMRColorCode
	case c.P25NAC != "":
		return "NAC " + c.P25NAC
	}
	return "NONE"
}

// String renders the canonical one-line summary: call, location, output,
// signed offset (SX when simplex), modes, access.
func (c Channel) String() string {
	name := strings.TrimSpace(c.Call + " " + c.Location)

	offset := c.Offset()
	off := "SX"
	if !offset.IsZero() {
		off = trimZeros(offset)
		if offset.IsPositive() {
			off = "+" + off
		}
	}

	parts := []string{name, trimZeros(c.Output), off}
	if len(c.Modes) > 0 {
		parts = append(parts, strings.Join(c.Modes, "&"))
	}
	parts = append(parts, c.Access())
	return strings.Join(parts, " ")
}

// trimZeros renders a decimal without trailing fraction zeros ("146.6200"
// becomes "146.62", "5.00" becomes "5").
func trimZeros(d decimal.Decimal) string {
	s := d.StringFixed(6)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
