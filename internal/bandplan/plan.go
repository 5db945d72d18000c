package bandplan

import (
	"github.com/shopspring/decimal"

	"github.com/pnwcoord/repeater-qa/internal/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func segment(name, low, high string, cases []OffsetCase, pairs []Pair) Segment {
	return Segment{Name: name, Low: dec(low), High: dec(high), Cases: cases, Pairs: pairs}
}

func anyInput(offset string) []OffsetCase {
	return []OffsetCase{{Offset: dec(offset)}}
}

// DefaultSegments is the regional band plan as an ordered validation table.
// Ranges and offsets follow the coordinating body's published plan; order
// matters where ranges overlap.
func DefaultSegments() []Segment {
	return []Segment{
		// 10m: outputs 29.62-29.68, inputs 0.1 MHz down.
		segment("10m", "29.62", "29.68", anyInput("-0.1"), nil),
		// 6m: outputs 52.81-53.99 paired with inputs 1.7 MHz down.
		segment("6m", "52.81", "53.99", anyInput("-1.7"), nil),
		// 2m low: repeater/translator outputs 145.10-145.49.
		segment("2m 145", "145.1", "145.49", anyInput("-0.6"), nil),
		// 2m VNBD: 146.4125-146.5 outputs, +1 MHz inputs, 12.5 kHz steps.
		segment("2m VNBD", "146.4125", "146.5", anyInput("1"), nil),
		// Special UNBD channel #1; input and output flipped at the site.
		segment("2m UNBD 1", "146.605", "146.605", nil,
			[]Pair{{Output: dec("146.605"), Input: dec("146.005")}}),
		// 2m repeaters 146.62-147.38: outputs below 147 pair with inputs
		// 146.00-146.40 (-0.6); outputs at and above 147 pair with inputs
		// 147.60-148.00 (+0.6).
		segment("2m repeaters", "146.62", "147.38", []OffsetCase{
			{InputLow: dec("146"), InputHigh: dec("146.4"), Offset: dec("-0.6")},
			{InputLow: dec("147.6"), InputHigh: dec("148"), Offset: dec("0.6")},
		}, nil),
		// Special UNBD channel #2.
		segment("2m UNBD 2", "147.995", "147.995", nil,
			[]Pair{{Output: dec("147.995"), Input: dec("147.395")}}),
		// 1.25m: four output ranges, all inputs 1.6 MHz down.
		segment("1.25m", "223.78", "223.98", anyInput("-1.6"), nil),
		segment("1.25m", "224.02", "224.62", anyInput("-1.6"), nil),
		segment("1.25m", "224.68", "224.82", anyInput("-1.6"), nil),
		segment("1.25m", "224.86", "224.98", anyInput("-1.6"), nil),
		// 70cm: inputs 5 MHz up across the repeater sub-band.
		segment("70cm", "440.0125", "444.9875", anyInput("5"), nil),
		// 33cm: inputs 25 MHz down.
		segment("33cm", "927.2125", "927.9875", anyInput("-25"), nil),
		// 23cm ATV #2: the 1252.000 video carrier pairs with the 434.000
		// 70cm carrier (cross-band). Listed ahead of the DD segment so the
		// exact carrier classifies here.
		segment("23cm ATV", "1252", "1258", nil,
			[]Pair{{Output: dec("1252"), Input: dec("434")}}),
		// 23cm D-STAR DD: simplex.
		segment("23cm DD", "1247", "1252", anyInput("0"), nil),
		// 23cm repeaters: inputs 20 MHz down.
		segment("23cm repeaters", "1290", "1295", anyInput("-20"), nil),
	}
}

// DefaultRules is the enumeration geometry: where theoretical channel pairs
// sit and how far apart. Narrow (12.5 kHz) rows exist in the plan but are
// excluded from enumeration by the Enumerator.
func DefaultRules() domain.BandPlanTable {
	return domain.BandPlanTable{
		// 10m, 20 kHz spacing.
		domain.MustRule("29.62", "29.68", "-0.1", "20", ""),
		// 6m, 20 kHz spacing.
		domain.MustRule("52.81", "53.99", "-1.7", "20", ""),
		// 2m, 20 kHz spacing; center frequencies per coordinated pairs.
		domain.MustRule("145.11", "145.19", "-0.6", "20", ""),
		domain.MustRule("145.21", "145.49", "-0.6", "20", ""),
		// 2m NFM proposal, 12.5 kHz.
		domain.MustRule("145.1", "145.4875", "-0.6", "12.5", "12.5"),
		// Special UNBD pairs, 6.25 kHz bandwidth.
		domain.MustRule("146.605", "146.605", "-0.6", "0", "6.25"),
		domain.MustRule("147.995", "147.995", "-0.6", "0", "6.25"),
		// 2m VNBD, 12.5 kHz steps, +1 MHz.
		domain.MustRule("146.4125", "146.5", "1", "12.5", "12.5"),
		domain.MustRule("146.62", "147", "-0.6", "20", ""),
		domain.MustRule("146.625", "146.9875", "-0.6", "12.5", "12.5"),
		domain.MustRule("147", "147.38", "0.6", "20", ""),
		domain.MustRule("146.625", "146.9875", "0.6", "12.5", "12.5"),
		// 1.25m, 20 kHz spacing.
		domain.MustRule("223.78", "223.98", "-1.6", "20", ""),
		domain.MustRule("224.02", "224.62", "-1.6", "20", ""),
		domain.MustRule("224.68", "224.82", "-1.6", "20", ""),
		domain.MustRule("224.86", "224.98", "-1.6", "20", ""),
		// 70cm.
		domain.MustRule("440.0125", "440.0125", "5", "0", "12.5"),
		domain.MustRule("440.0375", "440.7875", "5", "12.5", "12.5"),
		domain.MustRule("440.0500", "440.6750", "5", "25", "25"),
		domain.MustRule("440.9250", "440.9750", "5", "25", "25"),
		domain.MustRule("440.9125", "440.9875", "5", "12.5", "12.5"),
		domain.MustRule("441.0125", "442.9875", "5", "12.5", "12.5"),
		domain.MustRule("441.0250", "442.9750", "5", "25", "25"),
		domain.MustRule("443.0125", "444.9875", "5", "12.5", "12.5"),
		domain.MustRule("442.0250", "444.9750", "5", "25", "25"),
		// 33cm, 12.5 kHz spacing, 25 MHz offset.
		domain.MustRule("927.2125", "927.9875", "-25", "12.5", ""),
		// 23cm D-STAR DD, simplex.
		domain.MustRule("1247", "1252", "0", "25", ""),
		// 23cm DV outputs, then the wider FM repeater range.
		domain.MustRule("1290", "1291", "-20", "25", ""),
		domain.MustRule("1290", "1295", "-20", "25", ""),
	}
}

// DefaultExceptions is the allow-list of known-nonconforming coordinations.
func DefaultExceptions() []domain.Channel {
	return []domain.Channel{
		// ATV video carrier, cross-band pair.
		exception("WW7ATS", "1253.25", "434"),
		// Coordinated wide on a narrow channel.
		exception("AA7MI", "440.725", "445.725"),
		// "Dynamic NAC" P25 machine.
		exception("WA7LZO", "442.9", "447.9"),
	}
}

func exception(call, output, input string) domain.Channel {
	ch, err := domain.NewChannel(call, "", output, input)
	if err != nil {
		panic(err)
	}
	return ch
}
