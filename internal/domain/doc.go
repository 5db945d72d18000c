// Package domain models amateur-radio repeater coordination records.
//
// # Data Source
//
// Coordination records originate from the regional coordinating body's
// database extract, a zip archive of CSV files published on its website.
// Each CSV begins with a DATA_SPEC_VERSION line ahead of the column header.
// Columns carry the call sign, city, output/input frequency in MHz, CTCSS
// tones, DCS code, per-mode Y/N flags (FM wide/narrow, D-STAR DV/DD, DMR,
// Fusion, P25 phase 1/2, NXDN digital/mixed, ATV/DATV) and WGS-84
// coordinates.
//
// # Frequency Conventions
//
// Frequencies are exact decimal megahertz values. They are kept as
// decimal.Decimal throughout; binary floating point would make equal
// frequencies compare unequal after arithmetic (146.62 + 0.02 != 146.64 in
// float64), and frequency-pair equality is the identity of a Channel.
//
// Channel identity is the (output, input) pair alone. Two records with the
// same pair are the same channel no matter the call sign, which is what
// set-based dedup needs. Direction matters: a pair recorded with swapped
// output and input is a different Channel, and callers that want
// direction-agnostic membership check both orientations via [Channel.Reversed].
//
// # Access Control
//
// Analog repeaters gate access with a CTCSS tone (decimal Hz) or a DCS code
// (three octal digits). Records missing both get the conventional
// placeholders 88.5 Hz and code 023; DCS polarity is always normal/normal.
// Digital modes use their own identifiers: DMR color code, P25 NAC, D-STAR
// mode letter, C4FM DSQ, NXDN RAN.
package domain
