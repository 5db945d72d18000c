// Package coordination parses the coordinating body's database extract into
// validated domain Channels.
package coordination

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pnwcoord/repeater-qa/internal/domain"
)

// Record is one raw extract row, strongly typed at the parsing boundary so
// malformed input is rejected before it reaches domain logic.
type Record struct {
	Call   string
	City   string
	Locale string

	OutputFreq string
	InputFreq  string

	CTCSSIn  string
	CTCSSOut string
	DCS      string

	FMWide      bool
	FMNarrow    bool
	DStarDV     bool
	DStarDD     bool
	DMR         bool
	Fusion      bool
	P25Phase1   bool
	P25Phase2   bool
	NXDNDigital bool
	NXDNMixed   bool
	ATV         bool
	DATV        bool

	Latitude  string
	Longitude string
}

// AnalogFM reports whether the row is flagged analog FM, wide or narrow.
func (r Record) AnalogFM() bool {
	return r.FMWide || r.FMNarrow
}

// Digital reports whether the row carries any digital mode flag. A row may
// be flagged both analog and digital; digital takes precedence and excludes
// it from the analog set. Fusion counts as digital here (policy recorded in
// DESIGN.md).
func (r Record) Digital() bool {
	return r.DStarDV || r.DStarDD || r.DMR || r.Fusion ||
		r.P25Phase1 || r.P25Phase2 || r.NXDNDigital || r.NXDNMixed ||
		r.ATV || r.DATV
}

// Channel converts the record into a domain Channel. Frequency fields must
// be exact decimals.
func (r Record) Channel() (domain.Channel, error) {
	ch, err := domain.NewChannel(r.Call, r.City, r.OutputFreq, r.InputFreq)
	if err != nil {
		return domain.Channel{}, err
	}

	ch.Bandwidth = bandwidth(r)
	ch.Modes = []string{domain.ModeFM}

	if r.CTCSSIn != "" {
		tone, err := decimal.NewFromString(r.CTCSSIn)
		if err != nil {
			return domain.Channel{}, fmt.Errorf("%s: bad CTCSS_IN %q", ch.Call, r.CTCSSIn)
		}
		ch.InputTone = tone
	}
	if r.CTCSSOut != "" {
		tone, err := decimal.NewFromString(r.CTCSSOut)
		if err != nil {
			return domain.Channel{}, fmt.Errorf("%s: bad CTCSS_OUT %q", ch.Call, r.CTCSSOut)
		}
		ch.OutputTone = tone
	}
	ch.InputCode = r.DCS
	ch.OutputCode = r.DCS

	if r.Latitude != "" && r.Longitude != "" {
		lat, errLat := strconv.ParseFloat(r.Latitude, 64)
		lon, errLon := strconv.ParseFloat(r.Longitude, 64)
		if errLat == nil && errLon == nil {
			ch.Latitude, ch.Longitude = lat, lon
		}
	}

	return ch, nil
}

// bandwidth derives the channel bandwidth in kHz: narrow when only the
// narrow flag is set, 25 kHz otherwise.
func bandwidth(r Record) decimal.Decimal {
	if r.FMNarrow && !r.FMWide {
		return decimal.RequireFromString("12.5")
	}
	return decimal.NewFromInt(25)
}

// Parse reads one extract CSV source and returns the analog FM channels.
// The leading DATA_SPEC_VERSION line is skipped, LINK rows and digital-only
// rows are excluded, and a malformed frequency fails the whole source with
// an error naming the record.
func Parse(r io.Reader) ([]domain.Channel, error) {
	br := bufio.NewReader(r)

	// Format-version stamp ahead of the CSV header.
	if _, err := br.ReadString('\n'); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read extract header: %w", err)
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read extract columns: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	var channels []domain.Channel
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read extract row: %w", err)
		}

		rec := newRecord(index, fields)
		if rec.Locale == "LINK" {
			continue
		}
		if !rec.AnalogFM() || rec.Digital() {
			continue
		}

		ch, err := rec.Channel()
		if err != nil {
			return nil, err
		}
		channels = append(channels, ch)
	}
	return channels, nil
}

// ParseAll concatenates the channels of several extract sources. No
// cross-source dedup happens here; that is the enumerator's and matcher's
// concern.
func ParseAll(sources ...io.Reader) ([]domain.Channel, error) {
	var channels []domain.Channel
	for i, src := range sources {
		parsed, err := Parse(src)
		if err != nil {
			return nil, fmt.Errorf("source %d: %w", i+1, err)
		}
		channels = append(channels, parsed...)
	}
	return channels, nil
}

func newRecord(index map[string]int, fields []string) Record {
	get := func(name string) string {
		i, ok := index[name]
		if !ok || i >= len(fields) {
			return ""
		}
		return strings.TrimSpace(fields[i])
	}
	flag := func(name string) bool {
		return get(name) == "Y"
	}

	return Record{
		Call:        get("CALL"),
		City:        get("CITY"),
		Locale:      get("LOCALE"),
		OutputFreq:  get("OUTPUT_FREQ"),
		InputFreq:   get("INPUT_FREQ"),
		CTCSSIn:     get("CTCSS_IN"),
		CTCSSOut:    get("CTCSS_OUT"),
		DCS:         get("DCS_CDCSS"),
		FMWide:      flag("FM_WIDE"),
		FMNarrow:    flag("FM_NARROW"),
		DStarDV:     flag("DSTAR_DV"),
		DStarDD:     flag("DSTAR_DD"),
		DMR:         flag("DMR"),
		Fusion:      flag("FUSION"),
		P25Phase1:   flag("P25_PHASE_1"),
		P25Phase2:   flag("P25_PHASE_2"),
		NXDNDigital: flag("NXDN_DIGITAL"),
		NXDNMixed:   flag("NXDN_MIXED"),
		ATV:         flag("ATV"),
		DATV:        flag("DATV"),
		Latitude:    get("LATITUDE"),
		Longitude:   get("LONGITUDE"),
	}
}
