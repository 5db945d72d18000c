// Package directory decodes third-party repeater directory dumps so their
// records can be cross-referenced against the coordination database.
package directory

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"

	"github.com/pnwcoord/repeater-qa/internal/domain"
)

// entry is one repeater record in a directory dump.
type entry struct {
	Call       string  `json:"call"`
	Location   string  `json:"location"`
	OutputFreq string  `json:"output_freq"`
	InputFreq  string  `json:"input_freq"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`

	Tone      string `json:"tone,omitempty"`
	Code      string `json:"code,omitempty"`
	ColorCode string `json:"color_code,omitempty"`
	NAC       string `json:"nac,omitempty"`

	FM     bool `json:"fm,omitempty"`
	DStar  bool `json:"dstar,omitempty"`
	DMR    bool `json:"dmr,omitempty"`
	Fusion bool `json:"fusion,omitempty"`
	P25    bool `json:"p25,omitempty"`
	NXDN   bool `json:"nxdn,omitempty"`
}

// Parse decodes a directory dump into channels. Records with unparsable
// frequencies fail the whole decode, naming the record.
func Parse(r io.Reader) ([]domain.Channel, error) {
	var entries []entry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode directory: %w", err)
	}

	channels := make([]domain.Channel, 0, len(entries))
	for _, e := range entries {
		ch, err := domain.NewChannel(e.Call, e.Location, e.OutputFreq, e.InputFreq)
		if err != nil {
			return nil, err
		}
		ch.Latitude = e.Latitude
		ch.Longitude = e.Longitude

		if e.Tone != "" {
			tone, err := decimal.NewFromString(e.Tone)
			if err != nil {
				return nil, fmt.Errorf("directory record %s: bad tone %q", e.Call, e.Tone)
			}
			ch.InputTone = tone
			ch.OutputTone = tone
		}
		ch.InputCode = e.Code
		ch.OutputCode = e.Code
		ch.DMRColorCode = e.ColorCode
		ch.P25NAC = e.NAC

		if e.FM {
			ch.Modes = append(ch.Modes, domain.ModeFM)
		}
		if e.DStar {
			ch.Modes = append(ch.Modes, domain.ModeDSTAR)
		}
		if e.DMR {
			ch.Modes = append(ch.Modes, domain.ModeDMR)
		}
		if e.Fusion {
			ch.Modes = append(ch.Modes, domain.ModeC4FM)
		}
		if e.P25 {
			ch.Modes = append(ch.Modes, domain.ModeP25)
		}
		if e.NXDN {
			ch.Modes = append(ch.Modes, domain.ModeNXDN)
		}

		channels = append(channels, ch)
	}
	return channels, nil
}

// Load reads a directory dump from disk.
func Load(path string) ([]domain.Channel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open directory dump: %w", err)
	}
	defer f.Close()
	return Parse(f)
}
