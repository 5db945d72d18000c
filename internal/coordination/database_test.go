package coordination

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pnwcoord/repeater-qa/internal/domain"
)

const extractHeader = "CALL,CITY,LOCALE,OUTPUT_FREQ,INPUT_FREQ,CTCSS_IN,CTCSS_OUT,DCS_CDCSS," +
	"FM_WIDE,FM_NARROW,DSTAR_DV,DSTAR_DD,DMR,FUSION,P25_PHASE_1,P25_PHASE_2," +
	"NXDN_DIGITAL,NXDN_MIXED,ATV,DATV,LATITUDE,LONGITUDE\n"

// extract builds a minimal extract source: version stamp, header, rows.
func extract(rows ...string) *strings.Reader {
	return strings.NewReader("DATA_SPEC_VERSION,2\n" + extractHeader + strings.Join(rows, "\n"))
}

func TestParse(t *testing.T) {
	t.Run("analog FM wide row", func(t *testing.T) {
		channels, err := Parse(extract(
			`K7LED,Issaquah,,146.82,146.22,103.5,103.5,,Y,N,N,N,N,N,N,N,N,N,N,N,47.50,-121.97`,
		))
		require.NoError(t, err)
		require.Len(t, channels, 1)

		c := channels[0]
		assert.Equal(t, "K7LED", c.Call)
		assert.Equal(t, "Issaquah", c.Location)
		assert.Equal(t, "146.82000/146.22000", c.Key().String())
		assert.Equal(t, "103.5", c.InputTone.String())
		assert.Equal(t, []string{domain.ModeFM}, c.Modes)
		assert.Equal(t, "25", c.Bandwidth.String())
		assert.InDelta(t, 47.50, c.Latitude, 1e-9)
	})

	t.Run("narrow-only row gets narrow bandwidth", func(t *testing.T) {
		channels, err := Parse(extract(
			`W7AW,Seattle,,145.33,144.73,,,023,N,Y,N,N,N,N,N,N,N,N,N,N,47.61,-122.33`,
		))
		require.NoError(t, err)
		require.Len(t, channels, 1)
		assert.Equal(t, "12.5", channels[0].Bandwidth.String())
		assert.Equal(t, "023", channels[0].InputCode)
	})

	t.Run("digital flag excludes even with analog flag", func(t *testing.T) {
		for _, col := range []string{"DSTAR_DV", "DSTAR_DD", "DMR", "FUSION",
			"P25_PHASE_1", "P25_PHASE_2", "NXDN_DIGITAL", "NXDN_MIXED", "ATV", "DATV"} {
			row := map[string]string{
				"CALL": "WA7DMR", "OUTPUT_FREQ": "440.125", "INPUT_FREQ": "445.125",
				"FM_WIDE": "Y", col: "Y",
			}
			channels, err := Parse(extract(buildRow(row)))
			require.NoError(t, err, col)
			assert.Empty(t, channels, "row flagged %s should be excluded", col)
		}
	})

	t.Run("strips repeater suffix", func(t *testing.T) {
		channels, err := Parse(extract(
			`WW7PSR/R,Seattle,,146.96,146.36,,,,Y,N,N,N,N,N,N,N,N,N,N,N,,`,
		))
		require.NoError(t, err)
		require.Len(t, channels, 1)
		assert.Equal(t, "WW7PSR", channels[0].Call)
	})

	t.Run("skips LINK rows", func(t *testing.T) {
		channels, err := Parse(extract(
			`K7LNK,Gold Mtn,LINK,224.70,223.10,,,,Y,N,N,N,N,N,N,N,N,N,N,N,,`,
		))
		require.NoError(t, err)
		assert.Empty(t, channels)
	})

	t.Run("malformed frequency fails naming the record", func(t *testing.T) {
		_, err := Parse(extract(
			`K7BAD,Nowhere,,146.8X,146.22,,,,Y,N,N,N,N,N,N,N,N,N,N,N,,`,
		))
		require.ErrorIs(t, err, domain.ErrBadFrequency)
		assert.Contains(t, err.Error(), "K7BAD")
	})

	t.Run("empty source", func(t *testing.T) {
		channels, err := Parse(strings.NewReader("DATA_SPEC_VERSION,2\n"))
		require.NoError(t, err)
		assert.Empty(t, channels)
	})
}

func TestParseAll(t *testing.T) {
	a := extract(`K7LED,Issaquah,,146.82,146.22,103.5,,,Y,N,N,N,N,N,N,N,N,N,N,N,,`)
	b := extract(
		`W7AW,Seattle,,145.33,144.73,,,,Y,N,N,N,N,N,N,N,N,N,N,N,,`,
		// Same pair as the first source: concatenation keeps both.
		`K7LED,Issaquah,,146.82,146.22,103.5,,,Y,N,N,N,N,N,N,N,N,N,N,N,,`,
	)

	channels, err := ParseAll(a, b)
	require.NoError(t, err)
	assert.Len(t, channels, 3)
}

// buildRow renders a row in extract column order from a sparse field map.
func buildRow(fields map[string]string) string {
	cols := strings.Split(strings.TrimSuffix(extractHeader, "\n"), ",")
	out := make([]string, len(cols))
	for i, col := range cols {
		if v, ok := fields[col]; ok {
			out[i] = v
		} else if isFlagColumn(col) {
			out[i] = "N"
		}
	}
	return strings.Join(out, ",")
}

func isFlagColumn(col string) bool {
	switch col {
	case "FM_WIDE", "FM_NARROW", "DSTAR_DV", "DSTAR_DD", "DMR", "FUSION",
		"P25_PHASE_1", "P25_PHASE_2", "NXDN_DIGITAL", "NXDN_MIXED", "ATV", "DATV":
		return true
	}
	return false
}
