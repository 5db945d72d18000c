package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRuleContains(t *testing.T) {
	r := MustRule("146.62", "147", "-0.6", "20", "")

	assert.True(t, r.Contains(decimal.RequireFromString("146.62")))
	assert.True(t, r.Contains(decimal.RequireFromString("146.70")))
	assert.True(t, r.Contains(decimal.RequireFromString("147")))
	assert.False(t, r.Contains(decimal.RequireFromString("147.02")))
	assert.False(t, r.Contains(decimal.RequireFromString("146.60")))
}

func TestRuleAligned(t *testing.T) {
	r := MustRule("146.62", "147", "-0.6", "20", "")

	assert.True(t, r.Aligned(decimal.RequireFromString("146.62")))
	assert.True(t, r.Aligned(decimal.RequireFromString("146.70")))
	assert.False(t, r.Aligned(decimal.RequireFromString("146.71")))

	t.Run("zero spacing aligns only its fixed frequency", func(t *testing.T) {
		fixed := MustRule("146.605", "146.605", "-0.6", "0", "6.25")
		assert.True(t, fixed.Aligned(decimal.RequireFromString("146.605")))
		assert.False(t, fixed.Aligned(decimal.RequireFromString("146.61")))
	})
}

func TestBandPlanTableClassify(t *testing.T) {
	table := BandPlanTable{
		MustRule("146.62", "147", "-0.6", "20", ""),
		MustRule("146.625", "146.9875", "-0.6", "12.5", "12.5"),
		MustRule("147", "147.38", "0.6", "20", ""),
	}

	t.Run("first match wins on overlap", func(t *testing.T) {
		r, ok := table.Classify(decimal.RequireFromString("146.70"))
		assert.True(t, ok)
		assert.True(t, r.Spacing.Equal(decimal.NewFromInt(20)))
		assert.True(t, r.Offset.IsNegative())
	})

	t.Run("boundary belongs to the earlier segment", func(t *testing.T) {
		r, ok := table.Classify(decimal.RequireFromString("147"))
		assert.True(t, ok)
		assert.True(t, r.Offset.IsNegative())
	})

	t.Run("unmatched frequency", func(t *testing.T) {
		_, ok := table.Classify(decimal.RequireFromString("52.81"))
		assert.False(t, ok)
	})
}

func TestRuleString(t *testing.T) {
	r := MustRule("440.05", "440.675", "5", "25", "")
	assert.Equal(t, "440.0500-440.6750 MHz +5 MHz |25 kHz| [25 kHz]", r.String())
}
