package bandplan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pnwcoord/repeater-qa/internal/domain"
)

func TestEnumerate(t *testing.T) {
	t.Run("swept rule cardinality", func(t *testing.T) {
		// floor((147 - 146.62) / 0.02) + 1 = 20 channels, ends inclusive.
		e := NewEnumerator(domain.BandPlanTable{
			domain.MustRule("146.62", "147", "-0.6", "20", ""),
		})
		pairs := e.Enumerate()
		require.Len(t, pairs, 20)
		assert.Equal(t, "146.62", pairs[0].Output.String())
		assert.Equal(t, "146.02", pairs[0].Input.String())
		assert.Equal(t, "147", pairs[19].Output.String())
	})

	t.Run("zero spacing yields one fixed pair", func(t *testing.T) {
		e := NewEnumerator(domain.BandPlanTable{
			domain.MustRule("146.605", "146.605", "-0.6", "0", "6.25"),
		})
		pairs := e.Enumerate()
		require.Len(t, pairs, 1)
		assert.Equal(t, "146.005", pairs[0].Input.String())
	})

	t.Run("simplex rules are skipped", func(t *testing.T) {
		e := NewEnumerator(domain.BandPlanTable{
			domain.MustRule("1247", "1252", "0", "25", ""),
		})
		assert.Empty(t, e.Enumerate())
	})

	t.Run("narrow rules are out of scope", func(t *testing.T) {
		e := NewEnumerator(domain.BandPlanTable{
			domain.MustRule("441.0125", "442.9875", "5", "12.5", "12.5"),
		})
		assert.Empty(t, e.Enumerate())
	})

	t.Run("overlapping rules dedup", func(t *testing.T) {
		e := NewEnumerator(domain.BandPlanTable{
			domain.MustRule("441.025", "442.975", "5", "25", ""),
			domain.MustRule("442.025", "444.975", "5", "25", ""),
		})
		seen := map[domain.PairKey]int{}
		for _, p := range e.Enumerate() {
			seen[p.Key()]++
		}
		for key, n := range seen {
			assert.Equal(t, 1, n, "pair %s enumerated twice", key)
		}
	})
}

func TestAvailable(t *testing.T) {
	table := domain.BandPlanTable{
		domain.MustRule("146.62", "147", "-0.6", "20", ""),
	}
	e := NewEnumerator(table)
	full := e.Enumerate()

	t.Run("no coordinations leaves the full set", func(t *testing.T) {
		assert.Len(t, e.Available(nil), len(full))
	})

	t.Run("a coordination removes exactly its pair", func(t *testing.T) {
		coordinated := []domain.Channel{channel(t, "K7LED", "146.70", "146.10")}
		available := e.Available(coordinated)
		require.Len(t, available, len(full)-1)
		for _, p := range available {
			assert.NotEqual(t, coordinated[0].Key(), p.Key())
		}
	})

	t.Run("a reversed coordination removes the same pair", func(t *testing.T) {
		// Recorded with the roles swapped: input 146.70, output 146.10.
		coordinated := []domain.Channel{channel(t, "K7LED", "146.10", "146.70")}
		available := e.Available(coordinated)
		assert.Len(t, available, len(full)-1)
	})

	t.Run("off-plan coordination removes nothing", func(t *testing.T) {
		coordinated := []domain.Channel{channel(t, "K7ODD", "146.71", "146.11")}
		assert.Len(t, e.Available(coordinated), len(full))
	})

	t.Run("result is sorted by output", func(t *testing.T) {
		available := e.Available(nil)
		for i := 1; i < len(available); i++ {
			assert.True(t, available[i-1].Output.Cmp(available[i].Output) <= 0)
		}
	})
}

func TestDefaultTables(t *testing.T) {
	// The shipped plan should enumerate a plausible regional channel set
	// and validate its own enumerated pairs.
	e := NewEnumerator(DefaultRules())
	v := NewValidator(DefaultSegments(), DefaultRules(), nil)

	pairs := e.Enumerate()
	require.NotEmpty(t, pairs)

	for _, p := range pairs {
		verdict := v.Check(p)
		assert.True(t, verdict.OK, "enumerated pair fails its own plan: %s %v",
			p.Key(), verdict.Comments)
	}
}
