package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tLat87/SpiritLands/internal/catalog"
	"github.com/tLat87/SpiritLands/pkg/core"
)

func ids[C core.Category](items []core.Item[C]) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestCompute_Empty(t *testing.T) {
	s := Compute[core.AircraftType](nil)
	assert.Zero(t, s.Total)
	assert.Zero(t, s.AverageMagnitude)
	assert.Empty(t, s.Top)
	assert.Empty(t, s.Oldest)
	assert.Zero(t, s.Countries())
}

func TestCompute(t *testing.T) {
	items := []core.Aircraft{
		{ID: "a", Country: "USA", Type: core.AircraftFighter, Magnitude: 2410, Year: "1997"},
		{ID: "b", Country: "USA", Type: core.AircraftPassenger, Magnitude: 988, Year: "1969"},
		{ID: "c", Country: "France", Type: core.AircraftPassenger, Magnitude: 2179, Year: "1969"},
		{ID: "d", Country: "USA", Type: core.AircraftMilitary, Magnitude: 3540, Year: "1964"},
		{ID: "e", Country: "Russia", Type: core.AircraftFighter, Magnitude: 2450},
	}
	before := ids(items)

	s := Compute(items)

	assert.Equal(t, 5, s.Total)
	assert.Equal(t, []Count{{"USA", 3}, {"France", 1}, {"Russia", 1}}, s.ByCountry)
	assert.Equal(t, []Count{{"fighter", 2}, {"passenger", 2}, {"military", 1}}, s.ByCategory)
	assert.Equal(t, 3, s.Countries())
	assert.Equal(t, 3, s.Categories())

	assert.Equal(t, []string{"d", "e", "a"}, ids(s.Top))
	assert.Equal(t, []string{"d", "b", "c"}, ids(s.Oldest), "ties keep input order, undated excluded")
	assert.Equal(t, []string{"a", "b", "c"}, ids(s.Newest))
	assert.Equal(t, 2313, s.AverageMagnitude) // 11567 / 5 = 2313.4

	assert.Equal(t, before, ids(items), "input must not be reordered")
}

func TestCompute_FewerThanTopN(t *testing.T) {
	s := Compute([]core.Volcano{
		{ID: "x", Magnitude: 3776, Type: core.VolcanoActive},
		{ID: "y", Magnitude: 1281, Year: "79", Type: core.VolcanoActive},
	})
	assert.Equal(t, []string{"x", "y"}, ids(s.Top))
	assert.Equal(t, []string{"y"}, ids(s.Oldest))
	assert.Equal(t, 2529, s.AverageMagnitude) // 2528.5 rounds up
}

func TestCompute_BundledAircraft(t *testing.T) {
	cat := catalog.Aircraft()
	s := Compute(cat.Items())

	require.Equal(t, cat.Len(), s.Total)
	require.Len(t, s.Top, TopN)
	assert.Equal(t, "SR-71 Blackbird", s.Top[0].Name)
	assert.Equal(t, len(cat.Countries()), s.Countries())
}

func TestMaxCount(t *testing.T) {
	assert.Zero(t, MaxCount(nil))
	assert.Equal(t, 4, MaxCount([]Count{{"a", 1}, {"b", 4}, {"c", 2}}))
}
