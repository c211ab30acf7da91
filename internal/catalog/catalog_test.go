package catalog

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tLat87/SpiritLands/pkg/core"
)

func TestBundledCatalogs(t *testing.T) {
	a := Aircraft()
	require.NotNil(t, a)
	assert.Equal(t, core.KindAircraft, a.Kind())
	assert.Equal(t, 9, a.Len())
	assert.Len(t, a.DailyFacts(), 10)

	v := Volcanoes()
	require.NotNil(t, v)
	assert.Equal(t, core.KindVolcano, v.Kind())
	assert.Equal(t, 9, v.Len())
}

func TestGet(t *testing.T) {
	a := Aircraft()

	concorde, err := a.Get("3")
	require.NoError(t, err)
	assert.Equal(t, "Concorde", concorde.Name)
	assert.Equal(t, "Aérospatiale/BAC", concorde.Maker)
	assert.Equal(t, core.AircraftPassenger, concorde.Type)
	assert.Equal(t, 1969, concorde.ParsedYear())

	_, err = a.Get("404")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestItemsReturnsCopy(t *testing.T) {
	a := Aircraft()
	items := a.Items()
	items[0].Name = "changed"
	items[0].Facts[0] = "changed"

	fresh, err := a.Get(items[0].ID)
	require.NoError(t, err)
	assert.NotEqual(t, "changed", fresh.Name)
	assert.NotEqual(t, "changed", fresh.Facts[0])
}

func TestCountriesAndCategories(t *testing.T) {
	a := Aircraft()
	assert.Equal(t, []string{"France", "France/UK", "Russia", "USA", "Ukraine"}, a.Countries())
	assert.Equal(t, []core.AircraftType{
		core.AircraftFighter, core.AircraftPassenger, core.AircraftMilitary, core.AircraftCargo,
	}, a.Categories())

	v := Volcanoes()
	assert.ElementsMatch(t, []core.VolcanoType{core.VolcanoActive, core.VolcanoDormant}, v.Categories())
}

func TestFactOfTheDay(t *testing.T) {
	v := Volcanoes()
	day := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	later := time.Date(2026, 3, 1, 22, 0, 0, 0, time.UTC)

	fact := v.FactOfTheDay(day)
	assert.NotEmpty(t, fact)
	assert.Equal(t, fact, v.FactOfTheDay(later))
	assert.Contains(t, v.DailyFacts(), fact)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name: "duplicate id",
			doc: `
items:
  - {id: "1", name: a, type: fighter}
  - {id: "1", name: b, type: cargo}
`,
			wantErr: "duplicate item id",
		},
		{
			name:    "missing id",
			doc:     `items: [{name: nameless, type: fighter}]`,
			wantErr: "has no id",
		},
		{
			name:    "bad type",
			doc:     `items: [{id: "1", name: x, type: zeppelin}]`,
			wantErr: "invalid type",
		},
		{
			name:    "bad coordinates",
			doc:     `items: [{id: "1", name: x, type: cargo, coordinates: {latitude: 91, longitude: 0}}]`,
			wantErr: "coordinates out of range",
		},
		{
			name:    "nan coordinates",
			doc:     `items: [{id: "1", name: x, type: cargo, coordinates: {latitude: .nan, longitude: 0}}]`,
			wantErr: "coordinates out of range",
		},
		{
			name:    "kind mismatch",
			doc:     `kind: volcano`,
			wantErr: "does not match",
		},
		{
			name:    "malformed yaml",
			doc:     `items: [`,
			wantErr: "failed to decode catalog",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load[core.AircraftType]([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_Valid(t *testing.T) {
	c, err := Load[core.VolcanoType]([]byte(`
kind: volcano
items:
  - id: v1
    name: Test
    country: Nowhere
    magnitude: 100
    type: extinct
`))
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, "", c.FactOfTheDay(time.Now()))
}
