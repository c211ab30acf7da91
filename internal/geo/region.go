package geo

import (
	"cmp"
	"slices"

	"github.com/tLat87/SpiritLands/pkg/core"
)

// FocusDelta is the span, in degrees, of a region centred on a single item.
const FocusDelta = 5.0

// DefaultRegion is shown when there is nothing to fit.
var DefaultRegion = Region{
	Center:         core.Coordinates{Latitude: 20, Longitude: 0},
	LatitudeDelta:  60,
	LongitudeDelta: 60,
}

// Region is a visible map area: a centre and the latitude and longitude
// spans around it.
type Region struct {
	Center         core.Coordinates `json:"center"`
	LatitudeDelta  float64          `json:"latitudeDelta"`
	LongitudeDelta float64          `json:"longitudeDelta"`
}

// Contains reports whether c falls inside the region.
func (r Region) Contains(c core.Coordinates) bool {
	return c.Latitude >= r.Center.Latitude-r.LatitudeDelta/2 &&
		c.Latitude <= r.Center.Latitude+r.LatitudeDelta/2 &&
		c.Longitude >= r.Center.Longitude-r.LongitudeDelta/2 &&
		c.Longitude <= r.Center.Longitude+r.LongitudeDelta/2
}

// FitRegion returns the smallest region showing every coordinate, grown by
// padding (a fraction of the span) on each side. A single coordinate yields
// its focus region and no coordinates yield DefaultRegion.
func FitRegion(coords []core.Coordinates, padding float64) Region {
	switch len(coords) {
	case 0:
		return DefaultRegion
	case 1:
		return FocusRegion(coords[0])
	}
	if padding < 0 {
		padding = 0
	}

	minLat, maxLat := coords[0].Latitude, coords[0].Latitude
	minLon, maxLon := coords[0].Longitude, coords[0].Longitude
	for _, c := range coords[1:] {
		minLat = min(minLat, c.Latitude)
		maxLat = max(maxLat, c.Latitude)
		minLon = min(minLon, c.Longitude)
		maxLon = max(maxLon, c.Longitude)
	}

	latDelta := (maxLat - minLat) * (1 + 2*padding)
	lonDelta := (maxLon - minLon) * (1 + 2*padding)

	return Region{
		Center: core.Coordinates{
			Latitude:  (minLat + maxLat) / 2,
			Longitude: (minLon + maxLon) / 2,
		},
		LatitudeDelta:  min(max(latDelta, FocusDelta), 180),
		LongitudeDelta: min(max(lonDelta, FocusDelta), 360),
	}
}

// FocusRegion returns the region centred on c used when one item is selected.
func FocusRegion(c core.Coordinates) Region {
	return Region{Center: c, LatitudeDelta: FocusDelta, LongitudeDelta: FocusDelta}
}

// Neighbor is a catalog item with its distance from a reference point.
type Neighbor[C core.Category] struct {
	Item       core.Item[C]
	DistanceKm float64
}

// Nearest returns up to n items closest to c, nearest first. Equal
// distances keep catalog order. n <= 0 returns every item.
func Nearest[C core.Category](items []core.Item[C], c core.Coordinates, n int) []Neighbor[C] {
	out := make([]Neighbor[C], 0, len(items))
	for _, it := range items {
		out = append(out, Neighbor[C]{Item: it, DistanceKm: Distance(c, it.Coordinates)})
	}
	slices.SortStableFunc(out, func(a, b Neighbor[C]) int {
		return cmp.Compare(a.DistanceKm, b.DistanceKm)
	})
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

// Coordinates returns the positions of items in order.
func Coordinates[C core.Category](items []core.Item[C]) []core.Coordinates {
	out := make([]core.Coordinates, len(items))
	for i, it := range items {
		out[i] = it.Coordinates
	}
	return out
}
