package geo

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/wroge/wgs84"

	"github.com/tLat87/SpiritLands/pkg/core"
)

// Catalog coordinates are WGS84 (EPSG:4326). Projected geometry is Web
// Mercator (EPSG:3857), the projection map tiles are drawn in.

// ErrInvalidCoordinates is returned when the coordinates are invalid
var ErrInvalidCoordinates = errors.New("invalid coordinates provided")

// earthRadiusKm is the mean earth radius used for great-circle distances.
const earthRadiusKm = 6371.0088

// ParseCoordinates parses a "lat,lon" string into core.Coordinates.
func ParseCoordinates(coords string) (core.Coordinates, error) {
	// split the string into its components
	coordsSplit := strings.Split(coords, ",")
	if len(coordsSplit) != 2 {
		return core.Coordinates{}, ErrInvalidCoordinates
	}
	// parse the latitude
	lat, err := strconv.ParseFloat(strings.TrimSpace(coordsSplit[0]), 64)
	if err != nil {
		return core.Coordinates{}, ErrInvalidCoordinates
	}
	// parse the longitude
	long, err := strconv.ParseFloat(strings.TrimSpace(coordsSplit[1]), 64)
	if err != nil {
		return core.Coordinates{}, ErrInvalidCoordinates
	}
	c := core.Coordinates{Latitude: lat, Longitude: long}
	if !Valid(c) {
		return core.Coordinates{}, ErrInvalidCoordinates
	}
	return c, nil
}

// Valid reports whether c lies within the WGS84 latitude and longitude ranges.
func Valid(c core.Coordinates) bool {
	if math.IsNaN(c.Latitude) || math.IsNaN(c.Longitude) {
		return false
	}
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

// Project converts a WGS84 position to a Web Mercator point. It fails when
// the projection is not finite, as it is at the poles.
func Project(c core.Coordinates) (geom.Point, error) {
	epsg := wgs84.EPSG()
	f := epsg.Transform(4326, 3857)
	x, y, _ := f(c.Longitude, c.Latitude, 0)
	point, err := geom.NewPoint(
		geom.Coordinates{
			XY:   geom.XY{X: x, Y: y},
			Type: geom.DimXY,
		},
	)
	if err != nil {
		return geom.Point{}, fmt.Errorf("projecting %v,%v: %w", c.Latitude, c.Longitude, err)
	}
	return point, nil
}

// Envelope returns the Web Mercator bounding box of coords. The envelope is
// empty when coords is empty.
func Envelope(coords []core.Coordinates) (geom.Envelope, error) {
	var env geom.Envelope
	for _, c := range coords {
		point, err := Project(c)
		if err != nil {
			return geom.Envelope{}, err
		}
		xy, ok := point.XY()
		if !ok {
			continue
		}
		if env, err = env.ExtendToIncludeXY(xy); err != nil {
			return geom.Envelope{}, err
		}
	}
	return env, nil
}

// Path joins coords, in order, into a projected line string. Fewer than two
// coordinates yield an empty line string; coordinates that all project to
// the same point are an error.
func Path(coords []core.Coordinates) (geom.LineString, error) {
	if len(coords) < 2 {
		return geom.LineString{}, nil
	}

	// Build coordinate sequence for LineString
	flatCoords := make([]float64, 0, len(coords)*2)
	for _, c := range coords {
		point, err := Project(c)
		if err != nil {
			return geom.LineString{}, err
		}
		xy, ok := point.XY()
		if !ok {
			continue
		}
		flatCoords = append(flatCoords, xy.X, xy.Y)
	}

	seq := geom.NewSequence(flatCoords, geom.DimXY)
	ls, err := geom.NewLineString(seq)
	if err != nil {
		return geom.LineString{}, fmt.Errorf("building path: %w", err)
	}
	return ls, nil
}

// Distance returns the great-circle distance between a and b in kilometres.
func Distance(a, b core.Coordinates) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := lat2 - lat1
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}
