// pkg/core/item.go
package core

import (
	"strconv"
	"strings"
)

// Coordinates is a WGS84 position in decimal degrees
type Coordinates struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// Item is a single catalog entry. Aircraft and volcanoes share this shape and
// differ only in their category enum.
type Item[C Category] struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	Maker       string      `json:"maker" yaml:"maker"` // manufacturer, or location for volcanoes
	Country     string      `json:"country" yaml:"country"`
	Coordinates Coordinates `json:"coordinates" yaml:"coordinates"`
	Magnitude   float64     `json:"magnitude" yaml:"magnitude"` // max speed in km/h, or height in m
	Description string      `json:"description" yaml:"description"`
	Story       string      `json:"story" yaml:"story"` // history, or legend for volcanoes
	Facts       []string    `json:"facts" yaml:"facts"`
	Year        string      `json:"year,omitempty" yaml:"year,omitempty"` // first flight, or last eruption
	Type        C           `json:"type" yaml:"type"`
}

// Aircraft is an aircraft catalog entry
type Aircraft = Item[AircraftType]

// Volcano is a volcano catalog entry
type Volcano = Item[VolcanoType]

// Kind returns the catalog kind implied by the item's category.
func (it Item[C]) Kind() Kind {
	var c C
	return c.Kind()
}

// ParsedYear returns the leading integer of Year, or 0 when it is absent or
// does not start with a number.
func (it Item[C]) ParsedYear() int {
	s := strings.TrimSpace(it.Year)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	year, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return year
}

// MagnitudeUnit returns the unit of the item's magnitude figure.
func (it Item[C]) MagnitudeUnit() string {
	if it.Kind() == KindVolcano {
		return "m"
	}
	return "km/h"
}
