// pkg/core/kind.go
package core

import "fmt"

// Kind identifies a catalog family
type Kind string

const (
	KindAircraft Kind = "aircraft"
	KindVolcano  Kind = "volcano"
)

// Kinds lists every supported catalog kind in display order.
var Kinds = []Kind{KindAircraft, KindVolcano}

// BookmarkKey returns the fixed key-value store key holding the bookmarks of this kind.
func (k Kind) BookmarkKey() string {
	switch k {
	case KindAircraft:
		return "bookmarkedAircraft"
	case KindVolcano:
		return "bookmarkedVolcanoes"
	default:
		return "bookmarked_" + string(k)
	}
}

// ParseKind converts user input into a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "aircraft", "plane", "planes":
		return KindAircraft, nil
	case "volcano", "volcanoes":
		return KindVolcano, nil
	default:
		return "", fmt.Errorf("unknown catalog kind: %q", s)
	}
}

// Category is the closed enumeration an item kind is classified by.
type Category interface {
	~string
	Kind() Kind
	Valid() bool
}

// AircraftType classifies aircraft
type AircraftType string

const (
	AircraftFighter   AircraftType = "fighter"
	AircraftPassenger AircraftType = "passenger"
	AircraftCargo     AircraftType = "cargo"
	AircraftMilitary  AircraftType = "military"
)

func (AircraftType) Kind() Kind { return KindAircraft }

func (t AircraftType) Valid() bool {
	switch t {
	case AircraftFighter, AircraftPassenger, AircraftCargo, AircraftMilitary:
		return true
	}
	return false
}

// VolcanoType classifies volcanoes by activity
type VolcanoType string

const (
	VolcanoActive  VolcanoType = "active"
	VolcanoDormant VolcanoType = "dormant"
	VolcanoExtinct VolcanoType = "extinct"
)

func (VolcanoType) Kind() Kind { return KindVolcano }

func (t VolcanoType) Valid() bool {
	switch t {
	case VolcanoActive, VolcanoDormant, VolcanoExtinct:
		return true
	}
	return false
}
