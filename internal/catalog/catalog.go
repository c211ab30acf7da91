// Package catalog holds the static reference data bundled with the guide.
package catalog

import (
	"embed"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/tLat87/SpiritLands/internal/geo"
	"github.com/tLat87/SpiritLands/pkg/core"
	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

// ErrNotFound is returned when no catalog item carries the requested id
var ErrNotFound = errors.New("item not found")

// Catalog is an immutable, validated list of items of one kind.
type Catalog[C core.Category] struct {
	kind       core.Kind
	items      []core.Item[C]
	index      map[string]int
	dailyFacts []string
}

// document is the on-disk layout of a catalog file
type document[C core.Category] struct {
	Kind       core.Kind      `yaml:"kind"`
	Items      []core.Item[C] `yaml:"items"`
	DailyFacts []string       `yaml:"dailyFacts"`
}

// Load decodes and validates a YAML catalog document.
func Load[C core.Category](data []byte) (*Catalog[C], error) {
	var doc document[C]
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	var zero C
	if doc.Kind != "" && doc.Kind != zero.Kind() {
		return nil, fmt.Errorf("catalog kind %q does not match %q", doc.Kind, zero.Kind())
	}

	c := &Catalog[C]{
		kind:       zero.Kind(),
		items:      doc.Items,
		index:      make(map[string]int, len(doc.Items)),
		dailyFacts: doc.DailyFacts,
	}
	for i, it := range doc.Items {
		if err := validate(it); err != nil {
			return nil, err
		}
		if _, dup := c.index[it.ID]; dup {
			return nil, fmt.Errorf("duplicate item id %q", it.ID)
		}
		c.index[it.ID] = i
	}
	return c, nil
}

func validate[C core.Category](it core.Item[C]) error {
	if it.ID == "" {
		return fmt.Errorf("item %q has no id", it.Name)
	}
	if !it.Type.Valid() {
		return fmt.Errorf("item %q: invalid type %q", it.ID, it.Type)
	}
	if !geo.Valid(it.Coordinates) {
		return fmt.Errorf("item %q: coordinates out of range (%f, %f)",
			it.ID, it.Coordinates.Latitude, it.Coordinates.Longitude)
	}
	return nil
}

// Kind returns the kind of item held by the catalog.
func (c *Catalog[C]) Kind() core.Kind {
	return c.kind
}

// Len returns the number of items.
func (c *Catalog[C]) Len() int {
	return len(c.items)
}

// Items returns a copy of all items in catalog order.
func (c *Catalog[C]) Items() []core.Item[C] {
	out := make([]core.Item[C], len(c.items))
	for i, it := range c.items {
		it.Facts = slices.Clone(it.Facts)
		out[i] = it
	}
	return out
}

// Get looks up an item by id.
func (c *Catalog[C]) Get(id string) (core.Item[C], error) {
	i, ok := c.index[id]
	if !ok {
		return core.Item[C]{}, fmt.Errorf("%s %q: %w", c.kind, id, ErrNotFound)
	}
	it := c.items[i]
	it.Facts = slices.Clone(it.Facts)
	return it, nil
}

// Countries returns the distinct countries, sorted.
func (c *Catalog[C]) Countries() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, it := range c.items {
		if _, ok := seen[it.Country]; ok {
			continue
		}
		seen[it.Country] = struct{}{}
		out = append(out, it.Country)
	}
	slices.Sort(out)
	return out
}

// Categories returns the distinct categories in order of first appearance.
func (c *Catalog[C]) Categories() []C {
	var out []C
	for _, it := range c.items {
		if !slices.Contains(out, it.Type) {
			out = append(out, it.Type)
		}
	}
	return out
}

// DailyFacts returns the general facts shown on the home screen.
func (c *Catalog[C]) DailyFacts() []string {
	return slices.Clone(c.dailyFacts)
}

// FactOfTheDay picks one daily fact, stable for a calendar day.
func (c *Catalog[C]) FactOfTheDay(day time.Time) string {
	if len(c.dailyFacts) == 0 {
		return ""
	}
	return c.dailyFacts[day.YearDay()%len(c.dailyFacts)]
}

var (
	aircraftOnce sync.Once
	aircraft     *Catalog[core.AircraftType]

	volcanoOnce sync.Once
	volcanoes   *Catalog[core.VolcanoType]
)

// Aircraft returns the bundled aircraft catalog.
func Aircraft() *Catalog[core.AircraftType] {
	aircraftOnce.Do(func() {
		aircraft = mustLoad[core.AircraftType]("data/aircraft.yaml")
	})
	return aircraft
}

// Volcanoes returns the bundled volcano catalog.
func Volcanoes() *Catalog[core.VolcanoType] {
	volcanoOnce.Do(func() {
		volcanoes = mustLoad[core.VolcanoType]("data/volcanoes.yaml")
	})
	return volcanoes
}

// mustLoad panics on invalid bundled data; the files ship with the binary.
func mustLoad[C core.Category](name string) *Catalog[C] {
	data, err := dataFS.ReadFile(name)
	if err != nil {
		panic(fmt.Errorf("failed to read %s: %w", name, err))
	}
	c, err := Load[C](data)
	if err != nil {
		panic(fmt.Errorf("invalid bundled catalog %s: %w", name, err))
	}
	return c
}
