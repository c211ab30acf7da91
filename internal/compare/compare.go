// Package compare holds a side-by-side selection of catalog items.
package compare

import (
	"errors"
	"slices"

	"github.com/tLat87/SpiritLands/pkg/core"
)

// MaxSelected is how many items can be compared at once.
const MaxSelected = 3

// ErrLimitReached is returned when adding to a full selection.
var ErrLimitReached = errors.New("you can compare up to 3 items at once")

// Selection is an ordered set of up to MaxSelected items. The zero value is
// an empty selection. It is not safe for concurrent use.
type Selection[C core.Category] struct {
	items []core.Item[C]
}

// NewSelection selects items in order, stopping at the first error.
func NewSelection[C core.Category](items ...core.Item[C]) (*Selection[C], error) {
	s := &Selection[C]{}
	for _, it := range items {
		if s.Contains(it.ID) {
			continue
		}
		if _, err := s.Toggle(it); err != nil {
			return s, err
		}
	}
	return s, nil
}

// Toggle deselects item when it is selected and selects it otherwise. It
// reports whether item is selected afterwards.
func (s *Selection[C]) Toggle(item core.Item[C]) (bool, error) {
	if i := s.index(item.ID); i >= 0 {
		s.items = slices.Delete(s.items, i, i+1)
		return false, nil
	}
	if len(s.items) >= MaxSelected {
		return false, ErrLimitReached
	}
	s.items = append(s.items, item)
	return true, nil
}

// Contains reports whether id is selected.
func (s *Selection[C]) Contains(id string) bool {
	return s.index(id) >= 0
}

// Clear empties the selection.
func (s *Selection[C]) Clear() {
	s.items = nil
}

// Items returns the selected items in selection order.
func (s *Selection[C]) Items() []core.Item[C] {
	return slices.Clone(s.items)
}

// Len returns the number of selected items.
func (s *Selection[C]) Len() int {
	return len(s.items)
}

// Winner returns the selected item with the highest magnitude. Earlier
// selections win ties. There is no winner with fewer than two items.
func (s *Selection[C]) Winner() (core.Item[C], bool) {
	if len(s.items) < 2 {
		return core.Item[C]{}, false
	}
	winner := s.items[0]
	for _, it := range s.items[1:] {
		if it.Magnitude > winner.Magnitude {
			winner = it
		}
	}
	return winner, true
}

func (s *Selection[C]) index(id string) int {
	return slices.IndexFunc(s.items, func(it core.Item[C]) bool { return it.ID == id })
}
