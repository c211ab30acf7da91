// Package filter derives the visible list of catalog items from the current
// search, category, country and sort selection.
package filter

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/tLat87/SpiritLands/pkg/core"
)

// All disables the category or country filter.
const All = "all"

// SortKey selects the ordering of a view
type SortKey string

const (
	SortNone  SortKey = ""
	SortName  SortKey = "name"
	SortSpeed SortKey = "speed"
	SortYear  SortKey = "year"
)

// ErrUnknownSortKey is returned by ParseSortKey for unsupported keys
var ErrUnknownSortKey = errors.New("unknown sort key")

// ParseSortKey validates a user supplied sort key.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortNone, SortName, SortSpeed, SortYear:
		return k, nil
	case "height":
		return SortSpeed, nil
	default:
		return SortNone, fmt.Errorf("%w: %q", ErrUnknownSortKey, s)
	}
}

// Query is the UI filter state.
type Query struct {
	Text     string
	Category string
	Country  string
	Sort     SortKey
}

// ComputeView returns the items matching q, ordered by q.Sort.
// The result is always a new slice; items is never modified.
func ComputeView[C core.Category](items []core.Item[C], q Query) []core.Item[C] {
	folder := cases.Fold()
	needle := folder.String(q.Text)

	out := make([]core.Item[C], 0, len(items))
	for _, it := range items {
		if !matchesText(folder, it, needle) {
			continue
		}
		if !isAll(q.Category) && string(it.Type) != q.Category {
			continue
		}
		if !isAll(q.Country) && it.Country != q.Country {
			continue
		}
		out = append(out, it)
	}

	switch q.Sort {
	case SortName:
		slices.SortStableFunc(out, func(a, b core.Item[C]) int {
			return strings.Compare(a.Name, b.Name)
		})
	case SortSpeed:
		slices.SortStableFunc(out, func(a, b core.Item[C]) int {
			return cmp.Compare(b.Magnitude, a.Magnitude)
		})
	case SortYear:
		slices.SortStableFunc(out, func(a, b core.Item[C]) int {
			return cmp.Compare(b.ParsedYear(), a.ParsedYear())
		})
	}
	return out
}

// Search is the quick lookup used by the map search box: name or country
// substring, nothing for an empty query.
func Search[C core.Category](items []core.Item[C], text string) []core.Item[C] {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	folder := cases.Fold()
	needle := folder.String(text)

	var out []core.Item[C]
	for _, it := range items {
		if strings.Contains(folder.String(it.Name), needle) ||
			strings.Contains(folder.String(it.Country), needle) {
			out = append(out, it)
		}
	}
	return out
}

func matchesText[C core.Category](folder cases.Caser, it core.Item[C], needle string) bool {
	if needle == "" {
		return true
	}
	for _, field := range []string{it.Name, it.Maker, it.Country} {
		if strings.Contains(folder.String(field), needle) {
			return true
		}
	}
	return false
}

func isAll(s string) bool {
	return s == "" || strings.EqualFold(s, All)
}
