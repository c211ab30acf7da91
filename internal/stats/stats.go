// Package stats derives catalog statistics.
package stats

import (
	"cmp"
	"math"
	"slices"

	"github.com/tLat87/SpiritLands/pkg/core"
)

// TopN is the length of the ranked lists in a Summary.
const TopN = 3

// Count is the number of items sharing a key.
type Count struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// Summary is the statistics of a set of catalog items.
type Summary[C core.Category] struct {
	Total int `json:"total"`
	// ByCategory and ByCountry are ordered by descending count, ties in
	// order of first appearance.
	ByCategory []Count `json:"byCategory"`
	ByCountry  []Count `json:"byCountry"`
	// Top holds the items with the highest magnitude.
	Top []core.Item[C] `json:"top"`
	// Oldest and Newest only consider items with a parseable year.
	Oldest           []core.Item[C] `json:"oldest"`
	Newest           []core.Item[C] `json:"newest"`
	AverageMagnitude int            `json:"averageMagnitude"`
}

// Compute summarizes items. items is never modified.
func Compute[C core.Category](items []core.Item[C]) Summary[C] {
	s := Summary[C]{
		Total:      len(items),
		ByCategory: countBy(items, func(it core.Item[C]) string { return string(it.Type) }),
		ByCountry:  countBy(items, func(it core.Item[C]) string { return it.Country }),
	}
	if len(items) == 0 {
		return s
	}

	var total float64
	for _, it := range items {
		total += it.Magnitude
	}
	s.AverageMagnitude = int(math.Round(total / float64(len(items))))

	byMagnitude := slices.Clone(items)
	slices.SortStableFunc(byMagnitude, func(a, b core.Item[C]) int {
		return cmp.Compare(b.Magnitude, a.Magnitude)
	})
	s.Top = head(byMagnitude)

	dated := make([]core.Item[C], 0, len(items))
	for _, it := range items {
		if it.ParsedYear() > 0 {
			dated = append(dated, it)
		}
	}
	slices.SortStableFunc(dated, func(a, b core.Item[C]) int {
		return cmp.Compare(a.ParsedYear(), b.ParsedYear())
	})
	s.Oldest = head(dated)

	slices.SortStableFunc(dated, func(a, b core.Item[C]) int {
		return cmp.Compare(b.ParsedYear(), a.ParsedYear())
	})
	s.Newest = head(dated)

	return s
}

// Countries returns how many distinct countries the summary covers.
func (s Summary[C]) Countries() int { return len(s.ByCountry) }

// Categories returns how many distinct categories the summary covers.
func (s Summary[C]) Categories() int { return len(s.ByCategory) }

// MaxCount returns the largest count in counts, or 0.
func MaxCount(counts []Count) int {
	m := 0
	for _, c := range counts {
		m = max(m, c.Count)
	}
	return m
}

func countBy[C core.Category](items []core.Item[C], key func(core.Item[C]) string) []Count {
	idx := make(map[string]int)
	var counts []Count
	for _, it := range items {
		k := key(it)
		if i, ok := idx[k]; ok {
			counts[i].Count++
			continue
		}
		idx[k] = len(counts)
		counts = append(counts, Count{Key: k, Count: 1})
	}
	slices.SortStableFunc(counts, func(a, b Count) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return counts
}

func head[T any](s []T) []T {
	return slices.Clone(s[:min(TopN, len(s))])
}
