package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tLat87/SpiritLands/internal/stats"
	"github.com/tLat87/SpiritLands/pkg/core"
)

// barWidth is the length of the longest bar in a distribution chart.
const barWidth = 20

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "stats",
		Short:       "Show catalog statistics",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{noStorage: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			switch a.kind {
			case core.KindVolcano:
				return printStats(a.out, stats.Compute(a.volcanoView().catalog.Items()))
			default:
				return printStats(a.out, stats.Compute(a.aircraftView().catalog.Items()))
			}
		},
	}
}

func printStats[C core.Category](w io.Writer, s stats.Summary[C]) error {
	var zero C
	kind := zero.Kind()
	unit := core.Item[C]{}.MagnitudeUnit()

	t := newTable()
	t.addRow("Total:", strconv.Itoa(s.Total))
	t.addRow("Countries:", strconv.Itoa(s.Countries()))
	t.addRow("Categories:", strconv.Itoa(s.Categories()))
	t.addRow("Average "+strings.ToLower(magnitudeLabel(kind))+":", fmt.Sprintf("%d %s", s.AverageMagnitude, unit))
	if err := t.render(w); err != nil {
		return err
	}

	printDistribution(w, "By category", s.ByCategory)
	printDistribution(w, "By country", s.ByCountry)

	topTitle := "Fastest"
	if kind == core.KindVolcano {
		topTitle = "Tallest"
	}
	printRanked(w, topTitle, s.Top, func(it core.Item[C]) string {
		return formatMagnitude(it.Magnitude, it.MagnitudeUnit())
	})
	printRanked(w, "Oldest", s.Oldest, func(it core.Item[C]) string { return it.Year })
	printRanked(w, "Newest", s.Newest, func(it core.Item[C]) string { return it.Year })
	return nil
}

func printDistribution(w io.Writer, title string, counts []stats.Count) {
	fmt.Fprintf(w, "\n%s:\n", title)
	peak := stats.MaxCount(counts)
	t := newTable()
	for _, c := range counts {
		n := 0
		if peak > 0 {
			n = max(1, c.Count*barWidth/peak)
		}
		t.addRow("  "+c.Key, strings.Repeat("#", n), strconv.Itoa(c.Count))
	}
	t.render(w)
}

func printRanked[C core.Category](w io.Writer, title string, items []core.Item[C], value func(core.Item[C]) string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s:\n", title)
	for i, it := range items {
		fmt.Fprintf(w, "  %d. %s (%s)\n", i+1, it.Name, value(it))
	}
}
