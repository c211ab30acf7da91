package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tLat87/SpiritLands/internal/compare"
	"github.com/tLat87/SpiritLands/pkg/core"
)

func newCompareCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "compare <id> <id> [id]",
		Short:       "Compare up to three items side by side",
		Args:        cobra.RangeArgs(2, compare.MaxSelected),
		Annotations: map[string]string{noStorage: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			switch a.kind {
			case core.KindVolcano:
				return compareItems(a, a.volcanoView(), args)
			default:
				return compareItems(a, a.aircraftView(), args)
			}
		},
	}
}

func compareItems[C core.Category](a *app, v view[C], ids []string) error {
	sel := &compare.Selection[C]{}
	for _, id := range ids {
		it, err := v.catalog.Get(id)
		if err != nil {
			return err
		}
		if sel.Contains(id) {
			continue
		}
		if _, err := sel.Toggle(it); err != nil {
			return err
		}
	}

	items := sel.Items()
	t := newTable()
	row := func(label string, value func(core.Item[C]) string) {
		cells := []string{label}
		for _, it := range items {
			cells = append(cells, value(it))
		}
		t.addRow(cells...)
	}
	row("", func(it core.Item[C]) string { return it.Name })
	row("Type", func(it core.Item[C]) string { return string(it.Type) })
	row("Country", func(it core.Item[C]) string { return it.Country })
	row(magnitudeLabel(a.kind), func(it core.Item[C]) string { return formatMagnitude(it.Magnitude, it.MagnitudeUnit()) })
	row("Year", func(it core.Item[C]) string { return yearOrDash(it.Year) })
	if err := t.render(a.out); err != nil {
		return err
	}

	winner, ok := sel.Winner()
	if !ok {
		return nil
	}
	title := "Speed Champion"
	if a.kind == core.KindVolcano {
		title = "Tallest"
	}
	_, err := fmt.Fprintf(a.out, "\n%s: %s (%s)\n", title, winner.Name, formatMagnitude(winner.Magnitude, winner.MagnitudeUnit()))
	return err
}
