package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tLat87/SpiritLands/internal/filter"
	"github.com/tLat87/SpiritLands/pkg/core"
)

func newListCmd(a *app) *cobra.Command {
	var (
		q       filter.Query
		sortKey string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog items with optional filters",
		Example: `  spiritlands list --sort speed
  spiritlands list --kind volcano --category active --country Japan`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := filter.ParseSortKey(sortKey)
			if err != nil {
				return err
			}
			q.Sort = key
			switch a.kind {
			case core.KindVolcano:
				return listItems(a, a.volcanoView(), q)
			default:
				return listItems(a, a.aircraftView(), q)
			}
		},
	}
	cmd.Flags().StringVarP(&q.Text, "query", "q", "", "case-insensitive text matched against name, maker and country")
	cmd.Flags().StringVar(&q.Category, "category", filter.All, "category filter, or all")
	cmd.Flags().StringVar(&q.Country, "country", filter.All, "country filter, or all")
	cmd.Flags().StringVar(&sortKey, "sort", "", "sort key (name, speed, height, year)")
	return cmd
}

func listItems[C core.Category](a *app, v view[C], q filter.Query) error {
	items := filter.ComputeView(v.catalog.Items(), q)
	a.Logger.Debug("Computed view", "kind", a.kind, "query", q.Text, "results", len(items))
	return printItems(a.out, items, v.isBookmarked)
}

func newSearchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search <text>",
		Short: "Search items by name or country",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch a.kind {
			case core.KindVolcano:
				v := a.volcanoView()
				return printItems(a.out, filter.Search(v.catalog.Items(), args[0]), v.isBookmarked)
			default:
				v := a.aircraftView()
				return printItems(a.out, filter.Search(v.catalog.Items(), args[0]), v.isBookmarked)
			}
		},
	}
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show the full record of one item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch a.kind {
			case core.KindVolcano:
				return showItem(a, a.volcanoView(), args[0])
			default:
				return showItem(a, a.aircraftView(), args[0])
			}
		},
	}
}

func showItem[C core.Category](a *app, v view[C], id string) error {
	it, err := v.catalog.Get(id)
	if err != nil {
		return err
	}
	return printDetail(a.out, it, v.isBookmarked(id))
}

func newFactCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "fact",
		Short:       "Print the fact of the day",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{noStorage: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var fact string
			switch a.kind {
			case core.KindVolcano:
				fact = a.volcanoView().catalog.FactOfTheDay(time.Now())
			default:
				fact = a.aircraftView().catalog.FactOfTheDay(time.Now())
			}
			_, err := fmt.Fprintf(a.out, "Did you know? %s\n", fact)
			return err
		},
	}
}
