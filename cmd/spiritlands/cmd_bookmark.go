package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tLat87/SpiritLands/internal/influx"
	"github.com/tLat87/SpiritLands/pkg/core"
)

func newBookmarkCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "bookmark <id>",
		Short: "Toggle the bookmark of an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch a.kind {
			case core.KindVolcano:
				return toggleBookmark(a, a.volcanoView(), args[0])
			default:
				return toggleBookmark(a, a.aircraftView(), args[0])
			}
		},
	}
}

func toggleBookmark[C core.Category](a *app, v view[C], id string) error {
	it, err := v.catalog.Get(id)
	if err != nil {
		return err
	}

	bookmarked := v.store.Toggle(it)
	a.usage.Record(influx.BookmarkPoint(a.kind, id, bookmarked, time.Now()))

	if bookmarked {
		_, err = fmt.Fprintf(a.out, "Bookmarked %s.\n", it.Name)
	} else {
		_, err = fmt.Fprintf(a.out, "Removed %s from bookmarks.\n", it.Name)
	}
	return err
}

func newBookmarksCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "bookmarks",
		Short: "List bookmarked items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch a.kind {
			case core.KindVolcano:
				return listBookmarks(a, a.volcanoView())
			default:
				return listBookmarks(a, a.aircraftView())
			}
		},
	}
}

func listBookmarks[C core.Category](a *app, v view[C]) error {
	items := v.store.Items()
	if len(items) == 0 {
		_, err := fmt.Fprintln(a.out, "No bookmarks yet.")
		return err
	}
	return printItems(a.out, items, nil)
}
