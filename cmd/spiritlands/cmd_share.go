package main

import (
	"github.com/spf13/cobra"

	"github.com/tLat87/SpiritLands/internal/share"
	"github.com/tLat87/SpiritLands/pkg/core"
)

func newShareCmd(a *app) *cobra.Command {
	var shareApp bool
	cmd := &cobra.Command{
		Use:         "share [id]",
		Short:       "Share an item, or the app itself with --app",
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{noStorage: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var msg share.Message
			switch {
			case shareApp:
				msg = share.App()
			case len(args) == 0:
				return cmd.Usage()
			case a.kind == core.KindVolcano:
				it, err := a.volcanoView().catalog.Get(args[0])
				if err != nil {
					return err
				}
				msg = share.ForItem(it)
			default:
				it, err := a.aircraftView().catalog.Get(args[0])
				if err != nil {
					return err
				}
				msg = share.ForItem(it)
			}

			<-share.Send(cmd.Context(), share.WriterSharer{W: a.out}, msg, a.Logger)
			return nil
		},
	}
	cmd.Flags().BoolVar(&shareApp, "app", false, "share the app instead of an item")
	return cmd
}
