package main

import (
	"github.com/spf13/cobra"

	"github.com/tLat87/SpiritLands/internal/config"
)

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   AppName,
		Short: "Travel guide to famous aircraft and volcanoes",
		Long: `SpiritLands is a terminal travel guide to famous aircraft and volcanoes.

Browse and search the bundled catalogs, keep bookmarks, compare aircraft,
see statistics, find items on the map and test yourself with a quiz.`,
		Version:       CurrentVersion,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.Context(), cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.configDir, "config-dir", ".", "directory holding "+config.FileName)
	root.PersistentFlags().StringVarP(&a.kindFlag, "kind", "k", "aircraft", "catalog kind (aircraft, volcano)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		newListCmd(a),
		newSearchCmd(a),
		newShowCmd(a),
		newFactCmd(a),
		newBookmarkCmd(a),
		newBookmarksCmd(a),
		newShareCmd(a),
		newMapCmd(a),
		newCompareCmd(a),
		newStatsCmd(a),
		newQuizCmd(a),
		newConfigCmd(a),
	)
	return root
}
