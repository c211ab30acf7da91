package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration and storage status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := viper.AllSettings()
			redact(settings, "db", "password")
			redact(settings, "influx", "token")
			if used := viper.ConfigFileUsed(); used != "" {
				settings["configFile"] = used
			}
			settings["storageStatus"] = storageStatus(a)
			enc := json.NewEncoder(a.out)
			enc.SetIndent("", "  ")
			return enc.Encode(settings)
		},
	}
}

func redact(settings map[string]any, section, key string) {
	m, ok := settings[section].(map[string]any)
	if !ok {
		return
	}
	if v, ok := m[key].(string); ok && v != "" {
		m[key] = "********"
	}
}
