package main

import (
	"github.com/spf13/cobra"

	"fittrack/internal/config"
)

type rootFlags struct {
	driver     string
	sqlitePath string
	namespace  string
}

func newRootCmd() *cobra.Command {
	var flags rootFlags
	cmd := &cobra.Command{
		Use:           "fittrack",
		Short:         "fittrack guides workouts and tracks progress offline",
		Long:          "fittrack is a local-first fitness tracker with guided workout sessions, body measurements, streaks and achievements.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&flags.driver, "driver", "", "Store driver: sqlite, memory, postgres or redis (env STORE_DRIVER)")
	cmd.PersistentFlags().StringVar(&flags.sqlitePath, "db", "", "Path to SQLite database (env SQLITE_PATH)")
	cmd.PersistentFlags().StringVar(&flags.namespace, "namespace", "", "Store key namespace (env STORE_NAMESPACE)")

	load := func() config.Config {
		cfg := config.Load()
		if flags.driver != "" {
			cfg.StoreDriver = flags.driver
		}
		if flags.sqlitePath != "" {
			cfg.SQLitePath = flags.sqlitePath
		}
		if flags.namespace != "" {
			cfg.StoreNamespace = flags.namespace
		}
		return cfg
	}

	cmd.AddCommand(
		newServeCmd(load),
		newSeedCmd(load),
		newExportCmd(load),
		newImportCmd(load),
		newQuotaCmd(load),
		newStatsCmd(load),
		newWorkoutCmd(load),
		newMeasureCmd(load),
		newProfileCmd(load),
	)
	return cmd
}
