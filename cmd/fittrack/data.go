package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fittrack/internal/seed"
)

func newSeedCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Install the bundled exercises and default program",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd.Context(), load, func(e *env) error {
				res, err := seed.Run(cmd.Context(), e.db, e.logger)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %d exercise types\n", res.ExerciseTypes)
				if res.Program != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "Created program %q (%s)\n", res.Program.Name, res.Program.ID)
				}
				return nil
			})
		},
	}
}

func newExportCmd(load loader) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all data as a JSON backup",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd.Context(), load, func(e *env) error {
				doc, err := e.store.Export(cmd.Context())
				if err != nil {
					return err
				}
				if out == "" {
					_, err = cmd.OutOrStdout().Write(append(doc, '\n'))
					return err
				}
				if err := os.WriteFile(out, doc, 0o600); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d bytes to %s\n", len(doc), out)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "Write to file instead of stdout")
	return cmd
}

func newImportCmd(load loader) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Restore data from a JSON backup",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlag("file", file); err != nil {
				return err
			}
			doc, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			return withEnv(cmd.Context(), load, func(e *env) error {
				if !e.store.Import(cmd.Context(), doc) {
					return errors.New("import failed: document rejected or partially written")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %s\n", file)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Backup file to import")
	return cmd
}

func newQuotaCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "quota",
		Short: "Show storage usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd.Context(), load, func(e *env) error {
				q, err := e.store.CheckQuota(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Used: %d bytes\nAvailable: %d bytes\nUsage: %.1f%%\n", q.Used, q.Available, q.Percentage)
				return nil
			})
		},
	}
}
