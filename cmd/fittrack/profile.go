package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newProfileCmd(load loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage local profiles",
	}
	cmd.AddCommand(newProfileCreateCmd(load), newProfilePrefsCmd(load))
	return cmd
}

func newProfileCreateCmd(load loader) *cobra.Command {
	var username, pin string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlag("username", username); err != nil {
				return err
			}
			return withEnv(cmd.Context(), load, func(e *env) error {
				p, err := e.profiles.Create(cmd.Context(), username, pin)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created profile %s (%s)\n", p.Username, p.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "Profile name")
	cmd.Flags().StringVar(&pin, "pin", "", "Optional PIN")
	return cmd
}

func newProfilePrefsCmd(load loader) *cobra.Command {
	var (
		user  string
		prep  int
		rest  int
		units string
	)
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or update workout preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlag("user", user); err != nil {
				return err
			}
			return withEnv(cmd.Context(), load, func(e *env) error {
				ctx := cmd.Context()
				prefs, err := e.profiles.Preferences(ctx, user)
				if err != nil {
					return err
				}
				flags := cmd.Flags()
				if flags.Changed("prep") || flags.Changed("rest") || flags.Changed("units") {
					if flags.Changed("prep") {
						prefs.PreparationSeconds = prep
					}
					if flags.Changed("rest") {
						prefs.RestSeconds = rest
					}
					if flags.Changed("units") {
						prefs.Units = units
					}
					if prefs, err = e.profiles.UpdatePreferences(ctx, user, prefs); err != nil {
						return err
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Preparation: %ds\nRest: %ds\nUnits: %s\n",
					prefs.PreparationSeconds, prefs.RestSeconds, prefs.Units)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&user, "user", "", "Profile id")
	cmd.Flags().IntVar(&prep, "prep", 0, "Preparation seconds (0-60)")
	cmd.Flags().IntVar(&rest, "rest", 0, "Rest seconds (0-600)")
	cmd.Flags().StringVar(&units, "units", "", "metric or imperial")
	return cmd
}
