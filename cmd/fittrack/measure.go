package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"fittrack/internal/app"
)

func newMeasureCmd(load loader) *cobra.Command {
	var (
		user    string
		weight  float64
		unit    string
		bodyFat float64
		muscle  float64
		date    string
		notes   string
	)
	cmd := &cobra.Command{
		Use:   "measure",
		Short: "Record a body measurement",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlag("user", user); err != nil {
				return err
			}
			in := app.MeasurementInput{WeightUnit: unit, Notes: notes}
			if cmd.Flags().Changed("weight") {
				in.Weight = &weight
			}
			if cmd.Flags().Changed("body-fat") {
				in.BodyFatPct = &bodyFat
			}
			if cmd.Flags().Changed("muscle") {
				in.MuscleMass = &muscle
			}
			if date != "" {
				at, err := parseDateOrToday(date)
				if err != nil {
					return err
				}
				in.MeasuredAt = at
			}
			return withEnv(cmd.Context(), load, func(e *env) error {
				m, err := e.measurements.Record(cmd.Context(), user, in)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Recorded measurement %s\n", m.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&user, "user", "", "User id")
	cmd.Flags().Float64Var(&weight, "weight", 0, "Body weight")
	cmd.Flags().StringVar(&unit, "unit", "kg", "Weight unit: kg or lb")
	cmd.Flags().Float64Var(&bodyFat, "body-fat", 0, "Body fat percentage")
	cmd.Flags().Float64Var(&muscle, "muscle", 0, "Muscle mass")
	cmd.Flags().StringVar(&date, "date", "", "Measurement date YYYY-MM-DD (default now)")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-text notes")

	cmd.AddCommand(newMeasureListCmd(load), newMeasureUndoCmd(load))
	return cmd
}

func newMeasureListCmd(load loader) *cobra.Command {
	var user string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List body measurements, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlag("user", user); err != nil {
				return err
			}
			return withEnv(cmd.Context(), load, func(e *env) error {
				items, err := e.measurements.List(cmd.Context(), user)
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tDATE\tWEIGHT_KG\tBODY_FAT\tNOTES")
				for _, m := range items {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", m.ID, m.MeasuredAt.Local().Format("2006-01-02 15:04"),
						optional(m.WeightKg), optional(m.BodyFatPct), m.Notes)
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().StringVar(&user, "user", "", "User id")
	return cmd
}

func newMeasureUndoCmd(load loader) *cobra.Command {
	var user string
	cmd := &cobra.Command{
		Use:   "undo",
		Short: "Delete the most recent measurement",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlag("user", user); err != nil {
				return err
			}
			return withEnv(cmd.Context(), load, func(e *env) error {
				deleted, _, err := e.measurements.UndoLast(cmd.Context(), user)
				if err != nil {
					return err
				}
				if !deleted {
					fmt.Fprintln(cmd.OutOrStdout(), "Nothing to undo")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Deleted latest measurement")
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&user, "user", "", "User id")
	return cmd
}

func optional(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *v)
}
