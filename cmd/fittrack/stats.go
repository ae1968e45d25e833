package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func newStatsCmd(load loader) *cobra.Command {
	var (
		user string
		days int
	)
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show workout statistics and achievements",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlag("user", user); err != nil {
				return err
			}
			return withEnv(cmd.Context(), load, func(e *env) error {
				ctx := cmd.Context()
				now := time.Now()
				st, err := e.progress.Stats(ctx, user, now)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Workouts: %d (this week %d, this month %d)\n", st.TotalWorkouts, st.ThisWeek, st.ThisMonth)
				fmt.Fprintf(out, "Time: %d min  Calories: %.1f\n", st.TotalDurationSeconds/60, st.TotalCalories)
				fmt.Fprintf(out, "Streak: %d days (longest %d)\n", st.StreakDays, st.LongestStreak)
				if st.AverageEffort > 0 {
					fmt.Fprintf(out, "Average effort: %.1f/10\n", st.AverageEffort)
				}
				if st.WeightChangeKg != nil {
					fmt.Fprintf(out, "Weight change (30d): %+.1f kg\n", *st.WeightChangeKg)
				}
				if st.BodyFatChange != nil {
					fmt.Fprintf(out, "Body fat change (30d): %+.1f%%\n", *st.BodyFatChange)
				}

				achievements, err := e.db.ListAchievements(ctx, user)
				if err != nil {
					return err
				}
				if len(achievements) > 0 {
					fmt.Fprintln(out, "\nAchievements:")
					for _, a := range achievements {
						fmt.Fprintf(out, "  %s (tier %d) earned %s\n", a.Name, a.Tier, a.EarnedAt.Local().Format("2006-01-02"))
					}
				}

				if days <= 0 {
					return nil
				}
				points, err := e.progress.Daily(ctx, user, days, now)
				if err != nil {
					return err
				}
				fmt.Fprintln(out)
				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "DAY\tSESSIONS\tMINUTES\tCALORIES\tWEIGHT")
				for _, p := range points {
					weight := "-"
					if p.WeightKg != nil {
						weight = fmt.Sprintf("%.1f", *p.WeightKg)
					}
					fmt.Fprintf(tw, "%s\t%d\t%.1f\t%.1f\t%s\n", p.Day, p.Sessions, p.Minutes, p.Calories, weight)
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().StringVar(&user, "user", "", "User id")
	cmd.Flags().IntVar(&days, "days", 0, "Also print a daily table for the last N days")
	return cmd
}
