package main

import (
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"fittrack/internal/domain"
	"fittrack/internal/workout"
)

func newWorkoutCmd(load loader) *cobra.Command {
	var (
		user     string
		program  string
		date     string
		interval time.Duration
	)
	cmd := &cobra.Command{
		Use:   "workout",
		Short: "Run today's guided workout in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlag("user", user); err != nil {
				return err
			}
			today, err := parseDateOrToday(date)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return withEnv(ctx, load, func(e *env) error {
				programID, err := resolveProgram(cmd, e, user, program)
				if err != nil {
					return err
				}
				prefs, err := e.profiles.Preferences(ctx, user)
				if err != nil {
					return err
				}

				engine := e.engine()
				started, err := engine.Start(ctx, workout.StartInput{
					UserID: user, ProgramID: programID, Today: today, Preferences: &prefs,
				})
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if !started {
					fmt.Fprintf(out, "Rest day: nothing scheduled for day %d\n", domain.ProgramDay(today))
					return nil
				}

				if interval <= 0 {
					interval = e.cfg.TickInterval
				}
				printer := phasePrinter(out)
				printer(engine.Snapshot())
				_, err = workout.NewRunner(engine, workout.WithInterval(interval), workout.OnTick(printer)).Run(ctx)
				if ctx.Err() != nil {
					engine.Abandon()
					fmt.Fprintln(out, "Workout abandoned")
					return nil
				}
				if err != nil {
					return err
				}

				done, _ := engine.Finished()
				fmt.Fprintf(out, "Workout complete: %d sets, %d min, %.1f kcal\n",
					done.SetCount(), done.DurationSeconds/60, done.Calories)
				achievements, err := e.db.ListAchievements(ctx, user)
				if err == nil {
					for _, a := range achievements {
						if !a.EarnedAt.Before(done.StartTime) {
							fmt.Fprintf(out, "Achievement unlocked: %s\n", a.Name)
						}
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&user, "user", "", "User id")
	cmd.Flags().StringVar(&program, "program", "", "Program id (default: active assignment, then the default program)")
	cmd.Flags().StringVar(&date, "date", "", "Run the program day for YYYY-MM-DD instead of today")
	cmd.Flags().DurationVar(&interval, "interval", 0, "Wall-clock delay per one-second tick (env TICK_INTERVAL)")
	return cmd
}

// phasePrinter prints a line whenever the phase or set changes.
func phasePrinter(out io.Writer) func(workout.Snapshot) {
	var last workout.Snapshot
	return func(s workout.Snapshot) {
		if s.Phase == last.Phase && s.CurrentSet == last.CurrentSet && s.ExerciseIndex == last.ExerciseIndex {
			return
		}
		last = s
		switch s.Phase {
		case workout.PhasePreparing:
			fmt.Fprintf(out, "[%d/%d] %s set %d/%d: get ready (%ds)\n",
				s.ExerciseIndex+1, s.ExerciseCount, s.ExerciseName, s.CurrentSet, s.TargetSets, s.Remaining)
		case workout.PhaseExercising:
			fmt.Fprintf(out, "[%d/%d] %s set %d/%d: go (%ds)\n",
				s.ExerciseIndex+1, s.ExerciseCount, s.ExerciseName, s.CurrentSet, s.TargetSets, s.Remaining)
		case workout.PhaseResting:
			fmt.Fprintf(out, "  rest %ds\n", s.Remaining)
		}
	}
}

func resolveProgram(cmd *cobra.Command, e *env, user, program string) (string, error) {
	if program != "" {
		return program, nil
	}
	ctx := cmd.Context()
	up, err := e.db.ActiveProgram(ctx, user)
	if err != nil {
		return "", err
	}
	if up != nil {
		return up.ProgramID, nil
	}
	def, err := e.db.DefaultProgram(ctx)
	if err != nil {
		return "", err
	}
	if def == nil {
		return "", errors.New("no program assigned; run `fittrack seed` first")
	}
	return def.ID, nil
}
