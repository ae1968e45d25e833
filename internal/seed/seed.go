// Package seed installs the bundled exercise catalogue and default program.
package seed

import (
	"context"
	"fmt"
	"log"

	"fittrack/internal/domain"
)

// DefaultProgramName names the bundled program.
const DefaultProgramName = "Beginner Full Body"

var exerciseTypes = []domain.ExerciseType{
	{Name: "Push-up", Category: domain.CategoryStrength, MuscleGroups: []string{"chest", "triceps", "shoulders"},
		Difficulty: 2, Instructions: "Lower your chest to the floor keeping a straight body, then press back up.",
		DurationEstimate: 30, CaloriesPerMinute: 7},
	{Name: "Bodyweight Squat", Category: domain.CategoryStrength, MuscleGroups: []string{"quadriceps", "glutes"},
		Difficulty: 1, Instructions: "Sit back and down until thighs are parallel, then stand up.",
		DurationEstimate: 30, CaloriesPerMinute: 6},
	{Name: "Glute Bridge", Category: domain.CategoryStrength, MuscleGroups: []string{"glutes", "hamstrings"},
		Difficulty: 1, Instructions: "Lie on your back, drive through the heels and lift the hips.",
		DurationEstimate: 30, CaloriesPerMinute: 4},
	{Name: "Plank", Category: domain.CategoryStrength, MuscleGroups: []string{"core"},
		Difficulty: 2, Instructions: "Hold a straight line from head to heels on forearms and toes.",
		DurationEstimate: 30, CaloriesPerMinute: 4},
	{Name: "Jumping Jacks", Category: domain.CategoryCardio, MuscleGroups: []string{"full body"},
		Difficulty: 1, Instructions: "Jump feet apart while raising the arms overhead, then return.",
		DurationEstimate: 45, CaloriesPerMinute: 8},
	{Name: "Hamstring Stretch", Category: domain.CategoryFlexibility, MuscleGroups: []string{"hamstrings"},
		Difficulty: 1, Instructions: "Reach toward your toes with straight legs and hold.",
		DurationEstimate: 30, CaloriesPerMinute: 2},
	{Name: "Single-leg Stand", Category: domain.CategoryBalance, MuscleGroups: []string{"ankles", "core"},
		Difficulty: 1, Instructions: "Stand on one leg with a soft knee and hold.",
		DurationEstimate: 30, CaloriesPerMinute: 2},
}

type slot struct {
	exercise string
	day      int
	sets     int
	reps     int
	seconds  int
	rest     int
}

// Monday, Wednesday and Friday.
var defaultSchedule = []slot{
	{"Jumping Jacks", 1, 1, 0, 60, 30},
	{"Bodyweight Squat", 1, 3, 12, 0, 60},
	{"Push-up", 1, 3, 10, 0, 60},
	{"Plank", 1, 2, 0, 30, 45},
	{"Jumping Jacks", 3, 1, 0, 60, 30},
	{"Glute Bridge", 3, 3, 15, 0, 45},
	{"Push-up", 3, 3, 8, 0, 60},
	{"Single-leg Stand", 3, 2, 0, 30, 15},
	{"Jumping Jacks", 5, 2, 0, 45, 30},
	{"Bodyweight Squat", 5, 3, 15, 0, 60},
	{"Plank", 5, 3, 0, 30, 45},
	{"Hamstring Stretch", 5, 1, 0, 60, 0},
}

// Repository is what seeding writes to.
type Repository interface {
	domain.ExerciseTypeRepository
	domain.ProgramRepository
}

// Result reports what a Run created.
type Result struct {
	ExerciseTypes int
	Program       *domain.WorkoutProgram
}

// Run installs missing exercise types and, when no default program exists,
// the bundled one. Running it again creates nothing.
func Run(ctx context.Context, repo Repository, logger *log.Logger) (Result, error) {
	if logger == nil {
		logger = log.Default()
	}
	existing, err := repo.ListExerciseTypes(ctx)
	if err != nil {
		return Result{}, err
	}
	ids := make(map[string]string, len(existing))
	for _, et := range existing {
		ids[et.Name] = et.ID
	}

	var res Result
	for _, et := range exerciseTypes {
		if _, ok := ids[et.Name]; ok {
			continue
		}
		et.Active = true
		created, err := repo.CreateExerciseType(ctx, et)
		if err != nil {
			return res, fmt.Errorf("seed exercise type %s: %w", et.Name, err)
		}
		ids[et.Name] = created.ID
		res.ExerciseTypes++
	}

	def, err := repo.DefaultProgram(ctx)
	if err != nil {
		return res, err
	}
	if def != nil {
		logger.Printf("seed: %d exercise types added, default program %q present", res.ExerciseTypes, def.Name)
		return res, nil
	}

	program, err := repo.CreateProgram(ctx, domain.WorkoutProgram{
		Name:              DefaultProgramName,
		Description:       "Three short full-body sessions a week using only bodyweight.",
		ProgramType:       "full_body",
		Difficulty:        1,
		EstimatedDuration: 25,
		DaysPerWeek:       3,
		TotalWeeks:        4,
		IsDefault:         true,
	})
	if err != nil {
		return res, fmt.Errorf("seed program: %w", err)
	}
	order := make(map[int]int)
	for _, s := range defaultSchedule {
		order[s.day]++
		if _, err := repo.AddProgramExercise(ctx, domain.ProgramExercise{
			ProgramID:       program.ID,
			ExerciseTypeID:  ids[s.exercise],
			DayOfProgram:    s.day,
			OrderInDay:      order[s.day],
			TargetSets:      s.sets,
			TargetReps:      s.reps,
			DurationSeconds: s.seconds,
			RestSeconds:     s.rest,
		}); err != nil {
			return res, fmt.Errorf("seed program exercise %s: %w", s.exercise, err)
		}
	}
	res.Program = &program
	logger.Printf("seed: %d exercise types added, created program %q", res.ExerciseTypes, program.Name)
	return res, nil
}
