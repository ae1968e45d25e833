package domain

import (
	"context"
	"time"
)

// SecondsPerRep is the per-rep estimate used when an exercise has reps but
// no explicit duration.
const SecondsPerRep = 2

// ProgramExercise is one scheduled exercise of a WorkoutProgram.
type ProgramExercise struct {
	Meta
	ProgramID       string   `json:"programId"`
	ExerciseTypeID  string   `json:"exerciseTypeId"`
	DayOfProgram    int      `json:"dayOfProgram"`
	OrderInDay      int      `json:"orderInDay"`
	TargetSets      int      `json:"targetSets"`
	TargetReps      int      `json:"targetReps,omitempty"`
	DurationSeconds int      `json:"durationSeconds,omitempty"`
	RestSeconds     int      `json:"restSeconds,omitempty"`
	WeightSuggested *float64 `json:"weightSuggestion,omitempty"`
}

// WorkSeconds returns the target length of one set: the explicit duration,
// or reps times SecondsPerRep when no duration is set.
func (pe ProgramExercise) WorkSeconds() int {
	if pe.DurationSeconds > 0 {
		return pe.DurationSeconds
	}
	return pe.TargetReps * SecondsPerRep
}

// WorkoutProgram is program metadata; its exercises live in their own collection.
type WorkoutProgram struct {
	Meta
	Name              string `json:"name"`
	Description       string `json:"description,omitempty"`
	ProgramType       string `json:"programType"`
	Difficulty        int    `json:"difficulty"`
	EstimatedDuration int    `json:"estimatedDuration"`
	DaysPerWeek       int    `json:"daysPerWeek"`
	TotalWeeks        int    `json:"totalWeeks"`
	IsDefault         bool   `json:"isDefault"`
}

// ProgramStatus is the lifecycle of a program assignment.
type ProgramStatus string

const (
	ProgramActive    ProgramStatus = "active"
	ProgramPaused    ProgramStatus = "paused"
	ProgramCompleted ProgramStatus = "completed"
	ProgramAbandoned ProgramStatus = "abandoned"
)

// UserProgram assigns a WorkoutProgram to a user.
type UserProgram struct {
	Meta
	UserID    string        `json:"userId"`
	ProgramID string        `json:"programId"`
	Status    ProgramStatus `json:"status"`
	StartedOn string        `json:"startDate"`
}

// ProgramDay maps a calendar date to a day of program, Monday=1 ... Sunday=7.
func ProgramDay(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// ProgramRepository is the port for programs, their exercises and assignments.
type ProgramRepository interface {
	ListPrograms(ctx context.Context) ([]WorkoutProgram, error)
	GetProgram(ctx context.Context, id string) (*WorkoutProgram, error)
	DefaultProgram(ctx context.Context) (*WorkoutProgram, error)
	CreateProgram(ctx context.Context, p WorkoutProgram) (WorkoutProgram, error)
	AddProgramExercise(ctx context.Context, pe ProgramExercise) (ProgramExercise, error)
	ProgramExercises(ctx context.Context, programID string) ([]ProgramExercise, error)
	ExercisesForDay(ctx context.Context, programID string, day int) ([]ProgramExercise, error)
	AssignProgram(ctx context.Context, userID, programID string, startedOn time.Time) (UserProgram, error)
	ActiveProgram(ctx context.Context, userID string) (*UserProgram, error)
	SetProgramStatus(ctx context.Context, assignmentID string, status ProgramStatus) (*UserProgram, error)
}
