// Package repository implements the domain repository ports as typed,
// filtered views over store collections.
package repository

import (
	"errors"

	"fittrack/internal/domain"
	"fittrack/internal/store"
)

// Collection keys, relative to the store namespace.
const (
	KeyExerciseTypes    = "exercise_types"
	KeyPrograms         = "programs"
	KeyProgramExercises = "program_exercises"
	KeyUserPrograms     = "user_programs"
	KeySessions         = "sessions"
	KeyMeasurements     = "measurements"
	KeyAchievements     = "achievements"
	KeyProfiles         = "profiles"
)

var (
	// ErrProgramNotFound is returned when an assignment names an unknown program.
	ErrProgramNotFound = errors.New("program not found")
	// ErrInvalidEffort is returned when a perceived effort rating is outside 1-10.
	ErrInvalidEffort = errors.New("perceived effort must be between 1 and 10")
	// ErrSessionNotCompleted is returned when rating a session still in progress.
	ErrSessionNotCompleted = errors.New("session is not completed")
)

// DB implements every domain repository over one store.
type DB struct {
	store            *store.Store
	exerciseTypes    *store.Collection[domain.ExerciseType, *domain.ExerciseType]
	programs         *store.Collection[domain.WorkoutProgram, *domain.WorkoutProgram]
	programExercises *store.Collection[domain.ProgramExercise, *domain.ProgramExercise]
	userPrograms     *store.Collection[domain.UserProgram, *domain.UserProgram]
	sessions         *store.Collection[domain.WorkoutSession, *domain.WorkoutSession]
	measurements     *store.Collection[domain.BodyMeasurement, *domain.BodyMeasurement]
	achievements     *store.Collection[domain.UserAchievement, *domain.UserAchievement]
	profiles         *store.Collection[domain.Profile, *domain.Profile]
}

// New binds the repositories to s.
func New(s *store.Store) *DB {
	return &DB{
		store:            s,
		exerciseTypes:    store.NewCollection[domain.ExerciseType](s, KeyExerciseTypes),
		programs:         store.NewCollection[domain.WorkoutProgram](s, KeyPrograms),
		programExercises: store.NewCollection[domain.ProgramExercise](s, KeyProgramExercises),
		userPrograms:     store.NewCollection[domain.UserProgram](s, KeyUserPrograms),
		sessions:         store.NewCollection[domain.WorkoutSession](s, KeySessions),
		measurements:     store.NewCollection[domain.BodyMeasurement](s, KeyMeasurements),
		achievements:     store.NewCollection[domain.UserAchievement](s, KeyAchievements),
		profiles:         store.NewCollection[domain.Profile](s, KeyProfiles),
	}
}

// Store returns the underlying store.
func (d *DB) Store() *store.Store { return d.store }

// Ensure interfaces are met.
var (
	_ domain.ExerciseTypeRepository = (*DB)(nil)
	_ domain.ProgramRepository      = (*DB)(nil)
	_ domain.SessionRepository      = (*DB)(nil)
	_ domain.MeasurementRepository  = (*DB)(nil)
	_ domain.AchievementRepository  = (*DB)(nil)
	_ domain.ProfileRepository      = (*DB)(nil)
)

func ptr[T any](v T, ok bool) *T {
	if !ok {
		return nil
	}
	return &v
}
