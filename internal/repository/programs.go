package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	"fittrack/internal/domain"
)

// ListPrograms returns all programs, defaults first.
func (d *DB) ListPrograms(ctx context.Context) ([]domain.WorkoutProgram, error) {
	out := d.programs.List(ctx)
	sort.SliceStable(out, func(i, j int) bool { return out[i].IsDefault && !out[j].IsDefault })
	return out, nil
}

// GetProgram returns the program with id.
func (d *DB) GetProgram(ctx context.Context, id string) (*domain.WorkoutProgram, error) {
	p, ok := d.programs.Find(ctx, id)
	return ptr(p, ok), nil
}

// DefaultProgram returns the first program flagged as default.
func (d *DB) DefaultProgram(ctx context.Context) (*domain.WorkoutProgram, error) {
	for _, p := range d.programs.List(ctx) {
		if p.IsDefault {
			return &p, nil
		}
	}
	return nil, nil
}

// CreateProgram adds a program.
func (d *DB) CreateProgram(ctx context.Context, p domain.WorkoutProgram) (domain.WorkoutProgram, error) {
	return d.programs.Add(ctx, p)
}

// AddProgramExercise schedules an exercise in a program.
func (d *DB) AddProgramExercise(ctx context.Context, pe domain.ProgramExercise) (domain.ProgramExercise, error) {
	if pe.DayOfProgram < 1 || pe.DayOfProgram > 7 {
		return domain.ProgramExercise{}, fmt.Errorf("day of program must be 1-7, got %d", pe.DayOfProgram)
	}
	if pe.TargetSets < 1 {
		return domain.ProgramExercise{}, fmt.Errorf("target sets must be > 0, got %d", pe.TargetSets)
	}
	return d.programExercises.Add(ctx, pe)
}

// ProgramExercises returns a program's exercises ordered by day then order.
func (d *DB) ProgramExercises(ctx context.Context, programID string) ([]domain.ProgramExercise, error) {
	out := d.programExercises.Filter(ctx, func(pe domain.ProgramExercise) bool { return pe.ProgramID == programID })
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DayOfProgram != out[j].DayOfProgram {
			return out[i].DayOfProgram < out[j].DayOfProgram
		}
		return out[i].OrderInDay < out[j].OrderInDay
	})
	return out, nil
}

// ExercisesForDay returns the exercises scheduled on day, in order.
func (d *DB) ExercisesForDay(ctx context.Context, programID string, day int) ([]domain.ProgramExercise, error) {
	all, _ := d.ProgramExercises(ctx, programID)
	out := make([]domain.ProgramExercise, 0, len(all))
	for _, pe := range all {
		if pe.DayOfProgram == day {
			out = append(out, pe)
		}
	}
	return out, nil
}

// AssignProgram makes programID the user's active program, pausing any
// other active assignment first.
func (d *DB) AssignProgram(ctx context.Context, userID, programID string, startedOn time.Time) (domain.UserProgram, error) {
	if _, ok := d.programs.Find(ctx, programID); !ok {
		return domain.UserProgram{}, ErrProgramNotFound
	}
	active := d.userPrograms.Filter(ctx, func(up domain.UserProgram) bool {
		return up.UserID == userID && up.Status == domain.ProgramActive
	})
	for _, up := range active {
		if _, _, err := d.userPrograms.Update(ctx, up.ID, func(u *domain.UserProgram) {
			u.Status = domain.ProgramPaused
		}); err != nil {
			return domain.UserProgram{}, fmt.Errorf("pause assignment %s: %w", up.ID, err)
		}
	}
	return d.userPrograms.Add(ctx, domain.UserProgram{
		UserID:    userID,
		ProgramID: programID,
		Status:    domain.ProgramActive,
		StartedOn: domain.LocalDay(startedOn),
	})
}

// ActiveProgram returns the user's active assignment.
func (d *DB) ActiveProgram(ctx context.Context, userID string) (*domain.UserProgram, error) {
	for _, up := range d.userPrograms.List(ctx) {
		if up.UserID == userID && up.Status == domain.ProgramActive {
			return &up, nil
		}
	}
	return nil, nil
}

// SetProgramStatus changes an assignment's status. Re-activating an
// assignment pauses the user's other active one.
func (d *DB) SetProgramStatus(ctx context.Context, assignmentID string, status domain.ProgramStatus) (*domain.UserProgram, error) {
	target, ok := d.userPrograms.Find(ctx, assignmentID)
	if !ok {
		return nil, nil
	}
	if status == domain.ProgramActive {
		for _, up := range d.userPrograms.List(ctx) {
			if up.UserID == target.UserID && up.ID != assignmentID && up.Status == domain.ProgramActive {
				if _, _, err := d.userPrograms.Update(ctx, up.ID, func(u *domain.UserProgram) {
					u.Status = domain.ProgramPaused
				}); err != nil {
					return nil, err
				}
			}
		}
	}
	up, ok, err := d.userPrograms.Update(ctx, assignmentID, func(u *domain.UserProgram) { u.Status = status })
	return ptr(up, ok), err
}
