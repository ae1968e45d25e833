package repository

import (
	"context"
	"sort"

	"fittrack/internal/domain"
)

// ListExerciseTypes returns active exercise types sorted by name.
func (d *DB) ListExerciseTypes(ctx context.Context) ([]domain.ExerciseType, error) {
	out := d.exerciseTypes.Filter(ctx, func(et domain.ExerciseType) bool { return et.Active })
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// GetExerciseType returns the exercise type with id, active or not.
func (d *DB) GetExerciseType(ctx context.Context, id string) (*domain.ExerciseType, error) {
	et, ok := d.exerciseTypes.Find(ctx, id)
	return ptr(et, ok), nil
}

// ExerciseTypesByCategory returns active exercise types in category.
func (d *DB) ExerciseTypesByCategory(ctx context.Context, category domain.ExerciseCategory) ([]domain.ExerciseType, error) {
	all, _ := d.ListExerciseTypes(ctx)
	out := make([]domain.ExerciseType, 0, len(all))
	for _, et := range all {
		if et.Category == category {
			out = append(out, et)
		}
	}
	return out, nil
}

// CreateExerciseType adds reference data.
func (d *DB) CreateExerciseType(ctx context.Context, et domain.ExerciseType) (domain.ExerciseType, error) {
	return d.exerciseTypes.Add(ctx, et)
}
