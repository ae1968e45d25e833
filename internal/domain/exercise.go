package domain

import "context"

// ExerciseCategory groups exercise types.
type ExerciseCategory string

const (
	CategoryStrength    ExerciseCategory = "strength"
	CategoryCardio      ExerciseCategory = "cardio"
	CategoryFlexibility ExerciseCategory = "flexibility"
	CategoryBalance     ExerciseCategory = "balance"
)

// Valid reports whether c is one of the known categories.
func (c ExerciseCategory) Valid() bool {
	switch c {
	case CategoryStrength, CategoryCardio, CategoryFlexibility, CategoryBalance:
		return true
	}
	return false
}

// ExerciseType is immutable reference data describing a movement.
type ExerciseType struct {
	Meta
	Name              string           `json:"name"`
	Category          ExerciseCategory `json:"category"`
	MuscleGroups      []string         `json:"muscleGroups"`
	Difficulty        int              `json:"difficulty"`
	Instructions      string           `json:"instructions"`
	DurationEstimate  int              `json:"durationEstimate"`
	CaloriesPerMinute float64          `json:"caloriesPerMinute"`
	Active            bool             `json:"isActive"`
}

// ExerciseTypeRepository is the port for exercise reference data.
type ExerciseTypeRepository interface {
	ListExerciseTypes(ctx context.Context) ([]ExerciseType, error)
	GetExerciseType(ctx context.Context, id string) (*ExerciseType, error)
	ExerciseTypesByCategory(ctx context.Context, category ExerciseCategory) ([]ExerciseType, error)
	CreateExerciseType(ctx context.Context, et ExerciseType) (ExerciseType, error)
}
