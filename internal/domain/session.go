package domain

import (
	"context"
	"errors"
	"time"
)

// ErrSessionFinalized is returned when a completed session would be rewritten.
var ErrSessionFinalized = errors.New("session is finalized")

// SetDetail records one performed set.
type SetDetail struct {
	SetNumber        int      `json:"setNumber"`
	Reps             int      `json:"reps,omitempty"`
	Weight           *float64 `json:"weight,omitempty"`
	DurationSeconds  int      `json:"duration,omitempty"`
	RestAfterSeconds int      `json:"restAfter,omitempty"`
	Completed        bool     `json:"completed"`
}

// ExerciseLog is the per-exercise record within a session.
type ExerciseLog struct {
	ProgramExerciseID string      `json:"programExerciseId"`
	ExerciseTypeID    string      `json:"exerciseTypeId"`
	TargetSets        int         `json:"setsTarget"`
	SetsCompleted     int         `json:"setsCompleted"`
	Sets              []SetDetail `json:"setDetails"`
}

// WorkoutSession is one workout attempt.
type WorkoutSession struct {
	Meta
	UserID          string        `json:"userId"`
	ProgramID       string        `json:"programId"`
	Date            string        `json:"sessionDate"`
	StartTime       time.Time     `json:"startTime"`
	EndTime         *time.Time    `json:"endTime,omitempty"`
	DurationSeconds int           `json:"totalDuration"`
	Calories        float64       `json:"caloriesBurned"`
	Completed       bool          `json:"isCompleted"`
	PerceivedEffort int           `json:"perceivedEffort,omitempty"`
	Notes           string        `json:"notes,omitempty"`
	Exercises       []ExerciseLog `json:"exercises"`
}

// SetCount returns the number of logged sets across all exercises.
func (s WorkoutSession) SetCount() int {
	n := 0
	for _, l := range s.Exercises {
		n += len(l.Sets)
	}
	return n
}

// SessionRepository is the port for workout session persistence.
type SessionRepository interface {
	CreateSession(ctx context.Context, s WorkoutSession) (WorkoutSession, error)
	GetSession(ctx context.Context, id string) (*WorkoutSession, error)
	UpdateSession(ctx context.Context, id string, fn func(*WorkoutSession)) (*WorkoutSession, error)
	RateSession(ctx context.Context, id string, effort int, notes string) (*WorkoutSession, error)
	ListSessions(ctx context.Context, userID string, completedOnly bool) ([]WorkoutSession, error)
	SessionsInRange(ctx context.Context, userID, from, to string) ([]WorkoutSession, error)
}
