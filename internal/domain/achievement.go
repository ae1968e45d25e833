package domain

import (
	"context"
	"time"
)

// AchievementType identifies a one-time award.
type AchievementType string

const (
	AchievementFirstWorkout AchievementType = "first_workout"
	AchievementStreak7      AchievementType = "streak_7"
	AchievementWorkouts10   AchievementType = "workouts_10"
	AchievementWorkouts50   AchievementType = "workouts_50"
	AchievementWorkouts100  AchievementType = "workouts_100"
)

// UserAchievement is an awarded achievement. At most one exists per
// (UserID, Type).
type UserAchievement struct {
	Meta
	UserID      string          `json:"userId"`
	Type        AchievementType `json:"achievementType"`
	Name        string          `json:"achievementName"`
	Description string          `json:"description"`
	EarnedAt    time.Time       `json:"earnedDate"`
	Tier        int             `json:"tier"`
}

// AchievementRepository is the port for awarded achievements. Award is a
// no-op returning false when the user already holds that type.
type AchievementRepository interface {
	ListAchievements(ctx context.Context, userID string) ([]UserAchievement, error)
	HasAchievement(ctx context.Context, userID string, t AchievementType) (bool, error)
	Award(ctx context.Context, a UserAchievement) (UserAchievement, bool, error)
}
