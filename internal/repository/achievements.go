package repository

import (
	"context"
	"sort"
	"time"

	"fittrack/internal/domain"
)

// ListAchievements returns the user's achievements, oldest first.
func (d *DB) ListAchievements(ctx context.Context, userID string) ([]domain.UserAchievement, error) {
	out := d.achievements.Filter(ctx, func(a domain.UserAchievement) bool { return a.UserID == userID })
	sort.SliceStable(out, func(i, j int) bool { return out[i].EarnedAt.Before(out[j].EarnedAt) })
	return out, nil
}

// HasAchievement reports whether the user already holds type t.
func (d *DB) HasAchievement(ctx context.Context, userID string, t domain.AchievementType) (bool, error) {
	for _, a := range d.achievements.List(ctx) {
		if a.UserID == userID && a.Type == t {
			return true, nil
		}
	}
	return false, nil
}

// Award inserts a unless the user already holds an achievement of the same
// type, in which case the existing record is returned with false.
func (d *DB) Award(ctx context.Context, a domain.UserAchievement) (domain.UserAchievement, bool, error) {
	for _, existing := range d.achievements.List(ctx) {
		if existing.UserID == a.UserID && existing.Type == a.Type {
			return existing, false, nil
		}
	}
	if a.EarnedAt.IsZero() {
		a.EarnedAt = time.Now().UTC()
	}
	created, err := d.achievements.Add(ctx, a)
	if err != nil {
		return created, false, err
	}
	return created, true, nil
}
