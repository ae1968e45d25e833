package repository

import (
	"context"
	"sort"

	"fittrack/internal/domain"
)

// CreateSession stores a new, not yet completed session.
func (d *DB) CreateSession(ctx context.Context, s domain.WorkoutSession) (domain.WorkoutSession, error) {
	return d.sessions.Add(ctx, s)
}

// GetSession returns the session with id.
func (d *DB) GetSession(ctx context.Context, id string) (*domain.WorkoutSession, error) {
	s, ok := d.sessions.Find(ctx, id)
	return ptr(s, ok), nil
}

// UpdateSession mutates an in-progress session. Completed sessions are
// immutable and yield domain.ErrSessionFinalized.
func (d *DB) UpdateSession(ctx context.Context, id string, fn func(*domain.WorkoutSession)) (*domain.WorkoutSession, error) {
	existing, ok := d.sessions.Find(ctx, id)
	if !ok {
		return nil, nil
	}
	if existing.Completed {
		return nil, domain.ErrSessionFinalized
	}
	s, ok, err := d.sessions.Update(ctx, id, fn)
	return ptr(s, ok), err
}

// RateSession records perceived effort and notes on a completed session.
// Its exercise logs are left untouched.
func (d *DB) RateSession(ctx context.Context, id string, effort int, notes string) (*domain.WorkoutSession, error) {
	if effort < 1 || effort > 10 {
		return nil, ErrInvalidEffort
	}
	existing, ok := d.sessions.Find(ctx, id)
	if !ok {
		return nil, nil
	}
	if !existing.Completed {
		return nil, ErrSessionNotCompleted
	}
	s, ok, err := d.sessions.Update(ctx, id, func(s *domain.WorkoutSession) {
		s.PerceivedEffort = effort
		s.Notes = notes
	})
	return ptr(s, ok), err
}

// ListSessions returns the user's sessions, newest first.
func (d *DB) ListSessions(ctx context.Context, userID string, completedOnly bool) ([]domain.WorkoutSession, error) {
	out := d.sessions.Filter(ctx, func(s domain.WorkoutSession) bool {
		return s.UserID == userID && (!completedOnly || s.Completed)
	})
	sortSessionsDesc(out)
	return out, nil
}

// SessionsInRange returns the user's sessions dated within [from, to],
// both YYYY-MM-DD and inclusive, newest first.
func (d *DB) SessionsInRange(ctx context.Context, userID, from, to string) ([]domain.WorkoutSession, error) {
	out := d.sessions.Filter(ctx, func(s domain.WorkoutSession) bool {
		return s.UserID == userID && s.Date >= from && s.Date <= to
	})
	sortSessionsDesc(out)
	return out, nil
}

func sortSessionsDesc(s []domain.WorkoutSession) {
	sort.SliceStable(s, func(i, j int) bool {
		if s[i].Date != s[j].Date {
			return s[i].Date > s[j].Date
		}
		return s[i].StartTime.After(s[j].StartTime)
	})
}
