package app_test

import (
	"context"
	"time"

	"fittrack/internal/domain"
)

type mockSessionRepo struct {
	listFn  func(ctx context.Context, userID string, completedOnly bool) ([]domain.WorkoutSession, error)
	rangeFn func(ctx context.Context, userID, from, to string) ([]domain.WorkoutSession, error)
}

func (m *mockSessionRepo) CreateSession(ctx context.Context, s domain.WorkoutSession) (domain.WorkoutSession, error) {
	return s, nil
}

func (m *mockSessionRepo) GetSession(ctx context.Context, id string) (*domain.WorkoutSession, error) {
	return nil, nil
}

func (m *mockSessionRepo) UpdateSession(ctx context.Context, id string, fn func(*domain.WorkoutSession)) (*domain.WorkoutSession, error) {
	return nil, nil
}

func (m *mockSessionRepo) RateSession(ctx context.Context, id string, effort int, notes string) (*domain.WorkoutSession, error) {
	return nil, nil
}

func (m *mockSessionRepo) ListSessions(ctx context.Context, userID string, completedOnly bool) ([]domain.WorkoutSession, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID, completedOnly)
	}
	return nil, nil
}

func (m *mockSessionRepo) SessionsInRange(ctx context.Context, userID, from, to string) ([]domain.WorkoutSession, error) {
	if m.rangeFn != nil {
		return m.rangeFn(ctx, userID, from, to)
	}
	return nil, nil
}

type mockMeasurementRepo struct {
	addFn    func(ctx context.Context, m domain.BodyMeasurement) (domain.BodyMeasurement, error)
	deleteFn func(ctx context.Context, id string) (bool, error)
	listFn   func(ctx context.Context, userID string) ([]domain.BodyMeasurement, error)
	rangeFn  func(ctx context.Context, userID string, from, to time.Time) ([]domain.BodyMeasurement, error)
	latestFn func(ctx context.Context, userID string) (*domain.BodyMeasurement, error)
}

func (m *mockMeasurementRepo) AddMeasurement(ctx context.Context, b domain.BodyMeasurement) (domain.BodyMeasurement, error) {
	if m.addFn != nil {
		return m.addFn(ctx, b)
	}
	b.ID = "m1"
	return b, nil
}

func (m *mockMeasurementRepo) UpdateMeasurement(ctx context.Context, id string, fn func(*domain.BodyMeasurement)) (*domain.BodyMeasurement, error) {
	return nil, nil
}

func (m *mockMeasurementRepo) DeleteMeasurement(ctx context.Context, id string) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return false, nil
}

func (m *mockMeasurementRepo) ListMeasurements(ctx context.Context, userID string) ([]domain.BodyMeasurement, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockMeasurementRepo) MeasurementsInRange(ctx context.Context, userID string, from, to time.Time) ([]domain.BodyMeasurement, error) {
	if m.rangeFn != nil {
		return m.rangeFn(ctx, userID, from, to)
	}
	return nil, nil
}

func (m *mockMeasurementRepo) LatestMeasurement(ctx context.Context, userID string) (*domain.BodyMeasurement, error) {
	if m.latestFn != nil {
		return m.latestFn(ctx, userID)
	}
	return nil, nil
}

// mockAchievementRepo keeps awards in a map keyed by user and type.
type mockAchievementRepo struct {
	held    map[string]domain.UserAchievement
	awardFn func(ctx context.Context, a domain.UserAchievement) (domain.UserAchievement, bool, error)
}

func (m *mockAchievementRepo) ListAchievements(ctx context.Context, userID string) ([]domain.UserAchievement, error) {
	var out []domain.UserAchievement
	for _, a := range m.held {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockAchievementRepo) HasAchievement(ctx context.Context, userID string, t domain.AchievementType) (bool, error) {
	_, ok := m.held[userID+"/"+string(t)]
	return ok, nil
}

func (m *mockAchievementRepo) Award(ctx context.Context, a domain.UserAchievement) (domain.UserAchievement, bool, error) {
	if m.awardFn != nil {
		return m.awardFn(ctx, a)
	}
	if m.held == nil {
		m.held = make(map[string]domain.UserAchievement)
	}
	key := a.UserID + "/" + string(a.Type)
	if existing, ok := m.held[key]; ok {
		return existing, false, nil
	}
	m.held[key] = a
	return a, true, nil
}

type mockProfileRepo struct {
	byID map[string]domain.Profile
}

func newMockProfileRepo() *mockProfileRepo {
	return &mockProfileRepo{byID: make(map[string]domain.Profile)}
}

func (m *mockProfileRepo) CreateProfile(ctx context.Context, p domain.Profile) (domain.Profile, error) {
	for _, existing := range m.byID {
		if existing.Username == p.Username {
			return domain.Profile{}, domain.ErrUsernameTaken
		}
	}
	p.ID = "p" + string(rune('0'+len(m.byID)+1))
	m.byID[p.ID] = p
	return p, nil
}

func (m *mockProfileRepo) GetProfile(ctx context.Context, id string) (*domain.Profile, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *mockProfileRepo) ProfileByUsername(ctx context.Context, username string) (*domain.Profile, error) {
	for _, p := range m.byID {
		if p.Username == username {
			return &p, nil
		}
	}
	return nil, nil
}

func (m *mockProfileRepo) UpdateProfile(ctx context.Context, id string, fn func(*domain.Profile)) (*domain.Profile, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	fn(&p)
	m.byID[id] = p
	return &p, nil
}

func completed(dates ...string) []domain.WorkoutSession {
	out := make([]domain.WorkoutSession, len(dates))
	for i, d := range dates {
		out[i] = domain.WorkoutSession{
			Meta:            domain.Meta{ID: d},
			UserID:          "u1",
			Date:            d,
			Completed:       true,
			DurationSeconds: 600,
			Calories:        50,
		}
	}
	return out
}

func f64(v float64) *float64 { return &v }
