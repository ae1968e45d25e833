// Package app holds the application services and business logic.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"
	"time"

	"fittrack/internal/domain"
	"fittrack/internal/observability"
)

// MaxDailyDays bounds the daily chart series.
const MaxDailyDays = 366

// trendWindow is the span used for weight and body-fat deltas.
const trendWindow = 30

// ProgressService derives statistics from completed sessions and
// measurements and awards achievements.
type ProgressService struct {
	sessions     domain.SessionRepository
	measurements domain.MeasurementRepository
	achievements domain.AchievementRepository
	logger       *log.Logger
}

// NewProgressService creates a ProgressService backed by the given repositories.
func NewProgressService(s domain.SessionRepository, m domain.MeasurementRepository, a domain.AchievementRepository) *ProgressService {
	return &ProgressService{sessions: s, measurements: m, achievements: a, logger: log.Default()}
}

// WithLogger replaces the service logger.
func (s *ProgressService) WithLogger(l *log.Logger) *ProgressService {
	if l != nil {
		s.logger = l
	}
	return s
}

// Stats summarises a user's training history.
type Stats struct {
	TotalWorkouts        int      `json:"totalWorkouts"`
	TotalDurationSeconds int      `json:"totalDurationSeconds"`
	TotalCalories        float64  `json:"totalCalories"`
	AverageEffort        float64  `json:"averageEffort"`
	StreakDays           int      `json:"streakDays"`
	LongestStreak        int      `json:"longestStreak"`
	ThisWeek             int      `json:"thisWeek"`
	ThisMonth            int      `json:"thisMonth"`
	LastWorkout          string   `json:"lastWorkout,omitempty"`
	WeightChangeKg       *float64 `json:"weightChange"`
	BodyFatChange        *float64 `json:"bodyFatChange"`
}

// Stats computes totals, streaks, weekly and monthly counts and 30-day
// measurement trends as of now.
func (s *ProgressService) Stats(ctx context.Context, userID string, now time.Time) (Stats, error) {
	sessions, err := s.sessions.ListSessions(ctx, userID, true)
	if err != nil {
		return Stats{}, err
	}

	today := domain.LocalDay(now)
	weekStart := domain.LocalDay(now.AddDate(0, 0, 1-domain.ProgramDay(now)))
	month := now.Format("2006-01")

	var st Stats
	var effortSum, rated int
	dates := make([]string, 0, len(sessions))
	for _, sess := range sessions {
		st.TotalWorkouts++
		st.TotalDurationSeconds += sess.DurationSeconds
		st.TotalCalories += sess.Calories
		if sess.PerceivedEffort > 0 {
			effortSum += sess.PerceivedEffort
			rated++
		}
		if sess.Date >= weekStart && sess.Date <= today {
			st.ThisWeek++
		}
		if strings.HasPrefix(sess.Date, month) {
			st.ThisMonth++
		}
		if sess.Date > st.LastWorkout {
			st.LastWorkout = sess.Date
		}
		dates = append(dates, sess.Date)
	}
	st.TotalCalories = round1(st.TotalCalories)
	if rated > 0 {
		st.AverageEffort = round1(float64(effortSum) / float64(rated))
	}
	st.StreakDays, st.LongestStreak = streaks(dates)

	from := now.AddDate(0, 0, -trendWindow)
	measurements, err := s.measurements.MeasurementsInRange(ctx, userID, from, now.Add(time.Second))
	if err != nil {
		return Stats{}, err
	}
	st.WeightChangeKg = delta(measurements, func(m domain.BodyMeasurement) *float64 { return m.WeightKg })
	st.BodyFatChange = delta(measurements, func(m domain.BodyMeasurement) *float64 { return m.BodyFatPct })
	return st, nil
}

// delta returns latest minus earliest among measurements carrying the field,
// or nil when fewer than two do.
func delta(ms []domain.BodyMeasurement, field func(domain.BodyMeasurement) *float64) *float64 {
	var first, last *domain.BodyMeasurement
	for i := range ms {
		if field(ms[i]) == nil {
			continue
		}
		if first == nil || ms[i].MeasuredAt.Before(first.MeasuredAt) {
			first = &ms[i]
		}
		if last == nil || ms[i].MeasuredAt.After(last.MeasuredAt) {
			last = &ms[i]
		}
	}
	if first == nil || first == last {
		return nil
	}
	d := round1(*field(*last) - *field(*first))
	return &d
}

// Streak returns the number of consecutive calendar days ending at the most
// recent date in dates. Dates use the YYYY-MM-DD layout and may repeat.
func Streak(dates []string) int {
	current, _ := streaks(dates)
	return current
}

func streaks(dates []string) (current, longest int) {
	days := make([]time.Time, 0, len(dates))
	seen := make(map[string]bool, len(dates))
	for _, d := range dates {
		if seen[d] {
			continue
		}
		t, err := time.Parse(domain.DayLayout, d)
		if err != nil {
			continue
		}
		seen[d] = true
		days = append(days, t)
	}
	if len(days) == 0 {
		return 0, 0
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	run := 1
	longest = 1
	for i := 1; i < len(days); i++ {
		if days[i].Sub(days[i-1]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
	}
	return run, longest
}

// DayPoint is a single data point returned by Daily.
type DayPoint struct {
	Day      string   `json:"day"`
	Sessions int      `json:"sessions"`
	Minutes  float64  `json:"minutes"`
	Calories float64  `json:"calories"`
	WeightKg *float64 `json:"weight"`
}

// Daily returns per-day chart data for the last days days ending today.
func (s *ProgressService) Daily(ctx context.Context, userID string, days int, now time.Time) ([]DayPoint, error) {
	if days <= 0 {
		return nil, errors.New("days must be > 0")
	}
	if days > MaxDailyDays {
		days = MaxDailyDays
	}

	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1-days)
	end := start.AddDate(0, 0, days)

	sessions, err := s.sessions.SessionsInRange(ctx, userID, domain.LocalDay(start), domain.LocalDay(now))
	if err != nil {
		return nil, err
	}
	measurements, err := s.measurements.MeasurementsInRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	points := make([]DayPoint, days)
	index := make(map[string]int, days)
	for i := range points {
		day := domain.LocalDay(start.AddDate(0, 0, i))
		points[i].Day = day
		index[day] = i
	}
	for _, sess := range sessions {
		i, ok := index[sess.Date]
		if !ok || !sess.Completed {
			continue
		}
		points[i].Sessions++
		points[i].Minutes += float64(sess.DurationSeconds) / 60
		points[i].Calories += sess.Calories
	}
	latest := make(map[string]time.Time)
	for _, m := range measurements {
		if m.WeightKg == nil {
			continue
		}
		day := domain.LocalDay(m.MeasuredAt.In(now.Location()))
		i, ok := index[day]
		if !ok {
			continue
		}
		if seen, ok := latest[day]; ok && !m.MeasuredAt.After(seen) {
			continue
		}
		latest[day] = m.MeasuredAt
		w := *m.WeightKg
		points[i].WeightKg = &w
	}
	for i := range points {
		points[i].Minutes = round1(points[i].Minutes)
		points[i].Calories = round1(points[i].Calories)
	}
	return points, nil
}

type achievementRule struct {
	Type        domain.AchievementType
	Name        string
	Description string
	Tier        int
	Met         func(workouts, streak int) bool
}

var achievementRules = []achievementRule{
	{domain.AchievementFirstWorkout, "First Steps", "Completed your first workout", 1,
		func(n, _ int) bool { return n >= 1 }},
	{domain.AchievementStreak7, "Week Warrior", "Worked out 7 days in a row", 2,
		func(_, streak int) bool { return streak >= 7 }},
	{domain.AchievementWorkouts10, "Getting Serious", "Completed 10 workouts", 1,
		func(n, _ int) bool { return n >= 10 }},
	{domain.AchievementWorkouts50, "Dedicated", "Completed 50 workouts", 2,
		func(n, _ int) bool { return n >= 50 }},
	{domain.AchievementWorkouts100, "Centurion", "Completed 100 workouts", 3,
		func(n, _ int) bool { return n >= 100 }},
}

// Evaluate awards every achievement the user now qualifies for and returns
// the ones granted by this call. Achievements already held are skipped, so
// repeated calls never duplicate an award.
func (s *ProgressService) Evaluate(ctx context.Context, userID string, now time.Time) ([]domain.UserAchievement, error) {
	sessions, err := s.sessions.ListSessions(ctx, userID, true)
	if err != nil {
		return nil, err
	}
	dates := make([]string, len(sessions))
	for i, sess := range sessions {
		dates[i] = sess.Date
	}
	streak, _ := streaks(dates)

	var awarded []domain.UserAchievement
	for _, r := range achievementRules {
		if !r.Met(len(sessions), streak) {
			continue
		}
		a, created, err := s.achievements.Award(ctx, domain.UserAchievement{
			UserID:      userID,
			Type:        r.Type,
			Name:        r.Name,
			Description: r.Description,
			EarnedAt:    now.UTC(),
			Tier:        r.Tier,
		})
		if err != nil {
			return awarded, fmt.Errorf("award %s: %w", r.Type, err)
		}
		if created {
			observability.RecordAchievementAwarded(string(r.Type))
			s.logger.Printf("progress: awarded %s to %s", r.Type, userID)
			awarded = append(awarded, a)
		}
	}
	return awarded, nil
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
