package repository

import (
	"context"
	"sort"
	"time"

	"fittrack/internal/domain"
)

// AddMeasurement stores a body measurement.
func (d *DB) AddMeasurement(ctx context.Context, m domain.BodyMeasurement) (domain.BodyMeasurement, error) {
	return d.measurements.Add(ctx, m)
}

// UpdateMeasurement applies fn to the measurement with id.
func (d *DB) UpdateMeasurement(ctx context.Context, id string, fn func(*domain.BodyMeasurement)) (*domain.BodyMeasurement, error) {
	m, ok, err := d.measurements.Update(ctx, id, fn)
	return ptr(m, ok), err
}

// DeleteMeasurement removes the measurement with id.
func (d *DB) DeleteMeasurement(ctx context.Context, id string) (bool, error) {
	return d.measurements.Delete(ctx, id)
}

// ListMeasurements returns the user's measurements, newest first.
func (d *DB) ListMeasurements(ctx context.Context, userID string) ([]domain.BodyMeasurement, error) {
	out := d.measurements.Filter(ctx, func(m domain.BodyMeasurement) bool { return m.UserID == userID })
	sortMeasurementsDesc(out)
	return out, nil
}

// MeasurementsInRange returns measurements taken in [from, to), newest first.
func (d *DB) MeasurementsInRange(ctx context.Context, userID string, from, to time.Time) ([]domain.BodyMeasurement, error) {
	out := d.measurements.Filter(ctx, func(m domain.BodyMeasurement) bool {
		return m.UserID == userID && !m.MeasuredAt.Before(from) && m.MeasuredAt.Before(to)
	})
	sortMeasurementsDesc(out)
	return out, nil
}

// LatestMeasurement returns the user's most recent measurement.
func (d *DB) LatestMeasurement(ctx context.Context, userID string) (*domain.BodyMeasurement, error) {
	all, _ := d.ListMeasurements(ctx, userID)
	if len(all) == 0 {
		return nil, nil
	}
	return &all[0], nil
}

func sortMeasurementsDesc(m []domain.BodyMeasurement) {
	sort.SliceStable(m, func(i, j int) bool { return m[i].MeasuredAt.After(m[j].MeasuredAt) })
}
