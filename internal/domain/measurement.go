package domain

import (
	"context"
	"time"
)

// BodyMeasurement is a point-in-time user measurement. Weights are in kg and
// named measurements in cm.
type BodyMeasurement struct {
	Meta
	UserID       string             `json:"userId"`
	MeasuredAt   time.Time          `json:"measurementDate"`
	WeightKg     *float64           `json:"weight,omitempty"`
	BodyFatPct   *float64           `json:"bodyFatPercentage,omitempty"`
	MuscleMassKg *float64           `json:"muscleMass,omitempty"`
	Measurements map[string]float64 `json:"measurements,omitempty"`
	Notes        string             `json:"notes,omitempty"`
}

// MeasurementRepository is the port for body measurements.
type MeasurementRepository interface {
	AddMeasurement(ctx context.Context, m BodyMeasurement) (BodyMeasurement, error)
	UpdateMeasurement(ctx context.Context, id string, fn func(*BodyMeasurement)) (*BodyMeasurement, error)
	DeleteMeasurement(ctx context.Context, id string) (bool, error)
	ListMeasurements(ctx context.Context, userID string) ([]BodyMeasurement, error)
	MeasurementsInRange(ctx context.Context, userID string, from, to time.Time) ([]BodyMeasurement, error)
	LatestMeasurement(ctx context.Context, userID string) (*BodyMeasurement, error)
}
