package app

import (
	"context"
	"errors"
	"time"

	"fittrack/internal/domain"
)

// MeasurementService encapsulates body measurement use cases.
type MeasurementService struct {
	repo domain.MeasurementRepository
	now  func() time.Time
}

// NewMeasurementService creates a MeasurementService backed by the given repository.
func NewMeasurementService(repo domain.MeasurementRepository) *MeasurementService {
	return &MeasurementService{repo: repo, now: time.Now}
}

// MeasurementInput is a user-entered measurement. Weight is in WeightUnit
// ("kg" or "lb") and named measurements in LengthUnit ("cm" or "in"); empty
// units mean metric. A zero MeasuredAt means now.
type MeasurementInput struct {
	MeasuredAt   time.Time          `json:"measurementDate"`
	Weight       *float64           `json:"weight"`
	WeightUnit   string             `json:"weightUnit"`
	BodyFatPct   *float64           `json:"bodyFatPercentage"`
	MuscleMass   *float64           `json:"muscleMass"`
	Measurements map[string]float64 `json:"measurements"`
	LengthUnit   string             `json:"lengthUnit"`
	Notes        string             `json:"notes"`
}

// Record validates and stores a measurement in metric units.
func (s *MeasurementService) Record(ctx context.Context, userID string, in MeasurementInput) (domain.BodyMeasurement, error) {
	if userID == "" {
		return domain.BodyMeasurement{}, errors.New("user id is required")
	}
	if in.Weight == nil && in.BodyFatPct == nil && in.MuscleMass == nil && len(in.Measurements) == 0 {
		return domain.BodyMeasurement{}, errors.New("at least one measurement is required")
	}

	m := domain.BodyMeasurement{UserID: userID, MeasuredAt: in.MeasuredAt.UTC(), Notes: in.Notes}
	if in.MeasuredAt.IsZero() {
		m.MeasuredAt = s.now().UTC()
	}
	if in.Weight != nil {
		if *in.Weight <= 0 {
			return domain.BodyMeasurement{}, errors.New("weight must be > 0")
		}
		kg, err := domain.WeightToKg(*in.Weight, in.WeightUnit)
		if err != nil {
			return domain.BodyMeasurement{}, err
		}
		m.WeightKg = &kg
	}
	if in.BodyFatPct != nil {
		if *in.BodyFatPct <= 0 || *in.BodyFatPct >= 100 {
			return domain.BodyMeasurement{}, errors.New("body fat must be between 0 and 100")
		}
		v := *in.BodyFatPct
		m.BodyFatPct = &v
	}
	if in.MuscleMass != nil {
		if *in.MuscleMass <= 0 {
			return domain.BodyMeasurement{}, errors.New("muscle mass must be > 0")
		}
		kg, err := domain.WeightToKg(*in.MuscleMass, in.WeightUnit)
		if err != nil {
			return domain.BodyMeasurement{}, err
		}
		m.MuscleMassKg = &kg
	}
	if len(in.Measurements) > 0 {
		m.Measurements = make(map[string]float64, len(in.Measurements))
		for name, v := range in.Measurements {
			if name == "" || v <= 0 {
				return domain.BodyMeasurement{}, errors.New("named measurements must have a name and a value > 0")
			}
			cm, err := domain.LengthToCm(v, in.LengthUnit)
			if err != nil {
				return domain.BodyMeasurement{}, err
			}
			m.Measurements[name] = cm
		}
	}
	return s.repo.AddMeasurement(ctx, m)
}

// List returns the user's measurements, newest first.
func (s *MeasurementService) List(ctx context.Context, userID string) ([]domain.BodyMeasurement, error) {
	return s.repo.ListMeasurements(ctx, userID)
}

// Latest returns the user's most recent measurement, or nil.
func (s *MeasurementService) Latest(ctx context.Context, userID string) (*domain.BodyMeasurement, error) {
	return s.repo.LatestMeasurement(ctx, userID)
}

// Delete removes one measurement.
func (s *MeasurementService) Delete(ctx context.Context, id string) (bool, error) {
	return s.repo.DeleteMeasurement(ctx, id)
}

// UndoLast deletes the user's most recent measurement and returns the new
// latest one.
func (s *MeasurementService) UndoLast(ctx context.Context, userID string) (bool, *domain.BodyMeasurement, error) {
	latest, err := s.repo.LatestMeasurement(ctx, userID)
	if err != nil || latest == nil {
		return false, nil, err
	}
	deleted, err := s.repo.DeleteMeasurement(ctx, latest.ID)
	if err != nil {
		return false, nil, err
	}
	entry, err := s.repo.LatestMeasurement(ctx, userID)
	return deleted, entry, err
}
