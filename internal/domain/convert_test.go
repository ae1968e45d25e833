package domain_test

import (
	"math"
	"testing"
	"time"

	"fittrack/internal/domain"
)

func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestConvertWeight(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		from, to string
		want     float64
	}{
		{"kg to lb", 100.0, "kg", "lb", 220.46226218},
		{"lb to kg", 220.46226218, "lb", "kg", 100.0},
		{"same unit", 80.0, "kg", "kg", 80.0},
		{"unknown units", 50.0, "st", "kg", 50.0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := domain.ConvertWeight(tc.value, tc.from, tc.to)
			if !almostEqual(got, tc.want, 0.001) {
				t.Errorf("ConvertWeight(%v, %q, %q) = %v; want %v", tc.value, tc.from, tc.to, got, tc.want)
			}
		})
	}
}

func TestWeightToKg(t *testing.T) {
	got, err := domain.WeightToKg(180, "lb")
	if err != nil {
		t.Fatalf("WeightToKg: %v", err)
	}
	if !almostEqual(got, 81.6466, 0.001) {
		t.Errorf("expected ~81.65kg, got %v", got)
	}
	if _, err := domain.WeightToKg(10, "stone"); err == nil {
		t.Error("expected error for unknown unit")
	}
}

func TestLengthToCm(t *testing.T) {
	got, err := domain.LengthToCm(10, "in")
	if err != nil {
		t.Fatalf("LengthToCm: %v", err)
	}
	if !almostEqual(got, 25.4, 0.0001) {
		t.Errorf("expected 25.4cm, got %v", got)
	}
	if _, err := domain.LengthToCm(1, "ft"); err == nil {
		t.Error("expected error for unknown unit")
	}
}

func TestProgramDay(t *testing.T) {
	tests := []struct {
		day  string
		want int
	}{
		{"2026-10-12", 1}, // Monday
		{"2026-10-14", 3},
		{"2026-10-17", 6},
		{"2026-10-18", 7}, // Sunday
	}
	for _, tc := range tests {
		d, _ := time.Parse(domain.DayLayout, tc.day)
		if got := domain.ProgramDay(d); got != tc.want {
			t.Errorf("ProgramDay(%s) = %d; want %d", tc.day, got, tc.want)
		}
	}
}

func TestWorkSeconds(t *testing.T) {
	if got := (domain.ProgramExercise{TargetReps: 10}).WorkSeconds(); got != 20 {
		t.Errorf("reps estimate: got %d, want 20", got)
	}
	if got := (domain.ProgramExercise{TargetReps: 10, DurationSeconds: 45}).WorkSeconds(); got != 45 {
		t.Errorf("explicit duration: got %d, want 45", got)
	}
}
