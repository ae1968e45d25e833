package domain

import "fmt"

const (
	kgToLb = 2.2046226218
	inToCm = 2.54
)

// ConvertWeight converts a weight value between "kg" and "lb".
// Returns v unchanged if from == to or if the units are unrecognised.
func ConvertWeight(v float64, from, to string) float64 {
	if from == to {
		return v
	}
	if from == "kg" && to == "lb" {
		return v * kgToLb
	}
	if from == "lb" && to == "kg" {
		return v / kgToLb
	}
	return v
}

// WeightToKg normalises a user-entered weight to kilograms.
func WeightToKg(v float64, unit string) (float64, error) {
	switch unit {
	case "", "kg":
		return v, nil
	case "lb":
		return ConvertWeight(v, "lb", "kg"), nil
	}
	return 0, fmt.Errorf("unit must be \"kg\" or \"lb\", got %q", unit)
}

// LengthToCm normalises a body measurement to centimetres.
func LengthToCm(v float64, unit string) (float64, error) {
	switch unit {
	case "", "cm":
		return v, nil
	case "in":
		return v * inToCm, nil
	}
	return 0, fmt.Errorf("unit must be \"cm\" or \"in\", got %q", unit)
}
