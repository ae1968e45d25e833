package domain

import (
	"context"
	"errors"
)

// ErrUsernameTaken is returned when a profile name is already registered.
var ErrUsernameTaken = errors.New("username already exists")

// Preferences are the workout defaults a user can tune.
type Preferences struct {
	PreparationSeconds int    `json:"preparationTime"`
	RestSeconds        int    `json:"restTime"`
	Units              string `json:"units"`
}

// Profile is a local user on this device.
type Profile struct {
	Meta
	Username    string      `json:"username"`
	PINHash     string      `json:"pinHash,omitempty"`
	Preferences Preferences `json:"preferences"`
}

// ProfileRepository is the port for local profiles.
type ProfileRepository interface {
	CreateProfile(ctx context.Context, p Profile) (Profile, error)
	GetProfile(ctx context.Context, id string) (*Profile, error)
	ProfileByUsername(ctx context.Context, username string) (*Profile, error)
	UpdateProfile(ctx context.Context, id string, fn func(*Profile)) (*Profile, error)
}
