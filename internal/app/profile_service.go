package app

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"fittrack/internal/domain"
)

var (
	// ErrInvalidCredentials indicates that the username or PIN was incorrect.
	ErrInvalidCredentials = errors.New("invalid username or pin")
	// ErrProfileNotFound indicates that the profile does not exist.
	ErrProfileNotFound = errors.New("profile not found")
)

// Preference bounds, in seconds.
const (
	MaxPreparationSeconds = 60
	MaxRestSeconds        = 600
)

// ProfileService manages local profiles and their workout preferences.
type ProfileService struct {
	profiles domain.ProfileRepository
	defaults domain.Preferences
}

// NewProfileService creates a ProfileService. defaults seed new profiles and
// answer for users without one.
func NewProfileService(profiles domain.ProfileRepository, defaults domain.Preferences) *ProfileService {
	if defaults.Units == "" {
		defaults.Units = "metric"
	}
	return &ProfileService{profiles: profiles, defaults: defaults}
}

// Create registers a profile. An empty pin leaves the profile unprotected.
func (s *ProfileService) Create(ctx context.Context, username, pin string) (domain.Profile, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return domain.Profile{}, errors.New("username is required")
	}
	p := domain.Profile{Username: username, Preferences: s.defaults}
	if pin != "" {
		if len(pin) < 4 {
			return domain.Profile{}, errors.New("pin must be at least 4 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
		if err != nil {
			return domain.Profile{}, err
		}
		p.PINHash = string(hash)
	}
	return s.profiles.CreateProfile(ctx, p)
}

// Verify returns the profile when pin matches.
func (s *ProfileService) Verify(ctx context.Context, username, pin string) (*domain.Profile, error) {
	p, err := s.profiles.ProfileByUsername(ctx, username)
	if err != nil || p == nil {
		return nil, ErrInvalidCredentials
	}
	if p.PINHash == "" {
		return p, nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(p.PINHash), []byte(pin)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return p, nil
}

// Preferences returns the user's preferences, or the defaults when the user
// has no profile.
func (s *ProfileService) Preferences(ctx context.Context, userID string) (domain.Preferences, error) {
	p, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return domain.Preferences{}, err
	}
	if p == nil {
		return s.defaults, nil
	}
	return p.Preferences, nil
}

// UpdatePreferences validates and stores new preferences.
func (s *ProfileService) UpdatePreferences(ctx context.Context, userID string, prefs domain.Preferences) (domain.Preferences, error) {
	if prefs.PreparationSeconds < 0 || prefs.PreparationSeconds > MaxPreparationSeconds {
		return domain.Preferences{}, errors.New("preparation time must be between 0 and 60 seconds")
	}
	if prefs.RestSeconds < 0 || prefs.RestSeconds > MaxRestSeconds {
		return domain.Preferences{}, errors.New("rest time must be between 0 and 600 seconds")
	}
	switch prefs.Units {
	case "":
		prefs.Units = s.defaults.Units
	case "metric", "imperial":
	default:
		return domain.Preferences{}, errors.New("units must be \"metric\" or \"imperial\"")
	}
	p, err := s.profiles.UpdateProfile(ctx, userID, func(p *domain.Profile) { p.Preferences = prefs })
	if err != nil {
		return domain.Preferences{}, err
	}
	if p == nil {
		return domain.Preferences{}, ErrProfileNotFound
	}
	return p.Preferences, nil
}
