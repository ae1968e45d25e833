package repository

import (
	"context"
	"strings"

	"fittrack/internal/domain"
)

// CreateProfile adds a profile with a unique username.
func (d *DB) CreateProfile(ctx context.Context, p domain.Profile) (domain.Profile, error) {
	existing, _ := d.ProfileByUsername(ctx, p.Username)
	if existing != nil {
		return domain.Profile{}, domain.ErrUsernameTaken
	}
	return d.profiles.Add(ctx, p)
}

// GetProfile returns the profile with id.
func (d *DB) GetProfile(ctx context.Context, id string) (*domain.Profile, error) {
	p, ok := d.profiles.Find(ctx, id)
	return ptr(p, ok), nil
}

// ProfileByUsername looks a profile up by case-insensitive username.
func (d *DB) ProfileByUsername(ctx context.Context, username string) (*domain.Profile, error) {
	want := strings.ToLower(strings.TrimSpace(username))
	for _, p := range d.profiles.List(ctx) {
		if strings.ToLower(p.Username) == want {
			return &p, nil
		}
	}
	return nil, nil
}

// UpdateProfile applies fn to the profile with id.
func (d *DB) UpdateProfile(ctx context.Context, id string, fn func(*domain.Profile)) (*domain.Profile, error) {
	p, ok, err := d.profiles.Update(ctx, id, fn)
	return ptr(p, ok), err
}
