package adapthttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"fittrack/internal/domain"
	"fittrack/internal/repository"
	"fittrack/internal/workout"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]any{"error": err.Error()})
}

func parseJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	return nil
}

func intQuery(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// dayQuery parses an optional YYYY-MM-DD value in the local zone, falling
// back to now.
func dayQuery(v string, now time.Time) (time.Time, error) {
	if v == "" {
		return now, nil
	}
	d, err := time.ParseInLocation(domain.DayLayout, v, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be YYYY-MM-DD: %w", err)
	}
	return d.Add(12 * time.Hour), nil
}

// statusFor maps known domain errors to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrUsernameTaken),
		errors.Is(err, domain.ErrSessionFinalized),
		errors.Is(err, repository.ErrSessionNotCompleted),
		errors.Is(err, workout.ErrSessionActive):
		return http.StatusConflict
	case errors.Is(err, repository.ErrProgramNotFound),
		errors.Is(err, workout.ErrProgramNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrInvalidEffort):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func withNoCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}
