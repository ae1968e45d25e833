package adapthttp

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fittrack/internal/domain"
	"fittrack/internal/repository"
	"fittrack/internal/workout"
)

func TestLoggingMiddleware(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		status int
		want   string
	}{
		{"explicit status", http.MethodPost, "/api/workout/pause", http.StatusConflict, "POST /api/workout/pause 409"},
		{"implicit ok", http.MethodGet, "/api/health", 0, "GET /api/health 200"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			s := &Server{Deps: Deps{Logger: log.New(&buf, "", 0)}}
			handler := s.loggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tc.status != 0 {
					w.WriteHeader(tc.status)
				}
				_, _ = w.Write([]byte("{}"))
			}))

			req := httptest.NewRequest(tc.method, tc.path, nil)
			handler.ServeHTTP(httptest.NewRecorder(), req)

			if got := buf.String(); !strings.HasPrefix(got, tc.want) {
				t.Errorf("log line = %q, want prefix %q", got, tc.want)
			}
		})
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{workout.ErrSessionActive, http.StatusConflict},
		{fmt.Errorf("wrapped: %w", domain.ErrUsernameTaken), http.StatusConflict},
		{repository.ErrProgramNotFound, http.StatusNotFound},
		{repository.ErrInvalidEffort, http.StatusBadRequest},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		if got := statusFor(tc.err); got != tc.want {
			t.Errorf("statusFor(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
