package adapthttp

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fittrack/internal/app"
	"fittrack/internal/domain"
)

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.Progress.Stats(r.Context(), chi.URLParam(r, "userID"), s.now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	days := intQuery(r, "days", 30)
	points, err := s.Progress.Daily(r.Context(), chi.URLParam(r, "userID"), days, s.now())
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"days": len(points), "points": points})
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	completedOnly := r.URL.Query().Get("completed") == "true"
	items, err := s.Sessions.ListSessions(r.Context(), chi.URLParam(r, "userID"), completedOnly)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleRateSession(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Effort int    `json:"perceivedEffort"`
		Notes  string `json:"notes"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	ctx := r.Context()
	id := chi.URLParam(r, "sessionID")
	existing, err := s.Sessions.GetSession(ctx, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if existing == nil || existing.UserID != chi.URLParam(r, "userID") {
		writeError(w, http.StatusNotFound, errors.New("session not found"))
		return
	}
	sess, err := s.Sessions.RateSession(ctx, id, body.Effort, body.Notes)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"session": sess})
}

func (s *Server) handleMeasurements(w http.ResponseWriter, r *http.Request) {
	items, err := s.Measurements.List(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleRecordMeasurement(w http.ResponseWriter, r *http.Request) {
	var in app.MeasurementInput
	if err := parseJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	m, err := s.Measurements.Record(r.Context(), chi.URLParam(r, "userID"), in)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"entry": m})
}

func (s *Server) handleMeasurementUndoLast(w http.ResponseWriter, r *http.Request) {
	deleted, entry, err := s.Measurements.UndoLast(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "deleted": deleted, "entry": entry})
}

func (s *Server) handleAchievements(w http.ResponseWriter, r *http.Request) {
	items, err := s.Achievements.ListAchievements(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handlePreferences(w http.ResponseWriter, r *http.Request) {
	prefs, err := s.Profiles.Preferences(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}

func (s *Server) handleUpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var prefs domain.Preferences
	if err := parseJSON(r, &prefs); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	updated, err := s.Profiles.UpdatePreferences(r.Context(), chi.URLParam(r, "userID"), prefs)
	switch {
	case errors.Is(err, app.ErrProfileNotFound):
		writeError(w, http.StatusNotFound, err)
	case err != nil:
		writeError(w, http.StatusBadRequest, err)
	default:
		writeJSON(w, http.StatusOK, updated)
	}
}

type profileBody struct {
	Username string `json:"username"`
	PIN      string `json:"pin"`
}

func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var body profileBody
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	p, err := s.Profiles.Create(r.Context(), body.Username, body.PIN)
	switch {
	case errors.Is(err, domain.ErrUsernameTaken):
		writeError(w, http.StatusConflict, err)
	case err != nil:
		writeError(w, http.StatusBadRequest, err)
	default:
		p.PINHash = ""
		writeJSON(w, http.StatusCreated, map[string]any{"profile": p})
	}
}

func (s *Server) handleVerifyProfile(w http.ResponseWriter, r *http.Request) {
	var body profileBody
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	p, err := s.Profiles.Verify(r.Context(), body.Username, body.PIN)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err)
		return
	}
	p.PINHash = ""
	writeJSON(w, http.StatusOK, map[string]any{"profile": p})
}
