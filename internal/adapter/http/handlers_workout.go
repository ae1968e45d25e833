package adapthttp

import (
	"errors"
	"net/http"

	"fittrack/internal/workout"
)

func (s *Server) handleWorkoutSnapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Engine.Snapshot())
}

func (s *Server) handleWorkoutStart(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UserID    string `json:"userId"`
		ProgramID string `json:"programId"`
		Date      string `json:"date"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if body.UserID == "" {
		writeError(w, http.StatusBadRequest, errors.New("userId is required"))
		return
	}
	today, err := dayQuery(body.Date, s.now())
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	ctx := r.Context()
	programID, err := s.resolveProgram(r, body.UserID, body.ProgramID)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	prefs, err := s.Profiles.Preferences(ctx, body.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	started, err := s.Engine.Start(ctx, workout.StartInput{
		UserID:      body.UserID,
		ProgramID:   programID,
		Today:       today,
		Preferences: &prefs,
	})
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	if !started {
		writeJSON(w, http.StatusOK, map[string]any{"started": false, "restDay": true})
		return
	}
	s.startRunner()
	writeJSON(w, http.StatusCreated, map[string]any{"started": true, "snapshot": s.Engine.Snapshot()})
}

// workoutControl adapts an engine control to a handler. Controls that did
// not apply answer 409.
func (s *Server) workoutControl(fn func() bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !fn() {
			writeJSON(w, http.StatusConflict, map[string]any{"ok": false, "snapshot": s.Engine.Snapshot()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "snapshot": s.Engine.Snapshot()})
	}
}
