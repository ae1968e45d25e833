package adapthttp

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fittrack/internal/domain"
)

func (s *Server) handleExerciseTypes(w http.ResponseWriter, r *http.Request) {
	var (
		items []domain.ExerciseType
		err   error
	)
	if c := domain.ExerciseCategory(r.URL.Query().Get("category")); c != "" {
		if !c.Valid() {
			writeError(w, http.StatusBadRequest, errors.New("unknown category"))
			return
		}
		items, err = s.ExerciseTypes.ExerciseTypesByCategory(r.Context(), c)
	} else {
		items, err = s.ExerciseTypes.ListExerciseTypes(r.Context())
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handlePrograms(w http.ResponseWriter, r *http.Request) {
	items, err := s.Programs.ListPrograms(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleProgram(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, err := s.Programs.GetProgram(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, errors.New("program not found"))
		return
	}
	exercises, err := s.Programs.ProgramExercises(ctx, p.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"program": p, "exercises": exercises})
}

func (s *Server) handleProgramToday(w http.ResponseWriter, r *http.Request) {
	day, err := dayQuery(r.URL.Query().Get("date"), s.now())
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	programDay := domain.ProgramDay(day)
	exercises, err := s.Programs.ExercisesForDay(r.Context(), chi.URLParam(r, "id"), programDay)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"day":        domain.LocalDay(day),
		"programDay": programDay,
		"restDay":    len(exercises) == 0,
		"exercises":  exercises,
	})
}

func (s *Server) handleActiveProgram(w http.ResponseWriter, r *http.Request) {
	up, err := s.Programs.ActiveProgram(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"assignment": up})
}

func (s *Server) handleAssignProgram(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ProgramID string `json:"programId"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	up, err := s.Programs.AssignProgram(r.Context(), chi.URLParam(r, "userID"), body.ProgramID, s.now())
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"assignment": up})
}

// resolveProgram picks the requested program, else the user's active
// assignment, else the default program.
func (s *Server) resolveProgram(r *http.Request, userID, programID string) (string, error) {
	if programID != "" {
		return programID, nil
	}
	ctx := r.Context()
	up, err := s.Programs.ActiveProgram(ctx, userID)
	if err != nil {
		return "", err
	}
	if up != nil {
		return up.ProgramID, nil
	}
	def, err := s.Programs.DefaultProgram(ctx)
	if err != nil {
		return "", err
	}
	if def == nil {
		return "", errors.New("no program assigned and no default program")
	}
	return def.ID, nil
}

