package adapthttp

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fittrack/internal/app"
	"fittrack/internal/domain"
	"fittrack/internal/store"
	"fittrack/internal/workout"
)

// Deps are the collaborators the Server routes requests to.
type Deps struct {
	Store          *store.Store
	Programs       domain.ProgramRepository
	ExerciseTypes  domain.ExerciseTypeRepository
	Sessions       domain.SessionRepository
	Achievements   domain.AchievementRepository
	Progress       *app.ProgressService
	Measurements   *app.MeasurementService
	Profiles       *app.ProfileService
	Engine         *workout.Engine
	TickInterval   time.Duration
	AllowedOrigins []string
	Logger         *log.Logger
}

// Server is the driving HTTP adapter that routes requests to application
// services and drives the workout engine in the background.
type Server struct {
	Deps
	now func() time.Time

	mu        sync.Mutex
	stopRun   context.CancelFunc
	runnerEnd chan struct{}
}

// New creates a Server wired to the given dependencies.
func New(d Deps) *Server {
	if d.Logger == nil {
		d.Logger = log.Default()
	}
	if d.TickInterval <= 0 {
		d.TickInterval = time.Second
	}
	if len(d.AllowedOrigins) == 0 {
		d.AllowedOrigins = []string{"http://localhost:*", "http://127.0.0.1:*"}
	}
	return &Server{Deps: d, now: time.Now}
}

// WithClock overrides the clock used to resolve "today".
func (s *Server) WithClock(now func() time.Time) *Server {
	s.now = now
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.loggingMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(withNoCache)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"ok": true})
		})

		r.Route("/storage", func(r chi.Router) {
			r.Get("/quota", s.handleQuota)
			r.Get("/export", s.handleExport)
			r.Post("/import", s.handleImport)
		})

		r.Get("/exercise-types", s.handleExerciseTypes)
		r.Get("/programs", s.handlePrograms)
		r.Get("/programs/{id}", s.handleProgram)
		r.Get("/programs/{id}/today", s.handleProgramToday)

		r.Post("/profiles", s.handleCreateProfile)
		r.Post("/profiles/verify", s.handleVerifyProfile)

		r.Route("/users/{userID}", func(r chi.Router) {
			r.Get("/stats", s.handleStats)
			r.Get("/daily", s.handleDaily)
			r.Get("/program", s.handleActiveProgram)
			r.Post("/program", s.handleAssignProgram)
			r.Get("/sessions", s.handleSessions)
			r.Post("/sessions/{sessionID}/rating", s.handleRateSession)
			r.Get("/measurements", s.handleMeasurements)
			r.Post("/measurements", s.handleRecordMeasurement)
			r.Post("/measurements/undo-last", s.handleMeasurementUndoLast)
			r.Get("/achievements", s.handleAchievements)
			r.Get("/preferences", s.handlePreferences)
			r.Put("/preferences", s.handleUpdatePreferences)
		})

		r.Route("/workout", func(r chi.Router) {
			r.Get("/", s.handleWorkoutSnapshot)
			r.Post("/", s.handleWorkoutStart)
			r.Post("/pause", s.workoutControl(s.Engine.Pause))
			r.Post("/resume", s.workoutControl(s.Engine.Resume))
			r.Post("/next", s.workoutControl(s.Engine.NextSet))
			r.Post("/previous", s.workoutControl(s.Engine.PreviousSet))
			r.Post("/reset", s.workoutControl(s.Engine.ResetSet))
			r.Post("/abandon", s.workoutControl(s.Engine.Abandon))
		})
	})
	return r
}

// Close stops the background workout runner, if any.
func (s *Server) Close() {
	s.mu.Lock()
	stop, done := s.stopRun, s.runnerEnd
	s.stopRun, s.runnerEnd = nil, nil
	s.mu.Unlock()
	if stop != nil {
		stop()
		<-done
	}
}

// startRunner drives the engine until the session ends.
func (s *Server) startRunner() {
	s.Close()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	s.mu.Lock()
	s.stopRun, s.runnerEnd = cancel, done
	s.mu.Unlock()

	go func() {
		defer close(done)
		snap, err := workout.NewRunner(s.Engine, workout.WithInterval(s.TickInterval)).Run(ctx)
		if err != nil && ctx.Err() == nil {
			s.Logger.Printf("workout runner stopped in %s: %v", snap.Phase, err)
		}
	}()
}
