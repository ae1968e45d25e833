// Package workout implements the guided workout session engine: a state
// machine that walks a program day's exercises through preparation,
// exercise and rest countdowns, logs completed sets, and finalizes the
// session record.
//
// The engine has no clock of its own. Advance runs one-second ticks and can
// be driven by Runner, a test, or a fast-forward loop.
package workout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"fittrack/internal/domain"
	"fittrack/internal/observability"
)

// Phase is the engine state.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhasePreparing  Phase = "preparing"
	PhaseExercising Phase = "exercising"
	PhaseResting    Phase = "resting"
	PhaseCompleted  Phase = "completed"
)

const (
	DefaultPreparationSeconds = 5
	DefaultRestSeconds        = 60
	DefaultCaloriesPerMinute  = 5.0
)

var (
	// ErrSessionActive is returned when starting while a session runs.
	ErrSessionActive = errors.New("a workout session is already active")
	// ErrProgramNotFound is returned when the requested program is unknown.
	ErrProgramNotFound = errors.New("program not found")
	// ErrNotRunning is returned by Runner when there is nothing to drive.
	ErrNotRunning = errors.New("no active workout session")
)

// Evaluator is invoked for the session owner after a session completes.
type Evaluator interface {
	Evaluate(ctx context.Context, userID string, now time.Time) ([]domain.UserAchievement, error)
}

// StartInput describes the session to start. Today selects the program day
// (Monday=1 ... Sunday=7). Nil Preferences use the engine defaults.
type StartInput struct {
	UserID      string
	ProgramID   string
	Today       time.Time
	Preferences *domain.Preferences
}

// Snapshot is the live view of the engine for rendering.
type Snapshot struct {
	Phase          Phase                   `json:"phase"`
	Paused         bool                    `json:"paused"`
	SessionID      string                  `json:"sessionId,omitempty"`
	UserID         string                  `json:"userId,omitempty"`
	ExerciseIndex  int                     `json:"exerciseIndex"`
	ExerciseCount  int                     `json:"exerciseCount"`
	Exercise       *domain.ProgramExercise `json:"exercise,omitempty"`
	ExerciseName   string                  `json:"exerciseName,omitempty"`
	CurrentSet     int                     `json:"currentSet"`
	TargetSets     int                     `json:"targetSets"`
	Remaining      int                     `json:"remainingSeconds"`
	PhaseTotal     int                     `json:"phaseSeconds"`
	Progress       float64                 `json:"progress"`
	ElapsedSeconds int                     `json:"elapsedSeconds"`
	WorkSeconds    int                     `json:"workSeconds"`
}

// Engine runs at most one workout session at a time.
type Engine struct {
	programs      domain.ProgramRepository
	sessions      domain.SessionRepository
	exerciseTypes domain.ExerciseTypeRepository
	evaluator     Evaluator
	logger        *log.Logger
	now           func() time.Time
	calorieRate   float64
	defaultPrep   int
	defaultRest   int

	mu        sync.Mutex
	phase     Phase
	paused    bool
	session   domain.WorkoutSession
	exercises []domain.ProgramExercise
	types     map[string]domain.ExerciseType
	exIdx     int
	set       int
	remaining int
	total     int
	elapsed   int
	work      []int
	prep      int
	rest      int
	finished  *domain.WorkoutSession
}

// Option customises an Engine.
type Option func(*Engine)

// WithExerciseTypes resolves exercise names and calorie rates.
func WithExerciseTypes(repo domain.ExerciseTypeRepository) Option {
	return func(e *Engine) { e.exerciseTypes = repo }
}

// WithEvaluator sets the achievement evaluator run after completion.
func WithEvaluator(ev Evaluator) Option {
	return func(e *Engine) { e.evaluator = ev }
}

// WithLogger sets the engine logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithClock overrides the wall clock used for start and end times.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithCaloriesPerMinute sets the rate used when an exercise type has none.
func WithCaloriesPerMinute(rate float64) Option {
	return func(e *Engine) {
		if rate > 0 {
			e.calorieRate = rate
		}
	}
}

// WithDefaults sets the preparation and rest used when a session starts
// without preferences.
func WithDefaults(prepSeconds, restSeconds int) Option {
	return func(e *Engine) {
		if prepSeconds >= 0 {
			e.defaultPrep = prepSeconds
		}
		if restSeconds >= 0 {
			e.defaultRest = restSeconds
		}
	}
}

// NewEngine constructs an idle Engine.
func NewEngine(programs domain.ProgramRepository, sessions domain.SessionRepository, opts ...Option) *Engine {
	e := &Engine{
		programs:    programs,
		sessions:    sessions,
		logger:      log.Default(),
		now:         time.Now,
		calorieRate: DefaultCaloriesPerMinute,
		defaultPrep: DefaultPreparationSeconds,
		defaultRest: DefaultRestSeconds,
		phase:       PhaseIdle,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start begins a session for the program day matching in.Today. It returns
// false with a nil error when nothing is scheduled that day; no session
// record is created in that case.
func (e *Engine) Start(ctx context.Context, in StartInput) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.running() {
		return false, ErrSessionActive
	}
	program, err := e.programs.GetProgram(ctx, in.ProgramID)
	if err != nil {
		return false, fmt.Errorf("load program: %w", err)
	}
	if program == nil {
		return false, ErrProgramNotFound
	}
	exercises, err := e.programs.ExercisesForDay(ctx, program.ID, domain.ProgramDay(in.Today))
	if err != nil {
		return false, fmt.Errorf("load exercises: %w", err)
	}
	if len(exercises) == 0 {
		return false, nil
	}

	e.types = e.loadTypes(ctx, exercises)
	e.exercises = exercises
	e.prep, e.rest = e.defaultPrep, e.defaultRest
	if p := in.Preferences; p != nil {
		e.prep = max(p.PreparationSeconds, 0)
		e.rest = max(p.RestSeconds, 0)
	}
	e.work = make([]int, len(exercises))
	e.elapsed = 0
	e.paused = false
	e.finished = nil

	session, err := e.sessions.CreateSession(ctx, domain.WorkoutSession{
		UserID:    in.UserID,
		ProgramID: program.ID,
		Date:      domain.LocalDay(in.Today),
		StartTime: e.now().UTC(),
		Exercises: []domain.ExerciseLog{},
	})
	if err != nil {
		e.logger.Printf("workout: session %s not persisted at start: %v", session.ID, err)
	}
	e.session = session
	e.exIdx = 0
	e.set = 1
	e.prepare()
	return true, nil
}

func (e *Engine) loadTypes(ctx context.Context, exercises []domain.ProgramExercise) map[string]domain.ExerciseType {
	types := make(map[string]domain.ExerciseType)
	if e.exerciseTypes == nil {
		return types
	}
	for _, pe := range exercises {
		if _, ok := types[pe.ExerciseTypeID]; ok {
			continue
		}
		et, err := e.exerciseTypes.GetExerciseType(ctx, pe.ExerciseTypeID)
		if err != nil {
			e.logger.Printf("workout: exercise type %s: %v", pe.ExerciseTypeID, err)
			continue
		}
		if et != nil {
			types[pe.ExerciseTypeID] = *et
		}
	}
	return types
}

// Advance runs seconds one-second ticks and returns the resulting snapshot.
// Ticks while paused, idle or completed change nothing.
func (e *Engine) Advance(ctx context.Context, seconds int) Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := 0; i < seconds && e.running(); i++ {
		e.tick(ctx)
	}
	return e.snapshot()
}

func (e *Engine) tick(ctx context.Context) {
	if e.paused {
		return
	}
	e.elapsed++
	if e.phase == PhaseExercising {
		e.work[e.exIdx]++
	}
	e.remaining--
	for e.remaining <= 0 && e.running() {
		e.transition(ctx)
	}
}

func (e *Engine) transition(ctx context.Context) {
	current := e.exercises[e.exIdx]
	switch e.phase {
	case PhasePreparing:
		e.enter(PhaseExercising, current.WorkSeconds())
	case PhaseExercising:
		e.logSet(ctx, current)
		e.enter(PhaseResting, e.restFor(current))
	case PhaseResting:
		switch {
		case e.set < current.TargetSets:
			e.set++
			e.prepare()
		case e.exIdx+1 < len(e.exercises):
			e.exIdx++
			e.set = 1
			e.prepare()
		default:
			e.complete(ctx)
		}
	}
}

// prepare starts the current set. Without a preparation time the set
// starts exercising at once.
func (e *Engine) prepare() {
	if e.prep > 0 {
		e.enter(PhasePreparing, e.prep)
		return
	}
	e.enter(PhaseExercising, e.exercises[e.exIdx].WorkSeconds())
}

func (e *Engine) enter(p Phase, seconds int) {
	e.phase = p
	e.total = seconds
	e.remaining = seconds
}

func (e *Engine) restFor(pe domain.ProgramExercise) int {
	if pe.RestSeconds > 0 {
		return pe.RestSeconds
	}
	return e.rest
}

// logSet records the current set as completed and saves the in-progress
// session. Repeating a set replaces its earlier entry.
func (e *Engine) logSet(ctx context.Context, pe domain.ProgramExercise) {
	detail := domain.SetDetail{
		SetNumber:        e.set,
		Reps:             pe.TargetReps,
		Weight:           pe.WeightSuggested,
		DurationSeconds:  e.total,
		RestAfterSeconds: e.restFor(pe),
		Completed:        true,
	}

	idx := -1
	for i, l := range e.session.Exercises {
		if l.ProgramExerciseID == pe.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		e.session.Exercises = append(e.session.Exercises, domain.ExerciseLog{
			ProgramExerciseID: pe.ID,
			ExerciseTypeID:    pe.ExerciseTypeID,
			TargetSets:        pe.TargetSets,
		})
		idx = len(e.session.Exercises) - 1
	}
	entry := &e.session.Exercises[idx]
	replaced := false
	for i := range entry.Sets {
		if entry.Sets[i].SetNumber == detail.SetNumber {
			entry.Sets[i] = detail
			replaced = true
		}
	}
	if !replaced {
		entry.Sets = append(entry.Sets, detail)
	}
	entry.SetsCompleted = len(entry.Sets)
	observability.RecordSetCompleted()

	logs := cloneLogs(e.session.Exercises)
	if _, err := e.sessions.UpdateSession(ctx, e.session.ID, func(s *domain.WorkoutSession) {
		s.Exercises = logs
	}); err != nil {
		e.logger.Printf("workout: session %s set %d not persisted: %v", e.session.ID, e.set, err)
	}
}

func (e *Engine) complete(ctx context.Context) {
	e.phase = PhaseCompleted
	e.remaining = 0
	end := e.now().UTC()

	workTotal := 0
	calories := 0.0
	for i, secs := range e.work {
		workTotal += secs
		rate := e.calorieRate
		if et, ok := e.types[e.exercises[i].ExerciseTypeID]; ok && et.CaloriesPerMinute > 0 {
			rate = et.CaloriesPerMinute
		}
		calories += float64(secs) / 60 * rate
	}

	e.session.EndTime = &end
	e.session.DurationSeconds = workTotal
	e.session.Calories = math.Round(calories*10) / 10
	e.session.Completed = true

	final := e.session
	final.Exercises = cloneLogs(e.session.Exercises)
	if _, err := e.sessions.UpdateSession(ctx, final.ID, func(s *domain.WorkoutSession) {
		s.Exercises = final.Exercises
		s.EndTime = final.EndTime
		s.DurationSeconds = final.DurationSeconds
		s.Calories = final.Calories
		s.Completed = true
	}); err != nil {
		e.logger.Printf("workout: session %s not finalized in storage: %v", final.ID, err)
	}
	e.finished = &final
	observability.RecordSessionCompleted()
	e.logger.Printf("workout: session %s completed: %d sets, %ds, %.1f kcal",
		final.ID, final.SetCount(), final.DurationSeconds, final.Calories)

	if e.evaluator == nil {
		return
	}
	awarded, err := e.evaluator.Evaluate(ctx, final.UserID, end)
	if err != nil {
		e.logger.Printf("workout: achievements for %s: %v", final.UserID, err)
		return
	}
	for _, a := range awarded {
		e.logger.Printf("workout: %s earned %s", final.UserID, a.Type)
	}
}

// Pause freezes all countdowns. It reports whether anything changed.
func (e *Engine) Pause() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running() || e.paused {
		return false
	}
	e.paused = true
	return true
}

// Resume continues after Pause.
func (e *Engine) Resume() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running() || !e.paused {
		return false
	}
	e.paused = false
	return true
}

// NextSet jumps to the next set of the current exercise and restarts its
// preparation. It is a no-op on the last set.
func (e *Engine) NextSet() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running() || e.set >= e.exercises[e.exIdx].TargetSets {
		return false
	}
	e.set++
	e.prepare()
	return true
}

// PreviousSet jumps back one set. It is a no-op on set 1.
func (e *Engine) PreviousSet() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running() || e.set <= 1 {
		return false
	}
	e.set--
	e.prepare()
	return true
}

// ResetSet restarts the current set from preparation.
func (e *Engine) ResetSet() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running() {
		return false
	}
	e.prepare()
	return true
}

// Abandon stops the current session without finalizing it. The stored
// record stays incomplete.
func (e *Engine) Abandon() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running() {
		return false
	}
	e.logger.Printf("workout: session %s abandoned at exercise %d set %d", e.session.ID, e.exIdx+1, e.set)
	e.phase = PhaseIdle
	e.paused = false
	e.remaining, e.total = 0, 0
	return true
}

// Snapshot returns the current engine state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot()
}

// Finished returns the finalized session once the engine has completed.
func (e *Engine) Finished() (domain.WorkoutSession, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.finished == nil {
		return domain.WorkoutSession{}, false
	}
	s := *e.finished
	s.Exercises = cloneLogs(e.finished.Exercises)
	return s, true
}

func (e *Engine) running() bool { return active(e.phase) }

func (e *Engine) snapshot() Snapshot {
	snap := Snapshot{Phase: e.phase, Paused: e.paused}
	if e.phase == PhaseIdle {
		return snap
	}
	snap.SessionID = e.session.ID
	snap.UserID = e.session.UserID
	snap.ExerciseIndex = e.exIdx
	snap.ExerciseCount = len(e.exercises)
	snap.CurrentSet = e.set
	snap.Remaining = e.remaining
	snap.PhaseTotal = e.total
	snap.ElapsedSeconds = e.elapsed
	for _, w := range e.work {
		snap.WorkSeconds += w
	}
	if e.exIdx < len(e.exercises) {
		pe := e.exercises[e.exIdx]
		snap.Exercise = &pe
		snap.TargetSets = pe.TargetSets
		snap.ExerciseName = e.types[pe.ExerciseTypeID].Name
	}
	if e.phase == PhaseCompleted {
		snap.Progress = 1
	} else {
		snap.Progress = Progress(e.total-e.remaining, e.total)
	}
	return snap
}

// Progress returns elapsed/total clamped to [0, 1].
func Progress(elapsed, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Max(0, math.Min(1, float64(elapsed)/float64(total)))
}

func cloneLogs(in []domain.ExerciseLog) []domain.ExerciseLog {
	out := make([]domain.ExerciseLog, len(in))
	for i, l := range in {
		out[i] = l
		out[i].Sets = append([]domain.SetDetail(nil), l.Sets...)
	}
	return out
}
