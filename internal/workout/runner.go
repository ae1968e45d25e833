package workout

import (
	"context"
	"time"
)

// Runner drives an Engine from a wall-clock ticker. Each tick advances the
// engine by one second regardless of Interval, so a shorter interval
// fast-forwards the session.
type Runner struct {
	engine   *Engine
	interval time.Duration
	onTick   func(Snapshot)
}

// RunnerOption customises a Runner.
type RunnerOption func(*Runner)

// WithInterval sets the wall-clock delay between ticks.
func WithInterval(d time.Duration) RunnerOption {
	return func(r *Runner) {
		if d > 0 {
			r.interval = d
		}
	}
}

// OnTick registers a callback receiving the snapshot after every tick.
func OnTick(fn func(Snapshot)) RunnerOption {
	return func(r *Runner) { r.onTick = fn }
}

// NewRunner returns a Runner ticking once per second.
func NewRunner(e *Engine, opts ...RunnerOption) *Runner {
	r := &Runner{engine: e, interval: time.Second}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run ticks until the session completes, is abandoned, or ctx is done.
func (r *Runner) Run(ctx context.Context) (Snapshot, error) {
	snap := r.engine.Snapshot()
	if !active(snap.Phase) {
		return snap, ErrNotRunning
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return r.engine.Snapshot(), ctx.Err()
		case <-ticker.C:
			snap = r.engine.Advance(ctx, 1)
			if r.onTick != nil {
				r.onTick(snap)
			}
			switch snap.Phase {
			case PhaseCompleted:
				return snap, nil
			case PhaseIdle:
				return snap, ErrNotRunning
			}
		}
	}
}

func active(p Phase) bool {
	return p == PhasePreparing || p == PhaseExercising || p == PhaseResting
}
