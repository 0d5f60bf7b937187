// Package model owns the lifecycle of the translation model: a lazily
// loaded, expensive resource that must be initialized in the background
// without blocking request handling.
package model

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rimaylabs/rimay/internal/metrics"
	"github.com/rimaylabs/rimay/pkg/logger"
	"go.uber.org/zap"
)

// Bundle is the handle to a loaded translation model. Implementations must
// be safe for concurrent use.
type Bundle interface {
	// Translate runs the bounded generation call for the given text.
	Translate(ctx context.Context, text string, maxLength, numBeams int) (string, error)
}

// Loader produces a ready Bundle. It is expected to be slow (tens of
// seconds) and fallible; the guard invokes it at most once per trigger.
type Loader func(ctx context.Context) (Bundle, error)

// Guard enforces single-loader, non-blocking-read semantics over the model
// lifecycle. All state transitions happen under one mutex, so concurrent
// callers that observe "not ready, not loading" cause exactly one load.
type Guard struct {
	loader Loader

	mu       sync.Mutex
	state    State
	bundle   Bundle
	lastErr  string
	loadedAt time.Time
}

// NewGuard creates a guard in the not-ready state. No load is started until
// the first GetOrTrigger call (or an explicit Trigger for eager warm-up).
func NewGuard(loader Loader) *Guard {
	metrics.SetModelState(string(StateNotReady))
	return &Guard{
		loader: loader,
		state:  StateNotReady,
	}
}

// GetOrTrigger returns the loaded bundle when the model is ready. Otherwise
// it starts a background load unless one is already in flight, and reports
// absence. It never blocks on the load itself.
//
// The returned snapshot is the state observed before any transition made by
// this call: a request that finds the last load failed sees StateError with
// its detail even though the call has already started the retry.
func (g *Guard) GetOrTrigger() (Bundle, Snapshot) {
	g.mu.Lock()
	defer g.mu.Unlock()

	observed := g.snapshotLocked()

	switch g.state {
	case StateReady:
		return g.bundle, observed
	case StateLoading:
		return nil, observed
	default:
		// NotReady or Error: the transition to Loading and the decision to
		// spawn the load must be one atomic step under the lock.
		g.startLoadLocked()
		return nil, observed
	}
}

// Trigger starts a background load if the model is neither ready nor already
// loading. It reports whether a new load was started. Used for eager warm-up
// at process start.
func (g *Guard) Trigger() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state == StateReady || g.state == StateLoading {
		return false
	}
	g.startLoadLocked()
	return true
}

// startLoadLocked transitions to Loading and spawns the load job. Callers
// must hold g.mu.
func (g *Guard) startLoadLocked() {
	g.state = StateLoading
	g.lastErr = ""
	metrics.SetModelState(string(StateLoading))
	metrics.RecordModelLoadStart()

	logger.Base().Info("model load triggered")

	// The load runs on its own context: it must survive the triggering
	// request's disconnection and always run to completion.
	go g.load(context.Background())
}

func (g *Guard) load(ctx context.Context) {
	start := time.Now()
	bundle, err := g.loader(ctx)
	elapsed := time.Since(start)

	// A nil bundle without an error still counts as a failed attempt: the
	// ready state always carries a usable handle.
	if err == nil && bundle == nil {
		err = errors.New("loader returned no bundle")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if err != nil {
		g.state = StateError
		g.bundle = nil
		g.lastErr = err.Error()
		g.loadedAt = time.Time{}
		metrics.SetModelState(string(StateError))
		metrics.RecordModelLoadOutcome(elapsed, false)
		logger.Base().Error("model load failed",
			zap.Error(err),
			zap.Duration("elapsed", elapsed),
		)
		return
	}

	g.state = StateReady
	g.bundle = bundle
	g.lastErr = ""
	g.loadedAt = time.Now()
	metrics.SetModelState(string(StateReady))
	metrics.RecordModelLoadOutcome(elapsed, true)
	logger.Base().Info("model loaded",
		zap.Duration("elapsed", elapsed),
	)
}

// Status returns the current lifecycle state.
func (g *Guard) Status() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Snapshot returns a consistent view of state, last error and load time.
func (g *Guard) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshotLocked()
}

func (g *Guard) snapshotLocked() Snapshot {
	snap := Snapshot{State: g.state, LastError: g.lastErr}
	if !g.loadedAt.IsZero() {
		t := g.loadedAt
		snap.LoadedAt = &t
	}
	return snap
}

// LastError returns the failure message of the last load attempt, or ""
// when the guard is not in the error state.
func (g *Guard) LastError() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastErr
}
