// Package scenario drives the coordination primitives with a fixed set of
// worker goroutines.
//
// Each run starts its workers once, lets the primitive enforce all ordering
// and blocking, joins the workers, and then reads the final state:
//   - Pipeline: producer -> queue.BoundedBuffer -> workers -> collector.Sorted
//   - Symbols: one worker per tag contending on a credit.Gate
//   - Counters: writers and readers meeting at a version.Barrier
package scenario

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/randomizedcoder/go-monitors/internal/metrics"
)

// Runner runs scenarios, logging to Logger and counting operations in
// Metrics. Both may be nil.
type Runner struct {
	Logger  *zap.Logger
	Metrics *metrics.Recorder
}

// New creates a Runner.
func New(logger *zap.Logger, rec *metrics.Recorder) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{Logger: logger, Metrics: rec}
}

// start assigns a run ID and returns a logger scoped to the run.
func (r *Runner) start(name string) (string, *zap.Logger) {
	id := uuid.NewString()
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return id, logger.With(zap.String("scenario", name), zap.String("run_id", id))
}
