package scenario

import (
	"fmt"
	"math/rand/v2"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/randomizedcoder/go-monitors/internal/collector"
	"github.com/randomizedcoder/go-monitors/internal/config"
	"github.com/randomizedcoder/go-monitors/internal/queue"
)

// Record is one item flowing through the pipeline.
type Record struct {
	ID    int
	Score int
}

// PipelineResult is the final state of a pipeline run.
type PipelineResult struct {
	RunID    string
	Produced int
	Taken    int

	// Accepted holds the records that passed the filter, ascending by Score.
	Accepted []Record
}

// Records generates n synthetic records with scores in [0, 100).
func Records(n int, seed uint64) []Record {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	out := make([]Record, n)
	for i := range out {
		out[i] = Record{ID: i, Score: rng.IntN(100)}
	}
	return out
}

// Pipeline puts cfg.Items records into a bounded buffer, completes it, and
// has cfg.Workers workers drain it into a sorted collector, keeping records
// with Score >= cfg.MinScore.
func (r *Runner) Pipeline(cfg config.Pipeline) (*PipelineResult, error) {
	runID, log := r.start("pipeline")

	if cfg.Workers <= 0 {
		return nil, fmt.Errorf("pipeline: workers must be positive, got %d", cfg.Workers)
	}

	buf, err := queue.NewBoundedBuffer[Record](cfg.BufferCapacity)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	results, err := collector.New(cfg.Items, func(rec Record) int { return rec.Score })
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	log.Info("starting",
		zap.Int("items", cfg.Items),
		zap.Int("buffer_capacity", cfg.BufferCapacity),
		zap.Int("workers", cfg.Workers))

	var taken atomic.Int64
	var g errgroup.Group
	for w := 0; w < cfg.Workers; w++ {
		g.Go(func() error {
			n := 0
			for {
				rec, ok := buf.Take()
				if !ok {
					log.Debug("worker drained", zap.Int("worker", w), zap.Int("taken", n))
					return nil
				}
				n++
				taken.Add(1)
				r.Metrics.Observe("queue", "take", "ok")

				if rec.Score < cfg.MinScore {
					r.Metrics.Observe("collector", "insert", "filtered")
					continue
				}
				if err := results.InsertSorted(rec); err != nil {
					r.Metrics.Observe("collector", "insert", "error")
					return fmt.Errorf("worker %d: %w", w, err)
				}
				r.Metrics.Observe("collector", "insert", "ok")
			}
		})
	}

	produced := 0
	for _, rec := range Records(cfg.Items, cfg.Seed) {
		buf.Put(rec)
		produced++
		r.Metrics.Observe("queue", "put", "ok")
	}
	buf.Complete()

	if err := g.Wait(); err != nil {
		log.Error("worker failed", zap.Error(err))
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	res := &PipelineResult{
		RunID:    runID,
		Produced: produced,
		Taken:    int(taken.Load()),
		Accepted: results.Snapshot(),
	}
	log.Info("finished",
		zap.Int("produced", res.Produced),
		zap.Int("taken", res.Taken),
		zap.Int("accepted", len(res.Accepted)))
	return res, nil
}
