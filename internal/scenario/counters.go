package scenario

import (
	"fmt"
	"runtime"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/randomizedcoder/go-monitors/internal/config"
	"github.com/randomizedcoder/go-monitors/internal/version"
)

// CountersResult is the final state of a counters run.
type CountersResult struct {
	RunID  string
	Final  version.Snapshot
	Writes int

	// Observed maps reader index to the versions it read, in order.
	Observed map[int][]int
}

// Counters runs writers 1..cfg.Writers, each advancing the pair by its own
// id, against cfg.Readers readers until the write quota is met.
func (r *Runner) Counters(cfg config.Counters) (*CountersResult, error) {
	runID, log := r.start("counters")

	if cfg.Writers <= 0 {
		return nil, fmt.Errorf("counters: writers must be positive, got %d", cfg.Writers)
	}
	if cfg.Readers < cfg.RequiredReads {
		return nil, fmt.Errorf("counters: %d readers cannot satisfy %d required reads", cfg.Readers, cfg.RequiredReads)
	}

	barrier, err := version.New(version.Config{
		WriteQuota:    cfg.WriteQuota,
		RequiredReads: cfg.RequiredReads,
		InitialC:      cfg.InitialC,
		InitialD:      cfg.InitialD,
	})
	if err != nil {
		return nil, fmt.Errorf("counters: %w", err)
	}

	log.Info("starting",
		zap.Int("writers", cfg.Writers),
		zap.Int("readers", cfg.Readers),
		zap.Int("write_quota", cfg.WriteQuota))

	var g errgroup.Group
	for id := 1; id <= cfg.Writers; id++ {
		g.Go(func() error {
			n := 0
			for barrier.WriterAdvance(id) {
				n++
				r.Metrics.Observe("version", "write", "ok")
				runtime.Gosched()
			}
			log.Debug("writer finished", zap.Int("writer", id), zap.Int("writes", n))
			return nil
		})
	}

	var mu sync.Mutex
	observed := make(map[int][]int, cfg.Readers)
	for rd := 0; rd < cfg.Readers; rd++ {
		g.Go(func() error {
			var versions []int
			last := -1
			for {
				s := barrier.ReadNext(&last)
				if s.Done {
					r.Metrics.Observe("version", "read", "terminal")
					break
				}
				r.Metrics.Observe("version", "read", "ok")
				log.Debug("read",
					zap.Int("reader", rd),
					zap.Int("c", s.C),
					zap.Int("d", s.D),
					zap.Int("version", s.Version))
				versions = append(versions, s.Version)
			}

			mu.Lock()
			observed[rd] = versions
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("counters: %w", err)
	}

	res := &CountersResult{
		RunID:    runID,
		Final:    barrier.Current(),
		Writes:   barrier.Writes(),
		Observed: observed,
	}
	log.Info("finished",
		zap.Int("c", res.Final.C),
		zap.Int("d", res.Final.D),
		zap.Int("version", res.Final.Version))
	return res, nil
}
