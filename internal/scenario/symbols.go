package scenario

import (
	"fmt"
	"runtime"
	"slices"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/randomizedcoder/go-monitors/internal/config"
	"github.com/randomizedcoder/go-monitors/internal/credit"
)

// SymbolsResult is the final state of a symbols run.
type SymbolsResult struct {
	RunID string

	// Journal is every admitted tag in admission order.
	Journal  string
	Credit   int
	Admitted map[string]int
}

// Symbols runs one worker per tag against a credit gate until some tag
// reaches the stop quota. The replenisher tag never blocks; the others
// either block in TryAdmit or, when cfg.Blocking is false, poll and yield.
func (r *Runner) Symbols(cfg config.Symbols) (*SymbolsResult, error) {
	runID, log := r.start("symbols")

	// Without a replenisher every worker is a spender and none is ever admitted.
	if !slices.Contains(cfg.Tags, cfg.Replenisher) {
		return nil, fmt.Errorf("symbols: replenisher %q is not one of the tags %v", cfg.Replenisher, cfg.Tags)
	}

	gate, err := credit.New(credit.Config{
		Threshold: cfg.Threshold,
		Replenish: cfg.Replenish,
		Spend:     cfg.Spend,
		StopQuota: cfg.StopQuota,
	})
	if err != nil {
		return nil, fmt.Errorf("symbols: %w", err)
	}

	log.Info("starting",
		zap.Strings("tags", cfg.Tags),
		zap.String("replenisher", cfg.Replenisher),
		zap.Bool("blocking", cfg.Blocking))

	var g errgroup.Group
	for _, tag := range cfg.Tags {
		class := credit.Spender
		if tag == cfg.Replenisher {
			class = credit.Replenisher
		}

		g.Go(func() error {
			for {
				var d credit.Decision
				if cfg.Blocking {
					d = gate.TryAdmit(tag, class)
				} else {
					d = gate.Poll(tag, class)
				}
				r.Metrics.Observe("credit", "admit", d.String())

				switch d {
				case credit.Stopped:
					log.Debug("worker stopped", zap.String("tag", tag), zap.Stringer("class", class))
					return nil
				case credit.Denied:
					runtime.Gosched()
				}
			}
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("symbols: %w", err)
	}

	res := &SymbolsResult{
		RunID:    runID,
		Journal:  gate.Journal(),
		Credit:   gate.Credit(),
		Admitted: make(map[string]int, len(cfg.Tags)),
	}
	for _, tag := range cfg.Tags {
		res.Admitted[tag] = gate.Admitted(tag)
	}

	log.Info("finished",
		zap.Int("admissions", len(res.Journal)),
		zap.Int("credit", res.Credit))
	return res, nil
}
