package main

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newPipelineCmd(opts *options) *cobra.Command {
	var workers, items, capacity int

	cmd := &cobra.Command{
		Use:   "pipeline",
		Short: "Producer -> bounded buffer -> workers -> sorted collector",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, runner, logger, err := setup(opts)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			p := cfg.Pipeline
			if cmd.Flags().Changed("workers") {
				p.Workers = workers
			}
			if cmd.Flags().Changed("items") {
				p.Items = items
			}
			if cmd.Flags().Changed("buffer") {
				p.BufferCapacity = capacity
			}

			res, err := runner.Pipeline(p)
			if err != nil {
				logger.Error("pipeline failed", zap.Error(err))
				return err
			}

			fmt.Printf("Pipeline run %s (%d items, buffer=%d, workers=%d)\n", res.RunID, p.Items, p.BufferCapacity, p.Workers)
			fmt.Println(rule)
			fmt.Printf("  Produced: %d\n  Taken:    %d\n  Accepted: %d (score >= %d)\n\n",
				res.Produced, res.Taken, len(res.Accepted), p.MinScore)
			fmt.Printf("  %-6s %6s\n", "ID", "Score")
			for _, rec := range res.Accepted {
				fmt.Printf("  %-6d %6d\n", rec.ID, rec.Score)
			}

			if opts.showMetrics {
				return printMetrics(runner)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&workers, "workers", 0, "number of consumer workers")
	cmd.Flags().IntVar(&items, "items", 0, "number of records to produce")
	cmd.Flags().IntVar(&capacity, "buffer", 0, "bounded buffer capacity")
	return cmd
}

func newSymbolsCmd(opts *options) *cobra.Command {
	var quota int
	var poll bool

	cmd := &cobra.Command{
		Use:   "symbols",
		Short: "Replenisher and spender tags contending on a credit gate",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, runner, logger, err := setup(opts)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			s := cfg.Symbols
			if cmd.Flags().Changed("quota") {
				s.StopQuota = quota
			}
			if poll {
				s.Blocking = false
			}

			res, err := runner.Symbols(s)
			if err != nil {
				logger.Error("symbols failed", zap.Error(err))
				return err
			}

			mode := "blocking"
			if !s.Blocking {
				mode = "poll"
			}
			fmt.Printf("Symbols run %s (tags=%s, replenisher=%s, mode=%s)\n",
				res.RunID, strings.Join(s.Tags, ","), s.Replenisher, mode)
			fmt.Println(rule)
			fmt.Printf("  Journal: *%s\n\n", res.Journal)

			for _, tag := range slices.Sorted(maps.Keys(res.Admitted)) {
				fmt.Printf("  %-4s %6d admissions\n", tag, res.Admitted[tag])
			}
			fmt.Printf("\n  Final credit: %d\n", res.Credit)

			if opts.showMetrics {
				return printMetrics(runner)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&quota, "quota", 0, "per-tag admissions that stop the run")
	cmd.Flags().BoolVar(&poll, "poll", false, "poll and yield instead of blocking")
	return cmd
}

func newCountersCmd(opts *options) *cobra.Command {
	var writers, readers int

	cmd := &cobra.Command{
		Use:   "counters",
		Short: "Writers and readers meeting at a version barrier",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, runner, logger, err := setup(opts)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			c := cfg.Counters
			if cmd.Flags().Changed("writers") {
				c.Writers = writers
			}
			if cmd.Flags().Changed("readers") {
				c.Readers = readers
			}

			res, err := runner.Counters(c)
			if err != nil {
				logger.Error("counters failed", zap.Error(err))
				return err
			}

			fmt.Printf("Counters run %s (writers=%d, readers=%d, quota=%d)\n", res.RunID, c.Writers, c.Readers, c.WriteQuota)
			fmt.Println(rule)
			for rd := 0; rd < c.Readers; rd++ {
				fmt.Printf("  reader %-2d saw versions %v\n", rd, res.Observed[rd])
			}
			fmt.Printf("\n  c = %d, d = %d (version %d, %d writes)\n",
				res.Final.C, res.Final.D, res.Final.Version, res.Writes)

			if opts.showMetrics {
				return printMetrics(runner)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&writers, "writers", 0, "number of writer goroutines")
	cmd.Flags().IntVar(&readers, "readers", 0, "number of reader goroutines")
	return cmd
}
