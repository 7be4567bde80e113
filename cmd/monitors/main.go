// Command monitors runs the coordination-primitive scenarios.
//
// Usage:
//
//	go run ./cmd/monitors pipeline --workers 4
//	go run ./cmd/monitors symbols --poll --metrics
//	go run ./cmd/monitors counters --config monitors.yaml
//	go run ./cmd/monitors bench -n 1000000 --size 64
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/randomizedcoder/go-monitors/internal/config"
	"github.com/randomizedcoder/go-monitors/internal/metrics"
	"github.com/randomizedcoder/go-monitors/internal/scenario"
)

const rule = "─────────────────────────────────────────────────"

type options struct {
	configPath  string
	logLevel    string
	showMetrics bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "monitors",
		Short:        "Run monitor-style coordination primitive scenarios",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML configuration file (defaults apply when empty)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&opts.showMetrics, "metrics", false, "print operation counters after the run")

	root.AddCommand(
		newPipelineCmd(opts),
		newSymbolsCmd(opts),
		newCountersCmd(opts),
		newBenchCmd(),
	)
	return root
}

// setup loads the configuration and builds the logger and recorder shared
// by the scenario commands.
func setup(opts *options) (config.Config, *scenario.Runner, *zap.Logger, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.Config{}, nil, nil, err
	}

	logger, err := newLogger(opts.logLevel)
	if err != nil {
		return config.Config{}, nil, nil, err
	}

	var rec *metrics.Recorder
	if opts.showMetrics {
		rec = metrics.NewRecorder("monitors")
	}
	return cfg, scenario.New(logger, rec), logger, nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	zcfg := zap.NewDevelopmentConfig()
	zcfg.Level = lvl
	return zcfg.Build()
}

func printMetrics(r *scenario.Runner) error {
	totals, err := r.Metrics.Totals()
	if err != nil {
		return err
	}
	if len(totals) == 0 {
		return nil
	}
	fmt.Println("\nOperations:")
	for _, t := range totals {
		fmt.Printf("  %-32s %10.0f\n", t.String(), t.Value)
	}
	return nil
}
