// simtrace replays a scenario file against a simulated clock and dummy tasks
// and prints the resulting trace. It exits non-zero when an expectation fails.
//
//	simtrace --config three_runs.yaml --metrics
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/pflag"

	"github.com/zgpcy/timer-testkit/internal/collector"
	"github.com/zgpcy/timer-testkit/internal/config"
	"github.com/zgpcy/timer-testkit/internal/logger"
	"github.com/zgpcy/timer-testkit/internal/scenario"
	"github.com/zgpcy/timer-testkit/internal/version"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	var (
		configPath  string
		showMetrics bool
		showVersion bool
	)

	flagSet := pflag.NewFlagSet("simtrace", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVarP(&configPath, "config", "c", "scenario.yaml", "path to scenario file")
	flagSet.BoolVar(&showMetrics, "metrics", false, "print the final state in Prometheus text format")
	flagSet.BoolVar(&showVersion, "version", false, "print version and exit")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if showVersion {
		_, err := fmt.Fprintln(stdout, version.String("simtrace"))
		return err
	}

	// Load configuration first (need log level from config)
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}

	log := logger.NewWithWriter(stderr, cfg.LogLevel)
	log.Info("simtrace starting",
		"version", version.Version,
		"config_path", configPath,
		"tasks", len(cfg.Tasks),
		"steps", len(cfg.Steps),
		"start_millis", cfg.Clock.StartMillis)

	runner, err := scenario.New(cfg, log)
	if err != nil {
		return err
	}

	trace, runErr := runner.Run()
	if _, err := trace.WriteTo(stdout); err != nil {
		return fmt.Errorf("failed to write trace: %w", err)
	}

	if showMetrics {
		if err := writeMetrics(stdout, runner); err != nil {
			return err
		}
	}

	return runErr
}

// writeMetrics dumps the runner's clock and task state in the Prometheus text format
func writeMetrics(w io.Writer, runner *scenario.Runner) error {
	reg := prometheus.NewRegistry()
	if err := reg.Register(collector.NewTaskCollector(runner.Clock(), runner.Registry())); err != nil {
		return fmt.Errorf("failed to register collector: %w", err)
	}

	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return nil
}
