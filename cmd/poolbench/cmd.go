package main

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/utkarsh5026/objectpool/benchmarks"
)

type runFlags struct {
	size     int
	repeat   int
	workers  int
	variants []string
	pin      bool
	quiet    bool
	logLevel string
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "poolbench",
		Short:         "Benchmark object pool variants against each other",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newRunCmd(), newListCmd())
	return root
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the pool variants that can be benchmarked",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			renderList(cmd.OutOrStdout(), benchmarks.Names())
		},
	}
}

func newRunCmd() *cobra.Command {
	f := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the workload against the selected variants",
		Long: `Run times four phases against a fresh pool of each variant:

  Take From Empty (parallel)   every take misses and generates
  Give To (parallel)           fill the pool back up to capacity
  Mixed Read/Write (parallel)  alternate takes and gives
  Empty Pool (TryTake)         drain whatever is left

Timings are summed over all repeats and ranked by total.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(cmd, f)
		},
	}

	cmd.Flags().IntVarP(&f.size, "size", "n", 10_000, "Pool capacity and operations per phase")
	cmd.Flags().IntVarP(&f.repeat, "repeat", "r", 3, "Number of runs per variant")
	cmd.Flags().IntVarP(&f.workers, "workers", "w", runtime.GOMAXPROCS(0), "Goroutines in parallel phases")
	cmd.Flags().StringSliceVar(&f.variants, "variants", nil, "Comma separated variants to run (default all)")
	cmd.Flags().BoolVar(&f.pin, "pin", false, "Pin each worker goroutine to a CPU core")
	cmd.Flags().BoolVarP(&f.quiet, "quiet", "q", false, "Hide the progress bar")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "error", "Log level (debug, info, warn, error)")

	return cmd
}

func runBench(cmd *cobra.Command, f *runFlags) error {
	logger, err := newLogger(f.logLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	variants, err := benchmarks.Select(f.variants)
	if err != nil {
		return err
	}
	if f.repeat < 1 {
		return fmt.Errorf("repeat must be at least 1, got %d", f.repeat)
	}

	cfg := benchmarks.Config{Size: f.size, Workers: f.workers, Pin: f.pin}
	logger.Info("starting benchmark",
		zap.Int("variants", len(variants)),
		zap.Int("size", cfg.Size),
		zap.Int("repeat", f.repeat),
		zap.Int("workers", cfg.Workers),
		zap.Bool("pin", cfg.Pin),
	)

	var progress func(string)
	if !f.quiet {
		bar := newProgressBar(cmd, len(variants)*f.repeat)
		progress = func(name string) {
			bar.Describe("Benchmarking " + name)
			_ = bar.Add(1)
		}
		defer func() { _ = bar.Finish() }()
	}

	report, err := benchmarks.Run(cmd.Context(), variants, cfg, f.repeat, progress)
	if err != nil {
		logger.Error("benchmark failed", zap.Error(err))
		return err
	}

	logger.Debug("benchmark finished", zap.Duration("fastest", report.Fastest()))
	return renderReport(cmd.OutOrStdout(), report)
}

func newProgressBar(cmd *cobra.Command, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(cmd.ErrOrStderr()),
		progressbar.OptionSetDescription("Benchmarking"),
		progressbar.OptionSetWidth(50),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
	)
}

// newLogger builds a console logger that writes to stderr at the given level.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.DisableStacktrace = true
	return cfg.Build()
}
