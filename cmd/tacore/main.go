// Package main is the tacore command: it runs a configured indicator suite
// over OHLCV bars read from CSV.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/evdnx/tacore/config"
	"github.com/evdnx/tacore/indicator/backend"
	"github.com/evdnx/tacore/indicator/core"
	"github.com/evdnx/tacore/internal/csvio"
	"github.com/evdnx/tacore/internal/logger"
	"github.com/evdnx/tacore/metrics"
	"github.com/evdnx/tacore/suite"
)

// Version information (set by build flags).
var Version = "0.1.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return 1
	}
	switch args[0] {
	case "version", "-v", "--version":
		fmt.Fprintf(stdout, "tacore version %s (talib compiled in: %t)\n", Version, backend.Detect().TALib)
		return 0
	case "help", "-h", "--help":
		printUsage(stdout)
		return 0
	case "kinds":
		fmt.Fprintln(stdout, strings.Join(suite.Kinds(), "\n"))
		return 0
	case "validate":
		return cmdValidate(args[1:], stdout, stderr)
	case "run":
		return cmdRun(args[1:], stdout, stderr)
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		printUsage(stderr)
		return 1
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `tacore - technical indicators over OHLCV bars

Usage:
  tacore <command> [options]

Commands:
  run        Compute the configured suite over a CSV file
  validate   Validate a configuration file
  kinds      List the indicator kinds a suite may use
  version    Show version information

Examples:
  tacore run -config suite.yaml -input ohlcv.csv -format json
  tacore run -config suite.yaml -input ohlcv.csv -metrics-addr :9102 -hold

Environment (a .env file is honoured):
  TACORE_LOG_LEVEL, TACORE_TALIB, TACORE_METRICS_ADDR`)
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	env, err := config.LoadEnv()
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(env)
	return cfg, cfg.Validate()
}

func cmdValidate(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "suite.yaml", "Path to configuration file")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := loadConfig(*configPath)
	if err == nil {
		_, err = suite.NewIndicatorSuiteWithConfig(cfg)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		return 1
	}
	fmt.Fprintln(stdout, "Configuration is valid!")
	fmt.Fprintf(stdout, "  Indicators: %d\n", len(cfg.Suite))
	fmt.Fprintf(stdout, "  TA-Lib allowed: %t\n", cfg.Backends.TALib)
	return 0
}

func cmdRun(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "suite.yaml", "Path to configuration file")
	inputPath := fs.String("input", "", "Path to OHLCV CSV file (required)")
	format := fs.String("format", "json", "Output format: json, csv")
	metricsAddr := fs.String("metrics-addr", "", "Serve Prometheus metrics on this address")
	hold := fs.Bool("hold", false, "Keep serving metrics after the run until interrupted")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *inputPath == "" {
		fmt.Fprintln(stderr, "Error: -input is required")
		fs.Usage()
		return 2
	}
	if *format != "json" && *format != "csv" {
		fmt.Fprintf(stderr, "Error: unknown format %q\n", *format)
		return 2
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		return 1
	}
	if *metricsAddr != "" {
		cfg.Metrics.Enabled = true
		cfg.Metrics.Addr = *metricsAddr
	}
	level, _ := config.ParseLevel(cfg.Logging.Level)
	log := logger.Init("tacore", level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithRunID(ctx, logger.NewRunID())

	opts := []suite.Option{suite.WithLogger(log)}
	var srv *metrics.Server
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		rec, err := metrics.NewRecorder(reg)
		if err != nil {
			log.Error("register metrics", "err", err)
			return 1
		}
		sel := backend.NewSelector(backend.Detect().Restrict(cfg.Backends.TALib),
			backend.WithLogger(log), backend.WithRecorder(rec))
		opts = append(opts, suite.WithSelector(sel), suite.WithObserver(rec))

		srv = metrics.NewServer(metrics.ServerConfig{Addr: cfg.Metrics.Addr}, reg, log)
		srv.Start()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	} else {
		sel := backend.NewSelector(backend.Detect().Restrict(cfg.Backends.TALib), backend.WithLogger(log))
		opts = append(opts, suite.WithSelector(sel))
	}

	s, err := suite.NewIndicatorSuiteWithConfig(cfg, opts...)
	if err != nil {
		logger.FromContext(ctx, log).Error("build suite", "err", err)
		return 1
	}
	bars, err := csvio.ReadFile(*inputPath)
	if err != nil {
		logger.FromContext(ctx, log).Error("read input", "path", *inputPath, "err", err)
		return 1
	}
	results, err := s.Run(ctx, bars)
	if err != nil {
		logger.FromContext(ctx, log).Error("run suite", "err", err)
		return 1
	}

	plots := suite.PlotData(results)
	var out string
	if *format == "csv" {
		out, err = core.FormatPlotDataCSV(plots)
	} else {
		out, err = core.FormatPlotDataJSON(plots)
	}
	if err != nil {
		logger.FromContext(ctx, log).Error("format output", "err", err)
		return 1
	}
	fmt.Fprintln(stdout, out)

	if srv != nil && *hold {
		logger.FromContext(ctx, log).Info("holding for metrics scrapes; interrupt to exit", "addr", cfg.Metrics.Addr)
		<-ctx.Done()
	}
	return 0
}
