// Package suite runs a configured list of indicators over one frame of bars.
package suite

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/evdnx/tacore/config"
	"github.com/evdnx/tacore/indicator/backend"
	"github.com/evdnx/tacore/indicator/core"
	"github.com/evdnx/tacore/internal/logger"
)

// Observer receives the wall time of every indicator run.
type Observer interface {
	ObserveCompute(indicator string, d time.Duration)
}

// Result is the output of one suite entry.
type Result struct {
	Label   string
	Kind    string
	Name    string
	Series  []core.Series
	Elapsed time.Duration
}

// IndicatorSuite holds the resolved entries of a configuration. It is
// immutable once built and may run concurrently over different frames.
type IndicatorSuite struct {
	jobs     []job
	sel      *backend.Selector
	observer Observer
	logger   *slog.Logger
	workers  int
}

type job struct {
	label string
	kind  string
	run   computeFunc
}

// Option configures an IndicatorSuite.
type Option func(*IndicatorSuite)

// WithSelector sets the backend selector shared by every entry.
func WithSelector(sel *backend.Selector) Option {
	return func(s *IndicatorSuite) { s.sel = sel }
}

// WithObserver attaches a compute-time observer.
func WithObserver(o Observer) Option {
	return func(s *IndicatorSuite) { s.observer = o }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *IndicatorSuite) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithWorkers bounds how many entries compute at once. Non-positive values
// mean GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(s *IndicatorSuite) { s.workers = n }
}

// NewIndicatorSuite resolves specs against the indicator registry. pref is
// the preference of entries that do not name a backend. Every entry is
// checked before any is run.
func NewIndicatorSuite(specs []config.IndicatorSpec, pref backend.Preference, opts ...Option) (*IndicatorSuite, error) {
	s := &IndicatorSuite{sel: backend.Default(), logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	if s.workers <= 0 {
		s.workers = runtime.GOMAXPROCS(0)
	}
	for i, spec := range specs {
		run, err := build(spec, pref)
		if err != nil {
			return nil, fmt.Errorf("suite[%d]: %w", i, err)
		}
		s.jobs = append(s.jobs, job{label: spec.Label, kind: spec.Kind, run: run})
	}
	return s, nil
}

// NewIndicatorSuiteWithConfig builds a suite from a loaded configuration.
// The TA-Lib backend is used only when it is both compiled in and allowed.
func NewIndicatorSuiteWithConfig(cfg *config.Config, opts ...Option) (*IndicatorSuite, error) {
	pref := backend.PreferAlgorithmic
	if cfg.Backends.PreferOptimized {
		pref = backend.PreferOptimized
	}
	sel := backend.NewSelector(backend.Detect().Restrict(cfg.Backends.TALib))
	return NewIndicatorSuite(cfg.Suite, pref, append([]Option{WithSelector(sel)}, opts...)...)
}

// Len returns the number of entries.
func (s *IndicatorSuite) Len() int { return len(s.jobs) }

// Run computes every entry over bars. Entries run in parallel; results come
// back in declaration order. The first failing entry, in declaration order,
// decides the returned error. Cancelling ctx stops entries that have not
// started yet.
func (s *IndicatorSuite) Run(ctx context.Context, bars core.OHLCV) ([]Result, error) {
	if err := bars.Validate(); err != nil {
		return nil, err
	}
	log := logger.FromContext(ctx, s.logger)

	results := make([]Result, len(s.jobs))
	errs := make([]error, len(s.jobs))
	sem := make(chan struct{}, s.workers)

	var wg sync.WaitGroup
	for i, j := range s.jobs {
		wg.Add(1)
		go func(i int, j job) {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				errs[i] = ctx.Err()
				return
			}
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return
			}

			start := time.Now()
			name, out, err := j.run(s.sel, bars)
			elapsed := time.Since(start)
			if err != nil {
				errs[i] = fmt.Errorf("suite[%d]: %w", i, err)
				return
			}
			if s.observer != nil {
				s.observer.ObserveCompute(name, elapsed)
			}
			log.Debug("indicator computed", "kind", j.kind, "name", name, "bars", bars.Len(), "elapsed", elapsed)
			results[i] = Result{Label: j.label, Kind: j.kind, Name: name, Series: out, Elapsed: elapsed}
		}(i, j)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	log.Info("suite run complete", "indicators", len(results), "bars", bars.Len())
	return results, nil
}

// PlotData flattens results into plot series, skipping warm-up NaNs.
func PlotData(results []Result) []core.PlotData {
	var out []core.PlotData
	for _, r := range results {
		for _, s := range r.Series {
			out = append(out, s.PlotData())
		}
	}
	return out
}
