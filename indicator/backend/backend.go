// Package backend decides, per call, whether an indicator runs on the
// optimized TA-Lib backend or on its algorithmic implementation.
package backend

import (
	"context"
	"log/slog"

	"github.com/evdnx/tacore/indicator/native"
)

// Kind identifies the implementation that computed a result.
type Kind int

const (
	Algorithmic Kind = iota
	Optimized
)

func (k Kind) String() string {
	if k == Optimized {
		return "optimized"
	}
	return "algorithmic"
}

// Preference is the caller's per-call backend wish. The zero value prefers
// the optimized backend.
type Preference int

const (
	PreferOptimized Preference = iota
	PreferAlgorithmic
)

// Availability records which optional backends this process may use. It is
// built once at startup and only read afterwards.
type Availability struct {
	TALib bool
}

// Detect reports the backends compiled into the binary.
func Detect() Availability {
	return Availability{TALib: native.Compiled}
}

// Restrict returns the availability with TA-Lib disabled unless allowed.
// Configuration can switch a backend off but never on when it is missing.
func (a Availability) Restrict(allowTALib bool) Availability {
	a.TALib = a.TALib && allowTALib
	return a
}

// Recorder receives backend decisions, typically a metrics sink.
type Recorder interface {
	RecordSelection(indicator string, kind Kind)
}

// Selector carries the immutable availability (and optional observers) into
// every indicator call. A nil *Selector is valid and always selects the
// algorithmic path.
type Selector struct {
	avail    Availability
	logger   *slog.Logger
	recorder Recorder
}

// Option configures a Selector.
type Option func(*Selector)

// WithLogger sets the logger used for debug-level decision traces.
func WithLogger(l *slog.Logger) Option {
	return func(s *Selector) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRecorder attaches a decision recorder.
func WithRecorder(r Recorder) Option {
	return func(s *Selector) { s.recorder = r }
}

// NewSelector builds a selector over the given availability.
func NewSelector(avail Availability, opts ...Option) *Selector {
	s := &Selector{avail: avail, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Default returns a selector over everything compiled into the binary.
func Default() *Selector { return NewSelector(Detect()) }

// Availability returns the selector's availability flags.
func (s *Selector) Availability() Availability {
	if s == nil {
		return Availability{}
	}
	return s.avail
}

// Choose picks the implementation for one call. bypass forces the
// algorithmic path when the request carries a parameter the optimized
// backend cannot honour; that takes precedence over the preference.
func (s *Selector) Choose(indicator string, pref Preference, bypass bool) Kind {
	kind := Algorithmic
	if s != nil && s.avail.TALib && pref == PreferOptimized && !bypass {
		kind = Optimized
	}
	if s == nil {
		return kind
	}
	if s.logger.Enabled(context.Background(), slog.LevelDebug) {
		s.logger.Debug("backend selected",
			slog.String("indicator", indicator),
			slog.String("backend", kind.String()),
			slog.Bool("talib_available", s.avail.TALib),
			slog.Bool("bypass", bypass),
		)
	}
	if s.recorder != nil {
		s.recorder.RecordSelection(indicator, kind)
	}
	return kind
}
