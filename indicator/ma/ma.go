// Package ma dispatches a moving-average mode to its implementation.
//
// Every mode shares one contract: (mode, data, length, params) in, a slice
// of len(data) out, NaN over the warm-up. Inputs may carry leading NaNs
// (the dispatcher's own output fed back in); computation starts at the first
// valid sample and the prefix stays NaN.
package ma

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/evdnx/tacore/indicator/backend"
	"github.com/evdnx/tacore/indicator/core"
	"github.com/evdnx/tacore/indicator/native"
)

// Mode names an averaging algorithm.
type Mode string

const (
	SMA      Mode = "sma"
	EMA      Mode = "ema"
	WMA      Mode = "wma"
	RMA      Mode = "rma"
	DEMA     Mode = "dema"
	TEMA     Mode = "tema"
	TRIMA    Mode = "trima"
	T3       Mode = "t3"
	HMA      Mode = "hma"
	ZLMA     Mode = "zlma"
	MidPoint Mode = "midpoint"
)

// DefaultMode is used when no mode is given.
const DefaultMode = SMA

// DefaultT3Factor is Tillson's volume factor.
const DefaultT3Factor = 0.7

// ErrUnknownMode is returned for an explicit mode the table does not know.
var ErrUnknownMode = fmt.Errorf("%w: unknown moving average mode", core.ErrConfiguration)

// Params carries the optional settings a mode may read.
type Params struct {
	// T3Factor is the T3 volume factor, 0 < a < 1. Other values mean the
	// default.
	T3Factor float64 `yaml:"t3_factor"`
	// Backend is the caller's backend preference.
	Backend backend.Preference `yaml:"-"`
}

func (p Params) t3Factor() float64 {
	if p.T3Factor > 0 && p.T3Factor < 1 {
		return p.T3Factor
	}
	return DefaultT3Factor
}

type algorithm func(x []float64, length int, p Params) []float64

type entry struct {
	algo      algorithm
	native    native.MAType
	hasNative bool
}

var table = map[Mode]entry{
	SMA:      {algo: func(x []float64, n int, _ Params) []float64 { return sma(x, n) }, native: native.SMA, hasNative: true},
	EMA:      {algo: func(x []float64, n int, _ Params) []float64 { return ema(x, n) }, native: native.EMA, hasNative: true},
	WMA:      {algo: func(x []float64, n int, _ Params) []float64 { return wma(x, n) }, native: native.WMA, hasNative: true},
	RMA:      {algo: func(x []float64, n int, _ Params) []float64 { return rma(x, n) }},
	DEMA:     {algo: func(x []float64, n int, _ Params) []float64 { return dema(x, n) }, native: native.DEMA, hasNative: true},
	TEMA:     {algo: func(x []float64, n int, _ Params) []float64 { return tema(x, n) }, native: native.TEMA, hasNative: true},
	TRIMA:    {algo: func(x []float64, n int, _ Params) []float64 { return trima(x, n) }, native: native.TRIMA, hasNative: true},
	T3:       {algo: func(x []float64, n int, p Params) []float64 { return t3(x, n, p.t3Factor()) }, native: native.T3, hasNative: true},
	HMA:      {algo: func(x []float64, n int, _ Params) []float64 { return hma(x, n) }},
	ZLMA:     {algo: func(x []float64, n int, _ Params) []float64 { return zlma(x, n) }},
	MidPoint: {algo: func(x []float64, n int, _ Params) []float64 { return midpoint(x, n) }, native: native.MidPoint, hasNative: true},
}

// Modes lists every supported mode in lexical order.
func Modes() []Mode {
	out := make([]Mode, 0, len(table))
	for m := range table {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Supported reports whether m names a known mode.
func Supported(m Mode) bool {
	_, ok := table[normalize(m)]
	return ok
}

// HasOptimized reports whether the optimized backend implements m.
func HasOptimized(m Mode) bool {
	return table[normalize(m)].hasNative
}

func normalize(m Mode) Mode {
	return Mode(strings.ToLower(strings.TrimSpace(string(m))))
}

// ParseMode converts an untyped setting (decoded YAML/JSON, CLI input) into
// a Mode. A missing or non-string value selects DefaultMode; a string that
// names no mode is a configuration error.
func ParseMode(v any) (Mode, error) {
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case Mode:
		s = string(t)
	default:
		return DefaultMode, nil
	}
	m := normalize(Mode(s))
	if m == "" {
		return DefaultMode, nil
	}
	if _, ok := table[m]; !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownMode, s)
	}
	return m, nil
}

// MA computes the moving average selected by mode. The empty mode selects
// DefaultMode. sel may be nil, in which case only the algorithmic
// implementations are used.
func MA(sel *backend.Selector, mode Mode, data []float64, length int, p Params) ([]float64, error) {
	m := normalize(mode)
	if m == "" {
		m = DefaultMode
	}
	e, ok := table[m]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownMode, string(mode))
	}
	if length < 1 {
		return nil, fmt.Errorf("%w: moving average length must be at least 1, got %d", core.ErrConfiguration, length)
	}
	if e.hasNative && sel.Choose(strings.ToUpper(string(m)), p.Backend, false) == backend.Optimized {
		return native.MA(e.native, data, length, p.t3Factor()), nil
	}
	return e.algo(data, length, p), nil
}

// IsUnknownMode reports whether err was caused by an unrecognised mode.
func IsUnknownMode(err error) bool { return errors.Is(err, ErrUnknownMode) }

// NativeType maps m to the optimized backend's averaging type, for callers
// that hand a mode through to a composite TA-Lib function.
func NativeType(m Mode) (native.MAType, bool) {
	e, ok := table[normalize(m)]
	if !ok || !e.hasNative {
		return 0, false
	}
	return e.native, true
}

// Resolve validates an explicit mode, mapping the empty mode to fallback.
func Resolve(m Mode, fallback Mode) (Mode, error) {
	n := normalize(m)
	if n == "" {
		n = normalize(fallback)
	}
	if _, ok := table[n]; !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownMode, string(m))
	}
	return n, nil
}
