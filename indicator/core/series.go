package core

import (
	"fmt"
	"math"
)

// Indicator categories, used by catalog consumers to group outputs.
const (
	CategoryTrend      = "trend"
	CategoryCycles     = "cycles"
	CategoryMomentum   = "momentum"
	CategoryOverlap    = "overlap"
	CategoryStatistics = "statistics"
	CategoryTransform  = "transform"
	CategoryVolatility = "volatility"
)

// Series is a named, optionally time-indexed float sequence.
type Series struct {
	Name     string
	Category string
	Index    []int64
	Values   []float64
}

// Len returns the number of samples.
func (s Series) Len() int { return len(s.Values) }

// FirstValid returns the position of the first non-NaN value, or Len() when
// every value is NaN.
func (s Series) FirstValid() int { return FirstValid(s.Values) }

// Frame groups the aligned outputs of a multi-line indicator.
type Frame struct {
	Name     string
	Category string
	Columns  []Series
}

// Column returns the column with the given name.
func (f Frame) Column(name string) (Series, bool) {
	for _, c := range f.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Series{}, false
}

// OHLCV holds aligned bar data. Index and Volume are optional.
type OHLCV struct {
	Index  []int64
	Open   []float64
	High   []float64
	Low    []float64
	Close  []float64
	Volume []float64
}

// Len returns the number of bars, taken from Close.
func (o OHLCV) Len() int { return len(o.Close) }

// Validate checks that every populated column has the same length.
func (o OHLCV) Validate() error {
	n := len(o.Close)
	cols := []struct {
		name string
		n    int
		set  bool
	}{
		{"index", len(o.Index), o.Index != nil},
		{"open", len(o.Open), o.Open != nil},
		{"high", len(o.High), o.High != nil},
		{"low", len(o.Low), o.Low != nil},
		{"volume", len(o.Volume), o.Volume != nil},
	}
	for _, c := range cols {
		if c.set && c.n != n {
			return fmt.Errorf("%w: %s has %d values, close has %d", ErrMisaligned, c.name, c.n, n)
		}
	}
	return nil
}

// Aligned returns ErrMisaligned unless all slices share one length.
func Aligned(series ...[]float64) error {
	if len(series) == 0 {
		return nil
	}
	n := len(series[0])
	for i, s := range series[1:] {
		if len(s) != n {
			return fmt.Errorf("%w: input %d has %d values, want %d", ErrMisaligned, i+1, len(s), n)
		}
	}
	return nil
}

// NaNs returns a slice of n NaN values.
func NaNs(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

// FillNaN overwrites s[from:to] with NaN, clamping the bounds to the slice.
func FillNaN(s []float64, from, to int) {
	if from < 0 {
		from = 0
	}
	if to > len(s) {
		to = len(s)
	}
	for i := from; i < to; i++ {
		s[i] = math.NaN()
	}
}

// FirstValid returns the index of the first non-NaN value in s, or len(s).
func FirstValid(s []float64) int {
	for i, v := range s {
		if !math.IsNaN(v) {
			return i
		}
	}
	return len(s)
}

// LeadingNaNs counts the NaN values before the first valid sample.
func LeadingNaNs(s []float64) int { return FirstValid(s) }

func copySlice(src []float64) []float64 {
	if src == nil {
		return nil
	}
	dst := make([]float64, len(src))
	copy(dst, src)
	return dst
}

// CopySlice returns a copy of src, or nil for nil input.
func CopySlice(src []float64) []float64 {
	return copySlice(src)
}

// CopyIndex returns a copy of an index slice.
func CopyIndex(src []int64) []int64 {
	if src == nil {
		return nil
	}
	dst := make([]int64, len(src))
	copy(dst, src)
	return dst
}
