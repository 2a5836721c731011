package core

import (
	"fmt"
	"math"
)

// FillMethod selects how remaining NaN values are propagated.
type FillMethod string

const (
	FillNone     FillMethod = ""
	FillForward  FillMethod = "ffill"
	FillBackward FillMethod = "bfill"
)

// Post describes the optional post-processing applied to every output line:
// a positional shift followed by NaN filling.
type Post struct {
	// Offset shifts the result by this many positions. Positive values delay
	// the series; vacated slots become NaN.
	Offset int `yaml:"offset"`
	// Fill, when non-nil, replaces NaN with a constant.
	Fill *float64 `yaml:"fill"`
	// Method propagates valid values into NaN gaps.
	Method FillMethod `yaml:"fill_method"`
}

// Validate rejects unknown fill methods.
func (p Post) Validate() error {
	switch p.Method {
	case FillNone, FillForward, FillBackward:
		return nil
	default:
		return fmt.Errorf("%w: unknown fill method %q", ErrConfiguration, p.Method)
	}
}

// Apply returns a post-processed copy of values. The input is never modified.
func (p Post) Apply(values []float64) []float64 {
	out := Shift(values, p.Offset)
	if p.Fill != nil {
		FillValue(out, *p.Fill)
	}
	switch p.Method {
	case FillForward:
		FillForwardInPlace(out)
	case FillBackward:
		FillBackwardInPlace(out)
	}
	return out
}

// ApplySeries post-processes the values of s and returns the new series.
func (p Post) ApplySeries(s Series) Series {
	s.Values = p.Apply(s.Values)
	return s
}

// ApplyFrame post-processes every column of f.
func (p Post) ApplyFrame(f Frame) Frame {
	cols := make([]Series, len(f.Columns))
	for i, c := range f.Columns {
		cols[i] = p.ApplySeries(c)
	}
	f.Columns = cols
	return f
}

// Shift returns values moved by offset positions, padding with NaN.
func Shift(values []float64, offset int) []float64 {
	n := len(values)
	if offset == 0 {
		return copySlice(values)
	}
	out := NaNs(n)
	if offset > 0 {
		if offset < n {
			copy(out[offset:], values[:n-offset])
		}
		return out
	}
	offset = -offset
	if offset < n {
		copy(out[:n-offset], values[offset:])
	}
	return out
}

// FillValue replaces every NaN in values with v.
func FillValue(values []float64, v float64) {
	for i := range values {
		if math.IsNaN(values[i]) {
			values[i] = v
		}
	}
}

// FillForwardInPlace carries the last valid value over subsequent NaNs.
func FillForwardInPlace(values []float64) {
	last := math.NaN()
	for i, v := range values {
		if math.IsNaN(v) {
			values[i] = last
			continue
		}
		last = v
	}
}

// FillBackwardInPlace carries the next valid value back over preceding NaNs.
func FillBackwardInPlace(values []float64) {
	next := math.NaN()
	for i := len(values) - 1; i >= 0; i-- {
		if math.IsNaN(values[i]) {
			values[i] = next
			continue
		}
		next = values[i]
	}
}
