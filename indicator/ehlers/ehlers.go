// Package ehlers implements the recursive filter shared by John Ehlers'
// Trendflex and Reflex oscillators: a two-pole SuperSmoother pre-filter, a
// windowed sum of differences against the filtered history, and an adaptive
// mean-square normalisation of that sum.
package ehlers

import (
	"fmt"
	"math"

	"github.com/evdnx/tacore/indicator/core"
)

// Ehlers' published constants. They are truncated on purpose; callers pass
// them explicitly and they are used verbatim.
const (
	DefaultPi    = 3.14159
	DefaultSqrt2 = 1.414
)

// Kernel selects the windowed summation.
type Kernel int

const (
	// TrendKernel sums f[i] - f[i-j] (Trendflex).
	TrendKernel Kernel = iota
	// CycleKernel removes the linear slope across the window before
	// summing (Reflex).
	CycleKernel
)

// FilterParams are the inputs of Filter. They must already be validated:
// Length, Smooth and Alpha strictly positive.
type FilterParams struct {
	Length int     // trend window n
	Smooth int     // SuperSmoother period k
	Alpha  float64 // mean-square adaptation weight
	Pi     float64
	Sqrt2  float64
	Kernel Kernel
}

func (p FilterParams) check() error {
	switch {
	case p.Length <= 0:
		return fmt.Errorf("%w: length must be positive, got %d", core.ErrPrecondition, p.Length)
	case p.Smooth <= 0:
		return fmt.Errorf("%w: smooth must be positive, got %d", core.ErrPrecondition, p.Smooth)
	case !(p.Alpha > 0):
		return fmt.Errorf("%w: alpha must be positive, got %v", core.ErrPrecondition, p.Alpha)
	}
	return nil
}

// Coefficients are the SuperSmoother constants derived from the smoothing
// period. The cosine argument is 180·ratio taken as radians, exactly as the
// published filter is written.
type Coefficients struct {
	A, B, C float64
}

// NewCoefficients derives the filter constants for period k.
func NewCoefficients(k int, pi, sqrt2 float64) Coefficients {
	ratio := 2 * sqrt2 / float64(k)
	a := math.Exp(-pi * ratio)
	b := 2 * a * math.Cos(180*ratio)
	return Coefficients{A: a, B: b, C: a*a - b + 1}
}

// superSmooth fills f with the pre-filtered x. f[0] and f[1] stay zero.
func superSmooth(f, x []float64, co Coefficients) {
	a2 := co.A * co.A
	for i := 2; i < len(x); i++ {
		f[i] = 0.5*co.C*(x[i]+x[i-1]) + co.B*f[i-1] - a2*f[i-2]
	}
}

// SuperSmoother returns the two-pole pre-filter on its own.
func SuperSmoother(x []float64, k int, pi, sqrt2 float64) ([]float64, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: smooth must be positive, got %d", core.ErrPrecondition, k)
	}
	f := make([]float64, len(x))
	superSmooth(f, x, NewCoefficients(k, pi, sqrt2))
	return f, nil
}

// Filter runs the full pipeline over x and returns a slice of len(x). The
// first Length outputs are NaN, and so is everything when len(x) <= 2. Where
// the mean-square accumulator is zero the output is 0 rather than a division
// error.
func Filter(x []float64, p FilterParams) ([]float64, error) {
	if err := p.check(); err != nil {
		return nil, err
	}
	m, n := len(x), p.Length
	if m <= 2 {
		return core.NaNs(m), nil
	}

	// All three buffers live for this call only.
	f := make([]float64, m)
	ms := make([]float64, m)
	y := make([]float64, m)

	superSmooth(f, x, NewCoefficients(p.Smooth, p.Pi, p.Sqrt2))

	fn := float64(n)
	for i := n; i < m; i++ {
		var sum float64
		switch p.Kernel {
		case CycleKernel:
			slope := (f[i-n] - f[i]) / fn
			for j := 1; j < n; j++ {
				sum += f[i] - f[i-j] + float64(j)*slope
			}
		default:
			for j := 1; j < n; j++ {
				sum += f[i] - f[i-j]
			}
		}
		sum /= fn

		ms[i] = p.Alpha*sum*sum + (1-p.Alpha)*ms[i-1]
		if ms[i] != 0 {
			y[i] = sum / math.Sqrt(ms[i])
		}
	}

	core.FillNaN(y, 0, n)
	return y, nil
}
