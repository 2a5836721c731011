// Package statistics holds rolling dispersion measures.
package statistics

import (
	"fmt"
	"math"

	"github.com/evdnx/tacore/indicator/core"
)

const (
	DefaultLength = 30
	DefaultDdof   = 1
)

// VarianceParams configures the rolling variance.
type VarianceParams struct {
	Length int `yaml:"length"`
	// Ddof is the delta degrees of freedom; the divisor is Length-Ddof.
	// Values outside [0, Length) mean the default.
	Ddof      *int `yaml:"ddof"`
	core.Post `yaml:",inline"`
}

// DefaultVarianceParams returns the 30-bar sample variance configuration.
func DefaultVarianceParams() VarianceParams { return VarianceParams{Length: DefaultLength} }

// ddofOrDefault resolves an optional ddof against length.
func ddofOrDefault(d *int, length int) (int, bool) {
	if d == nil || *d < 0 || *d >= length {
		return DefaultDdof, false
	}
	return *d, *d != DefaultDdof
}

func lengthOrDefault(n int) int {
	if n <= 0 {
		return DefaultLength
	}
	return n
}

// Variance computes the rolling variance over Length bars with divisor
// Length-Ddof. Windows containing NaN yield NaN.
func Variance(close core.Series, p VarianceParams) (core.Series, error) {
	if err := p.Post.Validate(); err != nil {
		return core.Series{}, fmt.Errorf("variance: %w", err)
	}
	n := lengthOrDefault(p.Length)
	ddof, _ := ddofOrDefault(p.Ddof, n)
	return p.Post.ApplySeries(core.Series{
		Name:     core.Name("VAR", n),
		Category: core.CategoryStatistics,
		Index:    core.CopyIndex(close.Index),
		Values:   rollingVariance(close.Values, n, ddof),
	}), nil
}

func rollingVariance(x []float64, n, ddof int) []float64 {
	out := core.NaNs(len(x))
	if n-ddof <= 0 {
		return out
	}
	for i := n - 1; i < len(x); i++ {
		w := x[i-n+1 : i+1]
		mean, ok := windowMean(w)
		if !ok {
			continue
		}
		var ss float64
		for _, v := range w {
			d := v - mean
			ss += d * d
		}
		out[i] = ss / float64(n-ddof)
	}
	return out
}

// windowMean returns the mean of w, or false when w holds a NaN.
func windowMean(w []float64) (float64, bool) {
	var sum float64
	for _, v := range w {
		if math.IsNaN(v) {
			return 0, false
		}
		sum += v
	}
	return sum / float64(len(w)), true
}
