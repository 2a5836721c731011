package trend

import (
	"fmt"

	"github.com/evdnx/tacore/indicator/core"
	"github.com/evdnx/tacore/indicator/ehlers"
)

const (
	DefaultTrendflexLength = 20
	DefaultTrendflexSmooth = 20
	DefaultTrendflexAlpha  = 0.04
)

// TrendflexParams configures Trendflex. Invalid values are replaced by the
// defaults rather than rejected.
type TrendflexParams struct {
	Length int     `yaml:"length"`
	Smooth int     `yaml:"smooth"`
	Alpha  float64 `yaml:"alpha"`
	// Pi and Sqrt2 default to Ehlers' truncated constants; pass more
	// precise values for a more precise filter.
	Pi        float64 `yaml:"pi"`
	Sqrt2     float64 `yaml:"sqrt2"`
	core.Post `yaml:",inline"`
}

// DefaultTrendflexParams returns the published 20/20/0.04 configuration.
func DefaultTrendflexParams() TrendflexParams {
	return TrendflexParams{
		Length: DefaultTrendflexLength,
		Smooth: DefaultTrendflexSmooth,
		Alpha:  DefaultTrendflexAlpha,
		Pi:     ehlers.DefaultPi,
		Sqrt2:  ehlers.DefaultSqrt2,
	}
}

func (p TrendflexParams) normalize() TrendflexParams {
	if p.Length <= 0 {
		p.Length = DefaultTrendflexLength
	}
	if p.Smooth <= 0 {
		p.Smooth = DefaultTrendflexSmooth
	}
	if !(p.Alpha > 0) {
		p.Alpha = DefaultTrendflexAlpha
	}
	if !(p.Pi > 0) {
		p.Pi = ehlers.DefaultPi
	}
	if !(p.Sqrt2 > 0) {
		p.Sqrt2 = ehlers.DefaultSqrt2
	}
	return p
}

// Trendflex is Ehlers' lag-reduced trend oscillator (TASC, February 2020).
// The output is named TRENDFLEX_<length>_<smooth>_<alpha>.
func Trendflex(close core.Series, p TrendflexParams) (core.Series, error) {
	p = p.normalize()
	if err := p.Post.Validate(); err != nil {
		return core.Series{}, err
	}
	values, err := ehlers.Filter(close.Values, ehlers.FilterParams{
		Length: p.Length,
		Smooth: p.Smooth,
		Alpha:  p.Alpha,
		Pi:     p.Pi,
		Sqrt2:  p.Sqrt2,
		Kernel: ehlers.TrendKernel,
	})
	if err != nil {
		return core.Series{}, fmt.Errorf("trendflex: %w", err)
	}
	return core.Series{
		Name:     core.Name("TRENDFLEX", p.Length, p.Smooth, p.Alpha),
		Category: core.CategoryTrend,
		Index:    core.CopyIndex(close.Index),
		Values:   p.Post.Apply(values),
	}, nil
}
