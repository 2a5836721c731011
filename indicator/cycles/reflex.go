// Package cycles holds oscillators aimed at the cyclical component of price.
package cycles

import (
	"fmt"

	"github.com/evdnx/tacore/indicator/core"
	"github.com/evdnx/tacore/indicator/ehlers"
)

const (
	DefaultReflexLength = 20
	DefaultReflexSmooth = 20
	DefaultReflexAlpha  = 0.04
)

// ReflexParams configures Reflex.
type ReflexParams struct {
	Length    int     `yaml:"length"`
	Smooth    int     `yaml:"smooth"`
	Alpha     float64 `yaml:"alpha"`
	Pi        float64 `yaml:"pi"`
	Sqrt2     float64 `yaml:"sqrt2"`
	core.Post `yaml:",inline"`
}

// DefaultReflexParams returns the published configuration.
func DefaultReflexParams() ReflexParams {
	return ReflexParams{
		Length: DefaultReflexLength,
		Smooth: DefaultReflexSmooth,
		Alpha:  DefaultReflexAlpha,
		Pi:     ehlers.DefaultPi,
		Sqrt2:  ehlers.DefaultSqrt2,
	}
}

func (p ReflexParams) normalize() ReflexParams {
	d := DefaultReflexParams()
	if p.Length <= 0 {
		p.Length = d.Length
	}
	if p.Smooth <= 0 {
		p.Smooth = d.Smooth
	}
	if !(p.Alpha > 0) {
		p.Alpha = d.Alpha
	}
	if !(p.Pi > 0) {
		p.Pi = d.Pi
	}
	if !(p.Sqrt2 > 0) {
		p.Sqrt2 = d.Sqrt2
	}
	return p
}

// Reflex is the cycle companion of Trendflex: the same filter, with the
// window's linear slope removed before summation.
func Reflex(close core.Series, p ReflexParams) (core.Series, error) {
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
		Kernel: ehlers.CycleKernel,
	})
	if err != nil {
		return core.Series{}, fmt.Errorf("reflex: %w", err)
	}
	return core.Series{
		Name:     core.Name("REFLEX", p.Length, p.Smooth, p.Alpha),
		Category: core.CategoryCycles,
		Index:    core.CopyIndex(close.Index),
		Values:   p.Post.Apply(values),
	}, nil
}
