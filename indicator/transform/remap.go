// Package transform rescales and reshapes an input series.
package transform

import (
	"fmt"

	"github.com/evdnx/tacore/indicator/core"
)

// RemapParams describes a linear map from [FromMin, FromMax] onto
// [ToMin, ToMax]. Nil bounds take the defaults 0, 100, -1 and 1.
type RemapParams struct {
	FromMin   *float64 `yaml:"from_min"`
	FromMax   *float64 `yaml:"from_max"`
	ToMin     *float64 `yaml:"to_min"`
	ToMax     *float64 `yaml:"to_max"`
	core.Post `yaml:",inline"`
}

func or(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

// Bounds returns the resolved source and target ranges.
func (p RemapParams) Bounds() (fromMin, fromMax, toMin, toMax float64) {
	return or(p.FromMin, 0), or(p.FromMax, 100), or(p.ToMin, -1), or(p.ToMax, 1)
}

// Remap linearly maps close from one range onto another. An empty source
// range yields NaN.
func Remap(close core.Series, p RemapParams) (core.Series, error) {
	if err := p.Post.Validate(); err != nil {
		return core.Series{}, fmt.Errorf("remap: %w", err)
	}
	fromMin, fromMax, toMin, toMax := p.Bounds()
	return p.Post.ApplySeries(core.Series{
		Name:     core.Name("REMAP", fromMin, fromMax, toMin, toMax),
		Category: core.CategoryTransform,
		Index:    core.CopyIndex(close.Index),
		Values:   remap(close.Values, fromMin, fromMax, toMin, toMax),
	}), nil
}

func remap(x []float64, fromMin, fromMax, toMin, toMax float64) []float64 {
	frange := fromMax - fromMin
	if frange == 0 {
		return core.NaNs(len(x))
	}
	scale := (toMax - toMin) / frange
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = toMin + scale*(v-fromMin)
	}
	return out
}
