package transform

import (
	"fmt"
	"math"

	"github.com/evdnx/tacore/indicator/core"
)

const (
	DefaultFisherAmp          = 1.0
	DefaultFisherSignalOffset = 1
)

// InverseFisherParams configures the inverse Fisher transform.
type InverseFisherParams struct {
	// Amp scales the input before the transform. Zero means 1.
	Amp float64 `yaml:"amp"`
	// SignalOffset delays the signal line. Non-positive values mean 1.
	SignalOffset int `yaml:"signal_offset"`
	core.Post    `yaml:",inline"`
}

// InverseFisher maps close into (-1, 1) with (e^(amp*x) - 1) / (e^(amp*x) + 1).
// Input not already inside [-1, 1] is first remapped from its own min/max
// onto that range. The signal line is the result delayed by SignalOffset.
func InverseFisher(close core.Series, p InverseFisherParams) (core.Frame, error) {
	if err := p.Post.Validate(); err != nil {
		return core.Frame{}, fmt.Errorf("inverse fisher: %w", err)
	}
	amp := p.Amp
	if amp == 0 {
		amp = DefaultFisherAmp
	}
	so := p.SignalOffset
	if so <= 0 {
		so = DefaultFisherSignalOffset
	}

	x := close.Values
	if lo, hi, ok := bounds(x); ok && (lo < -1 || hi > 1) {
		x = remap(x, lo, hi, -1, 1)
	}
	out := make([]float64, len(x))
	for i, v := range x {
		e := math.Exp(amp * v)
		switch {
		case math.IsInf(e, 1):
			out[i] = 1
		default:
			out[i] = (e - 1) / (e + 1)
		}
	}

	props := core.Name("", amp)
	return p.Post.ApplyFrame(core.Frame{
		Name:     "INVFISHER" + props,
		Category: core.CategoryTransform,
		Columns: []core.Series{
			{Name: "INVFISHER" + props, Category: core.CategoryTransform, Index: core.CopyIndex(close.Index), Values: out},
			{Name: "INVFISHERs" + props, Category: core.CategoryTransform, Index: core.CopyIndex(close.Index), Values: core.Shift(out, so)},
		},
	}), nil
}

// bounds returns the min and max of the non-NaN values of x.
func bounds(x []float64) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range x {
		if math.IsNaN(v) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
		ok = true
	}
	return lo, hi, ok
}
