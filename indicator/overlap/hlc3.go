// Package overlap holds indicators plotted on the price axis.
package overlap

import (
	"fmt"

	"github.com/evdnx/tacore/indicator/backend"
	"github.com/evdnx/tacore/indicator/core"
	"github.com/evdnx/tacore/indicator/native"
)

// HLC3Params configures the typical price.
type HLC3Params struct {
	Backend   backend.Preference `yaml:"-"`
	core.Post `yaml:",inline"`
}

// HLC3 computes the typical price (high + low + close) / 3.
func HLC3(sel *backend.Selector, bars core.OHLCV, p HLC3Params) (core.Series, error) {
	if err := p.Post.Validate(); err != nil {
		return core.Series{}, fmt.Errorf("hlc3: %w", err)
	}
	if err := core.Aligned(bars.High, bars.Low, bars.Close); err != nil {
		return core.Series{}, fmt.Errorf("hlc3: %w", err)
	}

	var out []float64
	if sel.Choose("HLC3", p.Backend, false) == backend.Optimized {
		out = native.TypPrice(bars.High, bars.Low, bars.Close)
	} else {
		out = make([]float64, bars.Len())
		for i := range out {
			out[i] = (bars.High[i] + bars.Low[i] + bars.Close[i]) / 3
		}
	}
	return p.Post.ApplySeries(core.Series{
		Name:     "HLC3",
		Category: core.CategoryOverlap,
		Index:    core.CopyIndex(bars.Index),
		Values:   out,
	}), nil
}
