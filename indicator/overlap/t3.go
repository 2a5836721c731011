package overlap

import (
	"fmt"

	"github.com/evdnx/tacore/indicator/backend"
	"github.com/evdnx/tacore/indicator/core"
	"github.com/evdnx/tacore/indicator/ma"
)

// DefaultT3Length is the T3 period used when none is given.
const DefaultT3Length = 10

// T3Params configures Tillson's T3.
type T3Params struct {
	Length int     `yaml:"length"`
	A      float64 `yaml:"a"`
	// Backend is the caller's backend preference.
	Backend   backend.Preference `yaml:"-"`
	core.Post `yaml:",inline"`
}

// DefaultT3Params returns the 10-bar, 0.7 volume factor configuration.
func DefaultT3Params() T3Params {
	return T3Params{Length: DefaultT3Length, A: ma.DefaultT3Factor}
}

func (p T3Params) normalize() T3Params {
	if p.Length <= 0 {
		p.Length = DefaultT3Length
	}
	if !(p.A > 0 && p.A < 1) {
		p.A = ma.DefaultT3Factor
	}
	return p
}

// T3 computes Tillson's T3, a six-fold EMA cascade blended by the volume
// factor a. The result is named T3_{length}_{a}.
func T3(sel *backend.Selector, close core.Series, p T3Params) (core.Series, error) {
	p = p.normalize()
	if err := p.Post.Validate(); err != nil {
		return core.Series{}, fmt.Errorf("t3: %w", err)
	}
	out, err := ma.MA(sel, ma.T3, close.Values, p.Length, ma.Params{T3Factor: p.A, Backend: p.Backend})
	if err != nil {
		return core.Series{}, fmt.Errorf("t3: %w", err)
	}
	return p.Post.ApplySeries(core.Series{
		Name:     core.Name("T3", p.Length, p.A),
		Category: core.CategoryOverlap,
		Index:    core.CopyIndex(close.Index),
		Values:   out,
	}), nil
}
