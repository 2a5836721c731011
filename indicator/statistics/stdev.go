package statistics

import (
	"fmt"
	"math"

	"github.com/evdnx/tacore/indicator/backend"
	"github.com/evdnx/tacore/indicator/core"
	"github.com/evdnx/tacore/indicator/native"
)

// StdevParams configures the rolling standard deviation.
type StdevParams struct {
	Length int  `yaml:"length"`
	Ddof   *int `yaml:"ddof"`
	// Backend is the caller's backend preference. A non-default Ddof always
	// takes the algorithmic path.
	Backend   backend.Preference `yaml:"-"`
	core.Post `yaml:",inline"`
}

// DefaultStdevParams returns the 30-bar sample deviation configuration.
func DefaultStdevParams() StdevParams { return StdevParams{Length: DefaultLength} }

// Stdev computes the rolling standard deviation. The optimized backend only
// knows the population form; it is rescaled by sqrt(N/(N-1)) so the default
// sample deviation matches on both paths.
func Stdev(sel *backend.Selector, close core.Series, p StdevParams) (core.Series, error) {
	if err := p.Post.Validate(); err != nil {
		return core.Series{}, fmt.Errorf("stdev: %w", err)
	}
	n := lengthOrDefault(p.Length)
	ddof, custom := ddofOrDefault(p.Ddof, n)

	var out []float64
	if sel.Choose("STDEV", p.Backend, custom || n < 2) == backend.Optimized {
		out = native.StdDev(close.Values, n, math.Sqrt(float64(n)/float64(n-ddof)))
	} else {
		out = rollingVariance(close.Values, n, ddof)
		for i, v := range out {
			out[i] = math.Sqrt(v)
		}
	}
	return p.Post.ApplySeries(core.Series{
		Name:     core.Name("STDEV", n),
		Category: core.CategoryStatistics,
		Index:    core.CopyIndex(close.Index),
		Values:   out,
	}), nil
}
