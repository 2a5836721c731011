package statistics

import (
	"fmt"
	"math"

	"github.com/evdnx/tacore/indicator/core"
)

// MADParams configures the rolling mean absolute deviation.
type MADParams struct {
	Length int `yaml:"length"`
	// MinPeriods is the number of leading samples required before a partial
	// window produces output. Zero means Length.
	MinPeriods int `yaml:"min_periods"`
	core.Post  `yaml:",inline"`
}

// DefaultMADParams returns the 30-bar configuration.
func DefaultMADParams() MADParams { return MADParams{Length: DefaultLength} }

// MAD computes the mean absolute deviation from the mean over each window.
func MAD(close core.Series, p MADParams) (core.Series, error) {
	if err := p.Post.Validate(); err != nil {
		return core.Series{}, fmt.Errorf("mad: %w", err)
	}
	n := lengthOrDefault(p.Length)
	minp := p.MinPeriods
	if minp <= 0 || minp > n {
		minp = n
	}

	x := close.Values
	out := core.NaNs(len(x))
	for i := minp - 1; i < len(x); i++ {
		from := i - n + 1
		if from < 0 {
			from = 0
		}
		w := x[from : i+1]
		mean, ok := windowMean(w)
		if !ok {
			continue
		}
		var dev float64
		for _, v := range w {
			dev += math.Abs(v - mean)
		}
		out[i] = dev / float64(len(w))
	}
	return p.Post.ApplySeries(core.Series{
		Name:     core.Name("MAD", n),
		Category: core.CategoryStatistics,
		Index:    core.CopyIndex(close.Index),
		Values:   out,
	}), nil
}
