// Package volatility holds band and range indicators.
package volatility

import (
	"fmt"

	"github.com/evdnx/tacore/indicator/backend"
	"github.com/evdnx/tacore/indicator/core"
	"github.com/evdnx/tacore/indicator/ma"
	"github.com/evdnx/tacore/indicator/statistics"
)

const (
	DefaultBollingerPeriod     = 20
	DefaultBollingerMultiplier = 2.0
)

// BBandsParams configures Bollinger Bands.
type BBandsParams struct {
	Length int     `yaml:"length"`
	Std    float64 `yaml:"std"`
	// Ddof of the deviation. Nil means 0, the population form.
	Ddof      *int               `yaml:"ddof"`
	MAMode    ma.Mode            `yaml:"mamode"`
	Backend   backend.Preference `yaml:"-"`
	core.Post `yaml:",inline"`
}

// DefaultBBandsParams returns the 20-bar, two deviation configuration.
func DefaultBBandsParams() BBandsParams {
	return BBandsParams{Length: DefaultBollingerPeriod, Std: DefaultBollingerMultiplier, MAMode: ma.SMA}
}

func (p BBandsParams) normalize() (BBandsParams, error) {
	if p.Length <= 0 {
		p.Length = DefaultBollingerPeriod
	}
	if p.Std <= 0 {
		p.Std = DefaultBollingerMultiplier
	}
	m, err := ma.Resolve(p.MAMode, ma.SMA)
	if err != nil {
		return p, err
	}
	p.MAMode = m
	return p, p.Post.Validate()
}

// Validate reports an unknown mamode or fill method.
func (p BBandsParams) Validate() error {
	_, err := p.normalize()
	return err
}

// BBands computes lower, middle and upper bands around a moving average,
// plus the bandwidth (percent of the middle band) and %B.
func BBands(sel *backend.Selector, close core.Series, p BBandsParams) (core.Frame, error) {
	p, err := p.normalize()
	if err != nil {
		return core.Frame{}, fmt.Errorf("bbands: %w", err)
	}
	ddof := 0
	if p.Ddof != nil {
		ddof = *p.Ddof
	}

	mid, err := ma.MA(sel, p.MAMode, close.Values, p.Length, ma.Params{Backend: p.Backend})
	if err != nil {
		return core.Frame{}, fmt.Errorf("bbands: %w", err)
	}
	dev, err := statistics.Stdev(sel, close, statistics.StdevParams{Length: p.Length, Ddof: &ddof, Backend: p.Backend})
	if err != nil {
		return core.Frame{}, fmt.Errorf("bbands: %w", err)
	}

	n := close.Len()
	lower, upper := make([]float64, n), make([]float64, n)
	width, percent := make([]float64, n), make([]float64, n)
	for i := 0; i < n; i++ {
		d := p.Std * dev.Values[i]
		lower[i] = mid[i] - d
		upper[i] = mid[i] + d
		width[i] = 100 * (upper[i] - lower[i]) / mid[i]
		percent[i] = (close.Values[i] - lower[i]) / (upper[i] - lower[i])
	}

	props := core.Name("", p.Length, p.Std)
	col := func(prefix string, v []float64) core.Series {
		return core.Series{Name: prefix + props, Category: core.CategoryVolatility, Index: core.CopyIndex(close.Index), Values: v}
	}
	return p.Post.ApplyFrame(core.Frame{
		Name:     "BBANDS" + props,
		Category: core.CategoryVolatility,
		Columns: []core.Series{
			col("BBL", lower), col("BBM", mid), col("BBU", upper), col("BBB", width), col("BBP", percent),
		},
	}), nil
}
