package momentum

import (
	"fmt"

	"github.com/evdnx/tacore/indicator/backend"
	"github.com/evdnx/tacore/indicator/core"
	"github.com/evdnx/tacore/indicator/ma"
)

const (
	DefaultMACDFastPeriod   = 12
	DefaultMACDSlowPeriod   = 26
	DefaultMACDSignalPeriod = 9
)

// MACDParams configures the Moving Average Convergence Divergence lines.
type MACDParams struct {
	Fast      int                `yaml:"fast"`
	Slow      int                `yaml:"slow"`
	Signal    int                `yaml:"signal"`
	Backend   backend.Preference `yaml:"-"`
	core.Post `yaml:",inline"`
}

// DefaultMACDParams returns the standard 12/26/9 periods.
func DefaultMACDParams() MACDParams {
	return MACDParams{Fast: DefaultMACDFastPeriod, Slow: DefaultMACDSlowPeriod, Signal: DefaultMACDSignalPeriod}
}

func (p MACDParams) normalize() (MACDParams, error) {
	if p.Fast <= 0 {
		p.Fast = DefaultMACDFastPeriod
	}
	if p.Slow <= 0 {
		p.Slow = DefaultMACDSlowPeriod
	}
	if p.Signal <= 0 {
		p.Signal = DefaultMACDSignalPeriod
	}
	if p.Slow < p.Fast {
		p.Fast, p.Slow = p.Slow, p.Fast
	}
	return p, p.Post.Validate()
}

// Validate reports an unknown fill method.
func (p MACDParams) Validate() error {
	_, err := p.normalize()
	return err
}

// MACD computes the MACD line (fast EMA minus slow EMA), its signal line (an
// EMA of the MACD line) and the histogram (MACD minus signal). Periods given
// in the wrong order are swapped.
func MACD(sel *backend.Selector, close core.Series, p MACDParams) (core.Frame, error) {
	p, err := p.normalize()
	if err != nil {
		return core.Frame{}, fmt.Errorf("macd: %w", err)
	}
	mp := ma.Params{Backend: p.Backend}
	fast, err := ma.MA(sel, ma.EMA, close.Values, p.Fast, mp)
	if err != nil {
		return core.Frame{}, fmt.Errorf("macd: fast ema: %w", err)
	}
	slow, err := ma.MA(sel, ma.EMA, close.Values, p.Slow, mp)
	if err != nil {
		return core.Frame{}, fmt.Errorf("macd: slow ema: %w", err)
	}

	line := make([]float64, len(fast))
	for i := range line {
		line[i] = fast[i] - slow[i]
	}
	signal, err := ma.MA(sel, ma.EMA, line, p.Signal, mp)
	if err != nil {
		return core.Frame{}, fmt.Errorf("macd: signal ema: %w", err)
	}
	hist := make([]float64, len(line))
	for i := range hist {
		hist[i] = line[i] - signal[i]
	}

	props := core.Name("", p.Fast, p.Slow, p.Signal)
	col := func(prefix string, v []float64) core.Series {
		return core.Series{Name: prefix + props, Category: core.CategoryMomentum, Index: core.CopyIndex(close.Index), Values: v}
	}
	return p.Post.ApplyFrame(core.Frame{
		Name:     "MACD" + props,
		Category: core.CategoryMomentum,
		Columns:  []core.Series{col("MACD", line), col("MACDh", hist), col("MACDs", signal)},
	}), nil
}
