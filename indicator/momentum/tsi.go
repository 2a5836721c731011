package momentum

import (
	"fmt"
	"math"

	"github.com/evdnx/tacore/indicator/backend"
	"github.com/evdnx/tacore/indicator/core"
	"github.com/evdnx/tacore/indicator/ma"
)

const (
	DefaultTSIFast   = 13
	DefaultTSISlow   = 25
	DefaultTSISignal = 13
	DefaultTSIScalar = 100.0
	DefaultTSIDrift  = 1
)

// TSIParams configures the True Strength Index.
type TSIParams struct {
	Fast      int                `yaml:"fast"`
	Slow      int                `yaml:"slow"`
	Signal    int                `yaml:"signal"`
	Scalar    float64            `yaml:"scalar"`
	Drift     int                `yaml:"drift"`
	MAMode    ma.Mode            `yaml:"mamode"`
	Backend   backend.Preference `yaml:"-"`
	core.Post `yaml:",inline"`
}

// DefaultTSIParams returns the 13/25/13 configuration with an EMA signal.
func DefaultTSIParams() TSIParams {
	return TSIParams{
		Fast:   DefaultTSIFast,
		Slow:   DefaultTSISlow,
		Signal: DefaultTSISignal,
		Scalar: DefaultTSIScalar,
		Drift:  DefaultTSIDrift,
		MAMode: ma.EMA,
	}
}

func (p TSIParams) normalize() (TSIParams, error) {
	d := DefaultTSIParams()
	if p.Fast <= 0 {
		p.Fast = d.Fast
	}
	if p.Slow <= 0 {
		p.Slow = d.Slow
	}
	if p.Signal <= 0 {
		p.Signal = d.Signal
	}
	if p.Scalar == 0 {
		p.Scalar = d.Scalar
	}
	if p.Drift <= 0 {
		p.Drift = d.Drift
	}
	if p.Slow < p.Fast {
		p.Fast, p.Slow = p.Slow, p.Fast
	}
	m, err := ma.Resolve(p.MAMode, ma.EMA)
	if err != nil {
		return p, err
	}
	p.MAMode = m
	return p, p.Post.Validate()
}

// Validate reports an unknown mamode or fill method.
func (p TSIParams) Validate() error {
	_, err := p.normalize()
	return err
}

// TSI computes the True Strength Index: the double-smoothed price change over
// the double-smoothed absolute price change, scaled. Bars where the absolute
// momentum is zero are NaN.
func TSI(sel *backend.Selector, close core.Series, p TSIParams) (core.Frame, error) {
	p, err := p.normalize()
	if err != nil {
		return core.Frame{}, fmt.Errorf("tsi: %w", err)
	}
	diff := core.NaNs(close.Len())
	abs := core.NaNs(close.Len())
	for i := p.Drift; i < close.Len(); i++ {
		diff[i] = close.Values[i] - close.Values[i-p.Drift]
		abs[i] = math.Abs(diff[i])
	}

	mp := ma.Params{Backend: p.Backend}
	num, err := doubleEMA(sel, diff, p.Slow, p.Fast, mp)
	if err != nil {
		return core.Frame{}, fmt.Errorf("tsi: %w", err)
	}
	den, err := doubleEMA(sel, abs, p.Slow, p.Fast, mp)
	if err != nil {
		return core.Frame{}, fmt.Errorf("tsi: %w", err)
	}

	tsi := core.NaNs(len(num))
	for i := range tsi {
		if den[i] != 0 {
			tsi[i] = p.Scalar * num[i] / den[i]
		}
	}
	signal, err := ma.MA(sel, p.MAMode, tsi, p.Signal, mp)
	if err != nil {
		return core.Frame{}, fmt.Errorf("tsi: signal: %w", err)
	}

	props := core.Name("", p.Fast, p.Slow, p.Signal)
	return p.Post.ApplyFrame(core.Frame{
		Name:     "TSI" + props,
		Category: core.CategoryMomentum,
		Columns: []core.Series{
			{Name: "TSI" + props, Category: core.CategoryMomentum, Index: core.CopyIndex(close.Index), Values: tsi},
			{Name: "TSIs" + props, Category: core.CategoryMomentum, Index: core.CopyIndex(close.Index), Values: signal},
		},
	}), nil
}

func doubleEMA(sel *backend.Selector, x []float64, slow, fast int, p ma.Params) ([]float64, error) {
	s, err := ma.MA(sel, ma.EMA, x, slow, p)
	if err != nil {
		return nil, err
	}
	return ma.MA(sel, ma.EMA, s, fast, p)
}
