package momentum

import (
	"fmt"
	"math"

	"github.com/evdnx/tacore/indicator/backend"
	"github.com/evdnx/tacore/indicator/core"
	"github.com/evdnx/tacore/indicator/ma"
	"github.com/evdnx/tacore/indicator/native"
)

const (
	DefaultStochFK = 14
	DefaultStochFD = 3
)

// epsilon stands in for a zero high-low range so %K stays finite.
const epsilon = 2.220446049250313e-16

// StochFParams configures the fast stochastic.
type StochFParams struct {
	K         int                `yaml:"k"`
	D         int                `yaml:"d"`
	MAMode    ma.Mode            `yaml:"mamode"`
	Backend   backend.Preference `yaml:"-"`
	core.Post `yaml:",inline"`
}

// DefaultStochFParams returns the 14/3 SMA configuration.
func DefaultStochFParams() StochFParams {
	return StochFParams{K: DefaultStochFK, D: DefaultStochFD, MAMode: ma.SMA}
}

func (p StochFParams) normalize() (StochFParams, error) {
	if p.K <= 0 {
		p.K = DefaultStochFK
	}
	if p.D <= 0 {
		p.D = DefaultStochFD
	}
	m, err := ma.Resolve(p.MAMode, ma.SMA)
	if err != nil {
		return p, err
	}
	p.MAMode = m
	return p, p.Post.Validate()
}

// Validate reports settings no default can repair: an unknown mamode or fill
// method.
func (p StochFParams) Validate() error {
	_, err := p.normalize()
	return err
}

// StochF computes the fast stochastic oscillator: %K is the close's position
// inside the rolling k-bar range scaled to 0..100, %D is an average of %K.
//
// The optimized backend withholds %K until %D is defined, so its %K warm-up
// is k+d-2 bars against k-1 on the algorithmic path.
func StochF(sel *backend.Selector, bars core.OHLCV, p StochFParams) (core.Frame, error) {
	p, err := p.normalize()
	if err != nil {
		return core.Frame{}, fmt.Errorf("stochf: %w", err)
	}
	if err := core.Aligned(bars.High, bars.Low, bars.Close); err != nil {
		return core.Frame{}, fmt.Errorf("stochf: %w", err)
	}
	if err := bars.Validate(); err != nil {
		return core.Frame{}, fmt.Errorf("stochf: %w", err)
	}

	// TA-Lib's composite functions take no midpoint smoothing.
	dType, nativeMA := ma.NativeType(p.MAMode)
	bypass := !nativeMA || dType == native.MidPoint
	var k, d []float64
	if sel.Choose("STOCHF", p.Backend, bypass) == backend.Optimized {
		k, d = native.StochF(bars.High, bars.Low, bars.Close, p.K, p.D, dType)
	} else {
		k = fastK(bars.High, bars.Low, bars.Close, p.K)
		d, err = ma.MA(sel, p.MAMode, k, p.D, ma.Params{Backend: p.Backend})
		if err != nil {
			return core.Frame{}, fmt.Errorf("stochf: %w", err)
		}
	}

	props := core.Name("", p.K, p.D)
	return p.Post.ApplyFrame(core.Frame{
		Name:     "STOCHF" + props,
		Category: core.CategoryMomentum,
		Columns: []core.Series{
			{Name: "STOCHFk" + props, Category: core.CategoryMomentum, Index: core.CopyIndex(bars.Index), Values: k},
			{Name: "STOCHFd" + props, Category: core.CategoryMomentum, Index: core.CopyIndex(bars.Index), Values: d},
		},
	}), nil
}

func fastK(high, low, close []float64, n int) []float64 {
	hh := rollingExtreme(high, n, math.Max)
	ll := rollingExtreme(low, n, math.Min)
	out := core.NaNs(len(close))
	for i := range close {
		if math.IsNaN(hh[i]) || math.IsNaN(ll[i]) {
			continue
		}
		rng := hh[i] - ll[i]
		if rng == 0 {
			rng = epsilon
		}
		out[i] = 100 * (close[i] - ll[i]) / rng
	}
	return out
}

// rollingExtreme applies pick over each full n-sample window. Windows that
// contain NaN produce NaN.
func rollingExtreme(x []float64, n int, pick func(a, b float64) float64) []float64 {
	out := core.NaNs(len(x))
outer:
	for i := n - 1; i < len(x); i++ {
		v := x[i]
		for j := i - n + 1; j <= i; j++ {
			if math.IsNaN(x[j]) {
				continue outer
			}
			v = pick(v, x[j])
		}
		out[i] = v
	}
	return out
}
