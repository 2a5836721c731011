package overlap

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evdnx/tacore/indicator/backend"
	"github.com/evdnx/tacore/indicator/core"
	"github.com/evdnx/tacore/indicator/native"
)

func algorithmic() *backend.Selector { return backend.NewSelector(backend.Availability{}) }

func optimized(t *testing.T) *backend.Selector {
	t.Helper()
	if !native.Compiled {
		t.Skip("TA-Lib backend not compiled in")
	}
	return backend.NewSelector(backend.Availability{TALib: true})
}

func sampleBars() core.OHLCV {
	return core.OHLCV{
		Index: []int64{1, 2, 3, 4},
		High:  []float64{12, 13, 15, 14},
		Low:   []float64{9, 10, 11, 10},
		Close: []float64{10.5, 12, 14, 11},
	}
}

func TestHLC3(t *testing.T) {
	want := []float64{31.5 / 3, 35.0 / 3, 40.0 / 3, 35.0 / 3}
	for name, sel := range map[string]*backend.Selector{"nil": nil, "algorithmic": algorithmic()} {
		t.Run(name, func(t *testing.T) {
			s, err := HLC3(sel, sampleBars(), HLC3Params{})
			require.NoError(t, err)
			assert.Equal(t, "HLC3", s.Name)
			assert.Equal(t, core.CategoryOverlap, s.Category)
			assert.Equal(t, []int64{1, 2, 3, 4}, s.Index)
			assert.InDeltaSlice(t, want, s.Values, 1e-12)
		})
	}
}

func TestHLC3_Optimized(t *testing.T) {
	s, err := HLC3(optimized(t), sampleBars(), HLC3Params{})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{10.5, 35.0 / 3, 40.0 / 3, 35.0 / 3}, s.Values, 1e-9)
}

func TestHLC3_Misaligned(t *testing.T) {
	b := sampleBars()
	b.High = b.High[:3]
	_, err := HLC3(nil, b, HLC3Params{})
	assert.True(t, errors.Is(err, core.ErrMisaligned))
}

func TestT3_FixedPoint(t *testing.T) {
	x := make([]float64, 80)
	for i := range x {
		x[i] = 4.25
	}
	s, err := T3(algorithmic(), core.Series{Values: x}, T3Params{Length: 5})
	require.NoError(t, err)
	assert.Equal(t, "T3_5_0.7", s.Name)
	assert.Equal(t, 24, s.FirstValid())
	for i := 24; i < len(x); i++ {
		assert.Equal(t, 4.25, s.Values[i])
	}
}

func TestT3_DefaultsAndFactor(t *testing.T) {
	x := make([]float64, 100)
	for i := range x {
		x[i] = 50 + 5*math.Sin(float64(i)/9)
	}
	s, err := T3(nil, core.Series{Values: x}, T3Params{A: 1.5})
	require.NoError(t, err)
	assert.Equal(t, "T3_10_0.7", s.Name)

	d, err := T3(nil, core.Series{Values: x}, DefaultT3Params())
	require.NoError(t, err)
	assert.Equal(t, d.Values[60], s.Values[60])

	other, err := T3(nil, core.Series{Values: x}, T3Params{A: 0.5})
	require.NoError(t, err)
	assert.Equal(t, "T3_10_0.5", other.Name)
	assert.NotEqual(t, d.Values[60], other.Values[60])
}

func TestT3_BackendsAgree(t *testing.T) {
	sel := optimized(t)
	x := make([]float64, 300)
	for i := range x {
		x[i] = 100 + 10*math.Sin(float64(i)/11) + float64(i)*0.1
	}
	fast, err := T3(sel, core.Series{Values: x}, DefaultT3Params())
	require.NoError(t, err)
	slow, err := T3(algorithmic(), core.Series{Values: x}, DefaultT3Params())
	require.NoError(t, err)
	for i := 150; i < len(x); i++ {
		assert.InEpsilon(t, slow.Values[i], fast.Values[i], 1e-6, "i=%d", i)
	}
}
