package statistics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evdnx/tacore/indicator/backend"
	"github.com/evdnx/tacore/indicator/core"
	"github.com/evdnx/tacore/indicator/native"
)

var sample = core.Series{Values: []float64{2, 4, 4, 4, 5, 5, 7, 9}}

func intp(v int) *int { return &v }

type selections map[string]backend.Kind

func (s selections) RecordSelection(indicator string, k backend.Kind) { s[indicator] = k }

func optimized(t *testing.T, opts ...backend.Option) *backend.Selector {
	t.Helper()
	if !native.Compiled {
		t.Skip("TA-Lib backend not compiled in")
	}
	return backend.NewSelector(backend.Availability{TALib: true}, opts...)
}

func TestVariance(t *testing.T) {
	s, err := Variance(sample, VarianceParams{Length: 8})
	require.NoError(t, err)
	assert.Equal(t, "VAR_8", s.Name)
	assert.Equal(t, core.CategoryStatistics, s.Category)
	assert.Equal(t, 7, s.FirstValid())
	assert.InDelta(t, 32.0/7, s.Values[7], 1e-12)

	pop, err := Variance(sample, VarianceParams{Length: 8, Ddof: intp(0)})
	require.NoError(t, err)
	assert.InDelta(t, 4.0, pop.Values[7], 1e-12)

	// Out-of-range ddof falls back to 1.
	bad, err := Variance(sample, VarianceParams{Length: 8, Ddof: intp(8)})
	require.NoError(t, err)
	assert.Equal(t, s.Values[7], bad.Values[7])
}

func TestStdev_Algorithmic(t *testing.T) {
	sel := backend.NewSelector(backend.Availability{})
	s, err := Stdev(sel, sample, StdevParams{Length: 8})
	require.NoError(t, err)
	assert.Equal(t, "STDEV_8", s.Name)
	assert.InDelta(t, math.Sqrt(32.0/7), s.Values[7], 1e-12)

	pop, err := Stdev(nil, sample, StdevParams{Length: 8, Ddof: intp(0)})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, pop.Values[7], 1e-12)
}

func TestStdev_DefaultLength(t *testing.T) {
	s, err := Stdev(nil, sample, StdevParams{})
	require.NoError(t, err)
	assert.Equal(t, "STDEV_30", s.Name)
	assert.Equal(t, len(sample.Values), s.FirstValid())
}

func TestStdev_OptimizedMatchesSampleDeviation(t *testing.T) {
	rec := selections{}
	sel := optimized(t, backend.WithRecorder(rec))
	x := make([]float64, 200)
	for i := range x {
		x[i] = 100 + 7*math.Sin(float64(i)/5) + float64(i%7)
	}
	in := core.Series{Values: x}

	fast, err := Stdev(sel, in, StdevParams{Length: 20})
	require.NoError(t, err)
	assert.Equal(t, backend.Optimized, rec["STDEV"])
	slow, err := Stdev(nil, in, StdevParams{Length: 20})
	require.NoError(t, err)

	assert.Equal(t, slow.FirstValid(), fast.FirstValid())
	for i := 19; i < len(x); i++ {
		assert.InEpsilon(t, slow.Values[i], fast.Values[i], 1e-6, "i=%d", i)
	}
}

func TestStdev_CustomDdofBypassesOptimized(t *testing.T) {
	rec := selections{}
	sel := optimized(t, backend.WithRecorder(rec))
	s, err := Stdev(sel, sample, StdevParams{Length: 8, Ddof: intp(0)})
	require.NoError(t, err)
	assert.Equal(t, backend.Algorithmic, rec["STDEV"])
	assert.InDelta(t, 2.0, s.Values[7], 1e-12)
}

func TestMAD(t *testing.T) {
	s, err := MAD(sample, MADParams{Length: 8})
	require.NoError(t, err)
	assert.Equal(t, "MAD_8", s.Name)
	assert.Equal(t, 7, s.FirstValid())
	assert.InDelta(t, 1.5, s.Values[7], 1e-12)
}

func TestMAD_MinPeriods(t *testing.T) {
	s, err := MAD(sample, MADParams{Length: 8, MinPeriods: 2})
	require.NoError(t, err)
	assert.Equal(t, 1, s.FirstValid())
	// Partial window {2, 4}.
	assert.InDelta(t, 1.0, s.Values[1], 1e-12)
	assert.InDelta(t, 1.5, s.Values[7], 1e-12)
}

func TestRollingWindowWithNaN(t *testing.T) {
	x := []float64{1, 2, math.NaN(), 4, 5, 6, 7}
	s, err := Variance(core.Series{Values: x}, VarianceParams{Length: 3})
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		assert.True(t, math.IsNaN(s.Values[i]), "i=%d", i)
	}
	assert.InDelta(t, 1.0, s.Values[5], 1e-12)
}
