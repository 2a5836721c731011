package cycles

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evdnx/tacore/indicator/core"
)

func TestReflex_Sine(t *testing.T) {
	x := make([]float64, 100)
	for i := range x {
		x[i] = 100 + math.Sin(float64(i)/5)*3
	}
	s, err := Reflex(core.Series{Values: x}, DefaultReflexParams())
	require.NoError(t, err)
	assert.Equal(t, "REFLEX_20_20_0.04", s.Name)
	assert.Equal(t, core.CategoryCycles, s.Category)
	assert.Equal(t, 20, s.FirstValid())
	assert.InDelta(t, -5.0, s.Values[20], 1e-9)
	assert.InDelta(t, -3.808731050478919, s.Values[21], 1e-9)
	assert.InDelta(t, -0.2864938914692346, s.Values[50], 1e-9)
	assert.InDelta(t, 0.7285262573433939, s.Values[99], 1e-9)
}

func TestReflex_Flat(t *testing.T) {
	x := make([]float64, 50)
	for i := range x {
		x[i] = 42
	}
	s, err := Reflex(core.Series{Values: x}, ReflexParams{Length: 10, Smooth: 8, Alpha: 0.1})
	require.NoError(t, err)
	assert.Equal(t, "REFLEX_10_8_0.1", s.Name)
	for i := 10; i < 50; i++ {
		assert.False(t, math.IsNaN(s.Values[i]))
		assert.False(t, math.IsInf(s.Values[i], 0))
	}
}
