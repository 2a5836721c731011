package native

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookback(t *testing.T) {
	tests := []struct {
		t      MAType
		period int
		want   int
	}{
		{SMA, 10, 9},
		{EMA, 1, 0},
		{DEMA, 10, 18},
		{TEMA, 10, 27},
		{T3, 5, 24},
		{MidPoint, 3, 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Lookback(tt.t, tt.period), "type %d period %d", tt.t, tt.period)
	}
}

func TestFirstValidAcrossInputs(t *testing.T) {
	nan := math.NaN()
	assert.Equal(t, 2, firstValid([]float64{nan, 1, 2}, []float64{nan, nan, 3}))
	assert.Equal(t, 0, firstValid([]float64{1, 2}))
}

func TestPlace(t *testing.T) {
	out := place(5, 1, 2, []float64{0, 0, 7, 8})
	assert.True(t, math.IsNaN(out[0]))
	assert.True(t, math.IsNaN(out[2]))
	assert.Equal(t, 7.0, out[3])
	assert.Equal(t, 8.0, out[4])
	assert.Len(t, nans(3), 3)
}

func TestPinConstant(t *testing.T) {
	nan := math.NaN()
	data := []float64{nan, 0.1, 0.1, 0.1, 0.2, 0.2, 0.2}
	noisy := []float64{nan, nan, 0.3, 0.3, 0.3, 0.3, 0.3}

	out := append([]float64(nil), noisy...)
	pinConstant(SMA, data, 1, 2, out)
	assert.Equal(t, []float64{0.1, 0.1, 0.3, 0.2, 0.2}, out[2:])

	out = append([]float64(nil), noisy...)
	pinConstant(EMA, data, 1, 2, out)
	assert.Equal(t, []float64{0.1, 0.1, 0.3, 0.3, 0.3}, out[2:], "recursive averages pin only while the whole history is constant")
	assert.True(t, math.IsNaN(out[1]))
}
