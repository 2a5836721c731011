package momentum

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evdnx/tacore/indicator/backend"
	"github.com/evdnx/tacore/indicator/core"
	"github.com/evdnx/tacore/indicator/ma"
)

func TestStochF_Algorithmic(t *testing.T) {
	// Close sits 3 above the 3-bar low inside a 4-wide range: %K = 75.
	out, err := StochF(algorithmic(), bars(ramp(20, 10, 1)), StochFParams{K: 3, D: 3})
	require.NoError(t, err)
	require.Equal(t, "STOCHF_3_3", out.Name)
	require.Equal(t, core.CategoryMomentum, out.Category)

	k, ok := out.Column("STOCHFk_3_3")
	require.True(t, ok)
	d, ok := out.Column("STOCHFd_3_3")
	require.True(t, ok)

	assert.Equal(t, 2, k.FirstValid())
	assert.Equal(t, 4, d.FirstValid())
	for i := 2; i < 20; i++ {
		assert.True(t, approxEqual(k.Values[i], 75), "k[%d]=%v", i, k.Values[i])
	}
	for i := 4; i < 20; i++ {
		assert.True(t, approxEqual(d.Values[i], 75), "d[%d]=%v", i, d.Values[i])
	}
}

func TestStochF_ZeroRange(t *testing.T) {
	flat := ramp(10, 5, 0)
	b := core.OHLCV{High: flat.Values, Low: flat.Values, Close: flat.Values}
	out, err := StochF(nil, b, StochFParams{K: 3, D: 2})
	require.NoError(t, err)
	k := out.Columns[0].Values
	for i := 2; i < len(k); i++ {
		assert.Equal(t, 0.0, k[i])
		assert.False(t, math.IsInf(k[i], 0))
	}
}

func TestStochF_OptimizedWarmup(t *testing.T) {
	sel := optimized(t)
	out, err := StochF(sel, bars(ramp(20, 10, 1)), StochFParams{K: 3, D: 3})
	require.NoError(t, err)

	k, d := out.Columns[0], out.Columns[1]
	// %K is withheld until %D exists: k+d-2 bars.
	assert.Equal(t, 4, k.FirstValid())
	assert.Equal(t, 4, d.FirstValid())
	for i := 4; i < 20; i++ {
		assert.True(t, approxEqual(k.Values[i], 75))
		assert.True(t, approxEqual(d.Values[i], 75))
	}
}

func TestStochF_BackendsAgreePastWarmup(t *testing.T) {
	sel := optimized(t)
	close := ramp(200, 100, 0)
	for i := range close.Values {
		close.Values[i] += 10 * math.Sin(float64(i)/7)
	}
	b := bars(close)
	for _, mode := range []ma.Mode{ma.SMA, ma.EMA, ma.WMA} {
		p := StochFParams{K: 14, D: 3, MAMode: mode}
		fast, err := StochF(sel, b, p)
		require.NoError(t, err)
		slow, err := StochF(algorithmic(), b, p)
		require.NoError(t, err)
		for c := range fast.Columns {
			for i := 40; i < 200; i++ {
				assert.InDelta(t, slow.Columns[c].Values[i], fast.Columns[c].Values[i], 1e-6, "%s col %d i=%d", mode, c, i)
			}
		}
	}
}

func TestStochF_ModesWithoutOptimizedPathBypass(t *testing.T) {
	rec := selections{}
	sel := backend.NewSelector(backend.Availability{TALib: true}, backend.WithRecorder(rec))
	_, err := StochF(sel, bars(ramp(30, 10, 1)), StochFParams{K: 5, D: 3, MAMode: ma.HMA})
	require.NoError(t, err)
	assert.Equal(t, backend.Algorithmic, rec["STOCHF"])

	_, err = StochF(sel, bars(ramp(30, 10, 1)), StochFParams{K: 5, D: 3, MAMode: ma.MidPoint})
	require.NoError(t, err)
	assert.Equal(t, backend.Algorithmic, rec["STOCHF"])
}

func TestStochF_Errors(t *testing.T) {
	_, err := StochF(nil, bars(ramp(10, 1, 1)), StochFParams{MAMode: "bogus"})
	assert.True(t, errors.Is(err, core.ErrConfiguration))

	b := bars(ramp(10, 1, 1))
	b.Low = b.Low[:9]
	_, err = StochF(nil, b, DefaultStochFParams())
	assert.True(t, errors.Is(err, core.ErrMisaligned))
}

func TestParamsValidate(t *testing.T) {
	assert.NoError(t, DefaultStochFParams().Validate())
	assert.NoError(t, DefaultTSIParams().Validate())
	assert.NoError(t, DefaultMACDParams().Validate())
	assert.NoError(t, StochFParams{}.Validate(), "zero values take the defaults")

	assert.ErrorIs(t, StochFParams{MAMode: "bogus"}.Validate(), ma.ErrUnknownMode)
	assert.ErrorIs(t, TSIParams{MAMode: "bogus"}.Validate(), ma.ErrUnknownMode)
	bad := DefaultMACDParams()
	bad.Method = "pad"
	assert.ErrorIs(t, bad.Validate(), core.ErrConfiguration)
}
