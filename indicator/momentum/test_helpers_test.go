package momentum

import (
	"math"
	"testing"

	"github.com/evdnx/tacore/indicator/backend"
	"github.com/evdnx/tacore/indicator/core"
	"github.com/evdnx/tacore/indicator/native"
)

func approxEqual(a, b float64) bool {
	const eps = 1e-6
	return math.Abs(a-b) <= eps
}

func algorithmic() *backend.Selector { return backend.NewSelector(backend.Availability{}) }

func optimized(t *testing.T) *backend.Selector {
	t.Helper()
	if !native.Compiled {
		t.Skip("TA-Lib backend not compiled in")
	}
	return backend.NewSelector(backend.Availability{TALib: true})
}

type selections map[string]backend.Kind

func (s selections) RecordSelection(indicator string, k backend.Kind) { s[indicator] = k }

func ramp(n int, start, step float64) core.Series {
	v := make([]float64, n)
	idx := make([]int64, n)
	for i := range v {
		v[i] = start + float64(i)*step
		idx[i] = int64(1_700_000_000 + 60*i)
	}
	return core.Series{Name: "close", Index: idx, Values: v}
}

// bars builds a one-point-wide channel around close.
func bars(close core.Series) core.OHLCV {
	h := make([]float64, close.Len())
	l := make([]float64, close.Len())
	for i, c := range close.Values {
		h[i], l[i] = c+1, c-1
	}
	return core.OHLCV{Index: close.Index, High: h, Low: l, Close: close.Values}
}
