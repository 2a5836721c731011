package ma

import (
	"math"

	"github.com/evdnx/tacore/indicator/core"
)

// onValid runs kernel over the tail of x that starts at its first valid
// value and places the result back at full length. Kernels therefore never
// see leading NaNs.
func onValid(x []float64, kernel func(v []float64) []float64) []float64 {
	start := core.FirstValid(x)
	out := core.NaNs(len(x))
	if start >= len(x) {
		return out
	}
	copy(out[start:], kernel(x[start:]))
	return out
}

// equalRuns returns, for every position, how many equal samples end there.
// NaN breaks a run.
func equalRuns(v []float64) []int {
	runs := make([]int, len(v))
	for i, val := range v {
		switch {
		case math.IsNaN(val):
		case i > 0 && runs[i-1] > 0 && val == v[i-1]:
			runs[i] = runs[i-1] + 1
		default:
			runs[i] = 1
		}
	}
	return runs
}

// sma is the rolling arithmetic mean. A window containing NaN yields NaN;
// the running sum skips those values so it recovers once they roll out.
// A window of equal samples yields that sample exactly.
func sma(x []float64, n int) []float64 {
	return onValid(x, func(v []float64) []float64 {
		out := core.NaNs(len(v))
		runs := equalRuns(v)
		var sum float64
		missing := 0
		for i, val := range v {
			if math.IsNaN(val) {
				missing++
			} else {
				sum += val
			}
			if i >= n {
				if old := v[i-n]; math.IsNaN(old) {
					missing--
				} else {
					sum -= old
				}
			}
			if i < n-1 || missing > 0 {
				continue
			}
			if runs[i] >= n {
				out[i] = val
			} else {
				out[i] = sum / float64(n)
			}
		}
		return out
	})
}

// smoothed is the exponential recursion shared by EMA and RMA, seeded with
// the first defined simple average. NaN inputs after the seed emit NaN and
// leave the state untouched. The prev + alpha*(x - prev) form keeps a
// constant input fixed once the seed is.
func smoothed(x []float64, n int, alpha float64) []float64 {
	return onValid(x, func(v []float64) []float64 {
		seed := sma(v, n)
		out := core.NaNs(len(v))
		var prev float64
		seeded := false
		for i, val := range v {
			if !seeded {
				if !math.IsNaN(seed[i]) {
					prev = seed[i]
					out[i] = prev
					seeded = true
				}
				continue
			}
			if math.IsNaN(val) {
				continue
			}
			prev += alpha * (val - prev)
			out[i] = prev
		}
		return out
	})
}

func ema(x []float64, n int) []float64 { return smoothed(x, n, 2/float64(n+1)) }

// rma is Wilder's smoothing.
func rma(x []float64, n int) []float64 { return smoothed(x, n, 1/float64(n)) }

// wma weights the window linearly, newest sample heaviest.
func wma(x []float64, n int) []float64 {
	return onValid(x, func(v []float64) []float64 {
		out := core.NaNs(len(v))
		weightSum := float64(n*(n+1)) / 2
		runs := equalRuns(v)
	outer:
		for i := n - 1; i < len(v); i++ {
			if runs[i] >= n {
				out[i] = v[i]
				continue
			}
			var sum float64
			for j := 0; j < n; j++ {
				val := v[i-n+1+j]
				if math.IsNaN(val) {
					continue outer
				}
				sum += val * float64(j+1)
			}
			out[i] = sum / weightSum
		}
		return out
	})
}

func dema(x []float64, n int) []float64 {
	e1 := ema(x, n)
	e2 := ema(e1, n)
	out := make([]float64, len(x))
	for i := range out {
		out[i] = 2*e1[i] - e2[i]
	}
	return out
}

func tema(x []float64, n int) []float64 {
	e1 := ema(x, n)
	e2 := ema(e1, n)
	e3 := ema(e2, n)
	out := make([]float64, len(x))
	for i := range out {
		out[i] = 3*(e1[i]-e2[i]) + e3[i]
	}
	return out
}

// trima is a simple average of a simple average. The two window lengths
// always sum to n+1 so the combined weights span exactly n samples, which
// keeps even lengths in step with TA-Lib.
func trima(x []float64, n int) []float64 {
	first := (n + 1) / 2
	second := n + 1 - first
	return sma(sma(x, first), second)
}

// t3 is Tillson's T3: a weighted blend of the third to sixth cascaded EMA.
// The blend is written relative to e3 so a constant input maps to itself
// exactly; the coefficients are the usual c1..c3 with c4 = 1 - c1 - c2 - c3.
func t3(x []float64, n int, a float64) []float64 {
	a2, a3 := a*a, a*a*a
	c1 := -a3
	c2 := 3*a2 + 3*a3
	c3 := -6*a2 - 3*a - 3*a3

	e1 := ema(x, n)
	e2 := ema(e1, n)
	e3 := ema(e2, n)
	e4 := ema(e3, n)
	e5 := ema(e4, n)
	e6 := ema(e5, n)

	out := make([]float64, len(x))
	for i := range out {
		out[i] = e3[i] + c1*(e6[i]-e3[i]) + c2*(e5[i]-e3[i]) + c3*(e4[i]-e3[i])
	}
	return out
}

// hma is the Hull moving average: WMA(2·WMA(n/2) − WMA(n), √n).
func hma(x []float64, n int) []float64 {
	half := n / 2
	if half < 1 {
		half = 1
	}
	root := int(math.Sqrt(float64(n)))
	if root < 1 {
		root = 1
	}
	wHalf := wma(x, half)
	wFull := wma(x, n)
	raw := make([]float64, len(x))
	for i := range raw {
		raw[i] = 2*wHalf[i] - wFull[i]
	}
	return wma(raw, root)
}

// zlma removes EMA lag by averaging 2·x − x[lag].
func zlma(x []float64, n int) []float64 {
	lag := int(0.5 * float64(n-1))
	adj := core.NaNs(len(x))
	for i := lag; i < len(x); i++ {
		adj[i] = 2*x[i] - x[i-lag]
	}
	return ema(adj, n)
}

// midpoint is the centre of the rolling range.
func midpoint(x []float64, n int) []float64 {
	return onValid(x, func(v []float64) []float64 {
		out := core.NaNs(len(v))
	outer:
		for i := n - 1; i < len(v); i++ {
			hi, lo := math.Inf(-1), math.Inf(1)
			for j := i - n + 1; j <= i; j++ {
				if math.IsNaN(v[j]) {
					continue outer
				}
				hi = math.Max(hi, v[j])
				lo = math.Min(lo, v[j])
			}
			out[i] = (hi + lo) / 2
		}
		return out
	})
}
