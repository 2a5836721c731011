// Package native wraps the go-talib port of TA-Lib, the optimized backend
// offered by several indicators. Results are converted to the conventions of
// the rest of the module: equal-length output with NaN over the warm-up, and
// leading NaNs in the input skipped instead of poisoning the recursion.
//
// Building with the notalib tag compiles the backend out; Compiled then
// reports false and every indicator falls back to its algorithmic path.
package native

import "math"

// MAType selects the averaging algorithm of the optimized backend.
type MAType int

const (
	SMA MAType = iota
	EMA
	WMA
	DEMA
	TEMA
	TRIMA
	T3
	MidPoint
)

// Lookback returns how many leading outputs the backend leaves undefined for
// the given average and period.
func Lookback(t MAType, period int) int {
	if period <= 1 {
		return 0
	}
	switch t {
	case DEMA:
		return 2 * (period - 1)
	case TEMA:
		return 3 * (period - 1)
	case T3:
		return 6 * (period - 1)
	default:
		return period - 1
	}
}

// firstValid returns the first position at which every input is a number.
func firstValid(inputs ...[]float64) int {
	start := 0
	for _, in := range inputs {
		i := 0
		for i < len(in) && math.IsNaN(in[i]) {
			i++
		}
		if i > start {
			start = i
		}
	}
	return start
}

// place copies res, computed over the tail beginning at start, into a full
// length NaN slice and blanks the backend's warm-up region.
func place(n, start, lookback int, res []float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	for i := lookback; i < len(res); i++ {
		out[start+i] = res[i]
	}
	return out
}

func nans(n int) []float64 { return place(n, 0, 0, nil) }

// pinConstant overwrites out[i] with data[i] wherever every sample feeding it
// is equal, so a constant series maps to itself exactly. Windowed averages
// read the last period samples; the recursive ones read everything since
// start.
func pinConstant(t MAType, data []float64, start, period int, out []float64) {
	windowed := t == SMA || t == WMA || t == TRIMA || t == MidPoint
	run := 0
	for i := start; i < len(data); i++ {
		switch {
		case math.IsNaN(data[i]):
			run = 0
		case run > 0 && data[i] == data[i-1]:
			run++
		default:
			run = 1
		}
		if math.IsNaN(out[i]) {
			continue
		}
		if run == i-start+1 || (windowed && run >= period) {
			out[i] = data[i]
		}
	}
}
