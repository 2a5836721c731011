//go:build notalib

package native

// Compiled reports whether the TA-Lib backend is linked into this binary.
const Compiled = false

// MA is unavailable without TA-Lib; it returns an all-NaN series.
func MA(_ MAType, data []float64, _ int, _ float64) []float64 { return nans(len(data)) }

// StochF is unavailable without TA-Lib.
func StochF(_, _, close []float64, _, _ int, _ MAType) ([]float64, []float64) {
	return nans(len(close)), nans(len(close))
}

// StdDev is unavailable without TA-Lib.
func StdDev(data []float64, _ int, _ float64) []float64 { return nans(len(data)) }

// TypPrice is unavailable without TA-Lib.
func TypPrice(_, _, close []float64) []float64 { return nans(len(close)) }
