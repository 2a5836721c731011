//go:build !notalib

package native

import "github.com/markcheno/go-talib"

// Compiled reports whether the TA-Lib backend is linked into this binary.
const Compiled = true

// MA computes a moving average with the TA-Lib implementation. factor is
// only read by T3 (its volume factor).
func MA(t MAType, data []float64, period int, factor float64) []float64 {
	n := len(data)
	start := firstValid(data)
	lb := Lookback(t, period)
	if n-start <= lb {
		return nans(n)
	}
	in := data[start:]
	var res []float64
	switch t {
	case SMA:
		res = talib.Sma(in, period)
	case EMA:
		res = talib.Ema(in, period)
	case WMA:
		res = talib.Wma(in, period)
	case DEMA:
		res = talib.Dema(in, period)
	case TEMA:
		res = talib.Tema(in, period)
	case TRIMA:
		res = talib.Trima(in, period)
	case T3:
		res = talib.T3(in, period, factor)
	case MidPoint:
		res = talib.MidPoint(in, period)
	default:
		return nans(n)
	}
	out := place(n, start, lb, res)
	pinConstant(t, data, start, period, out)
	return out
}

// StochF computes the fast stochastic %K and %D lines. TA-Lib withholds both
// lines until %D is defined, so %K carries the longer warm-up.
func StochF(high, low, close []float64, k, d int, dType MAType) ([]float64, []float64) {
	n := len(close)
	start := firstValid(high, low, close)
	lb := (k - 1) + Lookback(dType, d)
	if n-start <= lb {
		return nans(n), nans(n)
	}
	fk, fd := talib.StochF(high[start:], low[start:], close[start:], k, d, talibMA(dType))
	return place(n, start, lb, fk), place(n, start, lb, fd)
}

// StdDev computes the rolling population standard deviation scaled by nbDev.
func StdDev(data []float64, period int, nbDev float64) []float64 {
	n := len(data)
	start := firstValid(data)
	lb := period - 1
	if n-start <= lb {
		return nans(n)
	}
	return place(n, start, lb, talib.StdDev(data[start:], period, nbDev))
}

// TypPrice computes (high + low + close) / 3.
func TypPrice(high, low, close []float64) []float64 {
	n := len(close)
	start := firstValid(high, low, close)
	if start >= n {
		return nans(n)
	}
	return place(n, start, 0, talib.TypPrice(high[start:], low[start:], close[start:]))
}

func talibMA(t MAType) talib.MaType {
	switch t {
	case EMA:
		return talib.EMA
	case WMA:
		return talib.WMA
	case DEMA:
		return talib.DEMA
	case TEMA:
		return talib.TEMA
	case TRIMA:
		return talib.TRIMA
	case T3:
		return talib.T3MA
	default:
		return talib.SMA
	}
}
