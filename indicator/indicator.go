package indicator

import (
	"github.com/evdnx/tacore/indicator/backend"
	"github.com/evdnx/tacore/indicator/core"
	"github.com/evdnx/tacore/indicator/cycles"
	"github.com/evdnx/tacore/indicator/ehlers"
	"github.com/evdnx/tacore/indicator/ma"
	"github.com/evdnx/tacore/indicator/momentum"
	"github.com/evdnx/tacore/indicator/overlap"
	"github.com/evdnx/tacore/indicator/statistics"
	"github.com/evdnx/tacore/indicator/transform"
	"github.com/evdnx/tacore/indicator/trend"
	"github.com/evdnx/tacore/indicator/volatility"
)

// ---- Shared data types ----
type (
	Series     = core.Series
	Frame      = core.Frame
	OHLCV      = core.OHLCV
	Post       = core.Post
	FillMethod = core.FillMethod
	PlotData   = core.PlotData
)

const (
	FillNone     = core.FillNone
	FillForward  = core.FillForward
	FillBackward = core.FillBackward
)

var (
	ErrConfiguration = core.ErrConfiguration
	ErrPrecondition  = core.ErrPrecondition
	ErrMisaligned    = core.ErrMisaligned
	ErrUnknownMode   = ma.ErrUnknownMode
)

func GenerateTimestamps(startTime int64, count int, interval int64) []int64 {
	return core.GenerateTimestamps(startTime, count, interval)
}

func FormatPlotDataJSON(data []PlotData) (string, error) {
	return core.FormatPlotDataJSON(data)
}

func FormatPlotDataCSV(data []PlotData) (string, error) {
	return core.FormatPlotDataCSV(data)
}

// ---- Backend selection ----
type (
	Selector     = backend.Selector
	Availability = backend.Availability
	Preference   = backend.Preference
)

const (
	PreferOptimized   = backend.PreferOptimized
	PreferAlgorithmic = backend.PreferAlgorithmic
)

func DefaultSelector() *Selector { return backend.Default() }

// ---- Moving averages ----
type (
	MovingAverageMode   = ma.Mode
	MovingAverageParams = ma.Params
)

func MovingAverage(sel *Selector, mode MovingAverageMode, data []float64, length int, p MovingAverageParams) ([]float64, error) {
	return ma.MA(sel, mode, data, length, p)
}

func ParseMovingAverageMode(v any) (MovingAverageMode, error) { return ma.ParseMode(v) }

// ---- Ehlers filters ----
type FilterParams = ehlers.FilterParams

func EhlersFilter(x []float64, p FilterParams) ([]float64, error) { return ehlers.Filter(x, p) }

type TrendflexParams = trend.TrendflexParams

func DefaultTrendflexParams() TrendflexParams { return trend.DefaultTrendflexParams() }

func Trendflex(close Series, p TrendflexParams) (Series, error) { return trend.Trendflex(close, p) }

type ReflexParams = cycles.ReflexParams

func DefaultReflexParams() ReflexParams { return cycles.DefaultReflexParams() }

func Reflex(close Series, p ReflexParams) (Series, error) { return cycles.Reflex(close, p) }

// ---- Momentum ----
type (
	StochFParams = momentum.StochFParams
	TSIParams    = momentum.TSIParams
	MACDParams   = momentum.MACDParams
)

func StochF(sel *Selector, bars OHLCV, p StochFParams) (Frame, error) {
	return momentum.StochF(sel, bars, p)
}

func TSI(sel *Selector, close Series, p TSIParams) (Frame, error) { return momentum.TSI(sel, close, p) }

func MACD(sel *Selector, close Series, p MACDParams) (Frame, error) {
	return momentum.MACD(sel, close, p)
}

// ---- Overlap ----
type (
	HLC3Params = overlap.HLC3Params
	T3Params   = overlap.T3Params
)

func HLC3(sel *Selector, bars OHLCV, p HLC3Params) (Series, error) { return overlap.HLC3(sel, bars, p) }

func T3(sel *Selector, close Series, p T3Params) (Series, error) { return overlap.T3(sel, close, p) }

// ---- Statistics ----
type (
	StdevParams    = statistics.StdevParams
	VarianceParams = statistics.VarianceParams
	MADParams      = statistics.MADParams
)

func Stdev(sel *Selector, close Series, p StdevParams) (Series, error) {
	return statistics.Stdev(sel, close, p)
}

func Variance(close Series, p VarianceParams) (Series, error) { return statistics.Variance(close, p) }

func MAD(close Series, p MADParams) (Series, error) { return statistics.MAD(close, p) }

// ---- Transforms ----
type (
	RemapParams         = transform.RemapParams
	InverseFisherParams = transform.InverseFisherParams
)

func Remap(close Series, p RemapParams) (Series, error) { return transform.Remap(close, p) }

func InverseFisher(close Series, p InverseFisherParams) (Frame, error) {
	return transform.InverseFisher(close, p)
}

// ---- Volatility ----
type BBandsParams = volatility.BBandsParams

func BBands(sel *Selector, close Series, p BBandsParams) (Frame, error) {
	return volatility.BBands(sel, close, p)
}
