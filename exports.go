package tacore

import (
	"context"

	"github.com/evdnx/tacore/config"
	"github.com/evdnx/tacore/indicator"
	"github.com/evdnx/tacore/indicator/backend"
	"github.com/evdnx/tacore/suite"
)

// ---- Shared data helpers ----
type (
	Series   = indicator.Series
	Frame    = indicator.Frame
	OHLCV    = indicator.OHLCV
	Post     = indicator.Post
	PlotData = indicator.PlotData
)

func FormatPlotDataJSON(data []indicator.PlotData) (string, error) {
	return indicator.FormatPlotDataJSON(data)
}

func FormatPlotDataCSV(data []indicator.PlotData) (string, error) {
	return indicator.FormatPlotDataCSV(data)
}

// ---- Backend selection ----
type Selector = indicator.Selector

// NewSelector returns a selector over the compiled-in backends, with TA-Lib
// switched off unless allowTALib is set.
func NewSelector(allowTALib bool) *indicator.Selector {
	return backend.NewSelector(backend.Detect().Restrict(allowTALib))
}

// ---- Moving averages ----
type MovingAverageMode = indicator.MovingAverageMode

func MovingAverage(sel *indicator.Selector, mode indicator.MovingAverageMode, data []float64, length int, p indicator.MovingAverageParams) ([]float64, error) {
	return indicator.MovingAverage(sel, mode, data, length, p)
}

// ---- Ehlers filters ----
func Trendflex(close indicator.Series, p indicator.TrendflexParams) (indicator.Series, error) {
	return indicator.Trendflex(close, p)
}

func Reflex(close indicator.Series, p indicator.ReflexParams) (indicator.Series, error) {
	return indicator.Reflex(close, p)
}

// ---- Suite ----
type (
	Config         = config.Config
	IndicatorSuite = suite.IndicatorSuite
	SuiteResult    = suite.Result
)

func LoadConfig(path string) (*config.Config, error) { return config.Load(path) }

func NewIndicatorSuiteWithConfig(cfg *config.Config, opts ...suite.Option) (*suite.IndicatorSuite, error) {
	return suite.NewIndicatorSuiteWithConfig(cfg, opts...)
}

// RunSuite loads the configuration at path and computes it over bars.
func RunSuite(ctx context.Context, path string, bars indicator.OHLCV) ([]suite.Result, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	s, err := suite.NewIndicatorSuiteWithConfig(cfg)
	if err != nil {
		return nil, err
	}
	return s.Run(ctx, bars)
}
