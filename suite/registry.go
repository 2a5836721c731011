package suite

import (
	"fmt"
	"sort"
	"strings"

	"github.com/evdnx/tacore/config"
	"github.com/evdnx/tacore/indicator/backend"
	"github.com/evdnx/tacore/indicator/core"
	"github.com/evdnx/tacore/indicator/cycles"
	"github.com/evdnx/tacore/indicator/ma"
	"github.com/evdnx/tacore/indicator/momentum"
	"github.com/evdnx/tacore/indicator/overlap"
	"github.com/evdnx/tacore/indicator/statistics"
	"github.com/evdnx/tacore/indicator/transform"
	"github.com/evdnx/tacore/indicator/trend"
	"github.com/evdnx/tacore/indicator/volatility"
)

// computeFunc runs one configured indicator over a frame of bars and returns
// the output name with its lines.
type computeFunc func(sel *backend.Selector, bars core.OHLCV) (string, []core.Series, error)

type builder func(spec config.IndicatorSpec, pref backend.Preference) (computeFunc, error)

var registry = map[string]builder{
	"trendflex": func(spec config.IndicatorSpec, _ backend.Preference) (computeFunc, error) {
		p := trend.DefaultTrendflexParams()
		if err := decode(spec, &p); err != nil {
			return nil, err
		}
		return func(_ *backend.Selector, bars core.OHLCV) (string, []core.Series, error) {
			return series(trend.Trendflex(closeOf(bars), p))
		}, nil
	},
	"reflex": func(spec config.IndicatorSpec, _ backend.Preference) (computeFunc, error) {
		p := cycles.DefaultReflexParams()
		if err := decode(spec, &p); err != nil {
			return nil, err
		}
		return func(_ *backend.Selector, bars core.OHLCV) (string, []core.Series, error) {
			return series(cycles.Reflex(closeOf(bars), p))
		}, nil
	},
	"ma": func(spec config.IndicatorSpec, pref backend.Preference) (computeFunc, error) {
		mode, err := ma.ParseMode(spec.Params["mode"])
		if err != nil {
			return nil, err
		}
		var p struct {
			Length    int     `yaml:"length"`
			T3Factor  float64 `yaml:"t3_factor"`
			core.Post `yaml:",inline"`
		}
		p.Length = 10
		if err := decode(spec, &p); err != nil {
			return nil, err
		}
		return func(sel *backend.Selector, bars core.OHLCV) (string, []core.Series, error) {
			v, err := ma.MA(sel, mode, bars.Close, p.Length, ma.Params{T3Factor: p.T3Factor, Backend: pref})
			if err != nil {
				return "", nil, err
			}
			s := p.Post.ApplySeries(core.Series{
				Name:     core.Name(strings.ToUpper(string(mode)), p.Length),
				Category: core.CategoryOverlap,
				Index:    core.CopyIndex(bars.Index),
				Values:   v,
			})
			return s.Name, []core.Series{s}, nil
		}, nil
	},
	"stochf": func(spec config.IndicatorSpec, pref backend.Preference) (computeFunc, error) {
		p := momentum.DefaultStochFParams()
		if err := decode(spec, &p); err != nil {
			return nil, err
		}
		p.Backend = pref
		return func(sel *backend.Selector, bars core.OHLCV) (string, []core.Series, error) {
			return frame(momentum.StochF(sel, bars, p))
		}, nil
	},
	"tsi": func(spec config.IndicatorSpec, pref backend.Preference) (computeFunc, error) {
		p := momentum.DefaultTSIParams()
		if err := decode(spec, &p); err != nil {
			return nil, err
		}
		p.Backend = pref
		return func(sel *backend.Selector, bars core.OHLCV) (string, []core.Series, error) {
			return frame(momentum.TSI(sel, closeOf(bars), p))
		}, nil
	},
	"macd": func(spec config.IndicatorSpec, pref backend.Preference) (computeFunc, error) {
		p := momentum.DefaultMACDParams()
		if err := decode(spec, &p); err != nil {
			return nil, err
		}
		p.Backend = pref
		return func(sel *backend.Selector, bars core.OHLCV) (string, []core.Series, error) {
			return frame(momentum.MACD(sel, closeOf(bars), p))
		}, nil
	},
	"hlc3": func(spec config.IndicatorSpec, pref backend.Preference) (computeFunc, error) {
		var p overlap.HLC3Params
		if err := decode(spec, &p); err != nil {
			return nil, err
		}
		p.Backend = pref
		return func(sel *backend.Selector, bars core.OHLCV) (string, []core.Series, error) {
			return series(overlap.HLC3(sel, bars, p))
		}, nil
	},
	"t3": func(spec config.IndicatorSpec, pref backend.Preference) (computeFunc, error) {
		p := overlap.DefaultT3Params()
		if err := decode(spec, &p); err != nil {
			return nil, err
		}
		p.Backend = pref
		return func(sel *backend.Selector, bars core.OHLCV) (string, []core.Series, error) {
			return series(overlap.T3(sel, closeOf(bars), p))
		}, nil
	},
	"stdev": func(spec config.IndicatorSpec, pref backend.Preference) (computeFunc, error) {
		p := statistics.DefaultStdevParams()
		if err := decode(spec, &p); err != nil {
			return nil, err
		}
		p.Backend = pref
		return func(sel *backend.Selector, bars core.OHLCV) (string, []core.Series, error) {
			return series(statistics.Stdev(sel, closeOf(bars), p))
		}, nil
	},
	"variance": func(spec config.IndicatorSpec, _ backend.Preference) (computeFunc, error) {
		p := statistics.DefaultVarianceParams()
		if err := decode(spec, &p); err != nil {
			return nil, err
		}
		return func(_ *backend.Selector, bars core.OHLCV) (string, []core.Series, error) {
			return series(statistics.Variance(closeOf(bars), p))
		}, nil
	},
	"mad": func(spec config.IndicatorSpec, _ backend.Preference) (computeFunc, error) {
		p := statistics.DefaultMADParams()
		if err := decode(spec, &p); err != nil {
			return nil, err
		}
		return func(_ *backend.Selector, bars core.OHLCV) (string, []core.Series, error) {
			return series(statistics.MAD(closeOf(bars), p))
		}, nil
	},
	"remap": func(spec config.IndicatorSpec, _ backend.Preference) (computeFunc, error) {
		var p transform.RemapParams
		if err := decode(spec, &p); err != nil {
			return nil, err
		}
		return func(_ *backend.Selector, bars core.OHLCV) (string, []core.Series, error) {
			return series(transform.Remap(closeOf(bars), p))
		}, nil
	},
	"ifisher": func(spec config.IndicatorSpec, _ backend.Preference) (computeFunc, error) {
		var p transform.InverseFisherParams
		if err := decode(spec, &p); err != nil {
			return nil, err
		}
		return func(_ *backend.Selector, bars core.OHLCV) (string, []core.Series, error) {
			return frame(transform.InverseFisher(closeOf(bars), p))
		}, nil
	},
	"bbands": func(spec config.IndicatorSpec, pref backend.Preference) (computeFunc, error) {
		p := volatility.DefaultBBandsParams()
		if err := decode(spec, &p); err != nil {
			return nil, err
		}
		p.Backend = pref
		return func(sel *backend.Selector, bars core.OHLCV) (string, []core.Series, error) {
			return frame(volatility.BBands(sel, closeOf(bars), p))
		}, nil
	},
}

// Kinds lists the indicator kinds a suite entry may name.
func Kinds() []string {
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// build resolves one suite entry. A non-string mamode is dropped so the
// indicator's own default applies.
func build(spec config.IndicatorSpec, pref backend.Preference) (computeFunc, error) {
	kind := strings.ToLower(strings.TrimSpace(spec.Kind))
	b, ok := registry[kind]
	if !ok {
		return nil, fmt.Errorf("%w: unknown indicator kind %q", core.ErrConfiguration, spec.Kind)
	}
	switch spec.Backend {
	case "optimized":
		pref = backend.PreferOptimized
	case "algorithmic":
		pref = backend.PreferAlgorithmic
	}
	if v, ok := spec.Params["mamode"]; ok {
		if _, isString := v.(string); !isString {
			params := make(map[string]any, len(spec.Params))
			for k, v := range spec.Params {
				params[k] = v
			}
			delete(params, "mamode")
			spec.Params = params
		}
	}
	run, err := b(spec, pref)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", kind, err)
	}
	return run, nil
}

// decode fills p from the entry and validates it, so a bad entry fails when
// the suite is built instead of on its first run.
func decode(spec config.IndicatorSpec, p interface{ Validate() error }) error {
	if err := spec.Decode(p); err != nil {
		return err
	}
	return p.Validate()
}

func closeOf(bars core.OHLCV) core.Series {
	return core.Series{Name: "close", Index: bars.Index, Values: bars.Close}
}

func series(s core.Series, err error) (string, []core.Series, error) {
	if err != nil {
		return "", nil, err
	}
	return s.Name, []core.Series{s}, nil
}

func frame(f core.Frame, err error) (string, []core.Series, error) {
	if err != nil {
		return "", nil, err
	}
	return f.Name, f.Columns, nil
}
