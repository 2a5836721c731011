package indicator

import "github.com/evdnx/tacore/config"

// Re-export the run configuration so callers of the catalog can load a suite
// definition without importing config directly.
type (
	Config        = config.Config
	IndicatorSpec = config.IndicatorSpec
)

func LoadConfig(path string) (*Config, error) { return config.Load(path) }

func DefaultConfig() Config { return config.Default() }
