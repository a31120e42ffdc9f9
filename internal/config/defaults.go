package config

import (
	trackselect "github.com/tphakala/go-track-selector"
	"github.com/tphakala/go-track-selector/internal/logging"
)

const (
	FormatTable = "table"
	FormatJSON  = "json"

	defaultFormat    = FormatTable
	defaultLogLevel  = "info"
	defaultLogFormat = logging.FormatText
)

// Default returns a Config populated with the built-in selection constants.
func Default() Config {
	return Config{
		Selection: Selection{
			DecisionRate: trackselect.DefaultDecisionRate,
			Threshold:    trackselect.DefaultThreshold,
			ExceedsBy:    trackselect.DefaultExceedsBy,
		},
		Output: Output{
			Format: defaultFormat,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
