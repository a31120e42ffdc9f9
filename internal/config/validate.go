package config

import (
	"fmt"

	"github.com/tphakala/go-track-selector/internal/logging"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.Core().Validate(); err != nil {
		return fmt.Errorf("selection: %w", err)
	}
	switch c.Output.Format {
	case FormatTable, FormatJSON:
	default:
		return fmt.Errorf("output.format: unsupported value %q (want %q or %q)", c.Output.Format, FormatTable, FormatJSON)
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	switch c.Logging.Format {
	case logging.FormatText, logging.FormatJSON:
	default:
		return fmt.Errorf("logging.format: unsupported value %q (want %q or %q)",
			c.Logging.Format, logging.FormatText, logging.FormatJSON)
	}
	return nil
}
