// Package config loads trackselect configuration from TOML with environment
// overrides.
//
// Values are resolved in order: built-in defaults, the config file
// (~/.config/trackselect/config.toml unless --config is given), then
// environment variables named after the TOML keys under the TRACKSELECT
// prefix, for example TRACKSELECT_SELECTION_THRESHOLD or
// TRACKSELECT_OUTPUT_FORMAT. Command-line flags are applied last by the
// commands themselves.
package config
