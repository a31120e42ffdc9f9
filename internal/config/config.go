package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"

	trackselect "github.com/tphakala/go-track-selector"
)

//go:embed sample_config.toml
var sampleConfig string

// EnvPrefix is the prefix of environment variables that override file values.
const EnvPrefix = "TRACKSELECT"

// Selection contains the decision parameters.
type Selection struct {
	DecisionRate int     `toml:"decision_rate" split_words:"true"`
	Threshold    int     `toml:"threshold" split_words:"true"`
	ExceedsBy    float64 `toml:"exceeds_by" split_words:"true"`
	Checkpoints  []int   `toml:"checkpoints" split_words:"true"`
	Parallel     bool    `toml:"parallel" split_words:"true"`
}

// Output contains what the select command writes besides its report.
type Output struct {
	// Format is "table" or "json".
	Format string `toml:"format" split_words:"true"`
	// AudioPath receives the assembled soundtrack when set.
	AudioPath    string `toml:"audio_path" split_words:"true"`
	OverlapAudio bool   `toml:"overlap_audio" split_words:"true"`
	// SequencePath receives the per-tick active track as JSON when set.
	SequencePath string `toml:"sequence_path" split_words:"true"`
}

// Logging contains configuration for log output.
type Logging struct {
	Level string `toml:"level" split_words:"true"`
	// Format selects the slog handler, "text" or "json".
	Format string `toml:"format" split_words:"true"`
}

// Config encapsulates all configuration values for the trackselect tools.
type Config struct {
	Selection Selection `toml:"selection"`
	Tracks    []string  `toml:"tracks" split_words:"true"`
	Output    Output    `toml:"output"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/trackselect/config.toml")
}

// Load locates and parses a configuration file, applies environment
// overrides and validates the result. A missing file at the default location
// yields the defaults; a missing explicit path is an error.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, "", false, fmt.Errorf("environment overrides: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	info, err := os.Stat(defaultPath)
	switch {
	case err == nil && !info.IsDir():
		return defaultPath, true, nil
	case err == nil, errors.Is(err, fs.ErrNotExist):
		return defaultPath, false, nil
	default:
		return "", false, fmt.Errorf("stat config: %w", err)
	}
}

// Core returns the selection parameters as a core configuration.
func (c *Config) Core() *trackselect.Config {
	return &trackselect.Config{
		DecisionRate:   c.Selection.DecisionRate,
		Threshold:      c.Selection.Threshold,
		ExceedsBy:      c.Selection.ExceedsBy,
		Checkpoints:    append([]int(nil), c.Selection.Checkpoints...),
		EnableParallel: c.Selection.Parallel,
	}
}

// SampleConfig returns a commented starter configuration file.
func SampleConfig() string {
	return sampleConfig
}

// CreateSample writes the sample configuration to path.
func CreateSample(path string) error {
	return os.WriteFile(path, []byte(sampleConfig), 0o644)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}
