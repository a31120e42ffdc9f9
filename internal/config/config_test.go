package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	trackselect "github.com/tphakala/go-track-selector"
	"github.com/tphakala/go-track-selector/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaultsWhenNoFile(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Equal(t, filepath.Join(tempHome, ".config", "trackselect", "config.toml"), resolved)

	want := config.Default()
	assert.Equal(t, &want, cfg)
	assert.Equal(t, trackselect.DefaultConfig(), cfg.Core())
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoadFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeConfig(t, `
tracks = ["a.wav", "~/b.wav"]

[selection]
decision_rate = 10
threshold = 2
exceeds_by = 1.5
checkpoints = [40, 3, 40, 12]
parallel = true

[output]
format = " JSON "
audio_path = "out.wav"
overlap_audio = true

[logging]
level = "DEBUG"
format = "JSON"
`)

	cfg, resolved, exists, err := config.Load(path)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, path, resolved)

	assert.Equal(t, config.Selection{
		DecisionRate: 10,
		Threshold:    2,
		ExceedsBy:    1.5,
		Checkpoints:  []int{3, 12, 40},
		Parallel:     true,
	}, cfg.Selection)
	assert.Equal(t, config.FormatJSON, cfg.Output.Format)
	assert.True(t, cfg.Output.OverlapAudio)
	assert.True(t, filepath.IsAbs(cfg.Output.AudioPath))
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)

	require.Len(t, cfg.Tracks, 2)
	assert.True(t, filepath.IsAbs(cfg.Tracks[0]))
	assert.Equal(t, filepath.Join(os.Getenv("HOME"), "b.wav"), cfg.Tracks[1])

	core := cfg.Core()
	assert.True(t, core.EnableParallel)
	assert.Equal(t, []int{3, 12, 40}, core.Checkpoints)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeConfig(t, "[selection]\nthreshold = 2\n")

	t.Setenv("TRACKSELECT_SELECTION_THRESHOLD", "7")
	t.Setenv("TRACKSELECT_SELECTION_EXCEEDS_BY", "2.5")
	t.Setenv("TRACKSELECT_SELECTION_CHECKPOINTS", "9,1")
	t.Setenv("TRACKSELECT_OUTPUT_FORMAT", "json")
	t.Setenv("TRACKSELECT_LOGGING_LEVEL", "warn")
	t.Setenv("TRACKSELECT_LOGGING_FORMAT", "json")

	cfg, _, _, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Selection.Threshold)
	assert.InDelta(t, 2.5, cfg.Selection.ExceedsBy, 0)
	assert.Equal(t, []int{1, 9}, cfg.Selection.Checkpoints)
	assert.Equal(t, trackselect.DefaultDecisionRate, cfg.Selection.DecisionRate)
	assert.Equal(t, config.FormatJSON, cfg.Output.Format)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadErrors(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	tests := []struct {
		name    string
		body    string
		wantErr string
		is      error
	}{
		{"zero threshold", "[selection]\nthreshold = 0\n", "selection", trackselect.ErrInvalidInput},
		{"bias below one", "[selection]\nexceeds_by = 0.25\n", "selection", trackselect.ErrInvalidConfig},
		{"zero decision rate", "[selection]\ndecision_rate = 0\n", "selection", trackselect.ErrInvalidConfig},
		{"negative checkpoint", "[selection]\ncheckpoints = [-2]\n", "selection", trackselect.ErrInvalidConfig},
		{"bad format", "[output]\nformat = \"xml\"\n", "output.format", nil},
		{"bad level", "[logging]\nlevel = \"chatty\"\n", "logging.level", nil},
		{"bad log format", "[logging]\nformat = \"logfmt\"\n", "logging.format", nil},
		{"unknown key", "[selection]\nthreshhold = 3\n", "parse config", nil},
		{"malformed", "[selection\n", "parse config", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := config.Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}

func TestLoadMissingExplicitPath(t *testing.T) {
	_, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stat config")
}

func TestSampleConfigMatchesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "sample.toml")
	require.NoError(t, config.CreateSample(path))

	cfg, _, exists, err := config.Load(path)
	require.NoError(t, err)
	assert.True(t, exists)
	want := config.Default()
	assert.Equal(t, &want, cfg)

	var raw map[string]any
	require.NoError(t, toml.Unmarshal([]byte(config.SampleConfig()), &raw))
	assert.Contains(t, raw, "selection")
	assert.True(t, strings.HasPrefix(config.SampleConfig(), "# trackselect configuration"))
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := config.ExpandPath("~/x/y.wav")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "x", "y.wav"), got)

	got, err = config.ExpandPath("")
	require.NoError(t, err)
	assert.Empty(t, got)
}
