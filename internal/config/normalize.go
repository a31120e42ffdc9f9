package config

import (
	"fmt"
	"slices"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeSelection()
	c.normalizeOutput()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	for i, track := range c.Tracks {
		expanded, err := expandPath(strings.TrimSpace(track))
		if err != nil {
			return fmt.Errorf("tracks[%d]: %w", i, err)
		}
		c.Tracks[i] = expanded
	}
	var err error
	if c.Output.AudioPath, err = expandPath(strings.TrimSpace(c.Output.AudioPath)); err != nil {
		return fmt.Errorf("output.audio_path: %w", err)
	}
	if c.Output.SequencePath, err = expandPath(strings.TrimSpace(c.Output.SequencePath)); err != nil {
		return fmt.Errorf("output.sequence_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeSelection() {
	if len(c.Selection.Checkpoints) == 0 {
		c.Selection.Checkpoints = nil
		return
	}
	slices.Sort(c.Selection.Checkpoints)
	c.Selection.Checkpoints = slices.Compact(c.Selection.Checkpoints)
}

func (c *Config) normalizeOutput() {
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	if c.Output.Format == "" {
		c.Output.Format = defaultFormat
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
}
