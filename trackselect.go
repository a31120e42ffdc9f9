package trackselect

import (
	"errors"
	"fmt"
	"math"
)

// Config holds selection configuration.
// A Config is read-only to the package; build it once and share it.
type Config struct {
	// DecisionRate is the number of decision ticks per second.
	// Every track is downsampled to this rate before comparison.
	DecisionRate int

	// Threshold is the number of consecutive ticks a challenger must win
	// before it replaces the incumbent. 1 disables debouncing.
	Threshold int

	// ExceedsBy multiplies the incumbent's magnitude before comparison,
	// so a challenger must be louder by this factor to win a tick.
	ExceedsBy float64

	// Checkpoints are tick indices at which the instantaneous winner becomes
	// the incumbent immediately, bypassing Threshold.
	Checkpoints []int

	// EnableParallel downsamples tracks concurrently, one goroutine per track.
	// Selection itself is always sequential.
	EnableParallel bool
}

// Segment is a span of the output timeline taken from a single track.
type Segment struct {
	// Track is the zero-based index of the source track.
	Track int `json:"track"`

	// Start and End are in seconds.
	Start float64 `json:"start"`
	End   float64 `json:"end"`

	// StartTick and EndTick are the same bounds in decision ticks.
	StartTick int `json:"start_tick"`
	EndTick   int `json:"end_tick"`
}

// Duration returns the segment length in seconds.
func (s Segment) Duration() float64 {
	return s.End - s.Start
}

// Common errors returned by the package.
var (
	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid selector configuration")

	// ErrInvalidInput indicates missing or malformed track data.
	ErrInvalidInput = errors.New("invalid input")

	// ErrOutOfRange indicates a read past the end of a track's sample data.
	ErrOutOfRange = errors.New("sample index out of range")
)

// DefaultConfig returns the configuration used when nothing is specified.
func DefaultConfig() *Config {
	return &Config{
		DecisionRate: DefaultDecisionRate,
		Threshold:    DefaultThreshold,
		ExceedsBy:    DefaultExceedsBy,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.DecisionRate < minDecisionRate {
		return fmt.Errorf("%w: decision rate must be at least %d", ErrInvalidConfig, minDecisionRate)
	}

	// Threshold and bias are reported as both bad input and bad configuration.
	if c.Threshold < minThreshold {
		return fmt.Errorf("%w: %w: threshold must be at least %d, got %d",
			ErrInvalidInput, ErrInvalidConfig, minThreshold, c.Threshold)
	}

	if c.ExceedsBy < minExceedsBy || math.IsNaN(c.ExceedsBy) || math.IsInf(c.ExceedsBy, 0) {
		return fmt.Errorf("%w: %w: exceeds-by must be at least %v, got %v",
			ErrInvalidInput, ErrInvalidConfig, minExceedsBy, c.ExceedsBy)
	}

	for _, cp := range c.Checkpoints {
		if cp < 0 {
			return fmt.Errorf("%w: checkpoint tick %d is negative", ErrInvalidConfig, cp)
		}
	}

	return nil
}

// SelectSegments picks the active track for every tick of the already
// downsampled signals and returns the resulting segments.
// Signals of differing lengths are padded with silence.
func SelectSegments(signals [][]int, config *Config) ([]Segment, error) {
	seq, err := ActiveSequence(signals, config)
	if err != nil {
		return nil, err
	}
	return BuildSegments(seq, config.DecisionRate), nil
}

// ActiveSequence returns the debounced active-track index for every tick.
func ActiveSequence(signals [][]int, config *Config) ([]int, error) {
	if err := validateSelection(signals, config); err != nil {
		return nil, err
	}

	aligned := Align(signals)
	f := newHysteresis(config)
	return f.scan(aligned), nil
}

// InstantSequence returns the biased but undebounced winner for every tick.
// Each tick's bias goes to the previous tick's winner.
func InstantSequence(signals [][]int, exceedsBy float64) ([]int, error) {
	cfg := &Config{DecisionRate: minDecisionRate, Threshold: minThreshold, ExceedsBy: exceedsBy}
	if err := validateSelection(signals, cfg); err != nil {
		return nil, err
	}

	aligned := Align(signals)
	out := make([]int, alignedLength(aligned))
	incumbent := firstTrack
	var scores []float64
	for t := range out {
		incumbent, scores = loudest(aligned, t, incumbent, exceedsBy, scores)
		out[t] = incumbent
	}
	return out, nil
}

func validateSelection(signals [][]int, config *Config) error {
	if config == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}
	if len(signals) == 0 {
		return fmt.Errorf("%w: no tracks", ErrInvalidInput)
	}
	return config.Validate()
}

// Result holds everything Analyze computes for a set of tracks.
type Result struct {
	// Signals are the decision-rate signals, aligned to a common length.
	Signals [][]int

	// Sequence is the active track for every tick.
	Sequence []int

	// Segments is the run-length encoding of Sequence.
	Segments []Segment

	// Stats summarises the selection per track.
	Stats Stats
}

// Analyze downsamples the tracks and selects segments in one pass.
func Analyze(tracks []Track, config *Config) (*Result, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}
	if len(tracks) == 0 {
		return nil, fmt.Errorf("%w: no tracks", ErrInvalidInput)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	signals, err := DownsampleTracks(tracks, config)
	if err != nil {
		return nil, err
	}
	return AnalyzeSignals(signals, config)
}

// AnalyzeSignals selects segments for signals already at the decision rate.
// Signals of unequal length are zero padded first.
func AnalyzeSignals(signals [][]int, config *Config) (*Result, error) {
	if err := validateSelection(signals, config); err != nil {
		return nil, err
	}

	aligned := Align(signals)
	seq := newHysteresis(config).scan(aligned)
	segments := BuildSegments(seq, config.DecisionRate)

	return &Result{
		Signals:  aligned,
		Sequence: seq,
		Segments: segments,
		Stats:    ComputeStats(aligned, segments),
	}, nil
}

// checkpointSet returns the checkpoints as a lookup set.
func (c *Config) checkpointSet() map[int]struct{} {
	if len(c.Checkpoints) == 0 {
		return nil
	}
	set := make(map[int]struct{}, len(c.Checkpoints))
	for _, cp := range c.Checkpoints {
		set[cp] = struct{}{}
	}
	return set
}
