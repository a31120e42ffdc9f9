package trackselect

import (
	"fmt"
	"sync"
)

// Track is one decoded input recording.
type Track struct {
	// Rate is the native sample rate in Hz.
	Rate int

	// Channels is the number of interleaved channels in Samples.
	// Zero is treated as mono.
	Channels int

	// Frames is the frame count reported by the decoder. When zero it is
	// derived from len(Samples). A value larger than the decoded data makes
	// Downsample fail with ErrOutOfRange instead of reading past the end.
	Frames int

	// Samples holds interleaved signed PCM samples. Only channel 0 is read.
	Samples []int
}

func (t Track) channels() int {
	if t.Channels == 0 {
		return minChannels
	}
	return t.Channels
}

// frames returns the frame count used as the downsampling loop bound.
func (t Track) frames() int {
	if t.Frames > 0 {
		return t.Frames
	}
	return len(t.Samples) / t.channels()
}

// Duration returns the track length in seconds.
func (t Track) Duration() float64 {
	if t.Rate <= 0 {
		return 0
	}
	return float64(t.frames()) / float64(t.Rate)
}

func (t Track) validate() error {
	if t.Rate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive, got %d", ErrInvalidConfig, t.Rate)
	}
	ch := t.channels()
	if ch < minChannels || ch > maxChannels {
		return fmt.Errorf("%w: channel count %d out of range (1-%d)", ErrInvalidInput, ch, maxChannels)
	}
	if len(t.Samples)%ch != 0 {
		return fmt.Errorf("%w: %d samples is not a whole number of %d-channel frames",
			ErrInvalidInput, len(t.Samples), ch)
	}
	if t.Frames < 0 {
		return fmt.Errorf("%w: negative frame count %d", ErrInvalidInput, t.Frames)
	}
	return nil
}

// Divisor returns the number of native frames per decision tick.
func Divisor(nativeRate, decisionRate int) (int, error) {
	if nativeRate <= 0 || decisionRate <= 0 {
		return 0, fmt.Errorf("%w: rates must be positive (native %d, decision %d)",
			ErrInvalidConfig, nativeRate, decisionRate)
	}
	divisor := nativeRate / decisionRate
	if divisor < 1 {
		return 0, fmt.Errorf("%w: decision rate %d exceeds native rate %d",
			ErrInvalidConfig, decisionRate, nativeRate)
	}
	return divisor, nil
}

// Downsample reduces a mono sample array to one raw sample per decision tick
// by nearest-neighbour decimation. The result has len(samples)/divisor values.
func Downsample(nativeRate int, samples []int, decisionRate int) ([]int, error) {
	return Track{Rate: nativeRate, Channels: minChannels, Samples: samples}.Downsample(decisionRate)
}

// Downsample reduces the track's first channel to the decision rate.
// Values keep their sign; magnitudes are taken during selection.
func (t Track) Downsample(decisionRate int) ([]int, error) {
	if err := t.validate(); err != nil {
		return nil, err
	}
	divisor, err := Divisor(t.Rate, decisionRate)
	if err != nil {
		return nil, err
	}

	ch := t.channels()
	count := t.frames() / divisor
	out := make([]int, count)
	for i := range count {
		idx := i*divisor*ch + firstChannel
		if idx >= len(t.Samples) {
			return nil, fmt.Errorf("%w: tick %d reads sample %d of %d (declared %d frames)",
				ErrOutOfRange, i, idx, len(t.Samples), t.frames())
		}
		out[i] = t.Samples[idx]
	}
	return out, nil
}

// DownsampleTracks downsamples every track to config.DecisionRate.
// With EnableParallel set, tracks are processed concurrently; the result
// order always matches the input order.
func DownsampleTracks(tracks []Track, config *Config) ([][]int, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}
	if len(tracks) == 0 {
		return nil, fmt.Errorf("%w: no tracks", ErrInvalidInput)
	}

	if config.EnableParallel && len(tracks) > 1 {
		return downsampleParallel(tracks, config.DecisionRate)
	}
	return downsampleSequential(tracks, config.DecisionRate)
}

// downsampleParallel processes tracks concurrently.
func downsampleParallel(tracks []Track, decisionRate int) ([][]int, error) {
	signals := make([][]int, len(tracks))
	errs := make([]error, len(tracks))
	var wg sync.WaitGroup

	for i := range tracks {
		wg.Add(1)
		go func(track int) {
			defer wg.Done()
			signals[track], errs[track] = tracks[track].Downsample(decisionRate)
		}(i)
	}
	wg.Wait()

	// Report the lowest failing track so errors are deterministic.
	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("track %d: %w", i, err)
		}
	}
	return signals, nil
}

// downsampleSequential processes tracks one by one.
func downsampleSequential(tracks []Track, decisionRate int) ([][]int, error) {
	signals := make([][]int, len(tracks))
	for i := range tracks {
		sig, err := tracks[i].Downsample(decisionRate)
		if err != nil {
			return nil, fmt.Errorf("track %d: %w", i, err)
		}
		signals[i] = sig
	}
	return signals, nil
}
