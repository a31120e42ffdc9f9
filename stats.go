package trackselect

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/tphakala/go-track-selector/internal/simdops"
)

// TrackStats summarises one track's part in a selection.
type TrackStats struct {
	Track int `json:"track"`

	// ScreenTime is the total segment duration in seconds.
	ScreenTime float64 `json:"screen_time"`

	// Share is ScreenTime as a fraction of the timeline.
	Share float64 `json:"share"`

	// Segments is the number of segments taken from the track.
	Segments int `json:"segments"`

	// MeanMagnitude and PeakMagnitude describe the decision signal.
	MeanMagnitude float64 `json:"mean_magnitude"`
	PeakMagnitude float64 `json:"peak_magnitude"`
}

// Stats summarises a selection.
type Stats struct {
	Tracks   []TrackStats `json:"tracks"`
	Switches int          `json:"switches"`
	Duration float64      `json:"duration"`
}

// ComputeStats derives per-track statistics from aligned signals and the
// segments selected from them.
func ComputeStats(signals [][]int, segments []Segment) Stats {
	n := len(signals)
	stats := Stats{Tracks: make([]TrackStats, n)}

	screen := make([]float64, n)
	for _, seg := range segments {
		if seg.Track < 0 || seg.Track >= n {
			continue
		}
		screen[seg.Track] += seg.Duration()
		stats.Tracks[seg.Track].Segments++
	}
	if len(segments) > 0 {
		stats.Switches = len(segments) - 1
		stats.Duration = segments[len(segments)-1].End
	}

	share := make([]float64, n)
	simdops.Normalize(share, screen, stats.Duration)

	for i, sig := range signals {
		mean, peak := magnitudes(sig)
		stats.Tracks[i] = TrackStats{
			Track:         i,
			ScreenTime:    screen[i],
			Share:         share[i],
			Segments:      stats.Tracks[i].Segments,
			MeanMagnitude: mean,
			PeakMagnitude: peak,
		}
	}

	return stats
}

// magnitudes returns the mean and peak absolute value of a signal.
func magnitudes(signal []int) (mean, peak float64) {
	if len(signal) == 0 {
		return 0, 0
	}
	mags := make([]float64, len(signal))
	for i, v := range signal {
		mags[i] = math.Abs(float64(v))
	}
	return simdops.Mean(mags), floats.Max(mags)
}
