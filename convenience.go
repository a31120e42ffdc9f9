package trackselect

// NewMonoTrack wraps a single-channel sample array as a Track.
func NewMonoTrack(rate int, samples []int) Track {
	return Track{Rate: rate, Channels: minChannels, Samples: samples}
}

// SelectTracks analyzes tracks with the default decision rate and the given
// threshold and bias, returning only the segments.
func SelectTracks(tracks []Track, threshold int, exceedsBy float64) ([]Segment, error) {
	cfg := DefaultConfig()
	cfg.Threshold = threshold
	cfg.ExceedsBy = exceedsBy

	res, err := Analyze(tracks, cfg)
	if err != nil {
		return nil, err
	}
	return res.Segments, nil
}

// ExtractChannel returns channel ch of interleaved samples.
func ExtractChannel(interleaved []int, channels, ch int) []int {
	if channels < minChannels || ch < 0 || ch >= channels {
		return nil
	}
	out := make([]int, len(interleaved)/channels)
	for i := range out {
		out[i] = interleaved[i*channels+ch]
	}
	return out
}

// Timeline returns the total length in seconds covered by segments.
func Timeline(segments []Segment) float64 {
	if len(segments) == 0 {
		return 0
	}
	return segments[len(segments)-1].End - segments[0].Start
}
