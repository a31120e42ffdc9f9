package trackselect

// BuildSegments run-length encodes an active-track sequence into segments.
//
// A segment closes at the tick where the track changes and the last one
// closes at the final tick, so the segments cover [0, (L-1)/decisionRate].
// An empty sequence yields no segments.
func BuildSegments(sequence []int, decisionRate int) []Segment {
	if len(sequence) == 0 || decisionRate <= 0 {
		return nil
	}

	seconds := func(tick int) float64 {
		return float64(tick) / float64(decisionRate)
	}

	var segments []Segment
	open := Segment{Track: sequence[0]}
	for t := 1; t < len(sequence); t++ {
		if sequence[t] == open.Track {
			continue
		}
		open.EndTick = t
		open.End = seconds(t)
		segments = append(segments, open)
		open = Segment{Track: sequence[t], Start: seconds(t), StartTick: t}
	}

	last := len(sequence) - 1
	open.EndTick = last
	open.End = seconds(last)
	return append(segments, open)
}
