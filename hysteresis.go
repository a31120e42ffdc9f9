package trackselect

// hysteresis debounces the per-tick winner into a stable active track.
// Its state lives for a single scan.
type hysteresis struct {
	threshold   int
	exceedsBy   float64
	checkpoints map[int]struct{}

	incumbent int // track currently on screen
	candidate int // track accumulating consecutive wins
	wins      int // consecutive wins of candidate

	scores []float64
}

func newHysteresis(config *Config) *hysteresis {
	return &hysteresis{
		threshold:   config.Threshold,
		exceedsBy:   config.ExceedsBy,
		checkpoints: config.checkpointSet(),
		incumbent:   firstTrack,
		candidate:   firstTrack,
	}
}

// step advances the filter by one tick and returns the active track.
func (h *hysteresis) step(aligned [][]int, t int) int {
	var winner int
	winner, h.scores = loudest(aligned, t, h.incumbent, h.exceedsBy, h.scores)

	if winner == h.candidate {
		h.wins++
	} else {
		h.candidate = winner
		h.wins = 1
	}

	if h.wins >= h.threshold {
		h.incumbent = h.candidate
	}

	// Checkpoints take the winner without waiting for the threshold.
	if _, ok := h.checkpoints[t]; ok {
		h.incumbent = winner
	}

	return h.incumbent
}

// scan runs the filter left to right over aligned signals.
func (h *hysteresis) scan(aligned [][]int) []int {
	out := make([]int, alignedLength(aligned))
	for t := range out {
		out[t] = h.step(aligned, t)
	}
	return out
}
