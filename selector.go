package trackselect

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Loudest returns the index of the loudest track at tick t.
//
// Every track is scored by its absolute sample value; the incumbent's score is
// multiplied by exceedsBy first. On equal scores the lowest index wins, so a
// silent tick selects track 0.
func Loudest(signals [][]int, t, incumbent int, exceedsBy float64) (int, error) {
	if len(signals) == 0 {
		return 0, fmt.Errorf("%w: no tracks", ErrInvalidInput)
	}
	if incumbent < 0 || incumbent >= len(signals) {
		return 0, fmt.Errorf("%w: incumbent %d is not one of %d tracks", ErrInvalidInput, incumbent, len(signals))
	}
	for i, s := range signals {
		if t < 0 || t >= len(s) {
			return 0, fmt.Errorf("%w: tick %d outside track %d (%d ticks)", ErrOutOfRange, t, i, len(s))
		}
	}

	winner, _ := loudest(signals, t, incumbent, exceedsBy, nil)
	return winner, nil
}

// loudest is Loudest without validation. scores is reused between ticks.
func loudest(signals [][]int, t, incumbent int, exceedsBy float64, scores []float64) (int, []float64) {
	if cap(scores) < len(signals) {
		scores = make([]float64, len(signals))
	}
	scores = scores[:len(signals)]

	for c, s := range signals {
		scores[c] = math.Abs(float64(s[t]))
	}
	scores[incumbent] *= exceedsBy

	// MaxIdx returns the first index on ties.
	return floats.MaxIdx(scores), scores
}
