package simdops

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForReturnsWorkingOps(t *testing.T) {
	assert.InDelta(t, 6.0, For[float64]().Sum([]float64{1, 2, 3}), 1e-12)
	assert.InDelta(t, float32(6), For[float32]().Sum([]float32{1, 2, 3}), 1e-6)
}

func TestMean(t *testing.T) {
	assert.InDelta(t, 2.5, Mean([]float64{1, 2, 3, 4}), 1e-12)
	assert.Zero(t, Mean([]float64{}))
}

func TestNormalize(t *testing.T) {
	in := []float64{1, 3}
	out := make([]float64, 2)
	Normalize(out, in, 4)
	assert.InDeltaSlice(t, []float64{0.25, 0.75}, out, 1e-12)

	out = []float64{9, 9}
	Normalize(out, in, 0)
	assert.Equal(t, []float64{0, 0}, out)
}
