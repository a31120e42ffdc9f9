package trackselect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlign(t *testing.T) {
	in := [][]int{{1, 2, 3}, {4}, {}}
	out := Align(in)

	assert.Equal(t, [][]int{{1, 2, 3}, {4, 0, 0}, {0, 0, 0}}, out)
	assert.Len(t, in[1], 1, "input must not be extended in place")

	out[0][0] = 99
	assert.Equal(t, 1, in[0][0], "output must not alias input")
}

func TestAlignEmpty(t *testing.T) {
	assert.Empty(t, Align(nil))
	assert.Equal(t, [][]int{{}, {}}, Align([][]int{nil, {}}))
}
