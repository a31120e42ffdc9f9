package trackselect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-track-selector/internal/testutil"
)

func TestDownsampleSilence(t *testing.T) {
	out, err := Downsample(48000, make([]int, 48000), 24)
	require.NoError(t, err)
	assert.Len(t, out, 24)
	testutil.AssertAllZero(t, out)
}

func TestDownsample(t *testing.T) {
	tests := []struct {
		name         string
		nativeRate   int
		samples      []int
		decisionRate int
		want         []int
	}{
		{"divisor 3, remainder 1", 10, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, 3, []int{0, 3, 6}},
		{"divisor 3, exact multiple", 9, []int{0, 1, 2, 3, 4, 5, 6, 7, 8}, 3, []int{0, 3, 6}},
		{"keeps sign", 2, []int{-5, 1, 7, -2}, 1, []int{-5, 7}},
		{"same rate", 4, []int{4, -3, 2, -1}, 4, []int{4, -3, 2, -1}},
		{"divisor floors", 7, []int{1, 2, 3, 4, 5, 6, 7}, 3, []int{1, 3, 5}},
		{"shorter than one tick", 100, []int{1, 2, 3}, 1, []int{}},
		{"empty", 100, nil, 10, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Downsample(tt.nativeRate, tt.samples, tt.decisionRate)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// The terminal read stops at floor(frames/divisor) ticks. A loop that ran up
// to and including the last frame index would read one sample past the end
// whenever the frame count is a multiple of the divisor; whether a partial
// final tick was ever intended is an open question, so none is emitted.
func TestDownsampleNeverReadsPastEnd(t *testing.T) {
	samples := []int{1, 2, 3, 4, 5, 6}
	out, err := Downsample(6, samples, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 4}, out)
}

func TestDownsampleErrors(t *testing.T) {
	tests := []struct {
		name    string
		track   Track
		rate    int
		wantErr error
	}{
		{"decision above native", NewMonoTrack(16, make([]int, 32)), 24, ErrInvalidConfig},
		{"zero decision rate", NewMonoTrack(16, make([]int, 32)), 0, ErrInvalidConfig},
		{"zero native rate", NewMonoTrack(0, make([]int, 32)), 1, ErrInvalidConfig},
		{"partial frame", Track{Rate: 8, Channels: 2, Samples: make([]int, 5)}, 1, ErrInvalidInput},
		{"too many channels", Track{Rate: 8, Channels: 1000, Samples: make([]int, 1000)}, 1, ErrInvalidInput},
		{"negative frames", Track{Rate: 8, Channels: 1, Frames: -1, Samples: make([]int, 8)}, 1, ErrInvalidInput},
		{"truncated data", Track{Rate: 10, Channels: 1, Frames: 10, Samples: make([]int, 5)}, 5, ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := tt.track.Downsample(tt.rate)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, out)
		})
	}
}

func TestDownsampleReadsFirstChannel(t *testing.T) {
	// Left channel counts up, right channel is loud noise that must be ignored.
	track := Track{
		Rate:     6,
		Channels: 2,
		Samples:  []int{1, 900, 2, -900, 3, 900, 4, -900, 5, 900, 6, -900},
	}
	out, err := track.Downsample(2)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 4}, out)
}

func TestDownsampleUsesDeclaredFrames(t *testing.T) {
	track := Track{Rate: 4, Channels: 1, Frames: 4, Samples: []int{1, 2, 3, 4, 5, 6, 7, 8}}
	out, err := track.Downsample(2)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, out)
}

func TestDivisor(t *testing.T) {
	d, err := Divisor(44100, 24)
	require.NoError(t, err)
	assert.Equal(t, 1837, d)

	d, err = Divisor(24, 24)
	require.NoError(t, err)
	assert.Equal(t, 1, d)

	_, err = Divisor(23, 24)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestTrackDuration(t *testing.T) {
	assert.InDelta(t, 2.0, NewMonoTrack(8000, make([]int, 16000)).Duration(), testutil.DefaultTolerance)
	assert.InDelta(t, 1.5, Track{Rate: 2, Channels: 2, Frames: 3}.Duration(), testutil.DefaultTolerance)
	assert.Zero(t, Track{}.Duration())
}
