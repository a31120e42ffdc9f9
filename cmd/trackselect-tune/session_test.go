package main

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	trackselect "github.com/tphakala/go-track-selector"
	"github.com/tphakala/go-track-selector/internal/logging"
	"github.com/tphakala/go-track-selector/internal/report"
	"github.com/tphakala/go-track-selector/internal/wavio"
)

// handoverTracks returns two 4 s mono tracks at 240 Hz that swap loudness at 2 s.
func handoverTracks() []trackselect.Track {
	const rate = 240
	a := make([]int, 4*rate)
	b := make([]int, 4*rate)
	for i := range a {
		if i < 2*rate {
			a[i], b[i] = 1000, 10
		} else {
			a[i], b[i] = 10, 1000
		}
	}
	return []trackselect.Track{trackselect.NewMonoTrack(rate, a), trackselect.NewMonoTrack(rate, b)}
}

func newTestSession(t *testing.T) *session {
	t.Helper()
	cfg := &trackselect.Config{DecisionRate: 24, Threshold: 3, ExceedsBy: 2}
	s, err := newSession(handoverTracks(), nil, cfg, logging.Discard())
	require.NoError(t, err)
	return s
}

func TestSessionRun(t *testing.T) {
	s := newTestSession(t)

	var out bytes.Buffer
	in := strings.NewReader("threshold=1\nrate=12\nbogus\nthreshold=0\nquit\nthreshold=9\n")
	require.NoError(t, s.run(in, &out))

	text := out.String()
	assert.Contains(t, text, "rate=24 threshold=3 exceeds=2")
	assert.Contains(t, text, "2 segments, 1 switches, 3.958 s at 24 ticks/s")
	assert.Contains(t, text, "rate=24 threshold=1 exceeds=2")
	assert.Contains(t, text, "rate=12 threshold=1 exceeds=2")
	assert.Contains(t, text, `error: unknown command "bogus"`)
	assert.Contains(t, text, "error: ")

	// Commands after quit are not applied and the rejected threshold is not kept.
	assert.Equal(t, 1, s.cfg.Threshold)
	assert.Equal(t, 12, s.cfg.DecisionRate)
	assert.Len(t, s.signals, 2, "one cached signal set per rate")
}

func TestSessionShowMatchesAnalyze(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.handle("threshold=2", &bytes.Buffer{}))

	var got bytes.Buffer
	require.NoError(t, s.show(&got))

	res, err := trackselect.Analyze(handoverTracks(), s.cfg)
	require.NoError(t, err)
	var want bytes.Buffer
	require.NoError(t, report.New(s.cfg, s.tracks, s.infos, res).WriteText(&want, false))

	assert.True(t, strings.HasSuffix(got.String(), want.String()))
	assert.True(t, strings.HasPrefix(got.String(), "rate=24 threshold=2 exceeds=2"))
}

func TestSessionHandle(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		check   func(t *testing.T, cfg *trackselect.Config)
		wantErr bool
	}{
		{"threshold", "threshold=7", func(t *testing.T, cfg *trackselect.Config) { assert.Equal(t, 7, cfg.Threshold) }, false},
		{"exceeds", "exceeds = 1.5", func(t *testing.T, cfg *trackselect.Config) { assert.InDelta(t, 1.5, cfg.ExceedsBy, 0) }, false},
		{"checkpoints", "checkpoints=4, 10", func(t *testing.T, cfg *trackselect.Config) { assert.Equal(t, []int{4, 10}, cfg.Checkpoints) }, false},
		{"clear checkpoints", "checkpoints=", func(t *testing.T, cfg *trackselect.Config) { assert.Empty(t, cfg.Checkpoints) }, false},
		{"blank line", "   ", func(t *testing.T, cfg *trackselect.Config) { assert.Equal(t, 3, cfg.Threshold) }, false},
		{"bad number", "threshold=abc", nil, true},
		{"bias below one", "exceeds=0.9", nil, true},
		{"rate above native", "rate=480", nil, true},
		{"negative checkpoint", "checkpoints=-1", nil, true},
		{"unknown setting", "volume=3", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t)
			before := *s.cfg

			var out bytes.Buffer
			err := s.handle(tt.line, &out)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, before, *s.cfg)
				return
			}
			require.NoError(t, err)
			tt.check(t, s.cfg)
		})
	}
}

func TestSessionCheckpointForcesSwitch(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.handle("threshold=1000", &bytes.Buffer{}))

	var out bytes.Buffer
	require.NoError(t, s.handle("checkpoints=60", &out))
	assert.Contains(t, out.String(), "2 segments, 1 switches")
	assert.Contains(t, out.String(), "60-95")
}

func TestSessionHelpAndQuit(t *testing.T) {
	s := newTestSession(t)

	var out bytes.Buffer
	require.NoError(t, s.handle("help", &out))
	assert.Contains(t, out.String(), "checkpoints=A,B")
	require.ErrorIs(t, s.handle("QUIT", &out), errQuit)
}

func TestNewSessionRejectsInvalidConfig(t *testing.T) {
	_, err := newSession(handoverTracks(), nil, &trackselect.Config{DecisionRate: 24, Threshold: 0, ExceedsBy: 1}, logging.Discard())
	require.ErrorIs(t, err, trackselect.ErrInvalidInput)
}

func TestRunLoadsTracks(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	_, err := newSessionFromFiles(t)
	require.NoError(t, err)

	err = run("", "", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no input tracks")

	err = run("", "loud", []string{"x.wav"})
	require.Error(t, err)
}

func newSessionFromFiles(t *testing.T) (*session, error) {
	t.Helper()
	dir := t.TempDir()
	var paths []string
	for i, tr := range handoverTracks() {
		p := filepath.Join(dir, fmt.Sprintf("cam%d.wav", i))
		require.NoError(t, wavio.WriteFile(p, tr.Samples, tr.Rate, 16, 1))
		paths = append(paths, p)
	}
	tracks, infos, err := wavio.ReadTracks(paths)
	if err != nil {
		return nil, err
	}
	return newSession(tracks, infos, trackselect.DefaultConfig(), logging.Discard())
}
