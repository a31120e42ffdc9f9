// Package assemble renders the audio of a selection: either the cut through
// the selected tracks or the overlap of all of them.
package assemble

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"

	trackselect "github.com/tphakala/go-track-selector"
	"github.com/tphakala/go-track-selector/internal/wavio"
)

// ErrFormatMismatch is returned when tracks cannot be joined sample for sample.
var ErrFormatMismatch = errors.New("tracks have different audio formats")

// Format describes the PCM layout shared by all tracks.
type Format struct {
	Rate     int
	Channels int
	BitDepth int
}

// CommonFormat returns the format shared by every input, or ErrFormatMismatch.
func CommonFormat(infos []wavio.Info) (Format, error) {
	if len(infos) == 0 {
		return Format{}, fmt.Errorf("%w: no tracks", trackselect.ErrInvalidInput)
	}
	f := Format{Rate: infos[0].Rate, Channels: infos[0].Channels, BitDepth: infos[0].BitDepth}
	for i, info := range infos[1:] {
		if info.Rate != f.Rate || info.Channels != f.Channels || info.BitDepth != f.BitDepth {
			return Format{}, fmt.Errorf("%w: track %d is %d Hz/%d ch/%d-bit, track 0 is %d Hz/%d ch/%d-bit",
				ErrFormatMismatch, i+1, info.Rate, info.Channels, info.BitDepth,
				f.Rate, f.Channels, f.BitDepth)
		}
	}
	if !wavio.SupportedBitDepth(f.BitDepth) {
		return Format{}, fmt.Errorf("%w: cannot write %d-bit audio", ErrFormatMismatch, f.BitDepth)
	}
	return f, nil
}

// frameAt converts a timeline position to a frame index.
func frameAt(seconds float64, rate int) int {
	return int(math.Round(seconds * float64(rate)))
}

// available returns the number of frames actually decoded for a track.
func available(t trackselect.Track, channels int) int {
	return len(t.Samples) / channels
}

func newBuffer(f Format, frames int) *audio.IntBuffer {
	return &audio.IntBuffer{
		Data:           make([]int, frames*f.Channels),
		Format:         &audio.Format{SampleRate: f.Rate, NumChannels: f.Channels},
		SourceBitDepth: f.BitDepth,
	}
}

// Cut concatenates each segment's span taken from its own track.
// Spans past the end of a shorter track are silent.
func Cut(tracks []trackselect.Track, segments []trackselect.Segment, f Format) (*audio.IntBuffer, error) {
	total := 0
	if len(segments) > 0 {
		total = frameAt(segments[len(segments)-1].End, f.Rate)
	}
	buf := newBuffer(f, total)

	for _, seg := range segments {
		if seg.Track < 0 || seg.Track >= len(tracks) {
			return nil, fmt.Errorf("%w: segment references track %d of %d",
				trackselect.ErrInvalidInput, seg.Track, len(tracks))
		}
		src := tracks[seg.Track]
		from := frameAt(seg.Start, f.Rate)
		to := min(frameAt(seg.End, f.Rate), total)
		last := min(to, available(src, f.Channels))
		if last > from {
			copy(buf.Data[from*f.Channels:last*f.Channels], src.Samples[from*f.Channels:last*f.Channels])
		}
	}
	return buf, nil
}

// Mix sums all tracks over the first frames frames, clipping to the bit depth.
func Mix(tracks []trackselect.Track, frames int, f Format) *audio.IntBuffer {
	buf := newBuffer(f, frames)
	for _, src := range tracks {
		n := min(len(src.Samples), len(buf.Data))
		for i := range n {
			buf.Data[i] += src.Samples[i]
		}
	}
	for i, v := range buf.Data {
		buf.Data[i] = wavio.Clip(v, f.BitDepth)
	}
	return buf
}

// Render produces the soundtrack for segments. With overlap set, every track
// plays for the whole timeline; otherwise only the selected one does.
func Render(tracks []trackselect.Track, infos []wavio.Info, segments []trackselect.Segment, overlap bool) (*audio.IntBuffer, error) {
	if len(tracks) != len(infos) {
		return nil, fmt.Errorf("%w: %d tracks but %d infos", trackselect.ErrInvalidInput, len(tracks), len(infos))
	}
	f, err := CommonFormat(infos)
	if err != nil {
		return nil, err
	}
	if overlap {
		frames := 0
		if len(segments) > 0 {
			frames = frameAt(segments[len(segments)-1].End, f.Rate)
		}
		return Mix(tracks, frames, f), nil
	}
	return Cut(tracks, segments, f)
}

// WriteFile renders the soundtrack, writes it as a WAV file and returns the
// number of frames written.
func WriteFile(path string, tracks []trackselect.Track, infos []wavio.Info, segments []trackselect.Segment, overlap bool) (frames int, err error) {
	buf, err := Render(tracks, infos, segments, overlap)
	if err != nil {
		return 0, err
	}

	outputFile, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := outputFile.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()

	w, err := wavio.NewWriter(outputFile, buf.Format.SampleRate, buf.SourceBitDepth, buf.Format.NumChannels)
	if err != nil {
		return 0, err
	}
	if err := w.WriteSamples(buf.Data); err != nil {
		return 0, fmt.Errorf("failed to write samples: %w", err)
	}
	if err := w.Close(); err != nil {
		return 0, fmt.Errorf("failed to finalize WAV header: %w", err)
	}
	return w.Frames(), nil
}

// OutputName returns the default soundtrack file name for a configuration.
// The OA digit is 1 when segments are cut without overlap.
func OutputName(cfg *trackselect.Config, overlap bool) string {
	noOverlap := 1
	if overlap {
		noOverlap = 0
	}
	return fmt.Sprintf("output-SR%d-T%d-EX%g-OA%d.wav", cfg.DecisionRate, cfg.Threshold, cfg.ExceedsBy, noOverlap)
}
