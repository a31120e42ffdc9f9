// Package wavio decodes WAV files into tracks and writes PCM back out.
package wavio

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/wav"

	trackselect "github.com/tphakala/go-track-selector"
)

// Info holds validated input file information.
type Info struct {
	Path     string
	Rate     int
	Channels int
	BitDepth int

	// Frames is the frame count declared by the data chunk header.
	Frames int

	// Decoded is the number of frames actually present in the file.
	Decoded int
}

// Truncated reports whether the file holds fewer frames than its header declares.
func (i Info) Truncated() bool {
	return i.Decoded < i.Frames
}

// ReadTrack opens and fully decodes a PCM WAV file.
// The returned track keeps the header's frame count, so a truncated file
// fails later in downsampling instead of being silently shortened.
func ReadTrack(path string) (trackselect.Track, Info, error) {
	inputFile, err := os.Open(path)
	if err != nil {
		return trackselect.Track{}, Info{}, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = inputFile.Close() }()

	track, info, err := Decode(inputFile)
	if err != nil {
		return trackselect.Track{}, Info{}, fmt.Errorf("%s: %w", path, err)
	}
	info.Path = path
	return track, info, nil
}

// Decode reads a complete WAV stream.
func Decode(r io.ReadSeeker) (trackselect.Track, Info, error) {
	decoder := wav.NewDecoder(r)
	if !decoder.IsValidFile() {
		return trackselect.Track{}, Info{}, errors.New("invalid WAV file")
	}

	format := decoder.Format()
	info := Info{
		Rate:     format.SampleRate,
		Channels: format.NumChannels,
		BitDepth: int(decoder.BitDepth),
	}
	if info.Channels < 1 || info.BitDepth < bitsPerByte {
		return trackselect.Track{}, Info{}, fmt.Errorf("unsupported WAV format: %d channels, %d-bit",
			info.Channels, info.BitDepth)
	}

	if err := decoder.FwdToPCM(); err != nil {
		return trackselect.Track{}, Info{}, fmt.Errorf("failed to locate audio data: %w", err)
	}
	blockAlign := info.Channels * bytesPerSample(info.BitDepth)
	info.Frames = decoder.PCMSize / blockAlign

	buf, err := decoder.FullPCMBuffer()
	if buf == nil || (err != nil && !errors.Is(err, io.ErrUnexpectedEOF)) {
		return trackselect.Track{}, Info{}, fmt.Errorf("failed to read audio data: %w", err)
	}

	samples := buf.Data
	// Drop a trailing partial frame left by a truncated file.
	samples = samples[:len(samples)-len(samples)%info.Channels]
	info.Decoded = len(samples) / info.Channels

	return trackselect.Track{
		Rate:     info.Rate,
		Channels: info.Channels,
		Frames:   info.Frames,
		Samples:  samples,
	}, info, nil
}

// ReadTracks decodes every path in order.
func ReadTracks(paths []string) ([]trackselect.Track, []Info, error) {
	tracks := make([]trackselect.Track, len(paths))
	infos := make([]Info, len(paths))
	for i, p := range paths {
		track, info, err := ReadTrack(p)
		if err != nil {
			return nil, nil, fmt.Errorf("track %d: %w", i, err)
		}
		tracks[i] = track
		infos[i] = info
	}
	return tracks, infos, nil
}

func bytesPerSample(bitDepth int) int {
	return (bitDepth-1)/bitsPerByte + 1
}
