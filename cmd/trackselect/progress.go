package main

import (
	"fmt"
	"io"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	trackselect "github.com/tphakala/go-track-selector"
	"github.com/tphakala/go-track-selector/internal/wavio"
)

// decodeTracks reads every track in order, drawing a progress bar on w when
// showProgress is set.
func decodeTracks(paths []string, w io.Writer, showProgress bool) ([]trackselect.Track, []wavio.Info, error) {
	if !showProgress {
		return wavio.ReadTracks(paths)
	}

	p := mpb.New(mpb.WithOutput(w), mpb.WithWidth(64))
	bar := p.AddBar(int64(len(paths)),
		mpb.PrependDecorators(
			decor.Name("Decoding: "),
			decor.CountersNoUnit("%d / %d"),
		),
		mpb.AppendDecorators(
			decor.Percentage(),
			decor.EwmaETA(decor.ET_STYLE_GO, 60),
		),
	)

	tracks := make([]trackselect.Track, len(paths))
	infos := make([]wavio.Info, len(paths))
	for i, path := range paths {
		start := time.Now()
		track, info, err := wavio.ReadTrack(path)
		if err != nil {
			bar.Abort(true)
			p.Wait()
			return nil, nil, fmt.Errorf("track %d: %w", i, err)
		}
		tracks[i], infos[i] = track, info
		bar.EwmaIncrement(time.Since(start))
	}
	p.Wait()
	return tracks, infos, nil
}
