// Package report renders selection results as tables or JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	trackselect "github.com/tphakala/go-track-selector"
	"github.com/tphakala/go-track-selector/internal/wavio"
)

// Settings echoes the parameters a report was produced with.
type Settings struct {
	DecisionRate int     `json:"decision_rate"`
	Threshold    int     `json:"threshold"`
	ExceedsBy    float64 `json:"exceeds_by"`
	Checkpoints  []int   `json:"checkpoints,omitempty"`
}

// Source describes one input track.
type Source struct {
	Index    int     `json:"index"`
	Path     string  `json:"path,omitempty"`
	Rate     int     `json:"rate"`
	Channels int     `json:"channels"`
	BitDepth int     `json:"bit_depth,omitempty"`
	Duration float64 `json:"duration"`
}

// Report is the full output of a selection run.
type Report struct {
	Settings Settings              `json:"settings"`
	Tracks   []Source              `json:"tracks"`
	Segments []trackselect.Segment `json:"segments"`
	Stats    trackselect.Stats     `json:"stats"`
}

// New assembles a report. infos may be shorter than the tracks, in which
// case only the track's own fields are filled in.
func New(cfg *trackselect.Config, tracks []trackselect.Track, infos []wavio.Info, res *trackselect.Result) Report {
	r := Report{
		Settings: Settings{
			DecisionRate: cfg.DecisionRate,
			Threshold:    cfg.Threshold,
			ExceedsBy:    cfg.ExceedsBy,
			Checkpoints:  cfg.Checkpoints,
		},
		Tracks:   make([]Source, len(tracks)),
		Segments: res.Segments,
		Stats:    res.Stats,
	}
	if r.Segments == nil {
		r.Segments = []trackselect.Segment{}
	}
	for i, t := range tracks {
		src := Source{Index: i, Rate: t.Rate, Channels: max(t.Channels, 1), Duration: t.Duration()}
		if i < len(infos) {
			src.Path = infos[i].Path
			src.BitDepth = infos[i].BitDepth
		}
		r.Tracks[i] = src
	}
	return r
}

// name returns a short label for a track.
func (r Report) name(track int) string {
	if track >= 0 && track < len(r.Tracks) && r.Tracks[track].Path != "" {
		return filepath.Base(r.Tracks[track].Path)
	}
	return "track " + strconv.Itoa(track)
}

// SegmentsTable renders one row per segment.
func (r Report) SegmentsTable(styled bool) string {
	headers := []string{"#", "Track", "Source", "Start", "End", "Duration", "Ticks"}
	aligns := []columnAlignment{alignRight, alignRight, alignLeft, alignRight, alignRight, alignRight, alignRight}
	rows := make([][]string, 0, len(r.Segments))
	for i, seg := range r.Segments {
		rows = append(rows, []string{
			strconv.Itoa(i),
			strconv.Itoa(seg.Track),
			r.name(seg.Track),
			seconds(seg.Start),
			seconds(seg.End),
			seconds(seg.Duration()),
			fmt.Sprintf("%d-%d", seg.StartTick, seg.EndTick),
		})
	}
	return renderTable(headers, rows, aligns, styled)
}

// StatsTable renders one row per track.
func (r Report) StatsTable(styled bool) string {
	headers := []string{"Track", "Source", "Screen time", "Share", "Segments", "Mean", "Peak"}
	aligns := []columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight}
	rows := make([][]string, 0, len(r.Stats.Tracks))
	for _, ts := range r.Stats.Tracks {
		rows = append(rows, []string{
			strconv.Itoa(ts.Track),
			r.name(ts.Track),
			seconds(ts.ScreenTime),
			fmt.Sprintf("%.1f%%", ts.Share*100),
			strconv.Itoa(ts.Segments),
			fmt.Sprintf("%.1f", ts.MeanMagnitude),
			fmt.Sprintf("%.0f", ts.PeakMagnitude),
		})
	}
	return renderTable(headers, rows, aligns, styled)
}

// SourcesTable renders the input track formats.
func (r Report) SourcesTable(styled bool) string {
	headers := []string{"Track", "Source", "Rate", "Channels", "Bits", "Duration"}
	aligns := []columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignRight, alignRight}
	rows := make([][]string, 0, len(r.Tracks))
	for _, src := range r.Tracks {
		bits := "-"
		if src.BitDepth > 0 {
			bits = strconv.Itoa(src.BitDepth)
		}
		rows = append(rows, []string{
			strconv.Itoa(src.Index),
			r.name(src.Index),
			strconv.Itoa(src.Rate),
			strconv.Itoa(src.Channels),
			bits,
			seconds(src.Duration),
		})
	}
	return renderTable(headers, rows, aligns, styled)
}

// WriteText writes the segment and statistics tables with a summary line.
func (r Report) WriteText(w io.Writer, styled bool) error {
	_, err := fmt.Fprintf(w, "%s\n\n%s\n%d segments, %d switches, %s s at %d ticks/s\n",
		r.SegmentsTable(styled), r.StatsTable(styled),
		len(r.Segments), r.Stats.Switches, seconds(r.Stats.Duration), r.Settings.DecisionRate)
	return err
}

// WriteJSON encodes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func seconds(s float64) string {
	return strconv.FormatFloat(s, 'f', 3, 64)
}
