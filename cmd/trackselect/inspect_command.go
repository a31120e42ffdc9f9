package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	trackselect "github.com/tphakala/go-track-selector"
	"github.com/tphakala/go-track-selector/internal/assemble"
	"github.com/tphakala/go-track-selector/internal/config"
	"github.com/tphakala/go-track-selector/internal/report"
)

// inspection is the JSON form of the inspect command's output.
type inspection struct {
	Tracks       []report.Source `json:"tracks"`
	DecisionRate int             `json:"decision_rate"`
	Ticks        []int           `json:"ticks"`
	Assemblable  bool            `json:"assemblable"`
	Problem      string          `json:"problem,omitempty"`
}

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var sel selectionFlags

	cmd := &cobra.Command{
		Use:   "inspect [track.wav...]",
		Short: "Show track formats and decision-rate lengths without selecting",
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cfg, err := sel.apply(cmd, base)
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}
			paths, err := trackPaths(args, cfg)
			if err != nil {
				return err
			}

			tracks, infos, err := loadTracks(cmd, logger, paths)
			if err != nil {
				return err
			}

			core := cfg.Core()
			signals, err := trackselect.DownsampleTracks(tracks, core)
			if err != nil {
				return err
			}

			result := inspection{
				Tracks:       report.New(core, tracks, infos, &trackselect.Result{}).Tracks,
				DecisionRate: core.DecisionRate,
				Ticks:        make([]int, len(signals)),
				Assemblable:  true,
			}
			for i, sig := range signals {
				result.Ticks[i] = len(sig)
			}
			if _, err := assemble.CommonFormat(infos); err != nil {
				if !errors.Is(err, assemble.ErrFormatMismatch) {
					return err
				}
				result.Assemblable = false
				result.Problem = err.Error()
			}

			out := cmd.OutOrStdout()
			if cfg.Output.Format == config.FormatJSON {
				return report.WriteJSON(out, result)
			}

			rep := report.Report{Tracks: result.Tracks}
			fmt.Fprintln(out, rep.SourcesTable(report.IsTerminal(out)))
			for i, n := range result.Ticks {
				fmt.Fprintf(out, "track %d: %d ticks at %d ticks/s\n", i, n, core.DecisionRate)
			}
			if !result.Assemblable {
				fmt.Fprintf(out, "audio output unavailable: %s\n", result.Problem)
			}
			return nil
		},
	}

	sel.register(cmd)
	return cmd
}
