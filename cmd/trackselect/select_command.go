package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	trackselect "github.com/tphakala/go-track-selector"
	"github.com/tphakala/go-track-selector/internal/assemble"
	"github.com/tphakala/go-track-selector/internal/config"
	"github.com/tphakala/go-track-selector/internal/report"
	"github.com/tphakala/go-track-selector/internal/wavio"
)

// selectionFlags are the command-line overrides shared by select and inspect.
type selectionFlags struct {
	rate        int
	threshold   int
	exceedsBy   float64
	checkpoints []int
	parallel    bool
	jsonOutput  bool
}

func (f *selectionFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.IntVarP(&f.rate, "rate", "r", trackselect.DefaultDecisionRate, "Decision ticks per second")
	flags.IntVarP(&f.threshold, "threshold", "t", trackselect.DefaultThreshold, "Consecutive wins needed to switch tracks")
	flags.Float64VarP(&f.exceedsBy, "exceeds-by", "x", trackselect.DefaultExceedsBy, "Bias factor applied to the active track")
	flags.IntSliceVar(&f.checkpoints, "checkpoints", nil, "Ticks at which the loudest track takes over immediately")
	flags.BoolVar(&f.parallel, "parallel", false, "Downsample tracks concurrently")
	flags.BoolVar(&f.jsonOutput, "json", false, "Write JSON instead of tables")
}

// apply copies cfg and overrides the values whose flags were given.
func (f *selectionFlags) apply(cmd *cobra.Command, cfg *config.Config) (*config.Config, error) {
	out := *cfg
	out.Tracks = append([]string(nil), cfg.Tracks...)
	out.Selection.Checkpoints = append([]int(nil), cfg.Selection.Checkpoints...)

	flags := cmd.Flags()
	if flags.Changed("rate") {
		out.Selection.DecisionRate = f.rate
	}
	if flags.Changed("threshold") {
		out.Selection.Threshold = f.threshold
	}
	if flags.Changed("exceeds-by") {
		out.Selection.ExceedsBy = f.exceedsBy
	}
	if flags.Changed("checkpoints") {
		out.Selection.Checkpoints = f.checkpoints
	}
	if flags.Changed("parallel") {
		out.Selection.Parallel = f.parallel
	}
	if f.jsonOutput {
		out.Output.Format = config.FormatJSON
	}

	if err := out.Validate(); err != nil {
		return nil, err
	}
	return &out, nil
}

// trackPaths prefers positional arguments over the configured track list.
func trackPaths(args []string, cfg *config.Config) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if len(cfg.Tracks) > 0 {
		return cfg.Tracks, nil
	}
	return nil, errors.New("no input tracks: pass WAV files as arguments or set tracks in the config file")
}

func loadTracks(cmd *cobra.Command, logger *slog.Logger, paths []string) ([]trackselect.Track, []wavio.Info, error) {
	tracks, infos, err := decodeTracks(paths, cmd.ErrOrStderr(), report.IsTerminal(cmd.ErrOrStderr()))
	if err != nil {
		return nil, nil, err
	}
	for i, info := range infos {
		logger.Debug("loaded track",
			"track", i,
			"path", info.Path,
			"rate", info.Rate,
			"channels", info.Channels,
			"bit_depth", info.BitDepth,
			"frames", info.Frames)
		if info.Truncated() {
			logger.Warn("track is shorter than its header declares",
				"track", i,
				"path", info.Path,
				"declared_frames", info.Frames,
				"decoded_frames", info.Decoded)
		}
	}
	return tracks, infos, nil
}

func newSelectCommand(ctx *commandContext) *cobra.Command {
	var sel selectionFlags
	var audioOut string
	var overlapAudio bool
	var dumpSequence string

	cmd := &cobra.Command{
		Use:   "select [track.wav...]",
		Short: "Select the active track over time and print the segments",
		Long: `Select decodes every track, reduces it to the decision rate and picks the
loudest track at each tick. A challenger has to beat the active track's level
times --exceeds-by for --threshold ticks in a row before it takes over.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cfg, err := sel.apply(cmd, base)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("audio-out") {
				cfg.Output.AudioPath = audioOut
			}
			if cmd.Flags().Changed("overlap-audio") {
				cfg.Output.OverlapAudio = overlapAudio
			}
			if cmd.Flags().Changed("dump-sequence") {
				cfg.Output.SequencePath = dumpSequence
			}

			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}
			paths, err := trackPaths(args, cfg)
			if err != nil {
				return err
			}
			return runSelect(cmd, logger, cfg, paths)
		},
	}

	sel.register(cmd)
	cmd.Flags().StringVarP(&audioOut, "audio-out", "o", "", "Write the assembled soundtrack to this WAV file or directory")
	cmd.Flags().BoolVar(&overlapAudio, "overlap-audio", false, "Mix all tracks instead of cutting between them")
	cmd.Flags().StringVar(&dumpSequence, "dump-sequence", "", "Write the per-tick active track as JSON to this file")
	return cmd
}

func runSelect(cmd *cobra.Command, logger *slog.Logger, cfg *config.Config, paths []string) error {
	tracks, infos, err := loadTracks(cmd, logger, paths)
	if err != nil {
		return err
	}

	core := cfg.Core()
	start := time.Now()
	res, err := trackselect.Analyze(tracks, core)
	if err != nil {
		return err
	}
	logger.Info("selection complete",
		"tracks", len(tracks),
		"ticks", len(res.Sequence),
		"segments", len(res.Segments),
		"switches", res.Stats.Switches,
		"elapsed", time.Since(start))

	if path := cfg.Output.SequencePath; path != "" {
		if err := report.WriteSequenceFile(path, core.DecisionRate, res.Sequence); err != nil {
			return err
		}
		logger.Info("wrote sequence", "path", path)
	}

	if cfg.Output.AudioPath != "" {
		path, err := audioOutputPath(cfg.Output.AudioPath, core, cfg.Output.OverlapAudio)
		if err != nil {
			return err
		}
		frames, err := assemble.WriteFile(path, tracks, infos, res.Segments, cfg.Output.OverlapAudio)
		if err != nil {
			return fmt.Errorf("write soundtrack: %w", err)
		}
		logger.Info("wrote soundtrack", "path", path, "frames", frames, "overlap", cfg.Output.OverlapAudio)
	}

	rep := report.New(core, tracks, infos, res)
	out := cmd.OutOrStdout()
	if cfg.Output.Format == config.FormatJSON {
		return report.WriteJSON(out, rep)
	}
	return rep.WriteText(out, report.IsTerminal(out))
}

// audioOutputPath places the default file name inside path when path is a
// directory.
func audioOutputPath(path string, cfg *trackselect.Config, overlap bool) (string, error) {
	if strings.HasSuffix(path, string(os.PathSeparator)) {
		if err := os.MkdirAll(path, 0o755); err != nil {
			return "", fmt.Errorf("create output directory %q: %w", path, err)
		}
		return filepath.Join(path, assemble.OutputName(cfg, overlap)), nil
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return filepath.Join(path, assemble.OutputName(cfg, overlap)), nil
	}
	return path, nil
}
