package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	trackselect "github.com/tphakala/go-track-selector"
	"github.com/tphakala/go-track-selector/internal/report"
	"github.com/tphakala/go-track-selector/internal/wavio"
)

const prompt = "> "

const helpText = `commands:
  threshold=N        consecutive wins needed to switch
  exceeds=F          bias factor for the active track
  rate=N             decision ticks per second
  checkpoints=A,B,.. forced switch ticks (empty clears)
  show               print the current selection
  help               print this text
  quit               leave
`

var errQuit = errors.New("quit")

// session holds decoded tracks and re-runs selection as parameters change.
// Decision-rate signals are cached per rate so only a rate change re-reads
// the tracks.
type session struct {
	tracks []trackselect.Track
	infos  []wavio.Info
	cfg    *trackselect.Config
	logger *slog.Logger

	signals map[int][][]int
}

func newSession(tracks []trackselect.Track, infos []wavio.Info, cfg *trackselect.Config, logger *slog.Logger) (*session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &session{
		tracks:  tracks,
		infos:   infos,
		cfg:     cfg,
		logger:  logger,
		signals: make(map[int][][]int),
	}
	if _, err := s.downsampled(cfg); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *session) downsampled(cfg *trackselect.Config) ([][]int, error) {
	if sig, ok := s.signals[cfg.DecisionRate]; ok {
		return sig, nil
	}
	sig, err := trackselect.DownsampleTracks(s.tracks, cfg)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("downsampled tracks", "rate", cfg.DecisionRate, "tracks", len(sig))
	s.signals[cfg.DecisionRate] = sig
	return sig, nil
}

// run reads commands until quit or end of input.
func (s *session) run(in io.Reader, out io.Writer) error {
	if err := s.show(out); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	fmt.Fprint(out, prompt)
	for scanner.Scan() {
		err := s.handle(scanner.Text(), out)
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
		fmt.Fprint(out, prompt)
	}
	fmt.Fprintln(out)
	return scanner.Err()
}

// handle applies one command line. Invalid values leave the configuration
// unchanged.
func (s *session) handle(line string, out io.Writer) error {
	line = strings.TrimSpace(line)
	switch strings.ToLower(line) {
	case "":
		return nil
	case "quit", "exit", "q":
		return errQuit
	case "show":
		return s.show(out)
	case "help", "?":
		_, err := io.WriteString(out, helpText)
		return err
	}

	key, value, ok := strings.Cut(line, "=")
	if !ok {
		return fmt.Errorf("unknown command %q (try help)", line)
	}
	next, err := s.withSetting(strings.ToLower(strings.TrimSpace(key)), strings.TrimSpace(value))
	if err != nil {
		return err
	}
	if err := next.Validate(); err != nil {
		return err
	}
	if _, err := s.downsampled(next); err != nil {
		return err
	}
	s.cfg = next
	s.logger.Info("parameters changed",
		"rate", next.DecisionRate,
		"threshold", next.Threshold,
		"exceeds_by", next.ExceedsBy,
		"checkpoints", next.Checkpoints)
	return s.show(out)
}

// withSetting returns a copy of the current configuration with one value changed.
func (s *session) withSetting(key, value string) (*trackselect.Config, error) {
	next := *s.cfg
	next.Checkpoints = append([]int(nil), s.cfg.Checkpoints...)

	var err error
	switch key {
	case "threshold", "t":
		next.Threshold, err = strconv.Atoi(value)
	case "exceeds", "exceeds_by", "x":
		next.ExceedsBy, err = strconv.ParseFloat(value, 64)
	case "rate", "r":
		next.DecisionRate, err = strconv.Atoi(value)
	case "checkpoints", "c":
		next.Checkpoints, err = parseTicks(value)
	default:
		return nil, fmt.Errorf("unknown setting %q (try help)", key)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return &next, nil
}

func parseTicks(value string) ([]int, error) {
	if value == "" {
		return nil, nil
	}
	parts := strings.Split(value, ",")
	ticks := make([]int, 0, len(parts))
	for _, p := range parts {
		tick, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		ticks = append(ticks, tick)
	}
	return ticks, nil
}

// show runs selection with the current parameters and prints the segments.
func (s *session) show(out io.Writer) error {
	signals, err := s.downsampled(s.cfg)
	if err != nil {
		return err
	}
	res, err := trackselect.AnalyzeSignals(signals, s.cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "rate=%d threshold=%d exceeds=%g checkpoints=%v\n",
		s.cfg.DecisionRate, s.cfg.Threshold, s.cfg.ExceedsBy, s.cfg.Checkpoints)
	return report.New(s.cfg, s.tracks, s.infos, res).WriteText(out, false)
}
