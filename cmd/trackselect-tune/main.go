// Command trackselect-tune loads tracks once and re-runs the selection
// interactively while parameters are adjusted on stdin.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/tphakala/go-track-selector/internal/config"
	"github.com/tphakala/go-track-selector/internal/logging"
	"github.com/tphakala/go-track-selector/internal/wavio"
)

func main() {
	var (
		configPath = flag.String("config", "", "Configuration file path")
		logLevel   = flag.String("log-level", "", "Log level (debug, info, warn, error)")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] track.wav...\n\n", os.Args[0])
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\n%s", helpText)
	}
	flag.Parse()

	if err := run(*configPath, *logLevel, flag.Args()); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run(configPath, logLevel string, args []string) error {
	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if logLevel == "" {
		logLevel = cfg.Logging.Level
	}
	logger, err := logging.New(logging.Options{Level: logLevel, Format: cfg.Logging.Format})
	if err != nil {
		return err
	}

	paths := args
	if len(paths) == 0 {
		paths = cfg.Tracks
	}
	if len(paths) == 0 {
		return errors.New("no input tracks")
	}

	tracks, infos, err := wavio.ReadTracks(paths)
	if err != nil {
		return err
	}
	logger.Info("tracks loaded", "count", len(tracks))

	sess, err := newSession(tracks, infos, cfg.Core(), logger)
	if err != nil {
		return err
	}
	return sess.run(os.Stdin, os.Stdout)
}
