// Package trackselect picks which of several synchronized recordings should be
// on screen at each moment, based on which track is loudest.
//
// The input is one decoded sample array per track. Each track is reduced to a
// fixed decision rate by nearest-neighbour decimation, the signals are padded
// to a common length, and every decision tick is given to the loudest track.
// Two mechanisms keep the result from flickering:
//
//   - Bias: the incumbent's magnitude is multiplied by [Config.ExceedsBy]
//     before comparison, so a challenger must be clearly louder.
//   - Hysteresis: a challenger must win [Config.Threshold] consecutive ticks
//     before it replaces the incumbent.
//
// Checkpoints ([Config.Checkpoints]) bypass the hysteresis at chosen ticks.
//
// The selected sequence is run-length encoded into [Segment] values that an
// external media tool can use to cut and concatenate the recordings.
//
// # Quick Start
//
//	cfg := trackselect.DefaultConfig()
//	res, err := trackselect.Analyze(tracks, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, seg := range res.Segments {
//	    fmt.Printf("track %d: %.2fs - %.2fs\n", seg.Track, seg.Start, seg.End)
//	}
//
// For signals that are already at the decision rate use [SelectSegments].
//
// # Pipeline
//
//	Track -> Downsample -> Align -> Loudest -> hysteresis -> BuildSegments
//
// Only downsampling may run concurrently ([Config.EnableParallel]); every later
// stage depends on the previous tick and runs sequentially. The result is
// deterministic: ties go to the lowest track index.
//
// # Errors
//
// Failures wrap one of [ErrInvalidConfig], [ErrInvalidInput] or [ErrOutOfRange]
// and can be tested with errors.Is. No partial result is returned.
package trackselect
