// Command trackselect picks the active recording from several simultaneous
// tracks and reports the resulting edit as segments.
//
// Usage:
//
//	trackselect select [flags] cam0.wav cam1.wav ...
//	trackselect inspect cam0.wav cam1.wav ...
//	trackselect config init
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
