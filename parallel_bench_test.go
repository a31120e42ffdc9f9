package trackselect

import (
	"testing"
)

// BenchmarkAnalyzeSequential benchmarks sequential downsampling.
func BenchmarkAnalyzeSequential(b *testing.B) {
	benchmarkAnalyze(b, false)
}

// BenchmarkAnalyzeParallel benchmarks parallel downsampling.
func BenchmarkAnalyzeParallel(b *testing.B) {
	benchmarkAnalyze(b, true)
}

func benchmarkAnalyze(b *testing.B, parallel bool) {
	b.Helper()

	const (
		nativeRate = 48000
		tracks     = 4
		seconds    = 60
	)

	input := make([]Track, tracks)
	for tr := range tracks {
		samples := make([]int, nativeRate*seconds)
		for i := range samples {
			// Each track is loud during its own quarter of every 8 second block.
			if (i/nativeRate/2)%tracks == tr {
				samples[i] = 20000
			} else {
				samples[i] = 500
			}
		}
		input[tr] = NewMonoTrack(nativeRate, samples)
	}

	config := DefaultConfig()
	config.EnableParallel = parallel

	b.ResetTimer()
	b.ReportAllocs()

	for b.Loop() {
		if _, err := Analyze(input, config); err != nil {
			b.Fatalf("Analyze failed: %v", err)
		}
	}
}
