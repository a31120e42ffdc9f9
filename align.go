package trackselect

// Align returns copies of the signals, zero-padded at the end to the length
// of the longest one. Inputs are never modified or truncated.
func Align(signals [][]int) [][]int {
	n := 0
	for _, s := range signals {
		n = max(n, len(s))
	}

	out := make([][]int, len(signals))
	for i, s := range signals {
		padded := make([]int, n)
		copy(padded, s)
		out[i] = padded
	}
	return out
}

// alignedLength returns the common length of aligned signals.
func alignedLength(aligned [][]int) int {
	if len(aligned) == 0 {
		return 0
	}
	return len(aligned[0])
}
