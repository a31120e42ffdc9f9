// Package testutil provides reusable test helper functions for track selection tests.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Default tolerances for various test scenarios.
const (
	DefaultTolerance = 1e-10
	TimeTolerance    = 1e-9
)

// AssertContiguous verifies that every span starts where the previous one ended
// and that no span runs backwards.
func AssertContiguous(t *testing.T, starts, ends []float64) bool {
	t.Helper()
	if !assert.Len(t, ends, len(starts), "starts and ends differ in length") {
		return false
	}
	for i := range starts {
		if ends[i] < starts[i] {
			return assert.Fail(t, "span runs backwards",
				"span %d: start %f > end %f", i, starts[i], ends[i])
		}
		if i > 0 && !assert.InDelta(t, ends[i-1], starts[i], TimeTolerance,
			"span %d starts at %f but span %d ended at %f", i, starts[i], i-1, ends[i-1]) {
			return false
		}
	}
	return true
}

// AssertAlternating verifies that no two adjacent values are equal.
func AssertAlternating(t *testing.T, s []int) bool {
	t.Helper()
	for i := 1; i < len(s); i++ {
		if s[i] == s[i-1] {
			return assert.Fail(t, "adjacent values repeat",
				"s[%d]=%d == s[%d]=%d", i, s[i], i-1, s[i-1])
		}
	}
	return true
}

// AssertCovers verifies that contiguous spans cover exactly [from, to].
func AssertCovers(t *testing.T, starts, ends []float64, from, to float64) bool {
	t.Helper()
	if len(starts) == 0 {
		return assert.Fail(t, "no spans")
	}
	ok := assert.InDelta(t, from, starts[0], TimeTolerance, "first span starts at %f", starts[0])
	return assert.InDelta(t, to, ends[len(ends)-1], TimeTolerance, "last span ends at %f", ends[len(ends)-1]) && ok
}

// AssertIndicesInRange verifies that all values are valid indices into n items.
func AssertIndicesInRange(t *testing.T, s []int, n int) bool {
	t.Helper()
	for i, v := range s {
		if v < 0 || v >= n {
			return assert.Fail(t, "index out of range",
				"s[%d]=%d is outside [0, %d)", i, v, n)
		}
	}
	return true
}

// AssertAllZero verifies that every element is zero.
func AssertAllZero(t *testing.T, s []int) bool {
	t.Helper()
	for i, v := range s {
		if v != 0 {
			return assert.Fail(t, "non-zero value", "s[%d]=%d", i, v)
		}
	}
	return true
}

// AssertRelativeError verifies that the relative error between actual and expected is within tolerance.
func AssertRelativeError(t *testing.T, expected, actual, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if expected == 0 {
		return assert.InDelta(t, expected, actual, tolerance, msgAndArgs...)
	}
	relError := math.Abs(actual-expected) / math.Abs(expected)
	return assert.LessOrEqual(t, relError, tolerance,
		"relative error %e exceeds tolerance %e (expected=%f, actual=%f)",
		relError, tolerance, expected, actual)
}
