// Package testutil provides shared test infrastructure for the evogame
// simulator. It consolidates assertion helpers used across sim/ and its
// sub-package tests.
package testutil

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}

// AssertRateNear checks that hits/trials lies within absTol of want.
func AssertRateNear(t *testing.T, name string, hits, trials int, want, absTol float64) {
	t.Helper()
	if trials <= 0 {
		t.Fatalf("%s: trials must be positive, got %d", name, trials)
	}
	rate := float64(hits) / float64(trials)
	if math.Abs(rate-want) > absTol {
		t.Errorf("%s: empirical rate %.4f over %d trials, want %.4f ± %.4f", name, rate, trials, want, absTol)
	}
}

// WriteTempFile writes content to a file named name in a per-test temp dir
// and returns its path.
func WriteTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}
