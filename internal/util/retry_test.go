// ABOUTME: Tests for backoff calculation
// ABOUTME: Verifies growth, jitter bounds, and edge cases

package util

import (
	"testing"
	"time"
)

func TestBackoff_ZeroAttempt(t *testing.T) {
	if got := Backoff(time.Second, 0); got != 0 {
		t.Errorf("Backoff(1s, 0) = %v, want 0", got)
	}
	if got := Backoff(time.Second, -1); got != 0 {
		t.Errorf("Backoff(1s, -1) = %v, want 0", got)
	}
}

func TestBackoff_GrowsWithAttempts(t *testing.T) {
	base := 100 * time.Millisecond

	// With 25% jitter, attempt n is bounded by [0.75, 1.25] * 2^n * base
	for attempt := 1; attempt <= 4; attempt++ {
		got := Backoff(base, attempt)
		expected := base * time.Duration(1<<uint(attempt))
		low := expected * 3 / 4
		high := expected * 5 / 4
		if got < low || got > high {
			t.Errorf("Backoff(attempt=%d) = %v, want within [%v, %v]", attempt, got, low, high)
		}
	}
}

func TestBackoff_Capped(t *testing.T) {
	// A huge attempt number must not overflow or exceed the cap plus jitter
	got := Backoff(2*time.Second, 500)
	if got > 25*time.Second {
		t.Errorf("Backoff(huge attempt) = %v, should be capped near 20s", got)
	}
	if got <= 0 {
		t.Errorf("Backoff(huge attempt) = %v, should be positive", got)
	}
}
