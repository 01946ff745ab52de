// ABOUTME: Tests for journal prompt pack lookup and selection
// ABOUTME: Deterministic pick-of-day and category handling

package prompts

import (
	"testing"
	"time"
)

func TestCategories(t *testing.T) {
	got := Categories()
	want := []string{"challenges", "daily", "emotional", "homesickness", "reflection", "relationships"}
	if len(got) != len(want) {
		t.Fatalf("Categories() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Categories()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestForCategory(t *testing.T) {
	pack, ok := ForCategory("homesickness")
	if !ok || len(pack) == 0 {
		t.Fatalf("ForCategory(homesickness) = %v, %v", pack, ok)
	}

	if _, ok := ForCategory("astrology"); ok {
		t.Error("ForCategory(unknown) should report not ok")
	}

	// Callers must not be able to mutate the pack
	pack[0] = "tampered"
	again, _ := ForCategory("homesickness")
	if again[0] == "tampered" {
		t.Error("ForCategory() returned the internal slice")
	}
}

func TestRandom(t *testing.T) {
	if got := Random("daily"); got == "" {
		t.Error("Random(daily) returned empty prompt")
	}
	if got := Random(""); got == "" {
		t.Error("Random across all packs returned empty prompt")
	}
	if got := Random("astrology"); got != "" {
		t.Errorf("Random(unknown) = %q, want empty", got)
	}
}

func TestOfDay_Deterministic(t *testing.T) {
	date := time.Date(2026, 8, 30, 15, 4, 5, 0, time.UTC)
	first := OfDay("reflection", date)
	if first == "" {
		t.Fatal("OfDay() returned empty prompt")
	}
	// Same day, different time of day
	if again := OfDay("reflection", date.Add(6*time.Hour)); again != first {
		t.Errorf("OfDay() not stable within a day: %q vs %q", first, again)
	}
	if next := OfDay("reflection", date.AddDate(0, 0, 1)); next == first {
		t.Error("OfDay() should rotate across days")
	}
	if got := OfDay("astrology", date); got != "" {
		t.Errorf("OfDay(unknown) = %q, want empty", got)
	}
}
