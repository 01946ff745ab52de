// ABOUTME: Tests for the deterministic safety keyword scanner
// ABOUTME: Verifies category detection, priority order, and purity

package core

import (
	"testing"

	"github.com/havenjournal/haven/internal/models"
)

func TestSafetyScanner_Categories(t *testing.T) {
	scanner := NewSafetyScanner()

	tests := []struct {
		name string
		text string
		want models.SafetyConcern
	}{
		{"self harm explicit", "sometimes I think about suicide", models.SafetySelfHarm},
		{"self harm phrase", "I just want to hurt myself", models.SafetySelfHarm},
		{"harm others", "I want to hurt them so badly", models.SafetyHarmOthers},
		{"violence", "there was violence at home again", models.SafetyHarmOthers},
		{"crisis hopeless", "everything feels hopeless", models.SafetyCrisis},
		{"crisis no point", "there's no point in trying", models.SafetyCrisis},
		{"crisis whats the point", "I don't want to be here anymore, what's the point", models.SafetyCrisis},
		{"benign", "I had a great day at the beach", models.SafetyNone},
		{"empty", "", models.SafetyNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scanner.Scan(tt.text); got != tt.want {
				t.Errorf("Scan(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestSafetyScanner_CaseInsensitive(t *testing.T) {
	scanner := NewSafetyScanner()

	if got := scanner.Scan("I WANT TO DIE"); got != models.SafetySelfHarm {
		t.Errorf("Scan(upper) = %q, want selfHarm", got)
	}
	if got := scanner.Scan("Everything Is HOPELESS"); got != models.SafetyCrisis {
		t.Errorf("Scan(mixed case) = %q, want crisis", got)
	}
}

func TestSafetyScanner_PriorityOrder(t *testing.T) {
	scanner := NewSafetyScanner()

	// selfHarm beats harmOthers beats crisis when multiple sets match
	text := "I feel hopeless and want to hurt myself and hurt them too"
	if got := scanner.Scan(text); got != models.SafetySelfHarm {
		t.Errorf("Scan(all three) = %q, want selfHarm", got)
	}

	text = "it's hopeless, I could attack someone"
	if got := scanner.Scan(text); got != models.SafetyHarmOthers {
		t.Errorf("Scan(harm+crisis) = %q, want harmOthers", got)
	}
}

func TestSafetyScanner_Deterministic(t *testing.T) {
	scanner := NewSafetyScanner()

	text := "honestly I just want to give up"
	first := scanner.Scan(text)
	for i := 0; i < 10; i++ {
		if got := scanner.Scan(text); got != first {
			t.Fatalf("Scan() not deterministic: %q then %q", first, got)
		}
	}
	if first != models.SafetyCrisis {
		t.Errorf("Scan(%q) = %q, want crisis", text, first)
	}
}
