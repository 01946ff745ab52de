// ABOUTME: Tests for the response aggregator's synthesis and degradation paths
// ABOUTME: Verifies passthrough for 0/1 responses and fallback on backend failure

package core

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/havenjournal/haven/internal/models"
)

func TestAggregator_EmptyAndSinglePassthrough(t *testing.T) {
	gen := &stubGenerator{
		generateFn: func(_ []models.Message, _ string) (string, error) {
			t.Error("passthrough paths must not touch the backend")
			return "", nil
		},
	}
	a := NewAggregator(gen)
	ctx := context.Background()

	if got := a.Aggregate(ctx, nil, nil, models.NeutralMetrics()); got != "" {
		t.Errorf("Aggregate(nil) = %q, want empty", got)
	}

	single := []models.PersonaResponse{{Persona: models.PersonaReflection, Text: "just mine"}}
	if got := a.Aggregate(ctx, single, nil, models.NeutralMetrics()); got != "just mine" {
		t.Errorf("Aggregate(single) = %q, want unchanged text", got)
	}
}

func TestAggregator_SynthesisEmbedsResponses(t *testing.T) {
	var seenPrompt string
	gen := &stubGenerator{
		generateFn: func(history []models.Message, systemPrompt string) (string, error) {
			seenPrompt = systemPrompt
			last := history[len(history)-1]
			if last.Role != models.RoleUser || !strings.Contains(last.Content, "synthesize") {
				t.Errorf("last message should instruct synthesis, got %+v", last)
			}
			return "blended reply", nil
		},
	}
	a := NewAggregator(gen)

	responses := []models.PersonaResponse{
		{Persona: models.PersonaValidator, Text: "you are heard"},
		{Persona: models.PersonaReflection, Text: "what stood out to you?"},
	}
	got := a.Aggregate(context.Background(), responses, userTurn("long week"), models.NeutralMetrics())
	if got != "blended reply" {
		t.Errorf("Aggregate() = %q, want blended reply", got)
	}
	for _, want := range []string{"you are heard", "what stood out to you?", "validator", "reflection"} {
		if !strings.Contains(seenPrompt, want) {
			t.Errorf("synthesis prompt missing %q", want)
		}
	}
}

func TestAggregator_FailureFallsBackToPrimary(t *testing.T) {
	tests := []struct {
		name string
		fn   func([]models.Message, string) (string, error)
	}{
		{"backend error", func(_ []models.Message, _ string) (string, error) {
			return "", errors.New("backend down")
		}},
		{"blank output", func(_ []models.Message, _ string) (string, error) {
			return "   ", nil
		}},
	}

	responses := []models.PersonaResponse{
		{Persona: models.PersonaValidator, Text: "primary text"},
		{Persona: models.PersonaReflection, Text: "secondary text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAggregator(&stubGenerator{generateFn: tt.fn})
			got := a.Aggregate(context.Background(), responses, userTurn("hi"), models.NeutralMetrics())
			if got != "primary text" {
				t.Errorf("Aggregate() = %q, want the primary response", got)
			}
		})
	}
}
