// ABOUTME: Tests for the router's precedence policy and persona invocation
// ABOUTME: Verifies rule ordering, safety override, suggestion fallback, and fan-out

package core

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/havenjournal/haven/internal/models"
)

// quietMetrics returns metrics that fire none of the deterministic rules
func quietMetrics() models.Metrics {
	m := models.NeutralMetrics()
	m.Sentiment = models.SentimentPositive
	m.StressLevel = 3
	m.LonelinessLevel = 2
	m.HomesicknessLevel = 2
	return m
}

func TestRouter_SafetyAlwaysWins(t *testing.T) {
	gen := &stubGenerator{}
	r := NewRouter(gen)

	// Conflicting signals: conflict flag, high loneliness, high stress -
	// safety must win over all of them.
	m := models.Metrics{
		Sentiment:         models.SentimentNegative,
		StressLevel:       10,
		LonelinessLevel:   10,
		HomesicknessLevel: 10,
		HasConflict:       true,
		NeedsSupport:      true,
		SafetyConcern:     models.SafetyCrisis,
	}

	d := r.Decide(context.Background(), userTurn("hello"), m)
	if d.Primary != models.PersonaValidator {
		t.Errorf("Primary = %q, want validator", d.Primary)
	}
	if !strings.Contains(d.Reasons, "crisis") {
		t.Errorf("Reasons = %q, should record the concern type", d.Reasons)
	}
	if len(d.Secondaries) != 0 {
		t.Errorf("safety routing must be single-persona, got secondaries %v", d.Secondaries)
	}

	// No backend consultation for deterministic rules
	if _, structured := gen.calls(); structured != 0 {
		t.Errorf("Decide() made %d backend calls, want 0", structured)
	}
}

func TestRouter_RulePrecedence(t *testing.T) {
	r := NewRouter(&stubGenerator{})
	ctx := context.Background()

	tests := []struct {
		name        string
		mutate      func(*models.Metrics)
		wantPrimary models.Persona
		wantReason  string
	}{
		{
			"conflict beats isolation",
			func(m *models.Metrics) {
				m.HasConflict = true
				m.LonelinessLevel = 9
			},
			models.PersonaConflict, "conflict",
		},
		{
			"isolation beats stress",
			func(m *models.Metrics) {
				m.LonelinessLevel = 7
				m.StressLevel = 9
			},
			models.PersonaValidator, "isolation",
		},
		{
			"homesickness routes like loneliness",
			func(m *models.Metrics) { m.HomesicknessLevel = 8 },
			models.PersonaValidator, "isolation",
		},
		{
			"high stress beats negative sentiment",
			func(m *models.Metrics) {
				m.StressLevel = 8
				m.Sentiment = models.SentimentNegative
			},
			models.PersonaValidator, "stress",
		},
		{
			"negative sentiment with moderate stress",
			func(m *models.Metrics) {
				m.Sentiment = models.SentimentNegative
				m.StressLevel = 6
				m.NeedsSupport = true
			},
			models.PersonaValidator, "negative sentiment",
		},
		{
			"needs support flag",
			func(m *models.Metrics) { m.NeedsSupport = true },
			models.PersonaValidator, "support",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := quietMetrics()
			tt.mutate(&m)

			d := r.Decide(ctx, userTurn("hello"), m)
			if d.Primary != tt.wantPrimary {
				t.Errorf("Primary = %q, want %q", d.Primary, tt.wantPrimary)
			}
			if !strings.Contains(strings.ToLower(d.Reasons), tt.wantReason) {
				t.Errorf("Reasons = %q, should mention %q", d.Reasons, tt.wantReason)
			}
			if len(d.Secondaries) != 0 {
				t.Errorf("deterministic rules must not produce secondaries, got %v", d.Secondaries)
			}
		})
	}
}

func TestRouter_SuggestionFallback(t *testing.T) {
	gen := &stubGenerator{
		jsonFn: func(_ []models.Message, _, schemaName string) (string, error) {
			if schemaName != "persona_selection" {
				t.Errorf("schemaName = %q, want persona_selection", schemaName)
			}
			return `{"agent": "reflection", "reasons": "user is exploring feelings calmly"}`, nil
		},
	}
	r := NewRouter(gen)

	d := r.Decide(context.Background(), userTurn("thinking about my week"), quietMetrics())
	if d.Primary != models.PersonaReflection {
		t.Errorf("Primary = %q, want reflection", d.Primary)
	}
	if d.Reasons != "user is exploring feelings calmly" {
		t.Errorf("Reasons = %q, want the suggestion's reasons", d.Reasons)
	}
}

func TestRouter_SuggestionInvalidName(t *testing.T) {
	gen := &stubGenerator{
		jsonFn: func(_ []models.Message, _, _ string) (string, error) {
			return `{"agent": "therapist"}`, nil
		},
	}
	r := NewRouter(gen)

	d := r.Decide(context.Background(), userTurn("hello"), quietMetrics())
	if d.Primary != models.PersonaReflection {
		t.Errorf("invalid suggestion should default to reflection, got %q", d.Primary)
	}
}

func TestRouter_SuggestionBackendFailure(t *testing.T) {
	gen := &stubGenerator{
		jsonFn: func(_ []models.Message, _, _ string) (string, error) {
			return "", errors.New("backend down")
		},
	}
	r := NewRouter(gen)

	d := r.Decide(context.Background(), userTurn("hello"), quietMetrics())
	if d.Primary != models.PersonaReflection {
		t.Errorf("failed suggestion should default to reflection, got %q", d.Primary)
	}
	if d.Reasons == "" {
		t.Error("fallback decision should carry default reasons")
	}
}

func TestRouter_SecondariesDedupedAndCapped(t *testing.T) {
	gen := &stubGenerator{
		jsonFn: func(_ []models.Message, _, _ string) (string, error) {
			return `{"agent": "reflection", "secondary": ["reflection", "validator", "validator", "conflict", "conflict"]}`, nil
		},
	}
	r := NewRouter(gen)

	d := r.Decide(context.Background(), userTurn("hello"), quietMetrics())
	if d.Primary != models.PersonaReflection {
		t.Fatalf("Primary = %q, want reflection", d.Primary)
	}
	if len(d.Secondaries) != 2 {
		t.Fatalf("Secondaries = %v, want exactly 2", d.Secondaries)
	}
	if d.Secondaries[0] != models.PersonaValidator || d.Secondaries[1] != models.PersonaConflict {
		t.Errorf("Secondaries = %v, want [validator conflict]", d.Secondaries)
	}
}

func TestRouter_Respond_SinglePersona(t *testing.T) {
	gen := &stubGenerator{
		generateFn: func(_ []models.Message, systemPrompt string) (string, error) {
			return "I hear how hard this conflict has been.", nil
		},
	}
	r := NewRouter(gen)

	m := quietMetrics()
	m.HasConflict = true

	text, d, err := r.Respond(context.Background(), userTurn("we had a fight"), m)
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}
	if d.Primary != models.PersonaConflict {
		t.Errorf("Primary = %q, want conflict", d.Primary)
	}
	if d.UsedAggregation {
		t.Error("single-persona path must not use aggregation")
	}
	if text == "" {
		t.Error("Respond() returned empty text")
	}
}

func TestRouter_Respond_PersonaFailurePropagates(t *testing.T) {
	gen := &stubGenerator{
		generateFn: func(_ []models.Message, _ string) (string, error) {
			return "", errors.New("backend down")
		},
	}
	r := NewRouter(gen)

	m := quietMetrics()
	m.HasConflict = true

	_, _, err := r.Respond(context.Background(), userTurn("we had a fight"), m)
	if err == nil {
		t.Fatal("persona failure should propagate, got nil error")
	}
}

func TestRouter_Respond_FanOutAndAggregate(t *testing.T) {
	gen := &stubGenerator{
		jsonFn: func(_ []models.Message, _, _ string) (string, error) {
			return `{"agent": "reflection", "secondary": ["validator"]}`, nil
		},
		generateFn: func(_ []models.Message, systemPrompt string) (string, error) {
			if strings.Contains(systemPrompt, "synthesizing") {
				return "synthesized reply", nil
			}
			return "persona reply", nil
		},
	}
	r := NewRouter(gen)

	text, d, err := r.Respond(context.Background(), userTurn("a lot going on"), quietMetrics())
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}
	if !d.UsedAggregation {
		t.Error("UsedAggregation should be true")
	}
	if text != "synthesized reply" {
		t.Errorf("text = %q, want synthesized reply", text)
	}

	// 2 persona calls + 1 synthesis call
	if generate, _ := gen.calls(); generate != 3 {
		t.Errorf("Generate calls = %d, want 3", generate)
	}
}

func TestRouter_Respond_FanOutFailureFallsBackToPrimary(t *testing.T) {
	gen := &stubGenerator{
		jsonFn: func(_ []models.Message, _, _ string) (string, error) {
			return `{"agent": "reflection", "secondary": ["validator", "conflict"]}`, nil
		},
		generateFn: func(_ []models.Message, systemPrompt string) (string, error) {
			// The validator persona fails; others succeed
			if strings.Contains(systemPrompt, "validating journal companion") {
				return "", errors.New("backend hiccup")
			}
			return "primary reply", nil
		},
	}
	r := NewRouter(gen)

	text, d, err := r.Respond(context.Background(), userTurn("a lot going on"), quietMetrics())
	if err != nil {
		t.Fatalf("Respond() should fall back, got error %v", err)
	}
	if d.UsedAggregation {
		t.Error("failed fan-out must not report aggregation")
	}
	if len(d.Secondaries) != 0 {
		t.Errorf("failed fan-out should clear secondaries, got %v", d.Secondaries)
	}
	if text != "primary reply" {
		t.Errorf("text = %q, want the primary persona's reply", text)
	}
}

func TestRouter_Respond_AggregationDisabled(t *testing.T) {
	gen := &stubGenerator{
		jsonFn: func(_ []models.Message, _, _ string) (string, error) {
			return `{"agent": "reflection", "secondary": ["validator"]}`, nil
		},
	}
	r := NewRouter(gen)
	r.SetAggregation(false)

	_, d, err := r.Respond(context.Background(), userTurn("hello"), quietMetrics())
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}
	if d.UsedAggregation || len(d.Secondaries) != 0 {
		t.Errorf("aggregation disabled: decision = %+v, want single persona", d)
	}

	if generate, _ := gen.calls(); generate != 1 {
		t.Errorf("Generate calls = %d, want 1 (primary only)", generate)
	}
}
