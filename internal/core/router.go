// ABOUTME: Router applies the strictly ordered persona-selection policy and invokes personas
// ABOUTME: Safety routing is absolute; an AI suggestion is consulted only when no rule fires
package core

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/havenjournal/haven/internal/models"
	"github.com/sashabaranov/go-openai/jsonschema"
	"golang.org/x/sync/errgroup"
)

// Routing thresholds. Rules are evaluated in order; first match wins.
const (
	lonelinessRouteThreshold   = 7
	homesicknessRouteThreshold = 7
	highStressRouteThreshold   = 8
	negativeStressThreshold    = 6
	maxSecondaryPersonas       = 2
)

var selectionSchema = &jsonschema.Definition{
	Type: jsonschema.Object,
	Properties: map[string]jsonschema.Definition{
		"agent": {
			Type:        jsonschema.String,
			Enum:        []string{"reflection", "validator", "conflict"},
			Description: "The persona best suited to respond right now",
		},
		"secondary": {
			Type:        jsonschema.Array,
			Items:       &jsonschema.Definition{Type: jsonschema.String, Enum: []string{"reflection", "validator", "conflict"}},
			Description: "Up to two additional personas whose perspective would enrich the reply",
		},
		"reasons": {
			Type:        jsonschema.String,
			Description: "Brief explanation of why this persona was chosen",
		},
	},
	Required: []string{"agent"},
}

const selectionSystemPrompt = `Your job is to choose which persona should respond to the user right now based on their needs and emotional state, with special attention to feelings of isolation, homesickness, loneliness, or being far from their support system.

Available personas:
1. "reflection" - Gentle, thought-provoking reflection when the user needs to explore their thoughts and feelings calmly. Use when the user needs help processing emotions or reflecting on their situation.
2. "validator" - Validation and acknowledgment when the user needs to feel heard. Essential when they're expressing feelings of being alone, missing home, or struggling with distance from loved ones.
3. "conflict" - Navigating conflicts and relationship issues when the user mentions disagreements or relational problems.

Consider the user's current emotional state and sentiment, feelings of loneliness or homesickness, whether the conversation involves conflicts, and the overall tone. You may also name up to two secondary personas whose perspective would make the reply more complete; only do so when the conversation genuinely spans multiple needs.

Choose the persona that will provide the most appropriate support right now.`

// selection mirrors the backend's persona-selection JSON document
type selection struct {
	Agent     string   `json:"agent"`
	Secondary []string `json:"secondary"`
	Reasons   string   `json:"reasons"`
}

// Router selects and invokes personas for a conversation turn. Stateless
// between requests: each call is an independent evaluation.
type Router struct {
	gen        Generator
	reflection Responder
	validator  Responder
	conflict   Responder

	aggregator  *Aggregator
	aggregation bool
}

// NewRouter creates a router with fresh persona agents bound to the generator
func NewRouter(gen Generator) *Router {
	return &Router{
		gen:         gen,
		reflection:  NewPersonaAgent(models.PersonaReflection, gen),
		validator:   NewPersonaAgent(models.PersonaValidator, gen),
		conflict:    NewPersonaAgent(models.PersonaConflict, gen),
		aggregator:  NewAggregator(gen),
		aggregation: true,
	}
}

// SetAggregation toggles multi-persona synthesis. When disabled the router
// always invokes the primary persona alone.
func (r *Router) SetAggregation(enabled bool) {
	r.aggregation = enabled
}

// Decide applies the routing policy to the metrics. The rule list is strictly
// ordered; once an earlier rule fires, later rules are unreachable. Rules 1-6
// are deterministic and single-persona. Only the final fallback consults the
// backend for a suggestion, which may include secondaries.
func (r *Router) Decide(ctx context.Context, history []models.Message, m models.Metrics) models.RoutingDecision {
	switch {
	case m.SafetyConcern != models.SafetyNone:
		// Absolute: no other signal can override safety routing.
		return models.RoutingDecision{
			Primary: models.PersonaValidator,
			Reasons: fmt.Sprintf("safety concern detected (%s) - providing immediate validation and redirecting to professional support", m.SafetyConcern),
		}
	case m.HasConflict:
		return models.RoutingDecision{
			Primary: models.PersonaConflict,
			Reasons: "conflict detected - routing to conflict navigation",
		}
	case m.LonelinessLevel >= lonelinessRouteThreshold || m.HomesicknessLevel >= homesicknessRouteThreshold:
		return models.RoutingDecision{
			Primary: models.PersonaValidator,
			Reasons: "high isolation detected - providing validation and support",
		}
	case m.StressLevel >= highStressRouteThreshold:
		return models.RoutingDecision{
			Primary: models.PersonaValidator,
			Reasons: "high stress detected - providing immediate emotional support",
		}
	case m.Sentiment == models.SentimentNegative && m.StressLevel >= negativeStressThreshold:
		return models.RoutingDecision{
			Primary: models.PersonaValidator,
			Reasons: "negative sentiment under stress - providing validation",
		}
	case m.NeedsSupport:
		return models.RoutingDecision{
			Primary: models.PersonaValidator,
			Reasons: "additional support needed - providing validation",
		}
	}

	return r.suggest(ctx, history, m)
}

// suggest consults the backend for a persona suggestion. Invalid or failed
// suggestions fall back to reflection.
func (r *Router) suggest(ctx context.Context, history []models.Message, m models.Metrics) models.RoutingDecision {
	fallback := models.RoutingDecision{
		Primary: models.PersonaReflection,
		Reasons: "defaulted to reflection for general emotional processing",
	}

	prompt := selectionSystemPrompt
	if metricsJSON, err := json.Marshal(m); err == nil {
		prompt += "\n\nCurrent metrics: " + string(metricsJSON)
	}

	out, err := r.gen.GenerateJSON(ctx, history, prompt, "persona_selection", selectionSchema)
	if err != nil {
		log.Printf("[Router] persona suggestion failed, defaulting to reflection: %v", err)
		return fallback
	}

	var sel selection
	if err := json.Unmarshal([]byte(out), &sel); err != nil {
		log.Printf("[Router] malformed persona suggestion, defaulting to reflection: %v", err)
		return fallback
	}

	primary, ok := models.ParsePersona(sel.Agent)
	if !ok {
		return fallback
	}

	decision := models.RoutingDecision{Primary: primary, Reasons: strings.TrimSpace(sel.Reasons)}
	if decision.Reasons == "" {
		decision.Reasons = fmt.Sprintf("selected %s based on conversation analysis", primary)
	}

	for _, name := range sel.Secondary {
		if len(decision.Secondaries) >= maxSecondaryPersonas {
			break
		}
		p, ok := models.ParsePersona(name)
		if !ok || p == primary || containsPersona(decision.Secondaries, p) {
			continue
		}
		decision.Secondaries = append(decision.Secondaries, p)
	}

	return decision
}

// Respond routes the turn and invokes the chosen persona(s), returning the
// final reply text alongside the decision.
func (r *Router) Respond(ctx context.Context, history []models.Message, m models.Metrics) (string, models.RoutingDecision, error) {
	decision := r.Decide(ctx, history, m)

	if len(decision.Secondaries) == 0 || !r.aggregation {
		decision.Secondaries = nil
		text, err := r.respondWith(ctx, decision.Primary, history)
		return text, decision, err
	}

	responses, err := r.fanOut(ctx, decision, history)
	if err != nil {
		// All-or-nothing: never synthesize from partial results. Fall back
		// to the primary alone, reusing its reply when it completed.
		log.Printf("[Router] multi-persona generation failed, falling back to %s: %v", decision.Primary, err)
		decision.Secondaries = nil
		if responses[0].Text != "" {
			return responses[0].Text, decision, nil
		}
		text, err := r.respondWith(ctx, decision.Primary, history)
		return text, decision, err
	}

	decision.UsedAggregation = true
	return r.aggregator.Aggregate(ctx, responses, history, m), decision, nil
}

// fanOut invokes the primary and secondary personas concurrently. The
// returned slice is ordered primary-first. On error the slice may be
// partially filled; all goroutines have finished by the time it returns.
func (r *Router) fanOut(ctx context.Context, decision models.RoutingDecision, history []models.Message) ([]models.PersonaResponse, error) {
	kinds := append([]models.Persona{decision.Primary}, decision.Secondaries...)
	responses := make([]models.PersonaResponse, len(kinds))

	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range kinds {
		g.Go(func() error {
			text, err := r.respondWith(gctx, kind, history)
			if err != nil {
				return err
			}
			responses[i] = models.PersonaResponse{Persona: kind, Text: text}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return responses, err
	}
	return responses, nil
}

// respondWith dispatches to the agent for the given persona kind
func (r *Router) respondWith(ctx context.Context, kind models.Persona, history []models.Message) (string, error) {
	switch kind {
	case models.PersonaReflection:
		return r.reflection.Respond(ctx, history)
	case models.PersonaValidator:
		return r.validator.Respond(ctx, history)
	case models.PersonaConflict:
		return r.conflict.Respond(ctx, history)
	default:
		return "", fmt.Errorf("unknown persona %q", kind)
	}
}

func containsPersona(personas []models.Persona, p models.Persona) bool {
	for _, existing := range personas {
		if existing == p {
			return true
		}
	}
	return false
}
