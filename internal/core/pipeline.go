// ABOUTME: Pipeline runs one chat turn end to end: validate, classify, route, respond
// ABOUTME: Request-scoped and stateless; all session history arrives in the request
package core

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/havenjournal/haven/internal/models"
)

// isolationSupportThreshold forces the needsSupport flag when loneliness or
// homesickness runs high but the conversation hasn't encouraged connection
const isolationSupportThreshold = 7

// ChatRequest is one conversational turn from the caller
type ChatRequest struct {
	History      []models.Message `json:"history"`
	DiaryContext string           `json:"diaryContext,omitempty"`
}

// ChatResult is the final reply plus decision metadata for audit/telemetry
type ChatResult struct {
	AssistantMessage string                 `json:"assistantMessage"`
	Decision         models.RoutingDecision `json:"decision"`
	Metrics          models.Metrics         `json:"metrics"`
}

// Pipeline wires the extractor, safety scanner, and router for one request.
// Construct a fresh Pipeline per request or share one: it holds no per-turn
// state.
type Pipeline struct {
	scanner   *SafetyScanner
	extractor *MetricsExtractor
	router    *Router
}

// NewPipeline creates a pipeline backed by the given generator
func NewPipeline(gen Generator) *Pipeline {
	return &Pipeline{
		scanner:   NewSafetyScanner(),
		extractor: NewMetricsExtractor(gen),
		router:    NewRouter(gen),
	}
}

// SetAggregation toggles multi-persona synthesis on the underlying router
func (p *Pipeline) SetAggregation(enabled bool) {
	p.router.SetAggregation(enabled)
}

// Chat runs one turn through the full pipeline. Validation failures surface
// as *models.ValidationError before any backend call; persona generation
// failures propagate, since a wrong or missing emotional-support response is
// worse than no response.
func (p *Pipeline) Chat(ctx context.Context, req ChatRequest) (*ChatResult, error) {
	if err := models.ValidateHistory(req.History); err != nil {
		return nil, err
	}

	history := req.History
	if strings.TrimSpace(req.DiaryContext) != "" {
		framed := make([]models.Message, 0, len(history)+1)
		framed = append(framed, models.Message{
			Role:    models.RoleUser,
			Content: diaryContextFrame(req.DiaryContext),
		})
		history = append(framed, history...)
	}

	metrics := p.extractor.Extract(ctx, history)
	p.amendMetrics(&metrics, models.LatestUserText(req.History))

	text, decision, err := p.router.Respond(ctx, history, metrics)
	if err != nil {
		return nil, fmt.Errorf("generating response: %w", err)
	}

	return &ChatResult{
		AssistantMessage: text,
		Decision:         decision,
		Metrics:          metrics,
	}, nil
}

// amendMetrics is the single post-extraction amendment: force needsSupport
// for high isolation, and unite the extractor's safety judgment with the
// deterministic keyword scan so a missed concern is never dropped.
func (p *Pipeline) amendMetrics(m *models.Metrics, latestUserText string) {
	if (m.LonelinessLevel >= isolationSupportThreshold || m.HomesicknessLevel >= isolationSupportThreshold) && !m.EncouragesConnection {
		m.NeedsSupport = true
	}

	concern := p.scanner.Scan(latestUserText)
	if concern == models.SafetyNone {
		return
	}
	if m.SafetyConcern == models.SafetyNone {
		log.Printf("[Pipeline] keyword scan flagged %s missed by the extractor", concern)
		m.SafetyConcern = concern
	}
	m.NeedsSupport = true
}

// diaryContextFrame wraps diary context as background for the conversation
func diaryContextFrame(diaryContext string) string {
	return "Context from the user's diary entries (to help you understand their ongoing emotional journey and provide more personalized support):\n\n" +
		strings.TrimSpace(diaryContext) +
		"\n\n---\n\nBased on the above context, continue the conversation with understanding and empathy, especially if the user seems isolated, homesick, or far from their support system."
}
