// ABOUTME: Extractor runs the one-shot structured extractions over diary text
// ABOUTME: Contacts, names, events, and mood degrade to empty results on failure

package extract

import (
	"context"

	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/havenjournal/haven/internal/models"
)

// Generator is the backend surface the extractors need. *llm.Client
// satisfies it.
type Generator interface {
	Generate(ctx context.Context, history []models.Message, systemPrompt string) (string, error)
	GenerateJSON(ctx context.Context, history []models.Message, systemPrompt, schemaName string, schema *jsonschema.Definition) (string, error)
}

// Extractor bundles the peripheral diary extractions. Each method makes at
// most one backend call.
type Extractor struct {
	gen Generator
}

// NewExtractor creates an extractor backed by the given generator
func NewExtractor(gen Generator) *Extractor {
	return &Extractor{gen: gen}
}

// userText wraps a single piece of text as a one-turn history
func userText(text string) []models.Message {
	return []models.Message{{Role: models.RoleUser, Content: text}}
}
