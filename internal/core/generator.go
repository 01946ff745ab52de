// ABOUTME: Generator is the text-generation backend contract used by the routing core
// ABOUTME: Implemented by internal/llm; stubbed in tests
package core

import (
	"context"

	"github.com/havenjournal/haven/internal/models"
	"github.com/sashabaranov/go-openai/jsonschema"
)

// Generator is the external text-generation backend. Free-text generation
// serves persona replies and synthesis; schema-constrained generation serves
// classification and selection. Any failure surfaces as an error; how the
// caller degrades is its own contract.
type Generator interface {
	Generate(ctx context.Context, history []models.Message, systemPrompt string) (string, error)
	GenerateJSON(ctx context.Context, history []models.Message, systemPrompt, schemaName string, schema *jsonschema.Definition) (string, error)
}
