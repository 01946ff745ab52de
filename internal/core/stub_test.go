// ABOUTME: Shared stub text-generation backend for core tests
// ABOUTME: Lets tests script free-text and structured outputs and count backend calls

package core

import (
	"context"
	"sync"

	"github.com/havenjournal/haven/internal/models"
	"github.com/sashabaranov/go-openai/jsonschema"
)

// stubGenerator scripts backend behavior per call site. The schemaName
// distinguishes structured calls (conversation_metrics vs persona_selection).
type stubGenerator struct {
	mu sync.Mutex

	generateFn func(history []models.Message, systemPrompt string) (string, error)
	jsonFn     func(history []models.Message, systemPrompt, schemaName string) (string, error)

	generateCalls int
	jsonCalls     int
}

func (s *stubGenerator) Generate(_ context.Context, history []models.Message, systemPrompt string) (string, error) {
	s.mu.Lock()
	s.generateCalls++
	fn := s.generateFn
	s.mu.Unlock()

	if fn == nil {
		return "stub response", nil
	}
	return fn(history, systemPrompt)
}

func (s *stubGenerator) GenerateJSON(_ context.Context, history []models.Message, systemPrompt, schemaName string, _ *jsonschema.Definition) (string, error) {
	s.mu.Lock()
	s.jsonCalls++
	fn := s.jsonFn
	s.mu.Unlock()

	if fn == nil {
		return "{}", nil
	}
	return fn(history, systemPrompt, schemaName)
}

func (s *stubGenerator) calls() (generate, structured int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generateCalls, s.jsonCalls
}
