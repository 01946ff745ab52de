// ABOUTME: Persona agents generate replies in one of three fixed voices
// ABOUTME: Pure functions from conversation to text; no shared state between personas
package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/havenjournal/haven/internal/models"
)

// Responder generates a reply for a conversation in a single persona's voice
type Responder interface {
	Respond(ctx context.Context, history []models.Message) (string, error)
}

// PersonaAgent binds a persona kind to its system prompt and backend
type PersonaAgent struct {
	kind         models.Persona
	systemPrompt string
	gen          Generator
}

// NewPersonaAgent creates the agent for the given persona kind
func NewPersonaAgent(kind models.Persona, gen Generator) *PersonaAgent {
	var prompt string
	switch kind {
	case models.PersonaValidator:
		prompt = validatorSystemPrompt
	case models.PersonaConflict:
		prompt = conflictSystemPrompt
	default:
		prompt = reflectionSystemPrompt
	}
	return &PersonaAgent{kind: kind, systemPrompt: prompt, gen: gen}
}

// Kind returns the persona this agent speaks as
func (a *PersonaAgent) Kind() models.Persona {
	return a.kind
}

// Respond generates this persona's reply to the conversation.
// A backend failure or empty reply is an error; the caller decides whether
// to propagate or fall back.
func (a *PersonaAgent) Respond(ctx context.Context, history []models.Message) (string, error) {
	text, err := a.gen.Generate(ctx, history, a.systemPrompt)
	if err != nil {
		return "", fmt.Errorf("%s persona: %w", a.kind, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%s persona returned an empty response", a.kind)
	}
	return text, nil
}
