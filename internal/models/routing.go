// ABOUTME: Persona enum and routing decision types for the response pipeline
// ABOUTME: Decisions are produced by the router and consumed for audit/telemetry
package models

import "strings"

// Persona is one of the three fixed response styles
type Persona string

const (
	// PersonaReflection offers gentle, thought-provoking exploration
	PersonaReflection Persona = "reflection"

	// PersonaValidator acknowledges and affirms feelings; also handles safety routing
	PersonaValidator Persona = "validator"

	// PersonaConflict navigates interpersonal conflicts and relationship issues
	PersonaConflict Persona = "conflict"
)

// ParsePersona maps a free-form name to a Persona. The boolean reports
// whether the name was one of the three valid personas.
func ParsePersona(s string) (Persona, bool) {
	switch Persona(strings.ToLower(strings.TrimSpace(s))) {
	case PersonaReflection:
		return PersonaReflection, true
	case PersonaValidator:
		return PersonaValidator, true
	case PersonaConflict:
		return PersonaConflict, true
	default:
		return "", false
	}
}

// RoutingDecision records which persona(s) were chosen and why.
// Immutable once produced.
type RoutingDecision struct {
	Primary         Persona   `json:"primaryPersona"`
	Secondaries     []Persona `json:"secondaryPersonas,omitempty"`
	Reasons         string    `json:"reasons"`
	UsedAggregation bool      `json:"usedAggregation"`
}

// PersonaResponse is one invoked persona's reply text. Ephemeral, never persisted.
type PersonaResponse struct {
	Persona Persona `json:"personaName"`
	Text    string  `json:"text"`
}
