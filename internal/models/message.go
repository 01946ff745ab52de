// ABOUTME: Conversation message types and history validation
// ABOUTME: The ordered user/assistant history is the core input to the chat pipeline
package models

import (
	"fmt"
	"strings"
)

// Role identifies the author of a conversation message
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single conversation turn, attributed to user or assistant
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ValidationError describes a rejected request field.
// Returned before any backend call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// ValidateHistory checks a conversation history for well-formedness.
// History must be non-empty, contain at least one user message, and every
// message must have a valid role and non-blank content.
func ValidateHistory(history []Message) error {
	if len(history) == 0 {
		return &ValidationError{Field: "history", Message: "cannot be empty"}
	}

	hasUser := false
	for i, msg := range history {
		if msg.Role != RoleUser && msg.Role != RoleAssistant {
			return &ValidationError{
				Field:   fmt.Sprintf("history[%d].role", i),
				Message: "must be 'user' or 'assistant'",
			}
		}
		if strings.TrimSpace(msg.Content) == "" {
			return &ValidationError{
				Field:   fmt.Sprintf("history[%d].content", i),
				Message: "cannot be empty",
			}
		}
		if msg.Role == RoleUser {
			hasUser = true
		}
	}

	if !hasUser {
		return &ValidationError{Field: "history", Message: "must contain at least one user message"}
	}
	return nil
}

// LatestUserText returns the content of the most recent user message,
// or "" if the history contains none.
func LatestUserText(history []Message) string {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == RoleUser {
			return history[i].Content
		}
	}
	return ""
}
