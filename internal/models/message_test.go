// ABOUTME: Tests for conversation history validation
// ABOUTME: Verifies field-level rejection before any backend call

package models

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateHistory_Valid(t *testing.T) {
	history := []Message{
		{Role: RoleUser, Content: "I had a rough day"},
		{Role: RoleAssistant, Content: "What made it rough?"},
		{Role: RoleUser, Content: "Mostly classes"},
	}

	if err := ValidateHistory(history); err != nil {
		t.Errorf("ValidateHistory() error = %v, want nil", err)
	}
}

func TestValidateHistory_Empty(t *testing.T) {
	err := ValidateHistory(nil)
	if err == nil {
		t.Fatal("ValidateHistory(nil) should fail")
	}

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error type = %T, want *ValidationError", err)
	}
	if verr.Field != "history" {
		t.Errorf("Field = %q, want %q", verr.Field, "history")
	}
}

func TestValidateHistory_NoUserMessage(t *testing.T) {
	history := []Message{
		{Role: RoleAssistant, Content: "How are you feeling today?"},
	}

	err := ValidateHistory(history)
	if err == nil {
		t.Fatal("history without a user message should fail")
	}
	if !strings.Contains(err.Error(), "user message") {
		t.Errorf("error %q should mention the missing user message", err)
	}
}

func TestValidateHistory_BadRole(t *testing.T) {
	history := []Message{
		{Role: "system", Content: "hello"},
	}

	err := ValidateHistory(history)
	if err == nil {
		t.Fatal("invalid role should fail")
	}

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error type = %T, want *ValidationError", err)
	}
	if verr.Field != "history[0].role" {
		t.Errorf("Field = %q, want %q", verr.Field, "history[0].role")
	}
}

func TestValidateHistory_BlankContent(t *testing.T) {
	history := []Message{
		{Role: RoleUser, Content: "hi"},
		{Role: RoleAssistant, Content: "   "},
	}

	err := ValidateHistory(history)
	if err == nil {
		t.Fatal("blank content should fail")
	}

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error type = %T, want *ValidationError", err)
	}
	if verr.Field != "history[1].content" {
		t.Errorf("Field = %q, want %q", verr.Field, "history[1].content")
	}
}

func TestLatestUserText(t *testing.T) {
	history := []Message{
		{Role: RoleUser, Content: "first"},
		{Role: RoleAssistant, Content: "reply"},
		{Role: RoleUser, Content: "second"},
		{Role: RoleAssistant, Content: "another reply"},
	}

	if got := LatestUserText(history); got != "second" {
		t.Errorf("LatestUserText() = %q, want %q", got, "second")
	}

	if got := LatestUserText(nil); got != "" {
		t.Errorf("LatestUserText(nil) = %q, want empty", got)
	}
}
