// ABOUTME: Tests for the prompts command group
// ABOUTME: Category listing, pack listing, and pick error handling

package commands

import (
	"bytes"
	"strings"
	"testing"
)

func runPrompts(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewPromptsCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPromptsList_Categories(t *testing.T) {
	out, err := runPrompts(t, "list")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for _, want := range []string{"daily", "reflection", "homesickness"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing category %q:\n%s", want, out)
		}
	}
}

func TestPromptsList_Pack(t *testing.T) {
	out, err := runPrompts(t, "list", "homesickness")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "What I miss most about home is...") {
		t.Errorf("output missing pack prompt:\n%s", out)
	}

	if _, err := runPrompts(t, "list", "astrology"); err == nil {
		t.Error("unknown category should fail")
	}
}

func TestPromptsPick(t *testing.T) {
	out, err := runPrompts(t, "pick", "reflection")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if strings.TrimSpace(out) == "" {
		t.Error("pick printed nothing")
	}

	if _, err := runPrompts(t, "pick", "astrology"); err == nil {
		t.Error("unknown category should fail")
	}
}
