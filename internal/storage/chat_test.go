// ABOUTME: Tests for chat session persistence and the current-session pointer
// ABOUTME: Runs against the in-memory KV

package storage

import (
	"errors"
	"strings"
	"testing"

	"github.com/havenjournal/haven/internal/models"
)

func TestChatStore_CreateSetsCurrent(t *testing.T) {
	s := NewChatStore(NewMemoryKV())

	session, err := s.Create("")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if session.ID == "" {
		t.Fatal("Create() returned empty ID")
	}
	if session.Title == "" {
		t.Error("Create() should assign a default title")
	}

	current, err := s.Current()
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if current != session.ID {
		t.Errorf("Current() = %q, want %q", current, session.ID)
	}
}

func TestChatStore_AppendMessageTitlesFromFirstUserMessage(t *testing.T) {
	s := NewChatStore(NewMemoryKV())
	session, err := s.Create("")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	s.AppendMessage(session.ID, models.Message{Role: models.RoleAssistant, Content: "How was your day?"})
	long := strings.Repeat("today was a lot ", 8)
	updated, err := s.AppendMessage(session.ID, models.Message{Role: models.RoleUser, Content: long})
	if err != nil {
		t.Fatalf("AppendMessage() error = %v", err)
	}

	if len(updated.Messages) != 2 {
		t.Fatalf("Messages = %d, want 2", len(updated.Messages))
	}
	if !strings.HasSuffix(updated.Title, "...") || len(updated.Title) != 53 {
		t.Errorf("Title = %q, want 50-char preview with ellipsis", updated.Title)
	}

	// A later user message must not retitle the session
	retitled, _ := s.AppendMessage(session.ID, models.Message{Role: models.RoleUser, Content: "more"})
	if retitled.Title != updated.Title {
		t.Errorf("Title changed on second user message: %q", retitled.Title)
	}
}

func TestChatStore_ExplicitTitleKept(t *testing.T) {
	s := NewChatStore(NewMemoryKV())
	session, err := s.Create("Homesickness check-in")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	updated, err := s.AppendMessage(session.ID, models.Message{Role: models.RoleUser, Content: "hello"})
	if err != nil {
		t.Fatalf("AppendMessage() error = %v", err)
	}
	if updated.Title != "Homesickness check-in" {
		t.Errorf("Title = %q, explicit titles must not be replaced", updated.Title)
	}
}

func TestChatStore_ListMostRecentFirst(t *testing.T) {
	s := NewChatStore(NewMemoryKV())
	first, _ := s.Create("first")
	second, _ := s.Create("second")

	// Touch the first session so it becomes most recent
	if _, err := s.AppendMessage(first.ID, models.Message{Role: models.RoleUser, Content: "hi"}); err != nil {
		t.Fatalf("AppendMessage() error = %v", err)
	}

	sessions, err := s.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("List() returned %d sessions", len(sessions))
	}
	if sessions[0].ID != first.ID || sessions[1].ID != second.ID {
		t.Errorf("List() order = %s, %s; want most recently updated first", sessions[0].Title, sessions[1].Title)
	}
}

func TestChatStore_DeleteClearsCurrent(t *testing.T) {
	s := NewChatStore(NewMemoryKV())
	session, _ := s.Create("doomed")

	if err := s.Delete(session.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Get(session.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(deleted) error = %v, want ErrNotFound", err)
	}
	if _, err := s.Current(); !errors.Is(err, ErrNotFound) {
		t.Errorf("Current() after delete error = %v, want ErrNotFound", err)
	}
}

func TestChatStore_CurrentOrCreate(t *testing.T) {
	s := NewChatStore(NewMemoryKV())

	created, err := s.CurrentOrCreate()
	if err != nil {
		t.Fatalf("CurrentOrCreate() error = %v", err)
	}

	again, err := s.CurrentOrCreate()
	if err != nil {
		t.Fatalf("CurrentOrCreate() error = %v", err)
	}
	if again.ID != created.ID {
		t.Errorf("CurrentOrCreate() created a new session %q, want existing %q", again.ID, created.ID)
	}

	// Dangling pointer falls through to a fresh session
	if err := s.SetCurrent("no-such-id"); err != nil {
		t.Fatalf("SetCurrent() error = %v", err)
	}
	fresh, err := s.CurrentOrCreate()
	if err != nil {
		t.Fatalf("CurrentOrCreate() error = %v", err)
	}
	if fresh.ID == "no-such-id" || fresh.ID == "" {
		t.Errorf("CurrentOrCreate() = %q, want a fresh session", fresh.ID)
	}
}
