// ABOUTME: ChatStore persists chat sessions and the current-session pointer
// ABOUTME: Session titles auto-fill from the first user message

package storage

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/havenjournal/haven/internal/models"
)

const (
	chatSessionPrefix = "chat:session:"
	chatCurrentKey    = "chat:current"
)

// titlePreviewLen caps auto-generated session titles
const titlePreviewLen = 50

// ChatSession is one saved conversation
type ChatSession struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Messages    []models.Message `json:"messages"`
	CreatedAt   time.Time        `json:"createdAt"`
	LastUpdated time.Time        `json:"lastUpdated"`
}

// ChatStore reads and writes chat sessions
type ChatStore struct {
	kv KV
}

// NewChatStore creates a chat store over the given KV
func NewChatStore(kv KV) *ChatStore {
	return &ChatStore{kv: kv}
}

func sessionKey(id string) string {
	return chatSessionPrefix + id
}

// Create starts a new session and makes it current. An empty title gets a
// time-of-day default until the first user message replaces it.
func (s *ChatStore) Create(title string) (ChatSession, error) {
	now := time.Now().UTC()
	if title == "" {
		title = defaultTitle(now)
	}
	session := ChatSession{
		ID:          uuid.New().String(),
		Title:       title,
		CreatedAt:   now,
		LastUpdated: now,
	}
	if err := setJSON(s.kv, sessionKey(session.ID), session); err != nil {
		return ChatSession{}, err
	}
	if err := s.SetCurrent(session.ID); err != nil {
		return ChatSession{}, err
	}
	return session, nil
}

// Get returns the session with the given ID, or ErrNotFound
func (s *ChatStore) Get(id string) (ChatSession, error) {
	var session ChatSession
	if err := getJSON(s.kv, sessionKey(id), &session); err != nil {
		return ChatSession{}, err
	}
	return session, nil
}

// List returns all sessions, most recently updated first
func (s *ChatStore) List() ([]ChatSession, error) {
	keys, err := s.kv.Keys(chatSessionPrefix)
	if err != nil {
		return nil, err
	}
	sessions := make([]ChatSession, 0, len(keys))
	for _, key := range keys {
		var session ChatSession
		if err := getJSON(s.kv, key, &session); err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}
		sessions = append(sessions, session)
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].LastUpdated.After(sessions[j].LastUpdated)
	})
	return sessions, nil
}

// AppendMessage adds a message to a session. The first user message
// replaces a default title with a preview of itself.
func (s *ChatStore) AppendMessage(id string, msg models.Message) (ChatSession, error) {
	session, err := s.Get(id)
	if err != nil {
		return ChatSession{}, err
	}

	if msg.Role == models.RoleUser && !hasUserMessage(session.Messages) && isDefaultTitle(session.Title) {
		session.Title = previewTitle(msg.Content)
	}
	session.Messages = append(session.Messages, msg)
	session.LastUpdated = time.Now().UTC()

	if err := setJSON(s.kv, sessionKey(id), session); err != nil {
		return ChatSession{}, err
	}
	return session, nil
}

// Delete removes a session, clearing the current pointer if it pointed here
func (s *ChatStore) Delete(id string) error {
	if err := s.kv.Delete(sessionKey(id)); err != nil {
		return err
	}
	current, err := s.Current()
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	if current == id {
		return s.kv.Delete(chatCurrentKey)
	}
	return nil
}

// Current returns the current session ID, or ErrNotFound
func (s *ChatStore) Current() (string, error) {
	data, err := s.kv.Get(chatCurrentKey)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// SetCurrent records the current session ID
func (s *ChatStore) SetCurrent(id string) error {
	return s.kv.Set(chatCurrentKey, []byte(id))
}

// CurrentOrCreate returns the current session, creating one if the pointer
// is unset or dangling.
func (s *ChatStore) CurrentOrCreate() (ChatSession, error) {
	id, err := s.Current()
	if err == nil {
		session, err := s.Get(id)
		if err == nil {
			return session, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return ChatSession{}, err
		}
	} else if !errors.Is(err, ErrNotFound) {
		return ChatSession{}, err
	}
	return s.Create("")
}

func defaultTitle(now time.Time) string {
	greeting := "Evening"
	switch {
	case now.Hour() < 12:
		greeting = "Morning"
	case now.Hour() < 17:
		greeting = "Afternoon"
	}
	return fmt.Sprintf("%s Chat - %s", greeting, now.Format(DateFormat))
}

func isDefaultTitle(title string) bool {
	for _, greeting := range []string{"Morning", "Afternoon", "Evening"} {
		if len(title) > len(greeting) && title[:len(greeting)] == greeting {
			return true
		}
	}
	return false
}

func previewTitle(content string) string {
	if len(content) <= titlePreviewLen {
		return content
	}
	return content[:titlePreviewLen] + "..."
}

func hasUserMessage(messages []models.Message) bool {
	for _, msg := range messages {
		if msg.Role == models.RoleUser {
			return true
		}
	}
	return false
}
