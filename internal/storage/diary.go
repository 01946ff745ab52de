// ABOUTME: DiaryStore persists one journal entry per calendar day
// ABOUTME: Builds the recent-entries context block the chat pipeline consumes

package storage

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

const diaryPrefix = "diary:"

// DateFormat is the canonical key format for diary entries
const DateFormat = "2006-01-02"

// DiaryEntry is one day's journal entry with its metadata
type DiaryEntry struct {
	Date      string   `json:"date"` // YYYY-MM-DD
	Content   string   `json:"content"`
	Mood      string   `json:"mood,omitempty"`
	Starred   bool     `json:"starred,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DiaryStore reads and writes diary entries keyed by date
type DiaryStore struct {
	kv KV
}

// NewDiaryStore creates a diary store over the given KV
func NewDiaryStore(kv KV) *DiaryStore {
	return &DiaryStore{kv: kv}
}

func diaryKey(date string) string {
	return diaryPrefix + date
}

// Save upserts the entry content for a date, preserving existing metadata
func (s *DiaryStore) Save(date, content string) (DiaryEntry, error) {
	if _, err := time.Parse(DateFormat, date); err != nil {
		return DiaryEntry{}, fmt.Errorf("invalid diary date %q: %w", date, err)
	}

	entry, err := s.Get(date)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return DiaryEntry{}, err
	}
	entry.Date = date
	entry.Content = content
	entry.UpdatedAt = time.Now().UTC()

	if err := setJSON(s.kv, diaryKey(date), entry); err != nil {
		return DiaryEntry{}, err
	}
	return entry, nil
}

// Get returns the entry for a date, or ErrNotFound
func (s *DiaryStore) Get(date string) (DiaryEntry, error) {
	var entry DiaryEntry
	if err := getJSON(s.kv, diaryKey(date), &entry); err != nil {
		return DiaryEntry{}, err
	}
	return entry, nil
}

// Delete removes the entry for a date
func (s *DiaryStore) Delete(date string) error {
	return s.kv.Delete(diaryKey(date))
}

// SetMood records the extracted mood on an existing entry
func (s *DiaryStore) SetMood(date, mood string) error {
	entry, err := s.Get(date)
	if err != nil {
		return err
	}
	entry.Mood = mood
	return setJSON(s.kv, diaryKey(date), entry)
}

// ToggleStar flips the star on an entry and reports the new state
func (s *DiaryStore) ToggleStar(date string) (bool, error) {
	entry, err := s.Get(date)
	if err != nil {
		return false, err
	}
	entry.Starred = !entry.Starred
	if err := setJSON(s.kv, diaryKey(date), entry); err != nil {
		return false, err
	}
	return entry.Starred, nil
}

// Recent returns up to limit non-blank entries, most recent date first
func (s *DiaryStore) Recent(limit int) ([]DiaryEntry, error) {
	keys, err := s.kv.Keys(diaryPrefix)
	if err != nil {
		return nil, err
	}
	// Date keys sort chronologically as strings
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	entries := make([]DiaryEntry, 0, limit)
	for _, key := range keys {
		if len(entries) == limit {
			break
		}
		var entry DiaryEntry
		if err := getJSON(s.kv, key, &entry); err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}
		if strings.TrimSpace(entry.Content) == "" {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Context joins the most recent entries into the background block handed to
// the chat pipeline. Empty when there are no entries.
func (s *DiaryStore) Context(limit int) (string, error) {
	entries, err := s.Recent(limit)
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "", nil
	}

	parts := make([]string, len(entries))
	for i, entry := range entries {
		parts[i] = fmt.Sprintf("Date: %s\n%s", entry.Date, entry.Content)
	}
	return "Previous diary entries for context:\n\n" + strings.Join(parts, "\n\n---\n\n"), nil
}
