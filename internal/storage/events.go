// ABOUTME: EventStore keeps upcoming reminders inferred from chats and notes
// ABOUTME: Past events are purged on write; duplicates collapse on (date, summary)

package storage

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

const eventPrefix = "event:"

// Reminder is one upcoming event
type Reminder struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Summary   string    `json:"summary"`
	Source    string    `json:"source"` // chat, diary, manual
	CreatedAt time.Time `json:"createdAt"`
}

// EventStore reads and writes reminders
type EventStore struct {
	kv KV
}

// NewEventStore creates an event store over the given KV
func NewEventStore(kv KV) *EventStore {
	return &EventStore{kv: kv}
}

// Add stores the given reminders, skipping past dates and duplicates of
// existing (date, summary) pairs. IDs and timestamps are assigned here;
// an empty source defaults to "chat". Past events already stored are
// purged first.
func (s *EventStore) Add(reminders []Reminder, today time.Time) error {
	existing, err := s.PurgePast(today)
	if err != nil {
		return err
	}

	seen := make(map[string]bool, len(existing))
	for _, ev := range existing {
		seen[dedupeKey(ev)] = true
	}

	// Date-string comparison avoids timezone pitfalls: YYYY-MM-DD sorts
	// chronologically.
	todayStr := today.Format(DateFormat)
	for _, ev := range reminders {
		ev.Summary = strings.TrimSpace(ev.Summary)
		if ev.Summary == "" {
			continue
		}
		if _, err := time.Parse(DateFormat, ev.Date); err != nil || ev.Date < todayStr {
			continue
		}
		if key := dedupeKey(ev); seen[key] {
			continue
		} else {
			seen[key] = true
		}

		ev.ID = uuid.New().String()
		ev.CreatedAt = time.Now().UTC()
		if ev.Source == "" {
			ev.Source = "chat"
		}
		if err := setJSON(s.kv, eventPrefix+ev.ID, ev); err != nil {
			return err
		}
	}
	return nil
}

// All returns every stored reminder, soonest first
func (s *EventStore) All() ([]Reminder, error) {
	keys, err := s.kv.Keys(eventPrefix)
	if err != nil {
		return nil, err
	}
	events := make([]Reminder, 0, len(keys))
	for _, key := range keys {
		var ev Reminder
		if err := getJSON(s.kv, key, &ev); err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}
		events = append(events, ev)
	}
	sort.Slice(events, func(i, j int) bool {
		if events[i].Date != events[j].Date {
			return events[i].Date < events[j].Date
		}
		return events[i].Summary < events[j].Summary
	})
	return events, nil
}

// PurgePast deletes reminders dated before today and returns what remains
func (s *EventStore) PurgePast(today time.Time) ([]Reminder, error) {
	events, err := s.All()
	if err != nil {
		return nil, err
	}

	todayStr := today.Format(DateFormat)
	kept := events[:0]
	for _, ev := range events {
		if _, err := time.Parse(DateFormat, ev.Date); err != nil || ev.Date < todayStr {
			if err := s.kv.Delete(eventPrefix + ev.ID); err != nil {
				return nil, err
			}
			continue
		}
		kept = append(kept, ev)
	}
	return kept, nil
}

// TodayContext renders today's reminders as background for the chat
// pipeline. Empty when nothing is due today.
func (s *EventStore) TodayContext(today time.Time) (string, error) {
	events, err := s.PurgePast(today)
	if err != nil {
		return "", err
	}
	todayStr := today.Format(DateFormat)

	var lines []string
	for _, ev := range events {
		if ev.Date == todayStr {
			lines = append(lines, "- "+ev.Summary+" (today)")
		}
	}
	if len(lines) == 0 {
		return "", nil
	}
	return "Today's important items:\n" + strings.Join(lines, "\n"), nil
}

func dedupeKey(ev Reminder) string {
	return strings.ToLower(ev.Date + "-" + ev.Summary)
}
