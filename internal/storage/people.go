// ABOUTME: PeopleStore tracks the people the writer wants to stay connected with
// ABOUTME: Upserts are case-insensitive on name; first-seen casing is kept

package storage

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

const personPrefix = "person:"

// maxPersonHistory caps the per-person activity history
const maxPersonHistory = 10

// Activity is one recorded interaction or mention
type Activity struct {
	Summary  string    `json:"summary"`
	Date     string    `json:"date,omitempty"` // YYYY-MM-DD when known
	Feelings string    `json:"feelings,omitempty"`
	AddedAt  time.Time `json:"addedAt"`
}

// Person is one tracked relationship
type Person struct {
	Name        string     `json:"name"`
	Kind        string     `json:"kind"` // friend, family, mentor, ...
	Notes       string     `json:"notes,omitempty"`
	LastContact time.Time  `json:"lastContact,omitempty"`
	History     []Activity `json:"history,omitempty"`
}

// PeopleStore reads and writes person profiles
type PeopleStore struct {
	kv KV
}

// NewPeopleStore creates a people store over the given KV
func NewPeopleStore(kv KV) *PeopleStore {
	return &PeopleStore{kv: kv}
}

func personKey(name string) string {
	return personPrefix + strings.ToLower(strings.TrimSpace(name))
}

// Upsert creates or updates a person by name. Kind and notes overwrite only
// when non-empty; the original name casing is kept on update.
func (s *PeopleStore) Upsert(name, kind, notes string) (Person, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Person{}, fmt.Errorf("person name is required")
	}

	person, err := s.Find(name)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return Person{}, err
		}
		person = Person{Name: name, Kind: "friend"}
	}
	if kind != "" {
		person.Kind = kind
	}
	if notes != "" {
		person.Notes = notes
	}

	if err := setJSON(s.kv, personKey(name), person); err != nil {
		return Person{}, err
	}
	return person, nil
}

// Find returns the person with the given name, case-insensitively
func (s *PeopleStore) Find(name string) (Person, error) {
	var person Person
	if err := getJSON(s.kv, personKey(name), &person); err != nil {
		return Person{}, err
	}
	return person, nil
}

// All returns every tracked person, sorted by name
func (s *PeopleStore) All() ([]Person, error) {
	keys, err := s.kv.Keys(personPrefix)
	if err != nil {
		return nil, err
	}
	people := make([]Person, 0, len(keys))
	for _, key := range keys {
		var person Person
		if err := getJSON(s.kv, key, &person); err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}
		people = append(people, person)
	}
	sort.Slice(people, func(i, j int) bool {
		return strings.ToLower(people[i].Name) < strings.ToLower(people[j].Name)
	})
	return people, nil
}

// Names returns the tracked names, for use as extraction candidates
func (s *PeopleStore) Names() ([]string, error) {
	people, err := s.All()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(people))
	for i, person := range people {
		names[i] = person.Name
	}
	return names, nil
}

// MarkContacted records that the writer reached this person, creating the
// profile if needed.
func (s *PeopleStore) MarkContacted(name string, when time.Time) error {
	person, err := s.Upsert(name, "", "")
	if err != nil {
		return err
	}
	person.LastContact = when
	return setJSON(s.kv, personKey(name), person)
}

// AddActivity prepends an activity to the person's history, keeping the
// most recent maxPersonHistory.
func (s *PeopleStore) AddActivity(name string, activity Activity) error {
	person, err := s.Upsert(name, "", "")
	if err != nil {
		return err
	}
	activity.AddedAt = time.Now().UTC()
	person.History = append([]Activity{activity}, person.History...)
	if len(person.History) > maxPersonHistory {
		person.History = person.History[:maxPersonHistory]
	}
	return setJSON(s.kv, personKey(name), person)
}

// Context renders up to limit people as relational background for the chat
// pipeline. Empty when nobody is tracked.
func (s *PeopleStore) Context(limit int) (string, error) {
	people, err := s.All()
	if err != nil {
		return "", err
	}
	if len(people) == 0 {
		return "", nil
	}
	if len(people) > limit {
		people = people[:limit]
	}

	sections := make([]string, 0, len(people))
	for _, person := range people {
		var b strings.Builder
		fmt.Fprintf(&b, "Person: %s (%s)", person.Name, person.Kind)
		if person.Notes != "" {
			fmt.Fprintf(&b, "\nNotes: %s", person.Notes)
		}
		for i, activity := range person.History {
			if i == 3 {
				break
			}
			fmt.Fprintf(&b, "\n- %s", activity.Summary)
			if activity.Date != "" {
				fmt.Fprintf(&b, " on %s", activity.Date)
			}
			if activity.Feelings != "" {
				fmt.Fprintf(&b, " (felt: %s)", activity.Feelings)
			}
		}
		sections = append(sections, b.String())
	}
	return "People to stay connected with (for relational context):\n\n" + strings.Join(sections, "\n\n---\n\n"), nil
}
