// ABOUTME: Deterministic keyword scan for safety concerns in the latest user message
// ABOUTME: Guaranteed fallback independent of the probabilistic extractor
package core

import (
	"strings"

	"github.com/havenjournal/haven/internal/models"
)

// keywordSet binds one concern category to its trigger phrases
type keywordSet struct {
	concern  models.SafetyConcern
	keywords []string
}

// SafetyScanner matches the latest user utterance against fixed keyword sets.
// Pure and deterministic: no external calls, no state, bounded by text length.
// It exists because missed safety signals are the highest-cost failure mode,
// and structured-output parsing upstream can fail silently.
type SafetyScanner struct {
	// sets are checked in priority order: selfHarm > harmOthers > crisis
	sets []keywordSet
}

// NewSafetyScanner creates a scanner with the built-in keyword sets
func NewSafetyScanner() *SafetyScanner {
	return &SafetyScanner{
		sets: []keywordSet{
			{
				concern: models.SafetySelfHarm,
				keywords: []string{
					"suicide", "kill myself", "end it", "want to die",
					"hurt myself", "cut myself", "self harm",
				},
			},
			{
				concern: models.SafetyHarmOthers,
				keywords: []string{
					"hurt them", "kill them", "attack", "violence",
					"abuse", "threat",
				},
			},
			{
				concern: models.SafetyCrisis,
				keywords: []string{
					"can't go on", "give up", "no point", "what's the point",
					"hopeless", "no way out", "don't want to be here",
				},
			},
		},
	}
}

// Scan returns the first matching concern category in priority order,
// or none if no keyword matches. Matching is case-insensitive substring.
func (s *SafetyScanner) Scan(text string) models.SafetyConcern {
	lower := strings.ToLower(text)

	for _, set := range s.sets {
		for _, kw := range set.keywords {
			if strings.Contains(lower, kw) {
				return set.concern
			}
		}
	}
	return models.SafetyNone
}
