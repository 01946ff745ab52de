// ABOUTME: Metrics is the structured emotional/safety assessment of a conversation turn
// ABOUTME: Produced once per turn by the extractor, amended once by the pipeline's safety backstop
package models

// Sentiment is the overall emotional polarity of the user's messages
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// ParseSentiment maps free-form model output to a Sentiment, defaulting to neutral
func ParseSentiment(s string) Sentiment {
	switch Sentiment(s) {
	case SentimentPositive, SentimentNegative:
		return Sentiment(s)
	default:
		return SentimentNeutral
	}
}

// SafetyConcern is a high-priority risk category that overrides normal routing
type SafetyConcern string

const (
	SafetyNone       SafetyConcern = ""
	SafetySelfHarm   SafetyConcern = "selfHarm"
	SafetyHarmOthers SafetyConcern = "harmOthers"
	SafetyCrisis     SafetyConcern = "crisis"
)

// ParseSafetyConcern maps free-form model output to a SafetyConcern.
// Anything other than the three known categories is treated as none.
func ParseSafetyConcern(s string) SafetyConcern {
	switch SafetyConcern(s) {
	case SafetySelfHarm, SafetyHarmOthers, SafetyCrisis:
		return SafetyConcern(s)
	default:
		return SafetyNone
	}
}

// DefaultLevel is the neutral midpoint used when a 1-10 level is missing
const DefaultLevel = 5

// Metrics holds the emotional/safety assessment for one conversation turn
type Metrics struct {
	Sentiment            Sentiment     `json:"sentiment"`
	StressLevel          int           `json:"stressLevel"`
	LonelinessLevel      int           `json:"lonelinessLevel"`
	HomesicknessLevel    int           `json:"homesicknessLevel"`
	HasConflict          bool          `json:"hasConflict"`
	ExploresRole         bool          `json:"exploresRole"`
	EncouragesConnection bool          `json:"encouragesConnection"`
	OverallTone          string        `json:"overallTone"`
	EmotionalKeywords    []string      `json:"emotionalKeywords"`
	NeedsSupport         bool          `json:"needsSupport"`
	SafetyConcern        SafetyConcern `json:"safetyConcern,omitempty"`
}

// NeutralMetrics returns the fail-soft default assessment: neutral sentiment,
// all levels at the midpoint, no flags, no safety concern. The router must
// always have a usable input even when extraction fails.
func NeutralMetrics() Metrics {
	return Metrics{
		Sentiment:         SentimentNeutral,
		StressLevel:       DefaultLevel,
		LonelinessLevel:   DefaultLevel,
		HomesicknessLevel: DefaultLevel,
		EmotionalKeywords: []string{},
	}
}

// ClampLevel keeps a 1-10 level in range. Out-of-range values fall back to
// the neutral midpoint, same as missing ones.
func ClampLevel(n int) int {
	if n < 1 || n > 10 {
		return DefaultLevel
	}
	return n
}
