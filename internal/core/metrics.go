// ABOUTME: MetricsExtractor derives an emotional/safety assessment from a conversation
// ABOUTME: One schema-constrained backend call; never fails, degrades to neutral defaults
package core

import (
	"context"
	"encoding/json"
	"log"
	"math"

	"github.com/havenjournal/haven/internal/models"
	"github.com/sashabaranov/go-openai/jsonschema"
)

var metricsSchema = &jsonschema.Definition{
	Type: jsonschema.Object,
	Properties: map[string]jsonschema.Definition{
		"sentiment": {
			Type: jsonschema.String,
			Enum: []string{"positive", "neutral", "negative"},
		},
		"stressLevel":       {Type: jsonschema.Number},
		"lonelinessLevel":   {Type: jsonschema.Number},
		"homesicknessLevel": {Type: jsonschema.Number},
		"hasConflict":       {Type: jsonschema.Boolean},
		"exploresRole":      {Type: jsonschema.Boolean},
		"encouragesConnection": {
			Type: jsonschema.Boolean,
		},
		"overallTone": {Type: jsonschema.String},
		"emotionalKeywords": {
			Type:  jsonschema.Array,
			Items: &jsonschema.Definition{Type: jsonschema.String},
		},
		"needsSupport": {Type: jsonschema.Boolean},
		"safetyConcern": {
			Type: jsonschema.String,
			Enum: []string{"selfHarm", "harmOthers", "crisis", "none"},
		},
	},
	Required: []string{"sentiment", "stressLevel", "hasConflict"},
}

const metricsSystemPrompt = `Analyze the conversation and extract comprehensive metrics about the user's emotional state, especially focusing on feelings of isolation, homesickness, loneliness, and stress.

Extract the following:
- sentiment: "positive", "neutral", or "negative" based on the user's overall emotional tone
- stressLevel: A number between 1-10 representing the user's stress level (1 = very low stress, 10 = very high stress)
- lonelinessLevel: A number between 1-10 representing feelings of loneliness or isolation (1 = not lonely, 10 = very lonely)
- homesicknessLevel: A number between 1-10 representing feelings of missing home or being away from family (1 = not homesick, 10 = very homesick)
- hasConflict: true if the user mentions conflicts, disagreements, or relational problems
- exploresRole: true if the conversation explores the user's role in a conflict or relationship dynamic
- encouragesConnection: true if the assistant response encourages reaching out to friends/family/partners
- overallTone: A brief description of the conversation tone (e.g., "sad and lonely", "anxious about exams", "missing family")
- emotionalKeywords: Array of key emotional words/phrases mentioned (e.g., ["lonely", "homesick", "stressed", "anxious"])
- needsSupport: true if the user seems to need additional emotional support or connection
- safetyConcern: "selfHarm" if the user mentions self-harm or suicidal thoughts, "harmOthers" if they mention harming others, "crisis" if they express hopelessness or inability to continue, or "none" if no safety concerns

IMPORTANT: Pay careful attention to safety concerns. Look for:
- Self-harm or suicidal ideation (mentions of hurting self, ending life, suicide, etc.)
- Thoughts of harming others (violence, threats, abuse)
- Crisis situations (hopelessness, wanting to give up, no way out)

Pay special attention to language that indicates the user is far from their support system.`

// rawMetrics mirrors the backend's JSON document. Pointer fields distinguish
// missing values from zero values so defaults apply correctly.
type rawMetrics struct {
	Sentiment            string   `json:"sentiment"`
	StressLevel          *float64 `json:"stressLevel"`
	LonelinessLevel      *float64 `json:"lonelinessLevel"`
	HomesicknessLevel    *float64 `json:"homesicknessLevel"`
	HasConflict          bool     `json:"hasConflict"`
	ExploresRole         bool     `json:"exploresRole"`
	EncouragesConnection bool     `json:"encouragesConnection"`
	OverallTone          string   `json:"overallTone"`
	EmotionalKeywords    []string `json:"emotionalKeywords"`
	NeedsSupport         bool     `json:"needsSupport"`
	SafetyConcern        string   `json:"safetyConcern"`
}

// MetricsExtractor classifies a conversation turn's emotional/safety state
type MetricsExtractor struct {
	gen Generator
}

// NewMetricsExtractor creates an extractor backed by the given generator
func NewMetricsExtractor(gen Generator) *MetricsExtractor {
	return &MetricsExtractor{gen: gen}
}

// Extract issues one schema-constrained backend call and parses the result.
// On backend failure or malformed output it returns neutral-default Metrics
// instead of an error; the router must always have a usable input. The
// deterministic safety scanner backstops this fail-soft path.
func (e *MetricsExtractor) Extract(ctx context.Context, history []models.Message) models.Metrics {
	out, err := e.gen.GenerateJSON(ctx, history, metricsSystemPrompt, "conversation_metrics", metricsSchema)
	if err != nil {
		log.Printf("[Metrics] extraction failed, using neutral defaults: %v", err)
		return models.NeutralMetrics()
	}

	var raw rawMetrics
	if err := json.Unmarshal([]byte(out), &raw); err != nil {
		log.Printf("[Metrics] malformed extraction output, using neutral defaults: %v", err)
		return models.NeutralMetrics()
	}

	keywords := raw.EmotionalKeywords
	if keywords == nil {
		keywords = []string{}
	}

	return models.Metrics{
		Sentiment:            models.ParseSentiment(raw.Sentiment),
		StressLevel:          levelOrDefault(raw.StressLevel),
		LonelinessLevel:      levelOrDefault(raw.LonelinessLevel),
		HomesicknessLevel:    levelOrDefault(raw.HomesicknessLevel),
		HasConflict:          raw.HasConflict,
		ExploresRole:         raw.ExploresRole,
		EncouragesConnection: raw.EncouragesConnection,
		OverallTone:          raw.OverallTone,
		EmotionalKeywords:    keywords,
		NeedsSupport:         raw.NeedsSupport,
		SafetyConcern:        models.ParseSafetyConcern(raw.SafetyConcern),
	}
}

// levelOrDefault converts a possibly-missing numeric level, clamping to [1,10]
func levelOrDefault(v *float64) int {
	if v == nil {
		return models.DefaultLevel
	}
	return models.ClampLevel(int(math.Round(*v)))
}
