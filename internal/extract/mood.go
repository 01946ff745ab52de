// ABOUTME: Mood extraction: one reading of mood plus stress/loneliness/homesickness
// ABOUTME: Sensitive to subtle cues; unreadable fields fall back to midpoint levels

package extract

import (
	"context"
	"encoding/json"
	"log"
	"math"
	"strings"

	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/havenjournal/haven/internal/models"
)

// Mood labels for diary entries. Empty means the mood was unclear.
var moodLabels = []string{"happy", "calm", "sad", "anxious", "lonely", "tired", "frustrated", "loved"}

// MoodReading is the emotional snapshot extracted from one diary entry
type MoodReading struct {
	Mood              string `json:"mood,omitempty"`
	StressLevel       int    `json:"stressLevel"`
	LonelinessLevel   int    `json:"lonelinessLevel"`
	HomesicknessLevel int    `json:"homesicknessLevel"`
}

// DefaultMoodReading is the fallback when nothing can be read from the text
func DefaultMoodReading() MoodReading {
	return MoodReading{
		StressLevel:       models.DefaultLevel,
		LonelinessLevel:   models.DefaultLevel,
		HomesicknessLevel: models.DefaultLevel,
	}
}

var moodSchema = &jsonschema.Definition{
	Type: jsonschema.Object,
	Properties: map[string]jsonschema.Definition{
		"mood":              {Type: jsonschema.String, Enum: moodLabels},
		"stressLevel":       {Type: jsonschema.Number},
		"lonelinessLevel":   {Type: jsonschema.Number},
		"homesicknessLevel": {Type: jsonschema.Number},
	},
}

const moodSystemPrompt = `Analyze the following diary entry text and extract the user's emotional state.

Extract:
- mood: One of "happy", "calm", "sad", "anxious", "lonely", "tired", "frustrated", "loved", or omit if unclear
- stressLevel: A number 1-10 (1 = very low, 10 = very high)
- lonelinessLevel: A number 1-10 (1 = not lonely, 10 = very lonely)
- homesicknessLevel: A number 1-10 (1 = not homesick, 10 = very homesick)

Look for emotional indicators in the text. Be sensitive to subtle cues, not just explicit statements.`

// Mood extracts a mood reading from one diary entry. Backend or parse
// failures degrade to the default reading; an unrecognized mood label is
// dropped while valid levels are kept.
func (e *Extractor) Mood(ctx context.Context, text string) MoodReading {
	text = strings.TrimSpace(text)
	if text == "" {
		return DefaultMoodReading()
	}

	out, err := e.gen.GenerateJSON(ctx, userText(text), moodSystemPrompt, "mood_reading", moodSchema)
	if err != nil {
		log.Printf("[Extract] mood extraction failed: %v", err)
		return DefaultMoodReading()
	}

	var parsed struct {
		Mood              string   `json:"mood"`
		StressLevel       *float64 `json:"stressLevel"`
		LonelinessLevel   *float64 `json:"lonelinessLevel"`
		HomesicknessLevel *float64 `json:"homesicknessLevel"`
	}
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		log.Printf("[Extract] malformed mood extraction output: %v", err)
		return DefaultMoodReading()
	}

	reading := MoodReading{
		StressLevel:       levelOrMidpoint(parsed.StressLevel),
		LonelinessLevel:   levelOrMidpoint(parsed.LonelinessLevel),
		HomesicknessLevel: levelOrMidpoint(parsed.HomesicknessLevel),
	}
	mood := strings.ToLower(strings.TrimSpace(parsed.Mood))
	for _, label := range moodLabels {
		if mood == label {
			reading.Mood = label
			break
		}
	}
	return reading
}

func levelOrMidpoint(v *float64) int {
	if v == nil {
		return models.DefaultLevel
	}
	return models.ClampLevel(int(math.Round(*v)))
}
