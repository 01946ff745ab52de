// ABOUTME: Name extraction: unique real-person names mentioned in diary snippets
// ABOUTME: Filters places, holidays, and unnamed relatives; preserves first-seen order

package extract

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/sashabaranov/go-openai/jsonschema"
)

var namesSchema = &jsonschema.Definition{
	Type: jsonschema.Object,
	Properties: map[string]jsonschema.Definition{
		"names": {
			Type:  jsonschema.Array,
			Items: &jsonschema.Definition{Type: jsonschema.String},
		},
	},
	Required: []string{"names"},
}

const namesSystemPrompt = `Extract real-person names from the provided diary snippets.

Rules:
- Return only human first/last names (people the writer mentions).
- Exclude places, organizations, holidays, events, objects, and generic nouns.
- Exclude relatives without names (e.g., "mom", "roommate") unless paired with a name.
- Keep each name title-cased exactly as it appears (e.g., "Alex Kim").
- Output a JSON array of unique names (no duplicates).`

// Names extracts unique person names from diary text. Failures degrade to
// an empty result.
func (e *Extractor) Names(ctx context.Context, text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	out, err := e.gen.GenerateJSON(ctx, userText(text), namesSystemPrompt, "person_names", namesSchema)
	if err != nil {
		log.Printf("[Extract] name extraction failed: %v", err)
		return nil
	}

	var parsed struct {
		Names []string `json:"names"`
	}
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		log.Printf("[Extract] malformed name extraction output: %v", err)
		return nil
	}

	seen := make(map[string]bool, len(parsed.Names))
	unique := make([]string, 0, len(parsed.Names))
	for _, name := range parsed.Names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		unique = append(unique, name)
	}
	return unique
}
