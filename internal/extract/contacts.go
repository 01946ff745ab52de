// ABOUTME: Contact extraction: which mentioned people the writer actually reached
// ABOUTME: Distinguishes real interaction from wishes and plans to get in touch

package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/sashabaranov/go-openai/jsonschema"
)

// ContactMention records a person named in diary text and whether the
// writer actually interacted with them.
type ContactMention struct {
	Name      string `json:"name"`
	Contacted bool   `json:"contacted"`
}

var contactsSchema = &jsonschema.Definition{
	Type: jsonschema.Object,
	Properties: map[string]jsonschema.Definition{
		"contacts": {
			Type: jsonschema.Array,
			Items: &jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"name":      {Type: jsonschema.String},
					"contacted": {Type: jsonschema.Boolean},
				},
				Required: []string{"name", "contacted"},
			},
		},
	},
	Required: []string{"contacts"},
}

const contactsSystemPrompt = `Identify whether the writer interacted directly with any people mentioned in the text.

Return an array of { name, contacted }.
Guidelines:
- "contacted" means a clear indication of talking/texting/meeting/reaching out (including "called", "FaceTimed", "hung out", "saw", "messaged", "emailed").
- Mere thoughts or plans ("miss", "want to call", "should text") are NOT contacted.
- Only include human names. Ignore holidays, greetings, and non-person entities.
- Use the provided candidate list to guide name selection, but ignore a candidate if the text doesn't reference them as a person.`

// Contacts extracts contact signals from diary text. The candidate list
// guides name matching but never forces an entry. Backend or parse failures
// degrade to an empty result.
func (e *Extractor) Contacts(ctx context.Context, text string, candidates []string) []ContactMention {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	input := fmt.Sprintf("Text:\n%s\n\nCandidates (if any): %s", text, strings.Join(candidates, ", "))

	out, err := e.gen.GenerateJSON(ctx, userText(input), contactsSystemPrompt, "contact_mentions", contactsSchema)
	if err != nil {
		log.Printf("[Extract] contact extraction failed: %v", err)
		return nil
	}

	var parsed struct {
		Contacts []ContactMention `json:"contacts"`
	}
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		log.Printf("[Extract] malformed contact extraction output: %v", err)
		return nil
	}

	clean := make([]ContactMention, 0, len(parsed.Contacts))
	for _, c := range parsed.Contacts {
		c.Name = strings.TrimSpace(c.Name)
		if c.Name == "" {
			continue
		}
		clean = append(clean, c)
	}
	return clean
}
