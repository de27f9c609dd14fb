package ai

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"
	"google.golang.org/genai"

	"github.com/mdrahmanz/curator/schema"
)

const suggestSystem = `You design content schemas for an admin dashboard.
Given a description of a collection, propose a short list of fields.
Allowed types: string, email, datetime, number, boolean, timestamp.
Also pick a single emoji icon for the collection.`

var suggestSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"fields": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name": {Type: genai.TypeString},
					"type": {Type: genai.TypeString},
				},
				Required: []string{"name", "type"},
			},
		},
		"icon": {Type: genai.TypeString},
	},
	Required: []string{"fields"},
}

type suggestion struct {
	Fields []struct {
		Name string `json:"name"`
		Type string `json:"type"`
	} `json:"fields"`
	Icon string `json:"icon"`
}

// SuggestSchema asks the model to draft a schema for a described collection.
// The result uses the same definition format as the synthesizer, so a
// suggestion can be saved or hand-edited like any other schema.
func (a *Assistant) SuggestSchema(ctx context.Context, collection, description string) (schema.Definition, error) {
	prompt := fmt.Sprintf("Collection name: %s\nDescription: %s", collection, description)
	text, err := a.complete(ctx, suggestSystem, prompt, suggestSchema)
	if err != nil {
		return schema.Definition{}, fmt.Errorf("suggesting schema for %s: %w", collection, err)
	}
	def, err := parseSuggestion(collection, text)
	if err != nil {
		return schema.Definition{}, fmt.Errorf("suggesting schema for %s: %w", collection, err)
	}
	return def, nil
}

// parseSuggestion converts the model's JSON into a definition. Unknown type
// tokens degrade to string rather than failing the whole suggestion.
func parseSuggestion(collection, text string) (schema.Definition, error) {
	var s suggestion
	if err := json.Unmarshal([]byte(text), &s); err != nil {
		return schema.Definition{}, fmt.Errorf("decoding suggestion: %w", err)
	}
	def := schema.Definition{Collection: collection, Icon: s.Icon}
	for _, f := range s.Fields {
		if f.Name == "" {
			continue
		}
		typ := schema.FieldType(f.Type)
		if !schema.KnownType(typ) {
			typ = schema.FieldString
		}
		def.Fields = append(def.Fields, schema.FieldDef{Name: f.Name, Type: typ})
	}
	return def, nil
}
