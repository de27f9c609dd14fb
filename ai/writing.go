package ai

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"
	"google.golang.org/genai"
)

var summarySchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"summary": {Type: genai.TypeString},
	},
	Required: []string{"summary"},
}

var ideasSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"ideas": {
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
	},
	Required: []string{"ideas"},
}

var textSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"text": {Type: genai.TypeString},
	},
	Required: []string{"text"},
}

// Summarize condenses a document body into a couple of sentences.
func (a *Assistant) Summarize(ctx context.Context, text string) (string, error) {
	out, err := a.complete(ctx,
		"Summarize the given content in two or three sentences. Plain prose, no markdown.",
		text, summarySchema)
	if err != nil {
		return "", fmt.Errorf("summarizing: %w", err)
	}
	var payload struct {
		Summary string `json:"summary"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		return "", fmt.Errorf("decoding summary: %w", err)
	}
	return payload.Summary, nil
}

// Brainstorm returns a handful of content ideas for a topic.
func (a *Assistant) Brainstorm(ctx context.Context, topic string) ([]string, error) {
	out, err := a.complete(ctx,
		"Brainstorm 5 concise content ideas for the given topic. Each idea is one sentence.",
		topic, ideasSchema)
	if err != nil {
		return nil, fmt.Errorf("brainstorming: %w", err)
	}
	var payload struct {
		Ideas []string `json:"ideas"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		return nil, fmt.Errorf("decoding ideas: %w", err)
	}
	return payload.Ideas, nil
}

// WritingAssist rewrites or extends a draft per the given instruction.
func (a *Assistant) WritingAssist(ctx context.Context, instruction, draft string) (string, error) {
	prompt := fmt.Sprintf("Instruction: %s\n\nDraft:\n%s", instruction, draft)
	out, err := a.complete(ctx,
		"You are a writing assistant. Apply the instruction to the draft and return the full revised text.",
		prompt, textSchema)
	if err != nil {
		return "", fmt.Errorf("writing assist: %w", err)
	}
	var payload struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		return "", fmt.Errorf("decoding assist response: %w", err)
	}
	return payload.Text, nil
}
