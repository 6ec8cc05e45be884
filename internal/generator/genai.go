package generator

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.0-flash"

const systemInstruction = "You design spreadsheet specifications. " +
	"Given a request, respond with a single JSON object describing the " +
	"spreadsheet: a title, a category, tags, optional notes, and a list of " +
	"sheets with named, typed columns. Keep tab names short and formulas " +
	"readable."

// GeminiModel generates sheet specs via the Gemini API using constrained
// JSON output.
type GeminiModel struct {
	client *genai.Client
	model  string
}

// NewGeminiModel constructs a GeminiModel.
func NewGeminiModel(ctx context.Context, apiKey, model string) (*GeminiModel, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("generator: gemini api key is required")
	}
	if strings.TrimSpace(model) == "" {
		model = defaultGeminiModel
	}
	client, errClient := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if errClient != nil {
		return nil, fmt.Errorf("generator: create gemini client: %w", errClient)
	}
	return &GeminiModel{client: client, model: model}, nil
}

// GenerateSpec sends the prompt and returns the raw JSON model output.
func (m *GeminiModel) GenerateSpec(ctx context.Context, prompt string, examples []string) ([]byte, error) {
	contents := make([]*genai.Content, 0, len(examples)+1)
	for _, example := range examples {
		contents = append(contents, genai.NewContentFromText("Example of a good specification:\n"+example, genai.RoleUser))
	}
	contents = append(contents, genai.NewContentFromText(prompt, genai.RoleUser))

	result, errGenerate := m.client.Models.GenerateContent(ctx, m.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    specResponseSchema(),
	})
	if errGenerate != nil {
		return nil, fmt.Errorf("generator: gemini generate: %w", errGenerate)
	}
	text := result.Text()
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("generator: gemini returned empty output")
	}
	return []byte(text), nil
}
