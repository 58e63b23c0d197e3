package llm

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Client wraps a single Gemini model behind a text-in, structured-JSON-out
// call. Every flow declares its own response schema; callers treat any
// failure uniformly as a retryable generation error.
type Client struct {
	model  string
	client *genai.Client
}

func New(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}

	return &Client{model: model, client: gc}, nil
}

// GenerateJSON runs one prompt with a declared response schema and decodes
// the model output into out. Extra parts (inline media) are appended after
// the prompt text.
func (c *Client) GenerateJSON(ctx context.Context, prompt string, parts []*genai.Part, schema *genai.Schema, out any) error {
	all := []*genai.Part{{Text: prompt}}
	all = append(all, parts...)

	contents := []*genai.Content{{Role: genai.RoleUser, Parts: all}}

	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, cfg)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("generate: empty response")
	}

	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// MediaPart converts a data URI ("data:<mime>;base64,<payload>") into an
// inline blob part. Returns false when the input is not a data URI.
func MediaPart(input string) (*genai.Part, bool, error) {
	if !strings.HasPrefix(input, "data:") {
		return nil, false, nil
	}

	rest := strings.TrimPrefix(input, "data:")
	sep := strings.Index(rest, ";base64,")
	if sep < 0 {
		return nil, false, fmt.Errorf("data uri missing base64 payload")
	}

	mime := rest[:sep]
	raw, err := base64.StdEncoding.DecodeString(rest[sep+len(";base64,"):])
	if err != nil {
		return nil, false, fmt.Errorf("decode data uri: %w", err)
	}

	return &genai.Part{InlineData: &genai.Blob{MIMEType: mime, Data: raw}}, true, nil
}
