// Package llm wraps the optional generative-text service used to enhance
// skill extraction and job-posting suggestions. The service is always
// optional: callers hold a nil Completer when it is not configured and must
// produce a valid heuristic result without it.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ErrUnavailable is returned when no generative-text service is configured.
// Callers treat it (and any call failure) as a signal to fall back to
// heuristics, never as a request failure.
var ErrUnavailable = errors.New("generative-text service not configured")

// IsUnavailable reports whether err means the service was never configured,
// as opposed to a configured service failing.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

// Completer is an abstraction over generative-text providers.
type Completer interface {
	// Complete generates plain text for the given system role and content.
	Complete(ctx context.Context, system, content string) (string, error)
	// CompleteJSON generates a JSON payload, with markdown code fences stripped.
	CompleteJSON(ctx context.Context, system, content string) (string, error)
	// Close releases any resources held by the client.
	Close() error
}

// defaultModel is the Gemini model used for extraction and suggestions.
const defaultModel = "gemini-2.5-flash"

// GeminiClient implements Completer for Google Gemini.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// GeminiOption configures a GeminiClient.
type GeminiOption func(*GeminiClient)

// WithModel overrides the default Gemini model.
func WithModel(model string) GeminiOption {
	return func(c *GeminiClient) { c.model = model }
}

// NewGemini creates a Gemini-backed Completer.
func NewGemini(ctx context.Context, apiKey string, opts ...GeminiOption) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	c := &GeminiClient{client: client, model: defaultModel}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Complete generates plain text content.
func (c *GeminiClient) Complete(ctx context.Context, system, content string) (string, error) {
	return c.generate(ctx, system, content, "")
}

// CompleteJSON generates JSON content and strips any markdown wrappers.
func (c *GeminiClient) CompleteJSON(ctx context.Context, system, content string) (string, error) {
	text, err := c.generate(ctx, system, content, "application/json")
	if err != nil {
		return "", err
	}
	return cleanJSONBlock(text), nil
}

// Close releases resources held by the client.
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

func (c *GeminiClient) generate(ctx context.Context, system, content, mimeType string) (string, error) {
	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(0.3)
	if system != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	}
	if mimeType != "" {
		model.ResponseMIMEType = mimeType
	}

	resp, err := model.GenerateContent(ctx, genai.Text(content))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return extractTextFromResponse(resp)
}

// extractTextFromResponse extracts text from a Gemini API response.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}
