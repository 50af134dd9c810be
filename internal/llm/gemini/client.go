package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"career-backend/internal/llm"
	"career-backend/internal/shared/telemetry"
)

const defaultModel = "gemini-2.5-flash"

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client implements llm.Generator on the Gemini API.
type Client struct {
	models      contentGenerator
	model       string
	temperature float32
}

// NewClient builds a Gemini client for the given API key.
func NewClient(ctx context.Context, apiKey, model string, temperature float32) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return newClient(gc.Models, model, temperature), nil
}

func newClient(models contentGenerator, model string, temperature float32) *Client {
	if strings.TrimSpace(model) == "" {
		model = defaultModel
	}
	return &Client{models: models, model: model, temperature: temperature}
}

// Provider names the upstream service.
func (c *Client) Provider() string { return "gemini" }

// Model returns the fixed model identifier.
func (c *Client) Model() string { return c.model }

// Generate sends the user message with the system prompt as instruction.
func (c *Client) Generate(ctx context.Context, prompt llm.Prompt) (string, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(c.temperature),
	}
	if strings.TrimSpace(prompt.System) != "" {
		cfg.SystemInstruction = genai.NewContentFromText(prompt.System, genai.RoleUser)
	}

	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(prompt.User), cfg)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("gemini request: %w", err)
		}
		return "", &llm.UpstreamError{Provider: c.Provider(), Message: err.Error()}
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", llm.ErrEmptyCompletion
	}

	fields := map[string]any{"provider": c.Provider(), "model": c.model}
	if resp.UsageMetadata != nil {
		fields["prompt_tokens"] = resp.UsageMetadata.PromptTokenCount
		fields["completion_tokens"] = resp.UsageMetadata.CandidatesTokenCount
		fields["total_tokens"] = resp.UsageMetadata.TotalTokenCount
	}
	telemetry.Info("llm.response", fields)

	return resp.Text(), nil
}

var _ llm.Generator = (*Client)(nil)
