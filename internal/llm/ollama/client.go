package ollama

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/JexSrs/go-ollama"

	"career-backend/internal/llm"
	"career-backend/internal/shared/telemetry"
)

const (
	defaultHost  = "http://127.0.0.1:11434"
	defaultModel = "gemma3:latest"
)

// Client implements llm.Generator against a local Ollama server. Sampling
// temperature comes from the model's Modelfile.
type Client struct {
	client *ollama.Ollama
	host   string
	model  string
}

// NewClient parses host and prepares a generate client.
func NewClient(host, model string) (*Client, error) {
	if strings.TrimSpace(host) == "" {
		host = defaultHost
	}
	if strings.TrimSpace(model) == "" {
		model = defaultModel
	}
	u, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama host %q: %w", host, err)
	}
	return &Client{client: ollama.New(*u), host: host, model: model}, nil
}

// Provider names the upstream service.
func (c *Client) Provider() string { return "ollama" }

// Model returns the fixed model identifier.
func (c *Client) Model() string { return c.model }

type result struct {
	text string
	err  error
}

// Generate runs a single non-streaming generate call. The library call is not
// context aware, so cancellation abandons the call instead of aborting it.
func (c *Client) Generate(ctx context.Context, prompt llm.Prompt) (string, error) {
	done := make(chan result, 1)
	go func() {
		res, err := c.client.Generate(
			c.client.Generate.WithModel(c.model),
			c.client.Generate.WithSystem(prompt.System),
			c.client.Generate.WithPrompt(prompt.User),
		)
		if err != nil {
			done <- result{err: &llm.UpstreamError{Provider: c.Provider(), Message: err.Error()}}
			return
		}
		if !res.Done {
			done <- result{err: fmt.Errorf("ollama generate did not complete")}
			return
		}
		done <- result{text: res.Response}
	}()

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("ollama request: %w", ctx.Err())
	case r := <-done:
		if r.err != nil {
			return "", r.err
		}
		telemetry.Info("llm.response", map[string]any{"provider": c.Provider(), "model": c.model, "host": c.host})
		return r.text, nil
	}
}

var _ llm.Generator = (*Client)(nil)
