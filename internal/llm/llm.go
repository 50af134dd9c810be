package llm

import (
	"context"
	"errors"
	"fmt"
)

// Prompt is a two-message chat prompt.
type Prompt struct {
	System string
	User   string
}

// Generator produces one completion per call. Implementations must not retry.
type Generator interface {
	Generate(ctx context.Context, prompt Prompt) (string, error)
}

// Describer is implemented by generators that can name their provider and model.
type Describer interface {
	Provider() string
	Model() string
}

// ErrEmptyCompletion is returned when the provider answered without any choice.
// Blank text inside a choice is still a reply and is returned as is.
var ErrEmptyCompletion = errors.New("llm response missing choices")

// UpstreamError is a non-success answer from a provider. Message is safe to
// surface to API callers.
type UpstreamError struct {
	Provider string
	Status   int
	Message  string
}

func (e *UpstreamError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s http status %d: %s", e.Provider, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, prompt Prompt) (string, error)

// Generate calls f.
func (f GeneratorFunc) Generate(ctx context.Context, prompt Prompt) (string, error) {
	return f(ctx, prompt)
}
