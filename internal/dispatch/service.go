// Package dispatch turns a typed career request into one model call and
// shapes the reply for the caller.
package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"career-backend/internal/career"
	"career-backend/internal/llm"
	"career-backend/internal/shared/metrics"
	"career-backend/internal/shared/telemetry"
)

// ErrUnknownType is returned for a type tag outside the supported set.
var ErrUnknownType = errors.New("Invalid request type")

// NotConfiguredError means no model credential is available.
type NotConfiguredError struct {
	Provider string
}

func (e *NotConfiguredError) Error() string {
	switch e.Provider {
	case "gemini":
		return "Gemini API key not configured"
	default:
		return "OpenAI API key not configured"
	}
}

// Outcome labels used for metrics and logs.
const (
	OutcomeOK            = "ok"
	OutcomeParseFailure  = "parse_failure"
	OutcomeUpstream      = "upstream_error"
	OutcomeInvalid       = "invalid_content"
	OutcomeUnknownType   = "unknown_type"
	OutcomeNotConfigured = "not_configured"
)

// Service renders prompts, calls the generator once and shapes the reply.
type Service struct {
	generator llm.Generator
	prompts   *PromptSet
	provider  string
	model     string
}

// NewService wires a generator and prompt set. A nil generator leaves the
// service unconfigured and every dispatch fails with NotConfiguredError.
func NewService(generator llm.Generator, prompts *PromptSet, provider string) *Service {
	s := &Service{generator: generator, prompts: prompts, provider: provider}
	if d, ok := generator.(llm.Describer); ok {
		s.provider = d.Provider()
		s.model = d.Model()
	}
	return s
}

// Configured reports whether a generator is available.
func (s *Service) Configured() bool {
	return s != nil && s.generator != nil
}

// Dispatch validates the envelope, makes exactly one model call and returns
// the JSON body for a successful reply. For cover letters the body is
// {"content": text}. Unparseable replies become a parse failure body, which
// is still a success from the caller's point of view.
func (s *Service) Dispatch(ctx context.Context, env career.Envelope) (json.RawMessage, error) {
	if !s.Configured() {
		metrics.IncDispatch(string(env.Type), OutcomeNotConfigured)
		return nil, &NotConfiguredError{Provider: s.provider}
	}
	t, ok := career.ParseRequestType(string(env.Type))
	if !ok {
		metrics.IncDispatch("unknown", OutcomeUnknownType)
		return nil, ErrUnknownType
	}
	content, err := career.DecodeContent(t, env.Content)
	if err != nil {
		metrics.IncDispatch(string(t), OutcomeInvalid)
		return nil, err
	}
	prompt, err := s.prompts.Render(t, content)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	text, err := s.generator.Generate(ctx, prompt)
	elapsed := metrics.Since(start)
	metrics.ObserveUpstreamDurationMs(elapsed)
	fields := map[string]any{
		"request_type": string(t),
		"provider":     s.provider,
		"model":        s.model,
		"duration_ms":  int64(elapsed),
	}
	if err != nil {
		metrics.IncDispatch(string(t), OutcomeUpstream)
		fields["error"] = err.Error()
		telemetry.Error("dispatch.upstream_failed", fields)
		return nil, err
	}

	if !t.ExpectsJSON() {
		metrics.IncDispatch(string(t), OutcomeOK)
		telemetry.Info("dispatch.completed", fields)
		return json.Marshal(career.CoverLetterResult{Content: text})
	}

	payload, err := ExtractJSON(text)
	if err != nil {
		metrics.IncDispatch(string(t), OutcomeParseFailure)
		fields["raw_len"] = len(text)
		telemetry.Warn("dispatch.parse_failed", fields)
		return json.Marshal(career.NewParseFailure(text))
	}
	metrics.IncDispatch(string(t), OutcomeOK)
	telemetry.Info("dispatch.completed", fields)
	return payload, nil
}

// UpstreamMessage returns the message to surface for a generator failure.
func UpstreamMessage(err error) string {
	var upstream *llm.UpstreamError
	if errors.As(err, &upstream) && strings.TrimSpace(upstream.Message) != "" {
		return upstream.Message
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "request cancelled"
	}
	if err == nil {
		return ""
	}
	return fmt.Sprintf("AI request failed: %v", err)
}
