package dispatch

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"

	"career-backend/internal/career"
	"career-backend/internal/llm"
)

//go:embed prompts.yaml
var defaultPromptsYAML []byte

type promptEntry struct {
	System string `yaml:"system"`
	User   string `yaml:"user"`
}

type promptTemplate struct {
	system string
	user   *template.Template
}

// PromptSet holds one system prompt and one user template per request type.
type PromptSet struct {
	byType map[career.RequestType]promptTemplate
}

var templateFuncs = template.FuncMap{
	"json": func(v any) (string, error) {
		raw, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(raw), nil
	},
}

// DefaultPrompts parses the embedded prompt catalogue.
func DefaultPrompts() (*PromptSet, error) {
	return LoadPrompts(defaultPromptsYAML)
}

// LoadPrompts parses a YAML prompt catalogue. Every request type must be present.
func LoadPrompts(data []byte) (*PromptSet, error) {
	var entries map[string]promptEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse prompts: %w", err)
	}
	set := &PromptSet{byType: make(map[career.RequestType]promptTemplate, len(entries))}
	for _, t := range career.RequestTypes() {
		entry, ok := entries[string(t)]
		if !ok {
			return nil, fmt.Errorf("prompts: missing %s", t)
		}
		if strings.TrimSpace(entry.System) == "" || strings.TrimSpace(entry.User) == "" {
			return nil, fmt.Errorf("prompts: %s needs system and user text", t)
		}
		tmpl, err := template.New(string(t)).Funcs(templateFuncs).Option("missingkey=error").Parse(entry.User)
		if err != nil {
			return nil, fmt.Errorf("prompts: parse %s user template: %w", t, err)
		}
		set.byType[t] = promptTemplate{system: entry.System, user: tmpl}
	}
	for name := range entries {
		if _, ok := career.ParseRequestType(name); !ok {
			return nil, fmt.Errorf("prompts: unknown request type %q", name)
		}
	}
	return set, nil
}

// Render builds the two-message prompt for t from a decoded content record.
func (s *PromptSet) Render(t career.RequestType, content any) (llm.Prompt, error) {
	tmpl, ok := s.byType[t]
	if !ok {
		return llm.Prompt{}, fmt.Errorf("no prompt for %q", t)
	}
	var sb strings.Builder
	if err := tmpl.user.Execute(&sb, content); err != nil {
		return llm.Prompt{}, fmt.Errorf("render %s prompt: %w", t, err)
	}
	return llm.Prompt{System: tmpl.system, User: sb.String()}, nil
}

// System returns the system prompt for t.
func (s *PromptSet) System(t career.RequestType) string {
	return s.byType[t].system
}
