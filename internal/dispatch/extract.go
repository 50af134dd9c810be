package dispatch

import (
	"bytes"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

var (
	jsonFence  = regexp.MustCompile("```json\\n([\\s\\S]*)\\n```")
	plainFence = regexp.MustCompile("```\\n([\\s\\S]*)\\n```")

	errNoJSON = errors.New("no JSON document in model reply")
)

// ExtractJSON pulls the JSON document out of a model reply. Candidates are
// tried in order: a json fenced block, a bare fenced block, the whole reply,
// then the outermost object or array span. The first candidate that parses wins.
func ExtractJSON(text string) (json.RawMessage, error) {
	var candidates []string
	if m := jsonFence.FindStringSubmatch(text); m != nil {
		candidates = append(candidates, m[1])
	}
	if m := plainFence.FindStringSubmatch(text); m != nil {
		candidates = append(candidates, m[1])
	}
	candidates = append(candidates, text)
	if span, ok := outermostSpan(text); ok {
		candidates = append(candidates, span)
	}

	for _, candidate := range candidates {
		trimmed := strings.TrimSpace(candidate)
		if trimmed == "" || !json.Valid([]byte(trimmed)) {
			continue
		}
		var buf bytes.Buffer
		if err := json.Compact(&buf, []byte(trimmed)); err != nil {
			continue
		}
		return buf.Bytes(), nil
	}
	return nil, errNoJSON
}

func outermostSpan(text string) (string, bool) {
	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return "", false
	}
	closer := byte('}')
	if text[start] == '[' {
		closer = ']'
	}
	end := strings.LastIndexByte(text, closer)
	if end <= start {
		return "", false
	}
	return text[start : end+1], true
}
