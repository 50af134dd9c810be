// Package career defines the request and result records exchanged with the
// career assistant dispatcher, along with their validation and decoding rules.
package career

import (
	"encoding/json"
	"strings"
)

// RequestType selects the prompt template and the expected result shape.
type RequestType string

const (
	ResumeAnalysis      RequestType = "resume_analysis"
	CoverLetter         RequestType = "cover_letter"
	SkillGap            RequestType = "skill_gap"
	InterviewFeedback   RequestType = "interview_feedback"
	InterviewQuestions  RequestType = "interview_questions"
	InterviewEvaluation RequestType = "interview_evaluation"
)

var requestTypes = []RequestType{
	ResumeAnalysis,
	CoverLetter,
	SkillGap,
	InterviewFeedback,
	InterviewQuestions,
	InterviewEvaluation,
}

// RequestTypes lists every supported request type in a stable order.
func RequestTypes() []RequestType {
	return append([]RequestType(nil), requestTypes...)
}

// ParseRequestType matches raw against the supported tags exactly.
func ParseRequestType(raw string) (RequestType, bool) {
	for _, t := range requestTypes {
		if string(t) == raw {
			return t, true
		}
	}
	return "", false
}

// ExpectsJSON reports whether replies for this type are parsed as JSON.
// Cover letters are returned as opaque text.
func (t RequestType) ExpectsJSON() bool {
	return t != CoverLetter
}

func (t RequestType) String() string {
	return string(t)
}

// Envelope is the dispatcher request body.
type Envelope struct {
	Type    RequestType     `json:"type"`
	Content json.RawMessage `json:"content"`
}

// NewEnvelope marshals content into an envelope for the given type.
func NewEnvelope(t RequestType, content any) (Envelope, error) {
	raw, err := json.Marshal(content)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Type: t, Content: raw}, nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
