package career

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ResumeAnalysisContent is the input for an ATS-style resume scan.
type ResumeAnalysisContent struct {
	Resume         string `json:"resume" validate:"required"`
	JobDescription string `json:"jobDescription,omitempty"`
}

// CoverLetterContent is the input for cover letter generation.
type CoverLetterContent struct {
	FullName       string `json:"fullName" validate:"required"`
	Email          string `json:"email" validate:"omitempty,email"`
	Phone          string `json:"phone"`
	Address        string `json:"address,omitempty"`
	Company        string `json:"company" validate:"required"`
	Position       string `json:"position" validate:"required"`
	HiringManager  string `json:"hiringManager,omitempty"`
	JobDescription string `json:"jobDescription" validate:"required"`
	Experience     string `json:"experience,omitempty"`
	Tone           string `json:"tone,omitempty" validate:"omitempty,oneof=professional enthusiastic conversational"`
	Length         string `json:"length,omitempty" validate:"omitempty,oneof=short medium long"`
}

// SkillGapContent is the input for a skill gap analysis.
type SkillGapContent struct {
	Resume         string `json:"resume" validate:"required"`
	JobTitle       string `json:"jobTitle" validate:"required"`
	JobDescription string `json:"jobDescription" validate:"required"`
}

// InterviewFeedbackContent is a single answered question. An empty response
// is allowed; the mock interview uses it to ask for question ideas.
type InterviewFeedbackContent struct {
	Question     string `json:"question" validate:"required"`
	Response     string `json:"response"`
	PositionType string `json:"positionType,omitempty"`
	Skills       string `json:"skills,omitempty"`
}

// InterviewQuestionsContent asks for a question set for a role and level.
type InterviewQuestionsContent struct {
	Role  string `json:"role" validate:"required"`
	Level string `json:"level" validate:"required"`
}

// InterviewEvaluationContent carries a finished interview for scoring.
type InterviewEvaluationContent struct {
	Role      string     `json:"role" validate:"required"`
	Level     string     `json:"level" validate:"required"`
	Questions []Question `json:"questions" validate:"dive"`
}

// FieldError is one invalid field in a request content or reply payload.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ContentError reports request content that does not match its declared type.
type ContentError struct {
	Type   RequestType
	Fields []FieldError
}

func (e *ContentError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("invalid %s content", e.Type)
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return fmt.Sprintf("invalid %s content: %s", e.Type, strings.Join(parts, "; "))
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func contentValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// NewContent returns a zero content record for t.
func NewContent(t RequestType) (any, bool) {
	switch t {
	case ResumeAnalysis:
		return &ResumeAnalysisContent{}, true
	case CoverLetter:
		return &CoverLetterContent{}, true
	case SkillGap:
		return &SkillGapContent{}, true
	case InterviewFeedback:
		return &InterviewFeedbackContent{}, true
	case InterviewQuestions:
		return &InterviewQuestionsContent{}, true
	case InterviewEvaluation:
		return &InterviewEvaluationContent{}, true
	default:
		return nil, false
	}
}

// DecodeContent decodes raw into the content record for t and validates it.
// The returned value is a pointer to one of the *Content records.
func DecodeContent(t RequestType, raw json.RawMessage) (any, error) {
	target, ok := NewContent(t)
	if !ok {
		return nil, fmt.Errorf("unknown request type %q", t)
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, &ContentError{Type: t, Fields: []FieldError{{Field: "content", Message: "is required"}}}
	}
	if err := json.Unmarshal(trimmed, target); err != nil {
		return nil, &ContentError{Type: t, Fields: []FieldError{{Field: "content", Message: err.Error()}}}
	}
	if err := ValidateContent(t, target); err != nil {
		return nil, err
	}
	return target, nil
}

// ValidateContent checks a content record against its declared type.
func ValidateContent(t RequestType, content any) error {
	err := contentValidator().Struct(content)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ContentError{Type: t, Fields: []FieldError{{Field: "content", Message: err.Error()}}}
	}
	out := &ContentError{Type: t}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   fieldPath(fe.Namespace()),
			Message: describeTag(fe),
		})
	}
	return out
}

func fieldPath(namespace string) string {
	if idx := strings.Index(namespace, "."); idx >= 0 {
		return namespace[idx+1:]
	}
	return namespace
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "failed " + fe.Tag() + " check"
	}
}
