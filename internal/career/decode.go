package career

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseFailureMessage is the error text used when a reply is not JSON.
const ParseFailureMessage = "Failed to parse AI response"

// ParseFailure is the payload returned when the generator reply for a
// JSON-expecting type could not be parsed. Raw holds the reply verbatim.
type ParseFailure struct {
	Message string `json:"error"`
	Raw     string `json:"raw"`
}

// NewParseFailure wraps an unparseable reply.
func NewParseFailure(raw string) *ParseFailure {
	return &ParseFailure{Message: ParseFailureMessage, Raw: raw}
}

func (e *ParseFailure) Error() string {
	return "ai response: " + e.Message
}

// DecodeError reports a reply payload that does not fit the result shape.
type DecodeError struct {
	Type   RequestType
	Fields []FieldError
	Cause  error
}

func (e *DecodeError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	msg := fmt.Sprintf("decode %s result", e.Type)
	if len(parts) > 0 {
		msg += ": " + strings.Join(parts, "; ")
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// DecodeResult decodes payload into the typed result for t.
func DecodeResult(t RequestType, payload []byte) (any, error) {
	switch t {
	case ResumeAnalysis:
		return DecodeResumeAnalysis(payload)
	case CoverLetter:
		return DecodeCoverLetter(payload)
	case SkillGap:
		return DecodeSkillGap(payload)
	case InterviewFeedback:
		return DecodeInterviewFeedback(payload)
	case InterviewQuestions:
		return DecodeInterviewQuestions(payload)
	case InterviewEvaluation:
		return DecodeInterviewEvaluation(payload)
	default:
		return nil, fmt.Errorf("unknown request type %q", t)
	}
}

// prepare rejects empty payloads, surfaces parse failures, and applies the schema.
func prepare(t RequestType, payload []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return nil, &DecodeError{Type: t, Fields: []FieldError{{Field: "(root)", Message: "empty payload"}}}
	}
	if pf, ok := asParseFailure(trimmed); ok {
		return nil, pf
	}
	if err := validateSchema(t, trimmed); err != nil {
		return nil, err
	}
	return trimmed, nil
}

func asParseFailure(payload []byte) (*ParseFailure, bool) {
	if len(payload) == 0 || payload[0] != '{' {
		return nil, false
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(payload, &probe); err != nil {
		return nil, false
	}
	_, hasErr := probe["error"]
	_, hasRaw := probe["raw"]
	if !hasErr || !hasRaw {
		return nil, false
	}
	var pf ParseFailure
	if err := json.Unmarshal(payload, &pf); err != nil {
		return nil, false
	}
	return &pf, true
}

func unmarshalWire(t RequestType, payload []byte, v any) error {
	if err := json.Unmarshal(payload, v); err != nil {
		return &DecodeError{Type: t, Fields: []FieldError{{Field: "(root)", Message: "unexpected shape"}}, Cause: err}
	}
	return nil
}

type wireResumeAnalysis struct {
	OverallScore     *float64          `json:"overallScore"`
	ATSCompatibility *float64          `json:"atsCompatibility"`
	KeywordMatch     *float64          `json:"keywordMatch"`
	FormattingScore  *float64          `json:"formattingScore"`
	ContentScore     *float64          `json:"contentScore"`
	Keywords         []json.RawMessage `json:"keywords"`
	MissingKeywords  []json.RawMessage `json:"missingKeywords"`
	Suggestions      []json.RawMessage `json:"suggestions"`
	Errors           []json.RawMessage `json:"errors"`
	ImprovedContent  *string           `json:"improvedContent"`
}

// DecodeResumeAnalysis decodes a resume scan. Missing scores are 0 and
// missing lists are empty.
func DecodeResumeAnalysis(payload []byte) (ResumeAnalysisResult, error) {
	data, err := prepare(ResumeAnalysis, payload)
	if err != nil {
		return ResumeAnalysisResult{}, err
	}
	var w wireResumeAnalysis
	if err := unmarshalWire(ResumeAnalysis, data, &w); err != nil {
		return ResumeAnalysisResult{}, err
	}
	out := ResumeAnalysisResult{
		OverallScore:     score(w.OverallScore, 0),
		ATSCompatibility: score(w.ATSCompatibility, 0),
		KeywordMatch:     score(w.KeywordMatch, 0),
		FormattingScore:  score(w.FormattingScore, 0),
		ContentScore:     score(w.ContentScore, 0),
		Keywords:         textList(w.Keywords),
		MissingKeywords:  textList(w.MissingKeywords),
		Suggestions:      textList(w.Suggestions),
		Errors:           textList(w.Errors),
	}
	if w.ImprovedContent != nil {
		out.ImprovedContent = *w.ImprovedContent
	}
	return out, nil
}

// DecodeCoverLetter decodes the {content} wrapper of a generated letter.
func DecodeCoverLetter(payload []byte) (CoverLetterResult, error) {
	data, err := prepare(CoverLetter, payload)
	if err != nil {
		return CoverLetterResult{}, err
	}
	var out CoverLetterResult
	if err := unmarshalWire(CoverLetter, data, &out); err != nil {
		return CoverLetterResult{}, err
	}
	return out, nil
}

type wireSkillGap struct {
	MatchPercentage *float64          `json:"matchPercentage"`
	StrongSkills    []json.RawMessage `json:"strongSkills"`
	PartialSkills   []json.RawMessage `json:"partialSkills"`
	MissingSkills   []json.RawMessage `json:"missingSkills"`
	Recommendations []json.RawMessage `json:"recommendations"`
}

type wireSkill struct {
	Name          string   `json:"name"`
	Skill         string   `json:"skill"`
	Level         *float64 `json:"level"`
	CurrentLevel  *float64 `json:"currentLevel"`
	RequiredLevel *float64 `json:"requiredLevel"`
	Gap           *float64 `json:"gap"`
	GapSize       *float64 `json:"gapSize"`
	Required      bool     `json:"required"`
}

type wireCourse struct {
	Title    string            `json:"title"`
	Course   string            `json:"course"`
	Name     string            `json:"name"`
	Provider string            `json:"provider"`
	Platform string            `json:"platform"`
	URL      string            `json:"url"`
	Duration string            `json:"duration"`
	Level    string            `json:"level"`
	Skills   []json.RawMessage `json:"skills"`
}

type skillKind int

const (
	strongSkill skillKind = iota
	partialSkill
	missingSkill
)

// DecodeSkillGap decodes a skill gap analysis. Skill entries may be plain
// names or objects:
//   - strong skills default to level 100 and gap 0;
//   - partial skills read currentLevel and gapSize, defaulting to 0;
//   - missing skills have level 0 and a gap of requiredLevel, else gap, else 50.
//
// Courses default to url "#", duration "Self-paced" and level "Intermediate".
func DecodeSkillGap(payload []byte) (SkillGapResult, error) {
	data, err := prepare(SkillGap, payload)
	if err != nil {
		return SkillGapResult{}, err
	}
	var w wireSkillGap
	if err := unmarshalWire(SkillGap, data, &w); err != nil {
		return SkillGapResult{}, err
	}
	return SkillGapResult{
		MatchPercentage: score(w.MatchPercentage, 0),
		StrongSkills:    skillList(w.StrongSkills, strongSkill),
		PartialSkills:   skillList(w.PartialSkills, partialSkill),
		MissingSkills:   skillList(w.MissingSkills, missingSkill),
		Recommendations: courseList(w.Recommendations),
	}, nil
}

func skillList(items []json.RawMessage, kind skillKind) []Skill {
	out := make([]Skill, 0, len(items))
	for _, item := range items {
		var w wireSkill
		if name, ok := asString(item); ok {
			w.Name = name
		} else if err := json.Unmarshal(item, &w); err != nil {
			continue
		}
		s := Skill{Required: w.Required}
		switch kind {
		case strongSkill:
			s.Name = firstNonBlank(w.Name, w.Skill)
			s.Level = score(w.Level, 100)
		case partialSkill:
			s.Name = firstNonBlank(w.Skill, w.Name)
			s.Level = score(firstSet(w.CurrentLevel, w.Level), 0)
			s.Gap = score(firstSet(w.GapSize, w.Gap), 0)
		case missingSkill:
			s.Name = firstNonBlank(w.Skill, w.Name)
			s.Gap = score(firstSet(w.RequiredLevel, w.Gap), 50)
		}
		if isBlank(s.Name) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func courseList(items []json.RawMessage) []Course {
	out := make([]Course, 0, len(items))
	for _, item := range items {
		var w wireCourse
		if title, ok := asString(item); ok {
			w.Title = title
		} else if err := json.Unmarshal(item, &w); err != nil {
			continue
		}
		c := Course{
			Title:    firstNonBlank(w.Title, w.Course, w.Name),
			Provider: firstNonBlank(w.Provider, w.Platform),
			URL:      firstNonBlank(w.URL, "#"),
			Duration: firstNonBlank(w.Duration, "Self-paced"),
			Level:    firstNonBlank(w.Level, "Intermediate"),
			Skills:   textList(w.Skills),
		}
		if isBlank(c.Title) {
			continue
		}
		out = append(out, c)
	}
	return out
}

type wireInterviewFeedback struct {
	OverallScore *float64          `json:"overallScore"`
	Strengths    []json.RawMessage `json:"strengths"`
	Improvements []json.RawMessage `json:"improvements"`
	Alternatives []json.RawMessage `json:"alternatives"`
	Questions    []json.RawMessage `json:"questions"`
}

var (
	defaultFeedbackScore        = 75
	defaultFeedbackStrengths    = []string{"Good pacing", "Clear articulation"}
	defaultFeedbackImprovements = []string{"Work on eye contact"}
	defaultFeedbackAlternatives = []string{"Provide more specific examples"}
)

// DecodeInterviewFeedback decodes feedback on one answer. Absent fields take
// the coaching defaults shown to candidates when the generator omits them.
func DecodeInterviewFeedback(payload []byte) (InterviewFeedbackResult, error) {
	data, err := prepare(InterviewFeedback, payload)
	if err != nil {
		return InterviewFeedbackResult{}, err
	}
	var w wireInterviewFeedback
	if err := unmarshalWire(InterviewFeedback, data, &w); err != nil {
		return InterviewFeedbackResult{}, err
	}
	out := InterviewFeedbackResult{
		OverallScore: score(w.OverallScore, defaultFeedbackScore),
		Strengths:    textListOr(w.Strengths, defaultFeedbackStrengths),
		Improvements: textListOr(w.Improvements, defaultFeedbackImprovements),
		Alternatives: textListOr(w.Alternatives, defaultFeedbackAlternatives),
	}
	if w.Questions != nil {
		out.Questions = textList(w.Questions)
	}
	return out, nil
}

type wireQuestion struct {
	ID             json.RawMessage `json:"id"`
	Text           string          `json:"text"`
	Question       string          `json:"question"`
	Category       string          `json:"category"`
	TimeAllocation *float64        `json:"timeAllocation"`
}

const (
	defaultQuestionCategory = "Technical"
	defaultQuestionSeconds  = 180
)

// DecodeInterviewQuestions accepts a bare array or an object with a
// questions array. Plain strings become questions numbered from 1.
func DecodeInterviewQuestions(payload []byte) (InterviewQuestionsResult, error) {
	data, err := prepare(InterviewQuestions, payload)
	if err != nil {
		return nil, err
	}
	var items []json.RawMessage
	if data[0] == '[' {
		if err := unmarshalWire(InterviewQuestions, data, &items); err != nil {
			return nil, err
		}
	} else {
		var wrapper struct {
			Questions []json.RawMessage `json:"questions"`
		}
		if err := unmarshalWire(InterviewQuestions, data, &wrapper); err != nil {
			return nil, err
		}
		items = wrapper.Questions
	}

	out := make(InterviewQuestionsResult, 0, len(items))
	for i, item := range items {
		q := Question{ID: i + 1, Category: defaultQuestionCategory, TimeAllocation: defaultQuestionSeconds}
		if text, ok := asString(item); ok {
			q.Text = text
		} else {
			var w wireQuestion
			if err := json.Unmarshal(item, &w); err != nil {
				continue
			}
			q.Text = firstNonBlank(w.Text, w.Question)
			if id, ok := parseID(w.ID); ok {
				q.ID = id
			}
			q.Category = firstNonBlank(w.Category, defaultQuestionCategory)
			if w.TimeAllocation != nil && *w.TimeAllocation > 0 {
				q.TimeAllocation = int(math.Round(*w.TimeAllocation))
			}
		}
		if isBlank(q.Text) {
			continue
		}
		out = append(out, q)
	}
	return out, nil
}

type wireAssessment struct {
	Score        *float64          `json:"score"`
	Feedback     *string           `json:"feedback"`
	Strengths    []json.RawMessage `json:"strengths"`
	Improvements []json.RawMessage `json:"improvements"`
}

type wireInterviewEvaluation struct {
	Delivery   *wireAssessment `json:"delivery"`
	Content    *wireAssessment `json:"content"`
	Confidence *wireAssessment `json:"confidence"`
}

// DecodeInterviewEvaluation decodes the delivery, content and confidence
// assessments. A missing assessment is scored 0 with empty lists.
func DecodeInterviewEvaluation(payload []byte) (InterviewEvaluationResult, error) {
	data, err := prepare(InterviewEvaluation, payload)
	if err != nil {
		return InterviewEvaluationResult{}, err
	}
	var w wireInterviewEvaluation
	if err := unmarshalWire(InterviewEvaluation, data, &w); err != nil {
		return InterviewEvaluationResult{}, err
	}
	return InterviewEvaluationResult{
		Delivery:   assessment(w.Delivery),
		Content:    assessment(w.Content),
		Confidence: assessment(w.Confidence),
	}, nil
}

func assessment(w *wireAssessment) Assessment {
	if w == nil {
		return Assessment{Strengths: []string{}, Improvements: []string{}}
	}
	out := Assessment{
		Score:        score(w.Score, 0),
		Strengths:    textList(w.Strengths),
		Improvements: textList(w.Improvements),
	}
	if w.Feedback != nil {
		out.Feedback = *w.Feedback
	}
	return out
}

// score treats nil and zero as absent, then rounds and clamps to 0..100.
func score(v *float64, def int) int {
	if v == nil || *v == 0 || math.IsNaN(*v) {
		return def
	}
	n := int(math.Round(*v))
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

func firstSet(values ...*float64) *float64 {
	for _, v := range values {
		if v != nil && *v != 0 {
			return v
		}
	}
	return nil
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if !isBlank(v) {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func asString(raw json.RawMessage) (string, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return "", false
	}
	return s, true
}

var textKeys = []string{"text", "title", "name", "skill", "keyword", "suggestion", "description"}

// textList flattens string or object items into strings. Objects contribute
// their first descriptive field, or their compact JSON.
func textList(items []json.RawMessage) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := asString(item); ok {
			if !isBlank(s) {
				out = append(out, s)
			}
			continue
		}
		var obj map[string]any
		if err := json.Unmarshal(item, &obj); err != nil {
			continue
		}
		text := ""
		for _, key := range textKeys {
			if v, ok := obj[key].(string); ok && !isBlank(v) {
				text = v
				break
			}
		}
		if text == "" {
			var buf bytes.Buffer
			if err := json.Compact(&buf, item); err != nil {
				continue
			}
			text = buf.String()
		}
		out = append(out, text)
	}
	return out
}

// textListOr returns def when the field was absent or null.
func textListOr(items []json.RawMessage, def []string) []string {
	if items == nil {
		return append([]string(nil), def...)
	}
	return textList(items)
}

func parseID(raw json.RawMessage) (int, bool) {
	trimmed := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	if trimmed == "" || trimmed == "null" {
		return 0, false
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || f <= 0 {
		return 0, false
	}
	return int(f), true
}
