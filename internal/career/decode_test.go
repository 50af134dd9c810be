package career

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeResumeAnalysisDefaults(t *testing.T) {
	got, err := DecodeResumeAnalysis([]byte(`{"overallScore":82.4,"keywordMatch":140,"keywords":["Go","Kubernetes"],"suggestions":[{"text":"Quantify impact"}]}`))
	require.NoError(t, err)

	assert.Equal(t, 82, got.OverallScore)
	assert.Equal(t, 100, got.KeywordMatch, "scores clamp to 100")
	assert.Equal(t, 0, got.ATSCompatibility)
	assert.Equal(t, []string{"Go", "Kubernetes"}, got.Keywords)
	assert.Equal(t, []string{"Quantify impact"}, got.Suggestions)
	assert.NotNil(t, got.MissingKeywords)
	assert.Empty(t, got.MissingKeywords)
	assert.NotNil(t, got.Errors)
}

func TestDecodeResumeAnalysisSchemaViolation(t *testing.T) {
	_, err := DecodeResumeAnalysis([]byte(`{"overallScore":"high","keywords":"Go"}`))
	var derr *DecodeError
	require.True(t, errors.As(err, &derr), "expected DecodeError, got %v", err)
	assert.Equal(t, ResumeAnalysis, derr.Type)
	assert.NotEmpty(t, derr.Fields)
}

func TestDecodeParseFailurePayload(t *testing.T) {
	_, err := DecodeSkillGap([]byte(`{"error":"Failed to parse AI response","raw":"Sorry, I cannot help"}`))
	var pf *ParseFailure
	require.True(t, errors.As(err, &pf), "expected ParseFailure, got %v", err)
	assert.Equal(t, ParseFailureMessage, pf.Message)
	assert.Equal(t, "Sorry, I cannot help", pf.Raw)
}

func TestDecodeSkillGapReshapesSkills(t *testing.T) {
	payload := `{
		"matchPercentage": 64,
		"strongSkills": ["Go", {"name": "SQL", "level": 90, "required": true}, {"name": "Docker", "level": 0}],
		"partialSkills": [{"skill": "Kubernetes", "currentLevel": 40, "gapSize": 35}, {"name": "Terraform"}],
		"missingSkills": ["Rust", {"skill": "Kafka", "requiredLevel": 70, "required": true}, {"name": "gRPC", "gap": 30}],
		"recommendations": [
			{"course": "Kubernetes Up and Running", "platform": "O'Reilly", "skills": ["Kubernetes"]},
			{"title": "Intro to Kafka", "provider": "Confluent", "url": "https://example.com/kafka", "duration": "4 weeks", "level": "Beginner"},
			"Rust Book"
		]
	}`

	got, err := DecodeSkillGap([]byte(payload))
	require.NoError(t, err)

	assert.Equal(t, 64, got.MatchPercentage)
	assert.Equal(t, []Skill{
		{Name: "Go", Level: 100, Gap: 0},
		{Name: "SQL", Level: 90, Gap: 0, Required: true},
		{Name: "Docker", Level: 100, Gap: 0},
	}, got.StrongSkills)
	assert.Equal(t, []Skill{
		{Name: "Kubernetes", Level: 40, Gap: 35},
		{Name: "Terraform", Level: 0, Gap: 0},
	}, got.PartialSkills)
	assert.Equal(t, []Skill{
		{Name: "Rust", Level: 0, Gap: 50},
		{Name: "Kafka", Level: 0, Gap: 70, Required: true},
		{Name: "gRPC", Level: 0, Gap: 30},
	}, got.MissingSkills)

	require.Len(t, got.Recommendations, 3)
	assert.Equal(t, Course{
		Title:    "Kubernetes Up and Running",
		Provider: "O'Reilly",
		URL:      "#",
		Duration: "Self-paced",
		Level:    "Intermediate",
		Skills:   []string{"Kubernetes"},
	}, got.Recommendations[0])
	assert.Equal(t, "https://example.com/kafka", got.Recommendations[1].URL)
	assert.Equal(t, "Beginner", got.Recommendations[1].Level)
	assert.Equal(t, "Rust Book", got.Recommendations[2].Title)
	assert.Equal(t, []string{}, got.Recommendations[2].Skills)
}

func TestDecodeSkillGapEmptyObject(t *testing.T) {
	got, err := DecodeSkillGap([]byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, 0, got.MatchPercentage)
	assert.NotNil(t, got.StrongSkills)
	assert.NotNil(t, got.Recommendations)
}

func TestDecodeInterviewFeedbackDefaults(t *testing.T) {
	got, err := DecodeInterviewFeedback([]byte(`{"improvements":[]}`))
	require.NoError(t, err)
	assert.Equal(t, 75, got.OverallScore)
	assert.Equal(t, []string{"Good pacing", "Clear articulation"}, got.Strengths)
	assert.Equal(t, []string{}, got.Improvements, "present but empty lists stay empty")
	assert.Equal(t, []string{"Provide more specific examples"}, got.Alternatives)
	assert.Nil(t, got.Questions)

	got, err = DecodeInterviewFeedback([]byte(`{"overallScore":91,"strengths":["Structured answer"],"questions":["What is a goroutine?"]}`))
	require.NoError(t, err)
	assert.Equal(t, 91, got.OverallScore)
	assert.Equal(t, []string{"Structured answer"}, got.Strengths)
	assert.Equal(t, []string{"What is a goroutine?"}, got.Questions)
}

func TestDecodeInterviewQuestionsShapes(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    InterviewQuestionsResult
	}{
		{
			name:    "array of objects",
			payload: `[{"id":1,"text":"Describe a conflict","category":"Behavioral","timeAllocation":120},{"id":"2","question":"Explain channels"}]`,
			want: InterviewQuestionsResult{
				{ID: 1, Text: "Describe a conflict", Category: "Behavioral", TimeAllocation: 120},
				{ID: 2, Text: "Explain channels", Category: "Technical", TimeAllocation: 180},
			},
		},
		{
			name:    "wrapped strings",
			payload: `{"questions":["What is a mutex?","How does GC work?"]}`,
			want: InterviewQuestionsResult{
				{ID: 1, Text: "What is a mutex?", Category: "Technical", TimeAllocation: 180},
				{ID: 2, Text: "How does GC work?", Category: "Technical", TimeAllocation: 180},
			},
		},
		{
			name:    "blank entries dropped",
			payload: `["", {"id": 3}]`,
			want:    InterviewQuestionsResult{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeInterviewQuestions([]byte(tt.payload))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeInterviewEvaluation(t *testing.T) {
	got, err := DecodeInterviewEvaluation([]byte(`{
		"delivery": {"score": 70, "feedback": "Steady pace", "strengths": ["Calm"], "improvements": ["Fewer fillers"]},
		"content": {"score": 85, "feedback": "Solid depth"}
	}`))
	require.NoError(t, err)

	assert.Equal(t, Assessment{Score: 70, Feedback: "Steady pace", Strengths: []string{"Calm"}, Improvements: []string{"Fewer fillers"}}, got.Delivery)
	assert.Equal(t, 85, got.Content.Score)
	assert.Equal(t, []string{}, got.Content.Strengths)
	assert.Equal(t, Assessment{Strengths: []string{}, Improvements: []string{}}, got.Confidence)
}

func TestDecodeCoverLetter(t *testing.T) {
	got, err := DecodeCoverLetter([]byte(`{"content":"Dear Hiring Manager,\n\nI am writing..."}`))
	require.NoError(t, err)
	assert.Equal(t, "Dear Hiring Manager,\n\nI am writing...", got.Content)

	_, err = DecodeCoverLetter([]byte(`{}`))
	var derr *DecodeError
	assert.True(t, errors.As(err, &derr))
}

func TestDecodeResultDispatches(t *testing.T) {
	v, err := DecodeResult(InterviewQuestions, []byte(`["Why Go?"]`))
	require.NoError(t, err)
	qs, ok := v.(InterviewQuestionsResult)
	require.True(t, ok)
	assert.Len(t, qs, 1)

	_, err = DecodeResult(RequestType("unknown"), []byte(`{}`))
	assert.Error(t, err)

	_, err = DecodeResult(ResumeAnalysis, []byte("   "))
	var derr *DecodeError
	assert.True(t, errors.As(err, &derr))
}
