package dispatch

import (
	"strings"
	"testing"

	"career-backend/internal/career"
)

func TestDefaultPromptsCoverEveryType(t *testing.T) {
	set, err := DefaultPrompts()
	if err != nil {
		t.Fatalf("DefaultPrompts: %v", err)
	}
	for _, rt := range career.RequestTypes() {
		if strings.TrimSpace(set.System(rt)) == "" {
			t.Fatalf("missing system prompt for %s", rt)
		}
	}
}

func TestRenderAppliesDefaults(t *testing.T) {
	set, err := DefaultPrompts()
	if err != nil {
		t.Fatalf("DefaultPrompts: %v", err)
	}

	p, err := set.Render(career.ResumeAnalysis, &career.ResumeAnalysisContent{Resume: "Go engineer"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if p.User != "Resume: Go engineer\n\nJob Description: General industry position" {
		t.Fatalf("unexpected user prompt %q", p.User)
	}
	if !strings.Contains(p.System, "overallScore, atsCompatibility") {
		t.Fatalf("system prompt missing key list")
	}

	p, err = set.Render(career.CoverLetter, &career.CoverLetterContent{FullName: "Ada", Company: "Acme", Position: "Dev", JobDescription: "Build"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	for _, want := range []string{"Hiring Manager: Hiring Manager", "Tone: professional", "Desired Length: medium"} {
		if !strings.Contains(p.User, want) {
			t.Fatalf("expected %q in %q", want, p.User)
		}
	}
}

func TestRenderInterviewFeedbackSkillsOptional(t *testing.T) {
	set, _ := DefaultPrompts()
	p, err := set.Render(career.InterviewFeedback, &career.InterviewFeedbackContent{Question: "Why Go?", Response: "Simplicity"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(p.User, "Skills:") {
		t.Fatalf("skills line should be omitted: %q", p.User)
	}
	if !strings.HasSuffix(p.User, "Position Type: General") {
		t.Fatalf("unexpected prompt %q", p.User)
	}

	p, _ = set.Render(career.InterviewFeedback, &career.InterviewFeedbackContent{Question: "q", Skills: "Go, SQL"})
	if !strings.HasSuffix(p.User, "Skills: Go, SQL") {
		t.Fatalf("expected skills line: %q", p.User)
	}
}

func TestRenderInterviewEvaluationEncodesQuestions(t *testing.T) {
	set, _ := DefaultPrompts()
	p, err := set.Render(career.InterviewEvaluation, &career.InterviewEvaluationContent{
		Role:      "Backend",
		Level:     "Senior",
		Questions: []career.Question{{ID: 1, Text: "Tell me about yourself"}},
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(p.User, `Questions and Context: [{"id":1,"text":"Tell me about yourself"`) {
		t.Fatalf("unexpected prompt %q", p.User)
	}
}

func TestLoadPromptsRejectsIncompleteCatalogue(t *testing.T) {
	if _, err := LoadPrompts([]byte("resume_analysis:\n  system: s\n  user: u\n")); err == nil {
		t.Fatalf("expected error for missing types")
	}
	if _, err := LoadPrompts([]byte("[unclosed")); err == nil {
		t.Fatalf("expected parse error")
	}
}
