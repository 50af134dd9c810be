package client

import (
	"context"
	"fmt"

	"career-backend/internal/career"
)

// dispatch runs one dispatcher call under the request type's control and
// decodes the reply with decode.
func dispatch[T any](ctx context.Context, c *Client, t career.RequestType, content any, decode func([]byte) (T, error), successMsg string) (T, error) {
	var zero T
	control := Control(t)
	if !c.begin(control) {
		return zero, ErrInFlight
	}
	defer c.end(control)

	env, err := career.NewEnvelope(t, content)
	if err != nil {
		return zero, fmt.Errorf("encode %s content: %w", t, err)
	}
	body, err := c.postJSON(ctx, dispatchPath, env, MsgRequestFailed)
	if err != nil {
		return zero, err
	}
	out, err := decode(body)
	if err != nil {
		c.notifier.Notify(LevelError, MsgUnreadableReply)
		return zero, err
	}
	c.notifier.Notify(LevelSuccess, successMsg)
	return out, nil
}

// AnalyzeResume scores a resume against an optional job description.
func (c *Client) AnalyzeResume(ctx context.Context, in career.ResumeAnalysisContent) (career.ResumeAnalysisResult, error) {
	return dispatch(ctx, c, career.ResumeAnalysis, in, career.DecodeResumeAnalysis, "Resume scan completed!")
}

// GenerateCoverLetter drafts a cover letter.
func (c *Client) GenerateCoverLetter(ctx context.Context, in career.CoverLetterContent) (career.CoverLetterResult, error) {
	return dispatch(ctx, c, career.CoverLetter, in, career.DecodeCoverLetter, "Cover letter generated successfully!")
}

// AnalyzeSkillGap compares a resume with a target role.
func (c *Client) AnalyzeSkillGap(ctx context.Context, in career.SkillGapContent) (career.SkillGapResult, error) {
	return dispatch(ctx, c, career.SkillGap, in, career.DecodeSkillGap, "Skill gap analysis completed!")
}

// GetInterviewFeedback scores one answered interview question.
func (c *Client) GetInterviewFeedback(ctx context.Context, in career.InterviewFeedbackContent) (career.InterviewFeedbackResult, error) {
	return dispatch(ctx, c, career.InterviewFeedback, in, career.DecodeInterviewFeedback, "AI feedback received for your response!")
}

// GenerateInterviewQuestions asks for a question set for a role and level.
func (c *Client) GenerateInterviewQuestions(ctx context.Context, in career.InterviewQuestionsContent) (career.InterviewQuestionsResult, error) {
	return dispatch(ctx, c, career.InterviewQuestions, in, career.DecodeInterviewQuestions, "Interview questions generated successfully!")
}

// EvaluateInterview scores a finished interview.
func (c *Client) EvaluateInterview(ctx context.Context, in career.InterviewEvaluationContent) (career.InterviewEvaluationResult, error) {
	return dispatch(ctx, c, career.InterviewEvaluation, in, career.DecodeInterviewEvaluation, "Interview completed! Your feedback is ready.")
}
