package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"career-backend/internal/career"
)

var interviewCmd = &cobra.Command{
	Use:   "interview",
	Short: "Mock interview tools",
}

var (
	questionsIn career.InterviewQuestionsContent

	feedbackIn     career.InterviewFeedbackContent
	feedbackAnswer textSource

	evaluateIn   career.InterviewEvaluationContent
	evaluateFile string
)

var interviewQuestionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Generate interview questions for a role and level",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		c, err := newClient(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		out, err := c.GenerateInterviewQuestions(ctx, questionsIn)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), out)
	},
}

var interviewFeedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "Get feedback on an answer to one interview question",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		c, err := newClient(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		in := feedbackIn
		if in.Response, err = feedbackAnswer.read(); err != nil {
			return err
		}
		out, err := c.GetInterviewFeedback(ctx, in)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), out)
	},
}

var interviewEvaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Score a finished interview",
	Long:  "Score a finished interview. --questions-file holds a JSON array of questions as printed by 'interview questions'.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		c, err := newClient(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		in := evaluateIn
		if evaluateFile != "" {
			data, err := os.ReadFile(evaluateFile)
			if err != nil {
				return fmt.Errorf("read questions: %w", err)
			}
			if err := json.Unmarshal(data, &in.Questions); err != nil {
				return fmt.Errorf("parse questions: %w", err)
			}
		}
		out, err := c.EvaluateInterview(ctx, in)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), out)
	},
}

func init() {
	interviewQuestionsCmd.Flags().StringVar(&questionsIn.Role, "role", "", "Target role")
	interviewQuestionsCmd.Flags().StringVar(&questionsIn.Level, "level", "", "Seniority level")

	f := interviewFeedbackCmd.Flags()
	f.StringVar(&feedbackIn.Question, "question", "", "The interview question")
	f.StringVar(&feedbackAnswer.inline, "answer", "", "Your answer")
	f.StringVar(&feedbackAnswer.path, "answer-file", "", "File holding your answer")
	f.StringVar(&feedbackIn.PositionType, "position", "", "Position type")
	f.StringVar(&feedbackIn.Skills, "skills", "", "Skills to focus on")

	interviewEvaluateCmd.Flags().StringVar(&evaluateIn.Role, "role", "", "Target role")
	interviewEvaluateCmd.Flags().StringVar(&evaluateIn.Level, "level", "", "Seniority level")
	interviewEvaluateCmd.Flags().StringVar(&evaluateFile, "questions-file", "", "JSON file with the interview questions")

	interviewCmd.AddCommand(interviewQuestionsCmd, interviewFeedbackCmd, interviewEvaluateCmd)
	rootCmd.AddCommand(interviewCmd)
}
