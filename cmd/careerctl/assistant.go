package main

import (
	"github.com/spf13/cobra"

	"career-backend/internal/career"
)

var (
	scanResume resumeInput
	scanJob    jobInput

	letter       career.CoverLetterContent
	letterJob    jobInput
	letterExpSrc textSource

	gapResume resumeInput
	gapJob    jobInput
	gapTitle  string
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Score a resume for ATS compatibility",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		c, err := newClient(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		resume, err := scanResume.resolve(ctx, c)
		if err != nil {
			return err
		}
		job, err := scanJob.resolve(ctx)
		if err != nil {
			return err
		}
		out, err := c.AnalyzeResume(ctx, career.ResumeAnalysisContent{Resume: resume, JobDescription: job})
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), out)
	},
}

var coverLetterCmd = &cobra.Command{
	Use:   "cover-letter",
	Short: "Draft a cover letter for a position",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		c, err := newClient(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		in := letter
		if in.JobDescription, err = letterJob.resolve(ctx); err != nil {
			return err
		}
		if letterExpSrc.path != "" {
			if in.Experience, err = letterExpSrc.read(); err != nil {
				return err
			}
		}
		out, err := c.GenerateCoverLetter(ctx, in)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("json") {
			return printJSON(cmd.OutOrStdout(), out)
		}
		_, err = cmd.OutOrStdout().Write([]byte(out.Content + "\n"))
		return err
	},
}

var skillGapCmd = &cobra.Command{
	Use:   "skill-gap",
	Short: "Compare a resume with a target role",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		c, err := newClient(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		resume, err := gapResume.resolve(ctx, c)
		if err != nil {
			return err
		}
		job, err := gapJob.resolve(ctx)
		if err != nil {
			return err
		}
		out, err := c.AnalyzeSkillGap(ctx, career.SkillGapContent{Resume: resume, JobTitle: gapTitle, JobDescription: job})
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), out)
	},
}

func init() {
	scanResume.bind(scanCmd)
	scanJob.bind(scanCmd)

	f := coverLetterCmd.Flags()
	f.StringVar(&letter.FullName, "name", "", "Your full name")
	f.StringVar(&letter.Email, "email", "", "Your email")
	f.StringVar(&letter.Phone, "phone", "", "Your phone number")
	f.StringVar(&letter.Address, "address", "", "Your address")
	f.StringVar(&letter.Company, "company", "", "Company name")
	f.StringVar(&letter.Position, "position", "", "Position applied for")
	f.StringVar(&letter.HiringManager, "hiring-manager", "", "Hiring manager name")
	f.StringVar(&letter.Experience, "experience", "", "Relevant experience to highlight")
	f.StringVar(&letterExpSrc.path, "experience-file", "", "File holding relevant experience")
	f.StringVar(&letter.Tone, "tone", "professional", "professional, enthusiastic or conversational")
	f.StringVar(&letter.Length, "length", "medium", "short, medium or long")
	f.Bool("json", false, "Print the result as JSON")
	letterJob.bind(coverLetterCmd)

	gapResume.bind(skillGapCmd)
	gapJob.bind(skillGapCmd)
	skillGapCmd.Flags().StringVar(&gapTitle, "title", "", "Target job title")

	rootCmd.AddCommand(scanCmd, coverLetterCmd, skillGapCmd)
}
