package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"career-backend/internal/client"
	"career-backend/internal/jobdesc"
)

// newClient builds an API client with a file backed session and stderr toasts.
func newClient(errOut io.Writer) (*client.Client, error) {
	path := sessionFile
	if path == "" {
		p, err := client.DefaultSessionPath()
		if err != nil {
			return nil, fmt.Errorf("resolve session path: %w", err)
		}
		path = p
	}
	notifier := client.NotifierFunc(func(level client.Level, message string) {
		if quiet || message == "" {
			return
		}
		fmt.Fprintf(errOut, "[%s] %s\n", level, message)
	})
	return client.New(apiURL,
		client.WithSessionStore(client.NewFileStore(path)),
		client.WithNotifier(notifier),
	), nil
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// textSource is a piece of text given inline or as a file path.
type textSource struct {
	inline string
	path   string
}

func (s textSource) read() (string, error) {
	if s.path == "" {
		return s.inline, nil
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", s.path, err)
	}
	return string(data), nil
}

// resumeInput resolves a resume given inline, as a plain text file or as a
// document uploaded for extraction.
type resumeInput struct {
	text       string
	uploadPath string
}

func (r *resumeInput) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&r.text, "resume", "", "Resume text")
	cmd.Flags().StringVar(&r.uploadPath, "resume-file", "", "Resume file (.txt, .md, .pdf, .docx) sent for text extraction")
}

func (r *resumeInput) resolve(ctx context.Context, c *client.Client) (string, error) {
	if r.uploadPath == "" {
		return r.text, nil
	}
	data, err := os.ReadFile(r.uploadPath)
	if err != nil {
		return "", fmt.Errorf("read resume: %w", err)
	}
	out, err := c.ExtractResume(ctx, filepath.Base(r.uploadPath), data)
	if err != nil {
		return "", err
	}
	return out.Text, nil
}

// jobInput resolves a job description given inline, from a file or from a
// posting URL.
type jobInput struct {
	text textSource
	url  string
}

func (j *jobInput) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&j.text.inline, "job-description", "", "Job description text")
	cmd.Flags().StringVar(&j.text.path, "job-file", "", "File holding the job description")
	cmd.Flags().StringVar(&j.url, "job-url", "", "Job posting URL to fetch the description from")
}

func (j *jobInput) resolve(ctx context.Context) (string, error) {
	if j.url == "" {
		return j.text.read()
	}
	posting, err := jobdesc.NewFetcher().Fetch(ctx, j.url)
	if err != nil {
		return "", err
	}
	if posting.Title != "" && !strings.Contains(posting.Text, posting.Title) {
		return posting.Title + "\n\n" + posting.Text, nil
	}
	return posting.Text, nil
}
