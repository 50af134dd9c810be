// Package jobdesc downloads job postings and reduces them to plain text that
// can be passed as a job description.
package jobdesc

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"career-backend/internal/shared/telemetry"
)

const (
	defaultTimeout   = 20 * time.Second
	defaultUserAgent = "Mozilla/5.0 (compatible; CareerAssistant/1.0)"
	maxBodyBytes     = 4 << 20
)

// Posting is the readable part of a job page.
type Posting struct {
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
	Text  string `json:"text"`
}

// FetchError describes a failed download.
type FetchError struct {
	URL     string
	Message string
	Cause   error
}

func (e *FetchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Message)
}

func (e *FetchError) Unwrap() error { return e.Cause }

// contentSelectors are tried in order; the first match wins.
var contentSelectors = []string{
	"[data-testid='job-description']",
	".job-description",
	"#job-description",
	".job__description",
	".posting-page .section-wrapper",
	".description__text",
	".jobs-description__content",
	".job-details",
	".job-content",
	"main",
	"article",
	"#content",
	".content",
}

const noiseSelector = "nav, footer, header, script, style, noscript, svg, form, iframe, .cookie-banner, .apply-button, .similar-jobs, .sidebar"

// Fetcher downloads job pages.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// NewFetcher returns a fetcher with a bounded per-request timeout.
func NewFetcher() *Fetcher {
	return &Fetcher{client: &http.Client{Timeout: defaultTimeout}, userAgent: defaultUserAgent}
}

// Fetch downloads rawURL and extracts the posting text.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (Posting, error) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return Posting{}, &FetchError{URL: rawURL, Message: "invalid URL", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return Posting{}, &FetchError{URL: rawURL, Message: "build request", Cause: err}
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,text/plain;q=0.9,*/*;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return Posting{}, &FetchError{URL: rawURL, Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return Posting{}, &FetchError{URL: rawURL, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Posting{}, &FetchError{URL: rawURL, Message: "read body", Cause: err}
	}

	posting := Posting{URL: parsed.String()}
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "text/plain") {
		posting.Text = cleanWhitespace(string(body))
	} else {
		posting.Title, posting.Text, err = ExtractPosting(string(body))
		if err != nil {
			return Posting{}, &FetchError{URL: rawURL, Message: "parse HTML", Cause: err}
		}
	}
	if posting.Text == "" {
		return Posting{}, &FetchError{URL: rawURL, Message: "no readable text"}
	}
	telemetry.Info("jobdesc.fetched", map[string]any{"host": parsed.Host, "text_len": len(posting.Text)})
	return posting, nil
}

// ExtractPosting returns the page title and the main posting text.
func ExtractPosting(html string) (string, string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", "", err
	}
	title := strings.TrimSpace(doc.Find("h1").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	doc.Find(noiseSelector).Remove()

	content := doc.Find("body")
	for _, selector := range contentSelectors {
		if sel := doc.Find(selector); sel.Length() > 0 {
			content = sel.First()
			break
		}
	}
	// Block elements would otherwise run together in Text().
	content.Find("p, li, br, h1, h2, h3, h4, div").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})
	return title, cleanWhitespace(content.Text()), nil
}

func cleanWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := lines[:0]
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
