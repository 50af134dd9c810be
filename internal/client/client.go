// Package client is the caller-side request layer for the career assistant
// API. It wraps each feature in a typed call, guards against duplicate
// submissions and reports outcomes through a Notifier.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
)

const dispatchPath = "/api/v1/ai-career-assistant"

// Toast messages shown for failed calls.
const (
	MsgRequestFailed    = "Error processing your request. Please try again."
	MsgConnectionFailed = "Error connecting to AI services."
	MsgUnreadableReply  = "The AI response could not be read. Please try again."
)

// ErrInFlight is returned when the same control already has a call running.
var ErrInFlight = errors.New("request already in progress")

// APIError is a non-2xx reply from the server.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.Status)
	}
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Message)
}

// Control identifies one submit action; at most one call per control runs at a time.
type Control string

const (
	ControlSession Control = "session"
	ControlUpload  Control = "upload"
)

// Client talks to the career assistant API.
type Client struct {
	baseURL  string
	http     *http.Client
	notifier Notifier
	store    SessionStore

	mu       sync.Mutex
	inFlight map[Control]bool
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the transport. The default has no timeout; callers
// bound calls through their context.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithNotifier sets where toast messages go.
func WithNotifier(n Notifier) Option {
	return func(c *Client) {
		if n != nil {
			c.notifier = n
		}
	}
}

// WithSessionStore sets where the signed-in session is kept.
func WithSessionStore(s SessionStore) Option {
	return func(c *Client) {
		if s != nil {
			c.store = s
		}
	}
}

// New builds a client for the API at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:     &http.Client{},
		notifier: discard{},
		store:    NewMemoryStore(),
		inFlight: make(map[Control]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Loading reports whether any call is running.
func (c *Client) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, busy := range c.inFlight {
		if busy {
			return true
		}
	}
	return false
}

// Busy reports whether control has a call running.
func (c *Client) Busy(control Control) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight[control]
}

func (c *Client) begin(control Control) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight[control] {
		return false
	}
	c.inFlight[control] = true
	return true
}

func (c *Client) end(control Control) {
	c.mu.Lock()
	delete(c.inFlight, control)
	c.mu.Unlock()
}

// send performs one request and returns the body of a 2xx reply. Failures
// are reported to the notifier using failMsg for non-2xx replies.
func (c *Client) send(ctx context.Context, method, path, contentType string, body io.Reader, failMsg string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if s, ok := c.Session(); ok && s.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.notifier.Notify(LevelError, MsgConnectionFailed)
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.notifier.Notify(LevelError, MsgConnectionFailed)
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var payload struct {
			Error string `json:"error"`
			Code  string `json:"code"`
		}
		if json.Unmarshal(data, &payload) == nil {
			apiErr.Message = payload.Error
			apiErr.Code = payload.Code
		}
		if failMsg == "" {
			failMsg = apiErr.Message
		}
		c.notifier.Notify(LevelError, failMsg)
		return nil, apiErr
	}
	return data, nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload any, failMsg string) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return c.send(ctx, http.MethodPost, path, "application/json", bytes.NewReader(raw), failMsg)
}
