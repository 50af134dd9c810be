package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

type credentials struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session returns the stored session, if any.
func (c *Client) Session() (*StoredSession, bool) {
	s, err := c.store.Load()
	if err != nil || s == nil {
		return nil, false
	}
	return s, true
}

// SignIn opens a session and persists it.
func (c *Client) SignIn(ctx context.Context, email, password string) (*StoredSession, error) {
	return c.openSession(ctx, "/api/v1/session/signin", credentials{Email: email, Password: password}, "Signed in successfully")
}

// SignUp creates an account, opens a session for it and persists it.
func (c *Client) SignUp(ctx context.Context, email, password, name string) (*StoredSession, error) {
	return c.openSession(ctx, "/api/v1/session/signup", credentials{Name: name, Email: email, Password: password}, "Account created successfully")
}

func (c *Client) openSession(ctx context.Context, path string, creds credentials, successMsg string) (*StoredSession, error) {
	if !c.begin(ControlSession) {
		return nil, ErrInFlight
	}
	defer c.end(ControlSession)

	body, err := c.postJSON(ctx, path, creds, "")
	if err != nil {
		return nil, err
	}
	var s StoredSession
	if err := json.Unmarshal(body, &s); err != nil || s.Token == "" {
		c.notifier.Notify(LevelError, "Unexpected response from the server.")
		return nil, fmt.Errorf("decode session: %w", errors.Join(err, errors.New("missing token")))
	}
	if err := c.store.Save(&s); err != nil {
		return nil, err
	}
	c.notifier.Notify(LevelSuccess, successMsg)
	return &s, nil
}

// SignOut revokes the session on the server and removes it locally. The
// local copy is removed even when the server call fails.
func (c *Client) SignOut(ctx context.Context) error {
	if !c.begin(ControlSession) {
		return ErrInFlight
	}
	defer c.end(ControlSession)

	if _, ok := c.Session(); !ok {
		return nil
	}
	_, err := c.send(ctx, http.MethodDelete, "/api/v1/session", "", nil, "Failed to sign out")
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
		err = nil
	}
	if clearErr := c.store.Clear(); clearErr != nil {
		return clearErr
	}
	if err != nil {
		return err
	}
	c.notifier.Notify(LevelSuccess, "Signed out successfully")
	return nil
}

// WhoAmI asks the server for the profile behind the stored session.
func (c *Client) WhoAmI(ctx context.Context) (User, error) {
	body, err := c.send(ctx, http.MethodGet, "/api/v1/session", "", nil, "")
	if err != nil {
		return User{}, err
	}
	var u User
	if err := json.Unmarshal(body, &u); err != nil {
		return User{}, fmt.Errorf("decode user: %w", err)
	}
	return u, nil
}
