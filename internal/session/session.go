// Package session issues and verifies sign-in sessions for the career
// assistant. Sessions are signed JWTs; sign-out revokes the token id.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"career-backend/internal/users"
	"career-backend/internal/shared/telemetry"
)

const (
	DemoUserID   = "demo_user"
	DemoEmail    = "demo@skillboost.com"
	DemoPassword = "password"
	DemoName     = "Demo User"

	defaultTTL = 24 * time.Hour
)

var (
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrInvalidToken       = errors.New("invalid session token")
	ErrMissingSecret      = errors.New("JWT_SECRET required in production")
)

// Session is an authenticated principal for one token.
type Session struct {
	ID        string        `json:"-"`
	User      users.Profile `json:"user"`
	IssuedAt  time.Time     `json:"-"`
	ExpiresAt time.Time     `json:"-"`
}

type claims struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Manager signs users in and out.
type Manager struct {
	repo   users.Repo
	secret []byte
	ttl    time.Duration
	now    func() time.Time

	mu      sync.Mutex
	revoked map[string]time.Time
}

// SecretFor returns the signing secret, falling back to a development value
// outside production.
func SecretFor(env, secret string) ([]byte, error) {
	secret = strings.TrimSpace(secret)
	if secret != "" {
		return []byte(secret), nil
	}
	if env == "production" {
		return nil, ErrMissingSecret
	}
	return []byte("dev-secret"), nil
}

// NewManager builds a session manager. A zero ttl means one day.
func NewManager(repo users.Repo, secret []byte, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Manager{
		repo:    repo,
		secret:  secret,
		ttl:     ttl,
		now:     time.Now,
		revoked: make(map[string]time.Time),
	}
}

// EnsureDemoAccount seeds the demo account if it is missing.
func (m *Manager) EnsureDemoAccount(ctx context.Context) error {
	if _, err := m.repo.GetByEmail(ctx, DemoEmail); err == nil {
		return nil
	} else if !errors.Is(err, users.ErrNotFound) {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}
	err = m.repo.Create(ctx, users.User{ID: DemoUserID, Email: DemoEmail, Name: DemoName, PasswordHash: string(hash)})
	if err != nil && !errors.Is(err, users.ErrDuplicateEmail) {
		return err
	}
	return nil
}

// SignUp registers a new account and opens a session for it.
func (m *Manager) SignUp(ctx context.Context, name, email, password string) (*Session, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}
	user := users.User{
		ID:           "user_" + uuid.NewString(),
		Email:        users.NormalizeEmail(email),
		Name:         strings.TrimSpace(name),
		PasswordHash: string(hash),
	}
	if err := m.repo.Create(ctx, user); err != nil {
		return nil, "", err
	}
	telemetry.Info("session.signup", map[string]any{"user_id": user.ID})
	return m.issue(user.Profile())
}

// SignIn checks credentials and opens a session.
func (m *Manager) SignIn(ctx context.Context, email, password string) (*Session, string, error) {
	user, err := m.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	telemetry.Info("session.signin", map[string]any{"user_id": user.ID})
	return m.issue(user.Profile())
}

func (m *Manager) issue(profile users.Profile) (*Session, string, error) {
	now := m.now().UTC().Truncate(time.Second)
	s := &Session{
		ID:        uuid.NewString(),
		User:      profile,
		IssuedAt:  now,
		ExpiresAt: now.Add(m.ttl),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Name:  profile.Name,
		Email: profile.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        s.ID,
			Subject:   profile.ID,
			IssuedAt:  jwt.NewNumericDate(s.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
		},
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return nil, "", fmt.Errorf("sign session: %w", err)
	}
	return s, signed, nil
}

// Verify parses a bearer token into a live session.
func (m *Manager) Verify(token string) (*Session, error) {
	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if c.Subject == "" || c.ID == "" || c.ExpiresAt == nil {
		return nil, ErrInvalidToken
	}
	if m.isRevoked(c.ID) {
		return nil, ErrInvalidToken
	}
	s := &Session{
		ID:        c.ID,
		User:      users.Profile{ID: c.Subject, Name: c.Name, Email: c.Email},
		ExpiresAt: c.ExpiresAt.Time,
	}
	if c.IssuedAt != nil {
		s.IssuedAt = c.IssuedAt.Time
	}
	return s, nil
}

// Revoke ends a session. Revoked ids are kept until their token would expire.
func (m *Manager) Revoke(s *Session) {
	if s == nil {
		return
	}
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, exp := range m.revoked {
		if now.After(exp) {
			delete(m.revoked, id)
		}
	}
	m.revoked[s.ID] = s.ExpiresAt
	telemetry.Info("session.signout", map[string]any{"user_id": s.User.ID})
}

func (m *Manager) isRevoked(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.revoked[id]
	return ok
}
