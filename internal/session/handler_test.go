package session

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// attach mirrors the server's session middleware without importing it.
func attach(m *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if s, err := m.Verify(token); err == nil {
			Attach(c, s)
		}
		c.Next()
	}
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	m := newTestManager(t)
	r := gin.New()
	r.Use(attach(m))
	NewHandler(m).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func do(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSessionRoundTrip(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, http.MethodPost, "/api/v1/session/signin", "", `{"email":"demo@skillboost.com","password":"password"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var signedIn sessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &signedIn))
	assert.Equal(t, "demo_user", signedIn.User.ID)

	w = do(r, http.MethodGet, "/api/v1/session", signedIn.Token, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Demo User"`)

	w = do(r, http.MethodDelete, "/api/v1/session", signedIn.Token, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/api/v1/session", signedIn.Token, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSignInFailure(t *testing.T) {
	r := newTestRouter(t)
	w := do(r, http.MethodPost, "/api/v1/session/signin", "", `{"email":"demo@skillboost.com","password":"nope"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Invalid email or password","code":"INVALID_CREDENTIALS"}`, w.Body.String())
}

func TestSignUpHandler(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, http.MethodPost, "/api/v1/session/signup", "", `{"name":"Ada","email":"ada@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created sessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.True(t, strings.HasPrefix(created.User.ID, "user_"))
	assert.NotEmpty(t, created.Token)

	w = do(r, http.MethodPost, "/api/v1/session/signup", "", `{"name":"Ada","email":"ada@example.com","password":"secret1"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(r, http.MethodPost, "/api/v1/session/signup", "", `{"name":"Ada","email":"not-an-email","password":"secret1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
