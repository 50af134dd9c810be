package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"career-backend/internal/session"
	"career-backend/internal/users"
)

type stubVerifier map[string]*session.Session

func (s stubVerifier) Verify(token string) (*session.Session, error) {
	if sess, ok := s[token]; ok {
		return sess, nil
	}
	return nil, errors.New("bad token")
}

func TestSessionAttachesValidToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	verifier := stubVerifier{"good": {ID: "s1", User: users.Profile{ID: "demo_user"}}}

	router := gin.New()
	router.Use(Session(verifier))
	router.GET("/whoami", func(c *gin.Context) {
		s, ok := session.Current(c)
		if !ok {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, s.User.ID+"|"+UserIDFromContext(c))
	})

	cases := map[string]string{
		"Bearer good":  "demo_user|demo_user",
		"bearer good":  "demo_user|demo_user",
		"Bearer wrong": "anonymous",
		"Basic good":   "anonymous",
		"":             "anonymous",
	}
	for header, want := range cases {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("header %q: expected 200, got %d", header, resp.Code)
		}
		if resp.Body.String() != want {
			t.Fatalf("header %q: expected %q, got %q", header, want, resp.Body.String())
		}
	}
}
