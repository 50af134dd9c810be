package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"career-backend/internal/session"
)

const userIDKey = "userId"

// SessionVerifier turns a bearer token into a session.
type SessionVerifier interface {
	Verify(token string) (*session.Session, error)
}

// Session attaches the caller's session when a valid bearer token is sent.
// It never rejects a request; handlers that need a session check for it.
func Session(verifier SessionVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" || verifier == nil {
			c.Next()
			return
		}
		s, err := verifier.Verify(token)
		if err == nil {
			session.Attach(c, s)
			c.Set(userIDKey, s.User.ID)
		}
		c.Next()
	}
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) < 7 || !strings.EqualFold(header[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}

// UserIDFromContext fetches the user ID set by the session middleware.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}
