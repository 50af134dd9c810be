package session

import "github.com/gin-gonic/gin"

const contextKey = "session"

// Attach stores s on the request context.
func Attach(c *gin.Context, s *Session) {
	c.Set(contextKey, s)
}

// Current returns the session attached to the request, if any.
func Current(c *gin.Context) (*Session, bool) {
	if c == nil {
		return nil, false
	}
	val, ok := c.Get(contextKey)
	if !ok {
		return nil, false
	}
	s, ok := val.(*Session)
	return s, ok && s != nil
}
