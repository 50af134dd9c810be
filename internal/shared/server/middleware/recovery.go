package middleware

import (
	"io"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"career-backend/internal/shared/server/respond"
	"career-backend/internal/shared/telemetry"
)

// Recovery turns a panic into a 500 with the flat error body. Gin's own
// recovery output is discarded in favour of one structured log line.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, rec any) {
		fields := map[string]any{
			"request_id": RequestIDFromContext(c),
			"error":      rec,
			"stack":      string(debug.Stack()),
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
			"user_id":    UserIDFromContext(c),
		}
		if t := c.GetString("requestType"); t != "" {
			fields["request_type"] = t
		}
		telemetry.Error("http.panic", fields)
		respond.Error(c, http.StatusInternalServerError, "INTERNAL", "Unexpected server error", nil)
	})
}
