package dispatch

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"career-backend/internal/career"
	"career-backend/internal/shared/server/respond"
)

// Handler exposes the dispatcher over HTTP.
type Handler struct {
	svc *Service
}

// NewHandler constructs a dispatcher handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the dispatcher under rg.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, mw ...gin.HandlerFunc) {
	handlers := append(append([]gin.HandlerFunc{}, mw...), h.Dispatch)
	rg.POST("/ai-career-assistant", handlers...)
}

type dispatchRequest struct {
	Type    string          `json:"type"`
	Content json.RawMessage `json:"content"`
}

// Dispatch handles POST /ai-career-assistant.
func (h *Handler) Dispatch(c *gin.Context) {
	if !h.svc.Configured() {
		respond.Error(c, http.StatusInternalServerError, "NOT_CONFIGURED", (&NotConfiguredError{Provider: h.svc.provider}).Error(), nil)
		return
	}

	var req dispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "BAD_REQUEST", "invalid request body", nil)
		return
	}
	c.Set("requestType", req.Type)

	payload, err := h.svc.Dispatch(c.Request.Context(), career.Envelope{Type: career.RequestType(req.Type), Content: req.Content})
	if err != nil {
		h.writeError(c, err)
		return
	}
	respond.RawJSON(c, http.StatusOK, payload)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	var notConfigured *NotConfiguredError
	var contentErr *career.ContentError
	switch {
	case errors.As(err, &notConfigured):
		respond.Error(c, http.StatusInternalServerError, "NOT_CONFIGURED", notConfigured.Error(), nil)
	case errors.Is(err, ErrUnknownType):
		respond.Error(c, http.StatusBadRequest, "INVALID_TYPE", ErrUnknownType.Error(), nil)
	case errors.As(err, &contentErr):
		respond.Error(c, http.StatusBadRequest, "INVALID_CONTENT", "Invalid request content", contentErr.Fields)
	default:
		respond.Error(c, http.StatusInternalServerError, "UPSTREAM_ERROR", UpstreamMessage(err), nil)
	}
}
