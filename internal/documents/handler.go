package documents

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"career-backend/internal/extract"
	"career-backend/internal/shared/server/middleware"
	"career-backend/internal/shared/server/respond"
)

const maxUploadSize = 10 << 20 // 10MB

const unsupportedMessage = "This file type can't be read automatically. Please paste the resume text manually."

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches resume intake routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes/extract", h.extract)
	rg.GET("/resumes", h.list)
}

func (h *Handler) extract(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize+1<<20)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds the 10MB limit", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "BAD_REQUEST", "file is required", nil)
		return
	}
	if fileHeader.Size > maxUploadSize {
		respond.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds the 10MB limit", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "BAD_REQUEST", "unable to read file", nil)
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "BAD_REQUEST", "unable to read file", nil)
		return
	}

	res, err := h.Svc.Extract(c.Request.Context(), middleware.UserIDFromContext(c), fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data)
	if err != nil {
		var unsupported *extract.UnsupportedError
		switch {
		case errors.As(err, &unsupported):
			respond.Error(c, http.StatusUnsupportedMediaType, "UNSUPPORTED_FILE", unsupportedMessage, gin.H{"mimeType": unsupported.MimeType})
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		default:
			respond.Error(c, http.StatusUnprocessableEntity, "EXTRACTION_FAILED", "We couldn't read text from this file. Please paste the resume text manually.", nil)
		}
		return
	}
	respond.OK(c, res)
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Sign in to view retained uploads", nil)
		return
	}

	limit := 20
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit <= 0 || limit > 50 {
		limit = 50
	}
	offset := 0
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			offset = parsed
		}
	}

	uploads, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "INTERNAL", "failed to list uploads", nil)
		return
	}
	respond.OK(c, uploads)
}
