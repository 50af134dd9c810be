package session

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"career-backend/internal/shared/server/respond"
	"career-backend/internal/users"
)

type Handler struct {
	mgr *Manager
}

func NewHandler(mgr *Manager) *Handler {
	return &Handler{mgr: mgr}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/session/signup", h.signUp)
	rg.POST("/session/signin", h.signIn)
	rg.GET("/session", h.current)
	rg.DELETE("/session", h.signOut)
}

type signUpRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type signInRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type sessionResponse struct {
	User  users.Profile `json:"user"`
	Token string        `json:"token"`
}

func (h *Handler) signUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "BAD_REQUEST", "name, a valid email and a password of at least 6 characters are required", nil)
		return
	}
	s, token, err := h.mgr.SignUp(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, users.ErrDuplicateEmail) {
			respond.Error(c, http.StatusConflict, "EMAIL_TAKEN", "An account with this email already exists", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to create account", nil)
		return
	}
	c.Set("userId", s.User.ID)
	respond.JSON(c, http.StatusCreated, sessionResponse{User: s.User, Token: token})
}

func (h *Handler) signIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", ErrInvalidCredentials.Error(), nil)
		return
	}
	s, token, err := h.mgr.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			respond.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", ErrInvalidCredentials.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to sign in", nil)
		return
	}
	c.Set("userId", s.User.ID)
	respond.OK(c, sessionResponse{User: s.User, Token: token})
}

func (h *Handler) current(c *gin.Context) {
	s, ok := Current(c)
	if !ok {
		respond.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "not signed in", nil)
		return
	}
	respond.OK(c, s.User)
}

func (h *Handler) signOut(c *gin.Context) {
	s, ok := Current(c)
	if !ok {
		respond.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "not signed in", nil)
		return
	}
	h.mgr.Revoke(s)
	respond.OK(c, gin.H{"ok": true})
}
