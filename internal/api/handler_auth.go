package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mill-maintenance-backend/internal/auth"
	"mill-maintenance-backend/internal/mw"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request"})
		return
	}

	user, err := h.auth.Check(req.Username, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "INVALID_CREDENTIALS"})
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}

	token, expires, err := h.auth.Issue(user)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"user":      user,
		"token":     token,
		"expiresAt": expires,
	})
}

// Me handles GET /api/auth/me.
func (h *Handler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": auth.User{
		Username: c.GetString(mw.UserKey),
		Role:     c.GetString(mw.RoleKey),
	}})
}

// Health handles GET /api/health.
func (h *Handler) Health(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		h.log.Warn("health check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
