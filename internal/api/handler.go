package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mill-maintenance-backend/internal/auth"
	"mill-maintenance-backend/internal/store"
)

// Dispatcher queues a stored notification for push delivery.
type Dispatcher interface {
	Dispatch(notificationID string) bool
}

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store          store.Store
	auth           *auth.Authenticator
	push           Dispatcher
	vapidPublicKey string
	log            *zap.Logger
}

// Option configures optional Handler dependencies.
type Option func(*Handler)

// WithPush enables push delivery of new notifications.
func WithPush(d Dispatcher, vapidPublicKey string) Option {
	return func(h *Handler) {
		h.push = d
		h.vapidPublicKey = vapidPublicKey
	}
}

// WithLogger sets the logger used for server-side error detail.
func WithLogger(log *zap.Logger) Option {
	return func(h *Handler) {
		h.log = log
	}
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, a *auth.Authenticator, opts ...Option) *Handler {
	h := &Handler{
		store: s,
		auth:  a,
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// notify hands a committed notification to the push workers, if any.
func (h *Handler) notify(id string) {
	if h.push == nil || id == "" {
		return
	}
	h.push.Dispatch(id)
}

// fail maps a store error onto the HTTP error taxonomy. Unexpected errors are
// logged in full and reported to the client as a generic 500.
func (h *Handler) fail(c *gin.Context, err error) {
	_ = c.Error(err)
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrInvalidSnapshot):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", c.GetString("request_id")),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// idParam reads the record id from the path, falling back to ?id=.
func idParam(c *gin.Context) string {
	if id := c.Param("id"); id != "" {
		return id
	}
	return c.Query("id")
}
