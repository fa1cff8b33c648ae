package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"mill-maintenance-backend/internal/model"
)

// feedLimit is how many entries the notification feed shows.
const feedLimit = 15

type notificationRequest struct {
	Type    model.NotificationType `json:"type"`
	Title   string                 `json:"title"`
	Message string                 `json:"message"`
}

// ListNotifications handles GET /api/notifications.
func (h *Handler) ListNotifications(c *gin.Context) {
	notes, err := h.store.ListNotifications(c.Request.Context(), feedLimit)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, notes)
}

// CreateNotification handles POST /api/notifications.
func (h *Handler) CreateNotification(c *gin.Context) {
	var req notificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Message) == "" {
		badRequest(c, "title and message are required")
		return
	}
	switch t := model.NotificationType(strings.ToUpper(string(req.Type))); t {
	case "", model.NotificationInfo, model.NotificationSuccess, model.NotificationAlert:
		req.Type = t
	default:
		badRequest(c, "type must be INFO, SUCCESS or ALERT")
		return
	}

	n := &model.Notification{Type: req.Type, Title: strings.TrimSpace(req.Title), Message: strings.TrimSpace(req.Message)}
	if err := h.store.CreateNotification(c.Request.Context(), n); err != nil {
		h.fail(c, err)
		return
	}
	h.notify(n.ID)
	c.JSON(http.StatusCreated, n)
}

// MarkNotificationsRead handles PATCH /api/notifications.
func (h *Handler) MarkNotificationsRead(c *gin.Context) {
	n, err := h.store.MarkAllNotificationsRead(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "updated": n})
}
