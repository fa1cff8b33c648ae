package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mill-maintenance-backend/internal/model"
	"mill-maintenance-backend/internal/store"
)

type configRequest struct {
	Key   string    `json:"key"`
	Value cellValue `json:"value"`
}

// ListConfig handles GET /api/system/config.
func (h *Handler) ListConfig(c *gin.Context) {
	rows, err := h.store.ListConfig(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// UpsertConfig handles POST /api/system/config.
func (h *Handler) UpsertConfig(c *gin.Context) {
	var req configRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request: "+err.Error())
		return
	}
	key := strings.TrimSpace(req.Key)
	if key == "" {
		badRequest(c, "key is required")
		return
	}

	row, err := h.store.UpsertConfig(c.Request.Context(), key, strings.TrimSpace(string(req.Value)))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

// Backup handles GET /api/system/backup and serves the snapshot as a download.
func (h *Handler) Backup(c *gin.Context) {
	note := &model.Notification{Type: model.NotificationInfo, Title: "Backup exported"}
	snap, err := h.store.Export(c.Request.Context(), note)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.log.Info("backup exported", zap.Int("records", snap.Count()))
	h.notify(note.ID)

	c.Header("Content-Disposition",
		fmt.Sprintf(`attachment; filename="maintenance-backup-%s.json"`, snap.Timestamp.Format("2006-01-02-150405")))
	c.JSON(http.StatusOK, snap)
}

// Restore handles POST /api/system/restore.
func (h *Handler) Restore(c *gin.Context) {
	var snap store.Snapshot
	if err := c.ShouldBindJSON(&snap); err != nil {
		badRequest(c, "invalid backup file: "+err.Error())
		return
	}
	if err := snap.Validate(); err != nil {
		h.fail(c, err)
		return
	}

	taken := "unknown time"
	if !snap.Timestamp.IsZero() {
		taken = snap.Timestamp.UTC().Format(time.RFC3339)
	}
	note := &model.Notification{
		Type:    model.NotificationSuccess,
		Title:   "System restored",
		Message: fmt.Sprintf("Restored %d records from the backup taken at %s", snap.Count(), taken),
	}
	if err := h.store.Restore(c.Request.Context(), &snap, note); err != nil {
		h.fail(c, err)
		return
	}
	h.notify(note.ID)
	c.JSON(http.StatusOK, gin.H{"success": true, "restored": snap.Count()})
}
