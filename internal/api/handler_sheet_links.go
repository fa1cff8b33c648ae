package api

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"mill-maintenance-backend/internal/model"
)

type sheetLinkRequest struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// ListSheetLinks handles GET /api/sheet-links.
func (h *Handler) ListSheetLinks(c *gin.Context) {
	links, err := h.store.ListSheetLinks(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, links)
}

// CreateSheetLink handles POST /api/sheet-links.
func (h *Handler) CreateSheetLink(c *gin.Context) {
	var req sheetLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request: "+err.Error())
		return
	}
	label, link := strings.TrimSpace(req.Label), strings.TrimSpace(req.URL)
	if label == "" || link == "" {
		badRequest(c, "label and url are required")
		return
	}
	if u, err := url.Parse(link); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		badRequest(c, "url must be an absolute http(s) address")
		return
	}

	l := &model.SheetLink{Label: label, URL: link}
	if err := h.store.CreateSheetLink(c.Request.Context(), l); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, l)
}

// DeleteSheetLink handles DELETE /api/sheet-links?id= (or /api/sheet-links/{id}).
func (h *Handler) DeleteSheetLink(c *gin.Context) {
	id := idParam(c)
	if id == "" {
		badRequest(c, "id is required")
		return
	}
	if err := h.store.DeleteSheetLink(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
