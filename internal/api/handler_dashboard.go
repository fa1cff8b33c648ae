package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mill-maintenance-backend/internal/model"
)

// Summary handles GET /api/dashboard/summary[?from=&to=].
func (h *Handler) Summary(c *gin.Context) {
	from, ok := queryDate(c, "from")
	if !ok {
		return
	}
	to, ok := queryDate(c, "to")
	if !ok {
		return
	}
	if from != nil && to != nil && to.Before(from.Time) {
		badRequest(c, "to must not be before from")
		return
	}

	sum, err := h.store.Summary(c.Request.Context(), from, to)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

func queryDate(c *gin.Context, name string) (*model.Date, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	d, err := model.ParseDate(raw)
	if err != nil {
		badRequest(c, name+" must be a YYYY-MM-DD date")
		return nil, false
	}
	return &d, true
}
