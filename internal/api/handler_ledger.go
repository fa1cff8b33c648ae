package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mill-maintenance-backend/internal/model"
)

type ledgerRequest struct {
	Date   model.Date  `json:"date"`
	Amount flexDecimal `json:"amount"`
	Remark *string     `json:"remark"`
}

// ListLedger handles GET /api/{production|dispatch|stock}.
func (h *Handler) ListLedger(kind model.LedgerKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, err := h.store.ListLedger(c.Request.Context(), kind)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, entries)
	}
}

// CreateLedger handles POST /api/{production|dispatch|stock}.
func (h *Handler) CreateLedger(kind model.LedgerKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ledgerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request: "+err.Error())
			return
		}
		if req.Date.IsZero() || !req.Amount.Valid {
			badRequest(c, "date and amount are required")
			return
		}

		entry := &model.LedgerEntry{Date: req.Date, Amount: req.Amount.Decimal, Remark: trimmed(req.Remark)}
		if err := h.store.CreateLedger(c.Request.Context(), kind, entry); err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, entry)
	}
}

// DeleteLedger handles DELETE /api/{production|dispatch|stock}/{id}.
func (h *Handler) DeleteLedger(kind model.LedgerKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h.store.DeleteLedger(c.Request.Context(), kind, idParam(c)); err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
