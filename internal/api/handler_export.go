package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mill-maintenance-backend/internal/export"
	"mill-maintenance-backend/internal/model"
)

// Export handles GET /api/export/{dataset}?format=csv|xlsx.
func (h *Handler) Export(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	dataset := c.Param("dataset")

	var sheet *export.Sheet
	switch dataset {
	case "wire-records":
		wires, err := h.store.ListWires(ctx)
		if err != nil {
			h.fail(c, err)
			return
		}
		sheet = export.Wires(wires)
	case "equipment-records":
		records, err := h.store.ListEquipment(ctx)
		if err != nil {
			h.fail(c, err)
			return
		}
		sheet = export.Equipment(records)
	case string(model.LedgerProduction), string(model.LedgerDispatch), string(model.LedgerStock):
		kind := model.LedgerKind(dataset)
		entries, err := h.store.ListLedger(ctx, kind)
		if err != nil {
			h.fail(c, err)
			return
		}
		sheet = export.Ledger(kind, entries)
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("unknown export %q", dataset)})
		return
	}

	c.Header("Content-Type", format.ContentType())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, format.Filename(dataset, time.Now())))
	c.Status(http.StatusOK)
	if err := sheet.Write(c.Writer, format); err != nil {
		_ = c.Error(err)
		h.log.Error("failed to write export",
			zap.String("dataset", dataset),
			zap.String("format", string(format)),
			zap.Error(err),
		)
	}
}
