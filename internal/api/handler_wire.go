package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"mill-maintenance-backend/internal/model"
)

type wireRequest struct {
	MachineName              string      `json:"machineName"`
	WireType                 string      `json:"wireType"`
	PartyName                string      `json:"partyName"`
	ProductionAtInstallation flexInt     `json:"productionAtInstallation"`
	ProductionAtRemoval      flexInt     `json:"productionAtRemoval"`
	WireLifeMT               flexInt     `json:"wireLifeMT"`
	ExpectedLifeMT           flexInt     `json:"expectedLifeMT"`
	WireCost                 flexDecimal `json:"wireCost"`
	ChangeDate               model.Date  `json:"changeDate"`
	Remark                   *string     `json:"remark"`
}

func (r *wireRequest) validate() string {
	var missing []string
	if strings.TrimSpace(r.MachineName) == "" {
		missing = append(missing, "machineName")
	}
	if strings.TrimSpace(r.WireType) == "" {
		missing = append(missing, "wireType")
	}
	if strings.TrimSpace(r.PartyName) == "" {
		missing = append(missing, "partyName")
	}
	if !r.ProductionAtInstallation.Valid {
		missing = append(missing, "productionAtInstallation")
	}
	if r.ChangeDate.IsZero() {
		missing = append(missing, "changeDate")
	}
	if len(missing) > 0 {
		return strings.Join(missing, ", ") + " required"
	}
	return ""
}

// record builds the row. Wire life comes from ComputeLife: an explicit value
// wins over the derived one, and a removal reading below the installation
// reading leaves life null.
func (r *wireRequest) record() *model.WireRecord {
	install := r.ProductionAtInstallation.Int64
	removal := r.ProductionAtRemoval.Ptr()
	return &model.WireRecord{
		MachineName:              strings.TrimSpace(r.MachineName),
		WireType:                 strings.TrimSpace(r.WireType),
		PartyName:                strings.TrimSpace(r.PartyName),
		ProductionAtInstallation: install,
		ProductionAtRemoval:      removal,
		WireLifeMT:               model.ComputeLife(install, removal, r.WireLifeMT.Ptr()),
		ExpectedLifeMT:           r.ExpectedLifeMT.Ptr(),
		WireCost:                 r.WireCost.Null(),
		ChangeDate:               r.ChangeDate,
		Remark:                   trimmed(r.Remark),
	}
}

func bindWire(c *gin.Context) (*model.WireRecord, bool) {
	var req wireRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request: "+err.Error())
		return nil, false
	}
	if msg := req.validate(); msg != "" {
		badRequest(c, msg)
		return nil, false
	}
	return req.record(), true
}

// ListWires handles GET /api/wire-records.
func (h *Handler) ListWires(c *gin.Context) {
	wires, err := h.store.ListWires(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, wires)
}

// GetWire handles GET /api/wire-records/{id}.
func (h *Handler) GetWire(c *gin.Context) {
	w, err := h.store.GetWire(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

// CreateWire handles POST /api/wire-records.
func (h *Handler) CreateWire(c *gin.Context) {
	w, ok := bindWire(c)
	if !ok {
		return
	}

	note := &model.Notification{
		Type:    model.NotificationSuccess,
		Title:   "New wire installed",
		Message: fmt.Sprintf("%s wire from %s installed on %s (%s)", w.WireType, w.PartyName, w.MachineName, w.ChangeDate),
	}
	if !w.Active() {
		note.Type = model.NotificationInfo
		note.Title = "Wire change recorded"
	}
	if err := h.store.CreateWire(c.Request.Context(), w, note); err != nil {
		h.fail(c, err)
		return
	}
	h.notify(note.ID)
	c.JSON(http.StatusCreated, w)
}

// UpdateWire handles PUT /api/wire-records/{id}. Every field is overwritten.
func (h *Handler) UpdateWire(c *gin.Context) {
	w, ok := bindWire(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	existing, err := h.store.GetWire(ctx, c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	w.ID = existing.ID
	w.CreatedAt = existing.CreatedAt

	if err := h.store.UpdateWire(ctx, w); err != nil {
		h.fail(c, err)
		return
	}
	updated, err := h.store.GetWire(ctx, w.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteWire handles DELETE /api/wire-records/{id}.
func (h *Handler) DeleteWire(c *gin.Context) {
	if err := h.store.DeleteWire(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
