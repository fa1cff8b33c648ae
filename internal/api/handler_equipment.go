package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"mill-maintenance-backend/internal/model"
)

type equipmentRequest struct {
	GroupName        string      `json:"groupName"`
	EquipmentName    string      `json:"equipmentName"`
	DowntimeMinutes  flexInt     `json:"downtimeMinutes"`
	TotalProduction  flexInt     `json:"totalProduction"`
	ChangeDate       model.Date  `json:"changeDate"`
	ProductionImpact string      `json:"productionImpact"`
	DowntimeCategory *string     `json:"downtimeCategory"`
	MaintenanceCost  flexDecimal `json:"maintenanceCost"`
	SparePartUsed    *string     `json:"sparePartUsed"`
	TechnicianName   *string     `json:"technicianName"`
	Remark           *string     `json:"remark"`
}

func bindEquipment(c *gin.Context) (*model.EquipmentRecord, bool) {
	var req equipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request: "+err.Error())
		return nil, false
	}

	var missing []string
	if strings.TrimSpace(req.GroupName) == "" {
		missing = append(missing, "groupName")
	}
	if strings.TrimSpace(req.EquipmentName) == "" {
		missing = append(missing, "equipmentName")
	}
	if req.ChangeDate.IsZero() {
		missing = append(missing, "changeDate")
	}
	if len(missing) > 0 {
		badRequest(c, strings.Join(missing, ", ")+" required")
		return nil, false
	}

	impact, err := model.ParseProductionImpact(req.ProductionImpact)
	if err != nil {
		badRequest(c, err.Error())
		return nil, false
	}

	return &model.EquipmentRecord{
		GroupName:        strings.TrimSpace(req.GroupName),
		EquipmentName:    strings.TrimSpace(req.EquipmentName),
		DowntimeMinutes:  req.DowntimeMinutes.Int64,
		TotalProduction:  req.TotalProduction.Int64,
		ChangeDate:       req.ChangeDate,
		ProductionImpact: impact,
		DowntimeCategory: trimmed(req.DowntimeCategory),
		MaintenanceCost:  req.MaintenanceCost.Null(),
		SparePartUsed:    trimmed(req.SparePartUsed),
		TechnicianName:   trimmed(req.TechnicianName),
		Remark:           trimmed(req.Remark),
	}, true
}

// ListEquipment handles GET /api/equipment-records.
func (h *Handler) ListEquipment(c *gin.Context) {
	records, err := h.store.ListEquipment(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// GetEquipment handles GET /api/equipment-records/{id}.
func (h *Handler) GetEquipment(c *gin.Context) {
	e, err := h.store.GetEquipment(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// CreateEquipment handles POST /api/equipment-records.
func (h *Handler) CreateEquipment(c *gin.Context) {
	e, ok := bindEquipment(c)
	if !ok {
		return
	}

	note := &model.Notification{
		Type:    model.NotificationInfo,
		Title:   "Equipment maintenance logged",
		Message: fmt.Sprintf("%s (%s) on %s, %d min downtime", e.EquipmentName, e.GroupName, e.ChangeDate, e.DowntimeMinutes),
	}
	if e.ProductionImpact == model.ImpactYes {
		note.Type = model.NotificationAlert
		note.Title = "Equipment downtime hit production"
	}
	if err := h.store.CreateEquipment(c.Request.Context(), e, note); err != nil {
		h.fail(c, err)
		return
	}
	h.notify(note.ID)
	c.JSON(http.StatusCreated, e)
}

// UpdateEquipment handles PUT /api/equipment-records/{id}. Every field is overwritten.
func (h *Handler) UpdateEquipment(c *gin.Context) {
	e, ok := bindEquipment(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	e.ID = c.Param("id")
	if err := h.store.UpdateEquipment(ctx, e); err != nil {
		h.fail(c, err)
		return
	}
	updated, err := h.store.GetEquipment(ctx, e.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteEquipment handles DELETE /api/equipment-records/{id}.
func (h *Handler) DeleteEquipment(c *gin.Context) {
	if err := h.store.DeleteEquipment(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
