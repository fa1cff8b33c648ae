package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"mill-maintenance-backend/internal/model"
	"mill-maintenance-backend/internal/store"
)

type masterDataRequest struct {
	Category model.MasterCategory `json:"category"`
	Value    string               `json:"value"`
	IsActive *bool                `json:"isActive"`
}

type masterDataPatchRequest struct {
	Value    *string `json:"value"`
	IsActive *bool   `json:"isActive"`
}

// ListMasterData handles GET /api/master-data[?category=].
func (h *Handler) ListMasterData(c *gin.Context) {
	category := model.MasterCategory(strings.ToUpper(c.Query("category")))
	if category != "" && !category.Valid() {
		badRequest(c, "unknown category "+string(category))
		return
	}
	rows, err := h.store.ListMasterData(c.Request.Context(), category)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// CreateMasterData handles POST /api/master-data. New values are active unless stated otherwise.
func (h *Handler) CreateMasterData(c *gin.Context) {
	var req masterDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request: "+err.Error())
		return
	}
	req.Category = model.MasterCategory(strings.ToUpper(string(req.Category)))
	if !req.Category.Valid() {
		badRequest(c, "category must be one of MACHINE_SECTION, EQUIPMENT_NAME, WIRE_TYPE, PARTY_NAME")
		return
	}
	value := strings.TrimSpace(req.Value)
	if value == "" {
		badRequest(c, "value is required")
		return
	}

	m := &model.MasterData{Category: req.Category, Value: value, IsActive: true}
	if req.IsActive != nil {
		m.IsActive = *req.IsActive
	}
	if err := h.store.CreateMasterData(c.Request.Context(), m); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

// PatchMasterData handles PATCH /api/master-data/{id}: rename and/or toggle.
func (h *Handler) PatchMasterData(c *gin.Context) {
	id := idParam(c)
	if id == "" {
		badRequest(c, "id is required")
		return
	}
	var req masterDataPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request: "+err.Error())
		return
	}
	if req.Value == nil && req.IsActive == nil {
		badRequest(c, "value or isActive is required")
		return
	}
	if req.Value != nil {
		v := strings.TrimSpace(*req.Value)
		if v == "" {
			badRequest(c, "value must not be empty")
			return
		}
		req.Value = &v
	}

	m, err := h.store.PatchMasterData(c.Request.Context(), id, store.MasterDataPatch{Value: req.Value, IsActive: req.IsActive})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// DeleteMasterData handles DELETE /api/master-data/{id}.
func (h *Handler) DeleteMasterData(c *gin.Context) {
	id := idParam(c)
	if id == "" {
		badRequest(c, "id is required")
		return
	}
	if err := h.store.DeleteMasterData(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
