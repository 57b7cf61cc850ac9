package handler

import (
	numberingapp "github.com/erp/backoffice/internal/application/numbering"
	"github.com/erp/backoffice/internal/domain/numbering"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// NumberingSettingsHandler handles numbering settings API endpoints
type NumberingSettingsHandler struct {
	BaseHandler
	settingsService *numberingapp.SettingsService
}

// NewNumberingSettingsHandler creates a new NumberingSettingsHandler
func NewNumberingSettingsHandler(settingsService *numberingapp.SettingsService) *NumberingSettingsHandler {
	return &NumberingSettingsHandler{
		settingsService: settingsService,
	}
}

// RegisterRoutes registers the numbering settings routes
func (h *NumberingSettingsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	settings := rg.Group("/numbering-settings")
	{
		settings.PUT("", h.Upsert)
		settings.GET("/:documentType/effective", h.GetEffective)
	}
}

// Upsert handles PUT /numbering-settings
func (h *NumberingSettingsHandler) Upsert(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.BadRequest(c, "Invalid organization ID")
		return
	}

	var req numberingapp.UpsertSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	settings, err := h.settingsService.Upsert(c.Request.Context(), organizationID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, settings)
}

// GetEffective handles GET /numbering-settings/:documentType/effective.
// The optional company_id query parameter resolves the company scope.
func (h *NumberingSettingsHandler) GetEffective(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.BadRequest(c, "Invalid organization ID")
		return
	}

	documentType := numbering.DocumentType(c.Param("documentType"))

	var companyID *uuid.UUID
	if raw := c.Query("company_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid company ID format")
			return
		}
		companyID = &parsed
	}

	settings, err := h.settingsService.ResolveEffective(c.Request.Context(), organizationID, documentType, companyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, settings)
}
