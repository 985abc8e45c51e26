package handlers

import (
	"errors"
	"net/http"
	"strconv"

	apierrors "github.com/clientdesk/assignment-api/internal/errors"
	"github.com/clientdesk/assignment-api/internal/models"
	"github.com/clientdesk/assignment-api/internal/services"
	"github.com/clientdesk/assignment-api/internal/utils"
	"github.com/gin-gonic/gin"
)

type TemplateHandler struct {
	templateService *services.TemplateService
}

func NewTemplateHandler(templateService *services.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

// ListTemplates returns templates with pagination
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	templates, total, err := h.templateService.ListTemplates(params.Offset, params.Limit)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch templates")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"templates": templates,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetTemplate returns a template with its site assets
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid template id")
		return
	}

	template, err := h.templateService.GetTemplate(id)
	if err != nil {
		if errors.Is(err, services.ErrTemplateNotFound) {
			apierrors.NotFound(c, err.Error())
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, template)
}

// CreateTemplate creates a template with nested site assets
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	type SiteAssetRequest struct {
		Type                        models.AssetType `json:"type" binding:"required"`
		Name                        string           `json:"name" binding:"required"`
		DefaultPostingFrequency     int              `json:"default_posting_frequency"`
		DefaultIdealDurationMinutes *int             `json:"default_ideal_duration_minutes"`
	}
	type CreateTemplateRequest struct {
		Name        string             `json:"name" binding:"required"`
		Description string             `json:"description"`
		SiteAssets  []SiteAssetRequest `json:"site_assets" binding:"required"`
	}

	var req CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	input := services.CreateTemplateInput{
		Name:        req.Name,
		Description: req.Description,
	}
	for _, asset := range req.SiteAssets {
		input.SiteAssets = append(input.SiteAssets, services.SiteAssetInput{
			Type:                        asset.Type,
			Name:                        asset.Name,
			DefaultPostingFrequency:     asset.DefaultPostingFrequency,
			DefaultIdealDurationMinutes: asset.DefaultIdealDurationMinutes,
		})
	}

	template, err := h.templateService.CreateTemplate(input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTemplateNameRequired),
			errors.Is(err, services.ErrTemplateNoAssets),
			errors.Is(err, services.ErrInvalidAssetType):
			apierrors.BadRequest(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to create template")
		}
		return
	}

	c.JSON(http.StatusCreated, template)
}
