package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/clientdesk/assignment-api/internal/dto"
	apierrors "github.com/clientdesk/assignment-api/internal/errors"
	"github.com/clientdesk/assignment-api/internal/middleware"
	"github.com/clientdesk/assignment-api/internal/models"
	"github.com/clientdesk/assignment-api/internal/services"
	"github.com/clientdesk/assignment-api/internal/utils"
	"github.com/gin-gonic/gin"
)

type AssignmentHandler struct {
	assignmentService *services.AssignmentService
	syncService       *services.TemplateSyncService
}

func NewAssignmentHandler(assignmentService *services.AssignmentService, syncService *services.TemplateSyncService) *AssignmentHandler {
	return &AssignmentHandler{
		assignmentService: assignmentService,
		syncService:       syncService,
	}
}

// CreateAssignment onboards a client onto a template
func (h *AssignmentHandler) CreateAssignment(c *gin.Context) {
	type CreateAssignmentRequest struct {
		ClientID   uint64 `json:"client_id" binding:"required"`
		TemplateID uint64 `json:"template_id" binding:"required"`
	}

	var req CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	assignment, err := h.assignmentService.CreateAssignment(c.Request.Context(), services.CreateAssignmentInput{
		ClientID:   req.ClientID,
		TemplateID: req.TemplateID,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrClientNotFound):
			apierrors.NotFound(c, err.Error())
		case errors.Is(err, services.ErrTemplateNotFound):
			apierrors.NotFound(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to create assignment")
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToAssignmentDetailDTO(*assignment))
}

// GetAssignment returns the fully rehydrated assignment
func (h *AssignmentHandler) GetAssignment(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid assignment id")
		return
	}

	assignment, err := h.assignmentService.GetAssignment(id)
	if err != nil {
		if errors.Is(err, services.ErrAssignmentNotFound) {
			apierrors.NotFound(c, err.Error())
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToAssignmentDetailDTO(*assignment))
}

// ListAssignments returns assignments, optionally filtered by client
func (h *AssignmentHandler) ListAssignments(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	var clientID *uint64
	if raw := c.Query("client_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid client_id")
			return
		}
		clientID = &id
	}

	assignments, total, err := h.assignmentService.ListAssignments(clientID, params.Offset, params.Limit)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch assignments")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"assignments": assignments,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// AddTeamMember adds a user to an assignment's team
func (h *AssignmentHandler) AddTeamMember(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid assignment id")
		return
	}

	type AddTeamMemberRequest struct {
		UserID uint64                `json:"user_id" binding:"required"`
		Role   models.TeamMemberRole `json:"role"`
	}

	var req AddTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	member, err := h.assignmentService.AddTeamMember(services.AddTeamMemberInput{
		AssignmentID: id,
		UserID:       req.UserID,
		Role:         req.Role,
	})
	if err != nil {
		if errors.Is(err, services.ErrAssignmentNotFound) {
			apierrors.NotFound(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to add team member")
		return
	}

	c.JSON(http.StatusCreated, member)
}

// SyncTemplate reconciles the assignment against a target template. This is
// the boundary of the reconciliation engine: not-found failures map to
// symbolic 404 codes, anything else rolls back and maps to SYNC_FAILED.
func (h *AssignmentHandler) SyncTemplate(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid assignment id")
		return
	}

	type SyncTemplateRequest struct {
		NewTemplateID       uint64                  `json:"new_template_id" binding:"required"`
		Replacements        []services.AssetMapping `json:"replacements"`
		CommonAssetMappings []services.AssetMapping `json:"common_asset_mappings"`
		AutoArchiveOld      *bool                   `json:"auto_archive_old"`
	}

	var req SyncTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	autoArchive := true
	if req.AutoArchiveOld != nil {
		autoArchive = *req.AutoArchiveOld
	}

	input := services.SyncTemplateInput{
		AssignmentID:        id,
		NewTemplateID:       req.NewTemplateID,
		Replacements:        req.Replacements,
		CommonAssetMappings: req.CommonAssetMappings,
		AutoArchiveOld:      autoArchive,
	}
	if actorID, exists := middleware.GetUserID(c); exists {
		input.ActorID = &actorID
	}

	assignment, err := h.syncService.SyncTemplate(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAssignmentNotFound):
			apierrors.RespondWithError(c, http.StatusNotFound,
				apierrors.NewAPIError(apierrors.ErrCodeAssignmentNotFound, err.Error()))
		case errors.Is(err, services.ErrTemplateNotFound):
			apierrors.RespondWithError(c, http.StatusNotFound,
				apierrors.NewAPIError(apierrors.ErrCodeTemplateNotFound, err.Error()))
		default:
			apierrors.RespondWithError(c, http.StatusInternalServerError,
				apierrors.NewAPIError(apierrors.ErrCodeSyncFailed, err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAssignmentDetailDTO(*assignment))
}

// ListActivity returns the assignment's audit trail, newest first
func (h *AssignmentHandler) ListActivity(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid assignment id")
		return
	}

	params := utils.GetPaginationParams(c)

	entries, total, err := h.assignmentService.ListActivity(id, params.Offset, params.Limit)
	if err != nil {
		if errors.Is(err, services.ErrAssignmentNotFound) {
			apierrors.NotFound(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to fetch activity")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"activity": entries,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}
