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

type ClientHandler struct {
	clientService *services.ClientService
}

func NewClientHandler(clientService *services.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// ListClients returns clients with pagination
func (h *ClientHandler) ListClients(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	clients, total, err := h.clientService.ListClients(params.Offset, params.Limit)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch clients")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"clients": clients,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetClient returns a specific client by ID
func (h *ClientHandler) GetClient(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid client id")
		return
	}

	client, err := h.clientService.GetClient(id)
	if err != nil {
		if errors.Is(err, services.ErrClientNotFound) {
			apierrors.NotFound(c, err.Error())
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, client)
}

// CreateClient creates a new client
func (h *ClientHandler) CreateClient(c *gin.Context) {
	type CreateClientRequest struct {
		Name         string `json:"name" binding:"required"`
		ContactEmail string `json:"contact_email"`
	}

	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	client, err := h.clientService.CreateClient(services.CreateClientInput{
		Name:         req.Name,
		ContactEmail: req.ContactEmail,
	})
	if err != nil {
		if errors.Is(err, services.ErrClientNameRequired) {
			apierrors.BadRequest(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to create client")
		return
	}

	c.JSON(http.StatusCreated, client)
}

// UpdateClient updates an existing client
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid client id")
		return
	}

	type UpdateClientRequest struct {
		Name         *string              `json:"name"`
		ContactEmail *string              `json:"contact_email"`
		Status       *models.ClientStatus `json:"status"`
	}

	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	client, err := h.clientService.UpdateClient(id, services.UpdateClientInput{
		Name:         req.Name,
		ContactEmail: req.ContactEmail,
		Status:       req.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrClientNotFound):
			apierrors.NotFound(c, err.Error())
		case errors.Is(err, services.ErrClientNameRequired):
			apierrors.BadRequest(c, err.Error())
		default:
			apierrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, client)
}

// DeleteClient soft deletes a client
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid client id")
		return
	}

	if err := h.clientService.DeleteClient(id); err != nil {
		if errors.Is(err, services.ErrClientNotFound) {
			apierrors.NotFound(c, err.Error())
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Client deleted"})
}
