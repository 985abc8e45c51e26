package handlers

import (
	"errors"
	"net/http"

	"github.com/clientdesk/assignment-api/internal/constants"
	"github.com/clientdesk/assignment-api/internal/dto"
	apierrors "github.com/clientdesk/assignment-api/internal/errors"
	"github.com/clientdesk/assignment-api/internal/middleware"
	"github.com/clientdesk/assignment-api/internal/services"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Signup registers a new dashboard user and opens a session
func (h *AuthHandler) Signup(c *gin.Context) {
	type SignupRequest struct {
		Email    string `json:"email" binding:"required,email"`
		Name     string `json:"name"`
		Password string `json:"password" binding:"required"`
	}

	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	user, err := h.authService.Signup(services.SignupInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			apierrors.Conflict(c, err.Error())
		case errors.Is(err, services.ErrPasswordTooShort):
			apierrors.BadRequest(c, err.Error())
		default:
			apierrors.InternalError(c, "")
		}
		return
	}

	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, user.ID)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// Login authenticates a user and opens a session
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	user, err := h.authService.Login(services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			apierrors.Unauthorized(c, err.Error())
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, user.ID)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// Logout clears the session
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to clear session")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// GetCurrentUser returns the authenticated user
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			apierrors.NotFound(c, err.Error())
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}
