package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/klsociety/governance-records-api/internal/dto"
	apierrors "github.com/klsociety/governance-records-api/internal/errors"
	"github.com/klsociety/governance-records-api/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new member-tier account
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Username and password are required")
		return
	}

	user, err := h.authService.Register(services.RegisterInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUsernameTaken):
			apierrors.Conflict(c, err.Error())
		case errors.Is(err, services.ErrPasswordTooShort):
			apierrors.BadRequest(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to register user")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": dto.ToUserDTO(*user)})
}

// ValidateUser verifies credentials and issues a bearer token
func (h *AuthHandler) ValidateUser(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Username and password are required")
		return
	}

	result, err := h.authService.ValidateUser(services.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			apierrors.Unauthorized(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to validate user")
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token: result.Token,
		User:  dto.ToUserDTO(*result.User),
		Roles: result.Roles,
	})
}

// ForgotPassword issues a one-time password for the account. The response
// never carries the code; delivery happens out of band.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Username is required")
		return
	}

	if _, err := h.authService.ForgotPassword(req.Username); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			apierrors.NotFound(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to issue reset code")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reset code issued"})
}

// ResetPassword sets a new password after validating the one-time password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req struct {
		Username    string `json:"username" binding:"required"`
		Code        string `json:"code" binding:"required"`
		NewPassword string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Username, code, and new password are required")
		return
	}

	if err := h.authService.ResetPassword(req.Username, req.Code, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidOTP):
			apierrors.Unauthorized(c, err.Error())
		case errors.Is(err, services.ErrPasswordTooShort):
			apierrors.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrUserNotFound):
			apierrors.NotFound(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to reset password")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}

// ChangePassword sets a new password for the authenticated caller
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	var req struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Current and new password are required")
		return
	}

	if err := h.authService.ChangePassword(identity.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, services.ErrWrongPassword):
			apierrors.Unauthorized(c, err.Error())
		case errors.Is(err, services.ErrPasswordTooShort):
			apierrors.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrUserNotFound):
			apierrors.NotFound(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to change password")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}
