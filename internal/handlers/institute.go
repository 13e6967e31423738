package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/klsociety/governance-records-api/internal/dto"
	apierrors "github.com/klsociety/governance-records-api/internal/errors"
	"github.com/klsociety/governance-records-api/internal/services"
	"github.com/klsociety/governance-records-api/internal/utils"
)

type InstituteHandler struct {
	instituteService *services.InstituteService
}

func NewInstituteHandler(instituteService *services.InstituteService) *InstituteHandler {
	return &InstituteHandler{instituteService: instituteService}
}

// ListInstitutes returns the institute directory with pagination
func (h *InstituteHandler) ListInstitutes(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	institutes, total, err := h.instituteService.ListInstitutes(params)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch institutes")
		return
	}

	c.JSON(http.StatusOK, dto.ToInstituteListResponse(institutes, params, total))
}

// GetInstitute returns a specific institute by ID
func (h *InstituteHandler) GetInstitute(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	institute, err := h.instituteService.GetInstitute(id)
	if err != nil {
		if errors.Is(err, services.ErrInstituteNotFound) {
			apierrors.NotFound(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to fetch institute")
		return
	}

	c.JSON(http.StatusOK, gin.H{"institute": dto.ToInstituteDTO(*institute)})
}

// CreateInstitute creates an institute, optionally provisioning its admin
// account in the same request
func (h *InstituteHandler) CreateInstitute(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	var req struct {
		Name          string `json:"name" binding:"required"`
		Phone         string `json:"phone"`
		Code          string `json:"code"`
		AdminEmail    string `json:"admin_email"`
		AdminPassword string `json:"admin_password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Institute name is required")
		return
	}

	institute, err := h.instituteService.CreateInstitute(identity, services.CreateInstituteInput{
		Name:          req.Name,
		Phone:         req.Phone,
		Code:          req.Code,
		AdminEmail:    req.AdminEmail,
		AdminPassword: req.AdminPassword,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPermissionDenied):
			apierrors.Forbidden(c, err.Error())
		case errors.Is(err, services.ErrInstituteNameMissing),
			errors.Is(err, services.ErrPasswordTooShort):
			apierrors.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrUsernameTaken):
			apierrors.Conflict(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to create institute")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"institute": dto.ToInstituteDTO(*institute)})
}

// UpdateInstitute updates an institute
func (h *InstituteHandler) UpdateInstitute(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Name  *string `json:"name"`
		Phone *string `json:"phone"`
		Code  *string `json:"code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	institute, err := h.instituteService.UpdateInstitute(identity, id, services.UpdateInstituteInput{
		Name:  req.Name,
		Phone: req.Phone,
		Code:  req.Code,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPermissionDenied):
			apierrors.Forbidden(c, err.Error())
		case errors.Is(err, services.ErrInstituteNotFound):
			apierrors.NotFound(c, err.Error())
		case errors.Is(err, services.ErrInstituteNameMissing):
			apierrors.BadRequest(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to update institute")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"institute": dto.ToInstituteDTO(*institute)})
}

// DeleteInstitute removes an institute along with its accounts and
// institute-scoped role assignments
func (h *InstituteHandler) DeleteInstitute(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.instituteService.DeleteInstitute(identity, id); err != nil {
		switch {
		case errors.Is(err, services.ErrPermissionDenied):
			apierrors.Forbidden(c, err.Error())
		case errors.Is(err, services.ErrInstituteNotFound):
			apierrors.NotFound(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to delete institute")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Institute deleted"})
}
