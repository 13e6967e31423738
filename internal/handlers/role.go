package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/klsociety/governance-records-api/internal/dto"
	apierrors "github.com/klsociety/governance-records-api/internal/errors"
	"github.com/klsociety/governance-records-api/internal/services"
)

type RoleHandler struct {
	roleService *services.RoleService
}

func NewRoleHandler(roleService *services.RoleService) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

// ListRoles returns all roles
func (h *RoleHandler) ListRoles(c *gin.Context) {
	roles, err := h.roleService.ListRoles()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch roles")
		return
	}

	items := make([]dto.RoleDTO, len(roles))
	for i, role := range roles {
		items[i] = dto.ToRoleDTO(role)
	}

	c.JSON(http.StatusOK, gin.H{"roles": items})
}

// GetRole returns a specific role by ID
func (h *RoleHandler) GetRole(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	role, err := h.roleService.GetRole(id)
	if err != nil {
		if errors.Is(err, services.ErrRoleNotFound) {
			apierrors.NotFound(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to fetch role")
		return
	}

	c.JSON(http.StatusOK, gin.H{"role": dto.ToRoleDTO(*role)})
}

// CreateRole creates a role
func (h *RoleHandler) CreateRole(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	var req struct {
		Name string `json:"role_name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Role name is required")
		return
	}

	role, err := h.roleService.CreateRole(identity, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPermissionDenied):
			apierrors.Forbidden(c, err.Error())
		case errors.Is(err, services.ErrRoleNameMissing):
			apierrors.BadRequest(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to create role")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"role": dto.ToRoleDTO(*role)})
}

// UpdateRole renames a role
func (h *RoleHandler) UpdateRole(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Name string `json:"role_name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Role name is required")
		return
	}

	role, err := h.roleService.UpdateRole(identity, id, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPermissionDenied):
			apierrors.Forbidden(c, err.Error())
		case errors.Is(err, services.ErrRoleNotFound):
			apierrors.NotFound(c, err.Error())
		case errors.Is(err, services.ErrRoleNameMissing):
			apierrors.BadRequest(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to update role")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"role": dto.ToRoleDTO(*role)})
}

// DeleteRole removes a role and its assignments
func (h *RoleHandler) DeleteRole(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.roleService.DeleteRole(identity, id); err != nil {
		switch {
		case errors.Is(err, services.ErrPermissionDenied):
			apierrors.Forbidden(c, err.Error())
		case errors.Is(err, services.ErrRoleNotFound):
			apierrors.NotFound(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to delete role")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Role deleted"})
}
