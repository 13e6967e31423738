package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/klsociety/governance-records-api/internal/dto"
	apierrors "github.com/klsociety/governance-records-api/internal/errors"
	"github.com/klsociety/governance-records-api/internal/models"
	"github.com/klsociety/governance-records-api/internal/services"
	"github.com/klsociety/governance-records-api/internal/utils"
)

type MemberRoleHandler struct {
	memberRoleService *services.MemberRoleService
}

func NewMemberRoleHandler(memberRoleService *services.MemberRoleService) *MemberRoleHandler {
	return &MemberRoleHandler{memberRoleService: memberRoleService}
}

// ListAssignments returns role assignments with pagination
func (h *MemberRoleHandler) ListAssignments(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	params := utils.GetPaginationParams(c)

	assignments, total, err := h.memberRoleService.ListAssignments(identity, params)
	if err != nil {
		if errors.Is(err, services.ErrPermissionDenied) {
			apierrors.Forbidden(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to fetch role assignments")
		return
	}

	c.JSON(http.StatusOK, dto.ToMemberRoleListResponse(assignments, params, total))
}

// GetAssignment returns a specific role assignment by ID
func (h *MemberRoleHandler) GetAssignment(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	assignment, err := h.memberRoleService.GetAssignment(identity, id)
	if err != nil {
		respondAssignmentError(c, err, "Failed to fetch role assignment")
		return
	}

	c.JSON(http.StatusOK, gin.H{"member_role": dto.ToMemberRoleDTO(*assignment)})
}

// UpdateAssignment updates an assignment's level, tenure, or status
func (h *MemberRoleHandler) UpdateAssignment(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Level  *string                  `json:"level"`
		Tenure *string                  `json:"tenure"`
		Status *models.MemberRoleStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	assignment, err := h.memberRoleService.UpdateAssignment(identity, id, services.UpdateAssignmentInput{
		Level:  req.Level,
		Tenure: req.Tenure,
		Status: req.Status,
	})
	if err != nil {
		respondAssignmentError(c, err, "Failed to update role assignment")
		return
	}

	c.JSON(http.StatusOK, gin.H{"member_role": dto.ToMemberRoleDTO(*assignment)})
}

// DeleteAssignment removes a role assignment
func (h *MemberRoleHandler) DeleteAssignment(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.memberRoleService.DeleteAssignment(identity, id); err != nil {
		respondAssignmentError(c, err, "Failed to delete role assignment")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Role assignment deleted"})
}

func respondAssignmentError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrPermissionDenied):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrMemberRoleNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, fallback)
	}
}
