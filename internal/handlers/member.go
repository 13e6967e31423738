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

type MemberHandler struct {
	memberService     *services.MemberService
	memberRoleService *services.MemberRoleService
}

func NewMemberHandler(memberService *services.MemberService, memberRoleService *services.MemberRoleService) *MemberHandler {
	return &MemberHandler{
		memberService:     memberService,
		memberRoleService: memberRoleService,
	}
}

// ListMembers returns the members visible to the caller
func (h *MemberHandler) ListMembers(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	params := utils.GetPaginationParams(c)

	members, total, err := h.memberService.ListMembers(identity, params)
	if err != nil {
		respondScopeError(c, err, "Failed to fetch members")
		return
	}

	c.JSON(http.StatusOK, dto.ToMemberListResponse(members, params, total))
}

// GetMember returns a specific member by ID
func (h *MemberHandler) GetMember(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	member, err := h.memberService.GetMember(identity, id)
	if err != nil {
		if errors.Is(err, services.ErrMemberNotFound) {
			apierrors.NotFound(c, err.Error())
			return
		}
		respondScopeError(c, err, "Failed to fetch member")
		return
	}

	c.JSON(http.StatusOK, gin.H{"member": dto.ToMemberDTO(*member)})
}

// CreateMember creates a member along with its user account
func (h *MemberHandler) CreateMember(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	var req struct {
		Name     string `json:"name" binding:"required"`
		Phone    string `json:"phone"`
		Address  string `json:"address"`
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Name, username, and password are required")
		return
	}

	member, err := h.memberService.CreateMember(identity, services.CreateMemberInput{
		Name:     req.Name,
		Phone:    req.Phone,
		Address:  req.Address,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPermissionDenied):
			apierrors.Forbidden(c, err.Error())
		case errors.Is(err, services.ErrMemberNameMissing),
			errors.Is(err, services.ErrPasswordTooShort):
			apierrors.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrUsernameTaken):
			apierrors.Conflict(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to create member")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"member": dto.ToMemberDTO(*member)})
}

// UpdateMember updates a member's profile
func (h *MemberHandler) UpdateMember(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Name    *string `json:"name"`
		Phone   *string `json:"phone"`
		Address *string `json:"address"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	member, err := h.memberService.UpdateMember(identity, id, services.UpdateMemberInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPermissionDenied):
			apierrors.Forbidden(c, err.Error())
		case errors.Is(err, services.ErrMemberNotFound):
			apierrors.NotFound(c, err.Error())
		case errors.Is(err, services.ErrMemberNameMissing):
			apierrors.BadRequest(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to update member")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"member": dto.ToMemberDTO(*member)})
}

// DeleteMember removes a member, its role assignments, and its account
func (h *MemberHandler) DeleteMember(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.memberService.DeleteMember(identity, id); err != nil {
		switch {
		case errors.Is(err, services.ErrPermissionDenied):
			apierrors.Forbidden(c, err.Error())
		case errors.Is(err, services.ErrMemberNotFound):
			apierrors.NotFound(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to delete member")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member deleted"})
}

// AssignRole inserts a role assignment, or updates level, tenure, and
// status when the member already holds the role at the same institute
func (h *MemberHandler) AssignRole(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	var req struct {
		MemberID    uint64                  `json:"member_id" binding:"required"`
		RoleID      uint64                  `json:"role_id" binding:"required"`
		InstituteID *uint64                 `json:"institute_id"`
		Level       string                  `json:"level"`
		Tenure      string                  `json:"tenure"`
		Status      models.MemberRoleStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Member ID and role ID are required")
		return
	}

	assignment, err := h.memberRoleService.AssignRole(identity, services.AssignRoleInput{
		MemberID:    req.MemberID,
		RoleID:      req.RoleID,
		InstituteID: req.InstituteID,
		Level:       req.Level,
		Tenure:      req.Tenure,
		Status:      req.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPermissionDenied):
			apierrors.Forbidden(c, err.Error())
		case errors.Is(err, services.ErrMemberNotFound),
			errors.Is(err, services.ErrRoleNotFound):
			apierrors.NotFound(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to assign role")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"member_role": dto.ToMemberRoleDTO(*assignment)})
}
