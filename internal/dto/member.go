package dto

import (
	"time"

	"github.com/klsociety/governance-records-api/internal/models"
	"github.com/klsociety/governance-records-api/internal/utils"
)

// RoleDTO represents a role in API responses
type RoleDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"role_name"`
}

// MemberRoleDTO represents a role assignment in API responses
type MemberRoleDTO struct {
	ID          uint64                  `json:"id"`
	MemberID    uint64                  `json:"member_id"`
	RoleID      uint64                  `json:"role_id"`
	InstituteID *uint64                 `json:"institute_id"`
	Level       string                  `json:"level"`
	Tenure      string                  `json:"tenure"`
	Status      models.MemberRoleStatus `json:"status"`
	Role        *RoleDTO                `json:"role,omitempty"`
	Institute   *InstituteDTO           `json:"institute,omitempty"`
	Member      *MemberDTO              `json:"member,omitempty"`
}

// MemberDTO represents a member in API responses
type MemberDTO struct {
	ID        uint64          `json:"id"`
	Name      string          `json:"name"`
	Phone     string          `json:"phone"`
	Address   string          `json:"address"`
	UserID    uint64          `json:"user_id"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	User      *UserDTO        `json:"user,omitempty"`
	Roles     []MemberRoleDTO `json:"roles,omitempty"`
}

// MemberListResponse represents a paginated list of members
type MemberListResponse struct {
	Members    []MemberDTO              `json:"members"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// MemberRoleListResponse represents a paginated list of role assignments
type MemberRoleListResponse struct {
	Assignments []MemberRoleDTO          `json:"member_roles"`
	Pagination  utils.PaginationResponse `json:"pagination"`
}

// ToRoleDTO converts a Role model to RoleDTO
func ToRoleDTO(role models.Role) RoleDTO {
	return RoleDTO{
		ID:   role.ID,
		Name: role.Name,
	}
}

// ToMemberRoleDTO converts a MemberRole model to MemberRoleDTO
func ToMemberRoleDTO(assignment models.MemberRole) MemberRoleDTO {
	dto := MemberRoleDTO{
		ID:          assignment.ID,
		MemberID:    assignment.MemberID,
		RoleID:      assignment.RoleID,
		InstituteID: assignment.InstituteID,
		Level:       assignment.Level,
		Tenure:      assignment.Tenure,
		Status:      assignment.Status,
	}

	// Include role if preloaded
	if assignment.Role.ID != 0 {
		role := ToRoleDTO(assignment.Role)
		dto.Role = &role
	}

	// Include institute if preloaded
	if assignment.Institute != nil {
		institute := ToInstituteDTO(*assignment.Institute)
		dto.Institute = &institute
	}

	// Include member if preloaded
	if assignment.Member.ID != 0 {
		member := ToMemberDTO(assignment.Member)
		dto.Member = &member
	}

	return dto
}

// ToMemberDTO converts a Member model to MemberDTO
func ToMemberDTO(member models.Member) MemberDTO {
	dto := MemberDTO{
		ID:        member.ID,
		Name:      member.Name,
		Phone:     member.Phone,
		Address:   member.Address,
		UserID:    member.UserID,
		CreatedAt: member.CreatedAt,
		UpdatedAt: member.UpdatedAt,
	}

	// Include account if preloaded
	if member.User.ID != 0 {
		user := ToUserDTO(member.User)
		dto.User = &user
	}

	// Include role assignments if preloaded
	if len(member.Roles) > 0 {
		dto.Roles = make([]MemberRoleDTO, len(member.Roles))
		for i, assignment := range member.Roles {
			dto.Roles[i] = ToMemberRoleDTO(assignment)
		}
	}

	return dto
}

// ToMemberListResponse converts a slice of members to MemberListResponse
func ToMemberListResponse(members []models.Member, params utils.PaginationParams, total int64) MemberListResponse {
	items := make([]MemberDTO, len(members))
	for i, member := range members {
		items[i] = ToMemberDTO(member)
	}
	return MemberListResponse{
		Members: items,
		Pagination: utils.NewPagination(params, total),
	}
}

// ToMemberRoleListResponse converts a slice of assignments to MemberRoleListResponse
func ToMemberRoleListResponse(assignments []models.MemberRole, params utils.PaginationParams, total int64) MemberRoleListResponse {
	items := make([]MemberRoleDTO, len(assignments))
	for i, assignment := range assignments {
		items[i] = ToMemberRoleDTO(assignment)
	}
	return MemberRoleListResponse{
		Assignments: items,
		Pagination: utils.NewPagination(params, total),
	}
}
