package services

import (
	"errors"
	"fmt"

	"github.com/klsociety/governance-records-api/internal/authz"
	"github.com/klsociety/governance-records-api/internal/models"
	"github.com/klsociety/governance-records-api/internal/repository"
	"github.com/klsociety/governance-records-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrMemberRoleNotFound = errors.New("role assignment not found")
	ErrRoleNotFound       = errors.New("role not found")
)

// MemberRoleService provides business logic for role assignments. All
// operations are admin only.
type MemberRoleService struct {
	memberRoleRepo repository.MemberRoleRepository
	memberRepo     repository.MemberRepository
	roleRepo       repository.RoleRepository
}

// NewMemberRoleService creates a new MemberRoleService.
func NewMemberRoleService(memberRoleRepo repository.MemberRoleRepository, memberRepo repository.MemberRepository, roleRepo repository.RoleRepository) *MemberRoleService {
	return &MemberRoleService{
		memberRoleRepo: memberRoleRepo,
		memberRepo:     memberRepo,
		roleRepo:       roleRepo,
	}
}

// AssignRoleInput identifies an assignment by its natural key and carries
// the mutable fields.
type AssignRoleInput struct {
	MemberID    uint64
	RoleID      uint64
	InstituteID *uint64
	Level       string
	Tenure      string
	Status      models.MemberRoleStatus
}

// AssignRole inserts a role assignment, or updates level, tenure, and status
// when one already exists for the same (member, role, institute) triple.
func (s *MemberRoleService) AssignRole(identity authz.Identity, input AssignRoleInput) (*models.MemberRole, error) {
	if !authz.CanManageMembers(identity) {
		return nil, ErrPermissionDenied
	}

	if _, err := s.memberRepo.FindByID(input.MemberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find member: %w", err)
	}
	if _, err := s.roleRepo.FindByID(input.RoleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, fmt.Errorf("failed to find role: %w", err)
	}

	status := input.Status
	if status == "" {
		status = models.MemberRoleActive
	}

	assignment := &models.MemberRole{
		MemberID:    input.MemberID,
		RoleID:      input.RoleID,
		InstituteID: input.InstituteID,
		Level:       input.Level,
		Tenure:      input.Tenure,
		Status:      status,
	}

	if err := s.memberRoleRepo.Upsert(assignment); err != nil {
		return nil, fmt.Errorf("failed to assign role: %w", err)
	}

	return assignment, nil
}

// ListAssignments returns role assignments with pagination; admin only.
func (s *MemberRoleService) ListAssignments(identity authz.Identity, params utils.PaginationParams) ([]models.MemberRole, int64, error) {
	if !authz.CanManageMembers(identity) {
		return nil, 0, ErrPermissionDenied
	}

	assignments, total, err := s.memberRoleRepo.List(params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list role assignments: %w", err)
	}

	return assignments, total, nil
}

// GetAssignment returns a role assignment by ID; admin only.
func (s *MemberRoleService) GetAssignment(identity authz.Identity, id uint64) (*models.MemberRole, error) {
	if !authz.CanManageMembers(identity) {
		return nil, ErrPermissionDenied
	}

	assignment, err := s.memberRoleRepo.FindByID(id, "Member", "Role", "Institute")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberRoleNotFound
		}
		return nil, fmt.Errorf("failed to find role assignment: %w", err)
	}

	return assignment, nil
}

// UpdateAssignmentInput represents mutable assignment fields.
type UpdateAssignmentInput struct {
	Level  *string
	Tenure *string
	Status *models.MemberRoleStatus
}

// UpdateAssignment updates an assignment's level, tenure, or status; admin
// only. The natural key is immutable; reassignment goes through AssignRole.
func (s *MemberRoleService) UpdateAssignment(identity authz.Identity, id uint64, input UpdateAssignmentInput) (*models.MemberRole, error) {
	if !authz.CanManageMembers(identity) {
		return nil, ErrPermissionDenied
	}

	assignment, err := s.memberRoleRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberRoleNotFound
		}
		return nil, fmt.Errorf("failed to find role assignment: %w", err)
	}

	if input.Level != nil {
		assignment.Level = *input.Level
	}
	if input.Tenure != nil {
		assignment.Tenure = *input.Tenure
	}
	if input.Status != nil {
		assignment.Status = *input.Status
	}

	if err := s.memberRoleRepo.Update(assignment); err != nil {
		return nil, fmt.Errorf("failed to update role assignment: %w", err)
	}

	return assignment, nil
}

// DeleteAssignment removes a role assignment; admin only.
func (s *MemberRoleService) DeleteAssignment(identity authz.Identity, id uint64) error {
	if !authz.CanManageMembers(identity) {
		return ErrPermissionDenied
	}

	if _, err := s.memberRoleRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberRoleNotFound
		}
		return fmt.Errorf("failed to find role assignment: %w", err)
	}

	if err := s.memberRoleRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete role assignment: %w", err)
	}

	return nil
}
