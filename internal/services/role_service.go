package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/klsociety/governance-records-api/internal/authz"
	"github.com/klsociety/governance-records-api/internal/models"
	"github.com/klsociety/governance-records-api/internal/repository"
	"gorm.io/gorm"
)

var ErrRoleNameMissing = errors.New("role name is required")

// RoleService provides business logic for the static role reference data.
type RoleService struct {
	roleRepo repository.RoleRepository
}

// NewRoleService creates a new RoleService.
func NewRoleService(roleRepo repository.RoleRepository) *RoleService {
	return &RoleService{roleRepo: roleRepo}
}

// ListRoles returns all roles. Any authenticated caller may read them.
func (s *RoleService) ListRoles() ([]models.Role, error) {
	roles, err := s.roleRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	return roles, nil
}

// GetRole returns a role by ID.
func (s *RoleService) GetRole(id uint64) (*models.Role, error) {
	role, err := s.roleRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, fmt.Errorf("failed to find role: %w", err)
	}
	return role, nil
}

// CreateRole creates a role; only global admins may.
func (s *RoleService) CreateRole(identity authz.Identity, name string) (*models.Role, error) {
	if !authz.CanManageRoles(identity) {
		return nil, ErrPermissionDenied
	}
	if strings.TrimSpace(name) == "" {
		return nil, ErrRoleNameMissing
	}

	role := &models.Role{Name: name}
	if err := s.roleRepo.Create(role); err != nil {
		return nil, fmt.Errorf("failed to create role: %w", err)
	}

	return role, nil
}

// UpdateRole renames a role; only global admins may.
func (s *RoleService) UpdateRole(identity authz.Identity, id uint64, name string) (*models.Role, error) {
	if !authz.CanManageRoles(identity) {
		return nil, ErrPermissionDenied
	}
	if strings.TrimSpace(name) == "" {
		return nil, ErrRoleNameMissing
	}

	role, err := s.roleRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, fmt.Errorf("failed to find role: %w", err)
	}

	role.Name = name
	if err := s.roleRepo.Update(role); err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}

	return role, nil
}

// DeleteRole removes a role and its assignments; only global admins may.
func (s *RoleService) DeleteRole(identity authz.Identity, id uint64) error {
	if !authz.CanManageRoles(identity) {
		return ErrPermissionDenied
	}

	if _, err := s.roleRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoleNotFound
		}
		return fmt.Errorf("failed to find role: %w", err)
	}

	if err := s.roleRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete role: %w", err)
	}

	return nil
}
