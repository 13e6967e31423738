package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/klsociety/governance-records-api/internal/authz"
	"github.com/klsociety/governance-records-api/internal/constants"
	"github.com/klsociety/governance-records-api/internal/models"
	"github.com/klsociety/governance-records-api/internal/repository"
	"github.com/klsociety/governance-records-api/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInstituteNotFound    = errors.New("institute not found")
	ErrInstituteNameMissing = errors.New("institute name is required")
	ErrInstituteCodeTaken   = errors.New("institute code already in use")
)

// InstituteService provides business logic for institute operations.
type InstituteService struct {
	instituteRepo repository.InstituteRepository
}

// NewInstituteService creates a new InstituteService.
func NewInstituteService(instituteRepo repository.InstituteRepository) *InstituteService {
	return &InstituteService{instituteRepo: instituteRepo}
}

// CreateInstituteInput represents parameters to create an institute,
// optionally provisioning its admin account in the same operation.
type CreateInstituteInput struct {
	Name          string
	Phone         string
	Code          string
	AdminEmail    string
	AdminPassword string
}

// CreateInstitute creates an institute; only global admins may.
func (s *InstituteService) CreateInstitute(identity authz.Identity, input CreateInstituteInput) (*models.Institute, error) {
	if !authz.CanManageInstitutes(identity) {
		return nil, ErrPermissionDenied
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrInstituteNameMissing
	}

	institute := &models.Institute{
		Name:  input.Name,
		Phone: input.Phone,
		Code:  input.Code,
	}

	if input.AdminEmail == "" {
		if err := s.instituteRepo.Create(institute); err != nil {
			return nil, fmt.Errorf("failed to create institute: %w", err)
		}
		return institute, nil
	}

	if len(input.AdminPassword) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	admin := &models.User{
		Username:     input.AdminEmail,
		PasswordHash: string(hashedPassword),
	}

	if err := s.instituteRepo.CreateWithAdmin(institute, admin); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create institute with admin: %w", err)
	}

	return institute, nil
}

// ListInstitutes returns institutes with pagination. Any authenticated
// caller may read the institute directory.
func (s *InstituteService) ListInstitutes(params utils.PaginationParams) ([]models.Institute, int64, error) {
	institutes, total, err := s.instituteRepo.List(params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list institutes: %w", err)
	}
	return institutes, total, nil
}

// GetInstitute returns an institute by ID.
func (s *InstituteService) GetInstitute(id uint64) (*models.Institute, error) {
	institute, err := s.instituteRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInstituteNotFound
		}
		return nil, fmt.Errorf("failed to find institute: %w", err)
	}
	return institute, nil
}

// UpdateInstituteInput represents fields that may be updated.
type UpdateInstituteInput struct {
	Name  *string
	Phone *string
	Code  *string
}

// UpdateInstitute updates an institute; only global admins may.
func (s *InstituteService) UpdateInstitute(identity authz.Identity, id uint64, input UpdateInstituteInput) (*models.Institute, error) {
	if !authz.CanManageInstitutes(identity) {
		return nil, ErrPermissionDenied
	}

	institute, err := s.instituteRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInstituteNotFound
		}
		return nil, fmt.Errorf("failed to find institute: %w", err)
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrInstituteNameMissing
		}
		institute.Name = *input.Name
	}
	if input.Phone != nil {
		institute.Phone = *input.Phone
	}
	if input.Code != nil {
		institute.Code = *input.Code
	}

	if err := s.instituteRepo.Update(institute); err != nil {
		return nil, fmt.Errorf("failed to update institute: %w", err)
	}

	return institute, nil
}

// DeleteInstitute removes an institute; only global admins may.
func (s *InstituteService) DeleteInstitute(identity authz.Identity, id uint64) error {
	if !authz.CanManageInstitutes(identity) {
		return ErrPermissionDenied
	}

	if _, err := s.instituteRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInstituteNotFound
		}
		return fmt.Errorf("failed to find institute: %w", err)
	}

	if err := s.instituteRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete institute: %w", err)
	}

	return nil
}
