package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/klsociety/governance-records-api/internal/authz"
	"github.com/klsociety/governance-records-api/internal/models"
	"github.com/klsociety/governance-records-api/internal/repository"
	"github.com/klsociety/governance-records-api/internal/utils"
	"gorm.io/gorm"
)

var ErrBOMResolutionNotFound = errors.New("bom resolution not found")

// BOMResolutionService provides business logic for BOM resolution
// operations. BOM resolutions are society-wide; writes are admin only.
type BOMResolutionService struct {
	bomRepo  repository.BOMResolutionRepository
	resolver *authz.Resolver
}

// NewBOMResolutionService creates a new BOMResolutionService.
func NewBOMResolutionService(bomRepo repository.BOMResolutionRepository, resolver *authz.Resolver) *BOMResolutionService {
	return &BOMResolutionService{
		bomRepo:  bomRepo,
		resolver: resolver,
	}
}

// ListBOMResolutions returns the resolutions visible to the caller. For
// scoped callers, visibility follows the linked GC resolution's institute.
func (s *BOMResolutionService) ListBOMResolutions(identity authz.Identity, params utils.PaginationParams) ([]models.BOMResolution, int64, error) {
	scope, err := s.resolver.Scope(identity)
	if err != nil {
		return nil, 0, err
	}

	resolutions, total, err := s.bomRepo.List(repository.ResolutionFilter{
		Scope:      scope,
		Pagination: params,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bom resolutions: %w", err)
	}

	return resolutions, total, nil
}

// GetBOMResolution returns a resolution the caller may see.
func (s *BOMResolutionService) GetBOMResolution(identity authz.Identity, id uint64) (*models.BOMResolution, error) {
	resolution, err := s.bomRepo.FindByID(id, "GCResolution", "GCResolution.Institute")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBOMResolutionNotFound
		}
		return nil, fmt.Errorf("failed to find bom resolution: %w", err)
	}

	scope, err := s.resolver.Scope(identity)
	if err != nil {
		return nil, err
	}
	if !scopeContains(scope, resolution.GCResolution.InstituteID) {
		return nil, ErrBOMResolutionNotFound
	}

	return resolution, nil
}

// CreateBOMResolutionInput represents input for creating a BOM resolution.
type CreateBOMResolutionInput struct {
	Agenda         string
	Resolution     string
	Compliance     string
	GCResolutionID uint64
	BOMDate        time.Time
}

// CreateBOMResolution creates a resolution; only global admins may.
func (s *BOMResolutionService) CreateBOMResolution(identity authz.Identity, input CreateBOMResolutionInput) (*models.BOMResolution, error) {
	if !authz.CanManageBOM(identity) {
		return nil, ErrPermissionDenied
	}
	if input.Agenda == "" {
		return nil, ErrAgendaRequired
	}
	if input.Resolution == "" {
		return nil, ErrResolutionRequired
	}

	resolution := &models.BOMResolution{
		Agenda:         input.Agenda,
		Resolution:     input.Resolution,
		Compliance:     input.Compliance,
		GCResolutionID: input.GCResolutionID,
		BOMDate:        input.BOMDate,
	}

	if err := s.bomRepo.CreateNumbered(resolution); err != nil {
		return nil, mapBOMWriteError(err)
	}

	return resolution, nil
}

// UpdateBOMResolutionInput represents fields that may be updated.
type UpdateBOMResolutionInput struct {
	Agenda     *string
	Resolution *string
	Compliance *string
	BOMDate    *time.Time
}

// UpdateBOMResolution updates a resolution; only global admins may. A
// changed date regenerates the resolution number.
func (s *BOMResolutionService) UpdateBOMResolution(identity authz.Identity, id uint64, input UpdateBOMResolutionInput) (*models.BOMResolution, error) {
	if !authz.CanManageBOM(identity) {
		return nil, ErrPermissionDenied
	}

	resolution, err := s.bomRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBOMResolutionNotFound
		}
		return nil, fmt.Errorf("failed to find bom resolution: %w", err)
	}

	if input.Agenda != nil {
		if *input.Agenda == "" {
			return nil, ErrAgendaRequired
		}
		resolution.Agenda = *input.Agenda
	}
	if input.Resolution != nil {
		if *input.Resolution == "" {
			return nil, ErrResolutionRequired
		}
		resolution.Resolution = *input.Resolution
	}
	if input.Compliance != nil {
		resolution.Compliance = *input.Compliance
	}

	dateChanged := input.BOMDate != nil && !resolution.BOMDate.Equal(*input.BOMDate)
	if dateChanged {
		resolution.BOMDate = *input.BOMDate
	}

	if err := s.bomRepo.UpdateNumbered(resolution, dateChanged); err != nil {
		return nil, mapBOMWriteError(err)
	}

	return resolution, nil
}

// DeleteBOMResolution removes a resolution; only global admins may.
func (s *BOMResolutionService) DeleteBOMResolution(identity authz.Identity, id uint64) error {
	if !authz.CanManageBOM(identity) {
		return ErrPermissionDenied
	}

	if _, err := s.bomRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBOMResolutionNotFound
		}
		return fmt.Errorf("failed to find bom resolution: %w", err)
	}

	if err := s.bomRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete bom resolution: %w", err)
	}

	return nil
}

func mapBOMWriteError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateResolutionNumber
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrGCResolutionNotFound
	default:
		return fmt.Errorf("failed to write bom resolution: %w", err)
	}
}
