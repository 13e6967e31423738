package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/klsociety/governance-records-api/internal/authz"
	"github.com/klsociety/governance-records-api/internal/models"
	"github.com/klsociety/governance-records-api/internal/numbering"
	"github.com/klsociety/governance-records-api/internal/repository"
	"github.com/klsociety/governance-records-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrGCResolutionNotFound = errors.New("gc resolution not found")
	ErrAgendaRequired       = errors.New("agenda is required")
	ErrResolutionRequired   = errors.New("resolution text is required")
	// ErrDuplicateResolutionNumber surfaces the unique-constraint backstop
	// when two creations race on the same scope and date. The caller retries;
	// the service never does.
	ErrDuplicateResolutionNumber = errors.New("resolution number already exists, please retry")
)

// GCResolutionService provides business logic for GC resolution operations.
type GCResolutionService struct {
	gcRepo   repository.GCResolutionRepository
	resolver *authz.Resolver
}

// NewGCResolutionService creates a new GCResolutionService.
func NewGCResolutionService(gcRepo repository.GCResolutionRepository, resolver *authz.Resolver) *GCResolutionService {
	return &GCResolutionService{
		gcRepo:   gcRepo,
		resolver: resolver,
	}
}

// ListGCResolutions returns the resolutions visible to the caller.
func (s *GCResolutionService) ListGCResolutions(identity authz.Identity, params utils.PaginationParams) ([]models.GCResolution, int64, error) {
	scope, err := s.resolver.Scope(identity)
	if err != nil {
		return nil, 0, err
	}

	resolutions, total, err := s.gcRepo.List(repository.ResolutionFilter{
		Scope:      scope,
		Pagination: params,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list gc resolutions: %w", err)
	}

	return resolutions, total, nil
}

// GetGCResolution returns a resolution the caller may see. Out-of-scope rows
// read as not found rather than forbidden, so their existence is not leaked.
func (s *GCResolutionService) GetGCResolution(identity authz.Identity, id uint64) (*models.GCResolution, error) {
	resolution, err := s.gcRepo.FindByID(id, "Institute")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGCResolutionNotFound
		}
		return nil, fmt.Errorf("failed to find gc resolution: %w", err)
	}

	scope, err := s.resolver.Scope(identity)
	if err != nil {
		return nil, err
	}
	if !scopeContains(scope, resolution.InstituteID) {
		return nil, ErrGCResolutionNotFound
	}

	return resolution, nil
}

// CreateGCResolutionInput represents input for creating a GC resolution.
// Any institute in the payload is ignored; creation is always scoped to the
// caller's own institute.
type CreateGCResolutionInput struct {
	Agenda     string
	Resolution string
	Compliance string
	GCDate     time.Time
}

// CreateGCResolution creates a resolution for the caller's institute. Only
// institute admins may create GC resolutions.
func (s *GCResolutionService) CreateGCResolution(identity authz.Identity, input CreateGCResolutionInput) (*models.GCResolution, error) {
	if !authz.CanCreateGC(identity) {
		return nil, ErrPermissionDenied
	}
	if input.Agenda == "" {
		return nil, ErrAgendaRequired
	}
	if input.Resolution == "" {
		return nil, ErrResolutionRequired
	}

	resolution := &models.GCResolution{
		Agenda:      input.Agenda,
		Resolution:  input.Resolution,
		Compliance:  input.Compliance,
		InstituteID: identity.InstituteID,
		GCDate:      input.GCDate,
	}

	if err := s.gcRepo.CreateNumbered(resolution); err != nil {
		return nil, mapGCWriteError(err)
	}

	return resolution, nil
}

// UpdateGCResolutionInput represents fields that may be updated. A changed
// date regenerates the resolution number; nothing else touches it.
type UpdateGCResolutionInput struct {
	Agenda     *string
	Resolution *string
	Compliance *string
	GCDate     *time.Time
}

// UpdateGCResolution updates a resolution. Admins may update any; institute
// admins only their own institute's.
func (s *GCResolutionService) UpdateGCResolution(identity authz.Identity, id uint64, input UpdateGCResolutionInput) (*models.GCResolution, error) {
	resolution, err := s.gcRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGCResolutionNotFound
		}
		return nil, fmt.Errorf("failed to find gc resolution: %w", err)
	}

	if !authz.CanMutateGC(identity, resolution) {
		return nil, ErrPermissionDenied
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

	dateChanged := input.GCDate != nil && !resolution.GCDate.Equal(*input.GCDate)
	if dateChanged {
		resolution.GCDate = *input.GCDate
	}

	if err := s.gcRepo.UpdateNumbered(resolution, dateChanged); err != nil {
		return nil, mapGCWriteError(err)
	}

	return resolution, nil
}

// DeleteGCResolution removes a resolution under the same rules as update.
func (s *GCResolutionService) DeleteGCResolution(identity authz.Identity, id uint64) error {
	resolution, err := s.gcRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGCResolutionNotFound
		}
		return fmt.Errorf("failed to find gc resolution: %w", err)
	}

	if !authz.CanMutateGC(identity, resolution) {
		return ErrPermissionDenied
	}

	if err := s.gcRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete gc resolution: %w", err)
	}

	return nil
}

func mapGCWriteError(err error) error {
	switch {
	case errors.Is(err, numbering.ErrMissingInstituteCode):
		return err
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateResolutionNumber
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrInstituteNotFound
	default:
		return fmt.Errorf("failed to write gc resolution: %w", err)
	}
}

func scopeContains(scope authz.Scope, instituteID uint64) bool {
	if scope.All {
		return true
	}
	for _, id := range scope.InstituteIDs {
		if id == instituteID {
			return true
		}
	}
	return false
}
