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

var ErrAGMNotFound = errors.New("agm not found")

// AGMService provides business logic for AGM records. Reads follow the
// caller's visibility scope; writes are admin only.
type AGMService struct {
	agmRepo  repository.AGMRepository
	resolver *authz.Resolver
}

// NewAGMService creates a new AGMService.
func NewAGMService(agmRepo repository.AGMRepository, resolver *authz.Resolver) *AGMService {
	return &AGMService{
		agmRepo:  agmRepo,
		resolver: resolver,
	}
}

// ListAGMs returns the AGMs visible to the caller, including society-wide
// meetings for scoped callers.
func (s *AGMService) ListAGMs(identity authz.Identity, params utils.PaginationParams) ([]models.AGM, int64, error) {
	scope, err := s.resolver.Scope(identity)
	if err != nil {
		return nil, 0, err
	}

	agms, total, err := s.agmRepo.List(repository.AGMFilter{
		Scope:      scope,
		Pagination: params,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list agms: %w", err)
	}

	return agms, total, nil
}

// GetAGM returns an AGM the caller may see.
func (s *AGMService) GetAGM(identity authz.Identity, id uint64) (*models.AGM, error) {
	agm, err := s.agmRepo.FindByID(id, "Institute")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAGMNotFound
		}
		return nil, fmt.Errorf("failed to find agm: %w", err)
	}

	scope, err := s.resolver.Scope(identity)
	if err != nil {
		return nil, err
	}
	if agm.InstituteID != nil && !scopeContains(scope, *agm.InstituteID) {
		return nil, ErrAGMNotFound
	}

	return agm, nil
}

// CreateAGMInput represents input for creating an AGM record. A nil
// institute marks a society-wide meeting.
type CreateAGMInput struct {
	MeetingDate time.Time
	InstituteID *uint64
	Agenda      string
	Venue       string
}

// CreateAGM creates an AGM record; only global admins may.
func (s *AGMService) CreateAGM(identity authz.Identity, input CreateAGMInput) (*models.AGM, error) {
	if !authz.CanManageAGMs(identity) {
		return nil, ErrPermissionDenied
	}
	if input.Agenda == "" {
		return nil, ErrAgendaRequired
	}

	agm := &models.AGM{
		MeetingDate: input.MeetingDate,
		InstituteID: input.InstituteID,
		Agenda:      input.Agenda,
		Venue:       input.Venue,
	}

	if err := s.agmRepo.Create(agm); err != nil {
		return nil, fmt.Errorf("failed to create agm: %w", err)
	}

	return agm, nil
}

// UpdateAGMInput represents fields that may be updated.
type UpdateAGMInput struct {
	MeetingDate *time.Time
	Agenda      *string
	Venue       *string
}

// UpdateAGM updates an AGM record; only global admins may.
func (s *AGMService) UpdateAGM(identity authz.Identity, id uint64, input UpdateAGMInput) (*models.AGM, error) {
	if !authz.CanManageAGMs(identity) {
		return nil, ErrPermissionDenied
	}

	agm, err := s.agmRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAGMNotFound
		}
		return nil, fmt.Errorf("failed to find agm: %w", err)
	}

	if input.MeetingDate != nil {
		agm.MeetingDate = *input.MeetingDate
	}
	if input.Agenda != nil {
		if *input.Agenda == "" {
			return nil, ErrAgendaRequired
		}
		agm.Agenda = *input.Agenda
	}
	if input.Venue != nil {
		agm.Venue = *input.Venue
	}

	if err := s.agmRepo.Update(agm); err != nil {
		return nil, fmt.Errorf("failed to update agm: %w", err)
	}

	return agm, nil
}

// DeleteAGM removes an AGM record; only global admins may.
func (s *AGMService) DeleteAGM(identity authz.Identity, id uint64) error {
	if !authz.CanManageAGMs(identity) {
		return ErrPermissionDenied
	}

	if _, err := s.agmRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAGMNotFound
		}
		return fmt.Errorf("failed to find agm: %w", err)
	}

	if err := s.agmRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete agm: %w", err)
	}

	return nil
}
