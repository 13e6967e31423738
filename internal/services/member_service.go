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
	ErrMemberNotFound    = errors.New("member not found")
	ErrMemberNameMissing = errors.New("member name is required")
)

// MemberService provides business logic for member operations. Writes are
// admin only; reads follow the caller's visibility scope.
type MemberService struct {
	memberRepo repository.MemberRepository
	resolver   *authz.Resolver
}

// NewMemberService creates a new MemberService.
func NewMemberService(memberRepo repository.MemberRepository, resolver *authz.Resolver) *MemberService {
	return &MemberService{
		memberRepo: memberRepo,
		resolver:   resolver,
	}
}

// ListMembers returns the members visible to the caller.
func (s *MemberService) ListMembers(identity authz.Identity, params utils.PaginationParams) ([]models.Member, int64, error) {
	scope, err := s.resolver.Scope(identity)
	if err != nil {
		return nil, 0, err
	}

	members, total, err := s.memberRepo.List(repository.MemberFilter{
		Scope:      scope,
		Pagination: params,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list members: %w", err)
	}

	return members, total, nil
}

// GetMember returns a member the caller may see: one holding an active role
// at an institute within the caller's scope.
func (s *MemberService) GetMember(identity authz.Identity, id uint64) (*models.Member, error) {
	member, err := s.memberRepo.FindByID(id, "User", "Roles.Role", "Roles.Institute")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find member: %w", err)
	}

	scope, err := s.resolver.Scope(identity)
	if err != nil {
		return nil, err
	}
	if !scope.All && !memberInScope(member, scope) {
		return nil, ErrMemberNotFound
	}

	return member, nil
}

// CreateMemberInput represents input for creating a member along with its
// user account.
type CreateMemberInput struct {
	Name     string
	Phone    string
	Address  string
	Username string
	Password string
}

// CreateMember creates a member and its account; only global admins may.
func (s *MemberService) CreateMember(identity authz.Identity, input CreateMemberInput) (*models.Member, error) {
	if !authz.CanManageMembers(identity) {
		return nil, ErrPermissionDenied
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrMemberNameMissing
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Username:     input.Username,
		PasswordHash: string(hashedPassword),
	}

	member := &models.Member{
		Name:    input.Name,
		Phone:   input.Phone,
		Address: input.Address,
	}

	if err := s.memberRepo.CreateWithAccount(member, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create member: %w", err)
	}

	return member, nil
}

// UpdateMemberInput represents fields that may be updated.
type UpdateMemberInput struct {
	Name    *string
	Phone   *string
	Address *string
}

// UpdateMember updates a member; only global admins may.
func (s *MemberService) UpdateMember(identity authz.Identity, id uint64, input UpdateMemberInput) (*models.Member, error) {
	if !authz.CanManageMembers(identity) {
		return nil, ErrPermissionDenied
	}

	member, err := s.memberRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find member: %w", err)
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrMemberNameMissing
		}
		member.Name = *input.Name
	}
	if input.Phone != nil {
		member.Phone = *input.Phone
	}
	if input.Address != nil {
		member.Address = *input.Address
	}

	if err := s.memberRepo.Update(member); err != nil {
		return nil, fmt.Errorf("failed to update member: %w", err)
	}

	return member, nil
}

// DeleteMember removes a member, its role assignments, and its account;
// only global admins may.
func (s *MemberService) DeleteMember(identity authz.Identity, id uint64) error {
	if !authz.CanManageMembers(identity) {
		return ErrPermissionDenied
	}

	if _, err := s.memberRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("failed to find member: %w", err)
	}

	if err := s.memberRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}

	return nil
}

func memberInScope(member *models.Member, scope authz.Scope) bool {
	for _, role := range member.Roles {
		if role.Status != models.MemberRoleActive || role.InstituteID == nil {
			continue
		}
		for _, id := range scope.InstituteIDs {
			if id == *role.InstituteID {
				return true
			}
		}
	}
	return false
}
