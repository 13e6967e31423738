package authz

import (
	"errors"
	"fmt"

	"github.com/klsociety/governance-records-api/internal/models"
	"gorm.io/gorm"
)

// Tier is the closed set of capability tiers decoded from the bearer
// credential. The numeric values are the persisted usertype column.
type Tier int

const (
	TierAdmin          Tier = 1
	TierInstituteAdmin Tier = 2
	TierMember         Tier = 3
)

// Identity is the caller as established by the auth middleware. InstituteID
// is zero unless the caller is an institute admin.
type Identity struct {
	UserID      uint64
	Tier        Tier
	InstituteID uint64
}

// Scope is the filtered view a caller may read. All trumps InstituteIDs.
type Scope struct {
	All          bool
	InstituteIDs []uint64
}

var (
	// ErrMemberNotFound is returned when a member-tier caller has no member record.
	ErrMemberNotFound = errors.New("member record not found for user")
	// ErrNoInstituteAffiliation is returned when a caller has no institute to scope by.
	ErrNoInstituteAffiliation = errors.New("member has no institute affiliation")
)

// MemberSource is the slice of the member store the resolver needs.
type MemberSource interface {
	FindByUserID(userID uint64) (*models.Member, error)
	ListActiveRoles(memberID uint64) ([]models.MemberRole, error)
}

// Resolver computes read scopes from caller identities. Write permissions are
// pure functions of the identity and target row and live below as package
// functions.
type Resolver struct {
	members MemberSource
}

func NewResolver(members MemberSource) *Resolver {
	return &Resolver{members: members}
}

// Scope resolves the institutes a caller may read records for.
func (r *Resolver) Scope(identity Identity) (Scope, error) {
	switch identity.Tier {
	case TierAdmin:
		return Scope{All: true}, nil
	case TierInstituteAdmin:
		if identity.InstituteID == 0 {
			return Scope{}, ErrNoInstituteAffiliation
		}
		return Scope{InstituteIDs: []uint64{identity.InstituteID}}, nil
	case TierMember:
		return r.memberScope(identity.UserID)
	}
	return Scope{}, fmt.Errorf("unknown capability tier %d", identity.Tier)
}

func (r *Resolver) memberScope(userID uint64) (Scope, error) {
	member, err := r.members.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Scope{}, ErrMemberNotFound
		}
		return Scope{}, fmt.Errorf("failed to find member: %w", err)
	}

	roles, err := r.members.ListActiveRoles(member.ID)
	if err != nil {
		return Scope{}, fmt.Errorf("failed to list member roles: %w", err)
	}

	if GlobalVisibilityOverride(roles) {
		return Scope{All: true}, nil
	}

	seen := make(map[uint64]struct{})
	var instituteIDs []uint64
	for _, role := range roles {
		if role.InstituteID == nil {
			continue
		}
		if _, ok := seen[*role.InstituteID]; ok {
			continue
		}
		seen[*role.InstituteID] = struct{}{}
		instituteIDs = append(instituteIDs, *role.InstituteID)
	}

	if len(instituteIDs) == 0 {
		return Scope{}, ErrNoInstituteAffiliation
	}

	return Scope{InstituteIDs: instituteIDs}, nil
}

// GlobalVisibilityOverride reports whether any active role grants
// society-wide visibility. President and Vice President see everything
// regardless of institute-scoped assignments.
func GlobalVisibilityOverride(roles []models.MemberRole) bool {
	for _, role := range roles {
		if role.Status != models.MemberRoleActive {
			continue
		}
		if role.Role.Name == models.RoleNamePresident || role.Role.Name == models.RoleNameVicePresident {
			return true
		}
	}
	return false
}

// CanManageInstitutes reports whether the caller may create, update, or
// delete institutes.
func CanManageInstitutes(identity Identity) bool {
	return identity.Tier == TierAdmin
}

// CanCreateGC reports whether the caller may create GC resolutions. Only
// institute admins may, and always for their own institute.
func CanCreateGC(identity Identity) bool {
	return identity.Tier == TierInstituteAdmin && identity.InstituteID != 0
}

// CanMutateGC reports whether the caller may update or delete a GC
// resolution. Admins may unconditionally; institute admins only within their
// own institute.
func CanMutateGC(identity Identity, resolution *models.GCResolution) bool {
	switch identity.Tier {
	case TierAdmin:
		return true
	case TierInstituteAdmin:
		return resolution.InstituteID == identity.InstituteID
	}
	return false
}

// CanManageBOM reports whether the caller may create, update, or delete BOM
// resolutions.
func CanManageBOM(identity Identity) bool {
	return identity.Tier == TierAdmin
}

// CanManageMembers reports whether the caller may create, update, or delete
// members and role assignments.
func CanManageMembers(identity Identity) bool {
	return identity.Tier == TierAdmin
}

// CanManageRoles reports whether the caller may mutate the static role
// reference data.
func CanManageRoles(identity Identity) bool {
	return identity.Tier == TierAdmin
}

// CanManageAGMs reports whether the caller may create, update, or delete AGM
// records.
func CanManageAGMs(identity Identity) bool {
	return identity.Tier == TierAdmin
}
