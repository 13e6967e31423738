package authz

import (
	"testing"

	"github.com/klsociety/governance-records-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeMemberSource struct {
	member *models.Member
	roles  []models.MemberRole
}

func (f *fakeMemberSource) FindByUserID(userID uint64) (*models.Member, error) {
	if f.member == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.member, nil
}

func (f *fakeMemberSource) ListActiveRoles(memberID uint64) ([]models.MemberRole, error) {
	return f.roles, nil
}

func instituteRole(roleName string, instituteID uint64) models.MemberRole {
	return models.MemberRole{
		InstituteID: &instituteID,
		Status:      models.MemberRoleActive,
		Role:        models.Role{Name: roleName},
	}
}

func TestScope_Admin(t *testing.T) {
	resolver := NewResolver(&fakeMemberSource{})

	scope, err := resolver.Scope(Identity{UserID: 1, Tier: TierAdmin})
	require.NoError(t, err)
	require.True(t, scope.All)
}

func TestScope_InstituteAdmin(t *testing.T) {
	resolver := NewResolver(&fakeMemberSource{})

	scope, err := resolver.Scope(Identity{UserID: 1, Tier: TierInstituteAdmin, InstituteID: 42})
	require.NoError(t, err)
	require.False(t, scope.All)
	require.Equal(t, []uint64{42}, scope.InstituteIDs)
}

func TestScope_InstituteAdminWithoutInstitute(t *testing.T) {
	resolver := NewResolver(&fakeMemberSource{})

	_, err := resolver.Scope(Identity{UserID: 1, Tier: TierInstituteAdmin})
	require.ErrorIs(t, err, ErrNoInstituteAffiliation)
}

func TestScope_MemberUnionOfInstitutes(t *testing.T) {
	source := &fakeMemberSource{
		member: &models.Member{ID: 5},
		roles: []models.MemberRole{
			instituteRole("Secretary", 1),
			instituteRole("Member", 2),
			instituteRole("Member", 1), // duplicate institute
		},
	}
	resolver := NewResolver(source)

	scope, err := resolver.Scope(Identity{UserID: 9, Tier: TierMember})
	require.NoError(t, err)
	require.False(t, scope.All)
	require.ElementsMatch(t, []uint64{1, 2}, scope.InstituteIDs)
}

func TestScope_PresidentSeesEverything(t *testing.T) {
	source := &fakeMemberSource{
		member: &models.Member{ID: 5},
		roles: []models.MemberRole{
			instituteRole(models.RoleNamePresident, 1),
		},
	}
	resolver := NewResolver(source)

	scope, err := resolver.Scope(Identity{UserID: 9, Tier: TierMember})
	require.NoError(t, err)
	require.True(t, scope.All)
}

func TestScope_VicePresidentSeesEverything(t *testing.T) {
	boardRole := models.MemberRole{
		Status: models.MemberRoleActive,
		Role:   models.Role{Name: models.RoleNameVicePresident},
	}
	source := &fakeMemberSource{
		member: &models.Member{ID: 5},
		roles:  []models.MemberRole{boardRole},
	}
	resolver := NewResolver(source)

	scope, err := resolver.Scope(Identity{UserID: 9, Tier: TierMember})
	require.NoError(t, err)
	require.True(t, scope.All)
}

func TestScope_InactivePresidentDoesNotOverride(t *testing.T) {
	instituteID := uint64(3)
	source := &fakeMemberSource{
		member: &models.Member{ID: 5},
		roles: []models.MemberRole{
			{
				InstituteID: &instituteID,
				Status:      models.MemberRoleInactive,
				Role:        models.Role{Name: models.RoleNamePresident},
			},
			instituteRole("Member", 3),
		},
	}
	resolver := NewResolver(source)

	scope, err := resolver.Scope(Identity{UserID: 9, Tier: TierMember})
	require.NoError(t, err)
	require.False(t, scope.All)
	require.Equal(t, []uint64{3}, scope.InstituteIDs)
}

func TestScope_MemberWithoutRecord(t *testing.T) {
	resolver := NewResolver(&fakeMemberSource{})

	_, err := resolver.Scope(Identity{UserID: 9, Tier: TierMember})
	require.ErrorIs(t, err, ErrMemberNotFound)
}

func TestScope_MemberWithoutAffiliation(t *testing.T) {
	source := &fakeMemberSource{member: &models.Member{ID: 5}}
	resolver := NewResolver(source)

	_, err := resolver.Scope(Identity{UserID: 9, Tier: TierMember})
	require.ErrorIs(t, err, ErrNoInstituteAffiliation)
}

func TestWritePredicates(t *testing.T) {
	admin := Identity{Tier: TierAdmin}
	instituteAdmin := Identity{Tier: TierInstituteAdmin, InstituteID: 1}
	member := Identity{Tier: TierMember}

	require.True(t, CanManageInstitutes(admin))
	require.False(t, CanManageInstitutes(instituteAdmin))
	require.False(t, CanManageInstitutes(member))

	require.False(t, CanCreateGC(admin))
	require.True(t, CanCreateGC(instituteAdmin))
	require.False(t, CanCreateGC(member))

	ownResolution := &models.GCResolution{InstituteID: 1}
	otherResolution := &models.GCResolution{InstituteID: 2}
	require.True(t, CanMutateGC(admin, otherResolution))
	require.True(t, CanMutateGC(instituteAdmin, ownResolution))
	require.False(t, CanMutateGC(instituteAdmin, otherResolution))
	require.False(t, CanMutateGC(member, ownResolution))

	require.True(t, CanManageBOM(admin))
	require.False(t, CanManageBOM(instituteAdmin))

	require.True(t, CanManageMembers(admin))
	require.False(t, CanManageMembers(instituteAdmin))

	require.True(t, CanManageRoles(admin))
	require.False(t, CanManageRoles(member))

	require.True(t, CanManageAGMs(admin))
	require.False(t, CanManageAGMs(instituteAdmin))
}
