package repository

import (
	"github.com/klsociety/governance-records-api/internal/database"
	"github.com/klsociety/governance-records-api/internal/models"
	"gorm.io/gorm"
)

// GormMemberRepository is a GORM implementation of MemberRepository
type GormMemberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new MemberRepository
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &GormMemberRepository{db: db}
}

// CreateWithAccount creates a member and its user account atomically
func (r *GormMemberRepository) CreateWithAccount(member *models.Member, user *models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		user.UserType = models.UserTypeMember

		if err := tx.Create(user).Error; err != nil {
			return err
		}

		member.UserID = user.ID

		return tx.Create(member).Error
	})
}

// FindByID finds a member by ID with optional preloading
func (r *GormMemberRepository) FindByID(id uint64, preload ...string) (*models.Member, error) {
	var member models.Member
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&member, id).Error; err != nil {
		return nil, err
	}

	return &member, nil
}

// FindByUserID finds the member owned by a user account
func (r *GormMemberRepository) FindByUserID(userID uint64) (*models.Member, error) {
	var member models.Member
	if err := r.db.Where("user_id = ?", userID).First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// List retrieves members visible within the given scope. Scoped callers see
// members holding an active role at one of their institutes.
func (r *GormMemberRepository) List(filter MemberFilter) ([]models.Member, int64, error) {
	var members []models.Member

	query := r.db.Model(&models.Member{})

	if !filter.Scope.All {
		if len(filter.Scope.InstituteIDs) == 0 {
			return []models.Member{}, 0, nil
		}
		roleSubQuery := r.db.Model(&models.MemberRole{}).
			Select("1").
			Where("member_roles.member_id = members.id").
			Where("member_roles.status = ?", models.MemberRoleActive).
			Where("member_roles.institute_id IN ?", filter.Scope.InstituteIDs)
		query = query.Where("EXISTS (?)", roleSubQuery)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("members.name ASC").
		Scopes(database.Paginate(filter.Pagination)).
		Preload("Roles.Role").
		Find(&members).Error; err != nil {
		return nil, 0, err
	}

	return members, total, nil
}

// Update updates a member
func (r *GormMemberRepository) Update(member *models.Member) error {
	return r.db.Save(member).Error
}

// Delete deletes a member, its role assignments, and its user account
func (r *GormMemberRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var member models.Member
		if err := tx.First(&member, id).Error; err != nil {
			return err
		}

		if err := tx.Where("member_id = ?", id).Delete(&models.MemberRole{}).Error; err != nil {
			return err
		}

		if err := tx.Delete(&models.Member{}, id).Error; err != nil {
			return err
		}

		return tx.Delete(&models.User{}, member.UserID).Error
	})
}

// ListActiveRoles lists a member's active role assignments with roles preloaded
func (r *GormMemberRepository) ListActiveRoles(memberID uint64) ([]models.MemberRole, error) {
	var roles []models.MemberRole
	if err := r.db.Preload("Role").
		Where("member_id = ? AND status = ?", memberID, models.MemberRoleActive).
		Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}
