package repository

import (
	"github.com/klsociety/governance-records-api/internal/database"
	"github.com/klsociety/governance-records-api/internal/models"
	"github.com/klsociety/governance-records-api/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormMemberRoleRepository is a GORM implementation of MemberRoleRepository
type GormMemberRoleRepository struct {
	db *gorm.DB
}

// NewMemberRoleRepository creates a new MemberRoleRepository
func NewMemberRoleRepository(db *gorm.DB) MemberRoleRepository {
	return &GormMemberRoleRepository{db: db}
}

// Upsert inserts a role assignment, or updates level, tenure, and status in
// place when a row with the same (member, role, institute) triple exists.
// The conflict target is the composite unique index over institute_key, the
// non-nullable stand-in for institute_id, so two racing callers cannot
// produce two rows even for society-wide assignments.
func (r *GormMemberRoleRepository) Upsert(assignment *models.MemberRole) error {
	return r.db.
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "member_id"},
				{Name: "role_id"},
				{Name: "institute_key"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"level", "tenure", "status", "updated_at"}),
		}).
		Create(assignment).Error
}

// FindByID finds a role assignment by ID with optional preloading
func (r *GormMemberRoleRepository) FindByID(id uint64, preload ...string) (*models.MemberRole, error) {
	var assignment models.MemberRole
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&assignment, id).Error; err != nil {
		return nil, err
	}

	return &assignment, nil
}

// List retrieves role assignments with pagination
func (r *GormMemberRoleRepository) List(params utils.PaginationParams) ([]models.MemberRole, int64, error) {
	var assignments []models.MemberRole

	query := r.db.Model(&models.MemberRole{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("id ASC").
		Scopes(database.Paginate(params)).
		Preload("Member").Preload("Role").Preload("Institute").
		Find(&assignments).Error; err != nil {
		return nil, 0, err
	}

	return assignments, total, nil
}

// Update updates a role assignment
func (r *GormMemberRoleRepository) Update(assignment *models.MemberRole) error {
	return r.db.Save(assignment).Error
}

// Delete deletes a role assignment
func (r *GormMemberRoleRepository) Delete(id uint64) error {
	return r.db.Delete(&models.MemberRole{}, id).Error
}
