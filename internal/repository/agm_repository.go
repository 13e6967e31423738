package repository

import (
	"github.com/klsociety/governance-records-api/internal/database"
	"github.com/klsociety/governance-records-api/internal/models"
	"gorm.io/gorm"
)

// GormAGMRepository is a GORM implementation of AGMRepository
type GormAGMRepository struct {
	db *gorm.DB
}

// NewAGMRepository creates a new AGMRepository
func NewAGMRepository(db *gorm.DB) AGMRepository {
	return &GormAGMRepository{db: db}
}

// Create creates a new AGM record
func (r *GormAGMRepository) Create(agm *models.AGM) error {
	return r.db.Create(agm).Error
}

// FindByID finds an AGM by ID with optional preloading
func (r *GormAGMRepository) FindByID(id uint64, preload ...string) (*models.AGM, error) {
	var agm models.AGM
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&agm, id).Error; err != nil {
		return nil, err
	}

	return &agm, nil
}

// List retrieves AGMs visible within the given scope. Society-wide meetings
// (no institute) are visible to every scoped caller.
func (r *GormAGMRepository) List(filter AGMFilter) ([]models.AGM, int64, error) {
	var agms []models.AGM

	query := r.db.Model(&models.AGM{})

	if !filter.Scope.All {
		if len(filter.Scope.InstituteIDs) == 0 {
			return []models.AGM{}, 0, nil
		}
		query = query.Where("institute_id IN ? OR institute_id IS NULL", filter.Scope.InstituteIDs)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("meeting_date DESC, id DESC").
		Scopes(database.Paginate(filter.Pagination)).
		Preload("Institute").
		Find(&agms).Error; err != nil {
		return nil, 0, err
	}

	return agms, total, nil
}

// Update updates an AGM record
func (r *GormAGMRepository) Update(agm *models.AGM) error {
	return r.db.Save(agm).Error
}

// Delete deletes an AGM record
func (r *GormAGMRepository) Delete(id uint64) error {
	return r.db.Delete(&models.AGM{}, id).Error
}
