package repository

import (
	"github.com/klsociety/governance-records-api/internal/database"
	"github.com/klsociety/governance-records-api/internal/models"
	"github.com/klsociety/governance-records-api/internal/numbering"
	"gorm.io/gorm"
)

// GormGCResolutionRepository is a GORM implementation of GCResolutionRepository
type GormGCResolutionRepository struct {
	db *gorm.DB
}

// NewGCResolutionRepository creates a new GCResolutionRepository
func NewGCResolutionRepository(db *gorm.DB) GCResolutionRepository {
	return &GormGCResolutionRepository{db: db}
}

// CreateNumbered generates the resolution number and inserts the row in one
// transaction. A failed generation rolls back, so a resolution is never
// persisted without its number.
func (r *GormGCResolutionRepository) CreateNumbered(resolution *models.GCResolution) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var institute models.Institute
		if err := tx.First(&institute, resolution.InstituteID).Error; err != nil {
			return err
		}

		number, err := numbering.NextGC(tx, &institute, resolution.GCDate)
		if err != nil {
			return err
		}
		resolution.GCNo = number

		return tx.Create(resolution).Error
	})
}

// FindByID finds a GC resolution by ID with optional preloading
func (r *GormGCResolutionRepository) FindByID(id uint64, preload ...string) (*models.GCResolution, error) {
	var resolution models.GCResolution
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&resolution, id).Error; err != nil {
		return nil, err
	}

	return &resolution, nil
}

// List retrieves GC resolutions visible within the given scope
func (r *GormGCResolutionRepository) List(filter ResolutionFilter) ([]models.GCResolution, int64, error) {
	var resolutions []models.GCResolution

	query := r.db.Model(&models.GCResolution{})

	if !filter.Scope.All {
		if len(filter.Scope.InstituteIDs) == 0 {
			return []models.GCResolution{}, 0, nil
		}
		query = query.Where("institute_id IN ?", filter.Scope.InstituteIDs)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("gc_date DESC, id DESC").
		Scopes(database.Paginate(filter.Pagination)).
		Preload("Institute").
		Find(&resolutions).Error; err != nil {
		return nil, 0, err
	}

	return resolutions, total, nil
}

// UpdateNumbered saves the row, regenerating the number first when the
// meeting date changed. The number is left untouched on other field edits.
func (r *GormGCResolutionRepository) UpdateNumbered(resolution *models.GCResolution, dateChanged bool) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if dateChanged {
			var institute models.Institute
			if err := tx.First(&institute, resolution.InstituteID).Error; err != nil {
				return err
			}

			number, err := numbering.NextGC(tx, &institute, resolution.GCDate)
			if err != nil {
				return err
			}
			resolution.GCNo = number
		}

		return tx.Save(resolution).Error
	})
}

// Delete deletes a GC resolution and its dependent BOM resolutions
func (r *GormGCResolutionRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("gc_resolution_id = ?", id).Delete(&models.BOMResolution{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.GCResolution{}, id).Error
	})
}
