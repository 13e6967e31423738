package repository

import (
	"github.com/klsociety/governance-records-api/internal/database"
	"github.com/klsociety/governance-records-api/internal/models"
	"github.com/klsociety/governance-records-api/internal/numbering"
	"gorm.io/gorm"
)

// GormBOMResolutionRepository is a GORM implementation of BOMResolutionRepository
type GormBOMResolutionRepository struct {
	db *gorm.DB
}

// NewBOMResolutionRepository creates a new BOMResolutionRepository
func NewBOMResolutionRepository(db *gorm.DB) BOMResolutionRepository {
	return &GormBOMResolutionRepository{db: db}
}

// CreateNumbered generates the resolution number and inserts the row in one
// transaction. The referenced GC resolution must exist.
func (r *GormBOMResolutionRepository) CreateNumbered(resolution *models.BOMResolution) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var gc models.GCResolution
		if err := tx.First(&gc, resolution.GCResolutionID).Error; err != nil {
			return err
		}

		number, err := numbering.NextBOM(tx, resolution.BOMDate)
		if err != nil {
			return err
		}
		resolution.BOMNo = number

		return tx.Create(resolution).Error
	})
}

// FindByID finds a BOM resolution by ID with optional preloading
func (r *GormBOMResolutionRepository) FindByID(id uint64, preload ...string) (*models.BOMResolution, error) {
	var resolution models.BOMResolution
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&resolution, id).Error; err != nil {
		return nil, err
	}

	return &resolution, nil
}

// List retrieves BOM resolutions whose linked GC resolution falls within the
// given scope. BOM rows carry no institute of their own.
func (r *GormBOMResolutionRepository) List(filter ResolutionFilter) ([]models.BOMResolution, int64, error) {
	var resolutions []models.BOMResolution

	query := r.db.Model(&models.BOMResolution{})

	if !filter.Scope.All {
		if len(filter.Scope.InstituteIDs) == 0 {
			return []models.BOMResolution{}, 0, nil
		}
		query = query.
			Joins("JOIN gc_resolutions ON gc_resolutions.id = bom_resolutions.gc_resolution_id").
			Where("gc_resolutions.institute_id IN ?", filter.Scope.InstituteIDs)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("bom_resolutions.bom_date DESC, bom_resolutions.id DESC").
		Scopes(database.Paginate(filter.Pagination)).
		Preload("GCResolution").Preload("GCResolution.Institute").
		Find(&resolutions).Error; err != nil {
		return nil, 0, err
	}

	return resolutions, total, nil
}

// UpdateNumbered saves the row, regenerating the number first when the
// meeting date changed.
func (r *GormBOMResolutionRepository) UpdateNumbered(resolution *models.BOMResolution, dateChanged bool) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if dateChanged {
			number, err := numbering.NextBOM(tx, resolution.BOMDate)
			if err != nil {
				return err
			}
			resolution.BOMNo = number
		}

		return tx.Save(resolution).Error
	})
}

// Delete deletes a BOM resolution
func (r *GormBOMResolutionRepository) Delete(id uint64) error {
	return r.db.Delete(&models.BOMResolution{}, id).Error
}
