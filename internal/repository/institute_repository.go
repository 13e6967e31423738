package repository

import (
	"github.com/klsociety/governance-records-api/internal/database"
	"github.com/klsociety/governance-records-api/internal/models"
	"github.com/klsociety/governance-records-api/internal/utils"
	"gorm.io/gorm"
)

// GormInstituteRepository is a GORM implementation of InstituteRepository
type GormInstituteRepository struct {
	db *gorm.DB
}

// NewInstituteRepository creates a new InstituteRepository
func NewInstituteRepository(db *gorm.DB) InstituteRepository {
	return &GormInstituteRepository{db: db}
}

// Create creates a new institute
func (r *GormInstituteRepository) Create(institute *models.Institute) error {
	return r.db.Create(institute).Error
}

// CreateWithAdmin creates an institute and its admin account atomically
func (r *GormInstituteRepository) CreateWithAdmin(institute *models.Institute, admin *models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(institute).Error; err != nil {
			return err
		}

		admin.InstituteID = &institute.ID
		admin.UserType = models.UserTypeInstituteAdmin

		return tx.Create(admin).Error
	})
}

// FindByID finds an institute by ID
func (r *GormInstituteRepository) FindByID(id uint64) (*models.Institute, error) {
	var institute models.Institute
	if err := r.db.First(&institute, id).Error; err != nil {
		return nil, err
	}
	return &institute, nil
}

// List retrieves institutes with pagination
func (r *GormInstituteRepository) List(params utils.PaginationParams) ([]models.Institute, int64, error) {
	var institutes []models.Institute

	query := r.db.Model(&models.Institute{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("name ASC").
		Scopes(database.Paginate(params)).
		Find(&institutes).Error; err != nil {
		return nil, 0, err
	}

	return institutes, total, nil
}

// Update updates an institute
func (r *GormInstituteRepository) Update(institute *models.Institute) error {
	return r.db.Save(institute).Error
}

// Delete deletes an institute and its dependent accounts
func (r *GormInstituteRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("institute_id = ?", id).Delete(&models.User{}).Error; err != nil {
			return err
		}

		if err := tx.Where("institute_id = ?", id).Delete(&models.MemberRole{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Institute{}, id).Error
	})
}
