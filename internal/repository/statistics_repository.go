package repository

import (
	"github.com/klsociety/governance-records-api/internal/authz"
	"github.com/klsociety/governance-records-api/internal/models"
	"gorm.io/gorm"
)

// GormStatisticsRepository is a GORM implementation of StatisticsRepository
type GormStatisticsRepository struct {
	db *gorm.DB
}

// NewStatisticsRepository creates a new StatisticsRepository
func NewStatisticsRepository(db *gorm.DB) StatisticsRepository {
	return &GormStatisticsRepository{db: db}
}

// Counts returns entity counts restricted to the given scope
func (r *GormStatisticsRepository) Counts(scope authz.Scope) (*Statistics, error) {
	stats := &Statistics{}

	instituteQuery := r.db.Model(&models.Institute{})
	memberQuery := r.db.Model(&models.Member{})
	gcQuery := r.db.Model(&models.GCResolution{})
	bomQuery := r.db.Model(&models.BOMResolution{})
	agmQuery := r.db.Model(&models.AGM{})

	if !scope.All {
		ids := scope.InstituteIDs
		instituteQuery = instituteQuery.Where("id IN ?", ids)
		memberQuery = memberQuery.Where("EXISTS (?)", r.db.Model(&models.MemberRole{}).
			Select("1").
			Where("member_roles.member_id = members.id").
			Where("member_roles.status = ?", models.MemberRoleActive).
			Where("member_roles.institute_id IN ?", ids))
		gcQuery = gcQuery.Where("institute_id IN ?", ids)
		bomQuery = bomQuery.
			Joins("JOIN gc_resolutions ON gc_resolutions.id = bom_resolutions.gc_resolution_id").
			Where("gc_resolutions.institute_id IN ?", ids)
		agmQuery = agmQuery.Where("institute_id IN ? OR institute_id IS NULL", ids)
	}

	counts := []struct {
		query *gorm.DB
		dest  *int64
	}{
		{instituteQuery, &stats.Institutes},
		{memberQuery, &stats.Members},
		{gcQuery, &stats.GCResolutions},
		{bomQuery, &stats.BOMResolutions},
		{agmQuery, &stats.AGMs},
	}

	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, err
		}
	}

	return stats, nil
}
