package dto

import (
	"time"

	"github.com/klsociety/governance-records-api/internal/models"
	"github.com/klsociety/governance-records-api/internal/utils"
)

// InstituteDTO represents an institute in API responses
type InstituteDTO struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InstituteListResponse represents a paginated list of institutes
type InstituteListResponse struct {
	Institutes []InstituteDTO           `json:"institutes"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToInstituteDTO converts an Institute model to InstituteDTO
func ToInstituteDTO(institute models.Institute) InstituteDTO {
	return InstituteDTO{
		ID:        institute.ID,
		Name:      institute.Name,
		Phone:     institute.Phone,
		Code:      institute.Code,
		CreatedAt: institute.CreatedAt,
		UpdatedAt: institute.UpdatedAt,
	}
}

// ToInstituteListResponse converts a slice of institutes to InstituteListResponse
func ToInstituteListResponse(institutes []models.Institute, params utils.PaginationParams, total int64) InstituteListResponse {
	items := make([]InstituteDTO, len(institutes))
	for i, institute := range institutes {
		items[i] = ToInstituteDTO(institute)
	}
	return InstituteListResponse{
		Institutes: items,
		Pagination: utils.NewPagination(params, total),
	}
}
