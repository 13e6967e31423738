package dto

import (
	"time"

	"github.com/klsociety/governance-records-api/internal/models"
	"github.com/klsociety/governance-records-api/internal/utils"
)

// GCResolutionDTO represents a governing council resolution in API responses.
// Meeting dates render as YYYY-MM-DD.
type GCResolutionDTO struct {
	ID          uint64        `json:"id"`
	Agenda      string        `json:"agenda"`
	Resolution  string        `json:"resolution"`
	Compliance  string        `json:"compliance"`
	InstituteID uint64        `json:"institute_id"`
	GCDate      string        `json:"gc_date"`
	GCNo        string        `json:"gc_no"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	Institute   *InstituteDTO `json:"institute,omitempty"`
}

// BOMResolutionDTO represents a board of management resolution in API responses
type BOMResolutionDTO struct {
	ID             uint64           `json:"id"`
	Agenda         string           `json:"agenda"`
	Resolution     string           `json:"resolution"`
	Compliance     string           `json:"compliance"`
	GCResolutionID uint64           `json:"gc_resolution_id"`
	BOMDate        string           `json:"bom_date"`
	BOMNo          string           `json:"bom_no"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
	GCResolution   *GCResolutionDTO `json:"gc_resolution,omitempty"`
}

// GCResolutionListResponse represents a paginated list of GC resolutions
type GCResolutionListResponse struct {
	Resolutions []GCResolutionDTO        `json:"gc_resolutions"`
	Pagination  utils.PaginationResponse `json:"pagination"`
}

// BOMResolutionListResponse represents a paginated list of BOM resolutions
type BOMResolutionListResponse struct {
	Resolutions []BOMResolutionDTO       `json:"bom_resolutions"`
	Pagination  utils.PaginationResponse `json:"pagination"`
}

// ToGCResolutionDTO converts a GCResolution model to GCResolutionDTO
func ToGCResolutionDTO(resolution models.GCResolution) GCResolutionDTO {
	dto := GCResolutionDTO{
		ID:          resolution.ID,
		Agenda:      resolution.Agenda,
		Resolution:  resolution.Resolution,
		Compliance:  resolution.Compliance,
		InstituteID: resolution.InstituteID,
		GCDate:      utils.FormatDate(resolution.GCDate),
		GCNo:        resolution.GCNo,
		CreatedAt:   resolution.CreatedAt,
		UpdatedAt:   resolution.UpdatedAt,
	}

	// Include institute if preloaded
	if resolution.Institute.ID != 0 {
		institute := ToInstituteDTO(resolution.Institute)
		dto.Institute = &institute
	}

	return dto
}

// ToBOMResolutionDTO converts a BOMResolution model to BOMResolutionDTO
func ToBOMResolutionDTO(resolution models.BOMResolution) BOMResolutionDTO {
	dto := BOMResolutionDTO{
		ID:             resolution.ID,
		Agenda:         resolution.Agenda,
		Resolution:     resolution.Resolution,
		Compliance:     resolution.Compliance,
		GCResolutionID: resolution.GCResolutionID,
		BOMDate:        utils.FormatDate(resolution.BOMDate),
		BOMNo:          resolution.BOMNo,
		CreatedAt:      resolution.CreatedAt,
		UpdatedAt:      resolution.UpdatedAt,
	}

	// Include linked GC resolution if preloaded
	if resolution.GCResolution.ID != 0 {
		gc := ToGCResolutionDTO(resolution.GCResolution)
		dto.GCResolution = &gc
	}

	return dto
}

// ToGCResolutionListResponse converts a slice of GC resolutions to GCResolutionListResponse
func ToGCResolutionListResponse(resolutions []models.GCResolution, params utils.PaginationParams, total int64) GCResolutionListResponse {
	items := make([]GCResolutionDTO, len(resolutions))
	for i, resolution := range resolutions {
		items[i] = ToGCResolutionDTO(resolution)
	}
	return GCResolutionListResponse{
		Resolutions: items,
		Pagination: utils.NewPagination(params, total),
	}
}

// ToBOMResolutionListResponse converts a slice of BOM resolutions to BOMResolutionListResponse
func ToBOMResolutionListResponse(resolutions []models.BOMResolution, params utils.PaginationParams, total int64) BOMResolutionListResponse {
	items := make([]BOMResolutionDTO, len(resolutions))
	for i, resolution := range resolutions {
		items[i] = ToBOMResolutionDTO(resolution)
	}
	return BOMResolutionListResponse{
		Resolutions: items,
		Pagination: utils.NewPagination(params, total),
	}
}
