package dto

import (
	"time"

	"github.com/klsociety/governance-records-api/internal/models"
	"github.com/klsociety/governance-records-api/internal/utils"
)

// AGMDTO represents an annual general meeting in API responses. A nil
// institute marks a society-wide meeting.
type AGMDTO struct {
	ID          uint64        `json:"id"`
	MeetingDate string        `json:"meeting_date"`
	InstituteID *uint64       `json:"institute_id"`
	Agenda      string        `json:"agenda"`
	Venue       string        `json:"venue"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	Institute   *InstituteDTO `json:"institute,omitempty"`
}

// AGMListResponse represents a paginated list of AGMs
type AGMListResponse struct {
	AGMs       []AGMDTO                 `json:"agms"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToAGMDTO converts an AGM model to AGMDTO
func ToAGMDTO(agm models.AGM) AGMDTO {
	dto := AGMDTO{
		ID:          agm.ID,
		MeetingDate: utils.FormatDate(agm.MeetingDate),
		InstituteID: agm.InstituteID,
		Agenda:      agm.Agenda,
		Venue:       agm.Venue,
		CreatedAt:   agm.CreatedAt,
		UpdatedAt:   agm.UpdatedAt,
	}

	// Include institute if preloaded
	if agm.Institute != nil {
		institute := ToInstituteDTO(*agm.Institute)
		dto.Institute = &institute
	}

	return dto
}

// ToAGMListResponse converts a slice of AGMs to AGMListResponse
func ToAGMListResponse(agms []models.AGM, params utils.PaginationParams, total int64) AGMListResponse {
	items := make([]AGMDTO, len(agms))
	for i, agm := range agms {
		items[i] = ToAGMDTO(agm)
	}
	return AGMListResponse{
		AGMs: items,
		Pagination: utils.NewPagination(params, total),
	}
}
