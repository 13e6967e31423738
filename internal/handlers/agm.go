package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/klsociety/governance-records-api/internal/dto"
	apierrors "github.com/klsociety/governance-records-api/internal/errors"
	"github.com/klsociety/governance-records-api/internal/services"
	"github.com/klsociety/governance-records-api/internal/utils"
)

type AGMHandler struct {
	agmService *services.AGMService
}

func NewAGMHandler(agmService *services.AGMService) *AGMHandler {
	return &AGMHandler{agmService: agmService}
}

// ListAGMs returns the AGMs visible to the caller. The /agm/by-member/all
// route shares this handler: scoping already narrows the list to meetings
// relevant to the calling member.
func (h *AGMHandler) ListAGMs(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	params := utils.GetPaginationParams(c)

	agms, total, err := h.agmService.ListAGMs(identity, params)
	if err != nil {
		respondScopeError(c, err, "Failed to fetch agms")
		return
	}

	c.JSON(http.StatusOK, dto.ToAGMListResponse(agms, params, total))
}

// GetAGM returns a specific AGM by ID
func (h *AGMHandler) GetAGM(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	agm, err := h.agmService.GetAGM(identity, id)
	if err != nil {
		if errors.Is(err, services.ErrAGMNotFound) {
			apierrors.NotFound(c, err.Error())
			return
		}
		respondScopeError(c, err, "Failed to fetch agm")
		return
	}

	c.JSON(http.StatusOK, gin.H{"agm": dto.ToAGMDTO(*agm)})
}

// CreateAGM creates an AGM record; a missing institute marks it society-wide
func (h *AGMHandler) CreateAGM(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	var req struct {
		MeetingDate string  `json:"meeting_date" binding:"required"`
		InstituteID *uint64 `json:"institute_id"`
		Agenda      string  `json:"agenda" binding:"required"`
		Venue       string  `json:"venue"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Meeting date and agenda are required")
		return
	}

	meetingDate, err := utils.ParseDate(req.MeetingDate)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	agm, err := h.agmService.CreateAGM(identity, services.CreateAGMInput{
		MeetingDate: meetingDate,
		InstituteID: req.InstituteID,
		Agenda:      req.Agenda,
		Venue:       req.Venue,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPermissionDenied):
			apierrors.Forbidden(c, err.Error())
		case errors.Is(err, services.ErrAgendaRequired):
			apierrors.BadRequest(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to create agm")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"agm": dto.ToAGMDTO(*agm)})
}

// UpdateAGM updates an AGM record
func (h *AGMHandler) UpdateAGM(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req struct {
		MeetingDate *string `json:"meeting_date"`
		Agenda      *string `json:"agenda"`
		Venue       *string `json:"venue"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateAGMInput{
		Agenda: req.Agenda,
		Venue:  req.Venue,
	}
	if req.MeetingDate != nil {
		meetingDate, err := utils.ParseDate(*req.MeetingDate)
		if err != nil {
			apierrors.BadRequest(c, err.Error())
			return
		}
		input.MeetingDate = &meetingDate
	}

	agm, err := h.agmService.UpdateAGM(identity, id, input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPermissionDenied):
			apierrors.Forbidden(c, err.Error())
		case errors.Is(err, services.ErrAGMNotFound):
			apierrors.NotFound(c, err.Error())
		case errors.Is(err, services.ErrAgendaRequired):
			apierrors.BadRequest(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to update agm")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"agm": dto.ToAGMDTO(*agm)})
}

// DeleteAGM removes an AGM record
func (h *AGMHandler) DeleteAGM(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.agmService.DeleteAGM(identity, id); err != nil {
		switch {
		case errors.Is(err, services.ErrPermissionDenied):
			apierrors.Forbidden(c, err.Error())
		case errors.Is(err, services.ErrAGMNotFound):
			apierrors.NotFound(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to delete agm")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "AGM deleted"})
}
