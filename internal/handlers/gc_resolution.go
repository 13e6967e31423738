package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/klsociety/governance-records-api/internal/authz"
	"github.com/klsociety/governance-records-api/internal/dto"
	apierrors "github.com/klsociety/governance-records-api/internal/errors"
	"github.com/klsociety/governance-records-api/internal/numbering"
	"github.com/klsociety/governance-records-api/internal/services"
	"github.com/klsociety/governance-records-api/internal/utils"
)

type GCResolutionHandler struct {
	gcService *services.GCResolutionService
}

func NewGCResolutionHandler(gcService *services.GCResolutionService) *GCResolutionHandler {
	return &GCResolutionHandler{gcService: gcService}
}

// ListGCResolutions returns the resolutions visible to the caller
func (h *GCResolutionHandler) ListGCResolutions(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	params := utils.GetPaginationParams(c)

	resolutions, total, err := h.gcService.ListGCResolutions(identity, params)
	if err != nil {
		respondScopeError(c, err, "Failed to fetch gc resolutions")
		return
	}

	c.JSON(http.StatusOK, dto.ToGCResolutionListResponse(resolutions, params, total))
}

// GetGCResolution returns a specific resolution by ID
func (h *GCResolutionHandler) GetGCResolution(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	resolution, err := h.gcService.GetGCResolution(identity, id)
	if err != nil {
		if errors.Is(err, services.ErrGCResolutionNotFound) {
			apierrors.NotFound(c, err.Error())
			return
		}
		respondScopeError(c, err, "Failed to fetch gc resolution")
		return
	}

	c.JSON(http.StatusOK, gin.H{"gc_resolution": dto.ToGCResolutionDTO(*resolution)})
}

// CreateGCResolution creates a resolution for the caller's institute
func (h *GCResolutionHandler) CreateGCResolution(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	var req struct {
		Agenda     string `json:"agenda" binding:"required"`
		Resolution string `json:"resolution" binding:"required"`
		Compliance string `json:"compliance"`
		GCDate     string `json:"gc_date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Agenda, resolution, and gc_date are required")
		return
	}

	gcDate, err := utils.ParseDate(req.GCDate)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	resolution, err := h.gcService.CreateGCResolution(identity, services.CreateGCResolutionInput{
		Agenda:     req.Agenda,
		Resolution: req.Resolution,
		Compliance: req.Compliance,
		GCDate:     gcDate,
	})
	if err != nil {
		respondGCWriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"gc_resolution": dto.ToGCResolutionDTO(*resolution)})
}

// UpdateGCResolution updates a resolution; a changed meeting date
// regenerates the resolution number
func (h *GCResolutionHandler) UpdateGCResolution(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Agenda     *string `json:"agenda"`
		Resolution *string `json:"resolution"`
		Compliance *string `json:"compliance"`
		GCDate     *string `json:"gc_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateGCResolutionInput{
		Agenda:     req.Agenda,
		Resolution: req.Resolution,
		Compliance: req.Compliance,
	}
	if req.GCDate != nil {
		gcDate, err := utils.ParseDate(*req.GCDate)
		if err != nil {
			apierrors.BadRequest(c, err.Error())
			return
		}
		input.GCDate = &gcDate
	}

	resolution, err := h.gcService.UpdateGCResolution(identity, id, input)
	if err != nil {
		respondGCWriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"gc_resolution": dto.ToGCResolutionDTO(*resolution)})
}

// DeleteGCResolution removes a resolution and its dependent BOM resolutions
func (h *GCResolutionHandler) DeleteGCResolution(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.gcService.DeleteGCResolution(identity, id); err != nil {
		switch {
		case errors.Is(err, services.ErrGCResolutionNotFound):
			apierrors.NotFound(c, err.Error())
		case errors.Is(err, services.ErrPermissionDenied):
			apierrors.Forbidden(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to delete gc resolution")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "GC resolution deleted"})
}

func respondGCWriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPermissionDenied):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrGCResolutionNotFound),
		errors.Is(err, services.ErrInstituteNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAgendaRequired),
		errors.Is(err, services.ErrResolutionRequired),
		errors.Is(err, numbering.ErrMissingInstituteCode):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrDuplicateResolutionNumber):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.InternalError(c, "Failed to write gc resolution")
	}
}

// respondScopeError maps scope-resolution failures shared by every scoped
// read path.
func respondScopeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, authz.ErrMemberNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, authz.ErrNoInstituteAffiliation):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, fallback)
	}
}
