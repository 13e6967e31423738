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

type BOMResolutionHandler struct {
	bomService *services.BOMResolutionService
}

func NewBOMResolutionHandler(bomService *services.BOMResolutionService) *BOMResolutionHandler {
	return &BOMResolutionHandler{bomService: bomService}
}

// ListBOMResolutions returns the resolutions visible to the caller
func (h *BOMResolutionHandler) ListBOMResolutions(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	params := utils.GetPaginationParams(c)

	resolutions, total, err := h.bomService.ListBOMResolutions(identity, params)
	if err != nil {
		respondScopeError(c, err, "Failed to fetch bom resolutions")
		return
	}

	c.JSON(http.StatusOK, dto.ToBOMResolutionListResponse(resolutions, params, total))
}

// GetBOMResolution returns a specific resolution by ID
func (h *BOMResolutionHandler) GetBOMResolution(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	resolution, err := h.bomService.GetBOMResolution(identity, id)
	if err != nil {
		if errors.Is(err, services.ErrBOMResolutionNotFound) {
			apierrors.NotFound(c, err.Error())
			return
		}
		respondScopeError(c, err, "Failed to fetch bom resolution")
		return
	}

	c.JSON(http.StatusOK, gin.H{"bom_resolution": dto.ToBOMResolutionDTO(*resolution)})
}

// CreateBOMResolution creates a board resolution linked to a GC resolution
func (h *BOMResolutionHandler) CreateBOMResolution(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	var req struct {
		Agenda         string `json:"agenda" binding:"required"`
		Resolution     string `json:"resolution" binding:"required"`
		Compliance     string `json:"compliance"`
		GCResolutionID uint64 `json:"gc_resolution_id" binding:"required"`
		BOMDate        string `json:"bom_date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Agenda, resolution, gc_resolution_id, and bom_date are required")
		return
	}

	bomDate, err := utils.ParseDate(req.BOMDate)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	resolution, err := h.bomService.CreateBOMResolution(identity, services.CreateBOMResolutionInput{
		Agenda:         req.Agenda,
		Resolution:     req.Resolution,
		Compliance:     req.Compliance,
		GCResolutionID: req.GCResolutionID,
		BOMDate:        bomDate,
	})
	if err != nil {
		respondBOMWriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"bom_resolution": dto.ToBOMResolutionDTO(*resolution)})
}

// UpdateBOMResolution updates a resolution; a changed meeting date
// regenerates the resolution number
func (h *BOMResolutionHandler) UpdateBOMResolution(c *gin.Context) {
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
		BOMDate    *string `json:"bom_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateBOMResolutionInput{
		Agenda:     req.Agenda,
		Resolution: req.Resolution,
		Compliance: req.Compliance,
	}
	if req.BOMDate != nil {
		bomDate, err := utils.ParseDate(*req.BOMDate)
		if err != nil {
			apierrors.BadRequest(c, err.Error())
			return
		}
		input.BOMDate = &bomDate
	}

	resolution, err := h.bomService.UpdateBOMResolution(identity, id, input)
	if err != nil {
		respondBOMWriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bom_resolution": dto.ToBOMResolutionDTO(*resolution)})
}

// DeleteBOMResolution removes a resolution
func (h *BOMResolutionHandler) DeleteBOMResolution(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.bomService.DeleteBOMResolution(identity, id); err != nil {
		switch {
		case errors.Is(err, services.ErrBOMResolutionNotFound):
			apierrors.NotFound(c, err.Error())
		case errors.Is(err, services.ErrPermissionDenied):
			apierrors.Forbidden(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to delete bom resolution")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "BOM resolution deleted"})
}

func respondBOMWriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPermissionDenied):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrBOMResolutionNotFound),
		errors.Is(err, services.ErrGCResolutionNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAgendaRequired),
		errors.Is(err, services.ErrResolutionRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrDuplicateResolutionNumber):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.InternalError(c, "Failed to write bom resolution")
	}
}
