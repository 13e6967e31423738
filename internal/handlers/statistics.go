package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/klsociety/governance-records-api/internal/services"
)

type StatisticsHandler struct {
	statisticsService *services.StatisticsService
}

func NewStatisticsHandler(statisticsService *services.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{statisticsService: statisticsService}
}

// GetStatistics returns entity counts within the caller's scope
func (h *StatisticsHandler) GetStatistics(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	stats, err := h.statisticsService.GetStatistics(identity)
	if err != nil {
		respondScopeError(c, err, "Failed to compute statistics")
		return
	}

	c.JSON(http.StatusOK, gin.H{"statistics": stats})
}
