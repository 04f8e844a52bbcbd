package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/felano-technologies/poultrycare/internal/service/statistics"
)

// StatsHandler exposes the derived farm statistics endpoints.
type StatsHandler struct {
	svc    *statistics.Service
	logger *zap.Logger
}

// NewStatsHandler constructs the HTTP handler adapter.
func NewStatsHandler(svc *statistics.Service, logger *zap.Logger) *StatsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsHandler{svc: svc, logger: logger}
}

// FarmStatistics returns the farm's full derived KPI set.
func (h *StatsHandler) FarmStatistics(c *gin.Context) {
	stats, err := h.svc.FarmStatistics(c.Request.Context(), farmID(c))
	if err != nil {
		h.logger.Error("statistics computation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to compute farm statistics"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// FeedConsumption returns the weekly Mon..Sun feed series.
func (h *StatsHandler) FeedConsumption(c *gin.Context) {
	stats, err := h.svc.FeedConsumption(c.Request.Context(), farmID(c))
	if err != nil {
		h.logger.Error("feed stats computation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to compute feed statistics"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
