package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/youths4change/webgate/internal/services"
	"github.com/youths4change/webgate/pkg/response"
)

// AnalyticsHandler serves the back-office dashboard numbers.
type AnalyticsHandler struct {
	analytics *services.AnalyticsService
}

func NewAnalyticsHandler(analytics *services.AnalyticsService) (*AnalyticsHandler, error) {
	if analytics == nil {
		return nil, errors.New("analytics handler: analytics service is required")
	}
	return &AnalyticsHandler{analytics: analytics}, nil
}

// Overview returns the headline counters for the dashboard landing view.
func (h *AnalyticsHandler) Overview(c *gin.Context) {
	stats, err := h.analytics.Overview(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

// ProjectsByCountry returns the per-country project breakdown.
func (h *AnalyticsHandler) ProjectsByCountry(c *gin.Context) {
	stats, err := h.analytics.ProjectsByCountry(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, stats, &response.Meta{Count: len(stats)})
}

// DonationStats returns the aggregated donation figures.
func (h *AnalyticsHandler) DonationStats(c *gin.Context) {
	stats, err := h.analytics.DonationStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}
