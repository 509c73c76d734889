package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pricewatch/internal/app/pricing/service"
)

// AnalyticsHandler отдает агрегаты для дашборда
type AnalyticsHandler struct {
	analyticsService service.AnalyticsServiceInterface
}

// NewAnalyticsHandler создает новый обработчик аналитики
func NewAnalyticsHandler(analyticsService service.AnalyticsServiceInterface) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// KPI обрабатывает GET /api/analytics/kpi
func (h *AnalyticsHandler) KPI(c *gin.Context) {
	kpi, err := h.analyticsService.KPI(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to get KPI")
		return
	}

	c.JSON(http.StatusOK, kpi)
}

// PriceTrends обрабатывает GET /api/analytics/price-trends?days=30
func (h *AnalyticsHandler) PriceTrends(c *gin.Context) {
	days := 0
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid days parameter")
			return
		}
		days = parsed
	}

	points, err := h.analyticsService.PriceTrends(c.Request.Context(), days)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to get price trends")
		return
	}

	c.JSON(http.StatusOK, points)
}

// TopCompetitors обрабатывает GET /api/analytics/top-competitors?limit=5
func (h *AnalyticsHandler) TopCompetitors(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	competitors, err := h.analyticsService.TopCompetitors(c.Request.Context(), limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to get top competitors")
		return
	}

	c.JSON(http.StatusOK, competitors)
}
