package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"pricewatch/internal/app/pricing/entity"
	"pricewatch/internal/app/pricing/repository"
	"pricewatch/internal/app/pricing/service"
)

// PricingHandler обрабатывает HTTP запросы цен конкурентов
type PricingHandler struct {
	pricingService service.PricingServiceInterface
	validator      *validator.Validate
}

// NewPricingHandler создает новый обработчик цен
func NewPricingHandler(pricingService service.PricingServiceInterface) *PricingHandler {
	return &PricingHandler{
		pricingService: pricingService,
		validator:      validator.New(),
	}
}

// Submit обрабатывает POST /api/competitor-pricing.
// Создание новой записи отвечает 201, обновление существующей - 200.
func (h *PricingHandler) Submit(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req entity.SubmitPricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(c, http.StatusBadRequest, formatValidationError(err))
		return
	}

	result, err := h.pricingService.Submit(c.Request.Context(), &req, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPrice):
			respondError(c, http.StatusBadRequest, "Price must be a non-negative decimal")
		case errors.Is(err, service.ErrCompetitorNotFound):
			respondError(c, http.StatusNotFound, "Competitor not found")
		case errors.Is(err, service.ErrProductNotFound):
			respondError(c, http.StatusNotFound, "Product not found")
		default:
			respondError(c, http.StatusInternalServerError, "Failed to save pricing")
		}
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}

	c.JSON(status, result.Pricing)
}

// List обрабатывает GET /api/competitor-pricing с необязательными
// фильтрами competitor_id, product_id, start_date и end_date
func (h *PricingHandler) List(c *gin.Context) {
	var filter repository.PricingFilter

	if raw := c.Query("competitor_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid competitor_id filter")
			return
		}
		filter.CompetitorID = &id
	}
	if raw := c.Query("product_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid product_id filter")
			return
		}
		filter.ProductID = &id
	}
	if raw := c.Query("start_date"); raw != "" {
		t, err := parseDateParam(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid start_date filter")
			return
		}
		filter.StartDate = &t
	}
	if raw := c.Query("end_date"); raw != "" {
		t, err := parseDateParam(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid end_date filter")
			return
		}
		filter.EndDate = &t
	}

	records, err := h.pricingService.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to get pricing")
		return
	}

	c.JSON(http.StatusOK, entity.PricingListResponse{
		Pricing: records,
		Total:   len(records),
	})
}

// parseDateParam принимает дату фильтра как RFC3339 или как YYYY-MM-DD
func parseDateParam(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

// Delete обрабатывает DELETE /api/competitor-pricing/:id
func (h *PricingHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid pricing ID")
		return
	}

	if err := h.pricingService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrPricingNotFound) {
			respondError(c, http.StatusNotFound, "Pricing record not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to delete pricing")
		return
	}

	c.Status(http.StatusNoContent)
}

// History обрабатывает GET /api/price-history/:id,
// где id - идентификатор ценовой записи
func (h *PricingHandler) History(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid pricing ID")
		return
	}

	history, err := h.pricingService.History(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPricingNotFound) {
			respondError(c, http.StatusNotFound, "Pricing record not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to get price history")
		return
	}

	c.JSON(http.StatusOK, entity.HistoryListResponse{
		History: history,
		Total:   len(history),
	})
}
