package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pricewatch/internal/app/pricing/entity"
	"pricewatch/internal/app/pricing/repository"
	"pricewatch/internal/app/pricing/repository/mocks"
	"pricewatch/internal/app/pricing/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type pricingHandlerMocks struct {
	pricingRepo    *mocks.MockPricingRepository
	competitorRepo *mocks.MockCompetitorRepository
	productRepo    *mocks.MockProductRepository
	publisher      *mocks.MockMessagePublisher
}

func newTestPricingHandler() (*PricingHandler, *pricingHandlerMocks) {
	m := &pricingHandlerMocks{
		pricingRepo:    new(mocks.MockPricingRepository),
		competitorRepo: new(mocks.MockCompetitorRepository),
		productRepo:    new(mocks.MockProductRepository),
		publisher:      new(mocks.MockMessagePublisher),
	}
	svc := service.NewPricingService(m.pricingRepo, m.competitorRepo, m.productRepo, m.publisher)
	return NewPricingHandler(svc), m
}

// setupAuthedRouter создает тестовый router с подставленным
// аутентифицированным пользователем в контексте
func setupAuthedRouter(userID uuid.UUID, method, path string, handlerFunc gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", entity.RoleSalesRep)
		c.Next()
	})
	switch method {
	case http.MethodGet:
		router.GET(path, handlerFunc)
	case http.MethodPost:
		router.POST(path, handlerFunc)
	case http.MethodDelete:
		router.DELETE(path, handlerFunc)
	}
	return router
}

func submitBody(t *testing.T, req entity.SubmitPricingRequest) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)
	return bytes.NewBuffer(body)
}

// ==================== Submit Tests ====================

func TestPricingHandler_Submit_Created(t *testing.T) {
	// Arrange
	h, m := newTestPricingHandler()

	competitor := &entity.Competitor{ID: uuid.New(), Name: "Acme Corp", Category: "SaaS"}
	product := &entity.Product{ID: uuid.New(), Name: "Analytics Suite", Category: "Analytics", Currency: "USD"}
	userID := uuid.New()

	m.competitorRepo.On("GetByID", mock.Anything, competitor.ID).Return(competitor, nil)
	m.productRepo.On("GetByID", mock.Anything, product.ID).Return(product, nil)
	m.pricingRepo.On("WithTx", mock.Anything, mock.Anything).Return(nil)
	m.pricingRepo.On("FindCurrentForUpdate", mock.Anything, competitor.ID, product.ID).
		Return(nil, repository.ErrPricingNotFound)
	m.pricingRepo.On("Insert", mock.Anything, mock.AnythingOfType("*entity.CompetitorPricing")).Return(nil)

	router := setupAuthedRouter(userID, http.MethodPost, "/api/competitor-pricing", h.Submit)

	body := submitBody(t, entity.SubmitPricingRequest{
		CompetitorID: competitor.ID.String(),
		ProductID:    product.ID.String(),
		Price:        "49.99",
	})

	// Act
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/competitor-pricing", body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	// Assert: новая запись отвечает 201
	assert.Equal(t, http.StatusCreated, w.Code)

	var created entity.CompetitorPricing
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, competitor.ID, created.CompetitorID)
	assert.True(t, created.Price.Equal(decimal.RequireFromString("49.99")))
	assert.Equal(t, userID, created.UpdatedBy)
}

func TestPricingHandler_Submit_Updated(t *testing.T) {
	// Arrange
	h, m := newTestPricingHandler()

	competitor := &entity.Competitor{ID: uuid.New(), Name: "Acme Corp", Category: "SaaS"}
	product := &entity.Product{ID: uuid.New(), Name: "Analytics Suite", Category: "Analytics", Currency: "USD"}
	current := &entity.CompetitorPricing{
		ID:           uuid.New(),
		CompetitorID: competitor.ID,
		ProductID:    product.ID,
		Price:        decimal.RequireFromString("49.99"),
		Currency:     "USD",
	}

	m.competitorRepo.On("GetByID", mock.Anything, competitor.ID).Return(competitor, nil)
	m.productRepo.On("GetByID", mock.Anything, product.ID).Return(product, nil)
	m.pricingRepo.On("WithTx", mock.Anything, mock.Anything).Return(nil)
	m.pricingRepo.On("FindCurrentForUpdate", mock.Anything, competitor.ID, product.ID).Return(current, nil)
	m.pricingRepo.On("Update", mock.Anything, mock.AnythingOfType("*entity.CompetitorPricing")).Return(nil)
	m.pricingRepo.On("InsertHistory", mock.Anything, mock.AnythingOfType("*entity.PriceHistory")).Return(nil)
	m.publisher.On("PublishMessage", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("[]uint8")).Return(nil)

	router := setupAuthedRouter(uuid.New(), http.MethodPost, "/api/competitor-pricing", h.Submit)

	body := submitBody(t, entity.SubmitPricingRequest{
		CompetitorID: competitor.ID.String(),
		ProductID:    product.ID.String(),
		Price:        "44.99",
	})

	// Act
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/competitor-pricing", body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	// Assert: обновление существующей записи отвечает 200
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPricingHandler_Submit_ValidationErrors(t *testing.T) {
	h, _ := newTestPricingHandler()
	router := setupAuthedRouter(uuid.New(), http.MethodPost, "/api/competitor-pricing", h.Submit)

	tests := []struct {
		name string
		req  entity.SubmitPricingRequest
	}{
		{"missing price", entity.SubmitPricingRequest{
			CompetitorID: uuid.NewString(),
			ProductID:    uuid.NewString(),
		}},
		{"bad competitor id", entity.SubmitPricingRequest{
			CompetitorID: "not-a-uuid",
			ProductID:    uuid.NewString(),
			Price:        "10.00",
		}},
		{"bad currency", entity.SubmitPricingRequest{
			CompetitorID: uuid.NewString(),
			ProductID:    uuid.NewString(),
			Price:        "10.00",
			Currency:     "DOLLARS",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/competitor-pricing", submitBody(t, tt.req))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestPricingHandler_Submit_InvalidPrice(t *testing.T) {
	h, _ := newTestPricingHandler()
	router := setupAuthedRouter(uuid.New(), http.MethodPost, "/api/competitor-pricing", h.Submit)

	body := submitBody(t, entity.SubmitPricingRequest{
		CompetitorID: uuid.NewString(),
		ProductID:    uuid.NewString(),
		Price:        "-5.00",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/competitor-pricing", body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPricingHandler_Submit_UnknownCompetitor(t *testing.T) {
	h, m := newTestPricingHandler()

	competitorID := uuid.New()
	m.competitorRepo.On("GetByID", mock.Anything, competitorID).
		Return(nil, repository.ErrCompetitorNotFound)

	router := setupAuthedRouter(uuid.New(), http.MethodPost, "/api/competitor-pricing", h.Submit)

	body := submitBody(t, entity.SubmitPricingRequest{
		CompetitorID: competitorID.String(),
		ProductID:    uuid.NewString(),
		Price:        "10.00",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/competitor-pricing", body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// ==================== List Tests ====================

func TestPricingHandler_List_WithFilters(t *testing.T) {
	// Arrange
	h, m := newTestPricingHandler()

	competitorID := uuid.New()
	m.pricingRepo.On("ListFiltered", mock.Anything, mock.MatchedBy(func(f repository.PricingFilter) bool {
		return f.CompetitorID != nil && *f.CompetitorID == competitorID && f.ProductID == nil
	})).Return([]entity.PricingWithRelations{}, nil)

	router := setupAuthedRouter(uuid.New(), http.MethodGet, "/api/competitor-pricing", h.List)

	// Act
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/competitor-pricing?competitor_id="+competitorID.String(), nil)
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)

	var resp entity.PricingListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Total)
	m.pricingRepo.AssertExpectations(t)
}

func TestPricingHandler_List_WithDateRange(t *testing.T) {
	h, m := newTestPricingHandler()

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m.pricingRepo.On("ListFiltered", mock.Anything, mock.MatchedBy(func(f repository.PricingFilter) bool {
		return f.StartDate != nil && f.StartDate.Equal(from) && f.EndDate != nil
	})).Return([]entity.PricingWithRelations{}, nil)

	router := setupAuthedRouter(uuid.New(), http.MethodGet, "/api/competitor-pricing", h.List)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/competitor-pricing?start_date=2026-01-01&end_date=2026-02-01", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	m.pricingRepo.AssertExpectations(t)
}

func TestPricingHandler_List_BadDateFilter(t *testing.T) {
	h, _ := newTestPricingHandler()
	router := setupAuthedRouter(uuid.New(), http.MethodGet, "/api/competitor-pricing", h.List)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/competitor-pricing?start_date=yesterday", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPricingHandler_List_BadFilter(t *testing.T) {
	h, _ := newTestPricingHandler()
	router := setupAuthedRouter(uuid.New(), http.MethodGet, "/api/competitor-pricing", h.List)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/competitor-pricing?product_id=banana", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ==================== Delete / History Tests ====================

func TestPricingHandler_Delete_Success(t *testing.T) {
	h, m := newTestPricingHandler()

	id := uuid.New()
	m.pricingRepo.On("Delete", mock.Anything, id).Return(nil)

	router := setupAuthedRouter(uuid.New(), http.MethodDelete, "/api/competitor-pricing/:id", h.Delete)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/competitor-pricing/"+id.String(), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestPricingHandler_Delete_NotFound(t *testing.T) {
	h, m := newTestPricingHandler()

	id := uuid.New()
	m.pricingRepo.On("Delete", mock.Anything, id).Return(repository.ErrPricingNotFound)

	router := setupAuthedRouter(uuid.New(), http.MethodDelete, "/api/competitor-pricing/:id", h.Delete)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/competitor-pricing/"+id.String(), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPricingHandler_History_Success(t *testing.T) {
	h, m := newTestPricingHandler()

	pricing := &entity.CompetitorPricing{ID: uuid.New()}
	history := []entity.HistoryWithUser{
		{PriceHistory: entity.PriceHistory{
			ID:                  uuid.New(),
			CompetitorPricingID: pricing.ID,
			OldPrice:            decimal.RequireFromString("49.99"),
			NewPrice:            decimal.RequireFromString("44.99"),
		}},
	}

	m.pricingRepo.On("GetByID", mock.Anything, pricing.ID).Return(pricing, nil)
	m.pricingRepo.On("HistoryByPricingID", mock.Anything, pricing.ID).Return(history, nil)

	router := setupAuthedRouter(uuid.New(), http.MethodGet, "/api/price-history/:id", h.History)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/price-history/"+pricing.ID.String(), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp entity.HistoryListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total)
}
