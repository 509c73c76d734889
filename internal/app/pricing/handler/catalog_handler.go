package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"pricewatch/internal/app/pricing/entity"
	"pricewatch/internal/app/pricing/service"
)

// CatalogHandler обрабатывает HTTP запросы справочников
// конкурентов и товаров
type CatalogHandler struct {
	catalogService service.CatalogServiceInterface
	validator      *validator.Validate
}

// NewCatalogHandler создает новый обработчик справочников
func NewCatalogHandler(catalogService service.CatalogServiceInterface) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		validator:      validator.New(),
	}
}

// === COMPETITORS ===

// ListCompetitors обрабатывает GET /api/competitors
func (h *CatalogHandler) ListCompetitors(c *gin.Context) {
	competitors, err := h.catalogService.ListCompetitors(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to get competitors")
		return
	}

	c.JSON(http.StatusOK, competitors)
}

// GetCompetitor обрабатывает GET /api/competitors/:id
func (h *CatalogHandler) GetCompetitor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid competitor ID")
		return
	}

	competitor, err := h.catalogService.GetCompetitor(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCompetitorNotFound) {
			respondError(c, http.StatusNotFound, "Competitor not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to get competitor")
		return
	}

	c.JSON(http.StatusOK, competitor)
}

// CreateCompetitor обрабатывает POST /api/competitors
func (h *CatalogHandler) CreateCompetitor(c *gin.Context) {
	var req entity.CreateCompetitorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(c, http.StatusBadRequest, formatValidationError(err))
		return
	}

	competitor, err := h.catalogService.CreateCompetitor(c.Request.Context(), &req)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to create competitor")
		return
	}

	c.JSON(http.StatusCreated, competitor)
}

// UpdateCompetitor обрабатывает PUT /api/competitors/:id
func (h *CatalogHandler) UpdateCompetitor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid competitor ID")
		return
	}

	var req entity.UpdateCompetitorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(c, http.StatusBadRequest, formatValidationError(err))
		return
	}

	competitor, err := h.catalogService.UpdateCompetitor(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrCompetitorNotFound) {
			respondError(c, http.StatusNotFound, "Competitor not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to update competitor")
		return
	}

	c.JSON(http.StatusOK, competitor)
}

// DeleteCompetitor обрабатывает DELETE /api/competitors/:id
func (h *CatalogHandler) DeleteCompetitor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid competitor ID")
		return
	}

	if err := h.catalogService.DeleteCompetitor(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrCompetitorNotFound) {
			respondError(c, http.StatusNotFound, "Competitor not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to delete competitor")
		return
	}

	c.Status(http.StatusNoContent)
}

// === PRODUCTS ===

// ListProducts обрабатывает GET /api/products
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products, err := h.catalogService.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to get products")
		return
	}

	c.JSON(http.StatusOK, products)
}

// GetProduct обрабатывает GET /api/products/:id
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid product ID")
		return
	}

	product, err := h.catalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, http.StatusNotFound, "Product not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to get product")
		return
	}

	c.JSON(http.StatusOK, product)
}

// CreateProduct обрабатывает POST /api/products
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req entity.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(c, http.StatusBadRequest, formatValidationError(err))
		return
	}

	product, err := h.catalogService.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPrice) {
			respondError(c, http.StatusBadRequest, "Price must be a non-negative decimal")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to create product")
		return
	}

	c.JSON(http.StatusCreated, product)
}

// UpdateProduct обрабатывает PUT /api/products/:id
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var req entity.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(c, http.StatusBadRequest, formatValidationError(err))
		return
	}

	product, err := h.catalogService.UpdateProduct(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			respondError(c, http.StatusNotFound, "Product not found")
		case errors.Is(err, service.ErrInvalidPrice):
			respondError(c, http.StatusBadRequest, "Price must be a non-negative decimal")
		default:
			respondError(c, http.StatusInternalServerError, "Failed to update product")
		}
		return
	}

	c.JSON(http.StatusOK, product)
}

// DeleteProduct обрабатывает DELETE /api/products/:id
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid product ID")
		return
	}

	if err := h.catalogService.DeleteProduct(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, http.StatusNotFound, "Product not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to delete product")
		return
	}

	c.Status(http.StatusNoContent)
}
