package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"pricewatch/internal/app/pricing/entity"
	"pricewatch/internal/app/pricing/repository"
	"pricewatch/internal/app/pricing/util"
	"pricewatch/pkg/logger"
)

// listCacheTTL - время жизни кеша справочных списков.
// Конкуренты и товары меняются редко, час устаревания приемлем.
const listCacheTTL = time.Hour

// CatalogService управляет справочниками конкурентов и товаров
type CatalogService struct {
	competitorRepo repository.CompetitorRepository
	productRepo    repository.ProductRepository
	cache          util.ListCache
}

// NewCatalogService создает новый сервис справочников
func NewCatalogService(
	competitorRepo repository.CompetitorRepository,
	productRepo repository.ProductRepository,
	cache util.ListCache,
) *CatalogService {
	return &CatalogService{
		competitorRepo: competitorRepo,
		productRepo:    productRepo,
		cache:          cache,
	}
}

// ListCompetitors возвращает всех конкурентов, используя Redis кеш
func (s *CatalogService) ListCompetitors(ctx context.Context) ([]entity.Competitor, error) {
	if cached, err := s.cache.GetCompetitors(ctx); err == nil && cached != nil {
		return cached, nil
	}

	competitors, err := s.competitorRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list competitors: %w", err)
	}

	// Ошибка кеша не должна ломать чтение
	if err := s.cache.SetCompetitors(ctx, competitors, listCacheTTL); err != nil {
		logger.Warn().Err(err).Msg("failed to cache competitors")
	}

	return competitors, nil
}

// GetCompetitor возвращает конкурента по ID
func (s *CatalogService) GetCompetitor(ctx context.Context, id uuid.UUID) (*entity.Competitor, error) {
	competitor, err := s.competitorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCompetitorNotFound) {
			return nil, ErrCompetitorNotFound
		}
		return nil, fmt.Errorf("failed to get competitor: %w", err)
	}
	return competitor, nil
}

// CreateCompetitor создает нового конкурента и сбрасывает кеш списка
func (s *CatalogService) CreateCompetitor(ctx context.Context, req *entity.CreateCompetitorRequest) (*entity.Competitor, error) {
	competitor := &entity.Competitor{
		ID:          uuid.New(),
		Name:        req.Name,
		Category:    req.Category,
		Website:     req.Website,
		Description: req.Description,
		CreatedAt:   time.Now(),
	}

	if err := s.competitorRepo.Create(ctx, competitor); err != nil {
		return nil, fmt.Errorf("failed to create competitor: %w", err)
	}

	s.invalidateCompetitors(ctx)

	return competitor, nil
}

// UpdateCompetitor обновляет данные конкурента
func (s *CatalogService) UpdateCompetitor(ctx context.Context, id uuid.UUID, req *entity.UpdateCompetitorRequest) (*entity.Competitor, error) {
	competitor, err := s.competitorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCompetitorNotFound) {
			return nil, ErrCompetitorNotFound
		}
		return nil, fmt.Errorf("failed to get competitor: %w", err)
	}

	if req.Name != "" {
		competitor.Name = req.Name
	}
	if req.Category != "" {
		competitor.Category = req.Category
	}
	if req.Website != "" {
		competitor.Website = req.Website
	}
	if req.Description != "" {
		competitor.Description = req.Description
	}

	if err := s.competitorRepo.Update(ctx, competitor); err != nil {
		if errors.Is(err, repository.ErrCompetitorNotFound) {
			return nil, ErrCompetitorNotFound
		}
		return nil, fmt.Errorf("failed to update competitor: %w", err)
	}

	s.invalidateCompetitors(ctx)

	return competitor, nil
}

// DeleteCompetitor удаляет конкурента вместе с его ценовыми записями
func (s *CatalogService) DeleteCompetitor(ctx context.Context, id uuid.UUID) error {
	if err := s.competitorRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCompetitorNotFound) {
			return ErrCompetitorNotFound
		}
		return fmt.Errorf("failed to delete competitor: %w", err)
	}

	s.invalidateCompetitors(ctx)

	return nil
}

// ListProducts возвращает все товары, используя Redis кеш
func (s *CatalogService) ListProducts(ctx context.Context) ([]entity.Product, error) {
	if cached, err := s.cache.GetProducts(ctx); err == nil && cached != nil {
		return cached, nil
	}

	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	if err := s.cache.SetProducts(ctx, products, listCacheTTL); err != nil {
		logger.Warn().Err(err).Msg("failed to cache products")
	}

	return products, nil
}

// GetProduct возвращает товар по ID
func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

// CreateProduct создает новый товар и сбрасывает кеш списка
func (s *CatalogService) CreateProduct(ctx context.Context, req *entity.CreateProductRequest) (*entity.Product, error) {
	ourPrice, err := parseOptionalPrice(req.OurPrice)
	if err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	product := &entity.Product{
		ID:          uuid.New(),
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		OurPrice:    ourPrice,
		Currency:    currency,
		CreatedAt:   time.Now(),
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.invalidateProducts(ctx)

	return product, nil
}

// UpdateProduct обновляет данные товара
func (s *CatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, req *entity.UpdateProductRequest) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if req.Name != "" {
		product.Name = req.Name
	}
	if req.Category != "" {
		product.Category = req.Category
	}
	if req.Description != "" {
		product.Description = req.Description
	}
	if req.Currency != "" {
		product.Currency = req.Currency
	}
	if req.OurPrice != "" {
		ourPrice, err := parseOptionalPrice(req.OurPrice)
		if err != nil {
			return nil, err
		}
		product.OurPrice = ourPrice
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.invalidateProducts(ctx)

	return product, nil
}

// DeleteProduct удаляет товар вместе с его ценовыми записями
func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.invalidateProducts(ctx)

	return nil
}

func (s *CatalogService) invalidateCompetitors(ctx context.Context) {
	if err := s.cache.DeleteCompetitors(ctx); err != nil {
		logger.Warn().Err(err).Msg("failed to invalidate competitors cache")
	}
}

func (s *CatalogService) invalidateProducts(ctx context.Context) {
	if err := s.cache.DeleteProducts(ctx); err != nil {
		logger.Warn().Err(err).Msg("failed to invalidate products cache")
	}
}

// parseOptionalPrice парсит необязательную десятичную строку цены.
// Пустая строка означает отсутствие цены. Отрицательные значения
// и не-десятичные строки отклоняются.
func parseOptionalPrice(raw string) (*decimal.Decimal, error) {
	if raw == "" {
		return nil, nil
	}

	price, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, ErrInvalidPrice
	}
	if price.IsNegative() {
		return nil, ErrInvalidPrice
	}

	rounded := price.Round(2)
	return &rounded, nil
}
