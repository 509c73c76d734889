package service

import (
	"context"
	"fmt"

	"pricewatch/internal/app/pricing/entity"
	"pricewatch/internal/app/pricing/repository"
)

const (
	defaultTrendDays         = 30
	defaultTopCompetitorsCap = 5
)

// AnalyticsService отдает агрегаты для дашборда
type AnalyticsService struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewAnalyticsService создает новый сервис аналитики
func NewAnalyticsService(analyticsRepo repository.AnalyticsRepository) *AnalyticsService {
	return &AnalyticsService{analyticsRepo: analyticsRepo}
}

// KPI возвращает сводные показатели дашборда
func (s *AnalyticsService) KPI(ctx context.Context) (*entity.KPIData, error) {
	kpi, err := s.analyticsRepo.KPI(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get KPI: %w", err)
	}
	return kpi, nil
}

// PriceTrends возвращает точки изменений цен за период.
// days <= 0 заменяется периодом по умолчанию.
func (s *AnalyticsService) PriceTrends(ctx context.Context, days int) ([]entity.PriceTrendPoint, error) {
	if days <= 0 {
		days = defaultTrendDays
	}

	points, err := s.analyticsRepo.PriceTrends(ctx, days)
	if err != nil {
		return nil, fmt.Errorf("failed to get price trends: %w", err)
	}
	return points, nil
}

// TopCompetitors возвращает конкурентов с наибольшим числом наблюдений
func (s *AnalyticsService) TopCompetitors(ctx context.Context, limit int) ([]entity.TopCompetitor, error) {
	if limit <= 0 {
		limit = defaultTopCompetitorsCap
	}

	competitors, err := s.analyticsRepo.TopCompetitors(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top competitors: %w", err)
	}
	return competitors, nil
}
