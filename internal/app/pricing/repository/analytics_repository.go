package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"pricewatch/internal/app/pricing/entity"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository создает репозиторий агрегатов для дашборда
func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

// KPI считает сводные показатели: количество конкурентов, товаров,
// ценовых записей и среднее отклонение цен конкурентов от наших
func (r *analyticsRepository) KPI(ctx context.Context) (*entity.KPIData, error) {
	kpi := &entity.KPIData{}

	if err := r.db.WithContext(ctx).Model(&entity.Competitor{}).Count(&kpi.CompetitorsTracked).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&entity.Product{}).Count(&kpi.ProductsMonitored).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&entity.CompetitorPricing{}).Count(&kpi.PricingRecords).Error; err != nil {
		return nil, err
	}

	// Среднее отклонение в процентах считается только по товарам
	// с заданной ненулевой нашей ценой
	var avgDiff decimal.NullDecimal
	err := r.db.WithContext(ctx).Raw(`
		SELECT ROUND(AVG((cp.price - p.our_price) / p.our_price * 100), 2)
		FROM competitor_pricing cp
		JOIN products p ON p.id = cp.product_id
		WHERE p.our_price IS NOT NULL AND p.our_price > 0
	`).Scan(&avgDiff).Error
	if err != nil {
		return nil, err
	}
	if avgDiff.Valid {
		kpi.AvgPriceDifference = &avgDiff.Decimal
	}

	return kpi, nil
}

// PriceTrends возвращает точки изменений цен за последние days дней
// для построения графика трендов
func (r *analyticsRepository) PriceTrends(ctx context.Context, days int) ([]entity.PriceTrendPoint, error) {
	var points []entity.PriceTrendPoint

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			TO_CHAR(ph.created_at, 'YYYY-MM-DD') AS date,
			ph.new_price AS price,
			c.name AS competitor,
			p.name AS product
		FROM price_history ph
		JOIN competitor_pricing cp ON cp.id = ph.competitor_pricing_id
		JOIN competitors c ON c.id = cp.competitor_id
		JOIN products p ON p.id = cp.product_id
		WHERE ph.created_at >= NOW() - make_interval(days => ?)
		ORDER BY ph.created_at ASC
	`, days).Scan(&points).Error
	if err != nil {
		return nil, err
	}

	return points, nil
}

// TopCompetitors возвращает конкурентов с наибольшим числом
// отслеживаемых цен
func (r *analyticsRepository) TopCompetitors(ctx context.Context, limit int) ([]entity.TopCompetitor, error) {
	var competitors []entity.TopCompetitor

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			c.id,
			c.name,
			c.category,
			ROUND(AVG(cp.price), 2) AS avg_price,
			COUNT(cp.id) AS price_count
		FROM competitors c
		LEFT JOIN competitor_pricing cp ON cp.competitor_id = c.id
		GROUP BY c.id, c.name, c.category
		ORDER BY price_count DESC, c.name ASC
		LIMIT ?
	`, limit).Scan(&competitors).Error
	if err != nil {
		return nil, err
	}

	return competitors, nil
}
