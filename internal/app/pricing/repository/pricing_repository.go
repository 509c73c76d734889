package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pricewatch/internal/app/pricing/entity"
)

var (
	ErrPricingNotFound = errors.New("pricing record not found")
	// ErrPricingExists - пара (competitor_id, product_id) уже занята.
	// Возникает при гонке двух конкурентных вставок, service повторяет
	// попытку как обновление.
	ErrPricingExists = errors.New("pricing record already exists")
)

type pricingRepository struct {
	db *gorm.DB
}

// NewPricingRepository создает новый репозиторий цен конкурентов
func NewPricingRepository(db *gorm.DB) PricingRepository {
	return &pricingRepository{db: db}
}

// WithTx выполняет fn в одной транзакции PostgreSQL.
// fn получает репозиторий, привязанный к транзакции, поэтому
// FindCurrentForUpdate внутри fn действительно держит блокировку до коммита.
//
// Вложенный вызов WithTx внутри fn открывает SAVEPOINT вместо новой
// транзакции (так работает gorm.Transaction на postgres): ошибка
// внутреннего fn откатывает только до savepoint'а, внешняя транзакция
// остается рабочей. PostgreSQL после ошибки statement'а отвергает все
// запросы до отката, поэтому без savepoint'а транзакцию после
// неудавшейся вставки продолжить нельзя.
func (r *pricingRepository) WithTx(ctx context.Context, fn func(PricingRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&pricingRepository{db: tx})
	})
}

// FindCurrentForUpdate находит запись для пары конкурент-товар с
// блокировкой SELECT ... FOR UPDATE. Блокировка держит строку до конца
// транзакции, поэтому конкурентный Submit по той же паре дождется
// коммита и увидит свежую цену.
func (r *pricingRepository) FindCurrentForUpdate(ctx context.Context, competitorID, productID uuid.UUID) (*entity.CompetitorPricing, error) {
	var pricing entity.CompetitorPricing
	result := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&pricing, "competitor_id = ? AND product_id = ?", competitorID, productID)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPricingNotFound
		}
		return nil, result.Error
	}

	return &pricing, nil
}

// Insert создает новую ценовую запись.
// Уникальный индекс idx_pricing_pair превращает гонку двух вставок
// в ErrPricingExists вместо двух записей на одну пару.
func (r *pricingRepository) Insert(ctx context.Context, pricing *entity.CompetitorPricing) error {
	result := r.db.WithContext(ctx).Create(pricing)

	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return ErrPricingExists
		}
		return result.Error
	}

	return nil
}

// Update перезаписывает цену, валюту, заметки и автора записи
func (r *pricingRepository) Update(ctx context.Context, pricing *entity.CompetitorPricing) error {
	result := r.db.WithContext(ctx).Model(pricing).
		Where("id = ?", pricing.ID).
		Updates(map[string]interface{}{
			"price":      pricing.Price,
			"currency":   pricing.Currency,
			"notes":      pricing.Notes,
			"updated_by": pricing.UpdatedBy,
		})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrPricingNotFound
	}

	return nil
}

// Delete удаляет ценовую запись
// История изменений удаляется автоматически через CASCADE
func (r *pricingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entity.CompetitorPricing{}, "id = ?", id)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrPricingNotFound
	}

	return nil
}

// GetByID получает ценовую запись по ID
func (r *pricingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.CompetitorPricing, error) {
	var pricing entity.CompetitorPricing
	result := r.db.WithContext(ctx).First(&pricing, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPricingNotFound
		}
		return nil, result.Error
	}

	return &pricing, nil
}

// ListFiltered возвращает ценовые записи со связанными конкурентом,
// товаром и автором. Фильтры необязательны и комбинируются через AND,
// сортировка по свежести обновления.
func (r *pricingRepository) ListFiltered(ctx context.Context, filter PricingFilter) ([]entity.PricingWithRelations, error) {
	query := r.db.WithContext(ctx).
		Preload("Competitor").
		Preload("Product").
		Preload("UpdatedByUser")

	if filter.CompetitorID != nil {
		query = query.Where("competitor_id = ?", *filter.CompetitorID)
	}
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	if filter.StartDate != nil {
		query = query.Where("updated_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("updated_at <= ?", *filter.EndDate)
	}

	var records []entity.CompetitorPricing
	result := query.Order("updated_at DESC").Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}

	enriched := make([]entity.PricingWithRelations, 0, len(records))
	for _, rec := range records {
		item := entity.PricingWithRelations{CompetitorPricing: rec}
		if rec.Competitor != nil {
			item.Competitor = *rec.Competitor
		}
		if rec.Product != nil {
			item.Product = *rec.Product
		}
		if rec.UpdatedByUser != nil {
			item.UpdatedByUser = *rec.UpdatedByUser
		}
		enriched = append(enriched, item)
	}

	return enriched, nil
}

// InsertHistory добавляет запись в историю изменений цены
func (r *pricingRepository) InsertHistory(ctx context.Context, history *entity.PriceHistory) error {
	result := r.db.WithContext(ctx).Create(history)
	return result.Error
}

// HistoryByPricingID возвращает историю изменений одной ценовой записи,
// свежие изменения первыми
func (r *pricingRepository) HistoryByPricingID(ctx context.Context, pricingID uuid.UUID) ([]entity.HistoryWithUser, error) {
	var records []entity.PriceHistory
	result := r.db.WithContext(ctx).
		Preload("UpdatedByUser").
		Where("competitor_pricing_id = ?", pricingID).
		Order("created_at DESC").
		Find(&records)

	if result.Error != nil {
		return nil, result.Error
	}

	enriched := make([]entity.HistoryWithUser, 0, len(records))
	for _, rec := range records {
		item := entity.HistoryWithUser{PriceHistory: rec}
		if rec.UpdatedByUser != nil {
			item.UpdatedByUser = *rec.UpdatedByUser
		}
		enriched = append(enriched, item)
	}

	return enriched, nil
}
