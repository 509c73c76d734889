package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"pricewatch/internal/app/pricing/entity"
	"pricewatch/internal/app/pricing/repository"
	"pricewatch/internal/app/pricing/util"
	"pricewatch/pkg/logger"
	"pricewatch/pkg/metrics"
)

// hundred для вычисления процентов без повторных аллокаций
var hundred = decimal.NewFromInt(100)

// PricingService реализует прием наблюдений цен конкурентов.
// Одно наблюдение либо создает ценовую запись для пары конкурент-товар,
// либо обновляет существующую; при фактическом изменении цены
// автоматически пишется запись истории.
type PricingService struct {
	pricingRepo    repository.PricingRepository
	competitorRepo repository.CompetitorRepository
	productRepo    repository.ProductRepository
	publisher      util.MessagePublisher
}

// NewPricingService создает новый сервис цен конкурентов
func NewPricingService(
	pricingRepo repository.PricingRepository,
	competitorRepo repository.CompetitorRepository,
	productRepo repository.ProductRepository,
	publisher util.MessagePublisher,
) *PricingService {
	return &PricingService{
		pricingRepo:    pricingRepo,
		competitorRepo: competitorRepo,
		productRepo:    productRepo,
		publisher:      publisher,
	}
}

// SubmitResult - результат приема одного наблюдения цены
type SubmitResult struct {
	Pricing *entity.CompetitorPricing
	// Created: true - запись создана, false - обновлена существующая
	Created bool
	// History заполнена, только если цена фактически изменилась
	History *entity.PriceHistory
}

// Submit принимает наблюдение цены конкурента.
//
// Вся работа с парой (competitor_id, product_id) идет в одной транзакции
// с блокировкой строки, поэтому два конкурентных наблюдения по одной паре
// сериализуются: проигравший гонку вставки получает нарушение уникального
// индекса, savepoint откатывает неудавшуюся вставку, и наблюдение
// применяется как обновление.
func (s *PricingService) Submit(ctx context.Context, req *entity.SubmitPricingRequest, updatedBy uuid.UUID) (*SubmitResult, error) {
	competitorID, err := uuid.Parse(req.CompetitorID)
	if err != nil {
		return nil, ErrCompetitorNotFound
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, ErrProductNotFound
	}

	price, err := parsePrice(req.Price)
	if err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	// Ссылочная целостность проверяется до транзакции: несуществующий
	// конкурент или товар - ошибка клиента, а не гонка
	if _, err := s.competitorRepo.GetByID(ctx, competitorID); err != nil {
		if errors.Is(err, repository.ErrCompetitorNotFound) {
			return nil, ErrCompetitorNotFound
		}
		return nil, fmt.Errorf("failed to get competitor: %w", err)
	}
	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	var result *SubmitResult
	txErr := s.pricingRepo.WithTx(ctx, func(tx repository.PricingRepository) error {
		current, err := tx.FindCurrentForUpdate(ctx, competitorID, productID)
		if err != nil && !errors.Is(err, repository.ErrPricingNotFound) {
			return fmt.Errorf("failed to find current pricing: %w", err)
		}

		if current == nil {
			pricing := &entity.CompetitorPricing{
				ID:           uuid.New(),
				CompetitorID: competitorID,
				ProductID:    productID,
				Price:        price,
				Currency:     currency,
				Notes:        req.Notes,
				UpdatedBy:    updatedBy,
			}

			// Вставка под savepoint'ом (вложенный WithTx): PostgreSQL
			// после ошибки statement'а отвергает остальные запросы
			// транзакции, поэтому нарушение уникального индекса должно
			// откатываться точечно, иначе перечитать запись в этой же
			// транзакции уже не получится.
			err := tx.WithTx(ctx, func(sp repository.PricingRepository) error {
				return sp.Insert(ctx, pricing)
			})
			if err == nil {
				result = &SubmitResult{Pricing: pricing, Created: true}
				return nil
			}
			if !errors.Is(err, repository.ErrPricingExists) {
				return fmt.Errorf("failed to insert pricing: %w", err)
			}

			// Гонка: конкурентная транзакция успела вставить запись для
			// этой пары, savepoint откатил вставку. Перечитываем строку
			// с блокировкой и применяем наблюдение как обновление.
			current, err = tx.FindCurrentForUpdate(ctx, competitorID, productID)
			if err != nil {
				return fmt.Errorf("failed to refetch pricing after conflict: %w", err)
			}
		}

		updated, history, err := s.applyUpdate(ctx, tx, current, price, currency, req.Notes, updatedBy)
		if err != nil {
			return err
		}

		result = &SubmitResult{Pricing: updated, History: history}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.recordSubmit(ctx, result)

	return result, nil
}

// applyUpdate перезаписывает существующую запись и фиксирует историю,
// если цена изменилась. Вызывается под блокировкой FOR UPDATE.
func (s *PricingService) applyUpdate(
	ctx context.Context,
	tx repository.PricingRepository,
	current *entity.CompetitorPricing,
	price decimal.Decimal,
	currency, notes string,
	updatedBy uuid.UUID,
) (*entity.CompetitorPricing, *entity.PriceHistory, error) {
	oldPrice := current.Price
	priceChanged := !oldPrice.Equal(price)

	current.Price = price
	current.Currency = currency
	current.Notes = notes
	current.UpdatedBy = updatedBy

	if err := tx.Update(ctx, current); err != nil {
		return nil, nil, fmt.Errorf("failed to update pricing: %w", err)
	}

	if !priceChanged {
		return current, nil, nil
	}

	history := &entity.PriceHistory{
		ID:                  uuid.New(),
		CompetitorPricingID: current.ID,
		OldPrice:            oldPrice,
		NewPrice:            price,
		ChangePercentage:    changePercentage(oldPrice, price),
		UpdatedBy:           updatedBy,
		CreatedAt:           time.Now(),
	}

	if err := tx.InsertHistory(ctx, history); err != nil {
		return nil, nil, fmt.Errorf("failed to insert price history: %w", err)
	}

	return current, history, nil
}

// recordSubmit обновляет метрики и отправляет событие об изменении цены.
// Kafka недоступность не должна ломать уже закоммиченный прием цены,
// поэтому ошибка публикации только логируется.
func (s *PricingService) recordSubmit(ctx context.Context, result *SubmitResult) {
	if result.Created {
		metrics.PricingSubmissions.WithLabelValues("created").Inc()
	} else {
		metrics.PricingSubmissions.WithLabelValues("updated").Inc()
	}

	history := result.History
	if history == nil {
		return
	}

	if history.NewPrice.GreaterThan(history.OldPrice) {
		metrics.PriceChanges.WithLabelValues("up").Inc()
	} else {
		metrics.PriceChanges.WithLabelValues("down").Inc()
	}
	if history.ChangePercentage != nil {
		pct, _ := history.ChangePercentage.Float64()
		metrics.PriceChangePercentage.Observe(pct)
	}

	event := entity.PricingEvent{
		EventType:        "PRICE_CHANGED",
		PricingID:        result.Pricing.ID,
		CompetitorID:     result.Pricing.CompetitorID,
		ProductID:        result.Pricing.ProductID,
		OldPrice:         history.OldPrice,
		NewPrice:         history.NewPrice,
		ChangePercentage: history.ChangePercentage,
		UpdatedBy:        history.UpdatedBy,
		Timestamp:        time.Now(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Msg("failed to marshal pricing event")
		return
	}

	// Ключ по паре сохраняет порядок событий внутри одной записи
	key := fmt.Sprintf("%s:%s", result.Pricing.CompetitorID, result.Pricing.ProductID)
	if err := s.publisher.PublishMessage(ctx, key, payload); err != nil {
		logger.Error().Err(err).
			Str("pricing_id", result.Pricing.ID.String()).
			Msg("failed to publish pricing event")
	}
}

// List возвращает ценовые записи с необязательными фильтрами
// по конкуренту и товару
func (s *PricingService) List(ctx context.Context, filter repository.PricingFilter) ([]entity.PricingWithRelations, error) {
	records, err := s.pricingRepo.ListFiltered(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list pricing: %w", err)
	}
	return records, nil
}

// Delete удаляет ценовую запись вместе с ее историей
func (s *PricingService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.pricingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrPricingNotFound) {
			return ErrPricingNotFound
		}
		return fmt.Errorf("failed to delete pricing: %w", err)
	}
	return nil
}

// History возвращает историю изменений одной ценовой записи
func (s *PricingService) History(ctx context.Context, pricingID uuid.UUID) ([]entity.HistoryWithUser, error) {
	if _, err := s.pricingRepo.GetByID(ctx, pricingID); err != nil {
		if errors.Is(err, repository.ErrPricingNotFound) {
			return nil, ErrPricingNotFound
		}
		return nil, fmt.Errorf("failed to get pricing: %w", err)
	}

	history, err := s.pricingRepo.HistoryByPricingID(ctx, pricingID)
	if err != nil {
		return nil, fmt.Errorf("failed to get price history: %w", err)
	}

	return history, nil
}

// parsePrice парсит обязательную десятичную строку цены и нормализует
// ее до двух знаков после запятой
func parsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, ErrInvalidPrice
	}
	if price.IsNegative() {
		return decimal.Decimal{}, ErrInvalidPrice
	}
	return price.Round(2), nil
}

// changePercentage считает процент изменения цены, округленный
// до двух знаков. Для нулевой старой цены процент не определен
// (деление на ноль), возвращается nil.
func changePercentage(oldPrice, newPrice decimal.Decimal) *decimal.Decimal {
	if oldPrice.IsZero() {
		return nil
	}
	pct := newPrice.Sub(oldPrice).Div(oldPrice).Mul(hundred).Round(2)
	return &pct
}
