package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"pricewatch/internal/app/pricing/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role entity.Role) error
	List(ctx context.Context) ([]entity.User, error)
}

type CompetitorRepository interface {
	Create(ctx context.Context, competitor *entity.Competitor) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Competitor, error)
	Update(ctx context.Context, competitor *entity.Competitor) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entity.Competitor, error)
}

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entity.Product, error)
}

// PricingFilter - необязательные фильтры списка ценовых записей.
// nil-поле означает отсутствие фильтра, фильтры комбинируются через AND.
type PricingFilter struct {
	CompetitorID *uuid.UUID
	ProductID    *uuid.UUID
	// Диапазон по времени последнего обновления записи, границы включительно
	StartDate *time.Time
	EndDate   *time.Time
}

// PricingRepository работает с текущими ценами конкурентов и их историей.
// Методы помеченные "внутри транзакции" обязаны вызываться через WithTx,
// иначе блокировка FOR UPDATE не даёт гарантий.
type PricingRepository interface {
	// WithTx выполняет fn в одной транзакции БД; fn получает
	// репозиторий, привязанный к этой транзакции. Вложенный вызов
	// открывает savepoint: ошибка внутреннего fn откатывается
	// точечно, не обрывая внешнюю транзакцию
	WithTx(ctx context.Context, fn func(PricingRepository) error) error

	// FindCurrentForUpdate возвращает текущую запись для пары
	// с блокировкой строки (SELECT ... FOR UPDATE) или
	// ErrPricingNotFound; вызывается внутри транзакции
	FindCurrentForUpdate(ctx context.Context, competitorID, productID uuid.UUID) (*entity.CompetitorPricing, error)

	// Insert создает новую запись; возвращает ErrPricingExists,
	// если пара уже занята (нарушение уникального индекса)
	Insert(ctx context.Context, pricing *entity.CompetitorPricing) error

	// Update перезаписывает цену, валюту, заметки и автора записи
	Update(ctx context.Context, pricing *entity.CompetitorPricing) error

	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.CompetitorPricing, error)
	ListFiltered(ctx context.Context, filter PricingFilter) ([]entity.PricingWithRelations, error)

	InsertHistory(ctx context.Context, history *entity.PriceHistory) error
	HistoryByPricingID(ctx context.Context, pricingID uuid.UUID) ([]entity.HistoryWithUser, error)
}

// AnalyticsRepository считает агрегаты для дашборда
type AnalyticsRepository interface {
	KPI(ctx context.Context) (*entity.KPIData, error)
	PriceTrends(ctx context.Context, days int) ([]entity.PriceTrendPoint, error)
	TopCompetitors(ctx context.Context, limit int) ([]entity.TopCompetitor, error)
}

// TokenRepository хранит черный список отозванных JWT токенов
type TokenRepository interface {
	AddToBlacklist(ctx context.Context, token string, expiresAt time.Time) error
	IsBlacklisted(ctx context.Context, token string) (bool, error)
}
