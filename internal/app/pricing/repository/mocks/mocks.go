package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"pricewatch/internal/app/pricing/entity"
	"pricewatch/internal/app/pricing/repository"
)

// MockUserRepository мок для UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role entity.Role) error {
	args := m.Called(ctx, id, role)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context) ([]entity.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.User), args.Error(1)
}

// MockCompetitorRepository мок для CompetitorRepository
type MockCompetitorRepository struct {
	mock.Mock
}

func (m *MockCompetitorRepository) Create(ctx context.Context, competitor *entity.Competitor) error {
	args := m.Called(ctx, competitor)
	return args.Error(0)
}

func (m *MockCompetitorRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Competitor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Competitor), args.Error(1)
}

func (m *MockCompetitorRepository) Update(ctx context.Context, competitor *entity.Competitor) error {
	args := m.Called(ctx, competitor)
	return args.Error(0)
}

func (m *MockCompetitorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCompetitorRepository) List(ctx context.Context) ([]entity.Competitor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Competitor), args.Error(1)
}

// MockProductRepository мок для ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *entity.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, product *entity.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) List(ctx context.Context) ([]entity.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Product), args.Error(1)
}

// MockPricingRepository мок для PricingRepository.
// WithTx выполняет fn на том же моке и возвращает его ошибку;
// вложенный вызов фиксируется отдельным обращением к WithTx,
// что повторяет форму "транзакция + savepoint" без настоящей БД.
type MockPricingRepository struct {
	mock.Mock
}

func (m *MockPricingRepository) WithTx(ctx context.Context, fn func(repository.PricingRepository) error) error {
	args := m.Called(ctx, mock.Anything)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(m)
}

func (m *MockPricingRepository) FindCurrentForUpdate(ctx context.Context, competitorID, productID uuid.UUID) (*entity.CompetitorPricing, error) {
	args := m.Called(ctx, competitorID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CompetitorPricing), args.Error(1)
}

func (m *MockPricingRepository) Insert(ctx context.Context, pricing *entity.CompetitorPricing) error {
	args := m.Called(ctx, pricing)
	return args.Error(0)
}

func (m *MockPricingRepository) Update(ctx context.Context, pricing *entity.CompetitorPricing) error {
	args := m.Called(ctx, pricing)
	return args.Error(0)
}

func (m *MockPricingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPricingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.CompetitorPricing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CompetitorPricing), args.Error(1)
}

func (m *MockPricingRepository) ListFiltered(ctx context.Context, filter repository.PricingFilter) ([]entity.PricingWithRelations, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.PricingWithRelations), args.Error(1)
}

func (m *MockPricingRepository) InsertHistory(ctx context.Context, history *entity.PriceHistory) error {
	args := m.Called(ctx, history)
	return args.Error(0)
}

func (m *MockPricingRepository) HistoryByPricingID(ctx context.Context, pricingID uuid.UUID) ([]entity.HistoryWithUser, error) {
	args := m.Called(ctx, pricingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.HistoryWithUser), args.Error(1)
}

// MockAnalyticsRepository мок для AnalyticsRepository
type MockAnalyticsRepository struct {
	mock.Mock
}

func (m *MockAnalyticsRepository) KPI(ctx context.Context) (*entity.KPIData, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.KPIData), args.Error(1)
}

func (m *MockAnalyticsRepository) PriceTrends(ctx context.Context, days int) ([]entity.PriceTrendPoint, error) {
	args := m.Called(ctx, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.PriceTrendPoint), args.Error(1)
}

func (m *MockAnalyticsRepository) TopCompetitors(ctx context.Context, limit int) ([]entity.TopCompetitor, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.TopCompetitor), args.Error(1)
}

// MockListCache мок для util.ListCache
type MockListCache struct {
	mock.Mock
}

func (m *MockListCache) SetCompetitors(ctx context.Context, competitors []entity.Competitor, ttl time.Duration) error {
	args := m.Called(ctx, competitors, ttl)
	return args.Error(0)
}

func (m *MockListCache) GetCompetitors(ctx context.Context) ([]entity.Competitor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Competitor), args.Error(1)
}

func (m *MockListCache) DeleteCompetitors(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockListCache) SetProducts(ctx context.Context, products []entity.Product, ttl time.Duration) error {
	args := m.Called(ctx, products, ttl)
	return args.Error(0)
}

func (m *MockListCache) GetProducts(ctx context.Context) ([]entity.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Product), args.Error(1)
}

func (m *MockListCache) DeleteProducts(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockMessagePublisher мок для util.MessagePublisher
type MockMessagePublisher struct {
	mock.Mock
}

func (m *MockMessagePublisher) PublishMessage(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockMessagePublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockTokenRepository мок для TokenRepository
type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) AddToBlacklist(ctx context.Context, token string, expiresAt time.Time) error {
	args := m.Called(ctx, token, expiresAt)
	return args.Error(0)
}

func (m *MockTokenRepository) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}
