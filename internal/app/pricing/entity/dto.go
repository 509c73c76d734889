package entity

import "github.com/shopspring/decimal"

// RegisterRequest - запрос на регистрацию
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required,min=2"`
}

// LoginRequest - запрос на вход
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse - ответ с пользователем и токеном
type AuthResponse struct {
	User        User   `json:"user"`
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"` // время жизни токена в секундах
}

// CreateCompetitorRequest - запрос на создание конкурента
type CreateCompetitorRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=255"`
	Category    string `json:"category" validate:"required"`
	Website     string `json:"website" validate:"omitempty,url"`
	Description string `json:"description"`
}

// UpdateCompetitorRequest - запрос на обновление конкурента
type UpdateCompetitorRequest struct {
	Name        string `json:"name" validate:"omitempty,min=2,max=255"`
	Category    string `json:"category"`
	Website     string `json:"website" validate:"omitempty,url"`
	Description string `json:"description"`
}

// CreateProductRequest - запрос на создание товара.
// Цена передаётся десятичной строкой ("49.99"), парсится на границе.
type CreateProductRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=255"`
	Category    string `json:"category" validate:"required"`
	Description string `json:"description"`
	OurPrice    string `json:"our_price"`
	Currency    string `json:"currency" validate:"omitempty,len=3"`
}

// UpdateProductRequest - запрос на обновление товара
type UpdateProductRequest struct {
	Name        string `json:"name" validate:"omitempty,min=2,max=255"`
	Category    string `json:"category"`
	Description string `json:"description"`
	OurPrice    string `json:"our_price"`
	Currency    string `json:"currency" validate:"omitempty,len=3"`
}

// SubmitPricingRequest - наблюдение цены конкурента (создаёт или обновляет запись)
type SubmitPricingRequest struct {
	CompetitorID string `json:"competitor_id" validate:"required,uuid4"`
	ProductID    string `json:"product_id" validate:"required,uuid4"`
	Price        string `json:"price" validate:"required"`
	Currency     string `json:"currency" validate:"omitempty,len=3"`
	Notes        string `json:"notes" validate:"omitempty,max=1000"`
}

// UpdateUserRoleRequest - запрос на смену роли пользователя (только admin)
type UpdateUserRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin sales_manager sales_rep"`
}

// ErrorResponse - стандартный ответ об ошибке
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// SuccessResponse - стандартный ответ об успехе
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// PricingListResponse - ответ со списком ценовых записей
type PricingListResponse struct {
	Pricing []PricingWithRelations `json:"pricing"`
	Total   int                    `json:"total"`
}

// HistoryListResponse - ответ с историей изменений цены
type HistoryListResponse struct {
	History []HistoryWithUser `json:"history"`
	Total   int               `json:"total"`
}

// KPIData - агрегированные показатели для дашборда
type KPIData struct {
	CompetitorsTracked int64            `json:"competitors_tracked"`
	ProductsMonitored  int64            `json:"products_monitored"`
	PricingRecords     int64            `json:"pricing_records"`
	AvgPriceDifference *decimal.Decimal `json:"avg_price_difference"` // средний % отклонения от нашей цены
}

// PriceTrendPoint - одна точка ценового тренда
type PriceTrendPoint struct {
	Date       string          `json:"date"`
	Price      decimal.Decimal `json:"price"`
	Competitor string          `json:"competitor"`
	Product    string          `json:"product"`
}

// TopCompetitor - конкурент с агрегатами по количеству наблюдений
type TopCompetitor struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Category   string           `json:"category"`
	AvgPrice   *decimal.Decimal `json:"avg_price"`
	PriceCount int64            `json:"price_count"`
}
