package service

import (
	"context"

	"github.com/google/uuid"

	"pricewatch/internal/app/pricing/entity"
	"pricewatch/internal/app/pricing/repository"
	"pricewatch/internal/app/pricing/util"
)

type AuthServiceInterface interface {
	Register(ctx context.Context, req *entity.RegisterRequest) (*entity.AuthResponse, error)
	Login(ctx context.Context, req *entity.LoginRequest) (*entity.AuthResponse, error)
	Logout(ctx context.Context, token string) error
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error)
	ValidateToken(ctx context.Context, token string) (*util.JWTClaims, error)
}

type UserServiceInterface interface {
	List(ctx context.Context) ([]entity.User, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role entity.Role) (*entity.User, error)
}

type CatalogServiceInterface interface {
	ListCompetitors(ctx context.Context) ([]entity.Competitor, error)
	GetCompetitor(ctx context.Context, id uuid.UUID) (*entity.Competitor, error)
	CreateCompetitor(ctx context.Context, req *entity.CreateCompetitorRequest) (*entity.Competitor, error)
	UpdateCompetitor(ctx context.Context, id uuid.UUID, req *entity.UpdateCompetitorRequest) (*entity.Competitor, error)
	DeleteCompetitor(ctx context.Context, id uuid.UUID) error

	ListProducts(ctx context.Context) ([]entity.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	CreateProduct(ctx context.Context, req *entity.CreateProductRequest) (*entity.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req *entity.UpdateProductRequest) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type PricingServiceInterface interface {
	Submit(ctx context.Context, req *entity.SubmitPricingRequest, updatedBy uuid.UUID) (*SubmitResult, error)
	List(ctx context.Context, filter repository.PricingFilter) ([]entity.PricingWithRelations, error)
	Delete(ctx context.Context, id uuid.UUID) error
	History(ctx context.Context, pricingID uuid.UUID) ([]entity.HistoryWithUser, error)
}

type AnalyticsServiceInterface interface {
	KPI(ctx context.Context) (*entity.KPIData, error)
	PriceTrends(ctx context.Context, days int) ([]entity.PriceTrendPoint, error)
	TopCompetitors(ctx context.Context, limit int) ([]entity.TopCompetitor, error)
}
