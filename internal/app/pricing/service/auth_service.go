package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"pricewatch/internal/app/pricing/entity"
	"pricewatch/internal/app/pricing/repository"
	"pricewatch/internal/app/pricing/util"
	"pricewatch/pkg/logger"
	"pricewatch/pkg/metrics"
)

// AuthService обрабатывает бизнес-логику аутентификации
type AuthService struct {
	userRepo   repository.UserRepository
	tokenRepo  repository.TokenRepository
	jwtManager *util.JWTManager
}

// NewAuthService создает новый сервис аутентификации
func NewAuthService(
	userRepo repository.UserRepository,
	tokenRepo repository.TokenRepository,
	jwtManager *util.JWTManager,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtManager: jwtManager,
	}
}

// Register регистрирует нового пользователя с ролью sales_rep по умолчанию
func (s *AuthService) Register(ctx context.Context, req *entity.RegisterRequest) (*entity.AuthResponse, error) {
	user := &entity.User{
		ID:        uuid.New(),
		Username:  req.Username,
		Email:     req.Email,
		FullName:  req.FullName,
		Role:      entity.RoleSalesRep,
		CreatedAt: time.Now(),
	}

	passwordHash, err := util.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = passwordHash

	// Уникальность username и email обеспечивается индексами БД,
	// предварительная проверка дала бы только гонку
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.jwtManager.GenerateAccessToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	metrics.AuthRegistrations.Inc()
	logger.Info().
		Str("user_id", user.ID.String()).
		Str("username", user.Username).
		Msg("user registered")

	return &entity.AuthResponse{
		User:        *user,
		AccessToken: token,
		ExpiresIn:   int64(s.jwtManager.GetAccessTokenDuration().Seconds()),
	}, nil
}

// Login проверяет учетные данные и выдает access токен
func (s *AuthService) Login(ctx context.Context, req *entity.LoginRequest) (*entity.AuthResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			metrics.AuthLogins.WithLabelValues("failure").Inc()
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !util.CheckPassword(req.Password, user.PasswordHash) {
		metrics.AuthLogins.WithLabelValues("failure").Inc()
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateAccessToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	metrics.AuthLogins.WithLabelValues("success").Inc()

	return &entity.AuthResponse{
		User:        *user,
		AccessToken: token,
		ExpiresIn:   int64(s.jwtManager.GetAccessTokenDuration().Seconds()),
	}, nil
}

// Logout отзывает access токен через черный список в Redis.
// Токен остается в списке до своего естественного истечения.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.jwtManager.ValidateToken(token)
	if err != nil {
		if errors.Is(err, util.ErrExpiredToken) {
			// Истекший токен и так недействителен
			return nil
		}
		return ErrInvalidToken
	}

	if err := s.tokenRepo.AddToBlacklist(ctx, token, claims.ExpiresAt.Time); err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}

	return nil
}

// GetCurrentUser возвращает пользователя по его ID из токена
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// ValidateToken проверяет подпись токена и отсутствие его в черном списке
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*util.JWTClaims, error) {
	claims, err := s.jwtManager.ValidateToken(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	blacklisted, err := s.tokenRepo.IsBlacklisted(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to check blacklist: %w", err)
	}
	if blacklisted {
		return nil, ErrTokenBlacklisted
	}

	return claims, nil
}
