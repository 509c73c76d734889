package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"pricewatch/internal/app/pricing/entity"
	"pricewatch/internal/app/pricing/repository"
	"pricewatch/pkg/logger"
)

// UserService управляет пользователями (доступно только администраторам)
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService создает новый сервис пользователей
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// List возвращает всех пользователей системы
func (s *UserService) List(ctx context.Context) ([]entity.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// UpdateRole меняет роль пользователя
func (s *UserService) UpdateRole(ctx context.Context, id uuid.UUID, role entity.Role) (*entity.User, error) {
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	if err := s.userRepo.UpdateRole(ctx, id, role); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user role: %w", err)
	}

	logger.Info().
		Str("user_id", id.String()).
		Str("role", string(role)).
		Msg("user role updated")

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get updated user: %w", err)
	}

	return user, nil
}
