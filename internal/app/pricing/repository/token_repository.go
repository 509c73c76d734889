package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisTokenRepository struct {
	client *redis.Client
}

// NewRedisTokenRepository создает Redis репозиторий черного списка токенов.
// TTL записей привязан к сроку жизни токена, поэтому чистить список не нужно.
func NewRedisTokenRepository(client *redis.Client) TokenRepository {
	return &redisTokenRepository{client: client}
}

// AddToBlacklist добавляет токен в черный список до его естественного истечения
func (r *redisTokenRepository) AddToBlacklist(ctx context.Context, token string, expiresAt time.Time) error {
	key := fmt.Sprintf("blacklist:%s", token)

	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		// Токен уже истек, добавлять нечего
		return nil
	}

	if err := r.client.Set(ctx, key, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to add token to blacklist: %w", err)
	}

	return nil
}

// IsBlacklisted проверяет, отозван ли токен
func (r *redisTokenRepository) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	key := fmt.Sprintf("blacklist:%s", token)

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check if token is blacklisted: %w", err)
	}

	return exists > 0, nil
}
