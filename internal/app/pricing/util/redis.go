package util

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"pricewatch/internal/app/pricing/entity"
	"pricewatch/pkg/metrics"
)

const (
	competitorsCacheKey = "competitors:all"
	productsCacheKey    = "products:all"

	serviceName = "pricing-service"
)

// RedisCache кеширует справочные списки (конкуренты, товары).
// Списки меняются редко, а запрашиваются каждой страницей дашборда.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// NewRedisClient создает и проверяет подключение к Redis
func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

func (r *RedisCache) SetCompetitors(ctx context.Context, competitors []entity.Competitor, ttl time.Duration) error {
	return r.setList(ctx, competitorsCacheKey, competitors, ttl)
}

func (r *RedisCache) GetCompetitors(ctx context.Context) ([]entity.Competitor, error) {
	data, err := r.client.Get(ctx, competitorsCacheKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			metrics.RecordCacheMiss(serviceName, "competitors")
			return nil, nil
		}
		metrics.RecordRedisError(serviceName, metrics.RedisOpGet)
		return nil, fmt.Errorf("failed to get competitors from cache: %w", err)
	}

	var competitors []entity.Competitor
	if err := json.Unmarshal(data, &competitors); err != nil {
		return nil, fmt.Errorf("failed to unmarshal competitors: %w", err)
	}

	metrics.RecordCacheHit(serviceName, "competitors")
	return competitors, nil
}

func (r *RedisCache) DeleteCompetitors(ctx context.Context) error {
	if err := r.client.Del(ctx, competitorsCacheKey).Err(); err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpDel)
		return fmt.Errorf("failed to delete competitors from cache: %w", err)
	}
	return nil
}

func (r *RedisCache) SetProducts(ctx context.Context, products []entity.Product, ttl time.Duration) error {
	return r.setList(ctx, productsCacheKey, products, ttl)
}

func (r *RedisCache) GetProducts(ctx context.Context) ([]entity.Product, error) {
	data, err := r.client.Get(ctx, productsCacheKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			metrics.RecordCacheMiss(serviceName, "products")
			return nil, nil
		}
		metrics.RecordRedisError(serviceName, metrics.RedisOpGet)
		return nil, fmt.Errorf("failed to get products from cache: %w", err)
	}

	var products []entity.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to unmarshal products: %w", err)
	}

	metrics.RecordCacheHit(serviceName, "products")
	return products, nil
}

func (r *RedisCache) DeleteProducts(ctx context.Context) error {
	if err := r.client.Del(ctx, productsCacheKey).Err(); err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpDel)
		return fmt.Errorf("failed to delete products from cache: %w", err)
	}
	return nil
}

func (r *RedisCache) setList(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}

	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpSet)
		return fmt.Errorf("failed to set %s in cache: %w", key, err)
	}

	return nil
}
