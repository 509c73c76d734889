package util

import (
	"context"
	"time"

	"pricewatch/internal/app/pricing/entity"
)

// ListCache интерфейс для кеширования справочных списков
// Используется для dependency injection и упрощения тестирования
type ListCache interface {
	SetCompetitors(ctx context.Context, competitors []entity.Competitor, ttl time.Duration) error
	GetCompetitors(ctx context.Context) ([]entity.Competitor, error)
	DeleteCompetitors(ctx context.Context) error
	SetProducts(ctx context.Context, products []entity.Product, ttl time.Duration) error
	GetProducts(ctx context.Context) ([]entity.Product, error)
	DeleteProducts(ctx context.Context) error
}

// MessagePublisher интерфейс для отправки сообщений в очередь (Kafka)
// Используется для dependency injection и упрощения тестирования
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}
