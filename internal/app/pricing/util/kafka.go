package util

import (
	"context"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"pricewatch/pkg/metrics"
)

// KafkaProducer обертка над Kafka writer для отправки событий
// об изменении цен конкурентов в топик pricing_events
type KafkaProducer struct {
	writer *kafka.Writer
	topic  string
}

// NewKafkaProducer создает новый Kafka producer
// brokers - список брокеров Kafka в формате ["host:port"]
// topic - имя топика для событий о ценах
func NewKafkaProducer(brokers []string, topic string) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
		// Небольшой батч: события цен редкие, задержка важнее пропускной способности
		BatchSize:    10,
		BatchTimeout: 100 * time.Millisecond,
	}

	return &KafkaProducer{writer: writer, topic: topic}
}

// PublishMessage отправляет сообщение в Kafka
// key - используется для партиционирования (пара competitorID:productID
// сохраняет порядок событий по одной ценовой записи)
func (p *KafkaProducer) PublishMessage(ctx context.Context, key string, value []byte) error {
	message := kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  time.Now(),
	}

	timer := metrics.NewKafkaProduceTimer(serviceName, p.topic)
	if err := p.writer.WriteMessages(ctx, message); err != nil {
		timer.Error()
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}
	timer.Success()

	return nil
}

// Close закрывает Kafka writer и освобождает ресурсы
func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}
