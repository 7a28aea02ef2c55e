package repository

import (
	"context"
	"fmt"

	"ecogrid/internal/domain/models"
	domrepo "ecogrid/internal/domain/repository"
	pkgkafka "ecogrid/pkg/kafka"
)

// KafkaEventPublisher forwards DR-event records to a Kafka topic for
// downstream aggregation and export. Events are keyed by operator name so a
// single operator's history stays ordered within a partition.
type KafkaEventPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaEventPublisher creates a publisher on the given topic.
func NewKafkaEventPublisher(producer *pkgkafka.Producer, topic string) *KafkaEventPublisher {
	return &KafkaEventPublisher{producer: producer, topic: topic}
}

func (p *KafkaEventPublisher) Publish(ctx context.Context, ev *models.DrEvent) error {
	if err := p.producer.Publish(ctx, p.topic, []byte(ev.OperatorName), ev); err != nil {
		return fmt.Errorf("publish dr event: %w", err)
	}
	return nil
}

func (p *KafkaEventPublisher) Close() error {
	return p.producer.Close()
}

var _ domrepo.EventPublisher = (*KafkaEventPublisher)(nil)
