package repository

import (
	"context"

	"github.com/Gabrielunor/coordinator-backend/internal/domain"
)

// StreamRepository is the interface to Redis Streams used for build jobs.
type StreamRepository interface {
	// CreateConsumerGroup creates the consumer group, tolerating an
	// already-existing one.
	CreateConsumerGroup(ctx context.Context, stream, group string) error

	// ConsumeBatch reads up to count pending messages without blocking.
	ConsumeBatch(ctx context.Context, stream, group, consumer string, count int) ([]domain.StreamMessage, error)

	// AckMessage acknowledges a processed message.
	AckMessage(ctx context.Context, stream, group, messageID string) error

	// Publish appends a JSON-serialized payload to the stream.
	Publish(ctx context.Context, stream string, data interface{}) error
}
