package tileset

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Gabrielunor/coordinator-backend/internal/domain"
	"github.com/Gabrielunor/coordinator-backend/internal/domain/repository"
	"github.com/Gabrielunor/coordinator-backend/internal/usecase"
	"github.com/Gabrielunor/coordinator-backend/internal/worker"
)

const (
	maxBatchSize    = 5                      // build jobs claimed per read
	emptyQueueSleep = 250 * time.Millisecond // pause when the queue is empty
)

// BuildWorker consumes tileset build jobs from the Redis stream and runs
// the enumeration for each one.
type BuildWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	tilesetUC    *usecase.TilesetUseCase
	consumerName string
	maxRetries   int
}

// NewBuildWorker creates a BuildWorker. The consumer name is derived from
// the host and pid so parallel instances do not collide.
func NewBuildWorker(
	streamRepo repository.StreamRepository,
	tilesetUC *usecase.TilesetUseCase,
	consumerGroup string,
	maxRetries int,
	logger *zap.Logger,
) *BuildWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	return &BuildWorker{
		BaseWorker:   worker.NewBaseWorker("tileset-build", consumerGroup, logger),
		streamRepo:   streamRepo,
		tilesetUC:    tilesetUC,
		consumerName: consumerName,
		maxRetries:   maxRetries,
	}
}

// Start runs the consume loop.
func (w *BuildWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting BuildWorker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Int("max_batch_size", maxBatchSize))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamTilesetBuild, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		default:
			processed, err := w.processBatch(ctx)
			if err != nil {
				logger.Error("Failed to process batch", zap.Error(err))
				time.Sleep(time.Second)
				continue
			}

			if processed == 0 {
				time.Sleep(emptyQueueSleep)
			}
		}
	}
}

// processBatch claims up to maxBatchSize build jobs and executes them one
// by one. It returns the number of messages consumed from the stream.
func (w *BuildWorker) processBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.streamRepo.ConsumeBatch(
		ctx,
		domain.StreamTilesetBuild,
		w.ConsumerGroup(),
		w.consumerName,
		maxBatchSize,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}

	if len(messages) == 0 {
		return 0, nil
	}

	logger.Info("Processing build jobs", zap.Int("message_count", len(messages)))

	for _, msg := range messages {
		event, err := w.parseMessage(msg)
		if err != nil {
			logger.Warn("Failed to parse message, skipping",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			// Ack the broken message so it does not wedge the group.
			_ = w.streamRepo.AckMessage(ctx, domain.StreamTilesetBuild, w.ConsumerGroup(), msg.ID)
			continue
		}

		if err := w.tilesetUC.ProcessBuild(ctx, *event); err != nil {
			logger.Error("Build failed",
				zap.String("build_id", event.BuildID.String()),
				zap.Int("level", event.Level),
				zap.Error(err))
			// ProcessBuild settles the build row itself; the message is
			// acked either way so failed builds are not retried blindly.
		}

		if err := w.streamRepo.AckMessage(ctx, domain.StreamTilesetBuild, w.ConsumerGroup(), msg.ID); err != nil {
			logger.Error("Failed to ack message",
				zap.String("message_id", msg.ID),
				zap.Error(err))
		}
	}

	return len(messages), nil
}

// parseMessage decodes one stream entry into a TilesetBuildEvent.
func (w *BuildWorker) parseMessage(msg domain.StreamMessage) (*domain.TilesetBuildEvent, error) {
	var event domain.TilesetBuildEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}

	return &event, nil
}
