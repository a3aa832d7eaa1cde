package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Gabrielunor/coordinator-backend/internal/domain"
	"github.com/Gabrielunor/coordinator-backend/internal/domain/repository"
	apperrors "github.com/Gabrielunor/coordinator-backend/internal/pkg/errors"
	"github.com/Gabrielunor/coordinator-backend/internal/repository/postgres"
	"github.com/Gabrielunor/coordinator-backend/internal/tiling"
)

const defaultListLimit = 50

// TilesetUseCase manages the asynchronous tileset build registry: the API
// side enqueues builds, the worker side executes them.
type TilesetUseCase struct {
	tiles           *tiling.Service
	tilesetRepo     repository.TilesetRepository
	streamRepo      repository.StreamRepository
	logger          *zap.Logger
	batchInsertSize int
}

func NewTilesetUseCase(
	tiles *tiling.Service,
	tilesetRepo repository.TilesetRepository,
	streamRepo repository.StreamRepository,
	logger *zap.Logger,
	batchInsertSize int,
) *TilesetUseCase {
	// The insert loop advances by batchInsertSize; anything below 1 would
	// never make progress.
	if batchInsertSize < 1 {
		batchInsertSize = 1
	}
	return &TilesetUseCase{
		tiles:           tiles,
		tilesetRepo:     tilesetRepo,
		streamRepo:      streamRepo,
		logger:          logger,
		batchInsertSize: batchInsertSize,
	}
}

// EnqueueBuild registers a pending build and publishes the job.
func (uc *TilesetUseCase) EnqueueBuild(ctx context.Context, level int) (*domain.TilesetBuild, error) {
	info, err := uc.tiles.LevelInfo(level)
	if err != nil {
		return nil, mapTilingError(err)
	}
	if level > uc.tiles.Config().MaxEnumerationLevel {
		return nil, apperrors.ErrLevelNotEnumerable
	}

	build := &domain.TilesetBuild{
		ID:           uuid.New(),
		Level:        level,
		Status:       domain.BuildStatusPending,
		HilbertOrder: info.HilbertOrder,
		RequestedAt:  time.Now().UTC(),
	}

	if err := uc.tilesetRepo.CreateBuild(ctx, build); err != nil {
		uc.logger.Error("Failed to create tileset build", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	event := domain.TilesetBuildEvent{
		BuildID:     build.ID,
		Level:       level,
		RequestedAt: build.RequestedAt,
	}
	if err := uc.streamRepo.Publish(ctx, domain.StreamTilesetBuild, event); err != nil {
		uc.logger.Error("Failed to publish build job",
			zap.String("build_id", build.ID.String()),
			zap.Error(err))
		if markErr := uc.tilesetRepo.MarkFailed(ctx, build.ID, "failed to enqueue build job"); markErr != nil {
			uc.logger.Error("Failed to mark build failed", zap.Error(markErr))
		}
		return nil, fmt.Errorf("publish build job: %w", err)
	}

	uc.logger.Info("Tileset build enqueued",
		zap.String("build_id", build.ID.String()),
		zap.Int("level", level),
		zap.Int64("expected_tiles", info.TileCount))

	return build, nil
}

func (uc *TilesetUseCase) GetBuild(ctx context.Context, id uuid.UUID) (*domain.TilesetBuild, error) {
	build, err := uc.tilesetRepo.GetBuild(ctx, id)
	if err != nil {
		if errors.Is(err, postgres.ErrBuildNotFound) {
			return nil, apperrors.ErrBuildNotFound
		}
		uc.logger.Error("Failed to get tileset build", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	return build, nil
}

func (uc *TilesetUseCase) ListBuilds(ctx context.Context, limit int) ([]*domain.TilesetBuild, error) {
	if limit <= 0 || limit > 200 {
		limit = defaultListLimit
	}

	builds, err := uc.tilesetRepo.ListBuilds(ctx, limit)
	if err != nil {
		uc.logger.Error("Failed to list tileset builds", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}
	return builds, nil
}

// ProcessBuild executes one build job: enumerate the level, persist tiles in
// batches, and settle the build status. Called from the worker.
func (uc *TilesetUseCase) ProcessBuild(ctx context.Context, event domain.TilesetBuildEvent) error {
	logger := uc.logger.With(
		zap.String("build_id", event.BuildID.String()),
		zap.Int("level", event.Level))

	if err := uc.tilesetRepo.MarkRunning(ctx, event.BuildID); err != nil {
		return fmt.Errorf("mark build running: %w", err)
	}

	started := time.Now()
	tiles, err := uc.tiles.GenerateTiles(event.Level)
	if err != nil {
		logger.Error("Tile enumeration failed", zap.Error(err))
		if markErr := uc.tilesetRepo.MarkFailed(ctx, event.BuildID, err.Error()); markErr != nil {
			logger.Error("Failed to mark build failed", zap.Error(markErr))
		}
		return mapTilingError(err)
	}

	for start := 0; start < len(tiles); start += uc.batchInsertSize {
		end := start + uc.batchInsertSize
		if end > len(tiles) {
			end = len(tiles)
		}

		if err := uc.tilesetRepo.InsertTiles(ctx, event.BuildID, tiles[start:end]); err != nil {
			logger.Error("Tile batch insert failed",
				zap.Int("offset", start),
				zap.Error(err))
			if markErr := uc.tilesetRepo.MarkFailed(ctx, event.BuildID, err.Error()); markErr != nil {
				logger.Error("Failed to mark build failed", zap.Error(markErr))
			}
			return err
		}
	}

	if err := uc.tilesetRepo.MarkDone(ctx, event.BuildID, int64(len(tiles))); err != nil {
		return fmt.Errorf("mark build done: %w", err)
	}

	logger.Info("Tileset build completed",
		zap.Int("tiles", len(tiles)),
		zap.Duration("took", time.Since(started)))
	return nil
}
