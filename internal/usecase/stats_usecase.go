package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Gabrielunor/coordinator-backend/internal/domain"
	"github.com/Gabrielunor/coordinator-backend/internal/domain/repository"
	"github.com/Gabrielunor/coordinator-backend/internal/tiling"
)

// StatsUseCase serves aggregate registry statistics, cached in Redis.
type StatsUseCase struct {
	tiles         *tiling.Service
	tilesetRepo   repository.TilesetRepository
	cacheRepo     repository.CacheRepository
	logger        *zap.Logger
	statsCacheTTL time.Duration
}

func NewStatsUseCase(
	tiles *tiling.Service,
	tilesetRepo repository.TilesetRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	statsCacheTTL time.Duration,
) *StatsUseCase {
	return &StatsUseCase{
		tiles:         tiles,
		tilesetRepo:   tilesetRepo,
		cacheRepo:     cacheRepo,
		logger:        logger,
		statsCacheTTL: statsCacheTTL,
	}
}

func (uc *StatsUseCase) GetStatistics(ctx context.Context) (*domain.Statistics, error) {
	cached, err := uc.cacheRepo.GetStats(ctx)
	if err == nil && cached != nil {
		uc.logger.Debug("Statistics fetched from cache")
		return cached, nil
	}
	if err != nil {
		uc.logger.Warn("Failed to get stats from cache", zap.Error(err))
	}

	stats, err := uc.tilesetRepo.GetStatistics(ctx)
	if err != nil {
		return nil, fmt.Errorf("get statistics from db: %w", err)
	}
	stats.Grid = uc.gridSnapshot()

	if err := uc.cacheRepo.SetStats(ctx, stats, uc.statsCacheTTL); err != nil {
		uc.logger.Warn("Failed to cache stats", zap.Error(err))
	}

	return stats, nil
}

func (uc *StatsUseCase) gridSnapshot() domain.GridSnapshot {
	cfg := uc.tiles.Config()
	marcoX, marcoY := uc.tiles.MarcoZero()

	return domain.GridSnapshot{
		BaseTileSize: cfg.BaseTileSize,
		MaxLevel:     cfg.MaxLevel,
		MarcoZeroX:   marcoX,
		MarcoZeroY:   marcoY,
		Extent: domain.BBox{
			XMin: cfg.XMin,
			YMin: cfg.YMin,
			XMax: cfg.XMax,
			YMax: cfg.YMax,
		},
	}
}
