package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/Gabrielunor/coordinator-backend/internal/domain"
)

// TilesetRepository persists the tileset build registry.
type TilesetRepository interface {
	CreateBuild(ctx context.Context, build *domain.TilesetBuild) error
	GetBuild(ctx context.Context, id uuid.UUID) (*domain.TilesetBuild, error)
	ListBuilds(ctx context.Context, limit int) ([]*domain.TilesetBuild, error)

	MarkRunning(ctx context.Context, id uuid.UUID) error
	MarkDone(ctx context.Context, id uuid.UUID, tileCount int64) error
	MarkFailed(ctx context.Context, id uuid.UUID, reason string) error

	// InsertTiles stores an enumerated batch of tiles for a build.
	InsertTiles(ctx context.Context, buildID uuid.UUID, tiles []domain.Tile) error

	// GetStatistics aggregates registry contents for /stats.
	GetStatistics(ctx context.Context) (*domain.Statistics, error)
}
