package repository

import (
	"context"
	"time"

	"github.com/Gabrielunor/coordinator-backend/internal/domain"
)

// CacheRepository abstracts the Redis cache.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)

	// GetTileFeature and SetTileFeature cache marshaled GeoJSON features
	// keyed by (level, tile id).
	GetTileFeature(ctx context.Context, level int, tileID string) ([]byte, error)
	SetTileFeature(ctx context.Context, level int, tileID string, data []byte, ttl time.Duration) error

	GetStats(ctx context.Context) (*domain.Statistics, error)
	SetStats(ctx context.Context, stats *domain.Statistics, ttl time.Duration) error
}
