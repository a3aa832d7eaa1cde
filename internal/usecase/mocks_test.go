package usecase_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Gabrielunor/coordinator-backend/internal/config"
	"github.com/Gabrielunor/coordinator-backend/internal/domain"
	"github.com/Gabrielunor/coordinator-backend/internal/pkg/projection"
	"github.com/Gabrielunor/coordinator-backend/internal/tiling"
)

func newTestTilingService() *tiling.Service {
	cfg := config.GridConfig{
		BaseTileSize:        100000,
		MinTileSize:         1,
		MaxLevel:            17,
		MaxEnumerationLevel: 1,
		MarcoZeroLon:        -34.8711,
		MarcoZeroLat:        -8.0631,
		XMin:                2800000,
		XMax:                7400000,
		YMin:                7500000,
		YMax:                12200000,
	}
	return tiling.NewService(cfg, projection.NewBrazilAlbers())
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheRepository) GetTileFeature(ctx context.Context, level int, tileID string) ([]byte, error) {
	args := m.Called(ctx, level, tileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) SetTileFeature(ctx context.Context, level int, tileID string, data []byte, ttl time.Duration) error {
	args := m.Called(ctx, level, tileID, data, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) GetStats(ctx context.Context) (*domain.Statistics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Statistics), args.Error(1)
}

func (m *MockCacheRepository) SetStats(ctx context.Context, stats *domain.Statistics, ttl time.Duration) error {
	args := m.Called(ctx, stats, ttl)
	return args.Error(0)
}

// MockTilesetRepository is a mock of TilesetRepository
type MockTilesetRepository struct {
	mock.Mock
}

func (m *MockTilesetRepository) CreateBuild(ctx context.Context, build *domain.TilesetBuild) error {
	args := m.Called(ctx, build)
	return args.Error(0)
}

func (m *MockTilesetRepository) GetBuild(ctx context.Context, id uuid.UUID) (*domain.TilesetBuild, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TilesetBuild), args.Error(1)
}

func (m *MockTilesetRepository) ListBuilds(ctx context.Context, limit int) ([]*domain.TilesetBuild, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.TilesetBuild), args.Error(1)
}

func (m *MockTilesetRepository) MarkRunning(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTilesetRepository) MarkDone(ctx context.Context, id uuid.UUID, tileCount int64) error {
	args := m.Called(ctx, id, tileCount)
	return args.Error(0)
}

func (m *MockTilesetRepository) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	args := m.Called(ctx, id, reason)
	return args.Error(0)
}

func (m *MockTilesetRepository) InsertTiles(ctx context.Context, buildID uuid.UUID, tiles []domain.Tile) error {
	args := m.Called(ctx, buildID, tiles)
	return args.Error(0)
}

func (m *MockTilesetRepository) GetStatistics(ctx context.Context) (*domain.Statistics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Statistics), args.Error(1)
}

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) ConsumeBatch(ctx context.Context, stream, group, consumer string, count int) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

func (m *MockStreamRepository) Publish(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}
