package tileset_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Gabrielunor/coordinator-backend/internal/config"
	"github.com/Gabrielunor/coordinator-backend/internal/domain"
	"github.com/Gabrielunor/coordinator-backend/internal/pkg/projection"
	"github.com/Gabrielunor/coordinator-backend/internal/tiling"
	"github.com/Gabrielunor/coordinator-backend/internal/usecase"
	"github.com/Gabrielunor/coordinator-backend/internal/worker/tileset"
)

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

func TestBuildWorker_Name(t *testing.T) {
	w := tileset.NewBuildWorker(&MockStreamRepository{}, nil, "test-group", 3, zap.NewNop())
	assert.Equal(t, "tileset-build", w.Name())
}

func TestBuildWorker_ProcessesJob(t *testing.T) {
	logger := zap.NewNop()
	mockStream := &MockStreamRepository{}
	mockTileset := &MockTilesetRepository{}

	uc := usecase.NewTilesetUseCase(newTestTilingService(), mockTileset, mockStream, logger, 10000)
	w := tileset.NewBuildWorker(mockStream, uc, "test-group", 3, logger)

	event := domain.TilesetBuildEvent{
		BuildID:     uuid.New(),
		Level:       0,
		RequestedAt: time.Now(),
	}
	payload, err := json.Marshal(event)
	require.NoError(t, err)

	acked := make(chan struct{})

	mockStream.On("CreateConsumerGroup", mock.Anything, domain.StreamTilesetBuild, "test-group").Return(nil)
	mockStream.On("ConsumeBatch", mock.Anything, domain.StreamTilesetBuild, "test-group", mock.Anything, mock.Anything).
		Return([]domain.StreamMessage{{ID: "1-0", Data: string(payload)}}, nil).Once()
	mockStream.On("ConsumeBatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, nil)
	mockStream.On("AckMessage", mock.Anything, domain.StreamTilesetBuild, "test-group", "1-0").
		Run(func(mock.Arguments) { close(acked) }).Return(nil)

	mockTileset.On("MarkRunning", mock.Anything, event.BuildID).Return(nil)
	mockTileset.On("InsertTiles", mock.Anything, event.BuildID, mock.Anything).Return(nil)
	mockTileset.On("MarkDone", mock.Anything, event.BuildID, mock.Anything).Return(nil)

	go func() { _ = w.Start(context.Background()) }()
	defer func() { _ = w.Stop() }()

	select {
	case <-acked:
	case <-time.After(5 * time.Second):
		t.Fatal("build job was not processed in time")
	}

	mockTileset.AssertCalled(t, "MarkDone", mock.Anything, event.BuildID, mock.Anything)
}

func TestBuildWorker_SkipsMalformedMessage(t *testing.T) {
	logger := zap.NewNop()
	mockStream := &MockStreamRepository{}
	mockTileset := &MockTilesetRepository{}

	uc := usecase.NewTilesetUseCase(newTestTilingService(), mockTileset, mockStream, logger, 10000)
	w := tileset.NewBuildWorker(mockStream, uc, "test-group", 3, logger)

	acked := make(chan struct{})

	mockStream.On("CreateConsumerGroup", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	mockStream.On("ConsumeBatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.StreamMessage{{ID: "1-0", Data: "not json"}}, nil).Once()
	mockStream.On("ConsumeBatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, nil)
	mockStream.On("AckMessage", mock.Anything, mock.Anything, mock.Anything, "1-0").
		Run(func(mock.Arguments) { close(acked) }).Return(nil)

	go func() { _ = w.Start(context.Background()) }()
	defer func() { _ = w.Stop() }()

	select {
	case <-acked:
	case <-time.After(5 * time.Second):
		t.Fatal("malformed message was not acked in time")
	}

	mockTileset.AssertNotCalled(t, "MarkRunning", mock.Anything, mock.Anything)
}
