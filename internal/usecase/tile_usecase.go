package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Gabrielunor/coordinator-backend/internal/domain/repository"
	apperrors "github.com/Gabrielunor/coordinator-backend/internal/pkg/errors"
	"github.com/Gabrielunor/coordinator-backend/internal/pkg/utils"
	"github.com/Gabrielunor/coordinator-backend/internal/pkg/validator"
	"github.com/Gabrielunor/coordinator-backend/internal/tiling"
	"github.com/Gabrielunor/coordinator-backend/internal/usecase/dto"
)

// TileUseCase resolves tiles by id or coordinate and caches the marshaled
// GeoJSON features.
type TileUseCase struct {
	tiles        *tiling.Service
	cacheRepo    repository.CacheRepository
	logger       *zap.Logger
	tileCacheTTL time.Duration
}

func NewTileUseCase(
	tiles *tiling.Service,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	tileCacheTTL time.Duration,
) *TileUseCase {
	return &TileUseCase{
		tiles:        tiles,
		cacheRepo:    cacheRepo,
		logger:       logger,
		tileCacheTTL: tileCacheTTL,
	}
}

// GetTileByID returns the marshaled GeoJSON feature for (level, tileID).
func (uc *TileUseCase) GetTileByID(ctx context.Context, level int, tileID string) ([]byte, error) {
	cached, err := uc.cacheRepo.GetTileFeature(ctx, level, tileID)
	if err == nil && cached != nil {
		return cached, nil
	}

	tile, err := uc.tiles.TileFromID(level, tileID)
	if err != nil {
		return nil, mapTilingError(err)
	}

	data, err := json.Marshal(uc.tiles.BuildFeature(tile))
	if err != nil {
		uc.logger.Error("Failed to marshal tile feature", zap.Error(err))
		return nil, fmt.Errorf("marshal tile feature: %w", err)
	}

	if err := uc.cacheRepo.SetTileFeature(ctx, level, tile.ID, data, uc.tileCacheTTL); err != nil {
		uc.logger.Warn("Failed to cache tile feature",
			zap.Int("level", level),
			zap.String("tile_id", tile.ID),
			zap.Error(err))
	}

	return data, nil
}

// LookupTile resolves the tile containing a WGS84 coordinate.
func (uc *TileUseCase) LookupTile(ctx context.Context, level int, lon, lat float64) (*dto.LookupResponse, error) {
	if !utils.ValidateCoordinates(lon, lat) {
		return nil, apperrors.ErrInvalidCoordinates
	}

	tile, err := uc.tiles.TileForCoordinates(level, lon, lat)
	if err != nil {
		return nil, mapTilingError(err)
	}

	data, err := uc.cacheRepo.GetTileFeature(ctx, level, tile.ID)
	if err != nil || data == nil {
		data, err = json.Marshal(uc.tiles.BuildFeature(tile))
		if err != nil {
			uc.logger.Error("Failed to marshal tile feature", zap.Error(err))
			return nil, fmt.Errorf("marshal tile feature: %w", err)
		}

		if err := uc.cacheRepo.SetTileFeature(ctx, level, tile.ID, data, uc.tileCacheTTL); err != nil {
			uc.logger.Warn("Failed to cache tile feature",
				zap.Int("level", level),
				zap.String("tile_id", tile.ID),
				zap.Error(err))
		}
	}

	return &dto.LookupResponse{
		TileID:  tile.ID,
		Feature: data,
	}, nil
}

// LookupBatch resolves many coordinates at one level. Per-coordinate misses
// are reported in the result items, not as request failures.
func (uc *TileUseCase) LookupBatch(ctx context.Context, req dto.LookupBatchRequest) (*dto.LookupBatchResponse, error) {
	if err := validator.Validate(&req); err != nil {
		return nil, apperrors.ErrInvalidRequest
	}

	resp := &dto.LookupBatchResponse{
		Level:   req.Level,
		Results: make([]dto.LookupBatchItem, 0, len(req.Coordinates)),
	}

	for idx, coord := range req.Coordinates {
		item := dto.LookupBatchItem{Index: idx}

		tile, err := uc.tiles.TileForCoordinates(req.Level, coord.Lon, coord.Lat)
		switch {
		case err == nil:
			item.Found = true
			item.TileID = tile.ID
		case errors.Is(err, tiling.ErrOutsideExtent):
			item.Error = apperrors.ErrOutsideCoverage.Code
		default:
			// An invalid level fails every item identically; surface it once.
			return nil, mapTilingError(err)
		}

		resp.Results = append(resp.Results, item)
	}

	return resp, nil
}

// mapTilingError translates tiling sentinel errors into API errors.
func mapTilingError(err error) error {
	switch {
	case errors.Is(err, tiling.ErrInvalidLevel):
		return apperrors.ErrInvalidLevel
	case errors.Is(err, tiling.ErrInvalidTileID):
		return apperrors.ErrInvalidTileID
	case errors.Is(err, tiling.ErrTileOutOfRange):
		return apperrors.ErrTileNotFound
	case errors.Is(err, tiling.ErrOutsideExtent):
		return apperrors.ErrOutsideCoverage
	case errors.Is(err, tiling.ErrLevelNotEnumerable):
		return apperrors.ErrLevelNotEnumerable
	default:
		return err
	}
}
