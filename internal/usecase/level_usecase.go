package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/Gabrielunor/coordinator-backend/internal/domain"
	"github.com/Gabrielunor/coordinator-backend/internal/tiling"
)

// LevelUseCase exposes grid metadata per resolution level.
type LevelUseCase struct {
	tiles  *tiling.Service
	logger *zap.Logger
}

func NewLevelUseCase(tiles *tiling.Service, logger *zap.Logger) *LevelUseCase {
	return &LevelUseCase{
		tiles:  tiles,
		logger: logger,
	}
}

func (uc *LevelUseCase) GetLevelInfo(_ context.Context, level int) (*domain.LevelInfo, error) {
	info, err := uc.tiles.LevelInfo(level)
	if err != nil {
		return nil, mapTilingError(err)
	}
	return info, nil
}
