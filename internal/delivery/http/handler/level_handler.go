package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/Gabrielunor/coordinator-backend/internal/pkg/errors"
	"github.com/Gabrielunor/coordinator-backend/internal/pkg/utils"
	"github.com/Gabrielunor/coordinator-backend/internal/usecase"
)

// LevelHandler handles grid metadata requests
type LevelHandler struct {
	levelUC *usecase.LevelUseCase
	logger  *zap.Logger
}

// NewLevelHandler creates a new LevelHandler
func NewLevelHandler(levelUC *usecase.LevelUseCase, logger *zap.Logger) *LevelHandler {
	return &LevelHandler{
		levelUC: levelUC,
		logger:  logger,
	}
}

// GetLevelInfo godoc
// @Summary Get grid metadata for a level
// @Description Returns tile size, grid bounds and Hilbert curve order for one resolution level
// @Tags Levels
// @Produce json
// @Param level path int true "Resolution level"
// @Success 200 {object} domain.LevelInfo
// @Failure 400 {object} utils.ErrorResponse
// @Router /levels/{level} [get]
func (h *LevelHandler) GetLevelInfo(c *fiber.Ctx) error {
	level, err := strconv.Atoi(c.Params("level"))
	if err != nil {
		return utils.SendError(c, apperrors.ErrInvalidLevel)
	}

	info, err := h.levelUC.GetLevelInfo(c.Context(), level)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, info, nil)
}
