package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Gabrielunor/coordinator-backend/internal/pkg/utils"
	"github.com/Gabrielunor/coordinator-backend/internal/usecase"
)

// StatsHandler handles statistics requests
type StatsHandler struct {
	statsUC *usecase.StatsUseCase
	logger  *zap.Logger
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(statsUC *usecase.StatsUseCase, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{
		statsUC: statsUC,
		logger:  logger,
	}
}

// GetStatistics godoc
// @Summary Get service statistics
// @Description Returns aggregate build statistics and the active grid parameters
// @Tags Statistics
// @Produce json
// @Success 200 {object} domain.Statistics
// @Failure 500 {object} utils.ErrorResponse
// @Router /stats [get]
func (h *StatsHandler) GetStatistics(c *fiber.Ctx) error {
	h.logger.Debug("Handling get statistics request")

	stats, err := h.statsUC.GetStatistics(c.Context())
	if err != nil {
		h.logger.Error("Failed to get statistics", zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, stats, nil)
}
