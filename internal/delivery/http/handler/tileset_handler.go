package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/Gabrielunor/coordinator-backend/internal/pkg/errors"
	"github.com/Gabrielunor/coordinator-backend/internal/pkg/utils"
	"github.com/Gabrielunor/coordinator-backend/internal/usecase"
)

// TilesetHandler handles tileset build registry requests
type TilesetHandler struct {
	tilesetUC *usecase.TilesetUseCase
	logger    *zap.Logger
}

// NewTilesetHandler creates a new TilesetHandler
func NewTilesetHandler(tilesetUC *usecase.TilesetUseCase, logger *zap.Logger) *TilesetHandler {
	return &TilesetHandler{
		tilesetUC: tilesetUC,
		logger:    logger,
	}
}

// EnqueueBuild godoc
// @Summary Enqueue a tileset build
// @Description Registers a pending build for one level and queues it for a worker
// @Tags Tilesets
// @Produce json
// @Param level path int true "Resolution level"
// @Success 202 {object} domain.TilesetBuild
// @Failure 400 {object} utils.ErrorResponse
// @Router /tilesets/{level} [post]
func (h *TilesetHandler) EnqueueBuild(c *fiber.Ctx) error {
	level, err := strconv.Atoi(c.Params("level"))
	if err != nil {
		return utils.SendError(c, apperrors.ErrInvalidLevel)
	}

	build, err := h.tilesetUC.EnqueueBuild(c.Context(), level)
	if err != nil {
		return utils.SendError(c, err)
	}

	return c.Status(fiber.StatusAccepted).JSON(utils.SuccessResponse{Data: build})
}

// ListBuilds godoc
// @Summary List tileset builds
// @Description Returns recent builds, newest first
// @Tags Tilesets
// @Produce json
// @Param limit query int false "Maximum number of builds to return" default(50)
// @Success 200 {array} domain.TilesetBuild
// @Failure 500 {object} utils.ErrorResponse
// @Router /tilesets [get]
func (h *TilesetHandler) ListBuilds(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 0)

	builds, err := h.tilesetUC.ListBuilds(c.Context(), limit)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, builds, &utils.Meta{Total: len(builds)})
}

// GetBuild godoc
// @Summary Get one tileset build
// @Description Returns a build by its identifier
// @Tags Tilesets
// @Produce json
// @Param id path string true "Build identifier (UUID)"
// @Success 200 {object} domain.TilesetBuild
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /tilesets/{id} [get]
func (h *TilesetHandler) GetBuild(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	build, err := h.tilesetUC.GetBuild(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, build, nil)
}
