package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/Gabrielunor/coordinator-backend/internal/pkg/errors"
	"github.com/Gabrielunor/coordinator-backend/internal/pkg/utils"
	"github.com/Gabrielunor/coordinator-backend/internal/usecase"
	"github.com/Gabrielunor/coordinator-backend/internal/usecase/dto"
)

// TileHandler handles grid tile requests
type TileHandler struct {
	tileUC *usecase.TileUseCase
	logger *zap.Logger
}

// NewTileHandler creates a new TileHandler
func NewTileHandler(tileUC *usecase.TileUseCase, logger *zap.Logger) *TileHandler {
	return &TileHandler{
		tileUC: tileUC,
		logger: logger,
	}
}

// GetTile godoc
// @Summary Get a tile by identifier
// @Description Returns the GeoJSON Feature of a tile by level and Base36 identifier
// @Tags Tiles
// @Produce json
// @Param level path int true "Resolution level"
// @Param tile_id path string true "Base36 tile identifier"
// @Success 200 {object} map[string]interface{} "GeoJSON Feature"
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /tiles/{level}/{tile_id} [get]
func (h *TileHandler) GetTile(c *fiber.Ctx) error {
	level, err := strconv.Atoi(c.Params("level"))
	if err != nil {
		return utils.SendError(c, apperrors.ErrInvalidLevel)
	}
	tileID := c.Params("tile_id")

	data, err := h.tileUC.GetTileByID(c.Context(), level, tileID)
	if err != nil {
		return utils.SendError(c, err)
	}

	c.Set("Content-Type", "application/geo+json")
	c.Set("Cache-Control", "public, max-age=86400")
	return c.Send(data)
}

// LookupTile godoc
// @Summary Resolve the tile containing a coordinate
// @Description Returns the tile containing a WGS84 point at the given level
// @Tags Tiles
// @Produce json
// @Param level query int true "Resolution level"
// @Param lon query number true "Longitude in degrees"
// @Param lat query number true "Latitude in degrees"
// @Success 200 {object} dto.LookupResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /tiles/lookup [get]
func (h *TileHandler) LookupTile(c *fiber.Ctx) error {
	level, err := strconv.Atoi(c.Query("level"))
	if err != nil {
		return utils.SendError(c, apperrors.ErrInvalidLevel)
	}

	lon, err := strconv.ParseFloat(c.Query("lon"), 64)
	if err != nil {
		return utils.SendError(c, apperrors.ErrInvalidCoordinates)
	}
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		return utils.SendError(c, apperrors.ErrInvalidCoordinates)
	}

	resp, err := h.tileUC.LookupTile(c.Context(), level, lon, lat)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, resp, nil)
}

// LookupBatch godoc
// @Summary Resolve many coordinates at one level
// @Description Returns tile identifiers for a set of WGS84 points
// @Tags Tiles
// @Accept json
// @Produce json
// @Param request body dto.LookupBatchRequest true "Batch lookup request"
// @Success 200 {object} dto.LookupBatchResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /tiles/lookup/batch [post]
func (h *TileHandler) LookupBatch(c *fiber.Ctx) error {
	var req dto.LookupBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	resp, err := h.tileUC.LookupBatch(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, resp, nil)
}
