package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/Gabrielunor/coordinator-backend/internal/config"
	"github.com/Gabrielunor/coordinator-backend/internal/delivery/http/handler"
	"github.com/Gabrielunor/coordinator-backend/internal/delivery/http/middleware"
	"github.com/Gabrielunor/coordinator-backend/internal/pkg/utils"
)

// Server - HTTP server built on Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	tileHandler    *handler.TileHandler
	levelHandler   *handler.LevelHandler
	tilesetHandler *handler.TilesetHandler
	statsHandler   *handler.StatsHandler
}

// NewServer - creates the HTTP server with all routes wired
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	tileHandler *handler.TileHandler,
	levelHandler *handler.LevelHandler,
	tilesetHandler *handler.TilesetHandler,
	statsHandler *handler.StatsHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Coordinator Backend",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:            app,
		config:         cfg,
		logger:         logger,
		tileHandler:    tileHandler,
		levelHandler:   levelHandler,
		tilesetHandler: tilesetHandler,
		statsHandler:   statsHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// App exposes the underlying Fiber app, used by tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.RequestID())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	// Health check
	healthHandler := func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	}
	s.app.Get("/health", healthHandler)

	// Tile routes. The lookup route must be registered before the
	// parameterized one so "lookup" is not consumed as a level value.
	s.app.Get("/tiles/lookup", s.tileHandler.LookupTile)
	s.app.Post("/tiles/lookup/batch", s.tileHandler.LookupBatch)
	s.app.Get("/tiles/:level/:tile_id", s.tileHandler.GetTile)

	api := s.app.Group("/api/v1")

	api.Get("/health", healthHandler)

	api.Get("/tiles/lookup", s.tileHandler.LookupTile)
	api.Post("/tiles/lookup/batch", s.tileHandler.LookupBatch)
	api.Get("/tiles/:level/:tile_id", s.tileHandler.GetTile)

	// Grid metadata
	api.Get("/levels/:level", s.levelHandler.GetLevelInfo)

	// Tileset build registry
	api.Get("/tilesets", s.tilesetHandler.ListBuilds)
	api.Post("/tilesets/:level", s.tilesetHandler.EnqueueBuild)
	api.Get("/tilesets/:id", s.tilesetHandler.GetBuild)

	// Stats
	api.Get("/stats", s.statsHandler.GetStatistics)
}

// Start - starts the HTTP server
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown of the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler maps errors that escape handlers onto the shared
// error envelope.
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Error(err),
		)

		if e, ok := err.(*fiber.Error); ok && e.Code < 500 {
			return c.Status(e.Code).JSON(fiber.Map{
				"error": fiber.Map{
					"code":    "INVALID_REQUEST",
					"message": e.Message,
				},
			})
		}

		return utils.SendError(c, err)
	}
}
