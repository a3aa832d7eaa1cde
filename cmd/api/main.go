package main

// @title Coordinator Backend API
// @version 1.0.0
// @description Tile coordinate service over the SIRGAS 2000 / Brazil Albers plane. The national territory is partitioned into square tiles per resolution level; each tile carries a compact Base36 identifier derived from its position on a Hilbert curve.
// @description
// @description Main capabilities:
// @description - Resolve a tile by level and identifier as a GeoJSON Feature
// @description - Resolve the tile containing a WGS84 coordinate, one by one or in batches
// @description - Inspect grid metadata per resolution level
// @description - Enqueue full tileset builds executed by background workers
// @description - Aggregate build statistics

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/Gabrielunor/coordinator-backend/docs/swagger"
	"github.com/Gabrielunor/coordinator-backend/internal/config"
	httpDelivery "github.com/Gabrielunor/coordinator-backend/internal/delivery/http"
	"github.com/Gabrielunor/coordinator-backend/internal/delivery/http/handler"
	"github.com/Gabrielunor/coordinator-backend/internal/pkg/logger"
	"github.com/Gabrielunor/coordinator-backend/internal/pkg/projection"
	"github.com/Gabrielunor/coordinator-backend/internal/repository/cache"
	"github.com/Gabrielunor/coordinator-backend/internal/repository/postgres"
	redisRepo "github.com/Gabrielunor/coordinator-backend/internal/repository/redis"
	"github.com/Gabrielunor/coordinator-backend/internal/tiling"
	"github.com/Gabrielunor/coordinator-backend/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Coordinator Backend")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}
	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize the tiling service and repositories
	tiles := tiling.NewService(cfg.Grid, projection.NewBrazilAlbers())
	marcoX, marcoY := tiles.MarcoZero()
	log.Info("Tile grid initialized",
		zap.Float64("marco_zero_x", marcoX),
		zap.Float64("marco_zero_y", marcoY),
		zap.Int("max_level", cfg.Grid.MaxLevel))

	cacheRepo := cache.NewCacheRepository(redisClient)
	tilesetRepo := postgres.NewTilesetRepository(db)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)

	log.Info("Repositories initialized")

	// 7. Initialize use cases
	tileUC := usecase.NewTileUseCase(tiles, cacheRepo, log, cfg.Cache.TileCacheTTL)
	levelUC := usecase.NewLevelUseCase(tiles, log)
	tilesetUC := usecase.NewTilesetUseCase(tiles, tilesetRepo, streamRepo, log, cfg.Worker.BatchInsertSize)
	statsUC := usecase.NewStatsUseCase(tiles, tilesetRepo, cacheRepo, log, cfg.Cache.StatsCacheTTL)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP handlers and server
	server := httpDelivery.NewServer(
		cfg,
		log,
		handler.NewTileHandler(tileUC, log),
		handler.NewLevelHandler(levelUC, log),
		handler.NewTilesetHandler(tilesetUC, log),
		handler.NewStatsHandler(statsUC, log),
	)

	// 9. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 10. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
