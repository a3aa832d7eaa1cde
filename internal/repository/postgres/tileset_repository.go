package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Gabrielunor/coordinator-backend/internal/domain"
	"github.com/Gabrielunor/coordinator-backend/internal/domain/repository"
)

// ErrBuildNotFound is returned when a build id has no registry row.
var ErrBuildNotFound = errors.New("postgres: tileset build not found")

type tilesetRepository struct {
	db     *DB
	logger *zap.Logger
}

func NewTilesetRepository(db *DB) repository.TilesetRepository {
	return &tilesetRepository{
		db:     db,
		logger: db.logger,
	}
}

func (r *tilesetRepository) CreateBuild(ctx context.Context, build *domain.TilesetBuild) error {
	query := `
		INSERT INTO tileset_builds (id, level, status, tile_count, hilbert_order, requested_at)
		VALUES (:id, :level, :status, :tile_count, :hilbert_order, :requested_at)
	`

	if _, err := r.db.NamedExecContext(ctx, query, build); err != nil {
		r.logger.Error("Failed to create tileset build",
			zap.String("build_id", build.ID.String()),
			zap.Error(err))
		return fmt.Errorf("create tileset build: %w", err)
	}

	return nil
}

func (r *tilesetRepository) GetBuild(ctx context.Context, id uuid.UUID) (*domain.TilesetBuild, error) {
	query := `
		SELECT id, level, status, tile_count, hilbert_order,
		       requested_at, started_at, finished_at, error
		FROM tileset_builds
		WHERE id = $1
	`

	var build domain.TilesetBuild
	if err := r.db.GetContext(ctx, &build, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBuildNotFound
		}
		return nil, fmt.Errorf("get tileset build: %w", err)
	}

	return &build, nil
}

func (r *tilesetRepository) ListBuilds(ctx context.Context, limit int) ([]*domain.TilesetBuild, error) {
	query := `
		SELECT id, level, status, tile_count, hilbert_order,
		       requested_at, started_at, finished_at, error
		FROM tileset_builds
		ORDER BY requested_at DESC
		LIMIT $1
	`

	builds := make([]*domain.TilesetBuild, 0, limit)
	if err := r.db.SelectContext(ctx, &builds, query, limit); err != nil {
		return nil, fmt.Errorf("list tileset builds: %w", err)
	}

	return builds, nil
}

func (r *tilesetRepository) MarkRunning(ctx context.Context, id uuid.UUID) error {
	return r.updateStatus(ctx,
		`UPDATE tileset_builds SET status = $2, started_at = $3 WHERE id = $1`,
		id, domain.BuildStatusRunning, time.Now().UTC())
}

func (r *tilesetRepository) MarkDone(ctx context.Context, id uuid.UUID, tileCount int64) error {
	query := `
		UPDATE tileset_builds
		SET status = $2, tile_count = $3, finished_at = $4
		WHERE id = $1
	`
	return r.updateStatus(ctx, query, id, domain.BuildStatusDone, tileCount, time.Now().UTC())
}

func (r *tilesetRepository) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	query := `
		UPDATE tileset_builds
		SET status = $2, error = $3, finished_at = $4
		WHERE id = $1
	`
	return r.updateStatus(ctx, query, id, domain.BuildStatusFailed, reason, time.Now().UTC())
}

func (r *tilesetRepository) updateStatus(ctx context.Context, query string, id uuid.UUID, args ...interface{}) error {
	all := append([]interface{}{id}, args...)
	res, err := r.db.ExecContext(ctx, query, all...)
	if err != nil {
		return fmt.Errorf("update tileset build: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrBuildNotFound
	}
	return nil
}

// tileRow flattens domain.Tile for bulk insertion.
type tileRow struct {
	BuildID         uuid.UUID `db:"build_id"`
	Level           int       `db:"level"`
	TileID          string    `db:"tile_id"`
	HilbertDistance int64     `db:"hilbert_distance"`
	GridI           int       `db:"grid_i"`
	GridJ           int       `db:"grid_j"`
	XMin            float64   `db:"x_min"`
	YMin            float64   `db:"y_min"`
	XMax            float64   `db:"x_max"`
	YMax            float64   `db:"y_max"`
}

func (r *tilesetRepository) InsertTiles(ctx context.Context, buildID uuid.UUID, tiles []domain.Tile) error {
	if len(tiles) == 0 {
		return nil
	}

	rows := make([]tileRow, 0, len(tiles))
	for _, t := range tiles {
		rows = append(rows, tileRow{
			BuildID:         buildID,
			Level:           t.Level,
			TileID:          t.ID,
			HilbertDistance: t.HilbertDistance,
			GridI:           t.GridI,
			GridJ:           t.GridJ,
			XMin:            t.BBox.XMin,
			YMin:            t.BBox.YMin,
			XMax:            t.BBox.XMax,
			YMax:            t.BBox.YMax,
		})
	}

	query := `
		INSERT INTO tileset_tiles
			(build_id, level, tile_id, hilbert_distance, grid_i, grid_j, x_min, y_min, x_max, y_max)
		VALUES
			(:build_id, :level, :tile_id, :hilbert_distance, :grid_i, :grid_j, :x_min, :y_min, :x_max, :y_max)
	`

	if _, err := r.db.NamedExecContext(ctx, query, rows); err != nil {
		r.logger.Error("Failed to insert tiles",
			zap.String("build_id", buildID.String()),
			zap.Int("count", len(rows)),
			zap.Error(err))
		return fmt.Errorf("insert tiles: %w", err)
	}

	return nil
}

func (r *tilesetRepository) GetStatistics(ctx context.Context) (*domain.Statistics, error) {
	stats := &domain.Statistics{
		BuildsByLevel: make(map[int]int),
		LastUpdated:   time.Now().UTC(),
	}

	query := `
		SELECT level, status, COUNT(*) AS count
		FROM tileset_builds
		GROUP BY level, status
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query build stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var level, count int
		var status string
		if err := rows.Scan(&level, &status, &count); err != nil {
			return nil, fmt.Errorf("scan build stats: %w", err)
		}

		stats.TotalBuilds += count
		stats.BuildsByLevel[level] += count
		switch status {
		case domain.BuildStatusDone:
			stats.CompletedBuilds += count
		case domain.BuildStatusFailed:
			stats.FailedBuilds += count
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("build stats rows error: %w", err)
	}

	tilesQuery := `SELECT COUNT(*) FROM tileset_tiles`
	if err := r.db.QueryRowContext(ctx, tilesQuery).Scan(&stats.TilesRegistered); err != nil {
		return nil, fmt.Errorf("query registered tiles count: %w", err)
	}

	return stats, nil
}
