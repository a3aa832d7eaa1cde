package domain

import (
	"time"

	"github.com/google/uuid"
)

// Tileset build lifecycle states.
const (
	BuildStatusPending = "pending"
	BuildStatusRunning = "running"
	BuildStatusDone    = "done"
	BuildStatusFailed  = "failed"
)

// TilesetBuild is a registry record of a full-level tile enumeration. The
// build itself runs asynchronously in the worker; this row tracks it.
type TilesetBuild struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	Level        int        `db:"level" json:"level"`
	Status       string     `db:"status" json:"status"`
	TileCount    int64      `db:"tile_count" json:"tile_count"`
	HilbertOrder int        `db:"hilbert_order" json:"hilbert_order"`
	RequestedAt  time.Time  `db:"requested_at" json:"requested_at"`
	StartedAt    *time.Time `db:"started_at" json:"started_at,omitempty"`
	FinishedAt   *time.Time `db:"finished_at" json:"finished_at,omitempty"`
	Error        *string    `db:"error" json:"error,omitempty"`
}

// Statistics is the aggregate service view served by /stats.
type Statistics struct {
	TotalBuilds     int          `json:"total_builds"`
	CompletedBuilds int          `json:"completed_builds"`
	FailedBuilds    int          `json:"failed_builds"`
	TilesRegistered int64        `json:"tiles_registered"`
	BuildsByLevel   map[int]int  `json:"builds_by_level"`
	Grid            GridSnapshot `json:"grid"`
	LastUpdated     time.Time    `json:"last_updated"`
}

// GridSnapshot echoes the active grid configuration so clients can see which
// extent and anchor the tile ids were minted against.
type GridSnapshot struct {
	BaseTileSize float64 `json:"base_tile_size"`
	MaxLevel     int     `json:"max_level"`
	MarcoZeroX   float64 `json:"marco_zero_x"`
	MarcoZeroY   float64 `json:"marco_zero_y"`
	Extent       BBox    `json:"extent"`
}
