package domain

import (
	"time"

	"github.com/google/uuid"
)

// Stream names.
const (
	StreamTilesetBuild = "stream:tileset:build"
)

// TilesetBuildEvent asks the worker to enumerate and register every tile of
// a level.
type TilesetBuildEvent struct {
	BuildID     uuid.UUID `json:"build_id"`
	Level       int       `json:"level"`
	RequestedAt time.Time `json:"requested_at"`
}

// StreamMessage is a raw message read from a Redis Stream.
type StreamMessage struct {
	ID   string
	Data string
}
