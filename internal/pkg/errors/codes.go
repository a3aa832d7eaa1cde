package errors

import "net/http"

var (
	ErrTileNotFound = New(
		"TILE_NOT_FOUND",
		"Tile identifier does not map to a tile at this level",
		http.StatusNotFound,
	)

	ErrOutsideCoverage = New(
		"OUTSIDE_COVERAGE",
		"Coordinates fall outside of the configured area extent",
		http.StatusNotFound,
	)

	ErrBuildNotFound = New(
		"BUILD_NOT_FOUND",
		"Tileset build not found",
		http.StatusNotFound,
	)

	ErrInvalidLevel = New(
		"INVALID_LEVEL",
		"Invalid level: must be a non-negative integer within the configured range",
		http.StatusBadRequest,
	)

	ErrInvalidTileID = New(
		"INVALID_TILE_ID",
		"Invalid tile identifier: must be a Base36 string",
		http.StatusBadRequest,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrLevelNotEnumerable = New(
		"LEVEL_NOT_ENUMERABLE",
		"Level is too deep for full tileset enumeration",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
