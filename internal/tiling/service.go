// Package tiling computes Hilbert-curve tiles over the SIRGAS 2000 /
// Brazil Albers plane. Tile ids are Base36-encoded Hilbert distances on a
// per-level grid anchored at the marco zero point.
package tiling

import (
	"errors"
	"math"
	"sort"
	"sync"

	"github.com/google/hilbert"

	"github.com/Gabrielunor/coordinator-backend/internal/config"
	"github.com/Gabrielunor/coordinator-backend/internal/domain"
	"github.com/Gabrielunor/coordinator-backend/internal/pkg/base36"
	"github.com/Gabrielunor/coordinator-backend/internal/pkg/projection"
)

var (
	// ErrInvalidLevel means the level is negative or above the configured maximum.
	ErrInvalidLevel = errors.New("tiling: level out of range")
	// ErrInvalidTileID means the tile id is not valid Base36.
	ErrInvalidTileID = errors.New("tiling: malformed tile id")
	// ErrTileOutOfRange means the id decodes to a distance with no tile at this level.
	ErrTileOutOfRange = errors.New("tiling: tile id out of bounds for level")
	// ErrOutsideExtent means the coordinates fall outside the configured area extent.
	ErrOutsideExtent = errors.New("tiling: coordinates outside the configured extent")
	// ErrLevelNotEnumerable means the level is too deep for full enumeration.
	ErrLevelNotEnumerable = errors.New("tiling: level too deep to enumerate")
)

// Service computes tile metadata. Grids are cached per level; everything
// else is pure computation, so the service is safe for concurrent use.
type Service struct {
	cfg    config.GridConfig
	proj   *projection.BrazilAlbers
	marcoX float64
	marcoY float64

	mu    sync.Mutex
	grids map[int]Grid
}

// NewService anchors the grid by projecting the configured marco zero point.
func NewService(cfg config.GridConfig, proj *projection.BrazilAlbers) *Service {
	marcoX, marcoY := proj.Forward(cfg.MarcoZeroLon, cfg.MarcoZeroLat)
	return &Service{
		cfg:    cfg,
		proj:   proj,
		marcoX: marcoX,
		marcoY: marcoY,
		grids:  make(map[int]Grid),
	}
}

// MarcoZero returns the grid anchor in projected metres.
func (s *Service) MarcoZero() (x, y float64) {
	return s.marcoX, s.marcoY
}

// Config returns the grid configuration the service was built with.
func (s *Service) Config() config.GridConfig {
	return s.cfg
}

// TileSize returns the tile edge length in metres for a level, clamped at
// the configured minimum.
func (s *Service) TileSize(level int) float64 {
	size := s.cfg.BaseTileSize / math.Pow(2, float64(level))
	if size < s.cfg.MinTileSize {
		size = s.cfg.MinTileSize
	}
	return size
}

// GridForLevel returns the (cached) grid for a level.
func (s *Service) GridForLevel(level int) (Grid, error) {
	if level < 0 || level > s.cfg.MaxLevel {
		return Grid{}, ErrInvalidLevel
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if grid, ok := s.grids[level]; ok {
		return grid, nil
	}

	size := s.TileSize(level)
	originX := s.marcoX - size/2
	originY := s.marcoY - size/2

	grid := Grid{
		Level:    level,
		TileSize: size,
		MinI:     int(math.Floor((s.cfg.XMin - originX) / size)),
		MinJ:     int(math.Floor((s.cfg.YMin - originY) / size)),
		MaxI:     int(math.Ceil((s.cfg.XMax-originX)/size)) - 1,
		MaxJ:     int(math.Ceil((s.cfg.YMax-originY)/size)) - 1,
	}

	s.grids[level] = grid
	return grid, nil
}

// LevelInfo describes the grid at a level.
func (s *Service) LevelInfo(level int) (*domain.LevelInfo, error) {
	grid, err := s.GridForLevel(level)
	if err != nil {
		return nil, err
	}

	return &domain.LevelInfo{
		Level:        level,
		TileSize:     grid.TileSize,
		MinI:         grid.MinI,
		MinJ:         grid.MinJ,
		MaxI:         grid.MaxI,
		MaxJ:         grid.MaxJ,
		Width:        grid.Width(),
		Height:       grid.Height(),
		HilbertOrder: grid.HilbertOrder(),
		TileCount:    int64(grid.Width()) * int64(grid.Height()),
		Extent: domain.BBox{
			XMin: s.cfg.XMin,
			YMin: s.cfg.YMin,
			XMax: s.cfg.XMax,
			YMax: s.cfg.YMax,
		},
	}, nil
}

// TileFromID resolves a Base36 tile id at a level.
func (s *Service) TileFromID(level int, tileID string) (domain.Tile, error) {
	grid, err := s.GridForLevel(level)
	if err != nil {
		return domain.Tile{}, err
	}

	distance, err := base36.Decode(tileID)
	if err != nil {
		return domain.Tile{}, ErrInvalidTileID
	}
	if distance < 0 || distance >= grid.MaxDistance() {
		return domain.Tile{}, ErrTileOutOfRange
	}

	curve, err := s.curve(grid)
	if err != nil {
		return domain.Tile{}, err
	}

	ni, nj, err := curve.Map(int(distance))
	if err != nil {
		return domain.Tile{}, ErrTileOutOfRange
	}
	if ni >= grid.Width() || nj >= grid.Height() {
		// Valid curve position, but past the extent of the grid.
		return domain.Tile{}, ErrTileOutOfRange
	}

	return s.buildTile(grid, grid.MinI+ni, grid.MinJ+nj, distance), nil
}

// TileForCoordinates resolves the tile containing a WGS84 coordinate.
func (s *Service) TileForCoordinates(level int, lon, lat float64) (domain.Tile, error) {
	grid, err := s.GridForLevel(level)
	if err != nil {
		return domain.Tile{}, err
	}

	easting, northing := s.proj.Forward(lon, lat)
	originX := s.marcoX - grid.TileSize/2
	originY := s.marcoY - grid.TileSize/2

	i := int(math.Floor((easting - originX) / grid.TileSize))
	j := int(math.Floor((northing - originY) / grid.TileSize))

	if i < grid.MinI || i > grid.MaxI || j < grid.MinJ || j > grid.MaxJ {
		return domain.Tile{}, ErrOutsideExtent
	}

	curve, err := s.curve(grid)
	if err != nil {
		return domain.Tile{}, err
	}

	distance, err := curve.MapInverse(i-grid.MinI, j-grid.MinJ)
	if err != nil {
		return domain.Tile{}, ErrOutsideExtent
	}

	return s.buildTile(grid, i, j, int64(distance)), nil
}

// GenerateTiles enumerates every tile of a level in Hilbert order. Only
// levels up to the configured enumeration cap are allowed; deeper grids have
// millions of cells per side.
func (s *Service) GenerateTiles(level int) ([]domain.Tile, error) {
	if level > s.cfg.MaxEnumerationLevel {
		return nil, ErrLevelNotEnumerable
	}

	grid, err := s.GridForLevel(level)
	if err != nil {
		return nil, err
	}

	curve, err := s.curve(grid)
	if err != nil {
		return nil, err
	}

	tiles := make([]domain.Tile, 0, grid.Width()*grid.Height())
	for nj := 0; nj < grid.Height(); nj++ {
		for ni := 0; ni < grid.Width(); ni++ {
			distance, err := curve.MapInverse(ni, nj)
			if err != nil {
				return nil, err
			}
			tiles = append(tiles, s.buildTile(grid, grid.MinI+ni, grid.MinJ+nj, int64(distance)))
		}
	}

	sort.Slice(tiles, func(a, b int) bool {
		return tiles[a].HilbertDistance < tiles[b].HilbertDistance
	})
	return tiles, nil
}

func (s *Service) curve(grid Grid) (*hilbert.Hilbert, error) {
	return hilbert.NewHilbert(grid.Side())
}

func (s *Service) buildTile(grid Grid, i, j int, distance int64) domain.Tile {
	originX := s.marcoX - grid.TileSize/2
	originY := s.marcoY - grid.TileSize/2

	xMin := originX + float64(i)*grid.TileSize
	yMin := originY + float64(j)*grid.TileSize

	id, _ := base36.Encode(distance) // distance is validated non-negative

	return domain.Tile{
		ID:    id,
		Level: grid.Level,
		BBox: domain.BBox{
			XMin: xMin,
			YMin: yMin,
			XMax: xMin + grid.TileSize,
			YMax: yMin + grid.TileSize,
		},
		GridI:           i,
		GridJ:           j,
		NormalizedI:     i - grid.MinI,
		NormalizedJ:     j - grid.MinJ,
		HilbertDistance: distance,
	}
}
