package tiling

import (
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gabrielunor/coordinator-backend/internal/config"
	"github.com/Gabrielunor/coordinator-backend/internal/pkg/projection"
)

func newTestService() *Service {
	cfg := config.GridConfig{
		BaseTileSize:        100000,
		MinTileSize:         1,
		MaxLevel:            17,
		MaxEnumerationLevel: 1,
		MarcoZeroLon:        -34.8711,
		MarcoZeroLat:        -8.0631,
		XMin:                2800000,
		XMax:                7400000,
		YMin:                7500000,
		YMax:                12200000,
	}
	return NewService(cfg, projection.NewBrazilAlbers())
}

func TestService_GridForLevel(t *testing.T) {
	s := newTestService()

	t.Run("invalid levels", func(t *testing.T) {
		_, err := s.GridForLevel(-1)
		assert.ErrorIs(t, err, ErrInvalidLevel)

		_, err = s.GridForLevel(18)
		assert.ErrorIs(t, err, ErrInvalidLevel)
	})

	t.Run("level zero covers the extent", func(t *testing.T) {
		grid, err := s.GridForLevel(0)
		require.NoError(t, err)

		assert.Equal(t, 100000.0, grid.TileSize)
		assert.Greater(t, grid.Width(), 40)
		assert.Greater(t, grid.Height(), 40)
		assert.GreaterOrEqual(t, grid.HilbertOrder(), 1)
		assert.GreaterOrEqual(t, int64(grid.Side()*grid.Side()), int64(grid.Width())*int64(grid.Height()))
	})

	t.Run("tile size halves per level and clamps", func(t *testing.T) {
		assert.Equal(t, 50000.0, s.TileSize(1))
		assert.Equal(t, 25000.0, s.TileSize(2))
		assert.Equal(t, 1.0, s.TileSize(17))
	})

	t.Run("marco zero tile is centered on the anchor", func(t *testing.T) {
		x, y := s.MarcoZero()
		grid, err := s.GridForLevel(0)
		require.NoError(t, err)

		// The anchor sits exactly in the middle of cell (0, 0).
		originX := x - grid.TileSize/2
		originY := y - grid.TileSize/2
		assert.InDelta(t, originX+grid.TileSize/2, x, 1e-9)
		assert.InDelta(t, originY+grid.TileSize/2, y, 1e-9)
	})
}

func TestService_TileForCoordinates(t *testing.T) {
	s := newTestService()

	t.Run("returns the containing tile", func(t *testing.T) {
		tile, err := s.TileForCoordinates(2, -34.8711, -8.0631)
		require.NoError(t, err)

		assert.Equal(t, 2, tile.Level)
		assert.NotEmpty(t, tile.ID)

		p := projection.NewBrazilAlbers()
		x, y := p.Forward(-34.8711, -8.0631)
		assert.True(t, tile.BBox.Contains(x, y))
	})

	t.Run("coordinates outside the extent", func(t *testing.T) {
		_, err := s.TileForCoordinates(2, 0, 0)
		assert.ErrorIs(t, err, ErrOutsideExtent)

		_, err = s.TileForCoordinates(2, -34.8711, 40)
		assert.ErrorIs(t, err, ErrOutsideExtent)
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := s.TileForCoordinates(-3, -34.8711, -8.0631)
		assert.ErrorIs(t, err, ErrInvalidLevel)
	})
}

func TestService_RoundTripAcrossLevels(t *testing.T) {
	s := newTestService()
	p := projection.NewBrazilAlbers()

	cities := []struct {
		name     string
		lon, lat float64
	}{
		{"recife", -34.8711, -8.0631},
		{"sao paulo", -46.6333, -23.5505},
		{"manaus", -60.0217, -3.1190},
		{"porto alegre", -51.2177, -30.0346},
	}

	for _, city := range cities {
		t.Run(city.name, func(t *testing.T) {
			x, y := p.Forward(city.lon, city.lat)

			for level := 0; level <= 5; level++ {
				byCoord, err := s.TileForCoordinates(level, city.lon, city.lat)
				require.NoError(t, err, "level %d", level)
				assert.True(t, byCoord.BBox.Contains(x, y), "level %d bbox", level)

				byID, err := s.TileFromID(level, byCoord.ID)
				require.NoError(t, err, "level %d", level)
				assert.Equal(t, byCoord, byID, "level %d", level)
			}
		})
	}
}

func TestService_TileFromID(t *testing.T) {
	s := newTestService()

	t.Run("round trip through lookup", func(t *testing.T) {
		byCoord, err := s.TileForCoordinates(3, -46.6333, -23.5505)
		require.NoError(t, err)

		byID, err := s.TileFromID(3, byCoord.ID)
		require.NoError(t, err)

		assert.Equal(t, byCoord, byID)
	})

	t.Run("id is case insensitive", func(t *testing.T) {
		tile, err := s.TileForCoordinates(1, -34.8711, -8.0631)
		require.NoError(t, err)

		lower, err := s.TileFromID(1, strings.ToLower(tile.ID))
		require.NoError(t, err)
		assert.Equal(t, tile.ID, lower.ID)
	})

	t.Run("malformed id", func(t *testing.T) {
		_, err := s.TileFromID(1, "not a tile!")
		assert.ErrorIs(t, err, ErrInvalidTileID)

		_, err = s.TileFromID(1, "")
		assert.ErrorIs(t, err, ErrInvalidTileID)
	})

	t.Run("distance beyond the curve", func(t *testing.T) {
		_, err := s.TileFromID(0, "ZZZZZZZZ")
		assert.ErrorIs(t, err, ErrTileOutOfRange)
	})
}

func TestService_Partition(t *testing.T) {
	s := newTestService()
	p := projection.NewBrazilAlbers()

	tile, err := s.TileForCoordinates(0, -34.8711, -8.0631)
	require.NoError(t, err)

	t.Run("points in the same cell share an id", func(t *testing.T) {
		cx, cy := tile.Center()
		lon, lat := p.Inverse(cx+tile.Size()/4, cy-tile.Size()/4)

		other, err := s.TileForCoordinates(0, lon, lat)
		require.NoError(t, err)
		assert.Equal(t, tile.ID, other.ID)
	})

	t.Run("crossing a boundary changes the id", func(t *testing.T) {
		_, cy := tile.Center()
		lon, lat := p.Inverse(tile.BBox.XMax+1, cy)

		other, err := s.TileForCoordinates(0, lon, lat)
		require.NoError(t, err)
		assert.NotEqual(t, tile.ID, other.ID)
		assert.Equal(t, tile.GridI+1, other.GridI)
	})
}

func TestService_GenerateTiles(t *testing.T) {
	s := newTestService()

	t.Run("enumerates the whole level", func(t *testing.T) {
		grid, err := s.GridForLevel(0)
		require.NoError(t, err)

		tiles, err := s.GenerateTiles(0)
		require.NoError(t, err)
		require.Len(t, tiles, grid.Width()*grid.Height())

		seen := make(map[string]struct{}, len(tiles))
		last := int64(-1)
		for _, tile := range tiles {
			_, dup := seen[tile.ID]
			require.False(t, dup, "duplicate tile id %s", tile.ID)
			seen[tile.ID] = struct{}{}

			require.Greater(t, tile.HilbertDistance, last)
			last = tile.HilbertDistance
		}
	})

	t.Run("deep levels are rejected", func(t *testing.T) {
		_, err := s.GenerateTiles(2)
		assert.ErrorIs(t, err, ErrLevelNotEnumerable)
	})
}

func TestService_BuildFeature(t *testing.T) {
	s := newTestService()

	tile, err := s.TileForCoordinates(1, -34.8711, -8.0631)
	require.NoError(t, err)

	feature := s.BuildFeature(tile)
	require.NotNil(t, feature)

	assert.Equal(t, tile.ID, feature.Properties["id"])
	assert.Equal(t, tile.Level, feature.Properties["level"])
	assert.Equal(t, tile.HilbertDistance, feature.Properties["hilbert_distance"])

	polygon, ok := feature.Geometry.(orb.Polygon)
	require.True(t, ok)
	require.Len(t, polygon, 1)

	ring := polygon[0]
	require.Len(t, ring, 5)
	assert.Equal(t, ring[0], ring[4])

	// The ring must surround the tile center in geographic space.
	centerLon := feature.Properties["center_lon"].(float64)
	centerLat := feature.Properties["center_lat"].(float64)
	bound := ring.Bound()
	assert.True(t, bound.Contains(orb.Point{centerLon, centerLat}))
}
