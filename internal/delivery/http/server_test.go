package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Gabrielunor/coordinator-backend/internal/config"
	httpdelivery "github.com/Gabrielunor/coordinator-backend/internal/delivery/http"
	"github.com/Gabrielunor/coordinator-backend/internal/delivery/http/handler"
	"github.com/Gabrielunor/coordinator-backend/internal/domain"
	"github.com/Gabrielunor/coordinator-backend/internal/pkg/projection"
	"github.com/Gabrielunor/coordinator-backend/internal/tiling"
	"github.com/Gabrielunor/coordinator-backend/internal/usecase"
)

// noopCache satisfies the cache contract without a Redis instance.
type noopCache struct{}

func (noopCache) Get(context.Context, string) ([]byte, error)                { return nil, nil }
func (noopCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (noopCache) Delete(context.Context, string) error                     { return nil }
func (noopCache) Exists(context.Context, string) (bool, error)             { return false, nil }
func (noopCache) GetTileFeature(context.Context, int, string) ([]byte, error) {
	return nil, nil
}
func (noopCache) SetTileFeature(context.Context, int, string, []byte, time.Duration) error {
	return nil
}
func (noopCache) GetStats(context.Context) (*domain.Statistics, error) { return nil, nil }
func (noopCache) SetStats(context.Context, *domain.Statistics, time.Duration) error {
	return nil
}

func newTestServer(t *testing.T) *httpdelivery.Server {
	t.Helper()

	cfg := &config.Config{}
	cfg.Grid = config.GridConfig{
		BaseTileSize:        100000,
		MinTileSize:         1,
		MaxLevel:            17,
		MaxEnumerationLevel: 3,
		MarcoZeroLon:        -34.8711,
		MarcoZeroLat:        -8.0631,
		XMin:                2800000,
		XMax:                7400000,
		YMin:                7500000,
		YMax:                12200000,
	}

	logger := zap.NewNop()
	tiles := tiling.NewService(cfg.Grid, projection.NewBrazilAlbers())
	tileUC := usecase.NewTileUseCase(tiles, noopCache{}, logger, time.Hour)
	levelUC := usecase.NewLevelUseCase(tiles, logger)

	return httpdelivery.NewServer(
		cfg,
		logger,
		handler.NewTileHandler(tileUC, logger),
		handler.NewLevelHandler(levelUC, logger),
		handler.NewTilesetHandler(nil, logger),
		handler.NewStatsHandler(nil, logger),
	)
}

func TestServer_Health(t *testing.T) {
	srv := newTestServer(t)

	resp, err := srv.App().Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestServer_GetTile(t *testing.T) {
	srv := newTestServer(t)

	t.Run("lookup then fetch by id round trips", func(t *testing.T) {
		resp, err := srv.App().Test(httptest.NewRequest(
			"GET", "/tiles/lookup?level=2&lon=-46.6333&lat=-23.5505", nil))
		require.NoError(t, err)
		require.Equal(t, 200, resp.StatusCode)

		var envelope struct {
			Data struct {
				TileID string `json:"tile_id"`
			} `json:"data"`
		}
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &envelope))
		require.NotEmpty(t, envelope.Data.TileID)

		resp, err = srv.App().Test(httptest.NewRequest(
			"GET", fmt.Sprintf("/tiles/2/%s", envelope.Data.TileID), nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, "application/geo+json", resp.Header.Get("Content-Type"))

		body, err = io.ReadAll(resp.Body)
		require.NoError(t, err)

		var feature map[string]interface{}
		require.NoError(t, json.Unmarshal(body, &feature))
		assert.Equal(t, "Feature", feature["type"])
	})

	t.Run("malformed tile id returns 400", func(t *testing.T) {
		resp, err := srv.App().Test(httptest.NewRequest("GET", "/tiles/2/not-a-tile!", nil))
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
	})

	t.Run("out of range tile id returns 404", func(t *testing.T) {
		resp, err := srv.App().Test(httptest.NewRequest("GET", "/tiles/0/ZZZZZZZZ", nil))
		require.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)
	})

	t.Run("non-numeric level returns 400", func(t *testing.T) {
		resp, err := srv.App().Test(httptest.NewRequest("GET", "/tiles/abc/5", nil))
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
	})
}

func TestServer_Lookup(t *testing.T) {
	srv := newTestServer(t)

	t.Run("coordinates outside valid ranges return 400", func(t *testing.T) {
		resp, err := srv.App().Test(httptest.NewRequest(
			"GET", "/tiles/lookup?level=2&lon=-200&lat=10", nil))
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
	})

	t.Run("coordinates outside coverage return 404", func(t *testing.T) {
		resp, err := srv.App().Test(httptest.NewRequest(
			"GET", "/tiles/lookup?level=2&lon=2.1734&lat=41.3851", nil))
		require.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), "OUTSIDE_COVERAGE")
	})

	t.Run("missing query parameters return 400", func(t *testing.T) {
		resp, err := srv.App().Test(httptest.NewRequest("GET", "/tiles/lookup", nil))
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
	})

	t.Run("batch lookup under the versioned prefix", func(t *testing.T) {
		payload := `{"level":1,"coordinates":[{"lon":-34.8711,"lat":-8.0631},{"lon":2.17,"lat":41.38}]}`
		req := httptest.NewRequest("POST", "/api/v1/tiles/lookup/batch", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")

		resp, err := srv.App().Test(req)
		require.NoError(t, err)
		require.Equal(t, 200, resp.StatusCode)

		var envelope struct {
			Data struct {
				Results []struct {
					Found  bool   `json:"found"`
					TileID string `json:"tile_id"`
				} `json:"results"`
			} `json:"data"`
		}
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &envelope))
		require.Len(t, envelope.Data.Results, 2)
		assert.True(t, envelope.Data.Results[0].Found)
		assert.False(t, envelope.Data.Results[1].Found)
	})
}

func TestServer_LevelInfo(t *testing.T) {
	srv := newTestServer(t)

	resp, err := srv.App().Test(httptest.NewRequest("GET", "/api/v1/levels/0", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var envelope struct {
		Data domain.LevelInfo `json:"data"`
	}
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, &envelope))
	assert.Equal(t, float64(100000), envelope.Data.TileSize)
	assert.Greater(t, envelope.Data.HilbertOrder, 0)

	resp, err = srv.App().Test(httptest.NewRequest("GET", "/api/v1/levels/-1", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}
