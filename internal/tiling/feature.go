package tiling

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/Gabrielunor/coordinator-backend/internal/domain"
)

// BuildFeature renders a tile as a GeoJSON Feature. The polygon ring is the
// projected bbox reprojected to WGS84, closed on the first vertex.
func (s *Service) BuildFeature(tile domain.Tile) *geojson.Feature {
	b := tile.BBox
	corners := [][2]float64{
		{b.XMin, b.YMin},
		{b.XMax, b.YMin},
		{b.XMax, b.YMax},
		{b.XMin, b.YMax},
	}

	ring := make(orb.Ring, 0, len(corners)+1)
	for _, c := range corners {
		lon, lat := s.proj.Inverse(c[0], c[1])
		ring = append(ring, orb.Point{lon, lat})
	}
	ring = append(ring, ring[0])

	centerX, centerY := tile.Center()
	centerLon, centerLat := s.proj.Inverse(centerX, centerY)

	feature := geojson.NewFeature(orb.Polygon{ring})
	feature.Properties = geojson.Properties{
		"id":         tile.ID,
		"level":      tile.Level,
		"center_x":   centerX,
		"center_y":   centerY,
		"center_lon": centerLon,
		"center_lat": centerLat,
		"tile_size":  tile.Size(),
		"bbox": map[string]float64{
			"x_min": b.XMin,
			"y_min": b.YMin,
			"x_max": b.XMax,
			"y_max": b.YMax,
		},
		"grid_coords": map[string]int{
			"i": tile.GridI,
			"j": tile.GridJ,
		},
		"normalized_grid_coords": map[string]int{
			"i": tile.NormalizedI,
			"j": tile.NormalizedJ,
		},
		"hilbert_distance": tile.HilbertDistance,
	}

	return feature
}
