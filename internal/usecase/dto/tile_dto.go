package dto

import "encoding/json"

// LookupResponse pairs the resolved tile id with its GeoJSON feature.
type LookupResponse struct {
	TileID  string          `json:"tile_id"`
	Feature json.RawMessage `json:"feature"`
}

// CoordinateInput is one WGS84 point in a batch lookup.
type CoordinateInput struct {
	Lon float64 `json:"lon" validate:"min=-180,max=180"`
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
}

// LookupBatchRequest resolves many coordinates at one level.
type LookupBatchRequest struct {
	Level       int               `json:"level" validate:"min=0"`
	Coordinates []CoordinateInput `json:"coordinates" validate:"required,min=1,max=500,dive"`
}

// LookupBatchItem is the per-coordinate outcome; coordinates outside the
// coverage area report found=false instead of failing the whole batch.
type LookupBatchItem struct {
	Index  int    `json:"index"`
	TileID string `json:"tile_id,omitempty"`
	Found  bool   `json:"found"`
	Error  string `json:"error,omitempty"`
}

// LookupBatchResponse is the batch lookup result.
type LookupBatchResponse struct {
	Level   int               `json:"level"`
	Results []LookupBatchItem `json:"results"`
}
