package dto

// CreateTileRequest body for POST /api/tiles.
type CreateTileRequest struct {
	Size       string  `json:"size"`
	Coverage   float64 `json:"coverage"`
	BoxPacking int     `json:"box_packing"`
}

// UpdateTileRequest body for PUT /api/tiles/:id. Nil fields stay unchanged.
type UpdateTileRequest struct {
	Size       *string  `json:"size,omitempty"`
	Coverage   *float64 `json:"coverage,omitempty"`
	BoxPacking *int     `json:"box_packing,omitempty"`
}

// TileResponse tile in responses.
type TileResponse struct {
	ID         string  `json:"tile_id"`
	Size       string  `json:"size"`
	Coverage   float64 `json:"coverage"`
	BoxPacking int     `json:"box_packing"`
	Active     bool    `json:"active"`
	CreatedAt  string  `json:"created_at"`
}

// TileBySizeResponse payload for GET /api/tiles/by-size/:size, used to
// auto-populate invoice line items.
type TileBySizeResponse struct {
	Size       string  `json:"size"`
	Coverage   float64 `json:"coverage"`
	BoxPacking int     `json:"box_packing"`
}
