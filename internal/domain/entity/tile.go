package entity

import "time"

// Tile is a catalog entry keyed by size. Coverage and BoxPacking are used to
// auto-populate invoice line items when the user selects a size.
type Tile struct {
	ID         string
	Size       string  // e.g. "600x600mm", "800x800mm"
	Coverage   float64 // sqft per box
	BoxPacking int     // tiles per box
	Active     bool
	Deleted    bool // soft delete
	CreatedAt  time.Time
}
