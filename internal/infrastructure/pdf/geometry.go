// Package pdf implements invoice rendering.
//
// The main implementation is the template-overlay engine: it paints dynamic
// invoice data on top of fixed background template pages (letterhead, column
// headers, static labels), with box-accurate placement driven by coordinate
// maps, and paginates automatically against each page's safe drawing area.
// A simpler template-less Maroto renderer is provided as a fallback for
// deployments without template assets.
package pdf

// Box is an axis-aligned rectangle on a page in points, origin at the
// bottom-left corner. It is the universal placement unit: every drawing
// operation targets a Box resolved from a coordinate map or derived from a
// column definition and a row position.
type Box struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// WithY returns a copy with the vertical origin replaced. Used to place a
// column definition at a computed row position.
func (b Box) WithY(y float64) Box {
	b.Y = y
	return b
}

// Inset shrinks the box symmetrically by pad on all sides.
func (b Box) Inset(pad float64) Box {
	return Box{
		X: b.X + pad,
		Y: b.Y + pad,
		W: b.W - 2*pad,
		H: b.H - 2*pad,
	}
}

// Align horizontal text alignment inside a Box.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// RGB color with components in the 0..1 range, matching the coordinate map
// descriptors.
type RGB struct {
	R, G, B float64
}

var (
	colorBlack  = RGB{0, 0, 0}
	colorWhite  = RGB{1, 1, 1}
	colorGray   = RGB{0.4, 0.4, 0.4}
	colorAccent = RGB{0.35, 0.22, 0.15} // brown used for section titles/totals
)
