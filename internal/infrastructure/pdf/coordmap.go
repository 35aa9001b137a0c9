package pdf

import (
	"encoding/json"
	"fmt"
)

// TemplateVariant selects which background template and coordinate map a page
// uses. The first page carries the full letterhead and footer; continuation
// pages have a taller table area and no footer.
type TemplateVariant string

const (
	VariantPage1 TemplateVariant = "page1"
	VariantCont  TemplateVariant = "cont"
)

// PlacedBox is a Box plus the horizontal alignment of its content.
type PlacedBox struct {
	Box
	Align Align `json:"align,omitempty"`
}

// ColumnDef places a table column. X and W are fixed per map; the row's
// vertical position and height come from the layout cursor. ImgW/ImgH bound
// the picture area for the image column.
type ColumnDef struct {
	X     float64 `json:"x"`
	W     float64 `json:"w"`
	Align Align   `json:"align,omitempty"`
	ImgW  float64 `json:"img_w,omitempty"`
	ImgH  float64 `json:"img_h,omitempty"`
}

// TableColumns column definitions of the item table.
type TableColumns struct {
	Sr       ColumnDef `json:"sr"`
	Name     ColumnDef `json:"name"`
	Image    ColumnDef `json:"image"`
	Size     ColumnDef `json:"size"`
	RateBox  ColumnDef `json:"rate_box"`
	RateSqft ColumnDef `json:"rate_sqft"`
	Qty      ColumnDef `json:"qty"`
	Disc     ColumnDef `json:"disc"`
	Amount   ColumnDef `json:"amount"`
}

// TableGeometry vertical behavior of the item table on one template variant.
type TableGeometry struct {
	StartY        float64      `json:"start_y"`
	RowH          float64      `json:"row_h"`
	RowHWithImage float64      `json:"row_h_with_image"`
	Cols          TableColumns `json:"cols"`
}

// SectionBoxes boxes for the section title band and the section total row.
// Their Y is ignored; the layout engine places them at the cursor.
type SectionBoxes struct {
	Title      PlacedBox `json:"title"`
	TotalLabel PlacedBox `json:"total_label"`
	TotalValue PlacedBox `json:"total_value"`
}

// HeaderBoxes top-right header fields of the first page.
type HeaderBoxes struct {
	QuotationNo PlacedBox `json:"quotation_no"`
	Date        PlacedBox `json:"date"`
	Reference   PlacedBox `json:"reference"`
}

// PartyBoxes the buyer / consignee address blocks. GSTIN is optional since
// the consignee block on the printed template has no GSTIN line.
type PartyBoxes struct {
	Name     PlacedBox  `json:"name"`
	Phone    PlacedBox  `json:"phone"`
	Address1 PlacedBox  `json:"address1"`
	Address2 PlacedBox  `json:"address2"`
	GSTIN    *PlacedBox `json:"gstin,omitempty"`
}

// FooterBoxes totals block printed at the bottom of the first page.
type FooterBoxes struct {
	TotalAmount PlacedBox `json:"total_amount"`
	Transport   PlacedBox `json:"transport"`
	Unloading   PlacedBox `json:"unloading"`
	GST         PlacedBox `json:"gst"`
	FinalAmount PlacedBox `json:"final_amount"`
	Remarks     PlacedBox `json:"remarks"`
}

// TopY returns the highest edge of the footer block. The layout cursor must
// stay above it for the footer to be drawn on the same page.
func (f FooterBoxes) TopY() float64 {
	top := 0.0
	for _, b := range []Box{f.TotalAmount.Box, f.Transport.Box, f.Unloading.Box, f.GST.Box, f.FinalAmount.Box, f.Remarks.Box} {
		if t := b.Y + b.H; t > top {
			top = t
		}
	}
	return top
}

// StampAnchor right-aligned anchor point of the page number stamp.
type StampAnchor struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PageGeometry page size and the lowest Y the table may reach before a
// continuation page is started.
type PageGeometry struct {
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	SafeBottomY float64 `json:"safe_bottom_y"`
}

// CoordinateMap is the full placement descriptor for one template variant,
// loaded from JSON next to the template PDF. Header, buyer, consignee and
// footer are only present on the first-page map.
type CoordinateMap struct {
	Page       PageGeometry  `json:"page"`
	Background [3]float64    `json:"background"`
	Header     *HeaderBoxes  `json:"header,omitempty"`
	Buyer      *PartyBoxes   `json:"buyer,omitempty"`
	Consignee  *PartyBoxes   `json:"consignee,omitempty"`
	Table      TableGeometry `json:"table"`
	Section    SectionBoxes  `json:"section"`
	Footer     *FooterBoxes  `json:"footer,omitempty"`
	Stamp      StampAnchor   `json:"stamp"`
}

// BackgroundRGB the template's paper color, used to mask template artwork
// behind dynamically placed bands.
func (m *CoordinateMap) BackgroundRGB() RGB {
	return RGB{R: m.Background[0], G: m.Background[1], B: m.Background[2]}
}

// LoadCoordinateMap parses and validates a coordinate map.
func LoadCoordinateMap(data []byte) (*CoordinateMap, error) {
	var m CoordinateMap
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("coordinate map: %w", err)
	}
	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("coordinate map: %w", err)
	}
	return &m, nil
}

func (m *CoordinateMap) validate() error {
	if m.Page.Width <= 0 || m.Page.Height <= 0 {
		return fmt.Errorf("page size %gx%g invalid", m.Page.Width, m.Page.Height)
	}
	if m.Table.RowH <= 0 {
		return fmt.Errorf("row height %g invalid", m.Table.RowH)
	}
	if m.Table.RowHWithImage < m.Table.RowH {
		return fmt.Errorf("image row height %g smaller than row height %g", m.Table.RowHWithImage, m.Table.RowH)
	}
	if m.Table.StartY <= m.Page.SafeBottomY {
		return fmt.Errorf("table start %g not above safe bottom %g", m.Table.StartY, m.Page.SafeBottomY)
	}
	if m.Table.StartY > m.Page.Height {
		return fmt.Errorf("table start %g outside page", m.Table.StartY)
	}
	cols := []struct {
		name string
		c    ColumnDef
	}{
		{"sr", m.Table.Cols.Sr},
		{"name", m.Table.Cols.Name},
		{"image", m.Table.Cols.Image},
		{"size", m.Table.Cols.Size},
		{"rate_box", m.Table.Cols.RateBox},
		{"rate_sqft", m.Table.Cols.RateSqft},
		{"qty", m.Table.Cols.Qty},
		{"disc", m.Table.Cols.Disc},
		{"amount", m.Table.Cols.Amount},
	}
	for _, col := range cols {
		if col.c.W <= 0 {
			return fmt.Errorf("column %s has no width", col.name)
		}
		if col.c.X < 0 || col.c.X+col.c.W > m.Page.Width {
			return fmt.Errorf("column %s outside page", col.name)
		}
	}
	return nil
}
