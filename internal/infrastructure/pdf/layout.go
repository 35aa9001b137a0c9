package pdf

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tilekart/tilebill/internal/application/billing"
)

// sectionGap extra vertical space after a section's total row.
const sectionGap = 5

// drawSurface is the subset of Overlay the layout engine draws through.
// Tests substitute a recording implementation.
type drawSurface interface {
	AddTemplatePage(variant TemplateVariant) error
	DrawText(text string, box Box, opts TextOptions)
	DrawCurrency(v decimal.Decimal, box Box, opts TextOptions)
	DrawImage(payload string, box Box, pad float64)
	MaskBox(box Box, color RGB)
}

// layoutEngine walks the invoice sections down the page, pre-checking every
// band against the active map's safe bottom and switching to continuation
// pages as needed. A band that does not fit is never split: it moves whole to
// the next page.
type layoutEngine struct {
	surf drawSurface
	maps map[TemplateVariant]*CoordinateMap
}

// renderState the cursor after rendering: which variant the last page uses
// and the Y the next band would start at. The driver uses it to decide
// whether the footer fits on page one.
type renderState struct {
	variant TemplateVariant
	m       *CoordinateMap
	cursorY float64
}

func newLayoutEngine(surf drawSurface, page1, cont *CoordinateMap) *layoutEngine {
	return &layoutEngine{
		surf: surf,
		maps: map[TemplateVariant]*CoordinateMap{
			VariantPage1: page1,
			VariantCont:  cont,
		},
	}
}

// renderSections renders every section in order: title band, item rows with
// a per-section serial restarting at 1, then the section total row. The
// first template page must already be on the surface.
func (l *layoutEngine) renderSections(sections []billing.InvoiceSection) (*renderState, error) {
	st := &renderState{variant: VariantPage1, m: l.maps[VariantPage1]}
	st.cursorY = st.m.Table.StartY

	for _, sec := range sections {
		if err := l.ensureRoom(st, st.m.Table.RowH); err != nil {
			return nil, err
		}
		l.drawSectionHeader(st, sec.Name)
		st.cursorY -= st.m.Table.RowH

		serial := 1
		total := decimal.Zero
		for i := range sec.Items {
			item := &sec.Items[i]
			if err := l.ensureRoom(st, l.rowHeight(st, item)); err != nil {
				return nil, err
			}
			rowH := l.rowHeight(st, item)
			l.drawItemRow(st, item, serial, rowH)
			st.cursorY -= rowH
			total = total.Add(item.AmountNumeric)
			serial++
		}

		if err := l.ensureRoom(st, st.m.Table.RowH); err != nil {
			return nil, err
		}
		l.drawSectionTotal(st, sec.Name, total)
		st.cursorY -= st.m.Table.RowH + sectionGap
	}
	return st, nil
}

// ensureRoom starts a continuation page when the next band of height rowH
// would cross the safe bottom, resetting the cursor to the new map's table
// start.
func (l *layoutEngine) ensureRoom(st *renderState, rowH float64) error {
	if st.cursorY-rowH >= st.m.Page.SafeBottomY {
		return nil
	}
	if err := l.surf.AddTemplatePage(VariantCont); err != nil {
		return err
	}
	st.variant = VariantCont
	st.m = l.maps[VariantCont]
	st.cursorY = st.m.Table.StartY
	return nil
}

// rowHeight image rows are taller. Evaluated against the active map, so it
// stays correct across a page switch.
func (l *layoutEngine) rowHeight(st *renderState, item *billing.InvoiceItem) float64 {
	if item.Image != "" {
		return st.m.Table.RowHWithImage
	}
	return st.m.Table.RowH
}

func (l *layoutEngine) drawSectionHeader(st *renderState, name string) {
	band := st.m.Section.Title
	placed := band.Box.WithY(st.cursorY - band.H)
	l.surf.MaskBox(placed, st.m.BackgroundRGB())
	l.surf.DrawText(strings.ToUpper(name), placed, TextOptions{
		Size:  9,
		Style: "B",
		Color: &colorAccent,
		Align: band.Align,
	})
}

func (l *layoutEngine) drawItemRow(st *renderState, item *billing.InvoiceItem, serial int, rowH float64) {
	cols := st.m.Table.Cols
	rowY := st.cursorY - rowH
	cell := func(c ColumnDef) Box {
		return Box{X: c.X, Y: rowY, W: c.W, H: rowH}
	}

	l.surf.DrawText(strconv.Itoa(serial), cell(cols.Sr), TextOptions{Size: 7, Align: cols.Sr.Align})
	l.surf.DrawText(item.Name, cell(cols.Name), TextOptions{Size: 7, Align: cols.Name.Align})
	if item.Image != "" {
		l.surf.DrawImage(item.Image, imageCell(cell(cols.Image), cols.Image), 1)
	}
	l.surf.DrawText(item.Size, cell(cols.Size), TextOptions{Size: 7, Align: cols.Size.Align})
	l.surf.DrawCurrency(item.RateBox, cell(cols.RateBox), TextOptions{Size: 6, Align: cols.RateBox.Align})
	l.surf.DrawCurrency(item.RateSqft, cell(cols.RateSqft), TextOptions{Size: 6, Align: cols.RateSqft.Align})
	l.surf.DrawText(item.Qty, cell(cols.Qty), TextOptions{Size: 6, Align: cols.Qty.Align})
	l.surf.DrawText(item.Disc, cell(cols.Disc), TextOptions{Size: 6, Align: cols.Disc.Align})

	amountBox := cell(cols.Amount)
	amountOpts := TextOptions{Size: 7, Style: "B", Align: cols.Amount.Align}
	if item.Amount != "" {
		l.surf.DrawText(item.Amount, amountBox, amountOpts)
	} else {
		l.surf.DrawCurrency(item.AmountNumeric, amountBox, amountOpts)
	}
}

func (l *layoutEngine) drawSectionTotal(st *renderState, name string, total decimal.Decimal) {
	label := st.m.Section.TotalLabel
	labelBox := label.Box.WithY(st.cursorY - label.H)
	l.surf.MaskBox(labelBox, st.m.BackgroundRGB())
	l.surf.DrawText(name+"'s Total Amount", labelBox, TextOptions{
		Size:  8,
		Style: "B",
		Color: &colorAccent,
		Align: label.Align,
	})

	value := st.m.Section.TotalValue
	valueBox := value.Box.WithY(st.cursorY - value.H)
	l.surf.MaskBox(valueBox, st.m.BackgroundRGB())
	l.surf.DrawCurrency(total, valueBox, TextOptions{Size: 8, Style: "B", Align: value.Align})
}

// imageCell narrows the image column's cell to its configured picture area,
// keeping it centered.
func imageCell(cell Box, col ColumnDef) Box {
	if col.ImgW <= 0 || col.ImgH <= 0 {
		return cell
	}
	w, h := col.ImgW, col.ImgH
	if w > cell.W {
		w = cell.W
	}
	if h > cell.H {
		h = cell.H
	}
	return Box{
		X: cell.X + (cell.W-w)/2,
		Y: cell.Y + (cell.H-h)/2,
		W: w,
		H: h,
	}
}
