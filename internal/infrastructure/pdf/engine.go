package pdf

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/tilekart/tilebill/internal/application/billing"
)

// addressLineLen where the buyer/consignee address wraps onto its second box.
const addressLineLen = 40

// GeneratorConfig assets and options for the template-overlay engine.
type GeneratorConfig struct {
	// Page1Template is the background PDF of the first page. Required.
	Page1Template []byte
	// ContTemplate is the background of continuation pages. Falls back to
	// Page1Template when empty.
	ContTemplate []byte
	// MapPage1 and MapCont are the coordinate maps for the two variants.
	// MapCont falls back to MapPage1 when nil.
	MapPage1 *CoordinateMap
	MapCont  *CoordinateMap
	// FontRegular/FontBold optionally embed a UTF-8 TTF pair. Without them
	// the core Helvetica faces are used and currency prints as "Rs.".
	FontRegular []byte
	FontBold    []byte
	// CurrencyGlyph overrides the currency prefix.
	CurrencyGlyph string
	Logger        zerolog.Logger
}

// TemplateOverlayGenerator renders invoices by overlaying dynamic content on
// template pages. Implements billing.InvoicePDFGenerator.
type TemplateOverlayGenerator struct {
	cfg      GeneratorConfig
	mapPage1 *CoordinateMap
	mapCont  *CoordinateMap
}

// NewTemplateOverlayGenerator validates the assets and builds the engine.
func NewTemplateOverlayGenerator(cfg GeneratorConfig) (*TemplateOverlayGenerator, error) {
	if len(cfg.Page1Template) == 0 {
		return nil, fmt.Errorf("overlay generator: first page template required")
	}
	if cfg.MapPage1 == nil {
		return nil, fmt.Errorf("overlay generator: first page coordinate map required")
	}
	cont := cfg.MapCont
	if cont == nil {
		cont = cfg.MapPage1
	}
	if cont.Page.Width != cfg.MapPage1.Page.Width || cont.Page.Height != cfg.MapPage1.Page.Height {
		return nil, fmt.Errorf("overlay generator: template variants disagree on page size")
	}
	return &TemplateOverlayGenerator{cfg: cfg, mapPage1: cfg.MapPage1, mapCont: cont}, nil
}

// GenerateInvoicePDF renders the document and returns the finished bytes.
// Output is deterministic for a given document: the file's creation and
// modification dates are pinned to the invoice date.
func (g *TemplateOverlayGenerator) GenerateInvoicePDF(ctx context.Context, doc *billing.InvoiceDocument) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ov, err := g.render(doc)
	if err != nil {
		return nil, err
	}
	return ov.Output()
}

// render draws the whole document onto a fresh overlay. Split from
// GenerateInvoicePDF so tests can inspect the overlay before serialization.
func (g *TemplateOverlayGenerator) render(doc *billing.InvoiceDocument) (*Overlay, error) {
	ov := newOverlay(g.cfg, g.mapPage1.Page.Width, g.mapPage1.Page.Height)
	ov.pdf.SetCreationDate(doc.Date.UTC())
	ov.pdf.SetModificationDate(doc.Date.UTC())

	if err := ov.AddTemplatePage(VariantPage1); err != nil {
		return nil, err
	}
	g.renderHeader(ov, doc)

	layout := newLayoutEngine(ov, g.mapPage1, g.mapCont)
	st, err := layout.renderSections(doc.Sections)
	if err != nil {
		return nil, err
	}

	// The totals block exists only on the first page template. It is drawn
	// when the document is still on page one and the cursor clears it.
	if f := g.mapPage1.Footer; f != nil && st.variant == VariantPage1 && st.cursorY >= f.TopY() {
		g.renderFooter(ov, doc)
	}

	if n := ov.PageCount(); n > 1 {
		for i := 1; i <= n; i++ {
			ov.SetPage(i)
			ov.StampTopRight(fmt.Sprintf("%s (Page %d/%d)", doc.QuotationNo, i, n), g.mapPage1.Stamp)
		}
	}
	return ov, nil
}

func (g *TemplateOverlayGenerator) renderHeader(ov *Overlay, doc *billing.InvoiceDocument) {
	m := g.mapPage1
	if h := m.Header; h != nil {
		drawPlaced(ov, doc.QuotationNo, h.QuotationNo, TextOptions{Size: 7.5, Style: "B"})
		drawPlaced(ov, doc.Date.Format("02/01/2006"), h.Date, TextOptions{Size: 7.5, Style: "B"})
		drawPlaced(ov, doc.ReferenceName, h.Reference, TextOptions{Size: 7.5})
	}
	if m.Buyer != nil {
		g.renderParty(ov, m.Buyer, doc.Buyer)
	}
	if m.Consignee != nil {
		consignee := doc.Buyer
		if doc.Consignee != nil {
			consignee = *doc.Consignee
		}
		g.renderParty(ov, m.Consignee, consignee)
	}
}

func (g *TemplateOverlayGenerator) renderParty(ov *Overlay, boxes *PartyBoxes, p billing.Party) {
	drawPlaced(ov, p.Name, boxes.Name, TextOptions{Size: 7.5, Style: "B"})
	if p.Phone != "" {
		drawPlaced(ov, "Ph: "+p.Phone, boxes.Phone, TextOptions{Size: 7})
	}
	line1, line2 := splitAddress(p.Address)
	drawPlaced(ov, line1, boxes.Address1, TextOptions{Size: 7})
	drawPlaced(ov, line2, boxes.Address2, TextOptions{Size: 7})
	if boxes.GSTIN != nil && p.GSTIN != "" {
		drawPlaced(ov, "GSTIN: "+p.GSTIN, *boxes.GSTIN, TextOptions{Size: 7})
	}
}

func (g *TemplateOverlayGenerator) renderFooter(ov *Overlay, doc *billing.InvoiceDocument) {
	f := g.mapPage1.Footer
	drawCurrencyPlaced(ov, doc.Subtotal, f.TotalAmount, TextOptions{Size: 7.5})
	drawCurrencyPlaced(ov, doc.Charges.Transport, f.Transport, TextOptions{Size: 7.5})
	drawCurrencyPlaced(ov, doc.Charges.Unloading, f.Unloading, TextOptions{Size: 7.5})
	if doc.GSTAmount.Sign() > 0 {
		drawCurrencyPlaced(ov, doc.GSTAmount, f.GST, TextOptions{Size: 7.5})
	} else {
		drawPlaced(ov, "As applicable", f.GST, TextOptions{Size: 7, Style: "I", Color: &colorGray})
	}
	drawCurrencyPlaced(ov, doc.GrandTotal, f.FinalAmount, TextOptions{Size: 8, Style: "B", Color: &colorWhite})
	drawPlaced(ov, doc.Remarks, f.Remarks, TextOptions{Size: 7})
}

func drawPlaced(ov *Overlay, text string, pb PlacedBox, opts TextOptions) {
	opts.Align = pb.Align
	ov.DrawText(text, pb.Box, opts)
}

func drawCurrencyPlaced(ov *Overlay, v decimal.Decimal, pb PlacedBox, opts TextOptions) {
	opts.Align = pb.Align
	ov.DrawCurrency(v, pb.Box, opts)
}

// splitAddress breaks an address over the two template lines on rune
// boundaries. Anything past the second line is dropped; DrawText shrinks the
// rest to fit.
func splitAddress(addr string) (string, string) {
	r := []rune(addr)
	if len(r) <= addressLineLen {
		return addr, ""
	}
	if len(r) > 2*addressLineLen {
		r = r[:2*addressLineLen]
	}
	return string(r[:addressLineLen]), string(r[addressLineLen:])
}
