package pdf

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"codeberg.org/go-pdf/fpdf"
	"codeberg.org/go-pdf/fpdf/contrib/gofpdi"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	fontFamilyCore   = "Helvetica"
	fontFamilyCustom = "Invoice"
	stampFontSize    = 7
)

// Overlay is one in-progress invoice document. It wraps the underlying PDF
// writer with the placement model used by the rest of the package: every
// coordinate is a bottom-left-origin Box, converted to the writer's top-left
// origin at draw time. Pages are append-only; finished pages can be revisited
// only to stamp page numbers.
type Overlay struct {
	pdf       *fpdf.Fpdf
	importer  *gofpdi.Importer
	templates map[TemplateVariant][]byte
	tplIDs    map[TemplateVariant]int
	pageW     float64
	pageH     float64
	family    string
	glyph     string
	pages     int
	log       zerolog.Logger
}

func newOverlay(cfg GeneratorConfig, pageW, pageH float64) *Overlay {
	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: pageW, Ht: pageH},
	})
	doc.SetAutoPageBreak(false, 0)
	doc.SetMargins(0, 0, 0)

	family := fontFamilyCore
	glyph := cfg.CurrencyGlyph
	if len(cfg.FontRegular) > 0 {
		doc.AddUTF8FontFromBytes(fontFamilyCustom, "", cfg.FontRegular)
		bold := cfg.FontBold
		if len(bold) == 0 {
			bold = cfg.FontRegular
		}
		doc.AddUTF8FontFromBytes(fontFamilyCustom, "B", bold)
		family = fontFamilyCustom
		if glyph == "" {
			glyph = "₹"
		}
	}
	if glyph == "" {
		// Core fonts carry no rupee glyph.
		glyph = "Rs."
	}

	cont := cfg.ContTemplate
	if len(cont) == 0 {
		cont = cfg.Page1Template
	}
	return &Overlay{
		pdf:      doc,
		importer: gofpdi.NewImporter(),
		templates: map[TemplateVariant][]byte{
			VariantPage1: cfg.Page1Template,
			VariantCont:  cont,
		},
		tplIDs: map[TemplateVariant]int{},
		pageW:  pageW,
		pageH:  pageH,
		family: family,
		glyph:  glyph,
		log:    cfg.Logger,
	}
}

// AddTemplatePage appends a page and paints the variant's template under it.
// The template import library panics on malformed PDFs, so failures are
// recovered into an error.
func (o *Overlay) AddTemplatePage(variant TemplateVariant) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("import %s template: %v", variant, r)
		}
	}()
	o.pdf.AddPageFormat("P", fpdf.SizeType{Wd: o.pageW, Ht: o.pageH})
	tplID, ok := o.tplIDs[variant]
	if !ok {
		rs := io.ReadSeeker(bytes.NewReader(o.templates[variant]))
		tplID = o.importer.ImportPageFromStream(o.pdf, &rs, 1, "/MediaBox")
		o.tplIDs[variant] = tplID
	}
	o.importer.UseImportedTemplate(o.pdf, tplID, 0, 0, o.pageW, 0)
	if o.pdf.Err() {
		return fmt.Errorf("import %s template: %w", variant, o.pdf.Error())
	}
	o.pages++
	return nil
}

// PageCount pages added so far.
func (o *Overlay) PageCount() int {
	return o.pages
}

// SetPage moves the write head back to an existing page (1-based).
func (o *Overlay) SetPage(n int) {
	o.pdf.SetPage(n)
}

// DrawText draws a single line inside box, shrinking and then truncating it
// so it never overflows horizontally. Empty or whitespace-only text draws
// nothing.
func (o *Overlay) DrawText(text string, box Box, opts TextOptions) {
	if strings.TrimSpace(text) == "" {
		return
	}
	opts = opts.withDefaults()
	o.setFont(opts.Style, opts.Size)
	measure := func(s string, size float64) float64 {
		o.pdf.SetFontSize(size)
		return o.pdf.GetStringWidth(s)
	}
	fitted, size := fitText(text, box.W-2*opts.Pad, opts.Size, opts.MinSize, measure)
	o.pdf.SetFontSize(size)
	o.setTextColor(*opts.Color)

	// Baseline centers the line vertically in the box.
	baseline := box.Y + box.H/2 - size/3
	y := o.pageH - baseline

	var x float64
	switch opts.Align {
	case AlignCenter:
		x = box.X + (box.W-o.pdf.GetStringWidth(fitted))/2
	case AlignRight:
		x = box.X + box.W - opts.Pad - o.pdf.GetStringWidth(fitted)
	default:
		x = box.X + opts.Pad
	}
	o.pdf.Text(x, y, fitted)
}

// DrawCurrency formats the amount with the document's currency glyph and
// draws it like DrawText.
func (o *Overlay) DrawCurrency(v decimal.Decimal, box Box, opts TextOptions) {
	o.DrawText(FormatCurrency(o.glyph, v), box, opts)
}

// MaskBox paints a filled rectangle over box, hiding template artwork so
// dynamic content can be placed on clean paper.
func (o *Overlay) MaskBox(box Box, color RGB) {
	o.pdf.SetFillColor(to255(color.R), to255(color.G), to255(color.B))
	o.pdf.Rect(box.X, o.pageH-(box.Y+box.H), box.W, box.H, "F")
}

// StampTopRight draws small gray text right-aligned at the anchor. Used for
// "QTN-... (Page i/N)" stamps on multi-page documents.
func (o *Overlay) StampTopRight(text string, anchor StampAnchor) {
	o.setFont("", stampFontSize)
	o.setTextColor(colorGray)
	x := anchor.X - o.pdf.GetStringWidth(text)
	o.pdf.Text(x, o.pageH-anchor.Y, text)
}

// Output closes the document and returns its bytes.
func (o *Overlay) Output() ([]byte, error) {
	if o.pdf.Err() {
		return nil, fmt.Errorf("render: %w", o.pdf.Error())
	}
	var buf bytes.Buffer
	if err := o.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

// setFont applies family/style/size. The embedded UTF-8 family only ships
// regular and bold faces, so italic falls back to regular there.
func (o *Overlay) setFont(style string, size float64) {
	if o.family == fontFamilyCustom {
		style = strings.ReplaceAll(style, "I", "")
	}
	o.pdf.SetFont(o.family, style, size)
}

func (o *Overlay) setTextColor(c RGB) {
	o.pdf.SetTextColor(to255(c.R), to255(c.G), to255(c.B))
}

func to255(v float64) int {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 255
	}
	return int(v*255 + 0.5)
}
