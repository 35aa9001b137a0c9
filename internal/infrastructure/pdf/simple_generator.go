package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/tilekart/tilebill/internal/application/billing"
)

// ── Palette ───────────────────────────────────────────────────────────────────

var (
	simpleAccent = &props.Color{Red: 89, Green: 56, Blue: 38}
	simpleGray   = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// SimplePDFGenerator is the template-less fallback renderer. It produces a
// plain flowing document with the same content as the overlay engine, for
// deployments that have no template assets. Implements
// billing.InvoicePDFGenerator.
type SimplePDFGenerator struct {
	glyph string
}

// NewSimplePDFGenerator builds the generator. glyph defaults to "Rs.".
func NewSimplePDFGenerator(glyph string) *SimplePDFGenerator {
	if glyph == "" {
		glyph = "Rs."
	}
	return &SimplePDFGenerator{glyph: glyph}
}

// GenerateInvoicePDF renders the document and returns its bytes.
func (g *SimplePDFGenerator) GenerateInvoicePDF(_ context.Context, doc *billing.InvoiceDocument) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Quotation "+doc.QuotationNo, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: simpleAccent, Thickness: 0.5}))
	m.AddRows(g.partiesRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: simpleAccent, Thickness: 0.3}))

	for _, sec := range doc.Sections {
		m.AddRows(g.sectionTitleRow(sec.Name))
		m.AddRows(g.tableHeaderRow())
		for _, r := range g.itemRows(sec.Items) {
			m.AddRows(r)
		}
		m.AddRows(g.sectionTotalRow(sec))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: simpleAccent, Thickness: 0.3}))
	m.AddRows(g.totalsRow(doc))
	if doc.Remarks != "" {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Remarks: "+doc.Remarks, props.Text{Size: 8, Top: 2, Color: simpleGray}),
		)))
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Sections ──────────────────────────────────────────────────────────────────

// headerRow: quotation number and date, right aligned.
func (g *SimplePDFGenerator) headerRow(doc *billing.InvoiceDocument) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New("QUOTATION", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: simpleAccent, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New(doc.QuotationNo, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1,
			}),
			text.New("Date: "+doc.Date.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: simpleGray,
			}),
		),
	)
}

// partiesRow: buyer on the left, consignee (or buyer again) on the right.
func (g *SimplePDFGenerator) partiesRow(doc *billing.InvoiceDocument) core.Row {
	consignee := doc.Buyer
	if doc.Consignee != nil {
		consignee = *doc.Consignee
	}
	party := func(title string, p billing.Party, a align.Type) core.Col {
		contact := p.Address
		if p.Phone != "" {
			contact = "Ph: " + p.Phone + "   " + contact
		}
		c := col.New(6).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 8, Color: simpleAccent, Top: 1, Align: a,
			}),
			text.New(p.Name, props.Text{Style: fontstyle.Bold, Size: 9, Top: 6, Align: a}),
			text.New(contact, props.Text{Size: 8, Top: 11, Color: simpleGray, Align: a}),
		)
		if p.GSTIN != "" {
			c.Add(text.New("GSTIN: "+p.GSTIN, props.Text{Size: 8, Top: 16, Color: simpleGray, Align: a}))
		}
		return c
	}
	return row.New(22).Add(
		party("BUYER", doc.Buyer, align.Left),
		party("CONSIGNEE", consignee, align.Right),
	)
}

func (g *SimplePDFGenerator) sectionTitleRow(name string) core.Row {
	return row.New(9).Add(col.New(12).Add(
		text.New(name, props.Text{
			Style: fontstyle.Bold, Size: 10, Color: simpleAccent, Top: 2,
		}),
	))
}

func (g *SimplePDFGenerator) tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1,
		}))
	}
	return row.New(7).Add(
		h("Sr.", 1, align.Center),
		h("Name", 3, align.Left),
		h("Size", 2, align.Center),
		h("Rate/Box", 1, align.Right),
		h("Rate/Sqft", 1, align.Right),
		h("Qty", 1, align.Center),
		h("Disc", 1, align.Center),
		h("Amount", 2, align.Right),
	)
}

func (g *SimplePDFGenerator) itemRows(items []billing.InvoiceItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for i, item := range items {
		amount := item.Amount
		if amount == "" {
			amount = FormatCurrency(g.glyph, item.AmountNumeric)
		}
		result = append(result, row.New(6).Add(
			col.New(1).Add(text.New(fmt.Sprintf("%d", i+1), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New(item.Name, props.Text{Size: 8, Align: align.Left, Top: 1})),
			col.New(2).Add(text.New(item.Size, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(FormatCurrency(g.glyph, item.RateBox), props.Text{Size: 7, Align: align.Right, Top: 1})),
			col.New(1).Add(text.New(FormatCurrency(g.glyph, item.RateSqft), props.Text{Size: 7, Align: align.Right, Top: 1})),
			col.New(1).Add(text.New(item.Qty, props.Text{Size: 7, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(item.Disc, props.Text{Size: 7, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(amount, props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1})),
		))
	}
	return result
}

func (g *SimplePDFGenerator) sectionTotalRow(sec billing.InvoiceSection) core.Row {
	return row.New(7).Add(
		col.New(8).Add(text.New(sec.Name+"'s Total Amount", props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: simpleAccent, Top: 1,
		})),
		col.New(4).Add(text.New(FormatCurrency(g.glyph, sec.Total()), props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1,
		})),
	)
}

func (g *SimplePDFGenerator) totalsRow(doc *billing.InvoiceDocument) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(v decimal.Decimal, top float64) core.Component {
		return text.New(FormatCurrency(g.glyph, v), props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	gst := text.New("As applicable", props.Text{Size: 8, Align: align.Right, Right: 1, Top: 19, Color: simpleGray})
	if doc.GSTAmount.Sign() > 0 {
		gst = text.New(FormatCurrency(g.glyph, doc.GSTAmount), props.Text{Size: 9, Align: align.Right, Right: 1, Top: 19})
	}

	return row.New(34).Add(
		col.New(4),
		col.New(4).Add(
			label("Total Amount:", 1),
			label("Transport:", 7),
			label("Unloading:", 13),
			label("GST:", 19),
			text.New("GRAND TOTAL:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: simpleAccent, Right: 2, Top: 26,
			}),
		),
		col.New(4).Add(
			value(doc.Subtotal, 1),
			value(doc.Charges.Transport, 7),
			value(doc.Charges.Unloading, 13),
			gst,
			text.New(FormatCurrency(g.glyph, doc.GrandTotal), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: simpleAccent, Right: 1, Top: 26,
			}),
		),
	)
}
