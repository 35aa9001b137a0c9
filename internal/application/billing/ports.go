package billing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tilekart/tilebill/internal/domain/repository"
)

// InvoicePDFGenerator renders a fully assembled InvoiceDocument into PDF
// bytes. Implementations live in infrastructure/pdf.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, doc *InvoiceDocument) ([]byte, error)
}

// TxRunner runs a callback inside one transaction covering invoices and the
// derived customer pending balance.
type TxRunner interface {
	RunBilling(ctx context.Context, fn func(
		invoiceRepo repository.InvoiceRepository,
		customerRepo repository.CustomerRepository,
	) error) error
}

// InvoiceDocument is the immutable input to a PDF render: customer blocks,
// line items pre-grouped into ordered sections, charges and computed totals.
// The renderer never recomputes business figures; it only formats and places
// them.
type InvoiceDocument struct {
	QuotationNo   string
	Date          time.Time
	ReferenceName string
	Buyer         Party
	Consignee     *Party // nil -> renderer falls back to Buyer
	Sections      []InvoiceSection
	Charges       Charges
	Subtotal      decimal.Decimal
	GSTAmount     decimal.Decimal
	GrandTotal    decimal.Decimal
	Remarks       string
}

// Party is a buyer or consignee block.
type Party struct {
	Name    string
	Phone   string
	Address string
	GSTIN   string
}

// Charges are the flat amounts added on top of the item subtotal.
type Charges struct {
	Transport decimal.Decimal
	Unloading decimal.Decimal
}

// InvoiceSection is a named group of items (a room/location) with its own
// subtotal row on the PDF. Sections arrive in the order they must render.
type InvoiceSection struct {
	Name  string
	Items []InvoiceItem
}

// Total sums AmountNumeric over the section's items. This is the figure drawn
// in the section total box.
func (s InvoiceSection) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range s.Items {
		total = total.Add(it.AmountNumeric)
	}
	return total
}

// InvoiceItem is one table row. AmountNumeric is authoritative; Amount is a
// display override and is derived from AmountNumeric when empty, never the
// other way around.
type InvoiceItem struct {
	Name          string
	Size          string
	RateBox       decimal.Decimal
	RateSqft      decimal.Decimal
	Qty           string // display, e.g. "10 box"
	Disc          string // display, e.g. "5%"
	Amount        string
	AmountNumeric decimal.Decimal
	Image         string // base64 payload or data URI, optional
}
