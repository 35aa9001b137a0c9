package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice lifecycle states.
const (
	StatusDraft     = "Draft"
	StatusSent      = "Sent"
	StatusPaid      = "Paid" // paid invoices refuse further edits
	StatusCancelled = "Cancelled"
)

// Invoice is a quotation/invoice header with its line items and a snapshot of
// the customer at creation time (so later customer edits do not rewrite
// history).
type Invoice struct {
	ID              string // internal UUID
	InvoiceID       string // display ID, e.g. "TTS / 007 / 2025-26"
	Date            time.Time
	CustomerID      string
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	CustomerGSTIN   string

	ReferenceName    string // optional
	ConsigneeName    string // ship-to; falls back to customer when empty
	ConsigneePhone   string
	ConsigneeAddress string
	Remarks          string

	Status    string
	LineItems []LineItem

	TransportCharges decimal.Decimal
	UnloadingCharges decimal.Decimal
	GSTPercent       decimal.Decimal
	GSTAmount        decimal.Decimal
	Subtotal         decimal.Decimal
	GrandTotal       decimal.Decimal
	AmountPaid       decimal.Decimal
	PendingBalance   decimal.Decimal

	Deleted   bool // soft delete
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LineItem is one tile position on an invoice. Location groups items into
// sections on the rendered PDF (e.g. "KITCHEN", "MAIN FLOOR").
type LineItem struct {
	ID        string
	InvoiceID string
	Location  string
	TileName  string
	TileImage string // base64 payload or data URI, optional
	Size      string

	BoxQty          int
	ExtraSqft       decimal.Decimal
	RatePerSqft     decimal.Decimal
	RatePerBox      decimal.Decimal
	DiscountPercent decimal.Decimal
	Coverage        decimal.Decimal // sqft per box, auto-filled from the tile catalog
	BoxPacking      int

	// Calculated fields
	TotalSqft            decimal.Decimal
	AmountBeforeDiscount decimal.Decimal
	DiscountAmount       decimal.Decimal
	FinalAmount          decimal.Decimal
}
