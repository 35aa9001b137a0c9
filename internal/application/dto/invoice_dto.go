package dto

import "github.com/shopspring/decimal"

// LineItemRequest one invoice line. Coverage and BoxPacking may be zero; they
// are then auto-filled from the tile catalog by size.
type LineItemRequest struct {
	Location        string          `json:"location"`
	TileName        string          `json:"tile_name,omitempty"`
	TileImage       string          `json:"tile_image,omitempty"` // base64 or data URI
	Size            string          `json:"size"`
	BoxQty          int             `json:"box_qty"`
	ExtraSqft       decimal.Decimal `json:"extra_sqft"`
	RatePerSqft     decimal.Decimal `json:"rate_per_sqft"`
	RatePerBox      decimal.Decimal `json:"rate_per_box"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	Coverage        decimal.Decimal `json:"coverage"`
	BoxPacking      int             `json:"box_packing"`
}

// CreateInvoiceRequest body for POST /api/invoices.
type CreateInvoiceRequest struct {
	CustomerID       string            `json:"customer_id"`
	LineItems        []LineItemRequest `json:"line_items"`
	TransportCharges decimal.Decimal   `json:"transport_charges"`
	UnloadingCharges decimal.Decimal   `json:"unloading_charges"`
	AmountPaid       decimal.Decimal   `json:"amount_paid"`
	Status           string            `json:"status,omitempty"`
	ReferenceName    string            `json:"reference_name,omitempty"`
	ConsigneeName    string            `json:"consignee_name,omitempty"`
	ConsigneePhone   string            `json:"consignee_phone,omitempty"`
	ConsigneeAddress string            `json:"consignee_address,omitempty"`
	Remarks          string            `json:"overall_remarks,omitempty"`
	GSTPercent       decimal.Decimal   `json:"gst_percent"`
}

// UpdateInvoiceRequest body for PUT /api/invoices/:id. Nil fields stay unchanged.
type UpdateInvoiceRequest struct {
	LineItems        []LineItemRequest `json:"line_items,omitempty"`
	TransportCharges *decimal.Decimal  `json:"transport_charges,omitempty"`
	UnloadingCharges *decimal.Decimal  `json:"unloading_charges,omitempty"`
	AmountPaid       *decimal.Decimal  `json:"amount_paid,omitempty"`
	Status           *string           `json:"status,omitempty"`
	ReferenceName    *string           `json:"reference_name,omitempty"`
	ConsigneeName    *string           `json:"consignee_name,omitempty"`
	ConsigneePhone   *string           `json:"consignee_phone,omitempty"`
	ConsigneeAddress *string           `json:"consignee_address,omitempty"`
	Remarks          *string           `json:"overall_remarks,omitempty"`
	GSTPercent       *decimal.Decimal  `json:"gst_percent,omitempty"`
}

// LineItemResponse line with calculated fields.
type LineItemResponse struct {
	Location             string          `json:"location"`
	TileName             string          `json:"tile_name,omitempty"`
	TileImage            string          `json:"tile_image,omitempty"`
	Size                 string          `json:"size"`
	BoxQty               int             `json:"box_qty"`
	ExtraSqft            decimal.Decimal `json:"extra_sqft"`
	RatePerSqft          decimal.Decimal `json:"rate_per_sqft"`
	RatePerBox           decimal.Decimal `json:"rate_per_box"`
	DiscountPercent      decimal.Decimal `json:"discount_percent"`
	Coverage             decimal.Decimal `json:"coverage"`
	BoxPacking           int             `json:"box_packing"`
	TotalSqft            decimal.Decimal `json:"total_sqft"`
	AmountBeforeDiscount decimal.Decimal `json:"amount_before_discount"`
	DiscountAmount       decimal.Decimal `json:"discount_amount"`
	FinalAmount          decimal.Decimal `json:"final_amount"`
}

// InvoiceResponse invoice with detail for GET /api/invoices/:id.
type InvoiceResponse struct {
	InvoiceID        string             `json:"invoice_id"`
	Date             string             `json:"invoice_date"`
	CustomerID       string             `json:"customer_id"`
	CustomerName     string             `json:"customer_name"`
	CustomerPhone    string             `json:"customer_phone"`
	CustomerAddress  string             `json:"customer_address"`
	CustomerGSTIN    string             `json:"customer_gstin,omitempty"`
	ReferenceName    string             `json:"reference_name,omitempty"`
	ConsigneeName    string             `json:"consignee_name,omitempty"`
	ConsigneePhone   string             `json:"consignee_phone,omitempty"`
	ConsigneeAddress string             `json:"consignee_address,omitempty"`
	Remarks          string             `json:"overall_remarks,omitempty"`
	Status           string             `json:"status"`
	LineItems        []LineItemResponse `json:"line_items"`
	TransportCharges decimal.Decimal    `json:"transport_charges"`
	UnloadingCharges decimal.Decimal    `json:"unloading_charges"`
	GSTPercent       decimal.Decimal    `json:"gst_percent"`
	GSTAmount        decimal.Decimal    `json:"gst_amount"`
	Subtotal         decimal.Decimal    `json:"subtotal"`
	GrandTotal       decimal.Decimal    `json:"grand_total"`
	AmountPaid       decimal.Decimal    `json:"amount_paid"`
	PendingBalance   decimal.Decimal    `json:"pending_balance"`
}
