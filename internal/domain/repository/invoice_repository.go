package repository

import "github.com/tilekart/tilebill/internal/domain/entity"

// InvoiceRepository persistence port for invoices and their line items.
// Reads exclude soft-deleted rows; GetByInvoiceID returns (nil, nil) when
// missing. Create and Update persist the header together with its line items.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	GetByInvoiceID(invoiceID string) (*entity.Invoice, error)
	List() ([]*entity.Invoice, error)
	ListByCustomer(customerID string) ([]*entity.Invoice, error)
	Update(invoice *entity.Invoice) error
	SoftDelete(invoiceID string) error

	// LastSequenceForFY returns the highest per-financial-year sequence number
	// already issued for IDs shaped "<prefix> / NNN / <fy>", or 0 when none.
	LastSequenceForFY(prefix, fy string) (int, error)
}
