package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tilekart/tilebill/internal/domain"
	"github.com/tilekart/tilebill/internal/domain/entity"
	"github.com/tilekart/tilebill/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

const invoiceColumns = `
	id, invoice_id, date, customer_id, customer_name, customer_phone, customer_address,
	COALESCE(customer_gstin, ''), COALESCE(reference_name, ''), COALESCE(consignee_name, ''),
	COALESCE(consignee_phone, ''), COALESCE(consignee_address, ''), COALESCE(remarks, ''),
	status, transport_charges, unloading_charges, gst_percent, gst_amount,
	subtotal, grand_total, amount_paid, pending_balance, deleted, created_at, updated_at`

// InvoiceRepo implements InvoiceRepository (usable with pool or tx). Headers
// and line items are persisted together; Update replaces the line item set.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository builds the adapter. Pass a pool or tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persists the invoice header and its line items.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	query := `
		INSERT INTO invoices (
			id, invoice_id, date, customer_id, customer_name, customer_phone, customer_address,
			customer_gstin, reference_name, consignee_name, consignee_phone, consignee_address,
			remarks, status, transport_charges, unloading_charges, gst_percent, gst_amount,
			subtotal, grand_total, amount_paid, pending_balance, deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18,
			$19, $20, $21, $22, $23, $24, $25)`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.InvoiceID, invoice.Date, invoice.CustomerID,
		invoice.CustomerName, invoice.CustomerPhone, invoice.CustomerAddress, nullIfEmpty(invoice.CustomerGSTIN),
		nullIfEmpty(invoice.ReferenceName), nullIfEmpty(invoice.ConsigneeName), nullIfEmpty(invoice.ConsigneePhone),
		nullIfEmpty(invoice.ConsigneeAddress), nullIfEmpty(invoice.Remarks), invoice.Status,
		invoice.TransportCharges, invoice.UnloadingCharges, invoice.GSTPercent, invoice.GSTAmount,
		invoice.Subtotal, invoice.GrandTotal, invoice.AmountPaid, invoice.PendingBalance,
		invoice.Deleted, invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return r.insertLineItems(invoice)
}

// GetByInvoiceID fetches an invoice by its display ID, with line items.
func (r *InvoiceRepo) GetByInvoiceID(invoiceID string) (*entity.Invoice, error) {
	query := `SELECT` + invoiceColumns + `
		FROM invoices WHERE invoice_id = $1 AND NOT deleted`
	inv, err := scanInvoice(r.q.QueryRow(context.Background(), query, invoiceID))
	if err != nil || inv == nil {
		return inv, err
	}
	if inv.LineItems, err = r.loadLineItems(inv.ID); err != nil {
		return nil, err
	}
	return inv, nil
}

// List returns all non-deleted invoices, newest first, with line items.
func (r *InvoiceRepo) List() ([]*entity.Invoice, error) {
	query := `SELECT` + invoiceColumns + `
		FROM invoices WHERE NOT deleted ORDER BY date DESC, invoice_id DESC`
	return r.list(query)
}

// ListByCustomer returns the customer's non-deleted invoices with line items.
func (r *InvoiceRepo) ListByCustomer(customerID string) ([]*entity.Invoice, error) {
	query := `SELECT` + invoiceColumns + `
		FROM invoices WHERE customer_id = $1 AND NOT deleted ORDER BY date DESC, invoice_id DESC`
	return r.list(query, customerID)
}

// Update rewrites the header and replaces the line item set.
func (r *InvoiceRepo) Update(invoice *entity.Invoice) error {
	query := `
		UPDATE invoices SET
			reference_name = $2, consignee_name = $3, consignee_phone = $4, consignee_address = $5,
			remarks = $6, status = $7, transport_charges = $8, unloading_charges = $9,
			gst_percent = $10, gst_amount = $11, subtotal = $12, grand_total = $13,
			amount_paid = $14, pending_balance = $15, updated_at = $16
		WHERE id = $1 AND NOT deleted`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, nullIfEmpty(invoice.ReferenceName), nullIfEmpty(invoice.ConsigneeName),
		nullIfEmpty(invoice.ConsigneePhone), nullIfEmpty(invoice.ConsigneeAddress), nullIfEmpty(invoice.Remarks),
		invoice.Status, invoice.TransportCharges, invoice.UnloadingCharges,
		invoice.GSTPercent, invoice.GSTAmount, invoice.Subtotal, invoice.GrandTotal,
		invoice.AmountPaid, invoice.PendingBalance, invoice.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM invoice_line_items WHERE invoice_id = $1`, invoice.ID); err != nil {
		return fmt.Errorf("clear line items: %w", err)
	}
	return r.insertLineItems(invoice)
}

// SoftDelete marks an invoice as deleted. Its display ID stays reserved so
// sequence numbers are never reissued.
func (r *InvoiceRepo) SoftDelete(invoiceID string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE invoices SET deleted = TRUE WHERE invoice_id = $1`, invoiceID)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}

// LastSequenceForFY extracts the highest issued sequence for the financial
// year from IDs shaped "<prefix> / NNN / <fy>". Deleted invoices count.
func (r *InvoiceRepo) LastSequenceForFY(prefix, fy string) (int, error) {
	query := `
		SELECT COALESCE(MAX(CAST(split_part(invoice_id, ' / ', 2) AS INT)), 0)
		FROM invoices WHERE invoice_id LIKE $1`
	var seq int
	pattern := prefix + " / % / " + fy
	if err := r.q.QueryRow(context.Background(), query, pattern).Scan(&seq); err != nil {
		return 0, fmt.Errorf("last invoice sequence: %w", err)
	}
	return seq, nil
}

func (r *InvoiceRepo) list(query string, args ...any) ([]*entity.Invoice, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, inv := range list {
		if inv.LineItems, err = r.loadLineItems(inv.ID); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *InvoiceRepo) insertLineItems(invoice *entity.Invoice) error {
	query := `
		INSERT INTO invoice_line_items (
			id, invoice_id, position, location, tile_name, tile_image, size,
			box_qty, extra_sqft, rate_per_sqft, rate_per_box, discount_percent, coverage, box_packing,
			total_sqft, amount_before_discount, discount_amount, final_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	for i, li := range invoice.LineItems {
		_, err := r.q.Exec(context.Background(), query,
			li.ID, invoice.ID, i, nullIfEmpty(li.Location), li.TileName, nullIfEmpty(li.TileImage), li.Size,
			li.BoxQty, li.ExtraSqft, li.RatePerSqft, li.RatePerBox, li.DiscountPercent, li.Coverage, li.BoxPacking,
			li.TotalSqft, li.AmountBeforeDiscount, li.DiscountAmount, li.FinalAmount,
		)
		if err != nil {
			return fmt.Errorf("insert line item: %w", err)
		}
	}
	return nil
}

func (r *InvoiceRepo) loadLineItems(invoiceID string) ([]entity.LineItem, error) {
	query := `
		SELECT id, invoice_id, COALESCE(location, ''), tile_name, COALESCE(tile_image, ''), size,
			box_qty, extra_sqft, rate_per_sqft, rate_per_box, discount_percent, coverage, box_packing,
			total_sqft, amount_before_discount, discount_amount, final_amount
		FROM invoice_line_items WHERE invoice_id = $1 ORDER BY position`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list line items: %w", err)
	}
	defer rows.Close()
	var items []entity.LineItem
	for rows.Next() {
		var li entity.LineItem
		if err := rows.Scan(
			&li.ID, &li.InvoiceID, &li.Location, &li.TileName, &li.TileImage, &li.Size,
			&li.BoxQty, &li.ExtraSqft, &li.RatePerSqft, &li.RatePerBox, &li.DiscountPercent, &li.Coverage, &li.BoxPacking,
			&li.TotalSqft, &li.AmountBeforeDiscount, &li.DiscountAmount, &li.FinalAmount,
		); err != nil {
			return nil, fmt.Errorf("scan line item: %w", err)
		}
		items = append(items, li)
	}
	return items, rows.Err()
}

// pgxScanner abstracts pgx.Row and pgx.Rows so scanInvoice serves both.
type pgxScanner interface {
	Scan(dest ...any) error
}

func scanInvoice(row pgxScanner) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := row.Scan(
		&inv.ID, &inv.InvoiceID, &inv.Date, &inv.CustomerID,
		&inv.CustomerName, &inv.CustomerPhone, &inv.CustomerAddress, &inv.CustomerGSTIN,
		&inv.ReferenceName, &inv.ConsigneeName, &inv.ConsigneePhone, &inv.ConsigneeAddress,
		&inv.Remarks, &inv.Status, &inv.TransportCharges, &inv.UnloadingCharges,
		&inv.GSTPercent, &inv.GSTAmount, &inv.Subtotal, &inv.GrandTotal,
		&inv.AmountPaid, &inv.PendingBalance, &inv.Deleted, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &inv, nil
}
