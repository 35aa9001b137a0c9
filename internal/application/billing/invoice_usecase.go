package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tilekart/tilebill/internal/application/dto"
	"github.com/tilekart/tilebill/internal/domain"
	"github.com/tilekart/tilebill/internal/domain/entity"
	"github.com/tilekart/tilebill/internal/domain/repository"
)

// InvoiceUseCase creates, edits and deletes invoices. Every mutation
// recalculates the customer's pending balance inside the same transaction.
type InvoiceUseCase struct {
	tx           TxRunner
	tileRepo     repository.TileRepository
	customerRepo repository.CustomerRepository
	invoiceRepo  repository.InvoiceRepository
	prefix       string
	now          func() time.Time
}

// NewInvoiceUseCase builds the use case. prefix is the invoice ID prefix
// (e.g. "TTS").
func NewInvoiceUseCase(
	tx TxRunner,
	tileRepo repository.TileRepository,
	customerRepo repository.CustomerRepository,
	invoiceRepo repository.InvoiceRepository,
	prefix string,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		tx:           tx,
		tileRepo:     tileRepo,
		customerRepo: customerRepo,
		invoiceRepo:  invoiceRepo,
		prefix:       prefix,
		now:          time.Now,
	}
}

// Create calculates all line items and totals, assigns a financial-year
// invoice ID and persists the invoice.
func (uc *InvoiceUseCase) Create(ctx context.Context, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.CustomerID == "" || len(in.LineItems) == 0 {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	now := uc.now().UTC()
	inv := &entity.Invoice{
		ID:               uuid.New().String(),
		Date:             now,
		CustomerID:       customer.ID,
		CustomerName:     customer.Name,
		CustomerPhone:    customer.Phone,
		CustomerAddress:  customer.Address,
		CustomerGSTIN:    customer.GSTIN,
		ReferenceName:    in.ReferenceName,
		ConsigneeName:    in.ConsigneeName,
		ConsigneePhone:   in.ConsigneePhone,
		ConsigneeAddress: in.ConsigneeAddress,
		Remarks:          in.Remarks,
		Status:           in.Status,
		TransportCharges: in.TransportCharges,
		UnloadingCharges: in.UnloadingCharges,
		GSTPercent:       in.GSTPercent,
		AmountPaid:       in.AmountPaid,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if inv.Status == "" {
		inv.Status = entity.StatusDraft
	}
	inv.LineItems, err = uc.buildLineItems(inv.ID, in.LineItems)
	if err != nil {
		return nil, err
	}
	CalculateTotals(inv)

	err = uc.tx.RunBilling(ctx, func(invoiceRepo repository.InvoiceRepository, customerRepo repository.CustomerRepository) error {
		fy := FinancialYear(now)
		seq, err := invoiceRepo.LastSequenceForFY(uc.prefix, fy)
		if err != nil {
			return err
		}
		inv.InvoiceID = FormatInvoiceID(uc.prefix, seq+1, fy)
		if err := invoiceRepo.Create(inv); err != nil {
			return err
		}
		return recalcCustomerPending(invoiceRepo, customerRepo, inv.CustomerID)
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv), nil
}

// GetByID fetches a single invoice with its line items.
func (uc *InvoiceUseCase) GetByID(invoiceID string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByInvoiceID(invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return toInvoiceResponse(inv), nil
}

// List returns all non-deleted invoices.
func (uc *InvoiceUseCase) List() ([]*dto.InvoiceResponse, error) {
	list, err := uc.invoiceRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, toInvoiceResponse(inv))
	}
	return out, nil
}

// Update applies a partial edit and recalculates totals. Paid invoices refuse
// edits.
func (uc *InvoiceUseCase) Update(ctx context.Context, invoiceID string, in dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByInvoiceID(invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.Status == entity.StatusPaid {
		return nil, domain.ErrInvoicePaid
	}

	if in.LineItems != nil {
		inv.LineItems, err = uc.buildLineItems(inv.ID, in.LineItems)
		if err != nil {
			return nil, err
		}
	}
	if in.TransportCharges != nil {
		inv.TransportCharges = *in.TransportCharges
	}
	if in.UnloadingCharges != nil {
		inv.UnloadingCharges = *in.UnloadingCharges
	}
	if in.AmountPaid != nil {
		inv.AmountPaid = *in.AmountPaid
	}
	if in.Status != nil {
		inv.Status = *in.Status
	}
	if in.ReferenceName != nil {
		inv.ReferenceName = *in.ReferenceName
	}
	if in.ConsigneeName != nil {
		inv.ConsigneeName = *in.ConsigneeName
	}
	if in.ConsigneePhone != nil {
		inv.ConsigneePhone = *in.ConsigneePhone
	}
	if in.ConsigneeAddress != nil {
		inv.ConsigneeAddress = *in.ConsigneeAddress
	}
	if in.Remarks != nil {
		inv.Remarks = *in.Remarks
	}
	if in.GSTPercent != nil {
		inv.GSTPercent = *in.GSTPercent
	}
	CalculateTotals(inv)

	err = uc.tx.RunBilling(ctx, func(invoiceRepo repository.InvoiceRepository, customerRepo repository.CustomerRepository) error {
		if err := invoiceRepo.Update(inv); err != nil {
			return err
		}
		return recalcCustomerPending(invoiceRepo, customerRepo, inv.CustomerID)
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv), nil
}

// Delete soft-deletes an invoice and refreshes the customer's pending balance.
func (uc *InvoiceUseCase) Delete(ctx context.Context, invoiceID string) error {
	inv, err := uc.invoiceRepo.GetByInvoiceID(invoiceID)
	if err != nil {
		return err
	}
	if inv == nil {
		return domain.ErrNotFound
	}
	return uc.tx.RunBilling(ctx, func(invoiceRepo repository.InvoiceRepository, customerRepo repository.CustomerRepository) error {
		if err := invoiceRepo.SoftDelete(invoiceID); err != nil {
			return err
		}
		return recalcCustomerPending(invoiceRepo, customerRepo, inv.CustomerID)
	})
}

// buildLineItems maps request lines to entities, auto-filling coverage and box
// packing from the tile catalog when the caller left them empty, and runs the
// per-line calculation.
func (uc *InvoiceUseCase) buildLineItems(invoiceID string, in []dto.LineItemRequest) ([]entity.LineItem, error) {
	items := make([]entity.LineItem, 0, len(in))
	for _, li := range in {
		item := entity.LineItem{
			ID:              uuid.New().String(),
			InvoiceID:       invoiceID,
			Location:        li.Location,
			TileName:        li.TileName,
			TileImage:       li.TileImage,
			Size:            li.Size,
			BoxQty:          li.BoxQty,
			ExtraSqft:       li.ExtraSqft,
			RatePerSqft:     li.RatePerSqft,
			RatePerBox:      li.RatePerBox,
			DiscountPercent: li.DiscountPercent,
			Coverage:        li.Coverage,
			BoxPacking:      li.BoxPacking,
		}
		if item.Coverage.Sign() <= 0 && item.Size != "" {
			tile, err := uc.tileRepo.GetBySize(item.Size)
			if err != nil {
				return nil, err
			}
			if tile != nil {
				item.Coverage = decimal.NewFromFloat(tile.Coverage)
				item.BoxPacking = tile.BoxPacking
			}
		}
		CalculateLineItem(&item)
		items = append(items, item)
	}
	return items, nil
}

// recalcCustomerPending sums pending balances over the customer's non-deleted
// invoices and stores the result on the customer row.
func recalcCustomerPending(invoiceRepo repository.InvoiceRepository, customerRepo repository.CustomerRepository, customerID string) error {
	invoices, err := invoiceRepo.ListByCustomer(customerID)
	if err != nil {
		return err
	}
	total := decimal.Zero
	for _, inv := range invoices {
		total = total.Add(inv.PendingBalance)
	}
	return customerRepo.UpdateTotalPending(customerID, total)
}

func toInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	items := make([]dto.LineItemResponse, 0, len(inv.LineItems))
	for _, li := range inv.LineItems {
		items = append(items, dto.LineItemResponse{
			Location:             li.Location,
			TileName:             li.TileName,
			TileImage:            li.TileImage,
			Size:                 li.Size,
			BoxQty:               li.BoxQty,
			ExtraSqft:            li.ExtraSqft,
			RatePerSqft:          li.RatePerSqft,
			RatePerBox:           li.RatePerBox,
			DiscountPercent:      li.DiscountPercent,
			Coverage:             li.Coverage,
			BoxPacking:           li.BoxPacking,
			TotalSqft:            li.TotalSqft,
			AmountBeforeDiscount: li.AmountBeforeDiscount,
			DiscountAmount:       li.DiscountAmount,
			FinalAmount:          li.FinalAmount,
		})
	}
	return &dto.InvoiceResponse{
		InvoiceID:        inv.InvoiceID,
		Date:             inv.Date.Format(time.RFC3339),
		CustomerID:       inv.CustomerID,
		CustomerName:     inv.CustomerName,
		CustomerPhone:    inv.CustomerPhone,
		CustomerAddress:  inv.CustomerAddress,
		CustomerGSTIN:    inv.CustomerGSTIN,
		ReferenceName:    inv.ReferenceName,
		ConsigneeName:    inv.ConsigneeName,
		ConsigneePhone:   inv.ConsigneePhone,
		ConsigneeAddress: inv.ConsigneeAddress,
		Remarks:          inv.Remarks,
		Status:           inv.Status,
		LineItems:        items,
		TransportCharges: inv.TransportCharges,
		UnloadingCharges: inv.UnloadingCharges,
		GSTPercent:       inv.GSTPercent,
		GSTAmount:        inv.GSTAmount,
		Subtotal:         inv.Subtotal,
		GrandTotal:       inv.GrandTotal,
		AmountPaid:       inv.AmountPaid,
		PendingBalance:   inv.PendingBalance,
	}
}
