package billing

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tilekart/tilebill/internal/application/dto"
	"github.com/tilekart/tilebill/internal/domain"
	"github.com/tilekart/tilebill/internal/domain/entity"
	"github.com/tilekart/tilebill/internal/domain/repository"
)

// ── In-memory fakes ───────────────────────────────────────────────────────────

type fakeTileRepo struct {
	bySize map[string]*entity.Tile
}

func (r *fakeTileRepo) Create(*entity.Tile) error            { return nil }
func (r *fakeTileRepo) GetByID(string) (*entity.Tile, error) { return nil, nil }
func (r *fakeTileRepo) GetBySize(size string) (*entity.Tile, error) {
	return r.bySize[size], nil
}
func (r *fakeTileRepo) List() ([]*entity.Tile, error) { return nil, nil }
func (r *fakeTileRepo) Update(*entity.Tile) error     { return nil }
func (r *fakeTileRepo) SoftDelete(string) error       { return nil }

type fakeCustomerRepo struct {
	customers map[string]*entity.Customer
	pending   map[string]decimal.Decimal
}

func (r *fakeCustomerRepo) Create(c *entity.Customer) error { r.customers[c.ID] = c; return nil }
func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return r.customers[id], nil
}
func (r *fakeCustomerRepo) List() ([]*entity.Customer, error) { return nil, nil }
func (r *fakeCustomerRepo) Update(*entity.Customer) error     { return nil }
func (r *fakeCustomerRepo) SoftDelete(string) error           { return nil }
func (r *fakeCustomerRepo) UpdateTotalPending(id string, total decimal.Decimal) error {
	r.pending[id] = total
	return nil
}

type fakeInvoiceRepo struct {
	invoices []*entity.Invoice
	lastSeq  int
}

func (r *fakeInvoiceRepo) Create(inv *entity.Invoice) error {
	r.invoices = append(r.invoices, inv)
	return nil
}
func (r *fakeInvoiceRepo) GetByInvoiceID(id string) (*entity.Invoice, error) {
	for _, inv := range r.invoices {
		if inv.InvoiceID == id && !inv.Deleted {
			return inv, nil
		}
	}
	return nil, nil
}
func (r *fakeInvoiceRepo) List() ([]*entity.Invoice, error) { return r.invoices, nil }
func (r *fakeInvoiceRepo) ListByCustomer(customerID string) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.invoices {
		if inv.CustomerID == customerID && !inv.Deleted {
			out = append(out, inv)
		}
	}
	return out, nil
}
func (r *fakeInvoiceRepo) Update(*entity.Invoice) error { return nil }
func (r *fakeInvoiceRepo) SoftDelete(invoiceID string) error {
	for _, inv := range r.invoices {
		if inv.InvoiceID == invoiceID {
			inv.Deleted = true
		}
	}
	return nil
}
func (r *fakeInvoiceRepo) LastSequenceForFY(string, string) (int, error) { return r.lastSeq, nil }

type fakeTxRunner struct {
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
}

func (r *fakeTxRunner) RunBilling(_ context.Context, fn func(
	repository.InvoiceRepository, repository.CustomerRepository) error) error {
	return fn(r.invoiceRepo, r.customerRepo)
}

func newTestUseCase(lastSeq int) (*InvoiceUseCase, *fakeInvoiceRepo, *fakeCustomerRepo) {
	tiles := &fakeTileRepo{bySize: map[string]*entity.Tile{
		"600x600mm": {ID: "t1", Size: "600x600mm", Coverage: 16, BoxPacking: 4},
	}}
	customers := &fakeCustomerRepo{
		customers: map[string]*entity.Customer{
			"c1": {ID: "c1", Name: "Sharma Constructions", Phone: "9876543210", Address: "14 MG Road, Pune"},
		},
		pending: map[string]decimal.Decimal{},
	}
	invoices := &fakeInvoiceRepo{lastSeq: lastSeq}
	tx := &fakeTxRunner{invoiceRepo: invoices, customerRepo: customers}

	uc := NewInvoiceUseCase(tx, tiles, customers, invoices, "TTS")
	uc.now = func() time.Time { return time.Date(2025, time.July, 15, 10, 0, 0, 0, time.UTC) }
	return uc, invoices, customers
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestCreateInvoiceAssignsFinancialYearID(t *testing.T) {
	uc, _, _ := newTestUseCase(6)

	resp, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{
		CustomerID: "c1",
		LineItems: []dto.LineItemRequest{
			{Location: "KITCHEN", TileName: "Glossy White", Size: "600x600mm", BoxQty: 10, RatePerSqft: d("50")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "TTS / 007 / 2025-26", resp.InvoiceID)
}

func TestCreateInvoiceAutoFillsCoverageFromCatalog(t *testing.T) {
	uc, repo, _ := newTestUseCase(0)

	_, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{
		CustomerID: "c1",
		LineItems: []dto.LineItemRequest{
			{TileName: "Glossy White", Size: "600x600mm", BoxQty: 10, RatePerSqft: d("50")},
		},
	})
	require.NoError(t, err)

	require.Len(t, repo.invoices, 1)
	li := repo.invoices[0].LineItems[0]
	assert.True(t, li.Coverage.Equal(d("16")))
	assert.Equal(t, 4, li.BoxPacking)
	assert.True(t, li.TotalSqft.Equal(d("160")))
	assert.True(t, li.FinalAmount.Equal(d("8000")))
}

func TestCreateInvoiceUpdatesCustomerPending(t *testing.T) {
	uc, _, customers := newTestUseCase(0)

	_, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{
		CustomerID: "c1",
		AmountPaid: d("3000"),
		LineItems: []dto.LineItemRequest{
			{Size: "600x600mm", BoxQty: 10, RatePerSqft: d("50")},
		},
	})
	require.NoError(t, err)
	assert.True(t, customers.pending["c1"].Equal(d("5000")), "got %s", customers.pending["c1"])
}

func TestCreateInvoiceValidation(t *testing.T) {
	uc, _, _ := newTestUseCase(0)

	_, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{CustomerID: "c1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(context.Background(), dto.CreateInvoiceRequest{
		CustomerID: "missing",
		LineItems:  []dto.LineItemRequest{{Size: "600x600mm", BoxQty: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdatePaidInvoiceRefused(t *testing.T) {
	uc, repo, _ := newTestUseCase(0)
	repo.invoices = append(repo.invoices, &entity.Invoice{
		ID: "inv-1", InvoiceID: "TTS / 001 / 2025-26", CustomerID: "c1", Status: entity.StatusPaid,
	})

	_, err := uc.Update(context.Background(), "TTS / 001 / 2025-26", dto.UpdateInvoiceRequest{})
	assert.ErrorIs(t, err, domain.ErrInvoicePaid)
}

func TestDeleteInvoiceRecalculatesPending(t *testing.T) {
	uc, _, customers := newTestUseCase(0)

	resp, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{
		CustomerID: "c1",
		LineItems:  []dto.LineItemRequest{{Size: "600x600mm", BoxQty: 10, RatePerSqft: d("50")}},
	})
	require.NoError(t, err)
	assert.True(t, customers.pending["c1"].Equal(d("8000")))

	require.NoError(t, uc.Delete(context.Background(), resp.InvoiceID))
	assert.True(t, customers.pending["c1"].IsZero(), "got %s", customers.pending["c1"])
}
