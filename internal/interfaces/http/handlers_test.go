package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilekart/tilebill/internal/application/billing"
	"github.com/tilekart/tilebill/internal/application/dto"
	"github.com/tilekart/tilebill/internal/application/usecase"
	"github.com/tilekart/tilebill/internal/domain/entity"
	"github.com/tilekart/tilebill/internal/domain/repository"
	apphttp "github.com/tilekart/tilebill/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// In-memory fakes
// ──────────────────────────────────────────────────────────────────────────────

type memTileRepo struct {
	tiles map[string]*entity.Tile
}

func (r *memTileRepo) Create(t *entity.Tile) error { r.tiles[t.ID] = t; return nil }
func (r *memTileRepo) GetByID(id string) (*entity.Tile, error) {
	t := r.tiles[id]
	if t == nil || t.Deleted {
		return nil, nil
	}
	return t, nil
}
func (r *memTileRepo) GetBySize(size string) (*entity.Tile, error) {
	for _, t := range r.tiles {
		if t.Size == size && !t.Deleted {
			return t, nil
		}
	}
	return nil, nil
}
func (r *memTileRepo) List() ([]*entity.Tile, error) {
	var out []*entity.Tile
	for _, t := range r.tiles {
		if !t.Deleted {
			out = append(out, t)
		}
	}
	return out, nil
}
func (r *memTileRepo) Update(*entity.Tile) error { return nil }
func (r *memTileRepo) SoftDelete(id string) error {
	if t := r.tiles[id]; t != nil {
		t.Deleted = true
	}
	return nil
}

type memCustomerRepo struct {
	customers map[string]*entity.Customer
}

func (r *memCustomerRepo) Create(c *entity.Customer) error { r.customers[c.ID] = c; return nil }
func (r *memCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	c := r.customers[id]
	if c == nil || c.Deleted {
		return nil, nil
	}
	return c, nil
}
func (r *memCustomerRepo) List() ([]*entity.Customer, error) { return nil, nil }
func (r *memCustomerRepo) Update(*entity.Customer) error     { return nil }
func (r *memCustomerRepo) SoftDelete(string) error           { return nil }

func (r *memCustomerRepo) UpdateTotalPending(string, decimal.Decimal) error { return nil }

type memInvoiceRepo struct {
	invoices []*entity.Invoice
}

func (r *memInvoiceRepo) Create(inv *entity.Invoice) error {
	r.invoices = append(r.invoices, inv)
	return nil
}
func (r *memInvoiceRepo) GetByInvoiceID(id string) (*entity.Invoice, error) {
	for _, inv := range r.invoices {
		if inv.InvoiceID == id && !inv.Deleted {
			return inv, nil
		}
	}
	return nil, nil
}
func (r *memInvoiceRepo) List() ([]*entity.Invoice, error) { return r.invoices, nil }
func (r *memInvoiceRepo) ListByCustomer(string) ([]*entity.Invoice, error) {
	return r.invoices, nil
}
func (r *memInvoiceRepo) Update(*entity.Invoice) error { return nil }
func (r *memInvoiceRepo) SoftDelete(id string) error {
	for _, inv := range r.invoices {
		if inv.InvoiceID == id {
			inv.Deleted = true
		}
	}
	return nil
}
func (r *memInvoiceRepo) LastSequenceForFY(string, string) (int, error) { return 0, nil }

type memTxRunner struct {
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
}

func (r *memTxRunner) RunBilling(_ context.Context, fn func(
	repository.InvoiceRepository, repository.CustomerRepository) error) error {
	return fn(r.invoiceRepo, r.customerRepo)
}

// stubGenerator returns fixed bytes so PDF routes can be tested without
// template assets.
type stubGenerator struct{}

func (stubGenerator) GenerateInvoicePDF(context.Context, *billing.InvoiceDocument) ([]byte, error) {
	return []byte("%PDF-1.4 stub"), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Test helpers
// ──────────────────────────────────────────────────────────────────────────────

func buildTestApp(t *testing.T) (*fiber.App, *memInvoiceRepo) {
	t.Helper()
	tiles := &memTileRepo{tiles: map[string]*entity.Tile{}}
	customers := &memCustomerRepo{customers: map[string]*entity.Customer{
		"c1": {ID: "c1", Name: "Sharma Constructions", Phone: "9876543210", Address: "14 MG Road, Pune"},
	}}
	invoices := &memInvoiceRepo{}
	tx := &memTxRunner{invoiceRepo: invoices, customerRepo: customers}

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		TileUC:     usecase.NewTileUseCase(tiles),
		CustomerUC: usecase.NewCustomerUseCase(customers),
		InvoiceUC:  billing.NewInvoiceUseCase(tx, tiles, customers, invoices, "TTS"),
		PDFUC:      billing.NewPDFUseCase(invoices, stubGenerator{}),
	})
	return app, invoices
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &out), "body: %s", raw)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestTileRoutes(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/tiles", dto.CreateTileRequest{
		Size: "600x600mm", Coverage: 16, BoxPacking: 4,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/tiles", dto.CreateTileRequest{Size: "600x600mm"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/tiles/by-size/600x600mm", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	bySize := decodeBody[dto.TileBySizeResponse](t, resp)
	assert.Equal(t, 16.0, bySize.Coverage)
	assert.Equal(t, 4, bySize.BoxPacking)

	resp = doJSON(t, app, http.MethodGet, "/api/tiles/by-size/900x900mm", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCustomerValidation(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/customers", dto.CreateCustomerRequest{Name: "No Phone"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errBody := decodeBody[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", errBody.Code)
}

func TestInvoiceLifecycleRoutes(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/invoices", dto.CreateInvoiceRequest{
		CustomerID: "c1",
		LineItems: []dto.LineItemRequest{
			{Location: "KITCHEN", TileName: "Glossy White", Size: "600x600mm", BoxQty: 10,
				Coverage: decimal.NewFromInt(16), RatePerSqft: decimal.NewFromInt(50)},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody[dto.InvoiceResponse](t, resp)
	assert.True(t, strings.HasPrefix(created.InvoiceID, "TTS / 001 / "), "got %q", created.InvoiceID)

	escaped := url.PathEscape(created.InvoiceID)
	resp = doJSON(t, app, http.MethodGet, "/api/invoices/"+escaped, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	fetched := decodeBody[dto.InvoiceResponse](t, resp)
	assert.Equal(t, created.InvoiceID, fetched.InvoiceID)

	resp = doJSON(t, app, http.MethodGet, "/api/invoices/"+url.PathEscape("TTS / 999 / 2025-26"), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestInvoicePDFDownload(t *testing.T) {
	app, invoices := buildTestApp(t)
	invoices.invoices = append(invoices.invoices, &entity.Invoice{
		ID: "inv-1", InvoiceID: "TTS / 007 / 2025-26", CustomerName: "Sharma Constructions",
	})

	escaped := url.PathEscape("TTS / 007 / 2025-26")
	resp := doJSON(t, app, http.MethodGet, "/api/invoices/pdf/"+escaped, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Invoice_TTS-007-2025-26.pdf"`,
		resp.Header.Get("Content-Disposition"))

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))

	// Same document inline on the public route.
	resp = doJSON(t, app, http.MethodGet, "/api/public/invoices/pdf/"+escaped, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "inline")
}

func TestUpdatePaidInvoiceForbidden(t *testing.T) {
	app, invoices := buildTestApp(t)
	invoices.invoices = append(invoices.invoices, &entity.Invoice{
		ID: "inv-1", InvoiceID: "TTS / 007 / 2025-26", Status: entity.StatusPaid,
	})

	resp := doJSON(t, app, http.MethodPut,
		"/api/invoices/"+url.PathEscape("TTS / 007 / 2025-26"), dto.UpdateInvoiceRequest{})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	errBody := decodeBody[dto.ErrorResponse](t, resp)
	assert.Equal(t, "INVOICE_PAID", errBody.Code)
}
