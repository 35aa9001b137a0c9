package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tilekart/tilebill/internal/application/billing"
	"github.com/tilekart/tilebill/internal/application/usecase"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	TileUC     *usecase.TileUseCase
	CustomerUC *usecase.CustomerUseCase
	InvoiceUC  *billing.InvoiceUseCase
	PDFUC      *billing.PDFUseCase
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")
	api.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"service": "tilebill", "status": "running"})
	})

	// Tile catalog
	tiles := api.Group("/tiles")
	tileHandler := NewTileHandler(deps.TileUC)
	tiles.Post("/", tileHandler.Create)
	tiles.Get("/", tileHandler.List)
	tiles.Get("/by-size/:size", tileHandler.GetBySize)
	tiles.Get("/:id", tileHandler.GetByID)
	tiles.Put("/:id", tileHandler.Update)
	tiles.Delete("/:id", tileHandler.Delete)

	// Customers
	customers := api.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	// Invoices. Display IDs contain slashes, so single-invoice routes use
	// wildcards; the PDF routes must be registered before the catch-all.
	invoices := api.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.PDFUC)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/pdf/*", invoiceHandler.DownloadPDF)
	invoices.Get("/*", invoiceHandler.GetByID)
	invoices.Put("/*", invoiceHandler.Update)
	invoices.Delete("/*", invoiceHandler.Delete)

	// Share links, no auth: the PDF is served inline.
	api.Get("/public/invoices/pdf/*", invoiceHandler.PublicPDF)
}
