package billing

import (
	"context"
	"fmt"
	"strings"

	"github.com/tilekart/tilebill/internal/domain"
	"github.com/tilekart/tilebill/internal/domain/entity"
	"github.com/tilekart/tilebill/internal/domain/repository"
)

// PDFUseCase renders the printable PDF of an invoice.
type PDFUseCase struct {
	invoiceRepo repository.InvoiceRepository
	generator   InvoicePDFGenerator
}

// NewPDFUseCase builds the use case.
func NewPDFUseCase(invoiceRepo repository.InvoiceRepository, generator InvoicePDFGenerator) *PDFUseCase {
	return &PDFUseCase{invoiceRepo: invoiceRepo, generator: generator}
}

// DownloadInvoicePDF loads the invoice, assembles the render document and
// generates the PDF bytes plus a filesystem-safe filename.
//
// Returns domain.ErrNotFound when the invoice does not exist.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, invoiceID string) ([]byte, string, error) {
	inv, err := uc.invoiceRepo.GetByInvoiceID(invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: load invoice: %w", err)
	}
	if inv == nil {
		return nil, "", domain.ErrNotFound
	}

	doc := BuildInvoiceDocument(inv)
	pdfBytes, err := uc.generator.GenerateInvoicePDF(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: render %s: %w", invoiceID, err)
	}
	return pdfBytes, "Invoice_" + SafeFilename(invoiceID) + ".pdf", nil
}

// BuildInvoiceDocument maps a stored invoice onto the renderer's document
// model: line items are grouped by location into sections in first-appearance
// order, quantities and discounts are formatted for display, and the amount
// strings are left empty so the renderer derives them from the numeric values.
func BuildInvoiceDocument(inv *entity.Invoice) *InvoiceDocument {
	var sections []InvoiceSection
	index := map[string]int{}
	for _, li := range inv.LineItems {
		location := li.Location
		if location == "" {
			location = "Items"
		}
		item := InvoiceItem{
			Name:          li.TileName,
			Size:          li.Size,
			RateBox:       li.RatePerBox,
			RateSqft:      li.RatePerSqft,
			Qty:           fmt.Sprintf("%d box", li.BoxQty),
			Disc:          fmt.Sprintf("%d%%", li.DiscountPercent.Round(0).IntPart()),
			AmountNumeric: li.FinalAmount,
			Image:         li.TileImage,
		}
		i, ok := index[location]
		if !ok {
			i = len(sections)
			index[location] = i
			sections = append(sections, InvoiceSection{Name: location})
		}
		sections[i].Items = append(sections[i].Items, item)
	}

	doc := &InvoiceDocument{
		QuotationNo:   inv.InvoiceID,
		Date:          inv.Date,
		ReferenceName: inv.ReferenceName,
		Buyer: Party{
			Name:    inv.CustomerName,
			Phone:   inv.CustomerPhone,
			Address: inv.CustomerAddress,
			GSTIN:   inv.CustomerGSTIN,
		},
		Sections:   sections,
		Charges:    Charges{Transport: inv.TransportCharges, Unloading: inv.UnloadingCharges},
		Subtotal:   inv.Subtotal,
		GSTAmount:  inv.GSTAmount,
		GrandTotal: inv.GrandTotal,
		Remarks:    inv.Remarks,
	}

	if inv.ConsigneeName != "" || inv.ConsigneePhone != "" || inv.ConsigneeAddress != "" {
		consignee := Party{
			Name:    fallback(inv.ConsigneeName, inv.CustomerName),
			Phone:   fallback(inv.ConsigneePhone, inv.CustomerPhone),
			Address: fallback(inv.ConsigneeAddress, inv.CustomerAddress),
		}
		doc.Consignee = &consignee
	}
	return doc
}

// SafeFilename turns a display invoice ID like "TTS / 007 / 2025-26" into a
// name usable in Content-Disposition headers and on disk.
func SafeFilename(invoiceID string) string {
	s := strings.ReplaceAll(invoiceID, " / ", "-")
	return strings.ReplaceAll(s, "/", "-")
}

func fallback(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
