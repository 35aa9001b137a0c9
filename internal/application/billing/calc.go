package billing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tilekart/tilebill/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// BidirectionalRate derives the missing rate from the other given the tile
// coverage (sqft per box). With coverage <= 0 both rates pass through as-is.
func BidirectionalRate(coverage, rateSqft, rateBox decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	if coverage.Sign() <= 0 {
		return rateSqft, rateBox
	}
	if rateSqft.Sign() > 0 && rateBox.Sign() == 0 {
		rateBox = rateSqft.Mul(coverage)
	} else if rateBox.Sign() > 0 && rateSqft.Sign() == 0 {
		rateSqft = rateBox.DivRound(coverage, 4)
	}
	return rateSqft, rateBox
}

// CalculateLineItem fills the derived fields of a line item in place:
// bidirectional rates, total sqft, amounts before/after discount.
func CalculateLineItem(item *entity.LineItem) {
	item.RatePerSqft, item.RatePerBox = BidirectionalRate(item.Coverage, item.RatePerSqft, item.RatePerBox)

	boxQty := decimal.NewFromInt(int64(item.BoxQty))
	item.TotalSqft = boxQty.Mul(item.Coverage).Add(item.ExtraSqft)
	item.AmountBeforeDiscount = item.TotalSqft.Mul(item.RatePerSqft)
	item.DiscountAmount = item.AmountBeforeDiscount.Mul(item.DiscountPercent).Div(hundred)
	item.FinalAmount = item.AmountBeforeDiscount.Sub(item.DiscountAmount)
}

// CalculateTotals recomputes the invoice aggregates from its line items.
func CalculateTotals(inv *entity.Invoice) {
	subtotal := decimal.Zero
	for i := range inv.LineItems {
		subtotal = subtotal.Add(inv.LineItems[i].FinalAmount)
	}
	inv.Subtotal = subtotal

	if inv.GSTPercent.Sign() > 0 {
		inv.GSTAmount = subtotal.Mul(inv.GSTPercent).Div(hundred)
	} else {
		inv.GSTAmount = decimal.Zero
	}

	inv.GrandTotal = subtotal.
		Add(inv.TransportCharges).
		Add(inv.UnloadingCharges).
		Add(inv.GSTAmount)
	inv.PendingBalance = inv.GrandTotal.Sub(inv.AmountPaid)
	inv.UpdatedAt = time.Now().UTC()
}

// FinancialYear returns the Indian financial-year label (April to March) for
// t, e.g. 2025-07-15 -> "2025-26" and 2026-02-10 -> "2025-26".
func FinancialYear(t time.Time) string {
	start := t.Year()
	if t.Month() < time.April {
		start = t.Year() - 1
	}
	end := (start + 1) % 100
	return fmt.Sprintf("%d-%02d", start, end)
}

// FormatInvoiceID builds a display ID like "TTS / 007 / 2025-26".
func FormatInvoiceID(prefix string, seq int, fy string) string {
	return fmt.Sprintf("%s / %03d / %s", prefix, seq, fy)
}
