package billing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/tilekart/tilebill/internal/domain/entity"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestBidirectionalRate(t *testing.T) {
	t.Run("box from sqft", func(t *testing.T) {
		sqft, box := BidirectionalRate(d("16"), d("50"), decimal.Zero)
		assert.True(t, sqft.Equal(d("50")))
		assert.True(t, box.Equal(d("800")))
	})

	t.Run("sqft from box", func(t *testing.T) {
		sqft, box := BidirectionalRate(d("16"), decimal.Zero, d("800"))
		assert.True(t, sqft.Equal(d("50")))
		assert.True(t, box.Equal(d("800")))
	})

	t.Run("sqft from box rounds to 4 places", func(t *testing.T) {
		sqft, _ := BidirectionalRate(d("15.5"), decimal.Zero, d("700"))
		assert.True(t, sqft.Equal(d("45.1613")), "got %s", sqft)
	})

	t.Run("both given stay untouched", func(t *testing.T) {
		sqft, box := BidirectionalRate(d("16"), d("45"), d("900"))
		assert.True(t, sqft.Equal(d("45")))
		assert.True(t, box.Equal(d("900")))
	})

	t.Run("zero coverage passes through", func(t *testing.T) {
		sqft, box := BidirectionalRate(decimal.Zero, d("50"), decimal.Zero)
		assert.True(t, sqft.Equal(d("50")))
		assert.True(t, box.IsZero())
	})
}

func TestCalculateLineItem(t *testing.T) {
	item := entity.LineItem{
		BoxQty:          10,
		ExtraSqft:       d("8"),
		RatePerSqft:     d("50"),
		DiscountPercent: d("5"),
		Coverage:        d("16"),
	}
	CalculateLineItem(&item)

	assert.True(t, item.RatePerBox.Equal(d("800")))
	assert.True(t, item.TotalSqft.Equal(d("168")))
	assert.True(t, item.AmountBeforeDiscount.Equal(d("8400")))
	assert.True(t, item.DiscountAmount.Equal(d("420")))
	assert.True(t, item.FinalAmount.Equal(d("7980")))
}

func TestCalculateLineItemNoDiscount(t *testing.T) {
	item := entity.LineItem{
		BoxQty:     4,
		RatePerBox: d("640"),
		Coverage:   d("16"),
	}
	CalculateLineItem(&item)

	assert.True(t, item.RatePerSqft.Equal(d("40")))
	assert.True(t, item.TotalSqft.Equal(d("64")))
	assert.True(t, item.FinalAmount.Equal(d("2560")))
}

func TestCalculateTotals(t *testing.T) {
	inv := entity.Invoice{
		LineItems: []entity.LineItem{
			{FinalAmount: d("7980")},
			{FinalAmount: d("2020")},
		},
		TransportCharges: d("500"),
		UnloadingCharges: d("200"),
		GSTPercent:       d("18"),
		AmountPaid:       d("5000"),
	}
	CalculateTotals(&inv)

	assert.True(t, inv.Subtotal.Equal(d("10000")))
	assert.True(t, inv.GSTAmount.Equal(d("1800")))
	assert.True(t, inv.GrandTotal.Equal(d("12500")))
	assert.True(t, inv.PendingBalance.Equal(d("7500")))
}

func TestCalculateTotalsZeroGST(t *testing.T) {
	inv := entity.Invoice{
		LineItems: []entity.LineItem{{FinalAmount: d("1000")}},
	}
	CalculateTotals(&inv)

	assert.True(t, inv.GSTAmount.IsZero())
	assert.True(t, inv.GrandTotal.Equal(d("1000")))
	assert.True(t, inv.PendingBalance.Equal(d("1000")))
}

func TestFinancialYear(t *testing.T) {
	cases := []struct {
		date time.Time
		want string
	}{
		{time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC), "2025-26"},
		{time.Date(2025, time.July, 15, 0, 0, 0, 0, time.UTC), "2025-26"},
		{time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC), "2025-26"},
		{time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC), "2025-26"},
		{time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC), "2026-27"},
		{time.Date(1999, time.June, 1, 0, 0, 0, 0, time.UTC), "1999-00"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FinancialYear(tc.date), "date %s", tc.date)
	}
}

func TestFormatInvoiceID(t *testing.T) {
	assert.Equal(t, "TTS / 007 / 2025-26", FormatInvoiceID("TTS", 7, "2025-26"))
	assert.Equal(t, "TTS / 123 / 2025-26", FormatInvoiceID("TTS", 123, "2025-26"))
	assert.Equal(t, "TTS / 1000 / 2025-26", FormatInvoiceID("TTS", 1000, "2025-26"))
}
