package pdf

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "₹0"},
		{"950", "₹950"},
		{"1000", "₹1,000"},
		{"123450", "₹123,450"},
		{"1234567", "₹1,234,567"},
		{"999.5", "₹1,000"},
		{"999.4", "₹999"},
	}
	for _, tc := range cases {
		got := FormatCurrency("₹", decimal.RequireFromString(tc.in))
		assert.Equal(t, tc.want, got)
	}
}

func TestFormatCurrencyFallbackGlyph(t *testing.T) {
	assert.Equal(t, "Rs.7,980", FormatCurrency("Rs.", decimal.RequireFromString("7980")))
}
