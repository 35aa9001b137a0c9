package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tilekart/tilebill/internal/domain/entity"
)

func testInvoice() *entity.Invoice {
	return &entity.Invoice{
		ID:              "inv-1",
		InvoiceID:       "TTS / 007 / 2025-26",
		Date:            time.Date(2025, time.July, 15, 0, 0, 0, 0, time.UTC),
		CustomerName:    "Sharma Constructions",
		CustomerPhone:   "9876543210",
		CustomerAddress: "14 MG Road, Pune",
		CustomerGSTIN:   "27ABCDE1234F1Z5",
		LineItems: []entity.LineItem{
			{Location: "KITCHEN", TileName: "Glossy White", Size: "600x600mm", BoxQty: 10, DiscountPercent: d("5"), FinalAmount: d("7980")},
			{Location: "MAIN FLOOR", TileName: "Marble Beige", Size: "800x800mm", BoxQty: 4, DiscountPercent: d("0"), FinalAmount: d("2560")},
			{Location: "KITCHEN", TileName: "Matt Grey", Size: "600x600mm", BoxQty: 2, DiscountPercent: d("10"), FinalAmount: d("1440")},
		},
		Subtotal:   d("11980"),
		GrandTotal: d("11980"),
	}
}

func TestBuildInvoiceDocumentGroupsByLocation(t *testing.T) {
	doc := BuildInvoiceDocument(testInvoice())

	require.Len(t, doc.Sections, 2)
	assert.Equal(t, "KITCHEN", doc.Sections[0].Name)
	assert.Equal(t, "MAIN FLOOR", doc.Sections[1].Name)

	// Items keep invoice order inside their section.
	require.Len(t, doc.Sections[0].Items, 2)
	assert.Equal(t, "Glossy White", doc.Sections[0].Items[0].Name)
	assert.Equal(t, "Matt Grey", doc.Sections[0].Items[1].Name)

	assert.True(t, doc.Sections[0].Total().Equal(d("9420")))
	assert.True(t, doc.Sections[1].Total().Equal(d("2560")))
}

func TestBuildInvoiceDocumentDisplayFields(t *testing.T) {
	doc := BuildInvoiceDocument(testInvoice())

	item := doc.Sections[0].Items[0]
	assert.Equal(t, "10 box", item.Qty)
	assert.Equal(t, "5%", item.Disc)
	assert.Empty(t, item.Amount, "display amount must be derived from the numeric value")
	assert.True(t, item.AmountNumeric.Equal(d("7980")))
}

func TestBuildInvoiceDocumentDefaultSection(t *testing.T) {
	inv := testInvoice()
	inv.LineItems = []entity.LineItem{{TileName: "Plain", FinalAmount: d("100")}}

	doc := BuildInvoiceDocument(inv)
	require.Len(t, doc.Sections, 1)
	assert.Equal(t, "Items", doc.Sections[0].Name)
}

func TestBuildInvoiceDocumentConsignee(t *testing.T) {
	t.Run("absent consignee leaves nil", func(t *testing.T) {
		doc := BuildInvoiceDocument(testInvoice())
		assert.Nil(t, doc.Consignee)
	})

	t.Run("partial consignee falls back per field", func(t *testing.T) {
		inv := testInvoice()
		inv.ConsigneeName = "Site Office"
		doc := BuildInvoiceDocument(inv)

		require.NotNil(t, doc.Consignee)
		assert.Equal(t, "Site Office", doc.Consignee.Name)
		assert.Equal(t, inv.CustomerPhone, doc.Consignee.Phone)
		assert.Equal(t, inv.CustomerAddress, doc.Consignee.Address)
	})
}

func TestSafeFilename(t *testing.T) {
	assert.Equal(t, "TTS-007-2025-26", SafeFilename("TTS / 007 / 2025-26"))
	assert.Equal(t, "TTS-007", SafeFilename("TTS/007"))
}
