package pdf

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tilekart/tilebill/internal/application/billing"
)

func TestSimplePDFGenerator(t *testing.T) {
	gen := NewSimplePDFGenerator("")

	doc := renderDoc(section("KITCHEN", 3), section("MAIN FLOOR", 2))
	doc.Consignee = &billing.Party{Name: "Site Office", Phone: "9000000000", Address: "Plot 7, Wakad"}

	out, err := gen.GenerateInvoicePDF(context.Background(), doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	assert.NotEmpty(t, out)
}

func TestSimplePDFGeneratorLongInvoice(t *testing.T) {
	gen := NewSimplePDFGenerator("Rs.")

	out, err := gen.GenerateInvoicePDF(context.Background(), renderDoc(section("MAIN FLOOR", 60)))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
