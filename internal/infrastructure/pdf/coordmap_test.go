package pdf

import (
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadShippedMap(t *testing.T, name string) *CoordinateMap {
	t.Helper()
	raw, err := os.ReadFile("../../../assets/pdf/" + name)
	require.NoError(t, err)
	m, err := LoadCoordinateMap(raw)
	require.NoError(t, err)
	return m
}

func TestLoadShippedCoordinateMaps(t *testing.T) {
	page1 := loadShippedMap(t, "template_map.page1.json")
	cont := loadShippedMap(t, "template_map.cont.json")

	require.NotNil(t, page1.Header)
	require.NotNil(t, page1.Buyer)
	require.NotNil(t, page1.Consignee)
	require.NotNil(t, page1.Footer)
	assert.NotNil(t, page1.Buyer.GSTIN)
	assert.Nil(t, page1.Consignee.GSTIN, "printed consignee block has no GSTIN line")

	// Continuation pages have no header or footer and a taller table area.
	assert.Nil(t, cont.Header)
	assert.Nil(t, cont.Footer)
	assert.Greater(t, cont.Table.StartY, page1.Table.StartY)
	assert.Less(t, cont.Page.SafeBottomY, page1.Page.SafeBottomY)

	assert.Equal(t, page1.Page.Width, cont.Page.Width)
	assert.Equal(t, page1.Page.Height, cont.Page.Height)

	// The reserved footer area sits below the first page's safe bottom.
	assert.Less(t, page1.Footer.TopY(), page1.Page.SafeBottomY)
}

func TestLoadCoordinateMapRejectsBadGeometry(t *testing.T) {
	base := `{
		"page": {"width": %s, "height": 842, "safe_bottom_y": %s},
		"table": {
			"start_y": %s, "row_h": %s, "row_h_with_image": %s,
			"cols": {
				"sr": {"x": 0, "w": 20}, "name": {"x": 20, "w": 100}, "image": {"x": 120, "w": 40},
				"size": {"x": 160, "w": 60}, "rate_box": {"x": 220, "w": 60}, "rate_sqft": {"x": 280, "w": 60},
				"qty": {"x": 340, "w": 50}, "disc": {"x": 390, "w": 40}, "amount": {"x": 430, "w": %s}
			}
		}
	}`
	build := func(width, safeBottom, startY, rowH, rowHImg, amountW string) string {
		return fmt.Sprintf(base, width, safeBottom, startY, rowH, rowHImg, amountW)
	}

	cases := []struct {
		name string
		json string
	}{
		{"zero page width", build("0", "60", "700", "16", "34", "80")},
		{"zero row height", build("595", "60", "700", "0", "34", "80")},
		{"image row shorter than row", build("595", "60", "700", "16", "10", "80")},
		{"table starts below safe bottom", build("595", "700", "60", "16", "34", "80")},
		{"column past page edge", build("595", "60", "700", "16", "34", "500")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadCoordinateMap([]byte(tc.json))
			assert.Error(t, err)
		})
	}
}

func TestLoadCoordinateMapRejectsBadJSON(t *testing.T) {
	_, err := LoadCoordinateMap([]byte("{not json"))
	assert.Error(t, err)
}
