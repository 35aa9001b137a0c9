package pdf

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngPayload(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 120, B: 60, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func jpegPayload(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestDecodeImagePayload(t *testing.T) {
	t.Run("png", func(t *testing.T) {
		_, format, w, h, err := decodeImagePayload(pngPayload(t, 12, 8))
		require.NoError(t, err)
		assert.Equal(t, "PNG", format)
		assert.Equal(t, 12.0, w)
		assert.Equal(t, 8.0, h)
	})

	t.Run("jpeg", func(t *testing.T) {
		_, format, w, h, err := decodeImagePayload(jpegPayload(t, 6, 4))
		require.NoError(t, err)
		assert.Equal(t, "JPG", format)
		assert.Equal(t, 6.0, w)
		assert.Equal(t, 4.0, h)
	})

	t.Run("data URI prefix is stripped", func(t *testing.T) {
		payload := "data:image/png;base64," + pngPayload(t, 4, 4)
		_, format, _, _, err := decodeImagePayload(payload)
		require.NoError(t, err)
		assert.Equal(t, "PNG", format)
	})

	t.Run("invalid base64", func(t *testing.T) {
		_, _, _, _, err := decodeImagePayload("!!! not base64 !!!")
		assert.Error(t, err)
	})

	t.Run("valid base64 but not an image", func(t *testing.T) {
		payload := base64.StdEncoding.EncodeToString([]byte("plain text"))
		_, _, _, _, err := decodeImagePayload(payload)
		assert.Error(t, err)
	})
}

func TestDrawImageNeverPoisonsTheDocument(t *testing.T) {
	ov := newOverlay(GeneratorConfig{}, 595.28, 841.89)
	ov.pdf.AddPage()
	box := Box{X: 100, Y: 400, W: 40, H: 40}

	ov.DrawImage("garbage-payload", box, 2)
	assert.True(t, ov.pdf.Ok(), "a bad payload must leave the writer usable")

	ov.DrawImage(pngPayload(t, 20, 20), box, 2)
	assert.True(t, ov.pdf.Ok())

	out, err := ov.Output()
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestDrawImageEmptyPayloadIsNoop(t *testing.T) {
	ov := newOverlay(GeneratorConfig{}, 595.28, 841.89)
	ov.pdf.AddPage()
	ov.DrawImage("", Box{X: 0, Y: 0, W: 40, H: 40}, 2)
	assert.True(t, ov.pdf.Ok())
}
