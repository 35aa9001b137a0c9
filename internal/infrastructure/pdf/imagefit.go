package pdf

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"hash/crc32"
	"image/jpeg"
	"image/png"
	"strings"

	"codeberg.org/go-pdf/fpdf"
)

// DrawImage decodes a base64 image payload (with or without a data-URI
// prefix) and draws it centered in box, scaled uniformly to fit. A payload
// that cannot be decoded is logged and skipped; it never fails the document.
func (o *Overlay) DrawImage(payload string, box Box, pad float64) {
	if payload == "" {
		return
	}
	data, format, w, h, err := decodeImagePayload(payload)
	if err != nil {
		o.log.Warn().Err(err).Msg("skipping unreadable line item image")
		return
	}

	avail := box.Inset(pad)
	if avail.W <= 0 || avail.H <= 0 {
		return
	}
	scale := avail.W / w
	if s := avail.H / h; s < scale {
		scale = s
	}
	if scale > 1 {
		scale = 1
	}
	sw, sh := w*scale, h*scale

	name := fmt.Sprintf("item-%08x", crc32.ChecksumIEEE(data))
	opts := fpdf.ImageOptions{ImageType: format}
	o.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	if o.pdf.Err() {
		// A payload that passed DecodeConfig can still be rejected by the
		// writer; clear the sticky error so the rest of the page renders.
		o.log.Warn().Str("error", o.pdf.Error().Error()).Msg("skipping unreadable line item image")
		o.pdf.ClearError()
		return
	}

	x := box.X + (box.W-sw)/2
	top := box.Y + (box.H+sh)/2
	o.pdf.ImageOptions(name, x, o.pageH-top, sw, sh, false, opts, 0, "")
	if o.pdf.Err() {
		o.log.Warn().Str("error", o.pdf.Error().Error()).Msg("skipping unreadable line item image")
		o.pdf.ClearError()
	}
}

// decodeImagePayload strips an optional "data:image/...;base64," prefix,
// decodes the payload and sniffs JPEG then PNG headers. Returns the raw
// bytes, the writer's image type tag and the pixel dimensions.
func decodeImagePayload(payload string) ([]byte, string, float64, float64, error) {
	raw := payload
	if strings.HasPrefix(raw, "data:") {
		if i := strings.Index(raw, ","); i >= 0 {
			raw = raw[i+1:]
		}
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(raw))
	if err != nil {
		return nil, "", 0, 0, fmt.Errorf("image payload: %w", err)
	}
	if cfg, err := jpeg.DecodeConfig(bytes.NewReader(data)); err == nil {
		return data, "JPG", float64(cfg.Width), float64(cfg.Height), nil
	}
	if cfg, err := png.DecodeConfig(bytes.NewReader(data)); err == nil {
		return data, "PNG", float64(cfg.Width), float64(cfg.Height), nil
	}
	return nil, "", 0, 0, fmt.Errorf("image payload: not a JPEG or PNG")
}
