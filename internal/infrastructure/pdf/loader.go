package pdf

import (
	"fmt"
	"os"

	"github.com/tilekart/tilebill/internal/application/billing"
	"github.com/tilekart/tilebill/pkg/config"
	"github.com/tilekart/tilebill/pkg/logger"
)

// NewGeneratorFromConfig loads template assets from disk and builds the
// generator the configuration asks for.
func NewGeneratorFromConfig(cfg config.PDFConfig, log *logger.Logger) (billing.InvoicePDFGenerator, error) {
	if cfg.Engine == "simple" {
		return NewSimplePDFGenerator(cfg.CurrencyGlyph), nil
	}

	page1, err := os.ReadFile(cfg.TemplatePath)
	if err != nil {
		return nil, fmt.Errorf("pdf assets: read template: %w", err)
	}
	var cont []byte
	if cfg.ContTemplatePath != "" {
		if cont, err = os.ReadFile(cfg.ContTemplatePath); err != nil {
			return nil, fmt.Errorf("pdf assets: read continuation template: %w", err)
		}
	}

	mapRaw, err := os.ReadFile(cfg.MapPage1Path)
	if err != nil {
		return nil, fmt.Errorf("pdf assets: read page-1 map: %w", err)
	}
	mapPage1, err := LoadCoordinateMap(mapRaw)
	if err != nil {
		return nil, fmt.Errorf("pdf assets: page-1 map: %w", err)
	}
	var mapCont *CoordinateMap
	if cfg.MapContPath != "" {
		raw, err := os.ReadFile(cfg.MapContPath)
		if err != nil {
			return nil, fmt.Errorf("pdf assets: read continuation map: %w", err)
		}
		if mapCont, err = LoadCoordinateMap(raw); err != nil {
			return nil, fmt.Errorf("pdf assets: continuation map: %w", err)
		}
	}

	var fontRegular, fontBold []byte
	if cfg.FontRegularPath != "" {
		if fontRegular, err = os.ReadFile(cfg.FontRegularPath); err != nil {
			return nil, fmt.Errorf("pdf assets: read font: %w", err)
		}
	}
	if cfg.FontBoldPath != "" {
		if fontBold, err = os.ReadFile(cfg.FontBoldPath); err != nil {
			return nil, fmt.Errorf("pdf assets: read bold font: %w", err)
		}
	}

	return NewTemplateOverlayGenerator(GeneratorConfig{
		Page1Template: page1,
		ContTemplate:  cont,
		MapPage1:      mapPage1,
		MapCont:       mapCont,
		FontRegular:   fontRegular,
		FontBold:      fontBold,
		CurrencyGlyph: cfg.CurrencyGlyph,
		Logger:        log.Zerolog(),
	})
}
