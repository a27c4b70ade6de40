package export

import (
	"github.com/dmitrtrc/schedule-dnd/internal/config"
	"github.com/dmitrtrc/schedule-dnd/internal/models"
)

// New returns the exporter for a format.
func New(format models.ExportFormat, cfg *config.Config) (Exporter, error) {
	switch format {
	case models.FormatJSON:
		return NewJSONExporter(cfg), nil
	case models.FormatExcel:
		return NewExcelExporter(cfg), nil
	case models.FormatCSV:
		return NewCSVExporter(cfg), nil
	case models.FormatMarkdown:
		return NewMarkdownExporter(cfg), nil
	case models.FormatHTML:
		return NewHTMLExporter(cfg), nil
	default:
		supported := make([]string, 0, len(models.ExportFormats()))
		for _, f := range models.ExportFormats() {
			supported = append(supported, string(f))
		}
		return nil, &models.UnsupportedFormatError{Format: string(format), Supported: supported}
	}
}

// SupportedFormats lists every format New can dispatch.
func SupportedFormats() []models.ExportFormat {
	return models.ExportFormats()
}
