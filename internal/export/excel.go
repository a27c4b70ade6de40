package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/dmitrtrc/schedule-dnd/internal/config"
	"github.com/dmitrtrc/schedule-dnd/internal/models"
)

const sheetName = "График дежурств"

// ExcelExporter produces a styled XLSX workbook: merged title row, colored
// header, bordered data rows and an optional metadata block at the bottom.
type ExcelExporter struct {
	cfg *config.Config
}

func NewExcelExporter(cfg *config.Config) *ExcelExporter {
	return &ExcelExporter{cfg: cfg}
}

func (e *ExcelExporter) Extension() string  { return "xlsx" }
func (e *ExcelExporter) FormatName() string { return "Excel" }

func (e *ExcelExporter) Export(schedule models.Schedule, path string) (string, error) {
	path, err := resolvePath(e, e.cfg, schedule, path)
	if err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return "", e.fail("failed to rename sheet", err)
	}

	title := fmt.Sprintf("График дежурств ДНД - %s %d",
		schedule.Metadata.Month.DisplayName(), schedule.Metadata.Year)

	if err := e.writeTitle(f, title); err != nil {
		return "", err
	}
	if err := e.writeHeader(f); err != nil {
		return "", err
	}

	// Data rows start below the title, spacer and header rows.
	row := 4
	for _, unit := range schedule.Units {
		for _, shift := range unit.Shifts {
			cells := shiftRow(unit, shift)
			values := make([]interface{}, len(cells))
			for i, c := range cells {
				values[i] = c
			}
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return "", e.fail("failed to compute cell name", err)
			}
			if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
				return "", e.fail("failed to write data row", err)
			}
			row++
		}
	}

	if err := e.styleTable(f, row-1); err != nil {
		return "", err
	}

	if e.cfg.IncludeMetadata {
		if err := e.writeMetadata(f, schedule, row+1); err != nil {
			return "", err
		}
	}

	if err := f.SetDocProps(&excelize.DocProperties{
		Creator: e.cfg.ExcelAuthor,
		Title:   title,
	}); err != nil {
		return "", e.fail("failed to set document properties", err)
	}

	if err := f.SaveAs(path); err != nil {
		return "", e.fail("failed to save workbook", err)
	}
	return path, nil
}

func (e *ExcelExporter) writeTitle(f *excelize.File, title string) error {
	if err := f.SetCellValue(sheetName, "A1", title); err != nil {
		return e.fail("failed to write title", err)
	}
	style, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 14, Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return e.fail("failed to create title style", err)
	}
	if err := f.SetCellStyle(sheetName, "A1", "A1", style); err != nil {
		return e.fail("failed to style title", err)
	}
	if err := f.MergeCell(sheetName, "A1", "F1"); err != nil {
		return e.fail("failed to merge title cells", err)
	}
	return f.SetRowHeight(sheetName, 1, 25)
}

func (e *ExcelExporter) writeHeader(f *excelize.File) error {
	values := make([]interface{}, len(tableHeader))
	for i, h := range tableHeader {
		values[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A3", &values); err != nil {
		return e.fail("failed to write header row", err)
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: "FFFFFF", Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"366092"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return e.fail("failed to create header style", err)
	}
	return f.SetCellStyle(sheetName, "A3", "F3", style)
}

func (e *ExcelExporter) styleTable(f *excelize.File, lastRow int) error {
	widths := []float64{35, 12, 15, 15, 15, 50}
	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return e.fail("failed to compute column name", err)
		}
		if err := f.SetColWidth(sheetName, col, col, w); err != nil {
			return e.fail("failed to set column width", err)
		}
	}

	if lastRow < 4 {
		return nil
	}
	style, err := f.NewStyle(&excelize.Style{
		Border: thinBorders(),
		Alignment: &excelize.Alignment{
			Vertical: "center",
			WrapText: true,
		},
	})
	if err != nil {
		return e.fail("failed to create data style", err)
	}
	return f.SetCellStyle(sheetName, "A4", fmt.Sprintf("F%d", lastRow), style)
}

func (e *ExcelExporter) writeMetadata(f *excelize.File, schedule models.Schedule, startRow int) error {
	meta := schedule.Metadata
	row := startRow + 1

	set := func(values ...interface{}) error {
		cell := fmt.Sprintf("A%d", row)
		row++
		return f.SetSheetRow(sheetName, cell, &values)
	}

	source, signatory := "", ""
	if meta.Source != nil {
		source = *meta.Source
	}
	if meta.Signatory != nil {
		signatory = *meta.Signatory
	}
	if err := set("Источник:", source); err != nil {
		return e.fail("failed to write metadata", err)
	}
	if err := set("Подписант:", signatory); err != nil {
		return e.fail("failed to write metadata", err)
	}
	if meta.Note != nil {
		row++
		if err := set("Примечание:"); err != nil {
			return e.fail("failed to write metadata", err)
		}
		if err := set(*meta.Note); err != nil {
			return e.fail("failed to write metadata", err)
		}
	}
	return nil
}

func (e *ExcelExporter) fail(reason string, err error) error {
	return &models.ExportFailedError{Format: e.FormatName(),
		Reason: reason + ": " + err.Error(), Err: err}
}

func thinBorders() []excelize.Border {
	sides := []string{"left", "right", "top", "bottom"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{Type: side, Style: 1, Color: "000000"}
	}
	return borders
}
