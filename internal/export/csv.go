package export

import (
	"encoding/csv"
	"os"

	"github.com/dmitrtrc/schedule-dnd/internal/config"
	"github.com/dmitrtrc/schedule-dnd/internal/models"
)

// tableHeader is shared by the tabular formats (CSV, Excel, Markdown, HTML).
var tableHeader = []string{
	"Подразделение",
	"Дата",
	"День недели",
	"Тип дежурства",
	"Время",
	"Примечания",
}

// shiftRow renders one shift as a table row in the shared column order.
func shiftRow(unit models.Unit, shift models.Shift) []string {
	return []string{
		unit.UnitName,
		shift.Date,
		shift.DayOfWeek(),
		string(shift.DutyType),
		shift.Time,
		shift.Notes,
	}
}

// CSVExporter writes one row per shift with a Russian header line.
type CSVExporter struct {
	cfg *config.Config
}

func NewCSVExporter(cfg *config.Config) *CSVExporter {
	return &CSVExporter{cfg: cfg}
}

func (e *CSVExporter) Extension() string  { return "csv" }
func (e *CSVExporter) FormatName() string { return "CSV" }

func (e *CSVExporter) Export(schedule models.Schedule, path string) (string, error) {
	path, err := resolvePath(e, e.cfg, schedule, path)
	if err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", &models.ExportFailedError{Format: e.FormatName(),
			Reason: "failed to create CSV file: " + err.Error(), Err: err}
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(tableHeader); err != nil {
		return "", &models.ExportFailedError{Format: e.FormatName(),
			Reason: "failed to write CSV header: " + err.Error(), Err: err}
	}
	for _, unit := range schedule.Units {
		for _, shift := range unit.Shifts {
			if err := w.Write(shiftRow(unit, shift)); err != nil {
				return "", &models.ExportFailedError{Format: e.FormatName(),
					Reason: "failed to write CSV row: " + err.Error(), Err: err}
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", &models.ExportFailedError{Format: e.FormatName(),
			Reason: "failed to flush CSV file: " + err.Error(), Err: err}
	}
	return path, nil
}
