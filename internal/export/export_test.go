package export

import (
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/dmitrtrc/schedule-dnd/internal/config"
	"github.com/dmitrtrc/schedule-dnd/internal/constants"
	"github.com/dmitrtrc/schedule-dnd/internal/models"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		OutputDir:       t.TempDir(),
		IncludeMetadata: true,
		PrettyJSON:      true,
		ExcelAuthor:     "Schedule DND",
	}
}

func octoberSchedule(t *testing.T) models.Schedule {
	t.Helper()
	meta, err := models.NewScheduleMetadata(models.October, 2025, "test")
	if err != nil {
		t.Fatalf("NewScheduleMetadata: %v", err)
	}
	source := constants.DocumentSource
	signatory := constants.DocumentSignatory
	note := constants.DocumentNote
	meta.Source = &source
	meta.Signatory = &signatory
	meta.Note = &note

	s1, err := models.NewShift("07.10.2025", models.DutyPDN, "", "")
	if err != nil {
		t.Fatalf("NewShift: %v", err)
	}
	s2, err := models.NewShift("14.10.2025", models.DutyUUP, "19:00-23:00", "Особый режим")
	if err != nil {
		t.Fatalf("NewShift: %v", err)
	}

	u1, err := models.NewUnit(1, constants.Units[0], []models.Shift{s1, s2})
	if err != nil {
		t.Fatalf("NewUnit: %v", err)
	}
	schedule, err := models.NewSchedule(meta, []models.Unit{u1})
	if err != nil {
		t.Fatalf("NewSchedule: %v", err)
	}
	return schedule
}

func TestFactoryDispatch(t *testing.T) {
	cfg := testConfig(t)
	for _, format := range models.ExportFormats() {
		exporter, err := New(format, cfg)
		if err != nil {
			t.Errorf("New(%s): %v", format, err)
			continue
		}
		if exporter.Extension() != format.Extension() {
			t.Errorf("%s extension = %q, want %q", format, exporter.Extension(), format.Extension())
		}
	}

	_, err := New(models.ExportFormat("pdf"), cfg)
	var unsupported *models.UnsupportedFormatError
	if !errors.As(err, &unsupported) {
		t.Fatalf("New(pdf) = %v, want UnsupportedFormatError", err)
	}
	if len(unsupported.Supported) != 5 {
		t.Errorf("supported formats = %v, want 5 entries", unsupported.Supported)
	}
}

func TestDefaultFilename(t *testing.T) {
	cfg := testConfig(t)
	schedule := octoberSchedule(t)

	wants := map[models.ExportFormat]string{
		models.FormatJSON:     "schedule_2025_10.json",
		models.FormatExcel:    "schedule_2025_10.xlsx",
		models.FormatCSV:      "schedule_2025_10.csv",
		models.FormatMarkdown: "schedule_2025_10.md",
		models.FormatHTML:     "schedule_2025_10.html",
	}
	for format, want := range wants {
		exporter, err := New(format, cfg)
		if err != nil {
			t.Fatalf("New(%s): %v", format, err)
		}
		if got := DefaultFilename(exporter, schedule); got != want {
			t.Errorf("%s filename = %q, want %q", format, got, want)
		}
	}
}

func TestExportRejectsEmptySchedule(t *testing.T) {
	cfg := testConfig(t)
	meta, err := models.NewScheduleMetadata(models.October, 2025, "test")
	if err != nil {
		t.Fatal(err)
	}
	empty := models.Schedule{Metadata: meta}

	for _, format := range models.ExportFormats() {
		exporter, err := New(format, cfg)
		if err != nil {
			t.Fatalf("New(%s): %v", format, err)
		}
		if _, err := exporter.Export(empty, ""); !errors.Is(err, models.ErrValidation) {
			t.Errorf("%s export of empty schedule = %v, want ErrValidation", format, err)
		}
	}
}

func TestCSVExport(t *testing.T) {
	cfg := testConfig(t)
	schedule := octoberSchedule(t)

	path, err := NewCSVExporter(cfg).Export(schedule, "")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want header + 2 rows", len(records))
	}
	if got := strings.Join(records[0], ","); got != "Подразделение,Дата,День недели,Тип дежурства,Время,Примечания" {
		t.Errorf("header = %q", got)
	}

	row := records[1]
	if row[0] != constants.Units[0] {
		t.Errorf("unit = %q, want %q", row[0], constants.Units[0])
	}
	if row[1] != "07.10.2025" || row[2] != "Вторник" {
		t.Errorf("date/day = %q/%q, want 07.10.2025/Вторник", row[1], row[2])
	}
	if row[3] != "ПДН" || row[4] != constants.DefaultShiftTime {
		t.Errorf("type/time = %q/%q", row[3], row[4])
	}
}

func TestJSONExportRoundTrip(t *testing.T) {
	cfg := testConfig(t)
	schedule := octoberSchedule(t)

	path, err := NewJSONExporter(cfg).Export(schedule, "")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var loaded models.Schedule
	if err := loaded.UnmarshalJSON(data); err != nil {
		t.Fatalf("exported JSON does not round trip: %v", err)
	}
	if loaded.TotalShifts() != schedule.TotalShifts() {
		t.Errorf("TotalShifts = %d, want %d", loaded.TotalShifts(), schedule.TotalShifts())
	}
	if !strings.Contains(string(data), `"Октябрь"`) {
		t.Error("month should be stored as its Russian display name")
	}
}

func TestMarkdownExport(t *testing.T) {
	cfg := testConfig(t)
	schedule := octoberSchedule(t)

	path, err := NewMarkdownExporter(cfg).Export(schedule, "")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)

	for _, want := range []string{
		"# График дежурств ДНД - Октябрь 2025",
		"## Информация о документе",
		"## Статистика",
		"- **Всего дежурств:** 2",
		"| Подразделение | Дата | День недели | Тип дежурства | Время | Примечания |",
		"| " + constants.Units[0] + " | 07.10.2025 | Вторник | ПДН |",
		"## Примечание",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestMarkdownSkipsMetadataWhenDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.IncludeMetadata = false
	schedule := octoberSchedule(t)

	path, err := NewMarkdownExporter(cfg).Export(schedule, "")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "## Информация о документе") {
		t.Error("metadata section present with IncludeMetadata disabled")
	}
}

func TestHTMLExport(t *testing.T) {
	cfg := testConfig(t)
	schedule := octoberSchedule(t)

	path, err := NewHTMLExporter(cfg).Export(schedule, "")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)

	for _, want := range []string{
		`<html lang="ru">`,
		"<title>График дежурств ДНД - Октябрь 2025</title>",
		`badge badge-pdn`,
		`badge badge-uup`,
		"Вторник",
		constants.Units[0],
		"Информация о документе",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("html missing %q", want)
		}
	}
}

func TestExcelExport(t *testing.T) {
	cfg := testConfig(t)
	schedule := octoberSchedule(t)

	path, err := NewExcelExporter(cfg).Export(schedule, "")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer f.Close()

	title, err := f.GetCellValue(sheetName, "A1")
	if err != nil {
		t.Fatal(err)
	}
	if title != "График дежурств ДНД - Октябрь 2025" {
		t.Errorf("title = %q", title)
	}

	header, err := f.GetCellValue(sheetName, "A3")
	if err != nil {
		t.Fatal(err)
	}
	if header != "Подразделение" {
		t.Errorf("header A3 = %q", header)
	}

	date, err := f.GetCellValue(sheetName, "B4")
	if err != nil {
		t.Fatal(err)
	}
	if date != "07.10.2025" {
		t.Errorf("first data date = %q", date)
	}
}

func TestExportToExplicitPath(t *testing.T) {
	cfg := testConfig(t)
	schedule := octoberSchedule(t)
	target := filepath.Join(t.TempDir(), "nested", "out.csv")

	path, err := NewCSVExporter(cfg).Export(schedule, target)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if path != target {
		t.Errorf("path = %q, want %q", path, target)
	}
	if _, err := os.Stat(target); err != nil {
		t.Errorf("exported file missing: %v", err)
	}
}
