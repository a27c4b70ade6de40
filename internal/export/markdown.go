package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/dmitrtrc/schedule-dnd/internal/config"
	"github.com/dmitrtrc/schedule-dnd/internal/constants"
	"github.com/dmitrtrc/schedule-dnd/internal/models"
)

// MarkdownExporter renders the schedule as a document with metadata,
// statistics and a shift table.
type MarkdownExporter struct {
	cfg *config.Config
}

func NewMarkdownExporter(cfg *config.Config) *MarkdownExporter {
	return &MarkdownExporter{cfg: cfg}
}

func (e *MarkdownExporter) Extension() string  { return "md" }
func (e *MarkdownExporter) FormatName() string { return "Markdown" }

func (e *MarkdownExporter) Export(schedule models.Schedule, path string) (string, error) {
	path, err := resolvePath(e, e.cfg, schedule, path)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, []byte(e.render(schedule)), 0o644); err != nil {
		return "", &models.ExportFailedError{Format: e.FormatName(),
			Reason: "failed to write Markdown file: " + err.Error(), Err: err}
	}
	return path, nil
}

func (e *MarkdownExporter) render(schedule models.Schedule) string {
	var b strings.Builder
	meta := schedule.Metadata
	monthName := meta.Month.DisplayName()

	fmt.Fprintf(&b, "# График дежурств ДНД - %s %d\n\n", monthName, meta.Year)

	if e.cfg.IncludeMetadata {
		b.WriteString("## Информация о документе\n\n")
		fmt.Fprintf(&b, "- **Месяц:** %s\n", monthName)
		fmt.Fprintf(&b, "- **Год:** %d\n", meta.Year)
		fmt.Fprintf(&b, "- **Создано:** %s\n", meta.CreatedAt.Format("02.01.2006 15:04"))
		if meta.Source != nil {
			fmt.Fprintf(&b, "- **Источник:** %s\n", *meta.Source)
		}
		if meta.Signatory != nil {
			fmt.Fprintf(&b, "- **Подписант:** %s\n", *meta.Signatory)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Статистика\n\n")
	fmt.Fprintf(&b, "- **Всего подразделений:** %d\n", len(schedule.Units))
	fmt.Fprintf(&b, "- **Всего дежурств:** %d\n\n", schedule.TotalShifts())
	b.WriteString("**По типам:**\n")
	byType := schedule.ShiftsByType()
	for _, dt := range models.DutyTypes() {
		if count, ok := byType[dt]; ok {
			fmt.Fprintf(&b, "- %s: %d\n", dt, count)
		}
	}
	b.WriteString("\n")

	b.WriteString("## График дежурств\n\n")
	fmt.Fprintf(&b, "| %s |\n", strings.Join(tableHeader, " | "))
	b.WriteString("|---------------|------|-------------|---------------|-------|------------|\n")
	for _, unit := range schedule.Units {
		for _, shift := range unit.Shifts {
			fmt.Fprintf(&b, "| %s |\n", strings.Join(shiftRow(unit, shift), " | "))
		}
	}
	b.WriteString("\n")

	if meta.Note != nil {
		b.WriteString("## Примечание\n\n")
		b.WriteString(*meta.Note)
		b.WriteString("\n\n")
	}

	b.WriteString("---\n\n")
	fmt.Fprintf(&b, "*Документ создан автоматически системой Schedule DND v%s*\n", constants.AppVersion)

	return b.String()
}
