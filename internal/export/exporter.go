// Package export renders schedules into the supported output formats.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrtrc/schedule-dnd/internal/config"
	"github.com/dmitrtrc/schedule-dnd/internal/models"
)

// Exporter renders a schedule into one output format. Export returns the
// path of the written file; an empty path selects the default filename in
// the configured output directory.
type Exporter interface {
	Export(schedule models.Schedule, path string) (string, error)
	Extension() string
	FormatName() string
}

// DefaultFilename returns "schedule_<year>_<month>.<ext>" for an exporter.
func DefaultFilename(e Exporter, schedule models.Schedule) string {
	return fmt.Sprintf("schedule_%d_%02d.%s",
		schedule.Metadata.Year, schedule.Metadata.Month.Number(), e.Extension())
}

// resolvePath validates the schedule, picks the output path and makes sure
// its directory exists. Every exporter starts with this.
func resolvePath(e Exporter, cfg *config.Config, schedule models.Schedule, path string) (string, error) {
	if len(schedule.Units) == 0 {
		return "", fmt.Errorf("%w: cannot export a schedule with no units", models.ErrValidation)
	}
	if path == "" {
		path = filepath.Join(cfg.OutputDir, DefaultFilename(e, schedule))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", &models.ExportFailedError{Format: e.FormatName(),
			Reason: "failed to create output directory: " + err.Error(), Err: err}
	}
	return path, nil
}

// dutySlug maps a duty type to the latin identifier used in HTML class
// names.
func dutySlug(dt models.DutyType) string {
	switch dt {
	case models.DutyPDN:
		return "pdn"
	case models.DutyPPSP:
		return "ppsp"
	case models.DutyUUP:
		return "uup"
	default:
		return "other"
	}
}
