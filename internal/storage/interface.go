package storage

import (
	"time"

	"github.com/dmitrtrc/schedule-dnd/internal/models"
)

// ScheduleInfo is a cheap summary of a stored schedule, read without fully
// deserializing the nested entities.
type ScheduleInfo struct {
	Path        string
	Month       string
	Year        int
	CreatedAt   time.Time
	CreatedBy   string
	UnitCount   int
	TotalShifts int
}

// Repository is the persistence boundary between the domain model and the
// schedule store. Paths identify schedules; an empty path means the canonical
// location derived from the schedule's period.
type Repository interface {
	// Save persists the schedule, overwriting any existing document. When
	// backups are enabled an existing document is backed up first; a backup
	// failure is logged and does not abort the save. Returns the final path.
	Save(schedule models.Schedule, path string) (string, error)

	// Load reads and fully validates a stored schedule.
	Load(path string) (models.Schedule, error)

	// Exists reports whether path refers to a stored schedule.
	Exists(path string) bool

	// Delete removes a stored schedule.
	Delete(path string) error

	// ListSchedules returns stored schedule paths sorted by last-modified
	// time, most recent first. A missing directory yields an empty list.
	// An empty dir means the configured data directory.
	ListSchedules(dir string) ([]string, error)

	// Backup copies the schedule into the backups area with a timestamped
	// name and prunes old backups beyond the configured maximum.
	Backup(path string) (string, error)

	// ScheduleInfo extracts header fields and derived counts without
	// deserializing every entity.
	ScheduleInfo(path string) (ScheduleInfo, error)
}
