package storage

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/dmitrtrc/schedule-dnd/internal/backup"
	"github.com/dmitrtrc/schedule-dnd/internal/config"
	"github.com/dmitrtrc/schedule-dnd/internal/models"
)

// JSONRepository stores each schedule as one JSON document in the data
// directory, with timestamped backups in a backups subdirectory.
type JSONRepository struct {
	cfg     *config.Config
	backups *backup.Manager
	logger  *slog.Logger
}

var _ Repository = (*JSONRepository)(nil)

// NewJSONRepository creates a repository rooted at the configured data
// directory.
func NewJSONRepository(cfg *config.Config, logger *slog.Logger) *JSONRepository {
	return &JSONRepository{
		cfg:     cfg,
		backups: backup.NewManager(cfg.BackupDir(), cfg.MaxBackups),
		logger:  logger,
	}
}

func (r *JSONRepository) Save(schedule models.Schedule, path string) (string, error) {
	if path == "" {
		path = filepath.Join(r.cfg.DataDir, schedule.Filename())
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", &models.FSError{Op: "create data directory", Path: filepath.Dir(path), Err: err}
	}

	// Back up the previous revision before overwriting. A failed backup is
	// logged and the save continues.
	if r.Exists(path) && r.cfg.EnableBackup {
		if _, err := r.backups.Create(path); err != nil {
			r.logger.Warn("backup creation failed", "path", path, "error", err)
		}
	}

	data, err := r.marshal(schedule)
	if err != nil {
		return "", &models.SerializationError{Format: "JSON",
			Reason: "failed to serialize schedule: " + err.Error(), Err: err}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", &models.FSError{Op: "write", Path: path, Err: err}
	}

	r.logger.Info("schedule saved", "path", path, "units", len(schedule.Units),
		"shifts", schedule.TotalShifts())
	return path, nil
}

func (r *JSONRepository) Load(path string) (models.Schedule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Schedule{}, &models.FileNotFoundError{Path: path}
		}
		return models.Schedule{}, &models.FSError{Op: "read", Path: path, Err: err}
	}

	var schedule models.Schedule
	if err := json.Unmarshal(data, &schedule); err != nil {
		return models.Schedule{}, &models.SerializationError{Format: "JSON",
			Reason: "invalid document in " + path + ": " + err.Error(), Err: err}
	}
	return schedule, nil
}

func (r *JSONRepository) Exists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

func (r *JSONRepository) Delete(path string) error {
	if !r.Exists(path) {
		return &models.FileNotFoundError{Path: path}
	}
	if err := os.Remove(path); err != nil {
		if os.IsPermission(err) {
			return &models.FilePermissionError{Path: path, Op: "delete"}
		}
		return &models.FSError{Op: "delete", Path: path, Err: err}
	}
	r.logger.Info("schedule deleted", "path", path)
	return nil
}

func (r *JSONRepository) ListSchedules(dir string) ([]string, error) {
	if dir == "" {
		dir = r.cfg.DataDir
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}

	matches, err := filepath.Glob(filepath.Join(dir, "schedule_*.json"))
	if err != nil {
		return nil, &models.FSError{Op: "list", Path: dir, Err: err}
	}

	type entry struct {
		path    string
		modTime time.Time
	}
	entries := make([]entry, 0, len(matches))
	for _, path := range matches {
		fi, err := os.Stat(path)
		if err != nil {
			continue
		}
		entries = append(entries, entry{path: path, modTime: fi.ModTime()})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].modTime.After(entries[j].modTime)
	})

	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.path
	}
	return paths, nil
}

func (r *JSONRepository) Backup(path string) (string, error) {
	return r.backups.Create(path)
}

// fileHead mirrors just enough of the document to produce a summary: shifts
// stay raw so nothing below the unit level is decoded or validated.
type fileHead struct {
	Metadata struct {
		Month     string    `json:"month"`
		Year      int       `json:"year"`
		CreatedAt time.Time `json:"created_at"`
		CreatedBy string    `json:"created_by"`
	} `json:"metadata"`
	Schedule []struct {
		Shifts []json.RawMessage `json:"shifts"`
	} `json:"schedule"`
}

func (r *JSONRepository) ScheduleInfo(path string) (ScheduleInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ScheduleInfo{}, &models.FileNotFoundError{Path: path}
		}
		return ScheduleInfo{}, &models.FSError{Op: "read", Path: path, Err: err}
	}

	var head fileHead
	if err := json.Unmarshal(data, &head); err != nil {
		return ScheduleInfo{}, &models.SerializationError{Format: "JSON",
			Reason: "invalid document in " + path + ": " + err.Error(), Err: err}
	}

	info := ScheduleInfo{
		Path:      path,
		Month:     head.Metadata.Month,
		Year:      head.Metadata.Year,
		CreatedAt: head.Metadata.CreatedAt,
		CreatedBy: head.Metadata.CreatedBy,
		UnitCount: len(head.Schedule),
	}
	for _, u := range head.Schedule {
		info.TotalShifts += len(u.Shifts)
	}
	return info, nil
}

func (r *JSONRepository) marshal(schedule models.Schedule) ([]byte, error) {
	if r.cfg.PrettyJSON {
		return json.MarshalIndent(schedule, "", "  ")
	}
	return json.Marshal(schedule)
}
