package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dmitrtrc/schedule-dnd/internal/backup"
	"github.com/dmitrtrc/schedule-dnd/internal/config"
	"github.com/dmitrtrc/schedule-dnd/internal/models"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS schedules (
	name         TEXT PRIMARY KEY,
	month        TEXT NOT NULL,
	year         INTEGER NOT NULL,
	created_at   TEXT NOT NULL,
	created_by   TEXT NOT NULL,
	unit_count   INTEGER NOT NULL,
	total_shifts INTEGER NOT NULL,
	document     TEXT NOT NULL,
	updated_at   TEXT NOT NULL
)`

// SQLiteRepository keeps all schedules as JSON documents in a single
// SQLite database. The path arguments of the Repository interface are
// treated as logical document names ("schedule_2025_10.json"); summary
// columns let listings and ScheduleInfo skip decoding the document.
type SQLiteRepository struct {
	cfg    *config.Config
	dbPath string
	db     *sql.DB
	logger *slog.Logger
}

var _ Repository = (*SQLiteRepository)(nil)

// NewSQLiteRepository opens (creating if needed) the database at dbPath.
func NewSQLiteRepository(cfg *config.Config, dbPath string, logger *slog.Logger) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, &models.FSError{Op: "create data directory", Path: filepath.Dir(dbPath), Err: err}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, &models.FSError{Op: "open database", Path: dbPath, Err: err}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, &models.FSError{Op: "initialize database", Path: dbPath, Err: err}
	}

	return &SQLiteRepository{cfg: cfg, dbPath: dbPath, db: db, logger: logger}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// name normalizes a path argument to the stored document name.
func (r *SQLiteRepository) name(path string) string {
	return filepath.Base(path)
}

func (r *SQLiteRepository) Save(schedule models.Schedule, path string) (string, error) {
	if path == "" {
		path = schedule.Filename()
	}
	name := r.name(path)

	data, err := json.Marshal(schedule)
	if err != nil {
		return "", &models.SerializationError{Format: "JSON",
			Reason: "failed to serialize schedule: " + err.Error(), Err: err}
	}

	if r.Exists(name) && r.cfg.EnableBackup {
		if _, err := r.Backup(name); err != nil {
			r.logger.Warn("backup creation failed", "database", r.dbPath, "error", err)
		}
	}

	_, err = r.db.Exec(`
		INSERT OR REPLACE INTO schedules (
			name, month, year, created_at, created_by, unit_count, total_shifts, document, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		name,
		schedule.Metadata.Month.DisplayName(),
		schedule.Metadata.Year,
		schedule.Metadata.CreatedAt.UTC().Format(time.RFC3339),
		schedule.Metadata.CreatedBy,
		len(schedule.Units),
		schedule.TotalShifts(),
		string(data),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", &models.FSError{Op: "write", Path: r.dbPath, Err: err}
	}

	r.logger.Info("schedule saved", "database", r.dbPath, "name", name,
		"units", len(schedule.Units), "shifts", schedule.TotalShifts())
	return name, nil
}

func (r *SQLiteRepository) Load(path string) (models.Schedule, error) {
	var doc string
	err := r.db.QueryRow("SELECT document FROM schedules WHERE name = ?", r.name(path)).Scan(&doc)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Schedule{}, &models.FileNotFoundError{Path: path}
		}
		return models.Schedule{}, &models.FSError{Op: "read", Path: r.dbPath, Err: err}
	}

	var schedule models.Schedule
	if err := json.Unmarshal([]byte(doc), &schedule); err != nil {
		return models.Schedule{}, &models.SerializationError{Format: "JSON",
			Reason: "invalid document " + r.name(path) + ": " + err.Error(), Err: err}
	}
	return schedule, nil
}

func (r *SQLiteRepository) Exists(path string) bool {
	var one int
	err := r.db.QueryRow("SELECT 1 FROM schedules WHERE name = ?", r.name(path)).Scan(&one)
	return err == nil
}

func (r *SQLiteRepository) Delete(path string) error {
	res, err := r.db.Exec("DELETE FROM schedules WHERE name = ?", r.name(path))
	if err != nil {
		return &models.FSError{Op: "delete", Path: r.dbPath, Err: err}
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return &models.FileNotFoundError{Path: path}
	}
	r.logger.Info("schedule deleted", "database", r.dbPath, "name", r.name(path))
	return nil
}

func (r *SQLiteRepository) ListSchedules(string) ([]string, error) {
	rows, err := r.db.Query("SELECT name FROM schedules ORDER BY updated_at DESC, name")
	if err != nil {
		return nil, &models.FSError{Op: "list", Path: r.dbPath, Err: err}
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, &models.FSError{Op: "list", Path: r.dbPath, Err: err}
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (r *SQLiteRepository) ScheduleInfo(path string) (ScheduleInfo, error) {
	var info ScheduleInfo
	var createdAt string
	err := r.db.QueryRow(`
		SELECT month, year, created_at, created_by, unit_count, total_shifts
		FROM schedules WHERE name = ?`, r.name(path)).Scan(
		&info.Month, &info.Year, &createdAt, &info.CreatedBy, &info.UnitCount, &info.TotalShifts)
	if err != nil {
		if err == sql.ErrNoRows {
			return ScheduleInfo{}, &models.FileNotFoundError{Path: path}
		}
		return ScheduleInfo{}, &models.FSError{Op: "read", Path: r.dbPath, Err: err}
	}
	info.Path = r.name(path)
	if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
		info.CreatedAt = ts
	}
	return info, nil
}

// Backup snapshots the whole database into the backup directory. VACUUM INTO
// produces a consistent copy even while the database is open; a plain file
// copy is the fallback for builds where it is unavailable.
func (r *SQLiteRepository) Backup(string) (string, error) {
	if err := os.MkdirAll(r.cfg.BackupDir(), 0o755); err != nil {
		return "", &models.FSError{Op: "create backup directory", Path: r.cfg.BackupDir(), Err: err}
	}

	base := filepath.Base(r.dbPath)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	dst := filepath.Join(r.cfg.BackupDir(),
		fmt.Sprintf("%s_backup_%s%s", stem, time.Now().Format(backup.TimestampLayout), ext))

	if _, err := r.db.Exec("VACUUM INTO ?", dst); err != nil {
		mgr := backup.NewManager(r.cfg.BackupDir(), r.cfg.MaxBackups)
		return mgr.Create(r.dbPath)
	}

	r.rotate(stem, ext)
	return dst, nil
}

func (r *SQLiteRepository) rotate(stem, ext string) {
	matches, err := filepath.Glob(filepath.Join(r.cfg.BackupDir(), stem+"_backup_*"+ext))
	if err != nil || len(matches) <= r.cfg.MaxBackups {
		return
	}
	sort.Slice(matches, func(i, j int) bool {
		fi, errI := os.Stat(matches[i])
		fj, errJ := os.Stat(matches[j])
		if errI != nil || errJ != nil {
			return matches[i] < matches[j]
		}
		return fi.ModTime().Before(fj.ModTime())
	})
	for _, path := range matches[:len(matches)-r.cfg.MaxBackups] {
		if err := os.Remove(path); err != nil {
			r.logger.Warn("failed to prune old backup", "path", path, "error", err)
		}
	}
}
