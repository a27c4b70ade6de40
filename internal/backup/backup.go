package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dmitrtrc/schedule-dnd/internal/models"
)

const (
	// TimestampLayout is the timestamp suffix of backup file names.
	TimestampLayout = "20060102_150405"
	// DirName is the name of the backup subdirectory inside the data dir.
	DirName = "backups"
)

// Info describes one backup file.
type Info struct {
	Path    string
	ModTime time.Time
	Size    int64
}

// Manager copies schedule files into a backup directory and rotates old
// copies. Rotation only touches backups belonging to the same original file,
// so rotation for different schedules cannot interfere.
type Manager struct {
	backupDir  string
	maxBackups int
	now        func() time.Time
}

// NewManager creates a backup manager writing into backupDir and keeping at
// most maxBackups copies per original file.
func NewManager(backupDir string, maxBackups int) *Manager {
	return &Manager{
		backupDir:  backupDir,
		maxBackups: maxBackups,
		now:        time.Now,
	}
}

// Dir returns the backup directory path.
func (m *Manager) Dir() string { return m.backupDir }

// Create copies src into the backup directory under
// <stem>_backup_<timestamp><ext> and prunes old backups for the same stem.
func (m *Manager) Create(src string) (string, error) {
	if _, err := os.Stat(src); os.IsNotExist(err) {
		return "", &models.FileNotFoundError{Path: src}
	}

	if err := os.MkdirAll(m.backupDir, 0o755); err != nil {
		return "", &models.FSError{Op: "create backup directory", Path: m.backupDir, Err: err}
	}

	ext := filepath.Ext(src)
	stem := strings.TrimSuffix(filepath.Base(src), ext)
	name := fmt.Sprintf("%s_backup_%s%s", stem, m.now().Format(TimestampLayout), ext)
	dst := filepath.Join(m.backupDir, name)

	// Saves within the same second collide; disambiguate with a counter.
	counter := 1
	for {
		if _, err := os.Stat(dst); os.IsNotExist(err) {
			break
		}
		name = fmt.Sprintf("%s_backup_%s_%d%s", stem, m.now().Format(TimestampLayout), counter, ext)
		dst = filepath.Join(m.backupDir, name)
		counter++
		if counter > 100 {
			return "", &models.FSError{Op: "backup", Path: src,
				Err: fmt.Errorf("failed to generate unique backup filename")}
		}
	}

	if err := copyFile(src, dst); err != nil {
		return "", &models.FSError{Op: "backup", Path: src, Err: err}
	}

	if err := m.rotate(src); err != nil {
		// Rotation keeps disk usage bounded but must never fail the backup
		// that was just taken.
		return dst, nil
	}
	return dst, nil
}

// List returns the backups for the given original file, newest first.
func (m *Manager) List(src string) ([]Info, error) {
	matches, err := m.glob(src)
	if err != nil {
		return nil, err
	}

	backups := make([]Info, 0, len(matches))
	for _, path := range matches {
		fi, err := os.Stat(path)
		if err != nil {
			continue
		}
		backups = append(backups, Info{Path: path, ModTime: fi.ModTime(), Size: fi.Size()})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].ModTime.After(backups[j].ModTime)
	})
	return backups, nil
}

// rotate removes the oldest backups of src beyond the retention limit,
// oldest first by modification time.
func (m *Manager) rotate(src string) error {
	if m.maxBackups <= 0 {
		return nil
	}

	backups, err := m.List(src)
	if err != nil {
		return err
	}
	for i := m.maxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

func (m *Manager) glob(src string) ([]string, error) {
	if _, err := os.Stat(m.backupDir); os.IsNotExist(err) {
		return nil, nil
	}
	ext := filepath.Ext(src)
	stem := strings.TrimSuffix(filepath.Base(src), ext)
	return filepath.Glob(filepath.Join(m.backupDir, stem+"_backup_*"+ext))
}

func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := destFile.ReadFrom(sourceFile); err != nil {
		return err
	}
	return destFile.Sync()
}
