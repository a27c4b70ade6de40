package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/dmitrtrc/schedule-dnd/internal/config"
	"github.com/dmitrtrc/schedule-dnd/internal/logging"
	"github.com/dmitrtrc/schedule-dnd/internal/models"
)

func testSQLiteRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	cfg := &config.Config{
		DataDir:      t.TempDir(),
		EnableBackup: true,
		MaxBackups:   3,
	}
	repo, err := NewSQLiteRepository(cfg, filepath.Join(cfg.DataDir, "schedules.db"), logging.Discard())
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSQLiteSaveLoadRoundTrip(t *testing.T) {
	repo := testSQLiteRepo(t)
	schedule := testSchedule(t, 2030)

	name, err := repo.Save(schedule, "")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if name != "schedule_2030_10.json" {
		t.Errorf("name = %q, want schedule_2030_10.json", name)
	}

	loaded, err := repo.Load(name)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := loaded.TotalShifts(); got != 3 {
		t.Errorf("TotalShifts = %d, want 3", got)
	}
	if loaded.Metadata.Year != 2030 {
		t.Errorf("Year = %d, want 2030", loaded.Metadata.Year)
	}
}

func TestSQLiteOverwriteReplacesDocument(t *testing.T) {
	repo := testSQLiteRepo(t)
	schedule := testSchedule(t, 2030)

	if _, err := repo.Save(schedule, ""); err != nil {
		t.Fatalf("Save: %v", err)
	}

	unit, _ := schedule.UnitByID(1)
	shift, err := models.NewShift("28.10.2030", models.DutyPPSP, "", "")
	if err != nil {
		t.Fatalf("NewShift: %v", err)
	}
	if err := unit.AddShift(shift); err != nil {
		t.Fatalf("AddShift: %v", err)
	}
	if _, err := repo.Save(schedule, ""); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	names, err := repo.ListSchedules("")
	if err != nil {
		t.Fatalf("ListSchedules: %v", err)
	}
	if len(names) != 1 {
		t.Fatalf("stored %d documents, want 1", len(names))
	}

	loaded, err := repo.Load(names[0])
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := loaded.TotalShifts(); got != 4 {
		t.Errorf("TotalShifts after overwrite = %d, want 4", got)
	}
}

func TestSQLiteDeleteAndMissing(t *testing.T) {
	repo := testSQLiteRepo(t)
	schedule := testSchedule(t, 2030)

	name, err := repo.Save(schedule, "")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := repo.Delete(name); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if repo.Exists(name) {
		t.Error("document still exists after Delete")
	}

	var nf *models.FileNotFoundError
	if err := repo.Delete(name); !errors.As(err, &nf) {
		t.Errorf("second Delete = %v, want FileNotFoundError", err)
	}
	if _, err := repo.Load(name); !errors.Is(err, models.ErrFileSystem) {
		t.Errorf("Load after delete = %v, want ErrFileSystem", err)
	}
}

func TestSQLiteScheduleInfo(t *testing.T) {
	repo := testSQLiteRepo(t)
	schedule := testSchedule(t, 2030)

	name, err := repo.Save(schedule, "")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	info, err := repo.ScheduleInfo(name)
	if err != nil {
		t.Fatalf("ScheduleInfo: %v", err)
	}
	if info.Month != "Октябрь" || info.Year != 2030 {
		t.Errorf("period = %s %d, want Октябрь 2030", info.Month, info.Year)
	}
	if info.UnitCount != 2 || info.TotalShifts != 3 {
		t.Errorf("counts = %d units / %d shifts, want 2 / 3", info.UnitCount, info.TotalShifts)
	}
}

func TestSQLiteBackupSnapshot(t *testing.T) {
	repo := testSQLiteRepo(t)
	schedule := testSchedule(t, 2030)

	name, err := repo.Save(schedule, "")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	backupPath, err := repo.Backup(name)
	if err != nil {
		t.Fatalf("Backup: %v", err)
	}

	// The snapshot must be an openable database holding the same document.
	cfg := &config.Config{DataDir: t.TempDir(), MaxBackups: 3}
	snapshot, err := NewSQLiteRepository(cfg, backupPath, logging.Discard())
	if err != nil {
		t.Fatalf("open snapshot: %v", err)
	}
	defer snapshot.Close()

	loaded, err := snapshot.Load(name)
	if err != nil {
		t.Fatalf("Load from snapshot: %v", err)
	}
	if got := loaded.TotalShifts(); got != 3 {
		t.Errorf("snapshot TotalShifts = %d, want 3", got)
	}
}
