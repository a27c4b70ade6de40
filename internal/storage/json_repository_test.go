package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrtrc/schedule-dnd/internal/config"
	"github.com/dmitrtrc/schedule-dnd/internal/constants"
	"github.com/dmitrtrc/schedule-dnd/internal/logging"
	"github.com/dmitrtrc/schedule-dnd/internal/models"
)

func testRepo(t *testing.T) (*JSONRepository, *config.Config) {
	t.Helper()
	cfg := &config.Config{
		DataDir:      t.TempDir(),
		EnableBackup: true,
		MaxBackups:   3,
		PrettyJSON:   true,
	}
	return NewJSONRepository(cfg, logging.Discard()), cfg
}

func testSchedule(t *testing.T, year int) models.Schedule {
	t.Helper()
	meta, err := models.NewScheduleMetadata(models.October, year, "test")
	if err != nil {
		t.Fatalf("NewScheduleMetadata: %v", err)
	}

	s1, err := models.NewShift(fmt.Sprintf("07.10.%d", year), models.DutyPDN, "", "")
	if err != nil {
		t.Fatalf("NewShift: %v", err)
	}
	s2, err := models.NewShift(fmt.Sprintf("14.10.%d", year), models.DutyUUP, "19:00-23:00", "")
	if err != nil {
		t.Fatalf("NewShift: %v", err)
	}
	s3, err := models.NewShift(fmt.Sprintf("21.10.%d", year), models.DutyPPSP, "", "")
	if err != nil {
		t.Fatalf("NewShift: %v", err)
	}

	u1, err := models.NewUnit(1, constants.Units[0], []models.Shift{s1, s2})
	if err != nil {
		t.Fatalf("NewUnit: %v", err)
	}
	u2, err := models.NewUnit(2, constants.Units[1], []models.Shift{s3})
	if err != nil {
		t.Fatalf("NewUnit: %v", err)
	}

	schedule, err := models.NewSchedule(meta, []models.Unit{u1, u2})
	if err != nil {
		t.Fatalf("NewSchedule: %v", err)
	}
	return schedule
}

func TestSaveLoadRoundTrip(t *testing.T) {
	repo, cfg := testRepo(t)
	schedule := testSchedule(t, 2030)

	path, err := repo.Save(schedule, "")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if want := cfg.SchedulePath(2030, 10); path != want {
		t.Errorf("default path = %q, want %q", path, want)
	}

	loaded, err := repo.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Metadata.Month != schedule.Metadata.Month || loaded.Metadata.Year != schedule.Metadata.Year {
		t.Errorf("period = %s, want %s", loaded.Metadata.PeriodString(), schedule.Metadata.PeriodString())
	}
	if got := loaded.TotalShifts(); got != 3 {
		t.Errorf("TotalShifts = %d, want 3", got)
	}
	unit, ok := loaded.UnitByID(1)
	if !ok {
		t.Fatal("unit 1 missing after round trip")
	}
	if !unit.HasShiftOn("07.10.2030") {
		t.Error("shift on 07.10.2030 missing after round trip")
	}
}

func TestLoadMissingFile(t *testing.T) {
	repo, cfg := testRepo(t)

	_, err := repo.Load(filepath.Join(cfg.DataDir, "schedule_2030_01.json"))
	var nf *models.FileNotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("err = %v, want FileNotFoundError", err)
	}
	if !errors.Is(err, models.ErrFileSystem) {
		t.Error("FileNotFoundError should unwrap to ErrFileSystem")
	}
}

func TestLoadRejectsCorruptDocument(t *testing.T) {
	repo, cfg := testRepo(t)
	path := cfg.SchedulePath(2030, 10)
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(`{"metadata": {`), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := repo.Load(path)
	if !errors.Is(err, models.ErrData) {
		t.Fatalf("err = %v, want ErrData", err)
	}
}

func TestSaveBackupRotation(t *testing.T) {
	repo, cfg := testRepo(t)
	schedule := testSchedule(t, 2030)

	path, err := repo.Save(schedule, "")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Overwrite several times with spaced mtimes so rotation order is
	// deterministic. Each save of an existing file produces one backup.
	for i := 0; i < 5; i++ {
		if err := os.Chtimes(path, time.Now(), time.Now().Add(time.Duration(i-10)*time.Minute)); err != nil {
			t.Fatal(err)
		}
		if _, err := repo.Save(schedule, path); err != nil {
			t.Fatalf("Save %d: %v", i, err)
		}
		backups, err := repo.backups.List(path)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		for j, b := range backups {
			stamp := time.Now().Add(time.Duration(i*10+j) * -time.Hour)
			if err := os.Chtimes(b.Path, stamp, stamp); err != nil {
				t.Fatal(err)
			}
		}
	}

	backups, err := repo.backups.List(path)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(backups) != cfg.MaxBackups {
		t.Errorf("kept %d backups, want %d", len(backups), cfg.MaxBackups)
	}
}

func TestDelete(t *testing.T) {
	repo, _ := testRepo(t)
	schedule := testSchedule(t, 2030)

	path, err := repo.Save(schedule, "")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := repo.Delete(path); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if repo.Exists(path) {
		t.Error("file still exists after Delete")
	}

	var nf *models.FileNotFoundError
	if err := repo.Delete(path); !errors.As(err, &nf) {
		t.Errorf("second Delete = %v, want FileNotFoundError", err)
	}
}

func TestListSchedules(t *testing.T) {
	repo, cfg := testRepo(t)

	paths, err := repo.ListSchedules("")
	if err != nil {
		t.Fatalf("ListSchedules on empty dir: %v", err)
	}
	if len(paths) != 0 {
		t.Fatalf("expected no schedules, got %d", len(paths))
	}

	older := testSchedule(t, 2030)
	newer := testSchedule(t, 2031)
	olderPath, err := repo.Save(older, "")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	newerPath, err := repo.Save(newer, "")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(olderPath, past, past); err != nil {
		t.Fatal(err)
	}

	// A stray file must not be picked up.
	if err := os.WriteFile(filepath.Join(cfg.DataDir, "notes.json"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	paths, err = repo.ListSchedules("")
	if err != nil {
		t.Fatalf("ListSchedules: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("found %d schedules, want 2", len(paths))
	}
	if paths[0] != newerPath || paths[1] != olderPath {
		t.Errorf("order = %v, want newest first", paths)
	}
}

func TestScheduleInfo(t *testing.T) {
	repo, _ := testRepo(t)
	schedule := testSchedule(t, 2030)

	path, err := repo.Save(schedule, "")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	info, err := repo.ScheduleInfo(path)
	if err != nil {
		t.Fatalf("ScheduleInfo: %v", err)
	}
	if info.Month != "Октябрь" {
		t.Errorf("Month = %q, want %q", info.Month, "Октябрь")
	}
	if info.Year != 2030 {
		t.Errorf("Year = %d, want 2030", info.Year)
	}
	if info.UnitCount != 2 {
		t.Errorf("UnitCount = %d, want 2", info.UnitCount)
	}
	if info.TotalShifts != 3 {
		t.Errorf("TotalShifts = %d, want 3", info.TotalShifts)
	}
	if info.CreatedBy != "test" {
		t.Errorf("CreatedBy = %q, want %q", info.CreatedBy, "test")
	}
}
