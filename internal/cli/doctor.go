package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	ps "github.com/mitchellh/go-ps"

	"github.com/dmitrtrc/schedule-dnd/internal/constants"
)

type DoctorCmd struct{}

func (c *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false

	if err := checkDataDirWritable(ctx); err != nil {
		printErr("Data directory writable: FAIL")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		printOK("Data directory writable: OK")
	}

	unreadable, total, err := checkSchedulesReadable(ctx)
	switch {
	case err != nil:
		printErr("Schedules readable: FAIL")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	case unreadable > 0:
		printErr("Schedules readable: FAIL (%d of %d unreadable)", unreadable, total)
		hasError = true
	default:
		printOK("Schedules readable: OK (%d checked)", total)
	}

	if err := checkBackupsPresent(ctx); err != nil {
		printWarn("Backups present: WARNING")
		fmt.Printf("   %v\n", err)
	} else {
		printOK("Backups present: OK")
	}

	if others, err := findOtherInstances(); err != nil {
		printWarn("Concurrent instances: could not check (%v)", err)
	} else if others > 0 {
		printWarn("Concurrent instances: %d other %s process(es) running", others, constants.AppName)
		fmt.Println("   Concurrent writes to the same data directory can lose updates.")
	} else {
		printOK("Concurrent instances: none")
	}

	if err := checkClock(); err != nil {
		printErr("Clock sanity: FAIL")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		printOK("Clock sanity: OK")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDataDirWritable(ctx *Context) error {
	if err := os.MkdirAll(ctx.Config.DataDir, 0o755); err != nil {
		return err
	}
	probe := filepath.Join(ctx.Config.DataDir, ".doctor_probe")
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		return err
	}
	return os.Remove(probe)
}

func checkSchedulesReadable(ctx *Context) (unreadable, total int, err error) {
	paths, err := ctx.Repo.ListSchedules("")
	if err != nil {
		return 0, 0, err
	}
	for _, path := range paths {
		if _, err := ctx.Repo.Load(path); err != nil {
			fmt.Printf("   %s: %v\n", filepath.Base(path), err)
			unreadable++
		}
	}
	return unreadable, len(paths), nil
}

func checkBackupsPresent(ctx *Context) error {
	entries, err := os.ReadDir(ctx.Config.BackupDir())
	if os.IsNotExist(err) || (err == nil && len(entries) == 0) {
		return fmt.Errorf("no backups found - consider creating one with '%s backup create'", constants.AppName)
	}
	return err
}

// findOtherInstances counts running processes with our binary name besides
// the current one.
func findOtherInstances() (int, error) {
	procs, err := ps.Processes()
	if err != nil {
		return 0, err
	}
	self := os.Getpid()
	others := 0
	for _, p := range procs {
		if p.Pid() == self {
			continue
		}
		name := strings.TrimSuffix(p.Executable(), ".exe")
		if name == constants.AppName {
			others++
		}
	}
	return others, nil
}

func checkClock() error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}
