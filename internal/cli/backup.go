package cli

import (
	"fmt"
	"path/filepath"

	"github.com/dmitrtrc/schedule-dnd/internal/backup"
)

type BackupCreateCmd struct {
	Schedule string `arg:"" help:"Schedule identifier: path, filename or YYYY_MM."`
}

func (c *BackupCreateCmd) Run(ctx *Context) error {
	backupPath, err := ctx.Schedules.Backup(c.Schedule)
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}
	printOK("Backup created: %s", filepath.Base(backupPath))
	return nil
}

type BackupListCmd struct {
	Schedule string `arg:"" help:"Schedule identifier: path, filename or YYYY_MM."`
}

func (c *BackupListCmd) Run(ctx *Context) error {
	mgr := backup.NewManager(ctx.Config.BackupDir(), ctx.Config.MaxBackups)
	backups, err := mgr.List(ctx.Schedules.ResolveID(c.Schedule))
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		fmt.Println("No backups found.")
		fmt.Printf("Backups are stored in: %s\n", mgr.Dir())
		return nil
	}

	fmt.Printf("Available backups (%d total, keeping most recent %d):\n\n",
		len(backups), ctx.Config.MaxBackups)
	for _, b := range backups {
		sizeKB := float64(b.Size) / 1024.0
		fmt.Printf("  %s  %s  (%.1f KB)\n",
			b.ModTime.Format("2006-01-02 15:04:05"), filepath.Base(b.Path), sizeKB)
	}
	fmt.Printf("\nBackup directory: %s\n", mgr.Dir())
	return nil
}
