package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

type DeleteCmd struct {
	Schedule string `arg:"" help:"Schedule identifier: path, filename or YYYY_MM."`
	Yes      bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *DeleteCmd) Run(ctx *Context) error {
	if !c.Yes {
		confirmed := false
		prompt := huh.NewConfirm().
			Title(fmt.Sprintf("Delete schedule %q? A backup is created first.", c.Schedule)).
			Value(&confirmed)
		if err := prompt.Run(); err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	// Snapshot before removal so an accidental delete stays recoverable.
	if backupPath, err := ctx.Schedules.Backup(c.Schedule); err != nil {
		printWarn("backup before delete failed: %v", err)
	} else {
		fmt.Println(faintStyle.Render("Backup: " + backupPath))
	}

	if err := ctx.Schedules.DeleteSchedule(c.Schedule); err != nil {
		return err
	}
	printOK("Schedule deleted: %s", c.Schedule)
	return nil
}
