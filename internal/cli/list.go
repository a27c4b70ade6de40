package cli

import (
	"fmt"
	"path/filepath"
)

type ListCmd struct{}

func (c *ListCmd) Run(ctx *Context) error {
	infos, err := ctx.Schedules.List()
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		fmt.Println("No schedules found.")
		fmt.Println(faintStyle.Render("Create one with: schedulednd create"))
		return nil
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("Schedules (%d):", len(infos))))
	fmt.Println()
	for _, info := range infos {
		fmt.Printf("  %-28s %s %d  %2d units  %3d shifts  %s\n",
			filepath.Base(info.Path),
			info.Month, info.Year,
			info.UnitCount, info.TotalShifts,
			faintStyle.Render(info.CreatedAt.Format("2006-01-02 15:04")))
	}
	return nil
}
