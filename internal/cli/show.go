package cli

import (
	"fmt"
)

type ShowCmd struct {
	Schedule string `arg:"" help:"Schedule identifier: path, filename or YYYY_MM."`
	Unit     string `short:"u" help:"Show only this unit."`
}

func (c *ShowCmd) Run(ctx *Context) error {
	schedule, err := ctx.Schedules.Get(c.Schedule)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render("График дежурств ДНД - " + schedule.Metadata.PeriodString()))
	fmt.Println()

	for _, unit := range schedule.Units {
		if c.Unit != "" && unit.UnitName != c.Unit {
			continue
		}
		fmt.Printf("%d. %s (%d дежурств)\n", unit.ID, unit.UnitName, unit.ShiftCount())
		for _, shift := range unit.ShiftsSorted() {
			fmt.Printf("   %s %s  %-4s  %s\n",
				shift.Date, shift.DayOfWeek(), shift.DutyType, shift.Time)
			if shift.Notes != "" {
				fmt.Printf("   %s\n", faintStyle.Render(shift.Notes))
			}
		}
		fmt.Println()
	}

	fmt.Printf("Всего дежурств: %d\n", schedule.TotalShifts())
	return nil
}
