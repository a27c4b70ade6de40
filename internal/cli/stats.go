package cli

import (
	"fmt"

	"github.com/dmitrtrc/schedule-dnd/internal/models"
)

type StatsCmd struct {
	Schedule string `arg:"" help:"Schedule identifier: path, filename or YYYY_MM."`
}

func (c *StatsCmd) Run(ctx *Context) error {
	stats, err := ctx.Schedules.Statistics(c.Schedule)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("Статистика: %s %d", stats.Month, stats.Year)))
	fmt.Println()
	fmt.Printf("Подразделений: %d\n", stats.TotalUnits)
	fmt.Printf("Всего дежурств: %d\n", stats.TotalShifts)
	if stats.CompletedShifts > 0 {
		fmt.Printf("Прошедших: %d\n", stats.CompletedShifts)
	}
	fmt.Println("По типам:")
	for _, dt := range models.DutyTypes() {
		if count, ok := stats.ShiftsByType[dt]; ok {
			fmt.Printf("  %-4s %d\n", dt, count)
		}
	}
	fmt.Println()

	for _, unit := range stats.Units {
		fmt.Printf("%s\n", unit.UnitName)
		fmt.Printf("  дежурств: %d (в среднем %.1f в неделю)\n", unit.TotalShifts, unit.AvgShiftsPerWeek)
		for _, dt := range models.DutyTypes() {
			if count, ok := unit.ShiftsByType[dt]; ok {
				fmt.Printf("  %-4s %d\n", dt, count)
			}
		}
	}
	return nil
}
