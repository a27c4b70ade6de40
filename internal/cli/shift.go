package cli

import (
	"github.com/dmitrtrc/schedule-dnd/internal/service"
)

type ShiftAddCmd struct {
	Schedule string `arg:"" help:"Schedule identifier: path, filename or YYYY_MM."`
	Unit     string `short:"u" help:"Unit name or roster number (1-8)." required:""`
	Date     string `short:"d" help:"Shift date (DD.MM.YYYY)." required:""`
	Type     string `short:"t" help:"Duty type (ПДН|ППСП|УУП, latin aliases accepted)." required:""`
	Time     string `help:"Time range (HH:MM-HH:MM). Default shift time when omitted."`
	Notes    string `short:"n" help:"Shift notes. Default note when omitted."`
}

func (c *ShiftAddCmd) Run(ctx *Context) error {
	schedule, err := ctx.Schedules.AddShift(c.Schedule, c.Unit, service.ShiftCreateDTO{
		Date:     c.Date,
		DutyType: c.Type,
		Time:     c.Time,
		Notes:    c.Notes,
	})
	if err != nil {
		return err
	}
	printOK("Shift added: %s %s for %s (%d shifts total)",
		c.Date, c.Type, c.Unit, schedule.TotalShifts())
	return nil
}

type ShiftUpdateCmd struct {
	Schedule string `arg:"" help:"Schedule identifier: path, filename or YYYY_MM."`
	Unit     string `short:"u" help:"Unit name or roster number (1-8)." required:""`
	Date     string `short:"d" help:"Date of the shift to update (DD.MM.YYYY)." required:""`
	NewDate  string `help:"New date. Keeps the old date when omitted."`
	Type     string `short:"t" help:"New duty type." required:""`
	Time     string `help:"New time range. Default shift time when omitted."`
	Notes    string `short:"n" help:"New notes. Default note when omitted."`
}

func (c *ShiftUpdateCmd) Run(ctx *Context) error {
	newDate := c.NewDate
	if newDate == "" {
		newDate = c.Date
	}
	_, err := ctx.Schedules.UpdateShift(c.Schedule, c.Unit, c.Date, service.ShiftCreateDTO{
		Date:     newDate,
		DutyType: c.Type,
		Time:     c.Time,
		Notes:    c.Notes,
	})
	if err != nil {
		return err
	}
	printOK("Shift updated: %s → %s %s for %s", c.Date, newDate, c.Type, c.Unit)
	return nil
}

type ShiftDeleteCmd struct {
	Schedule string `arg:"" help:"Schedule identifier: path, filename or YYYY_MM."`
	Unit     string `short:"u" help:"Unit name or roster number (1-8)." required:""`
	Date     string `short:"d" help:"Date of the shift to delete (DD.MM.YYYY)." required:""`
}

func (c *ShiftDeleteCmd) Run(ctx *Context) error {
	schedule, err := ctx.Schedules.DeleteShift(c.Schedule, c.Unit, c.Date)
	if err != nil {
		return err
	}
	printOK("Shift deleted: %s for %s (%d shifts remain)",
		c.Date, c.Unit, schedule.TotalShifts())
	return nil
}
