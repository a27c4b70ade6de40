package cli

import (
	"fmt"

	"github.com/dmitrtrc/schedule-dnd/internal/validation"
)

type ValidateCmd struct {
	Schedule string `arg:"" help:"Schedule identifier: path, filename or YYYY_MM."`
}

func (c *ValidateCmd) Run(ctx *Context) error {
	// Loading already enforces the entity invariants, so a decodable
	// document is structurally sound. The checker adds the soft findings.
	schedule, err := ctx.Schedules.Get(c.Schedule)
	if err != nil {
		return err
	}

	draft := validation.ScheduleDraft{
		Month: schedule.Metadata.Month,
		Year:  schedule.Metadata.Year,
	}
	for _, unit := range schedule.Units {
		unitDraft := validation.UnitDraft{UnitName: unit.UnitName}
		for _, shift := range unit.Shifts {
			unitDraft.Shifts = append(unitDraft.Shifts, validation.ShiftDraft{
				Date:     shift.Date,
				DutyType: string(shift.DutyType),
				Time:     shift.Time,
				Notes:    shift.Notes,
			})
		}
		draft.Units = append(draft.Units, unitDraft)
	}

	// Stored schedules may be historical, so past periods are accepted here.
	checker := &validation.Checker{
		AllowPastDates: true,
		MaxShifts:      ctx.Config.MaxShiftsPerUnit,
	}
	result := checker.CheckDraft(draft)
	fmt.Print(result.FormatReport())
	if !result.IsValid() {
		return fmt.Errorf("schedule %q failed validation", c.Schedule)
	}
	if len(result.Warnings) == 0 {
		printOK("Schedule %q is valid", c.Schedule)
	}
	return nil
}
