package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/dmitrtrc/schedule-dnd/internal/constants"
	"github.com/dmitrtrc/schedule-dnd/internal/models"
	"github.com/dmitrtrc/schedule-dnd/internal/service"
)

type CreateCmd struct {
	Period string `short:"p" help:"Schedule period (MM.YYYY). Asked interactively when omitted."`
	Yes    bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *CreateCmd) Run(ctx *Context) error {
	month, year, err := c.resolvePeriod(ctx.Config.AllowPastDates)
	if err != nil {
		return err
	}

	dto := service.ScheduleCreateDTO{Month: month, Year: year}
	for i, unitName := range constants.Units {
		unitDTO, include, err := collectUnit(i+1, unitName)
		if err != nil {
			return err
		}
		if include {
			dto.Units = append(dto.Units, unitDTO)
		}
	}
	if len(dto.Units) == 0 {
		return fmt.Errorf("no units selected, nothing to create")
	}

	result := ctx.Schedules.ValidateDraft(dto)
	if !result.IsValid() {
		printErr("draft has errors:")
		fmt.Print(result.FormatReport())
		return fmt.Errorf("schedule draft is invalid")
	}
	for _, warning := range result.Warnings {
		printWarn("%s", warning.Description)
	}

	if !c.Yes {
		confirmed := false
		prompt := huh.NewConfirm().
			Title(fmt.Sprintf("Create schedule for %s %d?", month.DisplayName(), year)).
			Value(&confirmed)
		if err := prompt.Run(); err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	schedule, err := ctx.Schedules.Create(dto)
	if err != nil {
		return err
	}
	printOK("Schedule created: %s (%d units, %d shifts)",
		schedule.Filename(), len(schedule.Units), schedule.TotalShifts())
	return nil
}

func (c *CreateCmd) resolvePeriod(allowPast bool) (models.Month, int, error) {
	if c.Period != "" {
		return parsePeriod(c.Period)
	}

	now := time.Now()
	month := models.Month(now.Month())
	yearStr := strconv.Itoa(now.Year())

	options := make([]huh.Option[models.Month], 0, 12)
	for m := models.January; m <= models.December; m++ {
		options = append(options, huh.NewOption(m.DisplayName(), m))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[models.Month]().
				Title("Месяц").
				Options(options...).
				Value(&month),
			huh.NewInput().
				Title("Год").
				Value(&yearStr).
				Validate(func(s string) error {
					year, err := strconv.Atoi(s)
					if err != nil {
						return fmt.Errorf("year must be a number")
					}
					return models.ValidateYear(year, allowPast)
				}),
		),
	)
	if err := form.Run(); err != nil {
		return 0, 0, err
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return 0, 0, err
	}
	return month, year, nil
}

func collectUnit(id int, unitName string) (service.UnitCreateDTO, bool, error) {
	include := true
	prompt := huh.NewConfirm().
		Title(fmt.Sprintf("[%d/8] Включить %s?", id, unitName)).
		Value(&include)
	if err := prompt.Run(); err != nil {
		return service.UnitCreateDTO{}, false, err
	}
	if !include {
		return service.UnitCreateDTO{}, false, nil
	}

	dto := service.UnitCreateDTO{UnitName: unitName}
	for {
		shift, more, err := collectShift(unitName)
		if err != nil {
			return service.UnitCreateDTO{}, false, err
		}
		if shift != nil {
			dto.Shifts = append(dto.Shifts, *shift)
		}
		if !more {
			break
		}
	}
	return dto, true, nil
}

func collectShift(unitName string) (*service.ShiftCreateDTO, bool, error) {
	add := true
	prompt := huh.NewConfirm().
		Title(fmt.Sprintf("Добавить дежурство для %s?", unitName)).
		Value(&add)
	if err := prompt.Run(); err != nil {
		return nil, false, err
	}
	if !add {
		return nil, false, nil
	}

	dto := service.ShiftCreateDTO{
		DutyType: string(models.DutyPDN),
		Time:     constants.DefaultShiftTime,
		Notes:    constants.DefaultShiftNote,
	}
	dutyOptions := make([]huh.Option[string], 0, 3)
	for _, dt := range models.DutyTypes() {
		dutyOptions = append(dutyOptions, huh.NewOption(string(dt), string(dt)))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Дата (ДД.ММ.ГГГГ)").
				Value(&dto.Date).
				Validate(func(s string) error {
					_, err := models.ParseDate(s)
					return err
				}),
			huh.NewSelect[string]().
				Title("Тип дежурства").
				Options(dutyOptions...).
				Value(&dto.DutyType),
			huh.NewInput().
				Title("Время (ЧЧ:ММ-ЧЧ:ММ)").
				Value(&dto.Time).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					_, _, err := models.ParseTimeRange(s)
					return err
				}),
			huh.NewInput().
				Title("Примечания").
				Value(&dto.Notes),
		),
	)
	if err := form.Run(); err != nil {
		return nil, false, err
	}
	return &dto, true, nil
}
