// Package service orchestrates schedule and export operations on top of the
// domain model and the storage layer.
package service

import (
	"github.com/dmitrtrc/schedule-dnd/internal/models"
)

// ShiftCreateDTO carries raw shift input. Time and Notes fall back to the
// domain defaults when empty.
type ShiftCreateDTO struct {
	Date     string `validate:"required"`
	DutyType string `validate:"required"`
	Time     string `validate:"omitempty,max=11"`
	Notes    string `validate:"max=500"`
}

// UnitCreateDTO carries raw unit input.
type UnitCreateDTO struct {
	UnitName string           `validate:"required"`
	Shifts   []ShiftCreateDTO `validate:"dive"`
}

// ScheduleCreateDTO carries raw input for a whole schedule. Unit IDs are
// assigned from positions, starting at 1.
type ScheduleCreateDTO struct {
	Month     models.Month    `validate:"required"`
	Year      int             `validate:"gte=2020,lte=2100"`
	CreatedBy string          `validate:"omitempty,max=100"`
	Units     []UnitCreateDTO `validate:"required,min=1,max=8,dive"`
}

// UnitStatistics summarizes one unit of a schedule.
type UnitStatistics struct {
	UnitName         string
	TotalShifts      int
	ShiftsByType     map[models.DutyType]int
	AvgShiftsPerWeek float64
}

// ScheduleStatistics summarizes a whole schedule.
type ScheduleStatistics struct {
	Month           string
	Year            int
	TotalUnits      int
	TotalShifts     int
	CompletedShifts int // shifts dated before today
	ShiftsByType    map[models.DutyType]int
	Units           []UnitStatistics
}

// ExportResult reports the outcome of one export. Err is set on failure so
// multi-format runs can report per-format outcomes without aborting.
type ExportResult struct {
	Format     models.ExportFormat
	OutputPath string
	FileSize   int64
	Err        error
}

// Success reports whether this export produced a file.
func (r ExportResult) Success() bool { return r.Err == nil }
