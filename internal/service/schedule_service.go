package service

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/dmitrtrc/schedule-dnd/internal/config"
	"github.com/dmitrtrc/schedule-dnd/internal/constants"
	"github.com/dmitrtrc/schedule-dnd/internal/models"
	"github.com/dmitrtrc/schedule-dnd/internal/storage"
	"github.com/dmitrtrc/schedule-dnd/internal/validation"
)

const defaultCreatedBy = "manual_input"

// ScheduleService manages the schedule lifecycle: creation, lookup,
// mutation and deletion.
type ScheduleService struct {
	cfg      *config.Config
	repo     storage.Repository
	logger   *slog.Logger
	validate *validator.Validate
}

func NewScheduleService(cfg *config.Config, repo storage.Repository, logger *slog.Logger) *ScheduleService {
	return &ScheduleService{
		cfg:      cfg,
		repo:     repo,
		logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// shiftLimit returns the configured per-unit shift cap, bounded by the
// domain maximum.
func (s *ScheduleService) shiftLimit() int {
	if s.cfg.MaxShiftsPerUnit > 0 && s.cfg.MaxShiftsPerUnit < constants.MaxShiftsPerUnit {
		return s.cfg.MaxShiftsPerUnit
	}
	return constants.MaxShiftsPerUnit
}

// Create builds a schedule from raw input, persists it and returns it. Unit
// IDs follow input order starting at 1.
func (s *ScheduleService) Create(dto ScheduleCreateDTO) (models.Schedule, error) {
	if err := s.validate.Struct(dto); err != nil {
		return models.Schedule{}, fmt.Errorf("%w: %v", models.ErrValidation, err)
	}

	createdBy := dto.CreatedBy
	if createdBy == "" {
		createdBy = defaultCreatedBy
	}
	metadata, err := models.NewScheduleMetadata(dto.Month, dto.Year, createdBy)
	if err != nil {
		return models.Schedule{}, err
	}
	// Each created document gets a unique version stamp so exported copies
	// can be traced back to the revision they came from.
	metadata.Version = uuid.NewString()

	units := make([]models.Unit, 0, len(dto.Units))
	for i, unitDTO := range dto.Units {
		unit, err := s.buildUnit(i+1, unitDTO)
		if err != nil {
			return models.Schedule{}, err
		}
		units = append(units, unit)
	}

	schedule, err := models.NewSchedule(metadata, units)
	if err != nil {
		return models.Schedule{}, err
	}

	if _, err := s.repo.Save(schedule, ""); err != nil {
		return models.Schedule{}, err
	}

	s.logger.Info("schedule created", "period", metadata.PeriodString(),
		"units", len(units), "shifts", schedule.TotalShifts())
	return schedule, nil
}

func (s *ScheduleService) buildUnit(id int, dto UnitCreateDTO) (models.Unit, error) {
	shifts := make([]models.Shift, 0, len(dto.Shifts))
	for _, shiftDTO := range dto.Shifts {
		shift, err := s.buildShift(shiftDTO)
		if err != nil {
			return models.Unit{}, fmt.Errorf("unit %q: %w", dto.UnitName, err)
		}
		shifts = append(shifts, shift)
	}
	if limit := s.shiftLimit(); len(shifts) > limit {
		return models.Unit{}, &models.ShiftLimitError{
			UnitName: dto.UnitName, Limit: limit, Current: len(shifts),
		}
	}
	return models.NewUnit(id, dto.UnitName, shifts)
}

func (s *ScheduleService) buildShift(dto ShiftCreateDTO) (models.Shift, error) {
	dutyType, err := models.ParseDutyType(dto.DutyType)
	if err != nil {
		return models.Shift{}, err
	}
	return models.NewShift(dto.Date, dutyType, dto.Time, dto.Notes)
}

// Get loads a schedule by identifier: a path, a bare filename, or a
// "YYYY_MM" period.
func (s *ScheduleService) Get(scheduleID string) (models.Schedule, error) {
	path := s.ResolveID(scheduleID)
	if !s.repo.Exists(path) {
		return models.Schedule{}, &models.ScheduleNotFoundError{Identifier: scheduleID}
	}
	return s.repo.Load(path)
}

// List summarizes every stored schedule, newest first. Files that cannot be
// read are skipped.
func (s *ScheduleService) List() ([]storage.ScheduleInfo, error) {
	paths, err := s.repo.ListSchedules("")
	if err != nil {
		return nil, err
	}

	infos := make([]storage.ScheduleInfo, 0, len(paths))
	for _, path := range paths {
		info, err := s.repo.ScheduleInfo(path)
		if err != nil {
			s.logger.Warn("skipping unreadable schedule", "path", path, "error", err)
			continue
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// AddShift appends a shift to the named unit and persists the schedule.
func (s *ScheduleService) AddShift(scheduleID, unitName string, dto ShiftCreateDTO) (models.Schedule, error) {
	schedule, unit, err := s.loadUnit(scheduleID, unitName)
	if err != nil {
		return models.Schedule{}, err
	}

	shift, err := s.buildShift(dto)
	if err != nil {
		return models.Schedule{}, err
	}
	if limit := s.shiftLimit(); unit.ShiftCount() >= limit {
		return models.Schedule{}, &models.ShiftLimitError{
			UnitName: unit.UnitName, Limit: limit, Current: unit.ShiftCount(),
		}
	}
	if err := unit.AddShift(shift); err != nil {
		return models.Schedule{}, err
	}

	if _, err := s.repo.Save(schedule, s.ResolveID(scheduleID)); err != nil {
		return models.Schedule{}, err
	}
	return schedule, nil
}

// UpdateShift replaces the shift on oldDate with new data. The removal is
// rolled back if the replacement is rejected, so a failed update never loses
// the original shift.
func (s *ScheduleService) UpdateShift(scheduleID, unitName, oldDate string, dto ShiftCreateDTO) (models.Schedule, error) {
	schedule, unit, err := s.loadUnit(scheduleID, unitName)
	if err != nil {
		return models.Schedule{}, err
	}

	previous, ok := unit.ShiftByDate(oldDate)
	if !ok {
		return models.Schedule{}, models.NewFieldError("date", oldDate,
			"no shift found for date %s in unit %q", oldDate, unitName)
	}

	shift, err := s.buildShift(dto)
	if err != nil {
		return models.Schedule{}, err
	}

	unit.RemoveShift(oldDate)
	if err := unit.AddShift(shift); err != nil {
		if restoreErr := unit.AddShift(previous); restoreErr != nil {
			s.logger.Error("failed to restore shift after rejected update",
				"unit", unitName, "date", oldDate, "error", restoreErr)
		}
		return models.Schedule{}, err
	}

	if _, err := s.repo.Save(schedule, s.ResolveID(scheduleID)); err != nil {
		return models.Schedule{}, err
	}
	return schedule, nil
}

// DeleteShift removes the shift on date from the named unit.
func (s *ScheduleService) DeleteShift(scheduleID, unitName, date string) (models.Schedule, error) {
	schedule, unit, err := s.loadUnit(scheduleID, unitName)
	if err != nil {
		return models.Schedule{}, err
	}

	if !unit.RemoveShift(date) {
		return models.Schedule{}, models.NewFieldError("date", date,
			"no shift found for date %s in unit %q", date, unitName)
	}

	if _, err := s.repo.Save(schedule, s.ResolveID(scheduleID)); err != nil {
		return models.Schedule{}, err
	}
	return schedule, nil
}

// DeleteSchedule removes a stored schedule.
func (s *ScheduleService) DeleteSchedule(scheduleID string) error {
	path := s.ResolveID(scheduleID)
	if !s.repo.Exists(path) {
		return &models.ScheduleNotFoundError{Identifier: scheduleID}
	}
	if err := s.repo.Delete(path); err != nil {
		return err
	}
	s.logger.Info("schedule deleted", "id", scheduleID)
	return nil
}

// ValidateDraft checks raw input before creation, reporting all problems at
// once. A schedule already stored for the same period produces an overwrite
// warning.
func (s *ScheduleService) ValidateDraft(dto ScheduleCreateDTO) validation.Result {
	checker := &validation.Checker{
		Exists: func(month models.Month, year int) bool {
			return s.repo.Exists(s.cfg.SchedulePath(year, month.Number()))
		},
		AllowPastDates: s.cfg.AllowPastDates,
		MaxShifts:      s.shiftLimit(),
	}

	draft := validation.ScheduleDraft{
		Month: dto.Month,
		Year:  dto.Year,
		Units: make([]validation.UnitDraft, 0, len(dto.Units)),
	}
	for _, unitDTO := range dto.Units {
		unitDraft := validation.UnitDraft{UnitName: unitDTO.UnitName}
		for _, shiftDTO := range unitDTO.Shifts {
			unitDraft.Shifts = append(unitDraft.Shifts, validation.ShiftDraft{
				Date:     shiftDTO.Date,
				DutyType: shiftDTO.DutyType,
				Time:     shiftDTO.Time,
				Notes:    shiftDTO.Notes,
			})
		}
		draft.Units = append(draft.Units, unitDraft)
	}

	return checker.CheckDraft(draft)
}

// Statistics aggregates shift counts for a schedule, per unit and per duty
// type. The weekly average assumes four weeks per month.
func (s *ScheduleService) Statistics(scheduleID string) (ScheduleStatistics, error) {
	schedule, err := s.Get(scheduleID)
	if err != nil {
		return ScheduleStatistics{}, err
	}

	stats := ScheduleStatistics{
		Month:        schedule.Metadata.Month.DisplayName(),
		Year:         schedule.Metadata.Year,
		TotalUnits:   len(schedule.Units),
		TotalShifts:  schedule.TotalShifts(),
		ShiftsByType: schedule.ShiftsByType(),
	}
	for _, unit := range schedule.Units {
		stats.Units = append(stats.Units, UnitStatistics{
			UnitName:         unit.UnitName,
			TotalShifts:      unit.ShiftCount(),
			ShiftsByType:     unit.ShiftsByType(),
			AvgShiftsPerWeek: float64(unit.ShiftCount()) / 4.0,
		})
		for _, shift := range unit.Shifts {
			if shift.IsPast() {
				stats.CompletedShifts++
			}
		}
	}
	return stats, nil
}

// Backup snapshots a stored schedule.
func (s *ScheduleService) Backup(scheduleID string) (string, error) {
	path := s.ResolveID(scheduleID)
	if !s.repo.Exists(path) {
		return "", &models.ScheduleNotFoundError{Identifier: scheduleID}
	}
	return s.repo.Backup(path)
}

// ResolveID maps a schedule identifier to a repository path. Accepted forms:
// an explicit path, a bare filename, or a "YYYY_MM" period.
func (s *ScheduleService) ResolveID(scheduleID string) string {
	if strings.ContainsAny(scheduleID, `/\`) {
		return scheduleID
	}
	if strings.HasSuffix(scheduleID, ".json") {
		return filepath.Join(s.cfg.DataDir, scheduleID)
	}
	if strings.Contains(scheduleID, "_") {
		return filepath.Join(s.cfg.DataDir, "schedule_"+scheduleID+".json")
	}
	return filepath.Join(s.cfg.DataDir, scheduleID)
}

// resolveUnitName maps a 1-based roster number to the official unit name.
// Anything else is returned unchanged.
func resolveUnitName(name string) string {
	if n, err := strconv.Atoi(name); err == nil {
		if resolved := constants.UnitByIndex(n - 1); resolved != "" {
			return resolved
		}
	}
	return name
}

func (s *ScheduleService) loadUnit(scheduleID, unitName string) (models.Schedule, *models.Unit, error) {
	schedule, err := s.Get(scheduleID)
	if err != nil {
		return models.Schedule{}, nil, err
	}
	unitName = resolveUnitName(unitName)
	unit, ok := schedule.UnitByName(unitName)
	if !ok {
		return models.Schedule{}, nil, &models.UnitNotFoundError{UnitName: unitName}
	}
	return schedule, unit, nil
}
