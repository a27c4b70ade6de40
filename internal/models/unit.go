package models

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/dmitrtrc/schedule-dnd/internal/constants"
)

// Unit is one of the eight official DND squads together with its scheduled
// shifts. Shifts keep insertion order; use ShiftsSorted for a date-ordered
// view.
type Unit struct {
	ID       int     `json:"id"`
	UnitName string  `json:"unit_name"`
	Shifts   []Shift `json:"shifts"`
}

// NewUnit builds a validated Unit. The initial shift list may be empty.
func NewUnit(id int, unitName string, shifts []Shift) (Unit, error) {
	u := Unit{ID: id, UnitName: unitName, Shifts: shifts}
	if err := u.validate(); err != nil {
		return Unit{}, err
	}
	return u, nil
}

func (u *Unit) validate() error {
	if u.ID < 1 || u.ID > constants.MaxUnitsPerRoster {
		return NewFieldError("id", fmt.Sprint(u.ID),
			"unit id must be between 1 and %d", constants.MaxUnitsPerRoster)
	}
	if !constants.IsValidUnit(u.UnitName) {
		return &UnitNotFoundError{UnitName: u.UnitName}
	}
	if len(u.Shifts) > constants.MaxShiftsPerUnit {
		return &ShiftLimitError{UnitName: u.UnitName, Limit: constants.MaxShiftsPerUnit, Current: len(u.Shifts)}
	}
	seen := make(map[string]struct{}, len(u.Shifts))
	for _, s := range u.Shifts {
		if _, dup := seen[s.Date]; dup {
			return &DuplicateShiftError{UnitName: u.UnitName, Date: s.Date}
		}
		seen[s.Date] = struct{}{}
	}
	return nil
}

// AddShift appends a shift after checking the unit invariants. On error the
// shift list is left unchanged.
func (u *Unit) AddShift(shift Shift) error {
	if existing, ok := u.ShiftByDate(shift.Date); ok {
		return &DuplicateShiftError{
			UnitName:         u.UnitName,
			Date:             shift.Date,
			ExistingDutyType: string(existing.DutyType),
		}
	}
	if len(u.Shifts) >= constants.MaxShiftsPerUnit {
		return &ShiftLimitError{UnitName: u.UnitName, Limit: constants.MaxShiftsPerUnit, Current: len(u.Shifts)}
	}
	u.Shifts = append(u.Shifts, shift)
	return nil
}

// RemoveShift removes the first shift with the given date. It reports whether
// a removal occurred; a missing date is not an error.
func (u *Unit) RemoveShift(date string) bool {
	for i, s := range u.Shifts {
		if s.Date == date {
			u.Shifts = append(u.Shifts[:i], u.Shifts[i+1:]...)
			return true
		}
	}
	return false
}

// HasShiftOn reports whether the unit already has a shift on the date.
func (u Unit) HasShiftOn(date string) bool {
	_, ok := u.ShiftByDate(date)
	return ok
}

// ShiftByDate returns the shift on the given date, if any.
func (u Unit) ShiftByDate(date string) (Shift, bool) {
	for _, s := range u.Shifts {
		if s.Date == date {
			return s, true
		}
	}
	return Shift{}, false
}

// ShiftsSorted returns the shifts ordered ascending by calendar date. The
// stored order is not touched.
func (u Unit) ShiftsSorted() []Shift {
	sorted := make([]Shift, len(u.Shifts))
	copy(sorted, u.Shifts)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].DateTime().Before(sorted[j].DateTime())
	})
	return sorted
}

// ShiftCount returns the number of shifts held by the unit.
func (u Unit) ShiftCount() int { return len(u.Shifts) }

// ShiftsByType counts shifts per duty type. Types with no shifts are absent
// from the result.
func (u Unit) ShiftsByType() map[DutyType]int {
	result := make(map[DutyType]int)
	for _, s := range u.Shifts {
		result[s.DutyType]++
	}
	return result
}

func (u Unit) String() string {
	return fmt.Sprintf("%s (%d shifts)", u.UnitName, len(u.Shifts))
}

// UnmarshalJSON re-validates the unit on decode.
func (u *Unit) UnmarshalJSON(data []byte) error {
	type alias Unit
	var raw alias
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*u = Unit(raw)
	return u.validate()
}
