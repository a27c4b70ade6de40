package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrtrc/schedule-dnd/internal/constants"
)

// weekdayNames holds Russian day-of-week names indexed by time.Weekday
// (Sunday first).
var weekdayNames = [7]string{
	"Воскресенье", "Понедельник", "Вторник", "Среда", "Четверг", "Пятница", "Суббота",
}

// Shift is one scheduled patrol slot: a date, a time range and a duty type.
// Construct with NewShift so that an invalid shift is never reachable.
type Shift struct {
	Date     string   `json:"date"`
	DutyType DutyType `json:"duty_type"`
	Time     string   `json:"time"`
	Notes    string   `json:"notes"`
}

// NewShift builds a validated Shift. Empty time and notes fall back to the
// standard defaults.
func NewShift(date string, dutyType DutyType, timeRange, notes string) (Shift, error) {
	if timeRange == "" {
		timeRange = constants.DefaultShiftTime
	}
	if notes == "" {
		notes = constants.DefaultShiftNote
	}

	s := Shift{Date: date, DutyType: dutyType, Time: timeRange, Notes: notes}
	if err := s.validate(); err != nil {
		return Shift{}, err
	}
	return s, nil
}

func (s *Shift) validate() error {
	if _, err := ParseDate(s.Date); err != nil {
		return err
	}
	if !s.DutyType.Valid() {
		return NewFieldError("duty_type", string(s.DutyType), "invalid duty type: %s", s.DutyType)
	}
	if _, _, err := ParseTimeRange(s.Time); err != nil {
		return err
	}
	return nil
}

// DateTime returns the shift date as a time.Time.
func (s Shift) DateTime() time.Time {
	t, _ := ParseDate(s.Date)
	return t
}

// IsPast reports whether the shift date is before today.
func (s Shift) IsPast() bool {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return s.DateTime().Before(today)
}

// DayOfWeek returns the Russian name of the shift's day of week.
func (s Shift) DayOfWeek() string {
	return weekdayNames[s.DateTime().Weekday()]
}

func (s Shift) String() string {
	return fmt.Sprintf("%s - %s (%s)", s.Date, s.DutyType, s.Time)
}

// UnmarshalJSON re-validates the shift on decode so that corrupt files cannot
// produce a partially valid entity.
func (s *Shift) UnmarshalJSON(data []byte) error {
	type alias Shift
	var raw alias
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Time == "" {
		raw.Time = constants.DefaultShiftTime
	}
	*s = Shift(raw)
	return s.validate()
}
