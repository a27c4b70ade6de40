package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrtrc/schedule-dnd/internal/constants"
)

// DaysInMonth returns the number of days in the given month/year, accounting
// for leap years.
func DaysInMonth(month, year int) int {
	// day 0 of the next month is the last day of this month
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ValidateDay checks that day is valid for the given month/year.
func ValidateDay(day, month, year int) error {
	if day < 1 || day > 31 {
		return NewFieldError("day", fmt.Sprint(day), "day must be between 1 and 31")
	}
	if max := DaysInMonth(month, year); day > max {
		return NewFieldError("day", fmt.Sprint(day),
			"day %d is invalid for month %d/%d: this month has only %d days", day, month, year, max)
	}
	return nil
}

// ValidateMonthNumber checks that month is in 1..12.
func ValidateMonthNumber(month int) error {
	if month < 1 || month > 12 {
		return NewFieldError("month", fmt.Sprint(month), "month must be between 1 and 12")
	}
	return nil
}

// ValidateYear checks the year against the current calendar year. Past years
// are rejected unless allowPast is set.
func ValidateYear(year int, allowPast bool) error {
	return ValidateYearAt(year, allowPast, time.Now())
}

// ValidateYearAt is ValidateYear with an explicit reference time.
func ValidateYearAt(year int, allowPast bool, now time.Time) error {
	minYear := now.Year()
	if allowPast {
		minYear = now.Year() - constants.PastYearWindow
	}
	maxYear := now.Year() + constants.MaxYearOffset

	if year < minYear {
		return NewFieldError("year", fmt.Sprint(year), "year cannot be before %d", minYear)
	}
	if year > maxYear {
		return NewFieldError("year", fmt.Sprint(year), "year cannot be after %d", maxYear)
	}
	return nil
}

// ParseDate parses a DD.MM.YYYY date string. Any other separator or component
// order fails.
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.Parse(constants.DateLayout, dateStr)
	if err != nil {
		return time.Time{}, NewFieldError("date", dateStr,
			"invalid date format: %s. Expected %s", dateStr, constants.DateLayoutDisplay)
	}
	// time.Parse accepts single-digit components; the canonical form does not.
	if t.Format(constants.DateLayout) != dateStr {
		return time.Time{}, NewFieldError("date", dateStr,
			"invalid date format: %s. Expected %s", dateStr, constants.DateLayoutDisplay)
	}
	return t, nil
}

// FormatDate formats the triple as DD.MM.YYYY after validating it.
func FormatDate(day, month, year int) (string, error) {
	if err := ValidateMonthNumber(month); err != nil {
		return "", err
	}
	if err := ValidateDay(day, month, year); err != nil {
		return "", err
	}
	return fmt.Sprintf("%02d.%02d.%04d", day, month, year), nil
}

// ParseTimeRange validates an HH:MM-HH:MM range and returns its endpoints as
// times of day. Start must be strictly before end.
func ParseTimeRange(timeRange string) (start, end time.Time, err error) {
	parts := strings.Split(timeRange, "-")
	if len(parts) != 2 {
		return start, end, NewFieldError("time", timeRange,
			"invalid time range format: %s. Expected %s", timeRange, constants.TimeRangeDisplay)
	}

	start, err = time.Parse(constants.TimeLayout, strings.TrimSpace(parts[0]))
	if err == nil {
		end, err = time.Parse(constants.TimeLayout, strings.TrimSpace(parts[1]))
	}
	if err != nil {
		return start, end, NewFieldError("time", timeRange, "invalid time format in range: %s", timeRange)
	}

	if !start.Before(end) {
		return start, end, NewFieldError("time", timeRange,
			"start time must be before end time: %s", timeRange)
	}
	return start, end, nil
}

// ValidateSchedulePeriod checks that (month, year) does not refer to a month
// before the current calendar month.
func ValidateSchedulePeriod(month Month, year int) error {
	return ValidateSchedulePeriodAt(month, year, time.Now())
}

// ValidateSchedulePeriodAt is ValidateSchedulePeriod with an explicit
// reference time.
func ValidateSchedulePeriodAt(month Month, year int, now time.Time) error {
	if !month.Valid() {
		return NewFieldError("month", fmt.Sprint(int(month)), "month must be between 1 and 12")
	}
	if err := ValidateYearAt(year, false, now); err != nil {
		return err
	}
	period := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	if period.Before(current) {
		return NewFieldError("period", fmt.Sprintf("%d/%d", month.Number(), year),
			"schedule period %d/%d is in the past", month.Number(), year)
	}
	return nil
}

// DateInMonth checks that a DD.MM.YYYY date falls inside the given month/year.
func DateInMonth(dateStr string, month Month, year int) error {
	t, err := ParseDate(dateStr)
	if err != nil {
		return err
	}
	if int(t.Month()) != month.Number() || t.Year() != year {
		return NewFieldError("date", dateStr,
			"date %s is not in %d/%d", dateStr, month.Number(), year)
	}
	return nil
}
