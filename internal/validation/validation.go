// Package validation checks schedule drafts before entities are built. It
// reuses the domain constructors as the single source of truth for the rules,
// collecting every problem instead of stopping at the first.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrtrc/schedule-dnd/internal/models"
)

// IssueType classifies a detected problem in a draft.
type IssueType string

const (
	IssueInvalidPeriod  IssueType = "invalid_period"
	IssueInvalidShift   IssueType = "invalid_shift"
	IssueInvalidUnit    IssueType = "invalid_unit"
	IssueDuplicateShift IssueType = "duplicate_shift"
	IssueDuplicateUnit  IssueType = "duplicate_unit"
	IssueEmptyUnit      IssueType = "empty_unit"
	IssueOverwrite      IssueType = "overwrite"
)

// Issue is one detected problem.
type Issue struct {
	Type        IssueType
	Description string
	Unit        string // unit name, if applicable
	Date        string // DD.MM.YYYY, if applicable
}

// Result contains everything found in a draft, split into hard errors and
// warnings the caller may choose to ignore.
type Result struct {
	Errors   []Issue
	Warnings []Issue
}

// IsValid reports whether the draft has no hard errors.
func (r *Result) IsValid() bool { return len(r.Errors) == 0 }

// FormatReport returns a human-readable report of all issues.
func (r *Result) FormatReport() string {
	if r.IsValid() && len(r.Warnings) == 0 {
		return "No problems detected."
	}

	var b strings.Builder
	if len(r.Errors) > 0 {
		b.WriteString("Errors:\n")
		for _, issue := range r.Errors {
			fmt.Fprintf(&b, "- %s\n", issue.Description)
		}
	}
	if len(r.Warnings) > 0 {
		b.WriteString("Warnings:\n")
		for _, issue := range r.Warnings {
			fmt.Fprintf(&b, "- %s\n", issue.Description)
		}
	}
	return b.String()
}

// ShiftDraft is raw shift input before domain validation.
type ShiftDraft struct {
	Date     string
	DutyType string
	Time     string
	Notes    string
}

// UnitDraft is raw unit input before domain validation.
type UnitDraft struct {
	UnitName string
	Shifts   []ShiftDraft
}

// ScheduleDraft is raw schedule input before domain validation.
type ScheduleDraft struct {
	Month Month
	Year  int
	Units []UnitDraft
}

// Month aliases the domain month so callers of this package can keep a single
// import for draft construction.
type Month = models.Month

// Checker validates schedule drafts.
type Checker struct {
	// Exists reports whether a schedule already exists for a period. May be
	// nil when overwrite detection is not wanted.
	Exists func(month models.Month, year int) bool
	// AllowPastDates accepts periods before the current month.
	AllowPastDates bool
	// MaxShifts caps shifts per unit; zero means the domain maximum applies.
	MaxShifts int
}

// New creates a Checker without overwrite detection.
func New() *Checker { return &Checker{} }

// CheckDraft validates a complete draft: the period, every unit and every
// shift. The duplicate-date and limit rules come from the Unit constructor
// itself, so this check can never drift from the entity invariants.
func (c *Checker) CheckDraft(draft ScheduleDraft) Result {
	var result Result

	if err := c.checkPeriod(draft.Month, draft.Year); err != nil {
		result.Errors = append(result.Errors, Issue{
			Type:        IssueInvalidPeriod,
			Description: err.Error(),
		})
	}

	seen := make(map[string]struct{}, len(draft.Units))
	for i, unitDraft := range draft.Units {
		if _, dup := seen[unitDraft.UnitName]; dup {
			result.Errors = append(result.Errors, Issue{
				Type:        IssueDuplicateUnit,
				Description: fmt.Sprintf("unit %q appears more than once", unitDraft.UnitName),
				Unit:        unitDraft.UnitName,
			})
			continue
		}
		seen[unitDraft.UnitName] = struct{}{}
		c.checkUnit(&result, i+1, unitDraft)
	}

	if c.Exists != nil && c.Exists(draft.Month, draft.Year) {
		result.Warnings = append(result.Warnings, Issue{
			Type: IssueOverwrite,
			Description: fmt.Sprintf("schedule for %s %d already exists and will be overwritten",
				draft.Month.DisplayName(), draft.Year),
		})
	}

	return result
}

// checkPeriod validates the month and year. Past periods are errors unless
// AllowPastDates is set, in which case only the year bounds apply.
func (c *Checker) checkPeriod(month models.Month, year int) error {
	if !c.AllowPastDates {
		return models.ValidateSchedulePeriod(month, year)
	}
	if !month.Valid() {
		return models.NewFieldError("month", fmt.Sprint(int(month)), "month must be between 1 and 12")
	}
	return models.ValidateYear(year, true)
}

func (c *Checker) checkUnit(result *Result, id int, draft UnitDraft) {
	if len(draft.Shifts) == 0 {
		result.Warnings = append(result.Warnings, Issue{
			Type:        IssueEmptyUnit,
			Description: fmt.Sprintf("no shifts defined for %s", draft.UnitName),
			Unit:        draft.UnitName,
		})
	}

	shifts := make([]models.Shift, 0, len(draft.Shifts))
	for _, sd := range draft.Shifts {
		dutyType, err := models.ParseDutyType(sd.DutyType)
		if err != nil {
			result.Errors = append(result.Errors, Issue{
				Type:        IssueInvalidShift,
				Description: fmt.Sprintf("%s: %v", draft.UnitName, err),
				Unit:        draft.UnitName,
				Date:        sd.Date,
			})
			continue
		}
		shift, err := models.NewShift(sd.Date, dutyType, sd.Time, sd.Notes)
		if err != nil {
			result.Errors = append(result.Errors, Issue{
				Type:        IssueInvalidShift,
				Description: fmt.Sprintf("%s: %v", draft.UnitName, err),
				Unit:        draft.UnitName,
				Date:        sd.Date,
			})
			continue
		}
		shifts = append(shifts, shift)
	}

	if c.MaxShifts > 0 && len(shifts) > c.MaxShifts {
		result.Errors = append(result.Errors, Issue{
			Type: IssueInvalidUnit,
			Description: fmt.Sprintf("%s: %d shifts exceed the limit of %d",
				draft.UnitName, len(shifts), c.MaxShifts),
			Unit: draft.UnitName,
		})
	}

	// The Unit constructor enforces name membership, the shift limit and
	// date uniqueness.
	if _, err := models.NewUnit(id, draft.UnitName, shifts); err != nil {
		issueType := IssueInvalidUnit
		var dup *models.DuplicateShiftError
		if errors.As(err, &dup) {
			issueType = IssueDuplicateShift
		}
		result.Errors = append(result.Errors, Issue{
			Type:        issueType,
			Description: err.Error(),
			Unit:        draft.UnitName,
		})
	}
}
