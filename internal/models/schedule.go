package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrtrc/schedule-dnd/internal/constants"
)

// ScheduleMetadata is the descriptive header of one month's schedule.
type ScheduleMetadata struct {
	DocumentType string    `json:"document_type"`
	Month        Month     `json:"month"`
	Year         int       `json:"year"`
	CreatedAt    time.Time `json:"created_at"`
	CreatedBy    string    `json:"created_by"`
	Source       *string   `json:"source"`
	Signatory    *string   `json:"signatory"`
	Note         *string   `json:"note"`
	Version      string    `json:"version,omitempty"`
}

// NewScheduleMetadata builds a validated metadata header. The document type
// tag, creation timestamp and standard source/signatory/note are filled in.
func NewScheduleMetadata(month Month, year int, createdBy string) (ScheduleMetadata, error) {
	source := constants.DocumentSource
	signatory := constants.DocumentSignatory
	note := constants.DocumentNote
	m := ScheduleMetadata{
		DocumentType: constants.DocumentType,
		Month:        month,
		Year:         year,
		CreatedAt:    time.Now(),
		CreatedBy:    createdBy,
		Source:       &source,
		Signatory:    &signatory,
		Note:         &note,
	}
	if err := m.validate(); err != nil {
		return ScheduleMetadata{}, err
	}
	return m, nil
}

func (m *ScheduleMetadata) validate() error {
	if !m.Month.Valid() {
		return NewFieldError("month", fmt.Sprint(int(m.Month)), "month must be between 1 and 12")
	}
	if m.Year < 2020 || m.Year > 2100 {
		return NewFieldError("year", fmt.Sprint(m.Year), "year must be between 2020 and 2100")
	}
	return nil
}

// PeriodString returns the human-readable period, e.g. "Октябрь 2025".
func (m ScheduleMetadata) PeriodString() string {
	return fmt.Sprintf("%s %d", m.Month.DisplayName(), m.Year)
}

// UnmarshalJSON re-validates the header on decode.
func (m *ScheduleMetadata) UnmarshalJSON(data []byte) error {
	type alias ScheduleMetadata
	var raw alias
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.DocumentType == "" {
		raw.DocumentType = constants.DocumentType
	}
	*m = ScheduleMetadata(raw)
	return m.validate()
}

// Schedule is the aggregate root: one metadata header plus up to eight units.
type Schedule struct {
	Metadata ScheduleMetadata `json:"metadata"`
	Units    []Unit           `json:"schedule"`
}

// NewSchedule builds a validated Schedule.
func NewSchedule(metadata ScheduleMetadata, units []Unit) (Schedule, error) {
	s := Schedule{Metadata: metadata, Units: units}
	if err := s.validate(); err != nil {
		return Schedule{}, err
	}
	return s, nil
}

func (s *Schedule) validate() error {
	ids := make(map[int]struct{}, len(s.Units))
	names := make(map[string]struct{}, len(s.Units))
	for _, u := range s.Units {
		if _, dup := ids[u.ID]; dup {
			return NewRuleError("duplicate unit id: %d", u.ID)
		}
		if _, dup := names[u.UnitName]; dup {
			return NewRuleError("duplicate unit name: %s", u.UnitName)
		}
		ids[u.ID] = struct{}{}
		names[u.UnitName] = struct{}{}
	}
	return nil
}

// AddUnit appends a unit, rejecting duplicates by id or name.
func (s *Schedule) AddUnit(unit Unit) error {
	if _, ok := s.UnitByID(unit.ID); ok {
		return NewRuleError("unit with id %d already exists", unit.ID)
	}
	if _, ok := s.UnitByName(unit.UnitName); ok {
		return NewRuleError("unit with name %s already exists", unit.UnitName)
	}
	s.Units = append(s.Units, unit)
	return nil
}

// UnitByID returns a pointer to the unit with the given id, if present.
func (s *Schedule) UnitByID(id int) (*Unit, bool) {
	for i := range s.Units {
		if s.Units[i].ID == id {
			return &s.Units[i], true
		}
	}
	return nil, false
}

// UnitByName returns a pointer to the unit with the given name, if present.
func (s *Schedule) UnitByName(name string) (*Unit, bool) {
	for i := range s.Units {
		if s.Units[i].UnitName == name {
			return &s.Units[i], true
		}
	}
	return nil, false
}

// TotalShifts counts shifts across all units.
func (s Schedule) TotalShifts() int {
	total := 0
	for _, u := range s.Units {
		total += len(u.Shifts)
	}
	return total
}

// UnitsWithShifts returns only the units holding at least one shift.
func (s Schedule) UnitsWithShifts() []Unit {
	var out []Unit
	for _, u := range s.Units {
		if len(u.Shifts) > 0 {
			out = append(out, u)
		}
	}
	return out
}

// ShiftsByType counts shifts per duty type across all units.
func (s Schedule) ShiftsByType() map[DutyType]int {
	result := make(map[DutyType]int)
	for _, u := range s.Units {
		for _, sh := range u.Shifts {
			result[sh.DutyType]++
		}
	}
	return result
}

// Filename returns the canonical file name for the schedule,
// schedule_<year>_<month>.json.
func (s Schedule) Filename() string {
	return fmt.Sprintf("schedule_%d_%02d.json", s.Metadata.Year, s.Metadata.Month.Number())
}

func (s Schedule) String() string {
	return fmt.Sprintf("Schedule for %s: %d shifts across %d units",
		s.Metadata.PeriodString(), s.TotalShifts(), len(s.UnitsWithShifts()))
}

// UnmarshalJSON re-validates schedule-level invariants on decode. Units and
// shifts validate themselves.
func (s *Schedule) UnmarshalJSON(data []byte) error {
	type alias Schedule
	var raw alias
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = Schedule(raw)
	return s.validate()
}
