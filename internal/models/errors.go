package models

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for broad classification. Typed errors below unwrap to one
// of these so callers can branch with errors.Is without knowing the concrete
// type.
var (
	ErrValidation    = errors.New("validation error")
	ErrBusinessRule  = errors.New("business rule violation")
	ErrData          = errors.New("data error")
	ErrFileSystem    = errors.New("file system error")
	ErrExport        = errors.New("export error")
	ErrConfiguration = errors.New("configuration error")
)

// FieldError reports a value that failed validation, carrying the offending
// field and value.
type FieldError struct {
	Field string
	Value string
	Msg   string
}

func (e *FieldError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s (field=%s, value=%q)", e.Msg, e.Field, e.Value)
}

func (e *FieldError) Unwrap() error { return ErrValidation }

// NewFieldError builds a FieldError.
func NewFieldError(field, value, format string, args ...any) *FieldError {
	return &FieldError{Field: field, Value: value, Msg: fmt.Sprintf(format, args...)}
}

// DuplicateShiftError is raised when a unit already holds a shift on a date.
type DuplicateShiftError struct {
	UnitName string
	Date     string
	// ExistingDutyType is the duty type of the conflicting shift, if known.
	ExistingDutyType string
}

func (e *DuplicateShiftError) Error() string {
	msg := fmt.Sprintf("shift already exists for %s on %s", e.UnitName, e.Date)
	if e.ExistingDutyType != "" {
		msg += fmt.Sprintf(" (type: %s)", e.ExistingDutyType)
	}
	return msg
}

func (e *DuplicateShiftError) Unwrap() error { return ErrBusinessRule }

// ShiftLimitError is raised when a unit would exceed its shift limit.
type ShiftLimitError struct {
	UnitName string
	Limit    int
	Current  int
}

func (e *ShiftLimitError) Error() string {
	return fmt.Sprintf("shift limit exceeded for %s: %d/%d", e.UnitName, e.Current, e.Limit)
}

func (e *ShiftLimitError) Unwrap() error { return ErrBusinessRule }

// RuleError is a business-rule violation that has no dedicated type.
type RuleError struct {
	Msg string
}

func (e *RuleError) Error() string { return e.Msg }

func (e *RuleError) Unwrap() error { return ErrBusinessRule }

// NewRuleError builds a RuleError.
func NewRuleError(format string, args ...any) *RuleError {
	return &RuleError{Msg: fmt.Sprintf(format, args...)}
}

// ScheduleNotFoundError reports a missing schedule.
type ScheduleNotFoundError struct {
	Identifier string
}

func (e *ScheduleNotFoundError) Error() string {
	return fmt.Sprintf("schedule not found: %s", e.Identifier)
}

func (e *ScheduleNotFoundError) Unwrap() error { return ErrData }

// UnitNotFoundError reports an unknown unit name.
type UnitNotFoundError struct {
	UnitName string
}

func (e *UnitNotFoundError) Error() string {
	return fmt.Sprintf("unit not found: %s", e.UnitName)
}

func (e *UnitNotFoundError) Unwrap() error { return ErrData }

// SerializationError reports a failed encode/decode of persisted data.
type SerializationError struct {
	Format string
	Reason string
	Err    error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("failed to serialize/deserialize %s: %s", e.Format, e.Reason)
}

func (e *SerializationError) Unwrap() error { return ErrData }

// FSError wraps an underlying I/O failure with the attempted path and
// operation name.
type FSError struct {
	Op   string
	Path string
	Err  error
}

func (e *FSError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FSError) Unwrap() error { return ErrFileSystem }

// FileNotFoundError reports a missing file.
type FileNotFoundError struct {
	Path string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("file not found: %s", e.Path)
}

func (e *FileNotFoundError) Unwrap() error { return ErrFileSystem }

// FilePermissionError reports a denied file operation.
type FilePermissionError struct {
	Path string
	Op   string
}

func (e *FilePermissionError) Error() string {
	return fmt.Sprintf("permission denied for %s operation: %s", e.Op, e.Path)
}

func (e *FilePermissionError) Unwrap() error { return ErrFileSystem }

// UnsupportedFormatError reports an export format the dispatch does not know,
// listing the formats that are supported.
type UnsupportedFormatError struct {
	Format    string
	Supported []string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported export format: %s. Supported: %s",
		e.Format, strings.Join(e.Supported, ", "))
}

func (e *UnsupportedFormatError) Unwrap() error { return ErrExport }

// ExportFailedError reports a failed export operation for one format.
type ExportFailedError struct {
	Format string
	Reason string
	Err    error
}

func (e *ExportFailedError) Error() string {
	return fmt.Sprintf("failed to export to %s: %s", e.Format, e.Reason)
}

func (e *ExportFailedError) Unwrap() error { return ErrExport }
