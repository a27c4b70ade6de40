package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DutyType is a category of patrol duty. Values are the official Russian
// abbreviations.
type DutyType string

const (
	DutyPDN  DutyType = "ПДН"  // подразделение по делам несовершеннолетних
	DutyPPSP DutyType = "ППСП" // патрульно-постовая служба полиции
	DutyUUP  DutyType = "УУП"  // участковые уполномоченные полиции
)

// DutyTypes lists all duty types in declaration order.
func DutyTypes() []DutyType {
	return []DutyType{DutyPDN, DutyPPSP, DutyUUP}
}

// dutyAliases maps Latin code names to duty types, accepted alongside the
// canonical Cyrillic values.
var dutyAliases = map[string]DutyType{
	"PDN":  DutyPDN,
	"PPSP": DutyPPSP,
	"UUP":  DutyUUP,
}

// ParseDutyType converts a string into a DutyType. Matching is trimmed and
// case-insensitive, and accepts both the Cyrillic value and the Latin alias.
func ParseDutyType(s string) (DutyType, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	for _, dt := range DutyTypes() {
		if string(dt) == v {
			return dt, nil
		}
	}
	if dt, ok := dutyAliases[v]; ok {
		return dt, nil
	}
	valid := make([]string, 0, 3)
	for _, dt := range DutyTypes() {
		valid = append(valid, string(dt))
	}
	return "", NewFieldError("duty_type", s,
		"invalid duty type: %s. Valid types: %s", s, strings.Join(valid, ", "))
}

func (d DutyType) String() string { return string(d) }

// Valid reports whether d is one of the known duty types.
func (d DutyType) Valid() bool {
	switch d {
	case DutyPDN, DutyPPSP, DutyUUP:
		return true
	}
	return false
}

// UnmarshalJSON validates the duty type on decode.
func (d *DutyType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	dt, err := ParseDutyType(s)
	if err != nil {
		return err
	}
	*d = dt
	return nil
}

// Month is a calendar month, 1..12.
type Month int

const (
	January Month = iota + 1
	February
	March
	April
	May
	June
	July
	August
	September
	October
	November
	December
)

// monthNames holds lowercase Russian month names indexed by Month-1.
var monthNames = [12]string{
	"январь", "февраль", "март", "апрель", "май", "июнь",
	"июль", "август", "сентябрь", "октябрь", "ноябрь", "декабрь",
}

// ParseMonth converts a Russian month name into a Month. Matching is trimmed
// and case-insensitive.
func ParseMonth(s string) (Month, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	for i, name := range monthNames {
		if name == v {
			return Month(i + 1), nil
		}
	}
	return 0, NewFieldError("month", s,
		"invalid month: %s. Valid months: %s", s, strings.Join(monthNames[:], ", "))
}

// MonthFromNumber converts a month number (1-12) into a Month.
func MonthFromNumber(n int) (Month, error) {
	if n < 1 || n > 12 {
		return 0, NewFieldError("month", fmt.Sprint(n),
			"month number must be between 1 and 12, got %d", n)
	}
	return Month(n), nil
}

// Number returns the month number, 1 for January through 12 for December.
func (m Month) Number() int { return int(m) }

// Valid reports whether m is in 1..12.
func (m Month) Valid() bool { return m >= January && m <= December }

// Name returns the lowercase Russian month name.
func (m Month) Name() string {
	if !m.Valid() {
		return ""
	}
	return monthNames[m-1]
}

// DisplayName returns the capitalized Russian month name as written in
// document headers.
func (m Month) DisplayName() string {
	name := m.Name()
	if name == "" {
		return ""
	}
	r := []rune(name)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}

func (m Month) String() string { return m.Name() }

// MarshalJSON writes the capitalized Russian name, matching the on-disk
// document format.
func (m Month) MarshalJSON() ([]byte, error) {
	if !m.Valid() {
		return nil, NewFieldError("month", fmt.Sprint(int(m)), "invalid month number: %d", int(m))
	}
	return json.Marshal(m.DisplayName())
}

// UnmarshalJSON parses a Russian month name in any case.
func (m *Month) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseMonth(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ExportFormat identifies one of the supported export targets.
type ExportFormat string

const (
	FormatJSON     ExportFormat = "json"
	FormatExcel    ExportFormat = "excel"
	FormatCSV      ExportFormat = "csv"
	FormatMarkdown ExportFormat = "markdown"
	FormatHTML     ExportFormat = "html"
)

// ExportFormats lists all supported formats in dispatch order.
func ExportFormats() []ExportFormat {
	return []ExportFormat{FormatJSON, FormatExcel, FormatCSV, FormatMarkdown, FormatHTML}
}

// ParseExportFormat converts a string into an ExportFormat. Matching is
// trimmed and case-insensitive.
func ParseExportFormat(s string) (ExportFormat, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	for _, f := range ExportFormats() {
		if string(f) == v {
			return f, nil
		}
	}
	supported := make([]string, 0, 5)
	for _, f := range ExportFormats() {
		supported = append(supported, string(f))
	}
	return "", &UnsupportedFormatError{Format: s, Supported: supported}
}

// Extension returns the file extension for the format, without a dot.
func (f ExportFormat) Extension() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatExcel:
		return "xlsx"
	case FormatCSV:
		return "csv"
	case FormatMarkdown:
		return "md"
	case FormatHTML:
		return "html"
	}
	return ""
}

func (f ExportFormat) String() string { return string(f) }
