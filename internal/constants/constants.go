package constants

// Units is the closed set of official DND unit names. Unit names anywhere
// else in the program must be members of this list.
var Units = [8]string{
	"ДНД «Всеволожский дозор»",
	"ДНД «Заневское ГП»",
	"ДНД «Правопорядок Лукоморье»",
	"ДНД «Колтушский патруль»",
	"ДНД «Новодевяткинское СП»",
	"ДНД «Русич»",
	"ДНД «Сертоловское ГП»",
	"ДНД «Северный оплот»",
}

const (
	DefaultShiftTime = "18:00-22:00"
	DefaultShiftNote = "Получение инструкций в ОП. Время: 17:30"
)

// Canonical date/time layouts (Go reference time).
const (
	DateLayout        = "02.01.2006"
	DateLayoutDisplay = "DD.MM.YYYY"
	TimeLayout        = "15:04"
	TimeRangeDisplay  = "HH:MM-HH:MM"
)

const (
	MaxYearOffset     = 5  // schedules at most 5 years in the future
	PastYearWindow    = 10 // how far back a year may lie when past dates are allowed
	MaxUnitsPerRoster = 8
	MaxShiftsPerUnit  = 50
)

// Document metadata defaults carried into new schedules.
const (
	DocumentType      = "patrol_schedule"
	DocumentSource    = "УМВД России по Всеволожскому району ЛО"
	DocumentSignatory = "Начальник УМВД, полковник полиции С.В. Колонистов"
	DocumentNote      = "На основе поступающей информации об оперативной обстановке " +
		"могут быть внесены корректировы в график выхода народных дружин."
)

const (
	AppName    = "schedulednd"
	AppVersion = "2.0.0"
)

// IsValidUnit reports whether name is one of the official unit names.
func IsValidUnit(name string) bool {
	for _, u := range Units {
		if u == name {
			return true
		}
	}
	return false
}

// UnitByIndex returns the unit name at the zero-based index, or "" if out of range.
func UnitByIndex(i int) string {
	if i < 0 || i >= len(Units) {
		return ""
	}
	return Units[i]
}
