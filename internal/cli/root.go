// Package cli implements the schedulednd commands.
package cli

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dmitrtrc/schedule-dnd/internal/config"
	"github.com/dmitrtrc/schedule-dnd/internal/models"
	"github.com/dmitrtrc/schedule-dnd/internal/service"
	"github.com/dmitrtrc/schedule-dnd/internal/storage"
)

// Context carries the shared dependencies into every command Run method.
type Context struct {
	Config    *config.Config
	Repo      storage.Repository
	Schedules *service.ScheduleService
	Exports   *service.ExportService
	Logger    *slog.Logger
}

var (
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	faintStyle = lipgloss.NewStyle().Faint(true)
	titleStyle = lipgloss.NewStyle().Bold(true)
)

func printOK(format string, args ...any) {
	fmt.Println(okStyle.Render("✓ " + fmt.Sprintf(format, args...)))
}

func printWarn(format string, args ...any) {
	fmt.Println(warnStyle.Render("⚠ " + fmt.Sprintf(format, args...)))
}

func printErr(format string, args ...any) {
	fmt.Println(errStyle.Render("✗ " + fmt.Sprintf(format, args...)))
}

// parsePeriod accepts "MM.YYYY", "month YYYY" (Russian month name) or
// "YYYY_MM" and returns the period.
func parsePeriod(s string) (models.Month, int, error) {
	s = strings.TrimSpace(s)

	if parts := strings.Split(s, "_"); len(parts) == 2 {
		year, errY := strconv.Atoi(parts[0])
		monthNum, errM := strconv.Atoi(parts[1])
		if errY == nil && errM == nil {
			month, err := models.MonthFromNumber(monthNum)
			if err != nil {
				return 0, 0, err
			}
			return month, year, nil
		}
	}

	if parts := strings.Split(s, "."); len(parts) == 2 {
		monthNum, errM := strconv.Atoi(parts[0])
		year, errY := strconv.Atoi(parts[1])
		if errM == nil && errY == nil {
			month, err := models.MonthFromNumber(monthNum)
			if err != nil {
				return 0, 0, err
			}
			return month, year, nil
		}
	}

	if parts := strings.Fields(s); len(parts) == 2 {
		month, errM := models.ParseMonth(parts[0])
		year, errY := strconv.Atoi(parts[1])
		if errM == nil && errY == nil {
			return month, year, nil
		}
	}

	return 0, 0, fmt.Errorf("invalid period %q: expected MM.YYYY, YYYY_MM or a month name with a year", s)
}
