// Package tui is an interactive browser over the stored schedules: a list
// of documents, and a per-document shift view.
package tui

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dmitrtrc/schedule-dnd/internal/models"
	"github.com/dmitrtrc/schedule-dnd/internal/service"
	"github.com/dmitrtrc/schedule-dnd/internal/storage"
)

type view int

const (
	viewList view = iota
	viewShifts
)

var (
	baseStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))
	titleStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	helpStyle  = lipgloss.NewStyle().Faint(true).Padding(0, 1)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Padding(0, 1)
)

// Model drives the schedule browser.
type Model struct {
	schedules *service.ScheduleService

	view     view
	list     table.Model
	shifts   table.Model
	infos    []storage.ScheduleInfo
	selected models.Schedule
	err      error
}

func NewModel(schedules *service.ScheduleService) *Model {
	listTable := table.New(
		table.WithColumns([]table.Column{
			{Title: "Файл", Width: 28},
			{Title: "Период", Width: 18},
			{Title: "Подразделений", Width: 14},
			{Title: "Дежурств", Width: 10},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	listTable.SetStyles(tableStyles())

	shiftTable := table.New(
		table.WithColumns([]table.Column{
			{Title: "Подразделение", Width: 34},
			{Title: "Дата", Width: 12},
			{Title: "День", Width: 12},
			{Title: "Тип", Width: 6},
			{Title: "Время", Width: 13},
		}),
		table.WithFocused(true),
		table.WithHeight(16),
	)
	shiftTable.SetStyles(tableStyles())

	return &Model{
		schedules: schedules,
		view:      viewList,
		list:      listTable,
		shifts:    shiftTable,
	}
}

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	return s
}

type schedulesLoadedMsg struct {
	infos []storage.ScheduleInfo
	err   error
}

type scheduleOpenedMsg struct {
	schedule models.Schedule
	err      error
}

func (m *Model) Init() tea.Cmd {
	return m.loadSchedules
}

func (m *Model) loadSchedules() tea.Msg {
	infos, err := m.schedules.List()
	return schedulesLoadedMsg{infos: infos, err: err}
}

func (m *Model) openSelected() tea.Cmd {
	cursor := m.list.Cursor()
	if cursor < 0 || cursor >= len(m.infos) {
		return nil
	}
	path := m.infos[cursor].Path
	return func() tea.Msg {
		schedule, err := m.schedules.Get(path)
		return scheduleOpenedMsg{schedule: schedule, err: err}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case schedulesLoadedMsg:
		m.err = msg.err
		m.infos = msg.infos
		rows := make([]table.Row, 0, len(msg.infos))
		for _, info := range msg.infos {
			rows = append(rows, table.Row{
				filepath.Base(info.Path),
				fmt.Sprintf("%s %d", info.Month, info.Year),
				fmt.Sprintf("%d", info.UnitCount),
				fmt.Sprintf("%d", info.TotalShifts),
			})
		}
		m.list.SetRows(rows)
		return m, nil

	case scheduleOpenedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.selected = msg.schedule
		rows := make([]table.Row, 0, msg.schedule.TotalShifts())
		for _, unit := range msg.schedule.Units {
			for _, shift := range unit.ShiftsSorted() {
				rows = append(rows, table.Row{
					unit.UnitName,
					shift.Date,
					shift.DayOfWeek(),
					string(shift.DutyType),
					shift.Time,
				})
			}
		}
		m.shifts.SetRows(rows)
		m.shifts.SetCursor(0)
		m.view = viewShifts
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "enter":
			if m.view == viewList {
				return m, m.openSelected()
			}
		case "esc":
			if m.view == viewShifts {
				m.view = viewList
				return m, nil
			}
			return m, tea.Quit
		case "r":
			if m.view == viewList {
				return m, m.loadSchedules
			}
		}
	}

	var cmd tea.Cmd
	if m.view == viewList {
		m.list, cmd = m.list.Update(msg)
	} else {
		m.shifts, cmd = m.shifts.Update(msg)
	}
	return m, cmd
}

func (m *Model) View() string {
	var title, help, body string
	switch m.view {
	case viewList:
		title = "Графики дежурств ДНД"
		help = "enter: открыть • r: обновить • q: выход"
		body = baseStyle.Render(m.list.View())
	case viewShifts:
		title = m.selected.Metadata.PeriodString()
		help = "esc: назад • q: выход"
		body = baseStyle.Render(m.shifts.View())
	}

	out := titleStyle.Render(title) + "\n" + body + "\n" + helpStyle.Render(help)
	if m.err != nil {
		out += "\n" + errorStyle.Render(m.err.Error())
	}
	return out
}
