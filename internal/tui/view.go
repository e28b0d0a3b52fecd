package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Chedi19/res-appartement/internal/domain"
)

// Grid geometry. dayAt relies on these matching the render exactly:
// the title and weekday header occupy the first two rows, then one row
// per calendar week, each day cell cellW terminal columns wide.
const (
	gridLeft   = 1
	cellW      = 5
	headerRows = 2
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).MarginLeft(gridLeft)
	weekdayStyle  = lipgloss.NewStyle().Faint(true)
	cursorStyle   = lipgloss.NewStyle().Reverse(true)
	anchorStyle   = lipgloss.NewStyle().Underline(true).Bold(true)
	previewStyle  = lipgloss.NewStyle().Underline(true)
	noticeStyle   = lipgloss.NewStyle().Bold(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#d64545")).Bold(true)
)

func (m *Model) View() string {
	switch m.view {
	case viewList:
		return m.renderListView()
	case viewForm:
		return m.renderFormView()
	case viewConfirmDelete:
		return m.renderConfirmView()
	default:
		return m.renderCalendarView()
	}
}

// ---- calendar --------------------------------------------------------------

func (m *Model) renderCalendarView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.cursor.Time().Format("January 2006")))
	b.WriteString("\n")

	b.WriteString(strings.Repeat(" ", gridLeft))
	for _, wd := range []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"} {
		b.WriteString(weekdayStyle.Render(padCell(wd)))
	}
	b.WriteString("\n")

	first := monthStart(m.cursor)
	offset := mondayIndex(first)
	total := daysInMonth(m.cursor)

	cell := -offset // day-of-month index, 0-based; negative while padding
	for cell < total {
		b.WriteString(strings.Repeat(" ", gridLeft))
		for col := 0; col < 7; col++ {
			if cell < 0 || cell >= total {
				b.WriteString(padCell(""))
			} else {
				day := first.AddDays(cell)
				b.WriteString(m.renderDayCell(day))
			}
			cell++
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderLegend())
	b.WriteString("\n")
	b.WriteString(m.renderDayPanel())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	return b.String()
}

func (m *Model) renderDayCell(day domain.Day) string {
	text := fmt.Sprintf(" %2d  ", day.Time().Day())

	style := lipgloss.NewStyle()
	if on := m.reservationsOn(day); len(on) > 0 {
		style = style.Foreground(lipgloss.Color(on[0].Color)).Bold(true)
		if start, end, ok := m.ctrl.DragPreview(); ok {
			origin, _ := m.ctrl.DragOrigin()
			if on[0].ID == origin.ID && domain.DayInRange(day, start, end) {
				style = style.Inherit(previewStyle)
			}
		}
	}
	if anchor, ok := m.ctrl.SelectionAnchor(); ok && anchor.Equal(day) {
		style = style.Inherit(anchorStyle)
	}
	if day.Equal(m.cursor) {
		style = style.Inherit(cursorStyle)
	}
	return style.Render(text)
}

func (m *Model) renderLegend() string {
	var parts []string
	for _, apt := range m.apartments.List() {
		sw := lipgloss.NewStyle().Foreground(lipgloss.Color(apt.Color)).Render("■")
		parts = append(parts, sw+" "+apt.Name)
	}
	return strings.Repeat(" ", gridLeft) + helpStyle.Render(strings.Join(parts, "   "))
}

// renderDayPanel lists the reservations covering the cursor day, with
// the tab-selected one highlighted.
func (m *Model) renderDayPanel() string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", gridLeft))
	b.WriteString(noticeStyle.Render(m.cursor.String()))
	b.WriteString("\n")

	on := m.reservationsOn(m.cursor)
	if len(on) == 0 {
		b.WriteString(strings.Repeat(" ", gridLeft))
		b.WriteString(helpStyle.Render("no reservations; enter twice on two days to create one"))
		b.WriteString("\n")
		return b.String()
	}

	for i, r := range on {
		line := fmt.Sprintf("%s  %s  %s to %s", r.Apartment, r.ClientName, r.StartDate, r.EndDate)
		if r.Notes != "" {
			line += "  (" + r.Notes + ")"
		}
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(r.Color))
		if i == m.selectedIdx {
			style = style.Inherit(selectedStyle)
		}
		b.WriteString(strings.Repeat(" ", gridLeft))
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) statusLine() string {
	if m.notice != "" {
		return strings.Repeat(" ", gridLeft) + noticeStyle.Render(m.notice)
	}
	help := "arrows move · enter select/commit · m move · e edit · d delete · l list · x export · q quit"
	return strings.Repeat(" ", gridLeft) + helpStyle.Render(help)
}

// dayAt maps a terminal coordinate to the calendar day rendered there.
func (m *Model) dayAt(x, y int) (domain.Day, bool) {
	row := y - headerRows
	col := (x - gridLeft) / cellW
	if row < 0 || col < 0 || col > 6 || x < gridLeft {
		return domain.Day{}, false
	}

	first := monthStart(m.cursor)
	idx := row*7 + col - mondayIndex(first)
	if idx < 0 || idx >= daysInMonth(m.cursor) {
		return domain.Day{}, false
	}
	return first.AddDays(idx), true
}

// ---- list ------------------------------------------------------------------

func (m *Model) renderListView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Reservations"))
	b.WriteString("\n\n")

	list := m.store.List()
	if len(list) == 0 {
		b.WriteString(helpStyle.Render(" no reservations yet"))
		b.WriteString("\n")
	}
	for i, r := range list {
		line := fmt.Sprintf(" %-14s %-18s %s to %s  %2d nights",
			r.Apartment, r.ClientName, r.StartDate, r.EndDate, r.Nights())
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(r.Color))
		if i == m.listIdx {
			style = style.Inherit(selectedStyle)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(noticeStyle.Render(" " + m.notice))
	} else {
		b.WriteString(helpStyle.Render(" enter edit · d delete · g go to date · x export · esc back"))
	}
	return b.String()
}

// ---- form ------------------------------------------------------------------

func (m *Model) renderFormView() string {
	title := "New reservation"
	if m.form.editID != "" {
		title = "Edit reservation"
	}

	apartments := m.apartments.List()
	aptName := ""
	if len(apartments) > 0 {
		apt := apartments[m.form.apartment%len(apartments)]
		sw := lipgloss.NewStyle().Foreground(lipgloss.Color(apt.Color)).Render("■")
		aptName = sw + " " + apt.Name
	}

	rows := []struct {
		label string
		body  string
		field int
	}{
		{"Client", m.form.client.View(), fieldClient},
		{"Apartment", aptName + helpStyle.Render("  (left/right to change)"), fieldApartment},
		{"Start", m.form.start.View(), fieldStart},
		{"End", m.form.end.View(), fieldEnd},
		{"Notes", m.form.notes.View(), fieldNotes},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")
	for _, row := range rows {
		marker := "  "
		if m.form.focus == row.field {
			marker = "> "
		}
		b.WriteString(fmt.Sprintf(" %s%-10s %s\n", marker, row.label, row.body))
	}

	b.WriteString("\n")
	if m.form.errText != "" {
		b.WriteString(errStyle.Render(" " + m.form.errText))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(" tab next field · enter submit · esc cancel"))
	return b.String()
}

// ---- confirm ---------------------------------------------------------------

func (m *Model) renderConfirmView() string {
	r := m.deleteTarget
	var b strings.Builder
	b.WriteString(titleStyle.Render("Delete reservation?"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf(" %s  %s  %s to %s\n", r.Apartment, r.ClientName, r.StartDate, r.EndDate))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(" y delete · n keep"))
	return b.String()
}

// ---- date helpers ----------------------------------------------------------

func monthStart(d domain.Day) domain.Day {
	t := d.Time()
	return domain.NewDay(t.Year(), t.Month(), 1)
}

// mondayIndex returns the Monday-based weekday column (0-6) of a day.
func mondayIndex(d domain.Day) int {
	return (int(d.Time().Weekday()) + 6) % 7
}

func daysInMonth(d domain.Day) int {
	t := d.Time()
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func padCell(s string) string {
	return fmt.Sprintf(" %-4s", s)
}
