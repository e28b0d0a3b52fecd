package tui

import (
	"context"
	"errors"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Chedi19/res-appartement/internal/domain"
	"github.com/Chedi19/res-appartement/internal/service"
)

// viewMode enumerates the top-level screens.
type viewMode int

const (
	viewCalendar viewMode = iota
	viewList
	viewForm
	viewConfirmDelete
)

// doubleClickWindow is the maximum gap between two presses on the same
// day for the second to count as a double click.
const doubleClickWindow = 400 * time.Millisecond

// Model is the bubbletea model for the whole planner. All reservation
// state lives in the services; the model holds only presentation state
// and the gesture controller.
type Model struct {
	ctrl       *Controller
	store      *service.Reservations
	apartments *service.Apartments
	exporter   *service.Export
	log        *slog.Logger

	view        viewMode
	cursor      domain.Day
	selectedIdx int // which reservation on the cursor day, cycled with tab
	listIdx     int
	width       int
	height      int
	notice      string

	form         reservationForm
	deleteTarget domain.Reservation

	lastPressDay domain.Day
	lastPressAt  time.Time
	now          func() time.Time
}

// NewModel builds the program model positioned on today.
func NewModel(store *service.Reservations, apartments *service.Apartments, exporter *service.Export, log *slog.Logger) *Model {
	m := &Model{
		ctrl:       NewController(store),
		store:      store,
		apartments: apartments,
		exporter:   exporter,
		log:        log,
		cursor:     domain.DayOf(time.Now()),
		now:        time.Now,
	}
	if store.Degraded() {
		m.notice = "stored data could not be read; running on defaults until the next successful save"
	}
	return m
}

// Run starts the interactive program in the alternate screen with full
// mouse tracking, so press, motion, and release all reach the gesture
// machines.
func Run(m *Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.MouseMsg:
		if m.view == viewCalendar {
			return m.handleMouse(msg)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case viewForm:
			return m.handleFormKeys(msg)
		case viewConfirmDelete:
			return m.handleConfirmKeys(msg)
		case viewList:
			return m.handleListKeys(msg)
		default:
			return m.handleCalendarKeys(msg)
		}
	}

	return m, nil
}

func (m *Model) handleCalendarKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.ctrl.CancelGestures()
		m.notice = ""

	case "left":
		m.moveCursor(-1)
	case "right":
		m.moveCursor(1)
	case "up":
		m.moveCursor(-7)
	case "down":
		m.moveCursor(7)
	case "pgup":
		m.setCursor(addMonths(m.cursor, -1))
	case "pgdown":
		m.setCursor(addMonths(m.cursor, 1))
	case "t":
		m.setCursor(domain.DayOf(m.now()))

	case "tab":
		if on := m.reservationsOn(m.cursor); len(on) > 0 {
			m.selectedIdx = (m.selectedIdx + 1) % len(on)
		}
	case "shift+tab":
		if on := m.reservationsOn(m.cursor); len(on) > 0 {
			m.selectedIdx = (m.selectedIdx + len(on) - 1) % len(on)
		}

	case "enter", " ":
		if m.ctrl.Dragging() {
			m.commitDrag()
			return m, nil
		}
		if start, end, open := m.ctrl.DayClicked(m.cursor); open {
			m.openCreateForm(start, end)
		}

	case "m":
		if r, ok := m.selectedReservation(); ok {
			m.ctrl.ReservationPressed(r)
			m.notice = "move with arrows, enter to confirm, esc to cancel"
		}

	case "e":
		if r, ok := m.selectedReservation(); ok {
			m.openEditForm(r)
		}

	case "d", "backspace":
		if r, ok := m.selectedReservation(); ok {
			m.deleteTarget = r
			m.view = viewConfirmDelete
		}

	case "l":
		m.listIdx = 0
		m.view = viewList

	case "x":
		m.exportCSV()
	}

	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		day, ok := m.dayAt(msg.X, msg.Y)
		if !ok {
			return m, nil
		}
		m.setCursor(day)

		isDouble := day.Equal(m.lastPressDay) && m.now().Sub(m.lastPressAt) < doubleClickWindow
		m.lastPressDay = day
		m.lastPressAt = m.now()

		on := m.reservationsOn(day)
		if len(on) > 0 {
			if isDouble {
				m.ctrl.CancelGestures()
				m.openEditForm(on[0])
				return m, nil
			}
			m.ctrl.ReservationPressed(on[0])
			return m, nil
		}
		if start, end, open := m.ctrl.DayClicked(day); open {
			m.openCreateForm(start, end)
		}

	case msg.Action == tea.MouseActionMotion:
		if !m.ctrl.Dragging() {
			return m, nil
		}
		if day, ok := m.dayAt(msg.X, msg.Y); ok {
			m.setCursor(day)
			m.ctrl.PointerMoved(day)
		}

	case msg.Action == tea.MouseActionRelease:
		// Releasing stops live tracking but holds the proposal; commit
		// stays an explicit action (enter).
		m.ctrl.PointerReleased()
	}

	return m, nil
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	list := m.store.List()

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "l":
		m.view = viewCalendar
	case "up", "k":
		if m.listIdx > 0 {
			m.listIdx--
		}
	case "down", "j":
		if m.listIdx < len(list)-1 {
			m.listIdx++
		}
	case "enter", "e":
		if m.listIdx < len(list) {
			m.openEditForm(list[m.listIdx])
		}
	case "d", "backspace":
		if m.listIdx < len(list) {
			m.deleteTarget = list[m.listIdx]
			m.view = viewConfirmDelete
		}
	case "g":
		if m.listIdx < len(list) {
			m.setCursor(list[m.listIdx].StartDate)
			m.view = viewCalendar
		}
	case "x":
		m.exportCSV()
	}

	return m, nil
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		if err := m.ctrl.SubmitDelete(context.Background(), m.deleteTarget.ID); err != nil {
			m.fail("delete reservation", err)
		} else {
			m.notice = "deleted reservation for " + m.deleteTarget.ClientName
			m.selectedIdx = 0
		}
		m.deleteTarget = domain.Reservation{}
		m.view = viewCalendar
	case "n", "esc", "q":
		m.deleteTarget = domain.Reservation{}
		m.view = viewCalendar
	}
	return m, nil
}

// commitDrag applies the held drag proposal, keeping the gesture alive
// when the target range now conflicts.
func (m *Model) commitDrag() {
	updated, err := m.ctrl.CommitDrag(context.Background())
	if err != nil {
		m.fail("reschedule", err)
		return
	}
	m.setCursor(updated.StartDate)
	m.notice = "moved " + updated.ClientName + " to " + updated.StartDate.String()
}

func (m *Model) exportCSV() {
	path, err := m.exporter.WriteFile()
	if err != nil {
		m.fail("export", err)
		return
	}
	m.notice = "exported to " + path
	m.log.Info("export written", "path", path)
}

// fail turns an operation error into a user notice and a log line.
func (m *Model) fail(op string, err error) {
	m.log.Warn(op+" failed", "error", err)

	var conflict *domain.ConflictError
	switch {
	case errors.As(err, &conflict):
		m.notice = conflict.Error()
	case errors.Is(err, domain.ErrPersistence):
		m.notice = "could not save; change was not applied"
	case errors.Is(err, domain.ErrNotFound):
		m.notice = "reservation no longer exists"
	default:
		m.notice = err.Error()
	}
}

// moveCursor shifts the cursor by n days. While a drag is armed or
// previewing, cursor movement doubles as the pointer: the proposal
// follows the cursor.
func (m *Model) moveCursor(n int) {
	m.setCursor(m.cursor.AddDays(n))
}

func (m *Model) setCursor(day domain.Day) {
	m.cursor = day
	m.selectedIdx = 0
	if m.ctrl.Dragging() {
		m.ctrl.PointerMoved(day)
	}
}

// reservationsOn returns the reservations covering day, with a drag
// preview substituted for the dragged reservation's stored range.
func (m *Model) reservationsOn(day domain.Day) []domain.Reservation {
	var out []domain.Reservation
	for _, r := range m.effectiveList() {
		if domain.DayInRange(day, r.StartDate, r.EndDate) {
			out = append(out, r)
		}
	}
	return out
}

// effectiveList is the stored collection with the active drag preview
// overlaid: during a drag the proposed range is displayed, never the
// stored one, and the stored value stays untouched until commit.
func (m *Model) effectiveList() []domain.Reservation {
	list := m.store.List()
	start, end, ok := m.ctrl.DragPreview()
	if !ok {
		return list
	}
	origin, _ := m.ctrl.DragOrigin()
	for i, r := range list {
		if r.ID == origin.ID {
			list[i].StartDate = start
			list[i].EndDate = end
		}
	}
	return list
}

func (m *Model) selectedReservation() (domain.Reservation, bool) {
	on := m.reservationsOn(m.cursor)
	if len(on) == 0 {
		return domain.Reservation{}, false
	}
	if m.selectedIdx >= len(on) {
		m.selectedIdx = 0
	}
	return on[m.selectedIdx], true
}

// addMonths moves a day by whole months, clamping to the 1st so month
// navigation never skips a short month.
func addMonths(d domain.Day, n int) domain.Day {
	t := d.Time()
	return domain.NewDay(t.Year(), t.Month()+time.Month(n), 1)
}
