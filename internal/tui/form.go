package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Chedi19/res-appartement/internal/domain"
)

// formField indexes the focusable editor rows.
const (
	fieldClient = iota
	fieldApartment
	fieldStart
	fieldEnd
	fieldNotes
	fieldCount
)

// reservationForm is the create/edit editor. An empty editID means the
// form creates; otherwise it edits that reservation.
type reservationForm struct {
	client    textinput.Model
	start     textinput.Model
	end       textinput.Model
	notes     textinput.Model
	apartment int // index into the registry list
	focus     int
	editID    string
	errText   string
}

func newFormInput(placeholder string) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 120
	in.Width = 34
	return in
}

// openCreateForm opens the editor for a new reservation over the
// selected range, defaulting to the first apartment in the roster.
func (m *Model) openCreateForm(start, end domain.Day) {
	m.form = reservationForm{
		client: newFormInput("client name"),
		start:  newFormInput("YYYY-MM-DD"),
		end:    newFormInput("YYYY-MM-DD"),
		notes:  newFormInput("notes (optional)"),
	}
	m.form.start.SetValue(start.String())
	m.form.end.SetValue(end.String())
	m.form.client.Focus()
	m.view = viewForm
}

// openEditForm opens the editor populated from an existing reservation.
func (m *Model) openEditForm(r domain.Reservation) {
	m.openCreateForm(r.StartDate, r.EndDate)
	m.form.editID = r.ID
	m.form.client.SetValue(r.ClientName)
	m.form.notes.SetValue(r.Notes)
	for i, apt := range m.apartments.List() {
		if apt.Name == r.Apartment {
			m.form.apartment = i
			break
		}
	}
}

func (m *Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.view = viewCalendar
		return m, nil

	case "tab", "down":
		m.form.focus = (m.form.focus + 1) % fieldCount
		m.updateFormFocus()
		return m, nil

	case "shift+tab", "up":
		m.form.focus = (m.form.focus + fieldCount - 1) % fieldCount
		m.updateFormFocus()
		return m, nil

	case "left", "right":
		if m.form.focus == fieldApartment {
			n := len(m.apartments.List())
			if n > 0 {
				step := 1
				if msg.String() == "left" {
					step = n - 1
				}
				m.form.apartment = (m.form.apartment + step) % n
			}
			return m, nil
		}

	case "enter":
		if m.form.focus < fieldNotes {
			m.form.focus++
			m.updateFormFocus()
			return m, nil
		}
		m.submitForm()
		return m, nil

	case "ctrl+s":
		m.submitForm()
		return m, nil
	}

	var cmd tea.Cmd
	switch m.form.focus {
	case fieldClient:
		m.form.client, cmd = m.form.client.Update(msg)
	case fieldStart:
		m.form.start, cmd = m.form.start.Update(msg)
	case fieldEnd:
		m.form.end, cmd = m.form.end.Update(msg)
	case fieldNotes:
		m.form.notes, cmd = m.form.notes.Update(msg)
	}
	return m, cmd
}

func (m *Model) updateFormFocus() {
	m.form.client.Blur()
	m.form.start.Blur()
	m.form.end.Blur()
	m.form.notes.Blur()

	switch m.form.focus {
	case fieldClient:
		m.form.client.Focus()
	case fieldStart:
		m.form.start.Focus()
	case fieldEnd:
		m.form.end.Focus()
	case fieldNotes:
		m.form.notes.Focus()
	}
}

// submitForm parses and validates the editor fields, then routes to
// create or edit. Malformed dates and rule violations stay in the form
// with an inline error; conflicts close back to the calendar notice.
func (m *Model) submitForm() {
	start, err := domain.ParseDay(m.form.start.Value())
	if err != nil {
		m.form.errText = "start date: use YYYY-MM-DD"
		return
	}
	end, err := domain.ParseDay(m.form.end.Value())
	if err != nil {
		m.form.errText = "end date: use YYYY-MM-DD"
		return
	}

	apartments := m.apartments.List()
	if len(apartments) == 0 {
		m.form.errText = "no apartments configured"
		return
	}
	apartment := apartments[m.form.apartment%len(apartments)]

	ctx := context.Background()
	if m.form.editID == "" {
		draft := domain.Draft{
			Apartment:  apartment.Name,
			ClientName: m.form.client.Value(),
			StartDate:  start,
			EndDate:    end,
			Notes:      m.form.notes.Value(),
		}
		created, err := m.ctrl.SubmitCreate(ctx, draft)
		if err != nil {
			m.formError(err)
			return
		}
		m.notice = "created reservation for " + created.ClientName
		m.setCursor(created.StartDate)
	} else {
		client := m.form.client.Value()
		notes := m.form.notes.Value()
		changes := domain.Changes{
			Apartment:  &apartment.Name,
			ClientName: &client,
			StartDate:  &start,
			EndDate:    &end,
			Notes:      &notes,
		}
		updated, err := m.ctrl.SubmitEdit(ctx, m.form.editID, changes)
		if err != nil {
			m.formError(err)
			return
		}
		m.notice = "updated reservation for " + updated.ClientName
		m.setCursor(updated.StartDate)
	}

	m.view = viewCalendar
}

// formError keeps recoverable input errors inline; everything else
// falls back to the shared notice path.
func (m *Model) formError(err error) {
	m.fail("save reservation", err)
	m.form.errText = m.notice
	m.notice = ""
}
