package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"ticketboard/internal/models"
)

// ticketList is the list view's own UI state; the tickets themselves
// come from the container snapshot on every render.
type ticketList struct {
	cursor        int
	confirmDelete string // id awaiting a second d
	searching     bool
	query         textinput.Model
	activeQuery   string
}

func (l *ticketList) clamp(n int) {
	if l.cursor >= n {
		l.cursor = n - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
}

func (m Model) selected() (models.Ticket, bool) {
	ts := m.deps.Tickets.Snapshot().Tickets
	if len(ts) == 0 {
		return models.Ticket{}, false
	}
	m.list.clamp(len(ts))
	return ts[m.list.cursor], true
}

func (m Model) handleTicketResult(msg ticketsMsg) (tea.Model, tea.Cmd) {
	if m.route == RouteLogin {
		return m, nil
	}
	view := m.deps.Tickets.Snapshot()
	switch msg.op {
	case opCreate, opUpdate:
		if !msg.ok {
			m.editor.form.err = view.Error
			return m, nil
		}
		if msg.op == opCreate {
			m.list.cursor = 0
			m.flash = "ticket created"
		} else {
			m.flash = "ticket updated"
		}
		m.route = RouteTickets
	case opDelete:
		if msg.ok {
			m.flash = "ticket deleted"
		}
	}
	m.list.clamp(len(view.Tickets))
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.list.searching {
		return m.updateSearch(msg)
	}
	pendingDelete := m.list.confirmDelete
	m.list.confirmDelete = ""
	m.flash = ""
	tickets := m.deps.Tickets

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.list.cursor--
		m.list.clamp(len(tickets.Snapshot().Tickets))
	case key.Matches(msg, m.keys.Down):
		m.list.cursor++
		m.list.clamp(len(tickets.Snapshot().Tickets))
	case key.Matches(msg, m.keys.New):
		tickets.ClearError()
		return m.navigate(RouteNewTicket)
	case key.Matches(msg, m.keys.Edit):
		t, ok := m.selected()
		if !ok {
			return m, nil
		}
		tickets.ClearError()
		m.route = RouteEditTicket
		m.editor = newTicketEditor(&t)
	case key.Matches(msg, m.keys.Delete):
		t, ok := m.selected()
		if !ok {
			return m, nil
		}
		if pendingDelete != t.ID {
			m.list.confirmDelete = t.ID
			m.flash = fmt.Sprintf("press d again to delete %q", t.Title)
			return m, nil
		}
		m.busy = true
		return m, ticketCmd(opDelete, func() bool { return tickets.Delete(m.deps.Context, t.ID) })
	case key.Matches(msg, m.keys.Status):
		t, ok := m.selected()
		if !ok {
			return m, nil
		}
		next := t.Status.Next()
		m.busy = true
		return m, ticketCmd(opUpdate, func() bool {
			_, ok := tickets.Update(m.deps.Context, t.ID, models.TicketPatch{Status: &next})
			return ok
		})
	case key.Matches(msg, m.keys.Search):
		m.list.searching = true
		m.list.query = textinput.New()
		m.list.query.Prompt = "/ "
		m.list.query.Cursor.SetMode(cursor.CursorStatic)
		m.list.query.SetValue(m.list.activeQuery)
		m.list.query.Focus()
	case key.Matches(msg, m.keys.Refresh):
		m.list.activeQuery = ""
		m.busy = true
		return m, ticketCmd(opFetch, func() bool { return tickets.Fetch(m.deps.Context) })
	case key.Matches(msg, m.keys.Profile):
		return m.navigate(RouteProfile)
	case key.Matches(msg, m.keys.Logout):
		m.deps.Session.Logout()
		tickets.Reset()
		m, cmd := m.navigate(RouteLogin)
		m.flash = "signed out"
		return m, cmd
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.list.searching = false
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		m.list.searching = false
		q := strings.TrimSpace(m.list.query.Value())
		m.list.activeQuery = q
		m.list.cursor = 0
		m.busy = true
		return m, ticketCmd(opSearch, func() bool { return m.deps.Tickets.Search(m.deps.Context, q) })
	}
	var cmd tea.Cmd
	m.list.query, cmd = m.list.query.Update(msg)
	return m, cmd
}

func (m Model) listView() string {
	s := m.styles
	view := m.deps.Tickets.Snapshot()
	var b strings.Builder

	title := "Tickets"
	if m.list.activeQuery != "" {
		title = fmt.Sprintf("Tickets matching %q", m.list.activeQuery)
	}
	b.WriteString(s.Title.Render(title) + s.Muted.Render(fmt.Sprintf("  (%d)", len(view.Tickets))) + "\n\n")
	if m.list.searching {
		b.WriteString(m.list.query.View() + "\n\n")
	}

	if len(view.Tickets) == 0 && !view.Loading {
		b.WriteString(s.Muted.Render("No tickets yet. Press n to create one.") + "\n")
	}
	cur := m.list.cursor
	if cur >= len(view.Tickets) {
		cur = len(view.Tickets) - 1
	}
	for i, t := range view.Tickets {
		prio := s.Priority[t.Priority].Render(fmt.Sprintf("%-6s", t.Priority))
		row := fmt.Sprintf("%s  %-11s  %s", prio, t.Status, t.Title)
		if i == cur {
			row = s.Selected.Render("> " + row)
		} else {
			row = "  " + row
		}
		b.WriteString(row + "\n")
	}
	if t, ok := m.selected(); ok && t.Description != "" {
		b.WriteString("\n" + s.Muted.Render(t.Description) + "\n")
	}
	if view.Error != "" {
		b.WriteString("\n" + s.Error.Render(view.Error) + "\n")
	}
	return b.String()
}
