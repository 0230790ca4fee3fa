package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"ticketboard/internal/models"
)

func enumOptions[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// ticketEditor backs both the create and edit views; original is nil
// when creating.
type ticketEditor struct {
	form     form
	original *models.Ticket
}

func newTicketEditor(t *models.Ticket) ticketEditor {
	prio := choice{label: "Priority", options: enumOptions(models.Priorities)}
	prio.set(string(models.PriorityMedium))
	if t == nil {
		return ticketEditor{form: newForm([]field{
			{label: "Title", limit: 200},
			{label: "Description", limit: 2000},
		}, prio)}
	}

	orig := *t
	prio.set(string(t.Priority))
	status := choice{label: "Status", options: enumOptions(models.Statuses)}
	status.set(string(t.Status))
	return ticketEditor{
		original: &orig,
		form: newForm([]field{
			{label: "Title", value: t.Title, limit: 200},
			{label: "Description", value: t.Description, limit: 2000},
		}, prio, status),
	}
}

// patch holds only the fields that differ from the original.
func (e ticketEditor) patch() models.TicketPatch {
	var p models.TicketPatch
	f := e.form
	if v := f.value(0); v != e.original.Title {
		p.Title = &v
	}
	if v := f.value(1); v != e.original.Description {
		p.Description = &v
	}
	if v := models.Priority(f.choiceValue(0)); v != e.original.Priority {
		p.Priority = &v
	}
	if v := models.Status(f.choiceValue(1)); v != e.original.Status {
		p.Status = &v
	}
	return p
}

func (m Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Back) {
		m.route = RouteTickets
		return m, nil
	}
	submitted, cmd := m.editor.form.update(msg, m.keys)
	if !submitted {
		return m, cmd
	}
	if m.editor.form.value(0) == "" {
		m.editor.form.err = "title is required"
		return m, nil
	}
	m.editor.form.err = ""
	tickets := m.deps.Tickets

	if m.editor.original == nil {
		in := models.TicketInput{
			Title:       m.editor.form.value(0),
			Description: m.editor.form.value(1),
			Priority:    models.Priority(m.editor.form.choiceValue(0)),
		}
		m.busy = true
		return m, ticketCmd(opCreate, func() bool {
			_, ok := tickets.Create(m.deps.Context, in)
			return ok
		})
	}

	p := m.editor.patch()
	if p.Empty() {
		m.route = RouteTickets
		return m, nil
	}
	id := m.editor.original.ID
	m.busy = true
	return m, ticketCmd(opUpdate, func() bool {
		_, ok := tickets.Update(m.deps.Context, id, p)
		return ok
	})
}
