package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"ticketboard/internal/models"
	"ticketboard/internal/state"
)

type ticketOp int

const (
	opFetch ticketOp = iota
	opSearch
	opCreate
	opUpdate
	opDelete
)

// restoredMsg ends the startup session check.
type restoredMsg struct{ ok bool }

// authMsg is the outcome of a login or register attempt.
type authMsg struct{ ok bool }

// ticketsMsg is the outcome of a ticket list operation. Details live in
// the container's snapshot.
type ticketsMsg struct {
	op ticketOp
	ok bool
}

type profileMsg struct {
	user  *models.User
	err   error
	saved bool
}

// healthMsg carries one completed poll; closed is set once the poll ends.
type healthMsg struct {
	status models.HealthStatus
	closed bool
}

func restoreSession(ctx context.Context, s *state.Session) tea.Cmd {
	return func() tea.Msg { return restoredMsg{ok: s.Restore(ctx)} }
}

func listenForHealth(ch <-chan models.HealthStatus) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		st, ok := <-ch
		if !ok {
			return healthMsg{closed: true}
		}
		return healthMsg{status: st}
	}
}

func ticketCmd(op ticketOp, fn func() bool) tea.Cmd {
	return func() tea.Msg { return ticketsMsg{op: op, ok: fn()} }
}
