package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"ticketboard/internal/models"
)

func newLoginForm() form {
	return newForm([]field{
		{label: "Username", limit: 64},
		{label: "Password", password: true, limit: 128},
	})
}

func newRegisterForm() form {
	return newForm([]field{
		{label: "Username", limit: 64},
		{label: "Email", limit: 254},
		{label: "Password", password: true, limit: 128},
	})
}

func (m Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Switch) {
		return m.navigate(RouteRegister)
	}
	submitted, cmd := m.login.update(msg, m.keys)
	if !submitted {
		return m, cmd
	}
	creds := models.Credentials{Username: m.login.value(0), Password: m.login.raw(1)}
	if creds.Username == "" || creds.Password == "" {
		m.login.err = "username and password are required"
		return m, nil
	}
	m.login.err = ""
	m.busy = true
	return m, func() tea.Msg {
		return authMsg{ok: m.deps.Session.Login(m.deps.Context, creds)}
	}
}

func (m Model) updateRegister(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Switch) || key.Matches(msg, m.keys.Back) {
		return m.navigate(RouteLogin)
	}
	submitted, cmd := m.register.update(msg, m.keys)
	if !submitted {
		return m, cmd
	}
	reg := models.Registration{Username: m.register.value(0), Email: m.register.value(1), Password: m.register.raw(2)}
	if reg.Username == "" || reg.Email == "" || reg.Password == "" {
		m.register.err = "username, email and password are required"
		return m, nil
	}
	m.register.err = ""
	m.busy = true
	return m, func() tea.Msg {
		return authMsg{ok: m.deps.Session.Register(m.deps.Context, reg)}
	}
}
