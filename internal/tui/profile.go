package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"ticketboard/internal/client"
	"ticketboard/internal/models"
)

type profileView struct {
	user *models.User
	form form
	err  string
}

func (m Model) loadProfile() tea.Cmd {
	users := m.deps.Users
	ctx := m.deps.Context
	return func() tea.Msg {
		u, err := users.Profile(ctx)
		return profileMsg{user: u, err: err}
	}
}

func newProfileForm(u *models.User) form {
	return newForm([]field{
		{label: "Username", value: u.Username, limit: 64},
		{label: "Email", value: u.Email, limit: 254},
	})
}

func (m Model) handleProfileResult(msg profileMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.deps.Session.HandleError(msg.err)
		m = m.guard()
		if m.route == RouteProfile {
			m.profile.form.err = client.Message(msg.err)
			m.profile.err = client.Message(msg.err)
		}
		return m, nil
	}
	m.profile = profileView{user: msg.user, form: newProfileForm(msg.user)}
	if msg.saved {
		m.deps.Session.SetUser(*msg.user)
		m.flash = "profile saved"
	}
	return m, nil
}

func (m Model) updateProfile(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Back) {
		m.route = RouteTickets
		return m, nil
	}
	if m.profile.user == nil {
		return m, nil
	}
	submitted, cmd := m.profile.form.update(msg, m.keys)
	if !submitted {
		return m, cmd
	}
	username, email := m.profile.form.value(0), m.profile.form.value(1)
	if username == "" || email == "" {
		m.profile.form.err = "username and email are required"
		return m, nil
	}
	var upd models.ProfileUpdate
	if username != m.profile.user.Username {
		upd.Username = &username
	}
	if email != m.profile.user.Email {
		upd.Email = &email
	}
	if upd.Username == nil && upd.Email == nil {
		m.route = RouteTickets
		return m, nil
	}
	users, ctx := m.deps.Users, m.deps.Context
	m.busy = true
	m.flash = ""
	return m, func() tea.Msg {
		u, err := users.UpdateProfile(ctx, upd)
		return profileMsg{user: u, err: err, saved: err == nil}
	}
}

func (m Model) profileView() string {
	s := m.styles
	var b strings.Builder
	b.WriteString(s.Title.Render("Profile") + "\n\n")
	if m.profile.user == nil {
		if m.profile.err != "" {
			b.WriteString(s.Error.Render(m.profile.err) + "\n")
		}
		return b.String()
	}
	b.WriteString(s.Muted.Render(fmt.Sprintf("member since %s", m.profile.user.CreatedAt.Format("2 Jan 2006"))) + "\n\n")
	b.WriteString(m.profile.form.view(s))
	return b.String()
}
