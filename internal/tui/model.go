package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ticketboard/internal/models"
	"ticketboard/internal/state"
)

// Route identifies a view.
type Route int

const (
	RouteLogin Route = iota
	RouteRegister
	RouteTickets
	RouteNewTicket
	RouteEditTicket
	RouteProfile
)

func (r Route) requiresAuth() bool { return r >= RouteTickets }

// UserService is the slice of api.Users the profile view calls.
type UserService interface {
	Profile(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.User, error)
}

// Deps are the state containers the views drive.
type Deps struct {
	Context context.Context
	Session *state.Session
	Tickets *state.Tickets
	Users   UserService
	Health  *state.Health
	// HealthUpdates is usually Poll.Updates(); nil disables the live
	// indicator.
	HealthUpdates <-chan models.HealthStatus
}

// Model is the top-level shell. It owns routing and the header/footer
// and delegates the body to the active view.
type Model struct {
	deps   Deps
	keys   KeyMap
	styles Styles
	help   help.Model

	route  Route
	width  int
	height int
	busy   bool
	flash  string
	health models.HealthStatus

	login    form
	register form
	list     ticketList
	editor   ticketEditor
	profile  profileView
}

func New(deps Deps) Model {
	if deps.Context == nil {
		deps.Context = context.Background()
	}
	m := Model{
		deps:   deps,
		keys:   DefaultKeyMap,
		styles: DefaultStyles,
		help:   help.New(),
		route:  RouteLogin,
		busy:   true,
		login:  newLoginForm(),
	}
	if deps.Health != nil {
		m.health = deps.Health.Snapshot()
	}
	return m
}

// Route reports the active view.
func (m Model) Route() Route { return m.route }

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		restoreSession(m.deps.Context, m.deps.Session),
		listenForHealth(m.deps.HealthUpdates),
	)
}

// navigate switches views, sending anonymous users to login for any
// authenticated-only route.
func (m Model) navigate(r Route) (Model, tea.Cmd) {
	if r.requiresAuth() && !m.deps.Session.Authenticated() {
		r = RouteLogin
	}
	m.route = r
	switch r {
	case RouteLogin:
		m.login = newLoginForm()
	case RouteRegister:
		m.register = newRegisterForm()
	case RouteTickets:
		m.busy = true
		return m, ticketCmd(opFetch, func() bool { return m.deps.Tickets.Fetch(m.deps.Context) })
	case RouteNewTicket:
		m.editor = newTicketEditor(nil)
	case RouteProfile:
		m.profile = profileView{}
		m.busy = true
		return m, m.loadProfile()
	}
	return m, nil
}

// guard re-checks the session after a request. A 401 anywhere ends the
// session and lands the user on the login view.
func (m Model) guard() Model {
	if m.route.requiresAuth() && !m.deps.Session.Authenticated() {
		m, _ = m.navigate(RouteLogin)
		m.deps.Tickets.Reset()
		if msg := m.deps.Session.Snapshot().Error; msg != "" {
			m.login.err = msg
		} else {
			m.login.err = "please sign in"
		}
	}
	return m
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case healthMsg:
		if msg.closed {
			return m, nil
		}
		m.health = msg.status
		return m, listenForHealth(m.deps.HealthUpdates)

	case restoredMsg:
		m.busy = false
		if msg.ok {
			return m.navigate(RouteTickets)
		}
		return m, nil

	case authMsg:
		m.busy = false
		if msg.ok {
			m.flash = ""
			return m.navigate(RouteTickets)
		}
		errText := m.deps.Session.Snapshot().Error
		if m.route == RouteRegister {
			m.register.err = errText
		} else {
			m.login.err = errText
		}
		return m, nil

	case ticketsMsg:
		m.busy = false
		m = m.guard()
		return m.handleTicketResult(msg)

	case profileMsg:
		m.busy = false
		m = m.guard()
		if m.route != RouteProfile {
			return m, nil
		}
		return m.handleProfileResult(msg)

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		if m.busy {
			return m, nil
		}
		switch m.route {
		case RouteLogin:
			return m.updateLogin(msg)
		case RouteRegister:
			return m.updateRegister(msg)
		case RouteTickets:
			return m.updateList(msg)
		case RouteNewTicket, RouteEditTicket:
			return m.updateEditor(msg)
		case RouteProfile:
			return m.updateProfile(msg)
		}
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.header() + "\n\n")
	switch m.route {
	case RouteLogin:
		b.WriteString(m.styles.Title.Render("Sign in") + "\n\n" + m.login.view(m.styles))
	case RouteRegister:
		b.WriteString(m.styles.Title.Render("Create account") + "\n\n" + m.register.view(m.styles))
	case RouteTickets:
		b.WriteString(m.listView())
	case RouteNewTicket:
		b.WriteString(m.styles.Title.Render("New ticket") + "\n\n" + m.editor.form.view(m.styles))
	case RouteEditTicket:
		b.WriteString(m.styles.Title.Render("Edit ticket") + "\n\n" + m.editor.form.view(m.styles))
	case RouteProfile:
		b.WriteString(m.profileView())
	}
	if m.busy {
		b.WriteString("\n" + m.styles.Muted.Render("loading…"))
	}
	if m.flash != "" {
		b.WriteString("\n" + m.styles.Flash.Render(m.flash))
	}
	b.WriteString("\n\n" + m.help.ShortHelpView(m.helpKeys()))
	return b.String()
}

func (m Model) header() string {
	who := m.styles.Muted.Render("not signed in")
	if u := m.deps.Session.Snapshot().User; u != nil {
		who = u.Username
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.Title.Render("TicketBoard"), "  ",
		who, "   ",
		"backend ", m.styles.health(m.health.Backend), "  ",
		"db ", m.styles.health(m.health.Database),
	)
	return m.styles.Header.Render(line)
}

func (m Model) helpKeys() []key.Binding {
	k := m.keys
	switch m.route {
	case RouteLogin, RouteRegister:
		return []key.Binding{k.Next, k.Submit, k.Switch, k.ForceQuit}
	case RouteTickets:
		if m.list.searching {
			return []key.Binding{k.Submit, k.Back}
		}
		return []key.Binding{k.New, k.Edit, k.Delete, k.Status, k.Search, k.Refresh, k.Profile, k.Logout, k.Quit}
	}
	return []key.Binding{k.Next, k.Cycle, k.Submit, k.Back}
}
