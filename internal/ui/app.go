package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kraigochieng/4th-year-project/internal/api"
	"github.com/kraigochieng/4th-year-project/internal/auth"
	"github.com/kraigochieng/4th-year-project/internal/monitor"
	"github.com/kraigochieng/4th-year-project/internal/router"
	"github.com/kraigochieng/4th-year-project/internal/ui/landing"
	"github.com/kraigochieng/4th-year-project/internal/ui/login"
	"github.com/kraigochieng/4th-year-project/internal/ui/messages"
	"github.com/kraigochieng/4th-year-project/internal/ui/signup"
	"github.com/kraigochieng/4th-year-project/internal/ui/statusbar"
)

// ViewType identifies the active view.
type ViewType int

const (
	ViewLogin ViewType = iota
	ViewSignup
	ViewLanding
)

func viewFor(path string) ViewType {
	switch path {
	case auth.PathLogin:
		return ViewLogin
	case auth.PathSignup:
		return ViewSignup
	default:
		return ViewLanding
	}
}

// App is the root Bubble Tea model. The active view always follows the
// router's current path.
type App struct {
	activeView ViewType
	route      string

	// Child models
	loginForm  login.Model
	signupForm signup.Model
	landing    landing.Model
	statusBar  statusbar.Model

	// Shared state
	store   *auth.Store
	router  *router.Router
	monitor *monitor.Monitor
	keys    KeyMap

	// Dimensions
	width  int
	height int

	program *tea.Program
}

// NewApp creates the root application model and routes to start, which the
// guard may redirect.
func NewApp(store *auth.Store, rt *router.Router, mon *monitor.Monitor, start string) *App {
	a := &App{
		store:     store,
		router:    rt,
		monitor:   mon,
		keys:      Keys,
		statusBar: statusbar.New(),
	}
	if start == "" {
		start = auth.PathHome
	}
	rt.NavigateTo(start)
	a.enter(rt.Current())
	return a
}

// SetProgram wires route changes and the background monitor to p.
func (a *App) SetProgram(p *tea.Program) {
	a.program = p
	a.router.OnChange(func(from, to string) {
		// Navigation can start inside Update; Send must not block it.
		go p.Send(messages.RouteChangedMsg{From: from, To: to})
	})
	a.syncMonitor()
}

// Route returns the path the app is showing.
func (a *App) Route() string {
	return a.route
}

// ActiveView returns the view that receives input.
func (a *App) ActiveView() ViewType {
	return a.activeView
}

// Init starts the application.
func (a *App) Init() tea.Cmd {
	return a.initView()
}

// Update handles all messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.statusBar.SetSize(msg.Width)
		a.resize()
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, a.quit()
		}
		switch a.activeView {
		case ViewLanding:
			if key.Matches(msg, a.keys.Quit) {
				return a, a.quit()
			}
		case ViewLogin:
			if key.Matches(msg, a.keys.Signup) {
				a.router.NavigateTo(auth.PathSignup)
				return a, a.sync()
			}
		case ViewSignup:
			if key.Matches(msg, a.keys.Login) {
				a.router.NavigateTo(auth.PathLogin)
				return a, a.sync()
			}
		}
		if key.Matches(msg, a.keys.Back) && a.activeView != ViewLanding {
			a.router.Back()
			return a, a.sync()
		}

	case messages.NavigateMsg:
		a.router.NavigateTo(msg.Path)
		return a, a.sync()

	case messages.GoBackMsg:
		a.router.Back()
		return a, a.sync()

	case messages.RouteChangedMsg:
		return a, a.sync()

	case messages.LoginResultMsg:
		if msg.Err == nil {
			a.statusBar.SetStatus("Logged in as "+msg.Username, false)
			a.statusBar.SetOffline(false)
		} else {
			a.statusBar.SetOffline(api.IsKind(msg.Err, api.KindTransport))
		}

	case messages.SignupResultMsg:
		if msg.Err == nil {
			a.statusBar.SetStatus("Account "+msg.Username+" created, please log in", false)
			a.router.NavigateTo(auth.PathLogin)
			return a, a.sync()
		}

	case messages.UserLoadedMsg:
		if msg.User != nil {
			a.statusBar.SetUser(msg.User.Username)
		}

	case messages.RefreshResultMsg:
		if msg.Err != nil {
			a.statusBar.SetStatus("Refresh failed", true)
		} else {
			a.statusBar.SetStatus("Session refreshed", false)
		}
		a.statusBar.SetOffline(api.IsKind(msg.Err, api.KindTransport))

	case messages.KeepaliveMsg:
		a.statusBar.SetOffline(api.IsKind(msg.Err, api.KindTransport))
		if !msg.LoggedIn {
			return a, a.sync()
		}
		return a, nil

	case messages.StatusMsg:
		a.statusBar.SetStatus(msg.Text, msg.IsError)
	}

	// Route to active view.
	var cmd tea.Cmd
	switch a.activeView {
	case ViewLogin:
		a.loginForm, cmd = a.loginForm.Update(msg)
	case ViewSignup:
		a.signupForm, cmd = a.signupForm.Update(msg)
	case ViewLanding:
		a.landing, cmd = a.landing.Update(msg)
	}
	cmds = append(cmds, cmd)

	a.statusBar, cmd = a.statusBar.Update(msg)
	cmds = append(cmds, cmd)

	// Commands resolved inside the store may have navigated.
	cmds = append(cmds, a.sync())

	return a, tea.Batch(cmds...)
}

// View renders the application.
func (a *App) View() string {
	var content string
	switch a.activeView {
	case ViewLogin:
		content = a.loginForm.View()
	case ViewSignup:
		content = a.signupForm.View()
	case ViewLanding:
		content = a.landing.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, content, a.statusBar.View())
}

// sync switches views when the router has moved since the last update.
func (a *App) sync() tea.Cmd {
	current := a.router.Current()
	if current == a.route {
		return nil
	}
	a.enter(current)
	return a.initView()
}

func (a *App) enter(path string) {
	a.route = path
	a.activeView = viewFor(path)
	a.statusBar.SetRoute(path)

	switch a.activeView {
	case ViewLogin:
		a.loginForm = login.New(a.store)
		a.statusBar.SetUser("")
	case ViewSignup:
		a.signupForm = signup.New(a.store)
	case ViewLanding:
		a.landing = landing.New(a.store, landing.KeyMap{
			Refresh: a.keys.Refresh,
			Reload:  a.keys.Reload,
			Logout:  a.keys.Logout,
		})
		if u := a.store.User(); u != nil {
			a.statusBar.SetUser(u.Username)
		}
	}
	a.resize()
	a.syncMonitor()
}

func (a *App) initView() tea.Cmd {
	switch a.activeView {
	case ViewSignup:
		return a.signupForm.Init()
	case ViewLanding:
		return a.landing.Init()
	}
	return nil
}

func (a *App) resize() {
	contentHeight := a.height - 1 // Reserve 1 line for status bar.
	switch a.activeView {
	case ViewLogin:
		a.loginForm.SetSize(a.width, contentHeight)
	case ViewSignup:
		a.signupForm.SetSize(a.width, contentHeight)
	case ViewLanding:
		a.landing.SetSize(a.width, contentHeight)
	}
}

func (a *App) syncMonitor() {
	if a.monitor == nil {
		return
	}
	if a.store.LoggedIn() && a.program != nil {
		a.monitor.Start(a.program)
	} else {
		a.monitor.Stop()
	}
}

func (a *App) quit() tea.Cmd {
	if a.monitor != nil {
		a.monitor.Stop()
	}
	return tea.Quit
}

// Run starts the TUI and blocks until it exits.
func Run(ctx context.Context, app *App) error {
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	app.SetProgram(p)
	_, err := p.Run()
	return err
}
