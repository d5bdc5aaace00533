package landing

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kraigochieng/4th-year-project/internal/api"
	"github.com/kraigochieng/4th-year-project/internal/auth"
	"github.com/kraigochieng/4th-year-project/internal/render"
	"github.com/kraigochieng/4th-year-project/internal/ui/messages"
	"github.com/kraigochieng/4th-year-project/internal/ui/styles"
)

// Session is the part of the auth store the landing view uses.
type Session interface {
	FetchUser(ctx context.Context) (*api.User, error)
	Refresh(ctx context.Context) error
	Logout(ctx context.Context)
	AccessToken() string
	User() *api.User
}

// KeyMap holds the landing view bindings.
type KeyMap struct {
	Refresh key.Binding
	Reload  key.Binding
	Logout  key.Binding
}

// Model is the landing view shown after login.
type Model struct {
	session Session
	keys    KeyMap
	now     func() time.Time
	loading bool
	err     string
	width   int
	height  int
}

// New creates a new landing view.
func New(session Session, keys KeyMap) Model {
	return Model{
		session: session,
		keys:    keys,
		now:     time.Now,
		loading: session.User() == nil,
	}
}

// Init loads the current user unless the store already has it.
func (m Model) Init() tea.Cmd {
	if m.session.User() != nil {
		return nil
	}
	return m.loadUser()
}

func (m Model) loadUser() tea.Cmd {
	session := m.session
	return func() tea.Msg {
		user, err := session.FetchUser(context.Background())
		return messages.UserLoadedMsg{User: user, Err: err}
	}
}

// SetSize sets the viewport dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.UserLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err.Error()
		} else {
			m.err = ""
		}
		return m, nil

	case messages.RefreshResultMsg:
		if msg.Err != nil {
			m.err = msg.Err.Error()
		} else {
			m.err = ""
		}
		return m, nil

	case tea.KeyMsg:
		session := m.session
		switch {
		case key.Matches(msg, m.keys.Reload):
			m.loading = true
			return m, m.loadUser()
		case key.Matches(msg, m.keys.Refresh):
			return m, func() tea.Msg {
				return messages.RefreshResultMsg{Err: session.Refresh(context.Background())}
			}
		case key.Matches(msg, m.keys.Logout):
			return m, func() tea.Msg {
				session.Logout(context.Background())
				return messages.StatusMsg{Text: "Logged out"}
			}
		}
	}
	return m, nil
}

// View renders the landing view.
func (m Model) View() string {
	var sb strings.Builder

	user := m.session.User()
	switch {
	case user != nil:
		sb.WriteString(styles.Title.Render("Welcome, " + user.DisplayName()))
		sb.WriteString("\n")
		sb.WriteString(styles.Dim.Render("Username: ") + styles.Value.Render(user.Username))
		sb.WriteString("\n")
		if user.ID != "" {
			sb.WriteString(styles.Dim.Render("ID: ") + styles.Value.Render(user.ID))
			sb.WriteString("\n")
		}
	case m.loading:
		sb.WriteString(styles.Title.Render("Loading profile..."))
		sb.WriteString("\n")
	default:
		sb.WriteString(styles.Title.Render("ADR reporting"))
		sb.WriteString("\n")
	}

	if exp, ok := auth.TokenExpiry(m.session.AccessToken()); ok {
		sb.WriteString(styles.Dim.Render("Session: ") + styles.Value.Render(render.Remaining(exp.Sub(m.now()))))
		sb.WriteString("\n")
	}

	if m.err != "" {
		sb.WriteString("\n" + styles.Error.Render(render.Wrap(m.err, max(m.width-4, 20))) + "\n")
	}

	sb.WriteString("\n")
	sb.WriteString(styles.Key.Render("r") + " refresh token  " +
		styles.Key.Render("u") + " reload profile  " +
		styles.Key.Render("L") + " log out  " +
		styles.Key.Render("q") + " quit")

	return sb.String()
}
