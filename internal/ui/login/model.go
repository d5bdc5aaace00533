package login

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kraigochieng/4th-year-project/internal/api"
	"github.com/kraigochieng/4th-year-project/internal/render"
	"github.com/kraigochieng/4th-year-project/internal/ui/messages"
	"github.com/kraigochieng/4th-year-project/internal/ui/styles"
)

// Authenticator logs a user in. *auth.Store satisfies it.
type Authenticator interface {
	Login(ctx context.Context, creds api.Credentials) error
}

const (
	fieldUsername = iota
	fieldPassword
	fieldCount
)

var (
	nextField = key.NewBinding(key.WithKeys("tab", "down"))
	prevField = key.NewBinding(key.WithKeys("shift+tab", "up"))
	submitKey = key.NewBinding(key.WithKeys("enter"))
)

// Model is the login form view.
type Model struct {
	inputs     []textinput.Model
	focused    int
	auth       Authenticator
	err        string
	submitting bool
	width      int
	height     int
}

// New creates a login form with the username field focused.
func New(auth Authenticator) Model {
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		in := textinput.New()
		in.Width = 30
		in.Prompt = "> "
		inputs[i] = in
	}
	inputs[fieldUsername].Placeholder = "username"
	inputs[fieldPassword].Placeholder = "password"
	inputs[fieldPassword].EchoMode = textinput.EchoPassword
	inputs[fieldPassword].EchoCharacter = '*'

	m := Model{inputs: inputs, auth: auth}
	m.focus(fieldUsername)
	return m
}

// SetSize sets the viewport dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Err returns the error shown under the form, if any.
func (m Model) Err() string {
	return m.err
}

// Submitting reports whether a login request is in flight.
func (m Model) Submitting() bool {
	return m.submitting
}

func (m *Model) focus(i int) {
	m.focused = (i + fieldCount) % fieldCount
	for j := range m.inputs {
		if j == m.focused {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
}

func (m Model) credentials() api.Credentials {
	return api.Credentials{
		Username: strings.TrimSpace(m.inputs[fieldUsername].Value()),
		Password: m.inputs[fieldPassword].Value(),
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.LoginResultMsg:
		m.submitting = false
		if msg.Err != nil {
			m.err = msg.Err.Error()
			m.inputs[fieldPassword].Reset()
			m.focus(fieldPassword)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, nextField):
			m.focus(m.focused + 1)
			return m, nil
		case key.Matches(msg, prevField):
			m.focus(m.focused - 1)
			return m, nil
		case key.Matches(msg, submitKey):
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

func (m Model) submit() (Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	creds := m.credentials()
	if creds.Username == "" || creds.Password == "" {
		m.err = "Username and password required"
		return m, nil
	}

	m.submitting = true
	m.err = ""
	auth := m.auth
	return m, func() tea.Msg {
		return messages.LoginResultMsg{
			Username: creds.Username,
			Err:      auth.Login(context.Background(), creds),
		}
	}
}

// View renders the login form.
func (m Model) View() string {
	lines := []string{
		styles.Title.Render("Log in to ADR reporting"),
		styles.Label.Render("Username"),
		m.inputs[fieldUsername].View(),
		"",
		styles.Label.Render("Password"),
		m.inputs[fieldPassword].View(),
		"",
	}
	if m.err != "" {
		lines = append(lines, styles.Error.Render(render.Wrap(m.err, 40)), "")
	}

	footer := styles.Key.Render("Enter") + " log in · " +
		styles.Key.Render("Ctrl+N") + " sign up · " +
		styles.Key.Render("Ctrl+C") + " quit"
	if m.submitting {
		footer = styles.Dim.Render("Logging in...")
	}
	lines = append(lines, footer)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Left, lines...))
}
