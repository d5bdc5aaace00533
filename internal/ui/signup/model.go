package signup

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/kraigochieng/4th-year-project/internal/api"
	"github.com/kraigochieng/4th-year-project/internal/render"
	"github.com/kraigochieng/4th-year-project/internal/ui/messages"
	"github.com/kraigochieng/4th-year-project/internal/ui/styles"
)

// MinPasswordLength is the shortest password the form accepts.
const MinPasswordLength = 8

// Registrar creates accounts. *auth.Store satisfies it.
type Registrar interface {
	Signup(ctx context.Context, req api.SignupRequest) (json.RawMessage, error)
}

// ValidateUsername rejects blank usernames.
func ValidateUsername(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("username is required")
	}
	return nil
}

// ValidatePassword rejects passwords shorter than MinPasswordLength.
func ValidatePassword(s string) error {
	if len(s) < MinPasswordLength {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}

// Validate checks a request before it is sent.
func Validate(req api.SignupRequest) error {
	if err := ValidateUsername(req.Username); err != nil {
		return err
	}
	return ValidatePassword(req.Password)
}

type fields struct {
	username  string
	password  string
	firstName string
	lastName  string
}

func (f *fields) request() api.SignupRequest {
	return api.SignupRequest{
		Username:  strings.TrimSpace(f.username),
		Password:  f.password,
		FirstName: strings.TrimSpace(f.firstName),
		LastName:  strings.TrimSpace(f.lastName),
	}
}

// Model is the signup form view.
type Model struct {
	form       *huh.Form
	fields     *fields
	registrar  Registrar
	submitting bool
	err        string
	width      int
	height     int
}

// New creates a new signup form.
func New(registrar Registrar) Model {
	f := &fields{}
	return Model{
		form:      newForm(f),
		fields:    f,
		registrar: registrar,
	}
}

func newForm(f *fields) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Value(&f.username).
				Validate(ValidateUsername),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&f.password).
				Validate(ValidatePassword),
			huh.NewInput().
				Title("First name").
				Value(&f.firstName),
			huh.NewInput().
				Title("Last name").
				Value(&f.lastName),
		).Title("Create an account"),
	).WithTheme(styles.FormTheme()).
		WithShowHelp(false)
}

// Init focuses the first field.
func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

// SetSize sets the viewport dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.form = m.form.WithWidth(min(w, 60))
}

// Err returns the last signup error, if any.
func (m Model) Err() string {
	return m.err
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(messages.SignupResultMsg); ok {
		m.submitting = false
		if msg.Err != nil {
			m.err = msg.Err.Error()
			m.fields.password = ""
			m.form = newForm(m.fields)
			return m, m.form.Init()
		}
		return m, nil
	}

	if m.submitting {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m.submit()
	}
	return m, cmd
}

func (m Model) submit() (Model, tea.Cmd) {
	req := m.fields.request()
	if err := Validate(req); err != nil {
		m.err = err.Error()
		m.form = newForm(m.fields)
		return m, m.form.Init()
	}

	m.submitting = true
	m.err = ""
	registrar := m.registrar
	return m, func() tea.Msg {
		_, err := registrar.Signup(context.Background(), req)
		return messages.SignupResultMsg{Username: req.Username, Err: err}
	}
}

// View renders the signup form.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render("Sign up for ADR reporting"))
	sb.WriteString("\n")
	if m.submitting {
		sb.WriteString("Creating account...")
	} else {
		sb.WriteString(m.form.View())
	}
	sb.WriteString("\n\n")

	if m.err != "" {
		sb.WriteString(styles.Error.Render(render.Wrap(m.err, 50)))
		sb.WriteString("\n\n")
	}
	sb.WriteString(styles.Key.Render("Enter") + " next field, " +
		styles.Key.Render("Ctrl+L") + " to log in, " +
		styles.Key.Render("Ctrl+C") + " to quit")

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, sb.String())
}
