package statusbar

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kraigochieng/4th-year-project/internal/ui/styles"
)

var (
	barStyle = lipgloss.NewStyle().
			Background(styles.BarBg).
			Foreground(styles.Text)

	routeStyle = lipgloss.NewStyle().
			Background(styles.Primary).
			Foreground(styles.Text).
			Bold(true).
			Padding(0, 1)

	userStyle = lipgloss.NewStyle().
			Background(styles.BarBg).
			Foreground(lipgloss.Color("#00FF00")).
			Padding(0, 1)

	statusTextStyle = lipgloss.NewStyle().
			Background(styles.BarBg).
			Foreground(lipgloss.Color("#AAAAAA")).
			Padding(0, 1)

	errorTextStyle = lipgloss.NewStyle().
			Background(styles.BarBg).
			Foreground(styles.Danger).
			Padding(0, 1)

	offlineStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#8B0000")).
			Foreground(styles.Text).
			Bold(true).
			Padding(0, 1)
)

// Model is the status bar at the bottom of the screen.
type Model struct {
	width      int
	route      string
	username   string
	statusText string
	isError    bool
	offline    bool
}

// New creates a new status bar.
func New() Model {
	return Model{}
}

// SetSize sets the width.
func (m *Model) SetSize(w int) {
	m.width = w
}

// SetRoute sets the current router path.
func (m *Model) SetRoute(path string) {
	m.route = path
}

// SetUser sets the logged-in username.
func (m *Model) SetUser(username string) {
	m.username = username
}

// SetStatus sets a temporary status message.
func (m *Model) SetStatus(text string, isError bool) {
	m.statusText = text
	m.isError = isError
}

// SetOffline sets the offline indicator.
func (m *Model) SetOffline(offline bool) {
	m.offline = offline
}

// Update is a no-op for the status bar.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// View renders the status bar.
func (m Model) View() string {
	left := routeStyle.Render(m.route)

	var right string
	if m.offline {
		right += offlineStyle.Render("OFFLINE")
	}
	if m.statusText != "" {
		if m.isError {
			right += errorTextStyle.Render(m.statusText)
		} else {
			right += statusTextStyle.Render(m.statusText)
		}
	}
	if m.username != "" {
		right += userStyle.Render(m.username)
	} else {
		right += statusTextStyle.Render("not logged in")
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	mid := barStyle.Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Top, left, mid, right)
}
