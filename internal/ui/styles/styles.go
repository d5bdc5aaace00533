// Package styles holds the lipgloss palette shared by every view.
package styles

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var (
	Primary = lipgloss.Color("#0EA5A4") // teal
	Accent  = lipgloss.Color("#F97316")
	Danger  = lipgloss.Color("#EF4444")
	Muted   = lipgloss.Color("#828282")
	Text    = lipgloss.Color("#FFFFFF")
	BarBg   = lipgloss.Color("#333333")

	Title = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true).
		Padding(1, 0)

	Label = lipgloss.NewStyle().
		Foreground(Text).
		Bold(true)

	Key = lipgloss.NewStyle().
		Foreground(Primary)

	Dim = lipgloss.NewStyle().
		Foreground(Muted)

	Value = lipgloss.NewStyle().
		Foreground(Text)

	Error = lipgloss.NewStyle().
		Foreground(Danger)
)

// FormTheme returns the huh theme matching the palette.
func FormTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = t.Focused.Title.Foreground(Primary).Bold(true)
	t.Focused.Base = t.Focused.Base.BorderForeground(Primary)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(Danger)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(Danger)
	t.Focused.FocusedButton = t.Focused.FocusedButton.Background(Primary).Foreground(Text)
	t.Blurred.Title = t.Blurred.Title.Foreground(Muted)

	return t
}
