package statusbar

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	barStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#333333")).
			Foreground(lipgloss.Color("#FFFFFF"))

	brandStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#7D56F4")).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Padding(0, 1)

	userStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#333333")).
			Foreground(lipgloss.Color("#00FF00")).
			Padding(0, 1)

	loadingStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#555555")).
			Foreground(lipgloss.Color("#CCCCCC")).
			Padding(0, 1)

	statusTextStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#333333")).
			Foreground(lipgloss.Color("#AAAAAA")).
			Padding(0, 1)
)

// Model is the status bar at the bottom of the screen.
type Model struct {
	width      int
	username   string
	loading    bool
	statusText string
}

// New creates a new status bar.
func New() Model {
	return Model{loading: true}
}

// SetSize sets the width.
func (m *Model) SetSize(w int) {
	m.width = w
}

// SetUser sets the signed-in username. An empty string shows the sign-in
// hint instead of a badge.
func (m *Model) SetUser(username string) {
	m.username = username
}

// SetLoading toggles the startup-check indicator.
func (m *Model) SetLoading(loading bool) {
	m.loading = loading
}

// SetStatus sets a temporary status message.
func (m *Model) SetStatus(text string) {
	m.statusText = text
}

// Update is a no-op for the status bar.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// View renders the status bar.
func (m Model) View() string {
	left := brandStyle.Render("Memoriq")

	var right string
	if m.statusText != "" {
		right += statusTextStyle.Render(m.statusText)
	}
	switch {
	case m.loading:
		right += loadingStyle.Render("checking session...")
	case m.username != "":
		right += userStyle.Render(m.username)
	default:
		right += statusTextStyle.Render("l:sign in  r:sign up")
	}

	leftWidth := lipgloss.Width(left)
	rightWidth := lipgloss.Width(right)
	gap := m.width - leftWidth - rightWidth
	if gap < 0 {
		gap = 0
	}
	mid := barStyle.Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Top, left, mid, right)
}
