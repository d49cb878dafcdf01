package home

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/memoriq/memoriq-tui/internal/session"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true).
			Padding(1, 0)
	textStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#CCCCCC"))
	keyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
)

// Model is the landing view: a greeting when signed in, the sign-in hint
// otherwise.
type Model struct {
	state  session.State
	width  int
	height int
}

// New creates the home view.
func New() Model {
	return Model{state: session.State{Loading: true}}
}

// SetSize sets the viewport dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// SetState updates the rendered session snapshot.
func (m *Model) SetState(st session.State) {
	m.state = st
}

// Update is a no-op; the home view only renders state.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// View renders the home view.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Memoriq"))
	sb.WriteString("\n\n")

	switch {
	case m.state.Loading:
		sb.WriteString(textStyle.Render("Checking your session..."))
	case m.state.Authenticated && m.state.User != nil:
		sb.WriteString(textStyle.Render(fmt.Sprintf("Signed in as %s.", m.state.User.Username)))
		sb.WriteString("\n\n")
		sb.WriteString(dimStyle.Render(keyStyle.Render("x") + " sign out  " + keyStyle.Render("q") + " quit"))
	default:
		sb.WriteString(textStyle.Render("You are not signed in."))
		sb.WriteString("\n\n")
		sb.WriteString(dimStyle.Render(keyStyle.Render("l") + " sign in  " + keyStyle.Render("r") + " sign up  " + keyStyle.Render("q") + " quit"))
	}

	content := sb.String()
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
