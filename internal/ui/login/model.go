package login

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/memoriq/memoriq-tui/internal/session"
	"github.com/memoriq/memoriq-tui/internal/ui/messages"
)

var (
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true).
			Padding(1, 0)
	hintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#828282"))
)

// Model is the sign-in / sign-up form.
type Model struct {
	usernameInput textinput.Model
	passwordInput textinput.Model
	focusIndex    int
	register      bool
	err           string
	submitting    bool
	session       *session.Client
	width         int
	height        int
}

// New creates the auth form. register selects the sign-up variant.
func New(sess *session.Client, register bool) Model {
	usernameInput := textinput.New()
	usernameInput.Placeholder = "choose a username"
	usernameInput.Focus()
	usernameInput.Width = 30

	passwordInput := textinput.New()
	passwordInput.Placeholder = "password"
	passwordInput.EchoMode = textinput.EchoPassword
	passwordInput.Width = 30

	if !register {
		usernameInput.Placeholder = "username"
	}

	return Model{
		usernameInput: usernameInput,
		passwordInput: passwordInput,
		register:      register,
		session:       sess,
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
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "shift+tab":
			if m.focusIndex == 0 {
				m.focusIndex = 1
				m.usernameInput.Blur()
				m.passwordInput.Focus()
			} else {
				m.focusIndex = 0
				m.passwordInput.Blur()
				m.usernameInput.Focus()
			}
			return m, nil
		case "ctrl+t":
			// Toggle between sign-in and sign-up, keeping what was typed.
			m.register = !m.register
			m.err = ""
			return m, nil
		case "enter":
			if m.submitting {
				return m, nil
			}
			username := strings.TrimSpace(m.usernameInput.Value())
			password := m.passwordInput.Value()
			if username == "" || password == "" {
				m.err = "Username and password required"
				return m, nil
			}
			m.submitting = true
			m.err = ""
			sess := m.session
			register := m.register
			return m, func() tea.Msg {
				var err error
				if register {
					err = sess.Register(context.Background(), username, password)
				} else {
					err = sess.Login(context.Background(), username, password)
				}
				return messages.AuthResultMsg{Username: username, Err: err}
			}
		}

	case messages.AuthResultMsg:
		m.submitting = false
		if msg.Err != nil {
			m.err = msg.Err.Error()
			return m, nil
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.focusIndex == 0 {
		m.usernameInput, cmd = m.usernameInput.Update(msg)
	} else {
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	}
	return m, cmd
}

// View renders the auth form.
func (m Model) View() string {
	var sb strings.Builder

	title := "Sign In"
	if m.register {
		title = "Create Account"
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n\n")
	sb.WriteString(labelStyle.Render("Username:"))
	sb.WriteString("\n")
	sb.WriteString(m.usernameInput.View())
	sb.WriteString("\n\n")
	sb.WriteString(labelStyle.Render("Password:"))
	sb.WriteString("\n")
	sb.WriteString(m.passwordInput.View())
	sb.WriteString("\n\n")

	if m.err != "" {
		sb.WriteString(errorStyle.Render(m.err))
		sb.WriteString("\n\n")
	}

	if m.submitting {
		if m.register {
			sb.WriteString("Creating account...")
		} else {
			sb.WriteString("Signing in...")
		}
	} else {
		sb.WriteString(focusedStyle.Render("Enter") + " to submit, " +
			focusedStyle.Render("Ctrl+T") + " to switch mode, " +
			focusedStyle.Render("Esc") + " to cancel")
		sb.WriteString("\n")
		if m.register {
			sb.WriteString(hintStyle.Render("Already have an account? Ctrl+T to sign in."))
		} else {
			sb.WriteString(hintStyle.Render("Don't have an account? Ctrl+T to sign up."))
		}
	}

	content := sb.String()
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
