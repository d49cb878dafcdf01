// Package monitor re-validates the session in the background so a session
// revoked or expired server-side is noticed without user interaction.
package monitor

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/memoriq/memoriq-tui/internal/session"
	"github.com/memoriq/memoriq-tui/internal/ui/messages"
)

// Monitor periodically runs the silent status check while a session is
// authenticated.
type Monitor struct {
	client   *session.Client
	interval time.Duration
	program  *tea.Program
	stopCh   chan struct{}
}

// New creates a new background monitor.
func New(client *session.Client, interval time.Duration) *Monitor {
	return &Monitor{
		client:   client,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the background polling loop.
func (m *Monitor) Start(program *tea.Program) {
	m.program = program
	go m.loop()
}

// Stop halts the background polling.
func (m *Monitor) Stop() {
	select {
	case <-m.stopCh:
	default:
		close(m.stopCh)
	}
}

func (m *Monitor) loop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stopCh:
			return
		case <-ticker.C:
			m.poll()
		}
	}
}

func (m *Monitor) poll() {
	// Only an established session is worth re-checking; an anonymous one
	// has nothing to expire.
	if !m.client.State().Authenticated {
		return
	}

	if !m.client.CheckAuthStatus(context.Background()) && m.program != nil {
		m.program.Send(messages.SessionExpiredMsg{})
	}
}
