package messages

import "github.com/memoriq/memoriq-tui/internal/session"

// View transition messages.
type (
	OpenAuthMsg struct{ Register bool }
	GoBackMsg   struct{}
)

// Session messages.
type (
	// BootstrapDoneMsg reports the startup silent re-authentication.
	BootstrapDoneMsg struct {
		OK   bool
		User *session.User
	}

	// AuthResultMsg reports a login or registration attempt.
	AuthResultMsg struct {
		Username string
		Err      error
	}

	// SignedOutMsg reports a local sign-out.
	SignedOutMsg struct{}

	// SessionExpiredMsg is sent by the background monitor when a session
	// that was authenticated stops validating.
	SessionExpiredMsg struct{}
)
