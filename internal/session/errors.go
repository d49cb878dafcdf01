package session

// AuthError is a rejection from the service carrying a message fit to show
// the user. Transport and decoding failures are wrapped separately so the UI
// can tell "bad credentials" from "service unreachable".
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}
