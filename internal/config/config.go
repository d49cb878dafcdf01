package config

import (
	"os"
	"path/filepath"
	"time"
)

// AuthMode selects how the client proves an established session.
type AuthMode string

const (
	// ModeCookie relies on the HTTP cookie jar; the service owns the
	// credential and the client only round-trips it.
	ModeCookie AuthMode = "cookie"
	// ModeToken carries an opaque bearer token persisted locally.
	ModeToken AuthMode = "token"
)

type Config struct {
	ServiceURL      string
	Mode            AuthMode
	StateDir        string
	DBPath          string
	SessionPath     string
	LogPath         string
	RequestTimeout  time.Duration
	RecheckInterval time.Duration
}

func Default() Config {
	stateDir := getenv("MEMORIQ_STATE_DIR", filepath.Join(userConfigDir(), "memoriq"))
	return Config{
		ServiceURL:      getenv("MEMORIQ_SERVICE_URL", "http://localhost:8001"),
		Mode:            parseMode(os.Getenv("MEMORIQ_AUTH_MODE")),
		StateDir:        stateDir,
		DBPath:          filepath.Join(stateDir, "credentials.db"),
		SessionPath:     filepath.Join(stateDir, "session.json"),
		LogPath:         filepath.Join(stateDir, "debug.log"),
		RequestTimeout:  10 * time.Second,
		RecheckInterval: 5 * time.Minute,
	}
}

func parseMode(s string) AuthMode {
	if s == string(ModeToken) {
		return ModeToken
	}
	return ModeCookie
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func userConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}
