package main

import (
	"fmt"
	"log"
	"os"

	"github.com/memoriq/memoriq-tui/internal/config"
	"github.com/memoriq/memoriq-tui/internal/credstore"
	"github.com/memoriq/memoriq-tui/internal/monitor"
	"github.com/memoriq/memoriq-tui/internal/session"
	"github.com/memoriq/memoriq-tui/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	cfg := config.Default()

	if err := os.MkdirAll(cfg.StateDir, 0o755); err != nil {
		log.Fatalf("creating state dir: %v", err)
	}

	// The terminal belongs to the TUI; everything logged goes to a file.
	logFile, err := os.OpenFile(cfg.LogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.Fatalf("opening log file: %v", err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)

	creds, err := credstore.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("opening credential store: %v", err)
	}
	defer creds.Close()

	strategy, err := buildStrategy(cfg, creds)
	if err != nil {
		log.Fatalf("configuring credentials: %v", err)
	}

	store := session.NewStore()
	client := session.NewClient(cfg.ServiceURL, store, strategy)

	provider := session.NewProvider(client)
	defer provider.Close()

	mon := monitor.New(provider.Session(), cfg.RecheckInterval)
	app := ui.NewApp(cfg, provider.Session(), mon)
	p := tea.NewProgram(app, tea.WithAltScreen())
	app.SetProgram(p)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func buildStrategy(cfg config.Config, creds *credstore.Store) (session.CredentialStrategy, error) {
	if cfg.Mode == config.ModeToken {
		return session.NewBearerStrategy(creds, cfg.RequestTimeout), nil
	}
	return session.NewCookieStrategy(cfg.ServiceURL, cfg.SessionPath, cfg.RequestTimeout)
}
