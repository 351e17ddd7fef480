package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dfarias/obralog/internal/backup"
	"github.com/dfarias/obralog/internal/store"
	"github.com/dfarias/obralog/internal/tui"
)

func main() {
	dbPath, err := store.DefaultDBPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Logs go to a file next to the database; writing to stderr would
	// corrupt the alternate screen.
	log := openLogger(dbPath)

	s, err := store.New(dbPath, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening database: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	stores := store.NewStores(s)
	coordinator := backup.NewCoordinator(stores, log)

	app := tui.NewApp(stores, coordinator)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func openLogger(dbPath string) *slog.Logger {
	logPath := filepath.Join(filepath.Dir(dbPath), "obralog.log")
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(f, nil))
}
