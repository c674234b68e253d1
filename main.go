// main.go - entry point: configuration, logging, store construction, and
// the bubbletea program with graceful shutdown.

package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"docchat/src/api"
	"docchat/src/app"
	"docchat/src/config"
	"docchat/src/services/storage"
	"docchat/src/session"
	"docchat/src/settings"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	cfg := config.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	logger.Info("starting docchat", "backend", cfg.APIBaseURL)

	settingsStore := settings.NewStore(storage.NewSettingsRepository(cfg.ConfigDir))
	sessionStore := session.NewStore()
	client := api.NewClient(cfg.APIBaseURL)

	program := tea.NewProgram(
		app.New(sessionStore, settingsStore, client, logger),
		tea.WithAltScreen(),
	)

	setupGracefulShutdown(program, logger)

	if _, err := program.Run(); err != nil {
		logger.Error("application failed", "error", err)
		os.Exit(1)
	}
}

// setupGracefulShutdown sets up signal handling for graceful shutdown
func setupGracefulShutdown(program *tea.Program, logger *slog.Logger) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		logger.Info("received shutdown signal, cleaning up")
		program.Quit()
	}()
}
