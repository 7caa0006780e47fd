package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"dockpeek/internal/backend"
	"dockpeek/internal/docker"
	"dockpeek/internal/logging/events"
	"dockpeek/internal/ui"
)

const (
	listInterval = 1500 * time.Millisecond
	pingTimeout  = 5 * time.Second
)

// Config describes user-provided application options.
type Config struct {
	Bin           string
	Host          string
	Container     string
	Width         int
	Height        int
	ShowFooter    bool
	Verbose       bool
	TopInterval   time.Duration
	StatsInterval time.Duration
	LogTail       int
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	client := docker.NewClient(cfg.Bin, cfg.Host)
	pingCtx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if _, err := client.Ping(pingCtx); err != nil {
		return fmt.Errorf("contact container runtime: %w", err)
	}
	watcher := backend.NewListWatcher(client, listInterval)
	defer watcher.Stop()
	model := ui.NewModel(client, watcher, ui.Options{
		Width:         cfg.Width,
		Height:        cfg.Height,
		ShowFooter:    cfg.ShowFooter,
		Verbose:       cfg.Verbose,
		Container:     cfg.Container,
		TopInterval:   cfg.TopInterval,
		StatsInterval: cfg.StatsInterval,
		LogTail:       cfg.LogTail,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	switch {
	case errors.Is(err, tea.ErrProgramKilled):
		events.App.Shutdown("killed")
		return nil
	case err != nil:
		events.App.Shutdown("error")
		return err
	}
	events.App.Shutdown("quit")
	return nil
}
