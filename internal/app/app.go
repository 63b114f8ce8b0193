package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/atomicstack/list-creation/internal/backend"
	"github.com/atomicstack/list-creation/internal/source"
	"github.com/atomicstack/list-creation/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// Config describes user-provided application options.
type Config struct {
	Source        string
	Timeout       time.Duration
	RetryInterval time.Duration
	Width         int
	Height        int
	ShowFooter    bool
	Verbose       bool
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	fetcher, err := source.New(cfg.Source, cfg.Timeout)
	if err != nil {
		return fmt.Errorf("resolve source: %w", err)
	}
	loader := backend.NewLoader(fetcher, cfg.RetryInterval)
	defer func() {
		loader.Stop()
		loader.Wait()
	}()
	model := ui.NewModel(cfg.Width, cfg.Height, cfg.ShowFooter, cfg.Verbose, loader)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
