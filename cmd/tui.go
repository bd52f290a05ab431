package main

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/myflix/flix/internal/shared"
	"github.com/myflix/flix/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for browsing the catalog.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.svc == nil {
		return fmt.Errorf("%w: catalog service not initialized", shared.ErrServiceUnavailable)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/flix-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	toastDur := time.Duration(r.config.UI.ToastSeconds) * time.Second
	if toastDur <= 0 {
		toastDur = 3 * time.Second
	}

	model := ui.NewModel(ctx, r.svc, r.session, r.favs, toastDur)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// tuiCommand returns the top-level TUI command for interactive browsing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for browsing the catalog",
		Action:  r.TUI,
	}
}
