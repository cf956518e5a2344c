package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pacphi/statusboard/pkg/config"
)

// Run starts the interactive dashboard and blocks until the user quits
func Run(ctx context.Context, cfg *config.Config, source DataSource) error {
	model := New(ctx, cfg, source)

	program := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	return nil
}
