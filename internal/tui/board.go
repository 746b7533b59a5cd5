package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/polochon-xp/app-le-lapin-blanc-sub000/internal/engine"
)

// RunBoard opens the dashboard TUI.
func RunBoard(ctx context.Context, svc *engine.Service, out io.Writer) error {
	m := newBoardModel(ctx, svc)
	p := tea.NewProgram(m, tea.WithOutput(out))
	_, err := p.Run()
	return err
}

// RunFocus opens the focus-timer TUI for one mission. The bubbletea 1 Hz
// tick is the clock source driving the engine countdown.
func RunFocus(ctx context.Context, svc *engine.Service, missionID string, out io.Writer) error {
	m, err := newFocusModel(ctx, svc, missionID)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithOutput(out))
	_, err = p.Run()
	return err
}
