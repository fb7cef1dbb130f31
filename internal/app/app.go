// Package app wires configuration, pages and the Bubble Tea program.
package app

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kyaoi/mdtabs/internal/config"
	"github.com/kyaoi/mdtabs/internal/locale"
	"github.com/kyaoi/mdtabs/internal/logging"
	"github.com/kyaoi/mdtabs/internal/ui"
)

// Run executes the Bubble Tea program for the tabbed viewer.
func Run(ctx context.Context, target string, cfg config.Config) error {
	state, err := Prepare(target, cfg)
	if err != nil {
		return err
	}
	return runProgram(ctx, state)
}

// Prepare loads the target and applies cfg to the resulting state.
func Prepare(target string, cfg config.Config) (ui.State, error) {
	log := logging.Logger()
	msgs := locale.New(cfg.UI.Lang)

	state, err := LoadInitialState(target, cfg.UI.Tag, msgs)
	if err != nil {
		log.Error("load failed", "target", target, "err", err)
		return ui.State{}, err
	}
	state.Style = cfg.Style()
	state.Fill = cfg.FillMode()
	state.Logger = log
	log.Info("pages loaded", "target", target, "count", len(state.Pages), "fill", state.Fill.String())
	return state, nil
}

func runProgram(ctx context.Context, state ui.State) error {
	model := ui.NewModel(state)
	defer model.Close()

	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
