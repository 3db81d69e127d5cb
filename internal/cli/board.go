package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/sticky/internal/logger"
	"github.com/existflow/sticky/internal/tui"
	"github.com/spf13/cobra"
)

func newBoardCmd(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Open the interactive board (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoard(cmd, st)
		},
	}
}

func runBoard(cmd *cobra.Command, st *cliState) error {
	a, err := st.open()
	if err != nil {
		return err
	}
	defer a.Close()

	alerts := tui.NewAlertNotifier(32)
	mon := a.NewMonitor(alerts)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	if err := mon.Start(ctx); err != nil {
		return err
	}
	defer mon.Stop()

	logger.Info("Launching TUI")
	m := tui.NewModel(tui.Options{
		Store:         a.Store,
		Prefs:         a.Prefs,
		Alerts:        alerts.C(),
		ExportDir:     st.cfg.ExportDir,
		ConfirmDelete: st.cfg.ConfirmDelete,
	})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", logger.F("error", err))
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	logger.Info("TUI exited normally")
	return nil
}
