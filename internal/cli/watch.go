package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/existflow/sticky/internal/logger"
	"github.com/existflow/sticky/internal/reminder"
	"github.com/spf13/cobra"
)

func newWatchCmd(st *cliState) *cobra.Command {
	var once bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Ring the terminal when reminders come due",
		Long: `Check for due reminders every reminder_interval and print them.
Each reminder fires once; use 'sticky notified --reset' to re-arm it.

When stdout is not a terminal the reminders are still marked as handled
but nothing is shown.

Examples:
  sticky watch
  sticky watch --once`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := st.open()
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			notifier := reminder.NewTerminalNotifier(out)
			mon := a.NewMonitor(notifier)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if once {
				if _, err := notifier.RequestPermission(ctx); err != nil {
					return err
				}
				res := mon.Scan(ctx)
				fmt.Fprintf(out, "%d due, %d shown\n", res.Due, res.Dispatched)
				return nil
			}

			if err := mon.Start(ctx); err != nil {
				return err
			}
			defer mon.Stop()

			if notifier.Permission() != reminder.PermissionGranted {
				fmt.Fprintln(out, "⚠ stdout is not a terminal: reminders will be marked but not shown")
			}
			fmt.Fprintf(out, "Watching %d notes every %s. Press Ctrl+C to stop.\n", a.Store.Len(), mon.Interval())

			<-ctx.Done()
			logger.Info("Watch stopped", logger.F("reason", context.Cause(ctx)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&once, "once", false, "Check once and exit")
	return cmd
}
