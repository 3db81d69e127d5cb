package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/existflow/sticky/internal/reminder"
	"github.com/existflow/sticky/server"
	"github.com/spf13/cobra"
)

func newServeCmd(st *cliState) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the notes as a local JSON API",
		Long: `Start the local HTTP API for a browser front-end. Reminders are
checked in the background and written to the log.

Examples:
  sticky serve
  sticky serve --addr 127.0.0.1:9000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = st.cfg.ListenAddr
			}

			a, err := st.open()
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			mon := a.NewMonitor(reminder.NewLogNotifier())
			if err := mon.Start(ctx); err != nil {
				return err
			}
			defer mon.Stop()

			out := cmd.OutOrStdout()
			srv := server.New(a.Store, a.Prefs, server.WithAccessLog(out))
			fmt.Fprintf(out, "Sticky API listening on http://%s\n", addr)
			return srv.Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: listen_addr from config)")
	return cmd
}
