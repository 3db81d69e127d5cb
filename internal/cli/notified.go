package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newNotifiedCmd(st *cliState) *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:     "notified [note-id]",
		Aliases: []string{"ack"},
		Short:   "Mark a reminder as handled, or re-arm it",
		Long: `Mark a note's reminder as already notified so it will not fire,
or re-arm it with --reset so it fires again on the next check.

Examples:
  sticky notified 3f2a
  sticky notified 3f2a --reset`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := st.open()
			if err != nil {
				return err
			}
			defer a.Close()

			n, err := a.Store.Resolve(args[0])
			if err != nil {
				return err
			}
			if !a.Store.SetNotified(n.ID, !reset) {
				return fmt.Errorf("note not found: %s", args[0])
			}

			out := cmd.OutOrStdout()
			switch {
			case reset && !n.HasReminder():
				fmt.Fprintf(out, "○ Re-armed %q, but it has no due date\n", n.DisplayTitle())
			case reset:
				fmt.Fprintf(out, "○ Re-armed: %q\n", n.DisplayTitle())
			default:
				fmt.Fprintf(out, "✓ Marked notified: %q\n", n.DisplayTitle())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "Clear the notified flag")
	return cmd
}
