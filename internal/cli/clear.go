package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newClearCmd(st *cliState) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all notes",
		Long: `Delete every note. The theme setting is kept.
Consider 'sticky export' first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := st.open()
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			count := a.Store.Len()
			if count == 0 {
				fmt.Fprintln(out, "Nothing to clear.")
				return nil
			}

			if !force && !confirm(cmd.InOrStdin(), out, fmt.Sprintf("Delete all %d notes? (y/N): ", count)) {
				fmt.Fprintln(out, "Aborted.")
				return nil
			}

			a.Store.ClearAll()
			fmt.Fprintf(out, "🧹 Cleared %d notes.\n", count)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Do not ask for confirmation")
	return cmd
}
