package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func newDeleteCmd(st *cliState) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete [note-id]",
		Aliases: []string{"rm"},
		Short:   "Delete a note",
		Long: `Delete a note by its ID or a unique ID prefix.

Asks for confirmation unless confirm_delete is off or --yes is given.

Examples:
  sticky delete 3f2a9c
  sticky rm 3f2a -y`,
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

			out := cmd.OutOrStdout()
			if st.cfg.ConfirmDelete && !yes {
				fmt.Fprintf(out, "About to delete: %q (ID: %s)\n", n.DisplayTitle(), n.ID)
				if !confirm(cmd.InOrStdin(), out, "Are you sure? [y/N]: ") {
					fmt.Fprintln(out, "Cancelled.")
					return nil
				}
			}

			if !a.Store.Delete(n.ID) {
				return fmt.Errorf("note not found: %s", args[0])
			}
			fmt.Fprintf(out, "🗑️  Deleted: %q\n", n.DisplayTitle())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

// confirm prints prompt and reports whether the answer was y or yes
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	line, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
