package cli

import (
	"fmt"

	"github.com/existflow/sticky/internal/exchange"
	"github.com/existflow/sticky/internal/model"
	"github.com/spf13/cobra"
)

func newListCmd(st *cliState) *cobra.Command {
	var filterName, search string
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List notes",
		Long: `List notes, newest first.

Examples:
  sticky list
  sticky list --filter overdue
  sticky ls -s groceries
  sticky list --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := model.ParseFilter(filterName)
			if err != nil {
				return err
			}

			a, err := st.open()
			if err != nil {
				return err
			}
			defer a.Close()

			list := a.Store.List(filter, search)
			out := cmd.OutOrStdout()
			if asJSON {
				return exchange.Export(out, list)
			}

			if len(list) == 0 {
				if a.Store.Len() == 0 {
					fmt.Fprintln(out, "No notes yet. Add one with: sticky add \"Your note\"")
				} else {
					fmt.Fprintln(out, "No notes match.")
				}
				return nil
			}

			title := "Notes"
			if filter != model.FilterAll {
				title = fmt.Sprintf("Notes (%s)", filter)
			}
			printNotes(out, title, list, a.Store.Now())
			return nil
		},
	}

	cmd.Flags().StringVarP(&filterName, "filter", "f", "all", "Filter: all, overdue, upcoming")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Case-insensitive text in title or body")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print notes as a JSON array")
	return cmd
}

func newShowCmd(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "show [note-id]",
		Short: "Show a note",
		Args:  cobra.ExactArgs(1),
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
			printNote(cmd.OutOrStdout(), &n, a.Store.Now())
			return nil
		},
	}
}
