package cli

import (
	"fmt"

	"github.com/existflow/sticky/internal/model"
	"github.com/spf13/cobra"
)

func newEditCmd(st *cliState) *cobra.Command {
	var title, body, color, due string
	var noDue bool

	cmd := &cobra.Command{
		Use:   "edit [note-id]",
		Short: "Edit a note",
		Long: `Edit a note by its ID or a unique ID prefix. Only the given fields
change. Editing re-arms the reminder.

Examples:
  sticky edit 3f2a --title "Pay rent (late)"
  sticky edit 3f2a --due +1h
  sticky edit 3f2a --no-due`,
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

			form := model.FormData{Title: n.Title, Body: n.Body, Color: n.Color, DueAt: n.DueAt}
			flags := cmd.Flags()
			if flags.Changed("title") {
				form.Title = title
			}
			if flags.Changed("body") {
				form.Body = body
			}
			if flags.Changed("color") {
				form.Color = color
			}
			if flags.Changed("due") {
				if form.DueAt, err = model.ParseDue(due, a.Store.Now()); err != nil {
					return err
				}
			}
			if noDue {
				form.DueAt = nil
			}

			updated, found, err := a.Store.Update(n.ID, form)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("note not found: %s", args[0])
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✎ Updated %s: %q\n", shortID(updated.ID), updated.DisplayTitle())
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&body, "body", "b", "", "New text")
	cmd.Flags().StringVarP(&color, "color", "c", "", "New color name or hex")
	cmd.Flags().StringVarP(&due, "due", "d", "", "New reminder time")
	cmd.Flags().BoolVar(&noDue, "no-due", false, "Remove the reminder")
	cmd.MarkFlagsMutuallyExclusive("due", "no-due")
	return cmd
}
