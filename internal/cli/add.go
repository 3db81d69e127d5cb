package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/existflow/sticky/internal/model"
	"github.com/spf13/cobra"
)

func newAddCmd(st *cliState) *cobra.Command {
	var body, color, due string

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a new note",
		Long: `Add a new note. A note needs a title or a body.

Examples:
  sticky add "Buy groceries"
  sticky add "Pay rent" --due 2026-05-01T09:00
  sticky add "Stand-up" --due +15m --color green
  sticky add --body "just a thought"
  echo "long text" | sticky add "From stdin" --body -`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if body == "-" {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read body: %w", err)
				}
				body = string(data)
			}

			a, err := st.open()
			if err != nil {
				return err
			}
			defer a.Close()

			dueAt, err := model.ParseDue(due, a.Store.Now())
			if err != nil {
				return err
			}

			n, err := a.Store.Create(model.FormData{
				Title: strings.Join(args, " "),
				Body:  body,
				Color: color,
				DueAt: dueAt,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Added %s: %q\n", shortID(n.ID), n.DisplayTitle())
			if n.HasReminder() {
				fmt.Fprintf(cmd.OutOrStdout(), "  reminder %s\n", dueLabel(&n, a.Store.Now()))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&body, "body", "b", "", `Note text ("-" reads stdin)`)
	cmd.Flags().StringVarP(&color, "color", "c", "", "Color name (yellow, green, blue, purple, pink, orange, gray) or hex")
	cmd.Flags().StringVarP(&due, "due", "d", "", "Reminder time (YYYY-MM-DDTHH:MM, RFC 3339 or +30m)")
	return cmd
}
