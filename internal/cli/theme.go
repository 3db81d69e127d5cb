package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newThemeCmd(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [dark|light|toggle]",
		Short:     "Show or change the board theme",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"dark", "light", "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := st.open()
			if err != nil {
				return err
			}
			defer a.Close()

			dark := a.Prefs.Dark()
			if len(args) == 1 {
				switch args[0] {
				case "dark":
					dark = true
				case "light":
					dark = false
				case "toggle":
					dark = !dark
				}
				if err := a.Prefs.SetDark(dark); err != nil {
					return fmt.Errorf("failed to save theme: %w", err)
				}
			}

			if dark {
				fmt.Fprintln(cmd.OutOrStdout(), "🌙 dark")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "☀️  light")
			}
			return nil
		},
	}
}
