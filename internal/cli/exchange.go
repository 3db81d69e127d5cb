package cli

import (
	"fmt"

	"github.com/existflow/sticky/internal/exchange"
	"github.com/spf13/cobra"
)

func newExportCmd(st *cliState) *cobra.Command {
	var dir string
	var toStdout bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all notes to a JSON file",
		Long: `Write every note to sticky-notes-<date>-<time>.json.

Examples:
  sticky export
  sticky export --dir ~/backups
  sticky export --stdout > notes.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := st.open()
			if err != nil {
				return err
			}
			defer a.Close()

			all := a.Store.All()
			if toStdout {
				return exchange.Export(cmd.OutOrStdout(), all)
			}

			if !cmd.Flags().Changed("dir") {
				dir = st.cfg.ExportDir
			}
			path, err := exchange.ExportFile(dir, all, a.Store.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "📦 Exported %d notes to %s\n", len(all), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Directory to write to (default: export_dir from config)")
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "Write JSON to stdout instead of a file")
	return cmd
}

func newImportCmd(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]",
		Short: "Import notes from a JSON file",
		Long: `Add the notes of an exported JSON file in front of the existing ones.
Nothing is replaced: colliding IDs get fresh ones.

Examples:
  sticky import sticky-notes-2026-04-10-090000.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := st.open()
			if err != nil {
				return err
			}
			defer a.Close()

			imported, err := exchange.ImportFile(args[0], exchange.Options{
				NewID: a.Store.NewID,
				Now:   a.Store.Now,
			})
			if err != nil {
				return err
			}

			merged := a.Store.Merge(imported)
			fmt.Fprintf(cmd.OutOrStdout(), "📥 Imported %d notes (%d total)\n", len(merged), a.Store.Len())
			return nil
		},
	}
}
