package cli

import (
	"fmt"

	"github.com/existflow/sticky/internal/app"
	"github.com/existflow/sticky/internal/config"
	"github.com/existflow/sticky/internal/logger"
	"github.com/spf13/cobra"
)

// cliState is shared by the commands of one root command tree
type cliState struct {
	cfg *config.Config

	logLevel   string
	logFile    string
	logConsole bool
	dataPath   string
}

// NewRootCmd builds the sticky command tree
func NewRootCmd() *cobra.Command {
	st := &cliState{}

	rootCmd := &cobra.Command{
		Use:   "sticky",
		Short: "Sticky - terminal sticky notes with reminders",
		Long: `Sticky keeps colored notes with optional due-date reminders.

Run 'sticky' without arguments to open the interactive board.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return st.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoard(cmd, st)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Info("Sticky exiting", logger.F("command", cmd.Name()))
			logger.Close()
		},
	}

	rootCmd.PersistentFlags().StringVar(&st.logLevel, "log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().StringVar(&st.logFile, "log-file", "", "Path to log file")
	rootCmd.PersistentFlags().BoolVar(&st.logConsole, "log-console", false, "Enable console logging")
	rootCmd.PersistentFlags().StringVar(&st.dataPath, "data", "", "Path to the notes database (not saved)")

	rootCmd.AddCommand(
		newAddCmd(st),
		newEditCmd(st),
		newListCmd(st),
		newShowCmd(st),
		newDeleteCmd(st),
		newClearCmd(st),
		newNotifiedCmd(st),
		newExportCmd(st),
		newImportCmd(st),
		newThemeCmd(st),
		newWatchCmd(st),
		newBoardCmd(st),
		newServeCmd(st),
	)

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

// setup loads the config, applies flag overrides and starts the logger
func (st *cliState) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		logger.Warn("Failed to load config, using defaults", logger.F("error", err))
		cfg = config.DefaultConfig()
	}

	// Log overrides are remembered; --data applies to this run only
	configChanged := false
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = st.logLevel
		configChanged = true
	}
	if cmd.Flags().Changed("log-file") {
		cfg.LogFile = st.logFile
		configChanged = true
	}
	if cmd.Flags().Changed("log-console") {
		cfg.LogConsole = st.logConsole
		configChanged = true
	}

	if configChanged {
		if err := cfg.Save(); err != nil {
			logger.Warn("Failed to save config", logger.F("error", err))
		}
	}

	if cmd.Flags().Changed("data") {
		cfg.DataPath = st.dataPath
	}

	logConfig := logger.Config{
		Level:      logger.ParseLevel(cfg.LogLevel),
		FilePath:   cfg.LogFile,
		MaxSize:    10 * 1024 * 1024, // 10MB
		MaxAge:     7,
		MaxBackups: 5,
		Console:    cfg.LogConsole,
	}

	if err := logger.Init(logConfig); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	st.cfg = cfg
	logger.Info("Sticky started", logger.F("command", cmd.Name()))
	return nil
}

// open opens the notes database for one command
func (st *cliState) open() (*app.App, error) {
	return app.Open(st.cfg)
}
