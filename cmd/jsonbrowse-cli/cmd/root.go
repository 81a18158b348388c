package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"jsonbrowse/internal/adapters/placeholder"
	"jsonbrowse/internal/adapters/sqlite"
	"jsonbrowse/internal/application"
	"jsonbrowse/internal/config"
	"jsonbrowse/internal/logging"
)

var (
	configPath string
	verbose    bool

	cfg      config.Config
	logger   *zap.Logger
	store    *sqlite.Store
	renderer *application.Renderer
)

var rootCmd = &cobra.Command{
	Use:   "jsonbrowse-cli",
	Short: "Browse and edit jsonbrowse data from the command line",
	Long: `jsonbrowse-cli renders the same pages as the jsonbrowse TUI as plain
text, and edits the local users stored next to the remote ones.

Locations are fragments such as #users, #users#todos?userId=1,
#users#posts?userId=1 and #users#posts#comments?postId=1.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		return setup()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if store != nil {
			return store.Close()
		}
		return nil
	},
}

func setup() error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}

	level := "warn"
	if verbose {
		level = "debug"
	}
	logger, err = logging.New(level, "")
	if err != nil {
		return err
	}

	store, err = sqlite.Open(cfg.StorePath, logger)
	if err != nil {
		return err
	}

	remote, err := placeholder.NewClient(cfg.APIBase, cfg.Timeout)
	if err != nil {
		return err
	}
	renderer = application.NewRenderer(remote, store, logger)
	return nil
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default "+config.DefaultConfigPath+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")
}
