package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/tictactoe/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	LogLevel   string

	// Config is loaded before any subcommand runs.
	Config *config.Config
}

// NewRootCommand creates the root command of the tictactoe binary.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "tictactoe",
		Short: "Two-player tic-tac-toe on one screen",
		Long: `Two players share one 3x3 board and take turns, X first.

Play in the terminal, serve the board to a browser over WebSocket,
or watch the toasts and sound cues of running games on the Redis feed.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := config.Load(opts.ConfigPath)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("log-level") {
				conf.LogLevel = opts.LogLevel
			}

			if !isValidLevel(conf.LogLevel) {
				return fmt.Errorf("invalid log level %q: must be one of %v", conf.LogLevel, validLevels)
			}

			opts.Config = conf
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "config.yml", "path to the YAML config file")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "info", "log level (debug|info|warn|error)")

	cmd.AddCommand(NewPlayCommand(opts))
	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewWatchCommand(opts))

	return cmd
}
