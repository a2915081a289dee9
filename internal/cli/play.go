package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	app "github.com/rocketscienceinc/tictactoe/internal"
)

// NewPlayCommand creates the play command.
func NewPlayCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal",
		Long: `Play a hot-seat game in the terminal.

Keys: 1-9 place a mark, arrows move the cursor, Enter or Space place at
the cursor, r reloads the game, q or Esc quits.

Logs are written to log-file when it is set and discarded otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf := rootOpts.Config

			var logOut io.Writer = io.Discard
			if conf.LogFile != "" {
				file, err := os.OpenFile(conf.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
				if err != nil {
					return fmt.Errorf("failed to open log file: %w", err)
				}
				defer file.Close()

				logOut = file
			}

			return app.RunTerminal(cmd.Context(), NewLogger(conf.LogLevel, logOut), conf)
		},
	}
}
