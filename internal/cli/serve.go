package cli

import (
	"github.com/spf13/cobra"

	app "github.com/rocketscienceinc/tictactoe/internal"
)

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the board over WebSocket",
		Long: `Serve /ping on http-port and the game screen on socket-port at /ws.

Every WebSocket connection gets its own board. When redis.enabled is set,
toasts and sound cues are also published to redis.channel.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf := rootOpts.Config
			return app.RunServer(cmd.Context(), NewLogger(conf.LogLevel, cmd.OutOrStdout()), conf)
		},
	}
}
