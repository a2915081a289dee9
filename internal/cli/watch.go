package cli

import (
	"github.com/spf13/cobra"

	app "github.com/rocketscienceinc/tictactoe/internal"
)

// NewWatchCommand creates the watch command.
func NewWatchCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print events from the Redis feed",
		Long: `Subscribe to redis.channel and print every toast and sound cue
as one JSON object per line. Logs go to stderr.

Examples:
  tictactoe watch
  REDIS_ENABLED=true REDIS_HOST=cache tictactoe watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf := rootOpts.Config
			logger := NewLogger(conf.LogLevel, cmd.ErrOrStderr())

			return app.RunWatch(cmd.Context(), logger, conf, cmd.OutOrStdout())
		},
	}
}
