package notify

import (
	"context"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

// Log writes toasts and cues to a logger. Used when no screen or speaker is attached.
type Log struct {
	logger *slog.Logger
}

func NewLog(logger *slog.Logger) *Log {
	return &Log{logger: logger.With("component", "notify")}
}

func (that *Log) Notify(ctx context.Context, toast entity.Toast) error {
	that.logger.InfoContext(ctx, "toast", "kind", toast.Kind, "text", toast.Text)
	return nil
}

func (that *Log) Play(ctx context.Context, cue entity.Cue) error {
	that.logger.InfoContext(ctx, "sound", "cue", cue)
	return nil
}
