package notify

import (
	"context"
	"errors"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/internal/usecase"
)

type toasts []usecase.Notifier

// Toasts - delivers every toast to each non-nil notifier.
func Toasts(notifiers ...usecase.Notifier) usecase.Notifier {
	out := make(toasts, 0, len(notifiers))
	for _, n := range notifiers {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

func (that toasts) Notify(ctx context.Context, toast entity.Toast) error {
	var errs []error
	for _, n := range that {
		if err := n.Notify(ctx, toast); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type cues []usecase.SoundPlayer

// Cues - plays every cue on each non-nil player.
func Cues(players ...usecase.SoundPlayer) usecase.SoundPlayer {
	out := make(cues, 0, len(players))
	for _, p := range players {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}

func (that cues) Play(ctx context.Context, cue entity.Cue) error {
	var errs []error
	for _, p := range that {
		if err := p.Play(ctx, cue); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
