package terminal

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/internal/usecase"
)

const boardWidth = 3

type gameScreen interface {
	Tap(ctx context.Context, cell int) error
	Reload(ctx context.Context)
	View() usecase.View
}

// Terminal draws a game screen with tcell and turns key presses into taps.
// It also serves as the screen's toast surface and sound player.
type Terminal struct {
	logger *slog.Logger
	screen tcell.Screen

	cursor int
	toast  *entity.Toast
}

// New - wraps an initialized tcell screen. The caller owns Init and Fini.
func New(logger *slog.Logger, screen tcell.Screen) *Terminal {
	return &Terminal{
		logger: logger.With("component", "terminal"),
		screen: screen,
		cursor: 4,
	}
}

// Notify - shows the toast under the board until the next key press.
func (that *Terminal) Notify(_ context.Context, toast entity.Toast) error {
	that.toast = &toast
	return nil
}

// Play - rings the terminal bell; the terminal has a single sound for every cue.
func (that *Terminal) Play(_ context.Context, _ entity.Cue) error {
	if err := that.screen.Beep(); err != nil {
		return fmt.Errorf("failed to ring bell: %w", err)
	}
	return nil
}

// Run - draws the game and handles keys until quit or ctx is done.
func (that *Terminal) Run(ctx context.Context, game gameScreen) error {
	log := that.logger.With("method", "Run")

	stop := make(chan struct{})
	defer close(stop)

	go func() {
		select {
		case <-ctx.Done():
			_ = that.screen.PostEvent(tcell.NewEventInterrupt(nil))
		case <-stop:
		}
	}()

	that.draw(game.View())

	for {
		switch ev := that.screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventInterrupt:
			if ctx.Err() != nil {
				log.Info("terminal closed", "reason", ctx.Err())
				return nil
			}
		case *tcell.EventResize:
			that.screen.Sync()
		case *tcell.EventKey:
			if that.handleKey(ctx, game, ev) {
				return nil
			}
		}

		that.draw(game.View())
	}
}

// handleKey - applies one key press; reports whether the user asked to quit.
func (that *Terminal) handleKey(ctx context.Context, game gameScreen, ev *tcell.EventKey) bool {
	that.toast = nil

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyEnter:
		that.tap(ctx, game, that.cursor)
	case tcell.KeyUp:
		if that.cursor >= boardWidth {
			that.cursor -= boardWidth
		}
	case tcell.KeyDown:
		if that.cursor < entity.BoardSize-boardWidth {
			that.cursor += boardWidth
		}
	case tcell.KeyLeft:
		if that.cursor%boardWidth > 0 {
			that.cursor--
		}
	case tcell.KeyRight:
		if that.cursor%boardWidth < boardWidth-1 {
			that.cursor++
		}
	case tcell.KeyRune:
		switch r := ev.Rune(); {
		case r == 'q' || r == 'Q':
			return true
		case r == 'r' || r == 'R':
			game.Reload(ctx)
		case r == ' ':
			that.tap(ctx, game, that.cursor)
		case r >= '1' && r <= '9':
			that.cursor = int(r - '1')
			that.tap(ctx, game, that.cursor)
		}
	}

	return false
}

func (that *Terminal) tap(ctx context.Context, game gameScreen, cell int) {
	if err := game.Tap(ctx, cell); err != nil {
		that.logger.Error("tap failed", "cell", cell, "error", err)
	}
}

func (that *Terminal) draw(view usecase.View) {
	that.screen.Clear()

	base := tcell.StyleDefault
	for y, line := range Lines(view, that.cursor, that.toast) {
		style := base
		if y == toastLine && that.toast != nil && that.toast.Kind == entity.ToastAlert {
			style = base.Foreground(tcell.ColorRed).Bold(true)
		}

		for x, r := range []rune(line) {
			that.screen.SetContent(x, y, r, nil, style)
		}
	}

	that.screen.Show()
}
