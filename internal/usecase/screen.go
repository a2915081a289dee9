package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/internal/tictactoe"
)

const (
	msgCellOccupied = "Cell is already occupied!"
	msgDraw         = "It's a draw!"

	labelReload   = "Reload Game"
	labelNewRound = "Start New Game"
)

// Notifier - the notification surface that shows toasts.
type Notifier interface {
	Notify(ctx context.Context, toast entity.Toast) error
}

// SoundPlayer - plays sound cues.
type SoundPlayer interface {
	Play(ctx context.Context, cue entity.Cue) error
}

// View - what a presentation layer renders for the current state.
type View struct {
	Cells      entity.Board   `json:"cells"`
	Turn       entity.Mark    `json:"turn"`
	Outcome    entity.Outcome `json:"outcome"`
	Status     string         `json:"status"`
	ResetLabel string         `json:"reset_label"`
}

// Screen owns the state of one game and performs the side effects the engine leaves to its caller.
// It is not safe for concurrent use.
type Screen struct {
	logger *slog.Logger

	notifier Notifier
	player   SoundPlayer

	state entity.GameState
}

func NewScreen(logger *slog.Logger, notifier Notifier, player SoundPlayer) *Screen {
	return &Screen{
		logger:   logger.With("component", "screen"),
		notifier: notifier,
		player:   player,
		state:    tictactoe.Reset(),
	}
}

// Tap - handles a tap on a cell. Rejected moves are reported through the notifier
// and do not return an error; only an out of range cell does.
func (that *Screen) Tap(ctx context.Context, cell int) error {
	log := that.logger.With("method", "Tap", "cell", cell)

	previous := that.state.Outcome

	next, err := tictactoe.PlaceMark(that.state, cell)
	switch {
	case errors.Is(err, apperror.ErrCellOccupied):
		that.notify(ctx, entity.Toast{Kind: entity.ToastAlert, Text: msgCellOccupied})
		return nil
	case errors.Is(err, apperror.ErrGameAlreadyOver):
		that.notify(ctx, entity.Toast{Kind: entity.ToastInfo, Text: OutcomeMessage(previous)})
		return nil
	case err != nil:
		log.Error("rejected tap", "error", err)
		return fmt.Errorf("failed to place mark: %w", err)
	}

	that.state = next

	if previous.IsInProgress() && next.Outcome.IsFinished() {
		log.Info("game finished", "status", next.Outcome.Status, "winner", next.Outcome.Winner)
		that.play(ctx, cueFor(next.Outcome))
	}

	return nil
}

// Reload - starts over; available at any time.
func (that *Screen) Reload(_ context.Context) {
	that.logger.Debug("game reloaded", "was", that.state.Outcome.Status)
	that.state = tictactoe.Reset()
}

// State - a copy of the current game state.
func (that *Screen) State() entity.GameState {
	return that.state
}

func (that *Screen) View() View {
	view := View{
		Cells:      that.state.Board,
		Turn:       that.state.Turn,
		Outcome:    that.state.Outcome,
		Status:     StatusLine(that.state),
		ResetLabel: labelReload,
	}

	if that.state.Outcome.IsFinished() {
		view.ResetLabel = labelNewRound
	}

	return view
}

// StatusLine - the active player, or the outcome message once the game is over.
func StatusLine(state entity.GameState) string {
	if state.Outcome.IsFinished() {
		return OutcomeMessage(state.Outcome)
	}
	return fmt.Sprintf("Player %s's Turn", state.Turn)
}

// OutcomeMessage - human readable outcome; empty while the game is in progress.
func OutcomeMessage(outcome entity.Outcome) string {
	switch outcome.Status {
	case entity.StatusWin:
		return fmt.Sprintf("%s won the game!", outcome.Winner)
	case entity.StatusDraw:
		return msgDraw
	default:
		return ""
	}
}

func cueFor(outcome entity.Outcome) entity.Cue {
	if outcome.Status == entity.StatusDraw {
		return entity.CueDraw
	}
	return entity.CueWin
}

func (that *Screen) notify(ctx context.Context, toast entity.Toast) {
	if that.notifier == nil {
		return
	}

	if err := that.notifier.Notify(ctx, toast); err != nil {
		that.logger.Error("failed to show toast", "toast", toast.Text, "error", err)
	}
}

func (that *Screen) play(ctx context.Context, cue entity.Cue) {
	if that.player == nil {
		return
	}

	if err := that.player.Play(ctx, cue); err != nil {
		that.logger.Error("failed to play sound", "cue", cue, "error", err)
	}
}
