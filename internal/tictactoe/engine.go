package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

// WinCombos - every line of three; checked in this order.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Reset - returns the canonical start state: empty board, X to move, game in progress.
func Reset() entity.GameState {
	return entity.GameState{
		Turn:    entity.PlayerX,
		Outcome: entity.InProgress(),
	}
}

// PlaceMark - puts the mark of the player to move into cell and returns the next state.
// On error the given state is returned untouched.
func PlaceMark(state entity.GameState, cell int) (entity.GameState, error) {
	if err := validateMove(state, cell); err != nil {
		return state, err
	}

	next := state
	next.Board[cell] = state.Turn
	next.Turn = state.Turn.Opponent()
	next.Outcome = EvaluateOutcome(next.Board)

	return next, nil
}

// validateMove - checks if the move is valid.
func validateMove(state entity.GameState, cell int) error {
	if cell < 0 || cell >= entity.BoardSize {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if !state.Outcome.IsInProgress() {
		return apperror.ErrGameAlreadyOver
	}

	if !state.Board[cell].IsEmpty() {
		return apperror.ErrCellOccupied
	}

	return nil
}

// EvaluateOutcome - derives the outcome from the board alone.
func EvaluateOutcome(board entity.Board) entity.Outcome {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if !a.IsEmpty() && a == b && b == c {
			return entity.Win(a)
		}
	}

	if board.IsFull() {
		return entity.Draw()
	}

	return entity.InProgress()
}
