package tictactoe

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	x = entity.PlayerX
	o = entity.PlayerO
	e = entity.EmptyCell
)

func playMoves(t *testing.T, cells ...int) entity.GameState {
	t.Helper()

	state := Reset()
	for i, cell := range cells {
		next, err := PlaceMark(state, cell)
		require.NoError(t, err, "move %d (cell %d)", i, cell)
		state = next
	}

	return state
}

func TestReset(t *testing.T) {
	// When: a fresh game is requested
	state := Reset()

	// Then: the board is empty, X moves first and the game is in progress
	expected := entity.GameState{
		Board:   entity.Board{e, e, e, e, e, e, e, e, e},
		Turn:    entity.PlayerX,
		Outcome: entity.Outcome{Status: entity.StatusInProgress},
	}

	require.Equal(t, expected, state)
}

func TestReset_AfterFinishedGame(t *testing.T) {
	// Given: a game X has already won
	finished := playMoves(t, 0, 4, 1, 5, 2)
	require.Equal(t, entity.Win(x), finished.Outcome)

	// When: the game is reset
	state := Reset()

	// Then: the canonical start state is returned regardless of what came before
	assert.Equal(t, Reset(), state)
	assert.NotEqual(t, finished, state)
}

func TestPlaceMark(t *testing.T) {
	t.Run("Successful placement", func(t *testing.T) {
		// Given: a new game
		state := Reset()

		// When: the first mark is placed in cell 0
		next, err := PlaceMark(state, 0)
		require.NoError(t, err)

		// Then: X occupies cell 0 and it is O's turn
		expected := entity.GameState{
			Board:   entity.Board{x, e, e, e, e, e, e, e, e},
			Turn:    entity.PlayerO,
			Outcome: entity.InProgress(),
		}
		require.Equal(t, expected, next)
	})

	t.Run("Input state is not modified", func(t *testing.T) {
		// Given: a new game
		state := Reset()

		// When: a mark is placed
		_, err := PlaceMark(state, 4)
		require.NoError(t, err)

		// Then: the caller's value still holds the empty board
		assert.Equal(t, Reset(), state)
	})

	t.Run("Error on cell already occupied", func(t *testing.T) {
		// Given: X holds cell 3
		state := playMoves(t, 3)

		// When: O tries to place on cell 3
		next, err := PlaceMark(state, 3)

		// Then: ErrCellOccupied is returned and the board is unchanged
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, state, next)
	})

	t.Run("Invalid cell", func(t *testing.T) {
		// Given: a new game
		state := Reset()

		// When: a cell index beyond the board is passed
		next, err := PlaceMark(state, 9)

		// Then: ErrInvalidCell is returned
		require.ErrorIs(t, err, apperror.ErrInvalidCell)
		assert.Contains(t, err.Error(), "cell 9")
		assert.Equal(t, state, next)
	})

	t.Run("Invalid negative cell", func(t *testing.T) {
		// Given: a new game
		state := Reset()

		// When: a negative cell index is passed
		_, err := PlaceMark(state, -1)

		// Then: ErrInvalidCell is returned
		assert.ErrorIs(t, err, apperror.ErrInvalidCell)
	})

	t.Run("Invalid cell is reported before a finished game", func(t *testing.T) {
		// Given: a finished game
		state := playMoves(t, 0, 4, 1, 5, 2)

		// When: an out of range cell is passed
		_, err := PlaceMark(state, 20)

		// Then: the precondition violation wins
		assert.ErrorIs(t, err, apperror.ErrInvalidCell)
	})

	t.Run("Move after win", func(t *testing.T) {
		// Given: X has won via the top row
		state := playMoves(t, 0, 4, 1, 5, 2)

		// When: O tries an empty cell
		next, err := PlaceMark(state, 8)

		// Then: ErrGameAlreadyOver is returned and nothing changes
		require.ErrorIs(t, err, apperror.ErrGameAlreadyOver)
		assert.Equal(t, state, next)
	})

	t.Run("Move after draw", func(t *testing.T) {
		// Given: a drawn game
		state := playMoves(t, 0, 1, 2, 4, 3, 5, 7, 6, 8)

		// When: any cell is tapped
		_, err := PlaceMark(state, 0)

		// Then: the game over error takes precedence over the occupied cell
		assert.ErrorIs(t, err, apperror.ErrGameAlreadyOver)
	})

	t.Run("Failures never mutate, however often retried", func(t *testing.T) {
		// Given: a game with cell 0 taken
		state := playMoves(t, 0)

		// When: the same rejected move is retried many times
		current := state
		for range 10 {
			next, err := PlaceMark(current, 0)
			require.ErrorIs(t, err, apperror.ErrCellOccupied)
			current = next
		}

		// Then: the state is exactly the original one
		assert.Equal(t, state, current)
	})
}

func TestPlaceMark_Scenarios(t *testing.T) {
	t.Run("X wins on the top row", func(t *testing.T) {
		// When: X plays 0,1,2 while O plays 4,5
		state := playMoves(t, 0, 4, 1, 5, 2)

		// Then: X wins
		assert.Equal(t, entity.Win(x), state.Outcome)
		assert.Equal(t, entity.Board{x, x, x, e, o, o, e, e, e}, state.Board)
	})

	t.Run("O wins on the anti-diagonal", func(t *testing.T) {
		// When: O completes 2,4,6
		state := playMoves(t, 0, 2, 1, 4, 8, 6)

		// Then: O wins
		assert.Equal(t, entity.Win(o), state.Outcome)
	})

	t.Run("Draw after the ninth move", func(t *testing.T) {
		// Given: eight moves without a line
		state := playMoves(t, 0, 1, 2, 4, 3, 5, 7, 6)
		require.Equal(t, entity.InProgress(), state.Outcome)

		// When: X fills the last cell
		state, err := PlaceMark(state, 8)
		require.NoError(t, err)

		// Then: the game is a draw
		assert.Equal(t, entity.Draw(), state.Outcome)
		assert.True(t, state.Board.IsFull())
	})
}

func TestPlaceMark_TurnAlternates(t *testing.T) {
	moves := []int{4, 0, 8, 2, 1, 7, 6, 3, 5}

	state := Reset()
	for n, cell := range moves {
		if n%2 == 0 {
			require.Equal(t, x, state.Turn, "after %d moves", n)
		} else {
			require.Equal(t, o, state.Turn, "after %d moves", n)
		}

		next, err := PlaceMark(state, cell)
		require.NoError(t, err)
		state = next
	}

	// nine moves: O's turn, even though the game is over
	assert.Equal(t, o, state.Turn)
}

func TestGame_EvaluateOutcome(t *testing.T) {
	t.Run("Winner X", func(t *testing.T) {
		// Given: X holds the first column
		board := entity.Board{x, o, e, x, o, e, x, e, e}

		// When: the outcome is evaluated
		outcome := EvaluateOutcome(board)

		// Then: X is declared the winner
		require.Equal(t, entity.Win(x), outcome)
	})

	t.Run("Ongoing game", func(t *testing.T) {
		// Given: no line and empty cells left
		board := entity.Board{x, o, x, e, o, e, x, e, e}

		// When: the outcome is evaluated
		outcome := EvaluateOutcome(board)

		// Then: the game continues
		require.Equal(t, entity.InProgress(), outcome)
	})

	t.Run("Draw", func(t *testing.T) {
		// Given: a full board without a line
		board := entity.Board{o, x, o, o, x, x, x, o, x}

		// When: the outcome is evaluated
		outcome := EvaluateOutcome(board)

		// Then: the game is a draw
		assert.Equal(t, entity.Draw(), outcome)
	})

	t.Run("Win on a full board beats draw", func(t *testing.T) {
		// Given: a full board where X completed the last row
		board := entity.Board{o, x, o, o, o, x, x, x, x}

		// When: the outcome is evaluated
		outcome := EvaluateOutcome(board)

		// Then: X wins rather than a draw being declared
		assert.Equal(t, entity.Win(x), outcome)
	})

	t.Run("Every line wins", func(t *testing.T) {
		for _, combo := range WinCombos {
			var board entity.Board
			for _, cell := range combo {
				board[cell] = o
			}

			assert.Equal(t, entity.Win(o), EvaluateOutcome(board), "line %v", combo)
		}
	})
}

// TestEvaluateOutcome_AllBoards walks every assignment of the 9 cells.
func TestEvaluateOutcome_AllBoards(t *testing.T) {
	marks := [3]entity.Mark{e, x, o}

	for code := range 19683 { // 3^9
		var board entity.Board
		n := code
		for i := range board {
			board[i] = marks[n%3]
			n /= 3
		}

		outcome := EvaluateOutcome(board)

		winners := lineOwners(board)
		switch {
		case len(winners) > 0:
			require.Equal(t, entity.StatusWin, outcome.Status, "board %v", board)
			assert.Contains(t, winners, outcome.Winner, "board %v", board)
		case board.IsFull():
			require.Equal(t, entity.Draw(), outcome, "board %v", board)
		default:
			require.Equal(t, entity.InProgress(), outcome, "board %v", board)
		}
	}
}

// TestPlaceMark_ReachableStates explores every position reachable from Reset.
func TestPlaceMark_ReachableStates(t *testing.T) {
	seen := make(map[entity.GameState]bool)

	var walk func(state entity.GameState, moves int)
	walk = func(state entity.GameState, moves int) {
		if seen[state] {
			return
		}
		seen[state] = true

		countX, countO := state.Board.Count(x), state.Board.Count(o)
		require.Equal(t, moves, countX+countO)
		require.Contains(t, []int{0, 1}, countX-countO)
		if moves%2 == 0 {
			require.Equal(t, x, state.Turn)
		} else {
			require.Equal(t, o, state.Turn)
		}
		require.Equal(t, EvaluateOutcome(state.Board), state.Outcome)
		if state.Outcome.Status == entity.StatusWin {
			// only the player who just moved can own a line
			require.Equal(t, state.Turn.Opponent(), state.Outcome.Winner)
			for _, owner := range lineOwners(state.Board) {
				require.Equal(t, state.Outcome.Winner, owner)
			}
		}

		for cell := range entity.BoardSize {
			next, err := PlaceMark(state, cell)

			switch {
			case state.Outcome.IsFinished():
				require.ErrorIs(t, err, apperror.ErrGameAlreadyOver)
				require.Equal(t, state, next)
			case !state.Board[cell].IsEmpty():
				require.ErrorIs(t, err, apperror.ErrCellOccupied)
				require.Equal(t, state, next)
			default:
				require.NoError(t, err)
				walk(next, moves+1)
			}
		}
	}

	walk(Reset(), 0)

	// 5478 distinct legal positions exist in tic-tac-toe
	assert.Len(t, seen, 5478)
}

func lineOwners(board entity.Board) []entity.Mark {
	var owners []entity.Mark
	for _, combo := range WinCombos {
		a := board[combo[0]]
		if !a.IsEmpty() && a == board[combo[1]] && a == board[combo[2]] {
			owners = append(owners, a)
		}
	}
	return owners
}
