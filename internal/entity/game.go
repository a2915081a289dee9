package entity

// Mark is the occupancy of a single cell, and also names the player who owns it.
type Mark string

const (
	EmptyCell Mark = ""
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"
)

// BoardSize is the number of cells on the 3x3 board, indexed 0..8 row-major.
const BoardSize = 9

type OutcomeStatus string

const (
	StatusInProgress OutcomeStatus = "in_progress"
	StatusWin        OutcomeStatus = "win"
	StatusDraw       OutcomeStatus = "draw"
)

// Board - ordered cells of a 3x3 grid.
type Board [BoardSize]Mark

// Outcome - result derived from a board. Winner is set only for StatusWin.
type Outcome struct {
	Status OutcomeStatus `json:"status"`
	Winner Mark          `json:"winner,omitempty"`
}

// GameState - everything a round needs. It is a plain value: copies never share a board.
type GameState struct {
	Board   Board   `json:"board"`
	Turn    Mark    `json:"turn"`
	Outcome Outcome `json:"outcome"`
}

func InProgress() Outcome {
	return Outcome{Status: StatusInProgress}
}

func Win(player Mark) Outcome {
	return Outcome{Status: StatusWin, Winner: player}
}

func Draw() Outcome {
	return Outcome{Status: StatusDraw}
}

func (that Outcome) IsInProgress() bool {
	return that.Status == StatusInProgress
}

func (that Outcome) IsFinished() bool {
	return that.Status == StatusWin || that.Status == StatusDraw
}

func (that Mark) IsEmpty() bool {
	return that == EmptyCell
}

// Opponent - returns the other player's mark.
func (that Mark) Opponent() Mark {
	if that == PlayerX {
		return PlayerO
	}
	return PlayerX
}

// Count - number of cells holding the given mark.
func (that Board) Count(mark Mark) int {
	n := 0
	for _, cell := range that {
		if cell == mark {
			n++
		}
	}
	return n
}

// IsFull - reports whether no cell is empty.
func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell.IsEmpty() {
			return false
		}
	}
	return true
}
