package terminal

import (
	"strings"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/internal/usecase"
)

const (
	title     = "Tic Tac Toe"
	separator = "---+---+---"
	keyHelp   = "1-9 or arrows+enter: place   r: reload   q: quit"

	// toastLine - row of the toast in the output of Lines.
	toastLine = 12
)

// Lines - the text of one frame, top to bottom.
func Lines(view usecase.View, cursor int, toast *entity.Toast) []string {
	lines := []string{
		title,
		"",
		view.Status,
		"",
		row(view.Cells, 0, cursor),
		separator,
		row(view.Cells, 3, cursor),
		separator,
		row(view.Cells, 6, cursor),
		"",
		"r: " + view.ResetLabel,
		"",
		"",
		"",
		keyHelp,
	}

	if toast != nil {
		lines[toastLine] = toast.Text
	}

	return lines
}

func row(cells entity.Board, first, cursor int) string {
	parts := make([]string, 3)
	for i := range parts {
		cell := first + i

		glyph := " "
		if !cells[cell].IsEmpty() {
			glyph = string(cells[cell])
		}

		if cell == cursor {
			parts[i] = "[" + glyph + "]"
		} else {
			parts[i] = " " + glyph + " "
		}
	}

	return strings.Join(parts, "|")
}
