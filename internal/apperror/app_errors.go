package apperror

import "errors"

var (
	ErrInvalidCell     = errors.New("invalid cell index")
	ErrCellOccupied    = errors.New("cell is already occupied")
	ErrGameAlreadyOver = errors.New("game is already over")

	ErrFeedDisabled = errors.New("event feed is disabled")
)
