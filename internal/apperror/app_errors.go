package apperror

import "errors"

var (
	ErrGameFinished = errors.New("round is already finished")
	ErrCellOccupied = errors.New("cell is already occupied")
	ErrInvalidCell  = errors.New("invalid cell index")
	ErrGameOngoing  = errors.New("round is still in progress")
	ErrNoRound      = errors.New("session is not initialized")
)
