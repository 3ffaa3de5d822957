package apperror

import "errors"

var (
	ErrGameFinished      = errors.New("game is already finished")
	ErrNotYourTurn       = errors.New("it's not your turn")
	ErrCellOccupied      = errors.New("cell is already occupied")
	ErrCellOutOfRange    = errors.New("cell is out of range")
	ErrUnknownConnection = errors.New("connection is not part of any game")
	ErrAlreadyJoined     = errors.New("connection already joined")
	ErrEmptyNickname     = errors.New("nickname must not be empty")
)
