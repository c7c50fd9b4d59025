package apperror

import "errors"

var (
	ErrInvalidMove    = errors.New("invalid move")
	ErrNotYourTurn    = errors.New("it's not your turn")
	ErrCellOccupied   = errors.New("cell is already occupied")
	ErrBoardClosed    = errors.New("mini-board is already decided")
	ErrWrongBoard     = errors.New("move is outside the constrained mini-board")
	ErrGameFinished   = errors.New("game is already finished")
	ErrGameNotStarted = errors.New("game is not started")

	ErrNotConnected   = errors.New("connection is not open")
	ErrAlreadyOpened  = errors.New("connection was already opened")
	ErrSessionClosed  = errors.New("session is closed")
	ErrUnknownEvent   = errors.New("unknown event tag")
	ErrMalformedFrame = errors.New("malformed frame")

	ErrRoomNotFound    = errors.New("room not found")
	ErrInvalidPassword = errors.New("invalid password")
	ErrInvalidToken    = errors.New("invalid session token")
)
