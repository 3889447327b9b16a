package errors

import "errors"

var (
	ErrRoomNotFound = errors.New("room not found")

	ErrInvalidRoom = errors.New("invalid room document")

	ErrLockHeld = errors.New("room lock is held by another owner")

	ErrInvalidSeed = errors.New("invalid room seed")
)
