package blackjack

import "errors"

var (
	// ErrGameFinished is returned when an action targets a terminal game
	ErrGameFinished = errors.New("game already finished")

	// ErrInvalidAction is returned for an unrecognized action token
	ErrInvalidAction = errors.New("invalid action")
)
