package domain

import "errors"

var (
	// ErrInvalidBet is returned when a bet is not positive or exceeds
	// the player's balance
	ErrInvalidBet = errors.New("invalid bet")

	// ErrUnauthorized is returned when an actor does not own the game
	ErrUnauthorized = errors.New("player does not own this game")

	// ErrPlayerNotFound is returned when no player exists for an id
	ErrPlayerNotFound = errors.New("player not found")

	// ErrGameNotFound is returned when no game exists for an id
	ErrGameNotFound = errors.New("game not found")

	// ErrUsernameTaken is returned when a username is already registered
	ErrUsernameTaken = errors.New("username already taken")

	// ErrInvalidUsername is returned for usernames outside the allowed length
	ErrInvalidUsername = errors.New("invalid username")

	// ErrInvalidBalance is returned for negative balances
	ErrInvalidBalance = errors.New("invalid balance")
)
