package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultStartingBalance is credited to new players when no
	// initial balance is given
	DefaultStartingBalance = 1000

	minUsernameLength = 3
	maxUsernameLength = 50
)

// Player represents a registered blackjack player. Balance and the game
// counters are only ever mutated by settlement when a game ends.
type Player struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Balance     int       `json:"balance"`
	GamesPlayed int       `json:"gamesPlayed"`
	GamesWon    int       `json:"gamesWon"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewPlayer creates a new player with the given username and balance
func NewPlayer(username string, balance int) (*Player, error) {
	if len(username) < minUsernameLength || len(username) > maxUsernameLength {
		return nil, fmt.Errorf("username must be between %d and %d characters: %w",
			minUsernameLength, maxUsernameLength, ErrInvalidUsername)
	}

	if balance < 0 {
		return nil, fmt.Errorf("initial balance must not be negative: %w", ErrInvalidBalance)
	}

	return &Player{
		ID:        uuid.NewString(),
		Username:  username,
		Balance:   balance,
		CreatedAt: time.Now().UTC(),
	}, nil
}
