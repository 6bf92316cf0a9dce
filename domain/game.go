package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lazharichir/blackjack/blackjack"
	"github.com/lazharichir/blackjack/cards"
)

// Game represents one blackjack game owned by a single player. It wraps
// the engine's table state together with the wager and bookkeeping the
// engine itself does not care about.
type Game struct {
	ID         string           `json:"id"`
	PlayerID   string           `json:"playerId"`
	BetAmount  int              `json:"betAmount"`
	PlayerHand blackjack.Hand   `json:"playerHand"`
	DealerHand blackjack.Hand   `json:"dealerHand"`
	Shoe       cards.Shoe       `json:"-"`
	Status     blackjack.Status `json:"status"`
	CreatedAt  time.Time        `json:"createdAt"`
	FinishedAt *time.Time       `json:"finishedAt,omitempty"`
}

// newGame wraps a freshly dealt table state into a game record
func newGame(playerID string, bet int, table blackjack.Game) *Game {
	game := &Game{
		ID:        uuid.NewString(),
		PlayerID:  playerID,
		BetAmount: bet,
		CreatedAt: time.Now().UTC(),
	}
	game.applyTable(table)
	return game
}

// Table returns the engine's view of the game
func (g *Game) Table() blackjack.Game {
	return blackjack.Game{
		Shoe:       g.Shoe,
		PlayerHand: g.PlayerHand,
		DealerHand: g.DealerHand,
		Status:     g.Status,
	}
}

// applyTable copies the engine state back into the record, stamping the
// finish time on the transition into a terminal status.
func (g *Game) applyTable(table blackjack.Game) {
	g.Shoe = table.Shoe
	g.PlayerHand = table.PlayerHand
	g.DealerHand = table.DealerHand
	g.Status = table.Status

	if table.Status.Terminal() && g.FinishedAt == nil {
		now := time.Now().UTC()
		g.FinishedAt = &now
	}
}

// PlayerScore returns the current score of the player's hand
func (g *Game) PlayerScore() int {
	return g.PlayerHand.Score()
}

// DealerScore returns the current score of the dealer's hand
func (g *Game) DealerScore() int {
	return g.DealerHand.Score()
}

// InProgress checks if the game still awaits player action
func (g *Game) InProgress() bool {
	return g.Status == blackjack.StatusInProgress
}
