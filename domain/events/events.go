package events

import (
	"time"

	"github.com/lazharichir/blackjack/blackjack"
	"github.com/lazharichir/blackjack/cards"
)

type EventHandler func(event Event)

type Event interface {
	Name() string
}

// Player lifecycle events

type PlayerRegistered struct {
	PlayerID string `json:"playerId"`
	Username string `json:"username"`
	Balance  int    `json:"balance"`
}

func (e PlayerRegistered) Name() string { return "PLAYER_REGISTERED" }

// Game lifecycle events

type GameStarted struct {
	GameID    string `json:"gameId"`
	PlayerID  string `json:"playerId"`
	BetAmount int    `json:"betAmount"`
}

func (e GameStarted) Name() string { return "GAME_STARTED" }

// CardDealt records a single card entering a hand, for the player
// or for the dealer.
type CardDealt struct {
	GameID string     `json:"gameId"`
	Dealer bool       `json:"dealer"`
	Card   cards.Card `json:"card"`
	Score  int        `json:"score"`
}

func (e CardDealt) Name() string { return "CARD_DEALT" }

type PlayerStood struct {
	GameID string `json:"gameId"`
	Score  int    `json:"score"`
}

func (e PlayerStood) Name() string { return "PLAYER_STOOD" }

// DealerPlayed records the dealer's automatic play after a stand
type DealerPlayed struct {
	GameID string `json:"gameId"`
	Drawn  int    `json:"drawn"`
	Score  int    `json:"score"`
	Busted bool   `json:"busted"`
}

func (e DealerPlayed) Name() string { return "DEALER_PLAYED" }

// GameSettled fires exactly once per game, when it turns terminal
type GameSettled struct {
	GameID      string           `json:"gameId"`
	PlayerID    string           `json:"playerId"`
	Status      blackjack.Status `json:"status"`
	BetAmount   int              `json:"betAmount"`
	PlayerScore int              `json:"playerScore"`
	DealerScore int              `json:"dealerScore"`
	Balance     int              `json:"balance"`
	At          time.Time        `json:"at"`
}

func (e GameSettled) Name() string { return "GAME_SETTLED" }

// GameAbandoned fires when an in-progress game is deleted without settlement
type GameAbandoned struct {
	GameID   string `json:"gameId"`
	PlayerID string `json:"playerId"`
}

func (e GameAbandoned) Name() string { return "GAME_ABANDONED" }
