package domain

import (
	"fmt"

	"github.com/lazharichir/blackjack/blackjack"
)

// Settle applies a terminal game outcome to the player's balance and
// counters. A win pays even money: the wager comes back plus an equal
// amount. A natural is not paid a bonus. Callers invoke it exactly once
// per game, at the moment the game turns terminal.
func Settle(player *Player, status blackjack.Status, bet int) error {
	switch status {
	case blackjack.StatusPlayerWon:
		player.Balance += bet
		player.GamesWon++
		player.GamesPlayed++
	case blackjack.StatusDealerWon:
		player.Balance -= bet
		player.GamesPlayed++
	case blackjack.StatusPush:
		player.GamesPlayed++
	default:
		return fmt.Errorf("cannot settle game in status %q", status)
	}

	return nil
}
