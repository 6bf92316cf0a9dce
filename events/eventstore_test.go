package events

import (
	"testing"

	"github.com/lazharichir/blackjack/cards"
	"github.com/lazharichir/blackjack/domain/events"
)

func TestInMemoryEventStore(t *testing.T) {
	store := NewInMemoryEventStore()

	gameID := "game-123"
	playerID := "player-456"

	t.Run("Append and load events", func(t *testing.T) {
		started := events.GameStarted{
			GameID:    gameID,
			PlayerID:  playerID,
			BetAmount: 10,
		}

		dealt := events.CardDealt{
			GameID: gameID,
			Card:   cards.Card{Suit: cards.Spades, Value: cards.Ace},
			Score:  11,
		}

		stood := events.PlayerStood{
			GameID: gameID,
			Score:  18,
		}

		if err := store.Append(started); err != nil {
			t.Errorf("Failed to append GameStarted event: %v", err)
		}
		if err := store.Append(dealt); err != nil {
			t.Errorf("Failed to append CardDealt event: %v", err)
		}
		if err := store.Append(stood); err != nil {
			t.Errorf("Failed to append PlayerStood event: %v", err)
		}

		loaded, err := store.LoadEvents(gameID)
		if err != nil {
			t.Errorf("Failed to load events: %v", err)
		}

		if len(loaded) != 3 {
			t.Errorf("Expected 3 events, got %d", len(loaded))
		}

		if loaded[0].Name() != "GAME_STARTED" {
			t.Errorf("Expected first event GAME_STARTED, got %s", loaded[0].Name())
		}
	})

	t.Run("Events are partitioned by game", func(t *testing.T) {
		other := events.GameStarted{GameID: "game-999", PlayerID: playerID, BetAmount: 25}
		if err := store.Append(other); err != nil {
			t.Errorf("Failed to append event: %v", err)
		}

		loaded, err := store.LoadEvents("game-999")
		if err != nil {
			t.Errorf("Failed to load events: %v", err)
		}
		if len(loaded) != 1 {
			t.Errorf("Expected 1 event, got %d", len(loaded))
		}
	})

	t.Run("Append rejects events without a game id", func(t *testing.T) {
		if err := store.Append(events.PlayerRegistered{PlayerID: playerID}); err == nil {
			t.Error("Expected error for event without gameID")
		}
	})

	t.Run("Load unknown game returns empty slice", func(t *testing.T) {
		loaded, err := store.LoadEvents("unknown")
		if err != nil {
			t.Errorf("Failed to load events: %v", err)
		}
		if len(loaded) != 0 {
			t.Errorf("Expected no events, got %d", len(loaded))
		}
	})
}
