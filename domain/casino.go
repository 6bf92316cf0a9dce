package domain

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lazharichir/blackjack/blackjack"
	"github.com/lazharichir/blackjack/cards"
	"github.com/lazharichir/blackjack/domain/events"
	eventstore "github.com/lazharichir/blackjack/events"
)

// Casino is the request layer around the blackjack engine. It owns the
// player and game stores, serializes game transitions and invokes
// settlement exactly once per game.
type Casino struct {
	players PlayerStore
	games   GameStore
	store   eventstore.EventStore
	newShoe func() cards.Shoe

	// mu serializes game transitions: no two transitions against the
	// same game may interleave, and settlement must not race a
	// concurrent balance read.
	mu sync.Mutex

	eventHandlers []events.EventHandler
}

// Option configures a Casino
type Option func(*Casino)

// WithShoeSource overrides how fresh shoes are built. Tests use it to
// stack the draw order.
func WithShoeSource(newShoe func() cards.Shoe) Option {
	return func(c *Casino) {
		c.newShoe = newShoe
	}
}

// WithEventStore overrides the per-game event log
func WithEventStore(store eventstore.EventStore) Option {
	return func(c *Casino) {
		c.store = store
	}
}

// NewCasino creates a casino backed by the given stores
func NewCasino(players PlayerStore, games GameStore, opts ...Option) *Casino {
	casino := &Casino{
		players: players,
		games:   games,
		store:   eventstore.NewInMemoryEventStore(),
		newShoe: cards.NewShoe,
	}

	for _, opt := range opts {
		opt(casino)
	}

	return casino
}

// AddEventHandler adds an event handler to the casino
func (c *Casino) AddEventHandler(handler events.EventHandler) {
	c.eventHandlers = append(c.eventHandlers, handler)
}

// emitEvent logs game-scoped events and notifies all registered handlers
func (c *Casino) emitEvent(event events.Event) {
	if events.ExtractGameID(event) != "" {
		_ = c.store.Append(event)
	}

	for _, handler := range c.eventHandlers {
		handler(event)
	}
}

// RegisterPlayer creates a new player with a unique username
func (c *Casino) RegisterPlayer(ctx context.Context, username string, balance int) (*Player, error) {
	player, err := NewPlayer(username, balance)
	if err != nil {
		return nil, err
	}

	if err := c.players.CreatePlayer(ctx, player); err != nil {
		return nil, err
	}

	c.emitEvent(events.PlayerRegistered{
		PlayerID: player.ID,
		Username: player.Username,
		Balance:  player.Balance,
	})

	return player, nil
}

// GetPlayer retrieves a player by id
func (c *Casino) GetPlayer(ctx context.Context, id string) (*Player, error) {
	return c.players.GetPlayer(ctx, id)
}

// ListPlayers returns all registered players
func (c *Casino) ListPlayers(ctx context.Context) ([]*Player, error) {
	return c.players.ListPlayers(ctx)
}

// PlayerUpdate carries the optional fields of a player update
type PlayerUpdate struct {
	Username *string `json:"username,omitempty"`
	Balance  *int    `json:"balance,omitempty"`
}

// UpdatePlayer applies a partial update to a player
func (c *Casino) UpdatePlayer(ctx context.Context, id string, update PlayerUpdate) (*Player, error) {
	player, err := c.players.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Username != nil {
		if len(*update.Username) < minUsernameLength || len(*update.Username) > maxUsernameLength {
			return nil, fmt.Errorf("username must be between %d and %d characters: %w",
				minUsernameLength, maxUsernameLength, ErrInvalidUsername)
		}
		player.Username = *update.Username
	}

	if update.Balance != nil {
		if *update.Balance < 0 {
			return nil, fmt.Errorf("balance must not be negative: %w", ErrInvalidBalance)
		}
		player.Balance = *update.Balance
	}

	if err := c.players.UpdatePlayer(ctx, player); err != nil {
		return nil, err
	}

	return player, nil
}

// DeletePlayer removes a player by id
func (c *Casino) DeletePlayer(ctx context.Context, id string) error {
	return c.players.DeletePlayer(ctx, id)
}

// CreateGame deals a new game for the player from a fresh shoe. The bet
// must be positive and covered by the player's balance. Naturals settle
// the game immediately, before any action can be submitted.
func (c *Casino) CreateGame(ctx context.Context, playerID string, bet int) (*Game, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	player, err := c.players.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if bet <= 0 || bet > player.Balance {
		return nil, fmt.Errorf("bet %d with balance %d: %w", bet, player.Balance, ErrInvalidBet)
	}

	table, err := blackjack.Deal(c.newShoe())
	if err != nil {
		return nil, err
	}

	game := newGame(playerID, bet, table)

	if err := c.games.CreateGame(ctx, game); err != nil {
		return nil, err
	}

	c.emitEvent(events.GameStarted{
		GameID:    game.ID,
		PlayerID:  playerID,
		BetAmount: bet,
	})
	c.emitDealtCards(game, 0, 0)

	if game.Status.Terminal() {
		if err := c.settleGame(ctx, game, player); err != nil {
			return nil, err
		}
	}

	return game, nil
}

// ApplyAction runs a hit or stand against an in-progress game owned by
// the acting player.
func (c *Casino) ApplyAction(ctx context.Context, gameID, playerID string, action blackjack.Action) (*Game, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	game, err := c.games.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if game.Status.Terminal() {
		return nil, blackjack.ErrGameFinished
	}

	if game.PlayerID != playerID {
		return nil, ErrUnauthorized
	}

	playerCards, dealerCards := len(game.PlayerHand), len(game.DealerHand)

	table, err := game.Table().Apply(action)
	if err != nil {
		return nil, err
	}

	game.applyTable(table)

	if err := c.games.UpdateGame(ctx, game); err != nil {
		return nil, err
	}

	c.emitDealtCards(game, playerCards, dealerCards)

	if action == blackjack.ActionStand {
		c.emitEvent(events.PlayerStood{GameID: game.ID, Score: game.PlayerScore()})
		c.emitEvent(events.DealerPlayed{
			GameID: game.ID,
			Drawn:  len(game.DealerHand) - dealerCards,
			Score:  game.DealerScore(),
			Busted: game.DealerHand.IsBust(),
		})
	}

	if game.Status.Terminal() {
		player, err := c.players.GetPlayer(ctx, game.PlayerID)
		if err != nil {
			return nil, err
		}
		if err := c.settleGame(ctx, game, player); err != nil {
			return nil, err
		}
	}

	return game, nil
}

// settleGame applies the outcome to the player and records the settlement
func (c *Casino) settleGame(ctx context.Context, game *Game, player *Player) error {
	if err := Settle(player, game.Status, game.BetAmount); err != nil {
		return err
	}

	if err := c.players.UpdatePlayer(ctx, player); err != nil {
		return err
	}

	c.emitEvent(events.GameSettled{
		GameID:      game.ID,
		PlayerID:    player.ID,
		Status:      game.Status,
		BetAmount:   game.BetAmount,
		PlayerScore: game.PlayerScore(),
		DealerScore: game.DealerScore(),
		Balance:     player.Balance,
		At:          time.Now().UTC(),
	})

	return nil
}

// emitDealtCards emits CardDealt for every card beyond the given counts
func (c *Casino) emitDealtCards(game *Game, playerCards, dealerCards int) {
	for i := playerCards; i < len(game.PlayerHand); i++ {
		c.emitEvent(events.CardDealt{
			GameID: game.ID,
			Card:   game.PlayerHand[i],
			Score:  game.PlayerHand[:i+1].Score(),
		})
	}
	for i := dealerCards; i < len(game.DealerHand); i++ {
		c.emitEvent(events.CardDealt{
			GameID: game.ID,
			Dealer: true,
			Card:   game.DealerHand[i],
			Score:  game.DealerHand[:i+1].Score(),
		})
	}
}

// GetGame retrieves a game by id
func (c *Casino) GetGame(ctx context.Context, id string) (*Game, error) {
	return c.games.GetGame(ctx, id)
}

// ListGames returns all games
func (c *Casino) ListGames(ctx context.Context) ([]*Game, error) {
	return c.games.ListGames(ctx)
}

// ListActiveGames returns all in-progress games
func (c *Casino) ListActiveGames(ctx context.Context) ([]*Game, error) {
	return c.games.ListActiveGames(ctx)
}

// DeleteGame abandons a game with no settlement. The wager is neither
// paid nor collected.
func (c *Casino) DeleteGame(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	game, err := c.games.GetGame(ctx, id)
	if err != nil {
		return err
	}

	if err := c.games.DeleteGame(ctx, id); err != nil {
		return err
	}

	if game.InProgress() {
		c.emitEvent(events.GameAbandoned{GameID: game.ID, PlayerID: game.PlayerID})
	}

	return nil
}

// GameEvents returns the event log of a single game
func (c *Casino) GameEvents(gameID string) ([]events.Event, error) {
	return c.store.LoadEvents(gameID)
}

// Stats reports the live counters for the status feed
func (c *Casino) Stats(ctx context.Context) (activeGames int, totalPlayers int, err error) {
	active, err := c.games.ListActiveGames(ctx)
	if err != nil {
		return 0, 0, err
	}

	players, err := c.players.ListPlayers(ctx)
	if err != nil {
		return 0, 0, err
	}

	return len(active), len(players), nil
}
