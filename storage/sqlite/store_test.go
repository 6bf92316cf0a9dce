package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/lazharichir/blackjack/blackjack"
	"github.com/lazharichir/blackjack/cards"
	"github.com/lazharichir/blackjack/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "blackjack.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func newTestPlayer(t *testing.T, username string) *domain.Player {
	t.Helper()

	player, err := domain.NewPlayer(username, domain.DefaultStartingBalance)
	require.NoError(t, err)
	return player
}

func TestPlayerRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	player := newTestPlayer(t, "alice")
	require.NoError(t, store.CreatePlayer(ctx, player))

	loaded, err := store.GetPlayer(ctx, player.ID)
	require.NoError(t, err)

	assert.Equal(t, player.ID, loaded.ID)
	assert.Equal(t, "alice", loaded.Username)
	assert.Equal(t, domain.DefaultStartingBalance, loaded.Balance)
	assert.Equal(t, 0, loaded.GamesPlayed)
	assert.WithinDuration(t, player.CreatedAt, loaded.CreatedAt, time.Second)
}

func TestCreatePlayerDuplicateUsername(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreatePlayer(ctx, newTestPlayer(t, "alice")))

	err := store.CreatePlayer(ctx, newTestPlayer(t, "alice"))
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}

func TestGetPlayerNotFound(t *testing.T) {
	store := openTestStore(t)

	_, err := store.GetPlayer(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrPlayerNotFound)
}

func TestUpdatePlayerPersistsSettlement(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	player := newTestPlayer(t, "alice")
	require.NoError(t, store.CreatePlayer(ctx, player))

	player.Balance += 50
	player.GamesPlayed++
	player.GamesWon++
	require.NoError(t, store.UpdatePlayer(ctx, player))

	loaded, err := store.GetPlayer(ctx, player.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultStartingBalance+50, loaded.Balance)
	assert.Equal(t, 1, loaded.GamesPlayed)
	assert.Equal(t, 1, loaded.GamesWon)
}

func TestUpdatePlayerNotFound(t *testing.T) {
	store := openTestStore(t)

	err := store.UpdatePlayer(context.Background(), newTestPlayer(t, "ghost"))
	assert.ErrorIs(t, err, domain.ErrPlayerNotFound)
}

func TestListPlayers(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreatePlayer(ctx, newTestPlayer(t, "alice")))
	require.NoError(t, store.CreatePlayer(ctx, newTestPlayer(t, "bob")))

	players, err := store.ListPlayers(ctx)
	require.NoError(t, err)
	assert.Len(t, players, 2)
}

func testGame(t *testing.T, playerID string) *domain.Game {
	t.Helper()

	now := time.Now().UTC()
	return &domain.Game{
		ID:         "game-" + playerID,
		PlayerID:   playerID,
		BetAmount:  25,
		PlayerHand: blackjack.HandFromStack(cards.MustStack("A♠", "7♥")),
		DealerHand: blackjack.HandFromStack(cards.MustStack("K♦", "5♣")),
		Shoe:       cards.ShoeFromStack(cards.MustStack("2♠", "3♥", "4♦")),
		Status:     blackjack.StatusInProgress,
		CreatedAt:  now,
	}
}

func TestGameRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	player := newTestPlayer(t, "alice")
	require.NoError(t, store.CreatePlayer(ctx, player))

	game := testGame(t, player.ID)
	require.NoError(t, store.CreateGame(ctx, game))

	loaded, err := store.GetGame(ctx, game.ID)
	require.NoError(t, err)

	assert.Equal(t, game.ID, loaded.ID)
	assert.Equal(t, player.ID, loaded.PlayerID)
	assert.Equal(t, 25, loaded.BetAmount)
	assert.Equal(t, blackjack.StatusInProgress, loaded.Status)
	assert.Equal(t, "A♠ 7♥", loaded.PlayerHand.String())
	assert.Equal(t, "K♦ 5♣", loaded.DealerHand.String())
	assert.Equal(t, 3, loaded.Shoe.Remaining())
	assert.Nil(t, loaded.FinishedAt)
}

func TestUpdateGameToTerminal(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	player := newTestPlayer(t, "alice")
	require.NoError(t, store.CreatePlayer(ctx, player))

	game := testGame(t, player.ID)
	require.NoError(t, store.CreateGame(ctx, game))

	finished := time.Now().UTC()
	game.Status = blackjack.StatusPlayerWon
	game.FinishedAt = &finished
	require.NoError(t, store.UpdateGame(ctx, game))

	loaded, err := store.GetGame(ctx, game.ID)
	require.NoError(t, err)
	assert.Equal(t, blackjack.StatusPlayerWon, loaded.Status)
	require.NotNil(t, loaded.FinishedAt)
	assert.WithinDuration(t, finished, *loaded.FinishedAt, time.Second)
}

func TestListActiveGames(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	player := newTestPlayer(t, "alice")
	require.NoError(t, store.CreatePlayer(ctx, player))

	active := testGame(t, player.ID)
	require.NoError(t, store.CreateGame(ctx, active))

	done := testGame(t, player.ID)
	done.ID = "game-done"
	done.Status = blackjack.StatusDealerWon
	require.NoError(t, store.CreateGame(ctx, done))

	games, err := store.ListActiveGames(ctx)
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, active.ID, games[0].ID)

	all, err := store.ListGames(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestDeletePlayerCascadesGames(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	player := newTestPlayer(t, "alice")
	require.NoError(t, store.CreatePlayer(ctx, player))

	game := testGame(t, player.ID)
	require.NoError(t, store.CreateGame(ctx, game))

	require.NoError(t, store.DeletePlayer(ctx, player.ID))

	_, err := store.GetGame(ctx, game.ID)
	assert.ErrorIs(t, err, domain.ErrGameNotFound)
}

func TestDeleteGame(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	player := newTestPlayer(t, "alice")
	require.NoError(t, store.CreatePlayer(ctx, player))

	game := testGame(t, player.ID)
	require.NoError(t, store.CreateGame(ctx, game))

	require.NoError(t, store.DeleteGame(ctx, game.ID))

	_, err := store.GetGame(ctx, game.ID)
	assert.ErrorIs(t, err, domain.ErrGameNotFound)

	assert.ErrorIs(t, store.DeleteGame(ctx, game.ID), domain.ErrGameNotFound)
}
