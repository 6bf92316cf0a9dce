package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lazharichir/blackjack/cards"
	"github.com/lazharichir/blackjack/domain"
	serverevents "github.com/lazharichir/blackjack/server/events"
	"github.com/lazharichir/blackjack/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer builds a server over in-memory stores. When shorthands
// are given, every game deals from that exact shoe order.
func newTestServer(shorthands ...string) *Server {
	opts := []domain.Option{}
	if len(shorthands) > 0 {
		opts = append(opts, domain.WithShoeSource(func() cards.Shoe {
			return cards.ShoeFromStack(cards.MustStack(shorthands...))
		}))
	}

	store := memory.NewStore()
	casino := domain.NewCasino(store, store, opts...)
	return NewServer(casino, log.New(io.Discard))
}

func doRequest(t *testing.T, server *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func createTestPlayer(t *testing.T, server *Server, username string) domain.Player {
	t.Helper()

	rec := doRequest(t, server, http.MethodPost, "/api/players", CreatePlayerRequest{Username: username})
	require.Equal(t, http.StatusCreated, rec.Code)
	return decode[domain.Player](t, rec)
}

func TestCreatePlayerEndpoint(t *testing.T) {
	server := newTestServer()

	player := createTestPlayer(t, server, "alice")
	assert.NotEmpty(t, player.ID)
	assert.Equal(t, "alice", player.Username)
	assert.Equal(t, domain.DefaultStartingBalance, player.Balance)

	// Duplicate username
	rec := doRequest(t, server, http.MethodPost, "/api/players", CreatePlayerRequest{Username: "alice"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Username too short
	rec = doRequest(t, server, http.MethodPost, "/api/players", CreatePlayerRequest{Username: "ab"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPlayerCRUDEndpoints(t *testing.T) {
	server := newTestServer()
	player := createTestPlayer(t, server, "alice")

	rec := doRequest(t, server, http.MethodGet, "/api/players/"+player.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, server, http.MethodGet, "/api/players", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]domain.Player](t, rec), 1)

	balance := 400
	rec = doRequest(t, server, http.MethodPut, "/api/players/"+player.ID, domain.PlayerUpdate{Balance: &balance})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 400, decode[domain.Player](t, rec).Balance)

	rec = doRequest(t, server, http.MethodDelete, "/api/players/"+player.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, server, http.MethodGet, "/api/players/"+player.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGameFlowEndpoints(t *testing.T) {
	// Player stands on 18; dealer draws from 16 to 19
	server := newTestServer("10♠", "10♥", "8♦", "6♣", "3♦")
	player := createTestPlayer(t, server, "alice")

	rec := doRequest(t, server, http.MethodPost, "/api/games", CreateGameRequest{PlayerID: player.ID, BetAmount: 50})
	require.Equal(t, http.StatusCreated, rec.Code)
	game := decode[GameResponse](t, rec)
	assert.Equal(t, "in_progress", game.Status)
	assert.Equal(t, 18, game.PlayerScore)

	rec = doRequest(t, server, http.MethodPost, "/api/games/"+game.ID+"/action",
		GameActionRequest{PlayerID: player.ID, Action: "stand"})
	require.Equal(t, http.StatusOK, rec.Code)
	game = decode[GameResponse](t, rec)
	assert.Equal(t, "dealer_won", game.Status)
	assert.Equal(t, 19, game.DealerScore)

	// Balance settled exactly once
	rec = doRequest(t, server, http.MethodGet, "/api/players/"+player.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.DefaultStartingBalance-50, decode[domain.Player](t, rec).Balance)

	// Actions against the finished game fail
	rec = doRequest(t, server, http.MethodPost, "/api/games/"+game.ID+"/action",
		GameActionRequest{PlayerID: player.ID, Action: "hit"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// The event log is exposed
	rec = doRequest(t, server, http.MethodGet, "/api/games/"+game.ID+"/events", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	envelopes := decode[[]serverevents.EventEnvelope](t, rec)
	require.NotEmpty(t, envelopes)
	assert.Equal(t, "GAME_STARTED", envelopes[0].Name)
}

func TestGameActionAuthorization(t *testing.T) {
	server := newTestServer("2♠", "3♥", "4♦", "5♣", "6♠")
	player := createTestPlayer(t, server, "alice")
	intruder := createTestPlayer(t, server, "mallory")

	rec := doRequest(t, server, http.MethodPost, "/api/games", CreateGameRequest{PlayerID: player.ID, BetAmount: 10})
	require.Equal(t, http.StatusCreated, rec.Code)
	game := decode[GameResponse](t, rec)

	rec = doRequest(t, server, http.MethodPost, "/api/games/"+game.ID+"/action",
		GameActionRequest{PlayerID: intruder.ID, Action: "hit"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(t, server, http.MethodPost, "/api/games/"+game.ID+"/action",
		GameActionRequest{PlayerID: player.ID, Action: "surrender"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateGameValidation(t *testing.T) {
	server := newTestServer()
	player := createTestPlayer(t, server, "alice")

	// Bet larger than the balance
	rec := doRequest(t, server, http.MethodPost, "/api/games",
		CreateGameRequest{PlayerID: player.ID, BetAmount: domain.DefaultStartingBalance + 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Unknown player
	rec = doRequest(t, server, http.MethodPost, "/api/games", CreateGameRequest{PlayerID: "missing", BetAmount: 10})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteGameEndpoint(t *testing.T) {
	server := newTestServer("2♠", "3♥", "4♦", "5♣", "6♠")
	player := createTestPlayer(t, server, "alice")

	rec := doRequest(t, server, http.MethodPost, "/api/games", CreateGameRequest{PlayerID: player.ID, BetAmount: 10})
	require.Equal(t, http.StatusCreated, rec.Code)
	game := decode[GameResponse](t, rec)

	rec = doRequest(t, server, http.MethodDelete, "/api/games/"+game.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, server, http.MethodGet, "/api/games/"+game.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Abandoning did not touch the balance
	rec = doRequest(t, server, http.MethodGet, "/api/players/"+player.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.DefaultStartingBalance, decode[domain.Player](t, rec).Balance)
}

func TestListGamesEndpoint(t *testing.T) {
	server := newTestServer("2♠", "3♥", "4♦", "5♣", "6♠")
	player := createTestPlayer(t, server, "alice")

	rec := doRequest(t, server, http.MethodPost, "/api/games", CreateGameRequest{PlayerID: player.ID, BetAmount: 10})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, server, http.MethodGet, "/api/games", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]GameResponse](t, rec), 1)

	rec = doRequest(t, server, http.MethodGet, "/api/games?active=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]GameResponse](t, rec), 1)
}

func TestHealthAndRootEndpoints(t *testing.T) {
	server := newTestServer()

	rec := doRequest(t, server, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, server, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// The info route matches the root exactly, not as a prefix
	rec = doRequest(t, server, http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	server := newTestServer()

	req := httptest.NewRequest(http.MethodOptions, "/api/players", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
