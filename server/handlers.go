package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/lazharichir/blackjack/blackjack"
	"github.com/lazharichir/blackjack/cards"
	"github.com/lazharichir/blackjack/domain"
	serverevents "github.com/lazharichir/blackjack/server/events"
)

// CreatePlayerRequest represents the request to register a new player
type CreatePlayerRequest struct {
	Username       string `json:"username"`
	InitialBalance *int   `json:"initialBalance,omitempty"`
}

// CreateGameRequest represents the request to start a new game
type CreateGameRequest struct {
	PlayerID  string `json:"playerId"`
	BetAmount int    `json:"betAmount"`
}

// GameActionRequest represents a hit or stand submission
type GameActionRequest struct {
	PlayerID string `json:"playerId"`
	Action   string `json:"action"`
}

// GameResponse represents a game in API responses
type GameResponse struct {
	ID          string       `json:"id"`
	Status      string       `json:"status"`
	PlayerID    string       `json:"playerId"`
	BetAmount   int          `json:"betAmount"`
	PlayerHand  []cards.Card `json:"playerHand"`
	DealerHand  []cards.Card `json:"dealerHand"`
	PlayerScore int          `json:"playerScore"`
	DealerScore int          `json:"dealerScore"`
	CreatedAt   time.Time    `json:"createdAt"`
	FinishedAt  *time.Time   `json:"finishedAt,omitempty"`
}

func gameResponse(game *domain.Game) GameResponse {
	return GameResponse{
		ID:          game.ID,
		Status:      string(game.Status),
		PlayerID:    game.PlayerID,
		BetAmount:   game.BetAmount,
		PlayerHand:  game.PlayerHand.Stack(),
		DealerHand:  game.DealerHand.Stack(),
		PlayerScore: game.PlayerScore(),
		DealerScore: game.DealerScore(),
		CreatedAt:   game.CreatedAt,
		FinishedAt:  game.FinishedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeError maps domain errors onto HTTP status codes
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, domain.ErrPlayerNotFound), errors.Is(err, domain.ErrGameNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrInvalidBet),
		errors.Is(err, domain.ErrUsernameTaken),
		errors.Is(err, domain.ErrInvalidUsername),
		errors.Is(err, domain.ErrInvalidBalance),
		errors.Is(err, blackjack.ErrInvalidAction),
		errors.Is(err, blackjack.ErrGameFinished):
		status = http.StatusBadRequest
	}

	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":    "Blackjack API",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"players":   "/api/players",
			"games":     "/api/games",
			"websocket": "/ws/status",
			"health":    "/health",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleCreatePlayer(w http.ResponseWriter, r *http.Request) {
	var req CreatePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	balance := domain.DefaultStartingBalance
	if req.InitialBalance != nil {
		balance = *req.InitialBalance
	}

	player, err := s.casino.RegisterPlayer(r.Context(), req.Username, balance)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, player)
}

func (s *Server) handleListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := s.casino.ListPlayers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, players)
}

func (s *Server) handleGetPlayer(w http.ResponseWriter, r *http.Request) {
	player, err := s.casino.GetPlayer(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, player)
}

func (s *Server) handleUpdatePlayer(w http.ResponseWriter, r *http.Request) {
	var update domain.PlayerUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	player, err := s.casino.UpdatePlayer(r.Context(), r.PathValue("id"), update)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, player)
}

func (s *Server) handleDeletePlayer(w http.ResponseWriter, r *http.Request) {
	if err := s.casino.DeletePlayer(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.BetAmount == 0 {
		req.BetAmount = 10 // Default bet
	}

	game, err := s.casino.CreateGame(r.Context(), req.PlayerID, req.BetAmount)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, gameResponse(game))
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	var games []*domain.Game
	var err error

	if r.URL.Query().Get("active") == "true" {
		games, err = s.casino.ListActiveGames(r.Context())
	} else {
		games, err = s.casino.ListGames(r.Context())
	}
	if err != nil {
		writeError(w, err)
		return
	}

	responses := make([]GameResponse, 0, len(games))
	for _, game := range games {
		responses = append(responses, gameResponse(game))
	}

	writeJSON(w, http.StatusOK, responses)
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	game, err := s.casino.GetGame(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, gameResponse(game))
}

func (s *Server) handleGameAction(w http.ResponseWriter, r *http.Request) {
	var req GameActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	game, err := s.casino.ApplyAction(r.Context(), r.PathValue("id"), req.PlayerID, blackjack.Action(req.Action))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, gameResponse(game))
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := s.casino.DeleteGame(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGameEvents(w http.ResponseWriter, r *http.Request) {
	if _, err := s.casino.GetGame(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}

	log, err := s.casino.GameEvents(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	envelopes := make([]serverevents.EventEnvelope, 0, len(log))
	for _, event := range log {
		payload, err := json.Marshal(event)
		if err != nil {
			writeError(w, err)
			return
		}
		envelopes = append(envelopes, serverevents.EventEnvelope{
			Name:    event.Name(),
			Payload: payload,
		})
	}

	writeJSON(w, http.StatusOK, envelopes)
}
