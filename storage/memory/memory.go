// Package memory provides an in-memory implementation of the player
// and game stores, used by tests and when no database path is set.
package memory

import (
	"context"
	"sync"

	"github.com/lazharichir/blackjack/domain"
)

// Store keeps players and games in maps. It implements both
// domain.PlayerStore and domain.GameStore, mirroring the sqlite store's
// semantics: unique usernames, and a player's games are removed with
// the player.
type Store struct {
	players map[string]*domain.Player
	games   map[string]*domain.Game
	mutex   sync.RWMutex
}

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{
		players: make(map[string]*domain.Player),
		games:   make(map[string]*domain.Game),
	}
}

func (s *Store) CreatePlayer(_ context.Context, player *domain.Player) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, existing := range s.players {
		if existing.Username == player.Username {
			return domain.ErrUsernameTaken
		}
	}

	clone := *player
	s.players[player.ID] = &clone
	return nil
}

func (s *Store) GetPlayer(_ context.Context, id string) (*domain.Player, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	player, exists := s.players[id]
	if !exists {
		return nil, domain.ErrPlayerNotFound
	}

	clone := *player
	return &clone, nil
}

func (s *Store) ListPlayers(_ context.Context) ([]*domain.Player, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	players := make([]*domain.Player, 0, len(s.players))
	for _, player := range s.players {
		clone := *player
		players = append(players, &clone)
	}
	return players, nil
}

func (s *Store) UpdatePlayer(_ context.Context, player *domain.Player) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.players[player.ID]; !exists {
		return domain.ErrPlayerNotFound
	}

	for id, existing := range s.players {
		if id != player.ID && existing.Username == player.Username {
			return domain.ErrUsernameTaken
		}
	}

	clone := *player
	s.players[player.ID] = &clone
	return nil
}

// DeletePlayer removes a player together with their games
func (s *Store) DeletePlayer(_ context.Context, id string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.players[id]; !exists {
		return domain.ErrPlayerNotFound
	}

	delete(s.players, id)
	for gameID, game := range s.games {
		if game.PlayerID == id {
			delete(s.games, gameID)
		}
	}
	return nil
}

func (s *Store) CreateGame(_ context.Context, game *domain.Game) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	clone := *game
	s.games[game.ID] = &clone
	return nil
}

func (s *Store) GetGame(_ context.Context, id string) (*domain.Game, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	game, exists := s.games[id]
	if !exists {
		return nil, domain.ErrGameNotFound
	}

	clone := *game
	return &clone, nil
}

func (s *Store) ListGames(_ context.Context) ([]*domain.Game, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	games := make([]*domain.Game, 0, len(s.games))
	for _, game := range s.games {
		clone := *game
		games = append(games, &clone)
	}
	return games, nil
}

func (s *Store) ListActiveGames(_ context.Context) ([]*domain.Game, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	games := make([]*domain.Game, 0)
	for _, game := range s.games {
		if game.InProgress() {
			clone := *game
			games = append(games, &clone)
		}
	}
	return games, nil
}

func (s *Store) UpdateGame(_ context.Context, game *domain.Game) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.games[game.ID]; !exists {
		return domain.ErrGameNotFound
	}

	clone := *game
	s.games[game.ID] = &clone
	return nil
}

func (s *Store) DeleteGame(_ context.Context, id string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.games[id]; !exists {
		return domain.ErrGameNotFound
	}

	delete(s.games, id)
	return nil
}

var (
	_ domain.PlayerStore = (*Store)(nil)
	_ domain.GameStore   = (*Store)(nil)
)
