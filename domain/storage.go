package domain

import "context"

// PlayerStore persists player records. Implementations must enforce the
// username uniqueness constraint and report ErrPlayerNotFound and
// ErrUsernameTaken from this package.
type PlayerStore interface {
	CreatePlayer(ctx context.Context, player *Player) error
	GetPlayer(ctx context.Context, id string) (*Player, error)
	ListPlayers(ctx context.Context) ([]*Player, error)
	UpdatePlayer(ctx context.Context, player *Player) error
	DeletePlayer(ctx context.Context, id string) error
}

// GameStore persists game records keyed by id
type GameStore interface {
	CreateGame(ctx context.Context, game *Game) error
	GetGame(ctx context.Context, id string) (*Game, error)
	ListGames(ctx context.Context) ([]*Game, error)
	ListActiveGames(ctx context.Context) ([]*Game, error)
	UpdateGame(ctx context.Context, game *Game) error
	DeleteGame(ctx context.Context, id string) error
}
