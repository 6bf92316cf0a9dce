package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lazharichir/blackjack/domain"
)

// CreatePlayer inserts one player row
func (s *Store) CreatePlayer(ctx context.Context, player *domain.Player) error {
	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO players (id, username, balance, games_played, games_won, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		player.ID,
		player.Username,
		player.Balance,
		player.GamesPlayed,
		player.GamesWon,
		toMillis(player.CreatedAt),
	)
	if isUniqueViolation(err) {
		return domain.ErrUsernameTaken
	}
	if err != nil {
		return fmt.Errorf("insert player: %w", err)
	}
	return nil
}

// GetPlayer retrieves a player by id
func (s *Store) GetPlayer(ctx context.Context, id string) (*domain.Player, error) {
	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, username, balance, games_played, games_won, created_at
		 FROM players WHERE id = ?`,
		id,
	)
	return scanPlayer(row)
}

// ListPlayers returns all players ordered by registration time
func (s *Store) ListPlayers(ctx context.Context) ([]*domain.Player, error) {
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, username, balance, games_played, games_won, created_at
		 FROM players ORDER BY created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer rows.Close()

	players := make([]*domain.Player, 0)
	for rows.Next() {
		player, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, player)
	}
	return players, rows.Err()
}

// UpdatePlayer overwrites a player row. The whole row is written in one
// statement so settlement does not race a concurrent balance read.
func (s *Store) UpdatePlayer(ctx context.Context, player *domain.Player) error {
	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE players SET username = ?, balance = ?, games_played = ?, games_won = ?
		 WHERE id = ?`,
		player.Username,
		player.Balance,
		player.GamesPlayed,
		player.GamesWon,
		player.ID,
	)
	if isUniqueViolation(err) {
		return domain.ErrUsernameTaken
	}
	if err != nil {
		return fmt.Errorf("update player: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update player: %w", err)
	}
	if affected == 0 {
		return domain.ErrPlayerNotFound
	}
	return nil
}

// DeletePlayer removes a player and, through the cascade, their games
func (s *Store) DeletePlayer(ctx context.Context, id string) error {
	result, err := s.sqlDB.ExecContext(ctx, `DELETE FROM players WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete player: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete player: %w", err)
	}
	if affected == 0 {
		return domain.ErrPlayerNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlayer(row rowScanner) (*domain.Player, error) {
	var player domain.Player
	var createdAt int64

	err := row.Scan(
		&player.ID,
		&player.Username,
		&player.Balance,
		&player.GamesPlayed,
		&player.GamesWon,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrPlayerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan player: %w", err)
	}

	player.CreatedAt = fromMillis(createdAt)
	return &player, nil
}
