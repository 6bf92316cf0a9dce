package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lazharichir/blackjack/blackjack"
	"github.com/lazharichir/blackjack/cards"
	"github.com/lazharichir/blackjack/domain"
)

// CreateGame inserts one game row, hands and shoe serialized as JSON
func (s *Store) CreateGame(ctx context.Context, game *domain.Game) error {
	playerHand, dealerHand, shoe, err := marshalTable(game)
	if err != nil {
		return err
	}

	var finishedAt any
	if game.FinishedAt != nil {
		finishedAt = toMillis(*game.FinishedAt)
	}

	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO games (id, player_id, bet_amount, status, player_hand, dealer_hand, shoe, created_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		game.ID,
		game.PlayerID,
		game.BetAmount,
		string(game.Status),
		playerHand,
		dealerHand,
		shoe,
		toMillis(game.CreatedAt),
		finishedAt,
	)
	if err != nil {
		return fmt.Errorf("insert game: %w", err)
	}
	return nil
}

// GetGame retrieves a game by id
func (s *Store) GetGame(ctx context.Context, id string) (*domain.Game, error) {
	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, player_id, bet_amount, status, player_hand, dealer_hand, shoe, created_at, finished_at
		 FROM games WHERE id = ?`,
		id,
	)
	return scanGame(row)
}

// ListGames returns all games ordered by creation time
func (s *Store) ListGames(ctx context.Context) ([]*domain.Game, error) {
	return s.queryGames(ctx,
		`SELECT id, player_id, bet_amount, status, player_hand, dealer_hand, shoe, created_at, finished_at
		 FROM games ORDER BY created_at`)
}

// ListActiveGames returns all in-progress games
func (s *Store) ListActiveGames(ctx context.Context) ([]*domain.Game, error) {
	return s.queryGames(ctx,
		`SELECT id, player_id, bet_amount, status, player_hand, dealer_hand, shoe, created_at, finished_at
		 FROM games WHERE status = ? ORDER BY created_at`,
		string(blackjack.StatusInProgress))
}

// UpdateGame overwrites a game row
func (s *Store) UpdateGame(ctx context.Context, game *domain.Game) error {
	playerHand, dealerHand, shoe, err := marshalTable(game)
	if err != nil {
		return err
	}

	var finishedAt any
	if game.FinishedAt != nil {
		finishedAt = toMillis(*game.FinishedAt)
	}

	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE games SET status = ?, player_hand = ?, dealer_hand = ?, shoe = ?, finished_at = ?
		 WHERE id = ?`,
		string(game.Status),
		playerHand,
		dealerHand,
		shoe,
		finishedAt,
		game.ID,
	)
	if err != nil {
		return fmt.Errorf("update game: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update game: %w", err)
	}
	if affected == 0 {
		return domain.ErrGameNotFound
	}
	return nil
}

// DeleteGame removes a game by id
func (s *Store) DeleteGame(ctx context.Context, id string) error {
	result, err := s.sqlDB.ExecContext(ctx, `DELETE FROM games WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete game: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	if affected == 0 {
		return domain.ErrGameNotFound
	}
	return nil
}

func (s *Store) queryGames(ctx context.Context, query string, args ...any) ([]*domain.Game, error) {
	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query games: %w", err)
	}
	defer rows.Close()

	games := make([]*domain.Game, 0)
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, game)
	}
	return games, rows.Err()
}

func marshalTable(game *domain.Game) (playerHand, dealerHand, shoe string, err error) {
	playerBytes, err := json.Marshal(game.PlayerHand.Stack())
	if err != nil {
		return "", "", "", fmt.Errorf("marshal player hand: %w", err)
	}
	dealerBytes, err := json.Marshal(game.DealerHand.Stack())
	if err != nil {
		return "", "", "", fmt.Errorf("marshal dealer hand: %w", err)
	}
	shoeBytes, err := json.Marshal(game.Shoe.Cards)
	if err != nil {
		return "", "", "", fmt.Errorf("marshal shoe: %w", err)
	}
	return string(playerBytes), string(dealerBytes), string(shoeBytes), nil
}

func scanGame(row rowScanner) (*domain.Game, error) {
	var game domain.Game
	var status, playerHand, dealerHand, shoe string
	var createdAt int64
	var finishedAt sql.NullInt64

	err := row.Scan(
		&game.ID,
		&game.PlayerID,
		&game.BetAmount,
		&status,
		&playerHand,
		&dealerHand,
		&shoe,
		&createdAt,
		&finishedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan game: %w", err)
	}

	var playerStack, dealerStack, shoeStack cards.Stack
	if err := json.Unmarshal([]byte(playerHand), &playerStack); err != nil {
		return nil, fmt.Errorf("unmarshal player hand: %w", err)
	}
	if err := json.Unmarshal([]byte(dealerHand), &dealerStack); err != nil {
		return nil, fmt.Errorf("unmarshal dealer hand: %w", err)
	}
	if err := json.Unmarshal([]byte(shoe), &shoeStack); err != nil {
		return nil, fmt.Errorf("unmarshal shoe: %w", err)
	}

	game.Status = blackjack.Status(status)
	game.PlayerHand = blackjack.HandFromStack(playerStack)
	game.DealerHand = blackjack.HandFromStack(dealerStack)
	game.Shoe = cards.ShoeFromStack(shoeStack)
	game.CreatedAt = fromMillis(createdAt)
	if finishedAt.Valid {
		finished := fromMillis(finishedAt.Int64)
		game.FinishedAt = &finished
	}

	return &game, nil
}
