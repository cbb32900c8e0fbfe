package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sudoku-arena/internal/domain"
)

// uniqueViolation is the PostgreSQL error code for duplicate keys
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// CreatePlayer inserts a new player and returns it with its assigned id.
func (r *Repository) CreatePlayer(ctx context.Context, player domain.Player) (*domain.Player, error) {
	query := `
		INSERT INTO players (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query, player.Username, player.Email, player.PasswordHash).
		Scan(&player.ID, &player.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrPlayerExists
		}
		return nil, fmt.Errorf("creating player: %w", err)
	}
	return &player, nil
}

// GetPlayerByUsername retrieves a player by username.
func (r *Repository) GetPlayerByUsername(ctx context.Context, username string) (*domain.Player, error) {
	query := `
		SELECT id, username, email, password_hash, created_at
		FROM players
		WHERE username = $1
	`
	var player domain.Player
	err := r.pool.QueryRow(ctx, query, username).Scan(
		&player.ID,
		&player.Username,
		&player.Email,
		&player.PasswordHash,
		&player.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("getting player: %w", err)
	}
	return &player, nil
}

// GetPlayer retrieves a player by id.
func (r *Repository) GetPlayer(ctx context.Context, playerID int64) (*domain.Player, error) {
	query := `
		SELECT id, username, email, password_hash, created_at
		FROM players
		WHERE id = $1
	`
	var player domain.Player
	err := r.pool.QueryRow(ctx, query, playerID).Scan(
		&player.ID,
		&player.Username,
		&player.Email,
		&player.PasswordHash,
		&player.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("getting player: %w", err)
	}
	return &player, nil
}

// GetUsernames resolves a set of player ids to usernames.
func (r *Repository) GetUsernames(ctx context.Context, playerIDs []int64) (map[int64]string, error) {
	if len(playerIDs) == 0 {
		return map[int64]string{}, nil
	}

	query := `SELECT id, username FROM players WHERE id = ANY($1)`
	rows, err := r.pool.Query(ctx, query, playerIDs)
	if err != nil {
		return nil, fmt.Errorf("getting usernames: %w", err)
	}
	defer rows.Close()

	names := make(map[int64]string, len(playerIDs))
	for rows.Next() {
		var id int64
		var username string
		if err := rows.Scan(&id, &username); err != nil {
			return nil, fmt.Errorf("scanning username: %w", err)
		}
		names[id] = username
	}
	return names, nil
}
