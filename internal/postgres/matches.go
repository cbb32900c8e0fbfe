package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/sudoku-arena/internal/domain"
)

// CreateMatch inserts a new live match and returns it with its assigned id.
func (r *Repository) CreateMatch(ctx context.Context, m domain.Match) (*domain.Match, error) {
	query := `
		INSERT INTO matches
			(challenger_id, challenged_id, group_id, difficulty, puzzle_data, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query,
		m.ChallengerID, m.ChallengedID, m.GroupID,
		string(m.Difficulty), m.PuzzleData, string(m.Status),
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("creating match: %w", err)
	}
	return &m, nil
}

const matchColumns = `
	id, challenger_id, challenged_id, group_id, difficulty, puzzle_data, status,
	challenger_started_at, challenger_completed_at,
	challenger_time, challenger_score, challenger_mistakes,
	challenged_started_at, challenged_completed_at,
	challenged_time, challenged_score, challenged_mistakes,
	created_at`

func scanMatch(row pgx.Row) (*domain.Match, error) {
	var m domain.Match
	err := row.Scan(
		&m.ID, &m.ChallengerID, &m.ChallengedID, &m.GroupID,
		&m.Difficulty, &m.PuzzleData, &m.Status,
		&m.Challenger.StartedAt, &m.Challenger.CompletedAt,
		&m.Challenger.Result.TimeSeconds, &m.Challenger.Result.Score, &m.Challenger.Result.Mistakes,
		&m.Challenged.StartedAt, &m.Challenged.CompletedAt,
		&m.Challenged.Result.TimeSeconds, &m.Challenged.Result.Score, &m.Challenged.Result.Mistakes,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetMatch retrieves a match by id.
func (r *Repository) GetMatch(ctx context.Context, matchID int64) (*domain.Match, error) {
	query := `SELECT` + matchColumns + ` FROM matches WHERE id = $1`
	m, err := scanMatch(r.pool.QueryRow(ctx, query, matchID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrMatchNotFound
		}
		return nil, fmt.Errorf("getting match: %w", err)
	}
	return m, nil
}

// UpdateMatch persists the mutable fields of a match. Matches are
// retained after completion.
func (r *Repository) UpdateMatch(ctx context.Context, m *domain.Match) error {
	query := `
		UPDATE matches SET
			status = $2,
			challenger_started_at = $3, challenger_completed_at = $4,
			challenger_time = $5, challenger_score = $6, challenger_mistakes = $7,
			challenged_started_at = $8, challenged_completed_at = $9,
			challenged_time = $10, challenged_score = $11, challenged_mistakes = $12
		WHERE id = $1
	`
	result, err := r.pool.Exec(ctx, query, m.ID, string(m.Status),
		m.Challenger.StartedAt, m.Challenger.CompletedAt,
		m.Challenger.Result.TimeSeconds, m.Challenger.Result.Score, m.Challenger.Result.Mistakes,
		m.Challenged.StartedAt, m.Challenged.CompletedAt,
		m.Challenged.Result.TimeSeconds, m.Challenged.Result.Score, m.Challenged.Result.Mistakes,
	)
	if err != nil {
		return fmt.Errorf("updating match: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrMatchNotFound
	}
	return nil
}
