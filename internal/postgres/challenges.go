package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/sudoku-arena/internal/domain"
)

// CreateChallenge inserts a new challenge and returns it with its
// assigned id.
func (r *Repository) CreateChallenge(ctx context.Context, ch domain.Challenge) (*domain.Challenge, error) {
	query := `
		INSERT INTO challenges
			(challenger_id, challenged_id, group_id, difficulty, puzzle_data, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query,
		ch.ChallengerID, ch.ChallengedID, ch.GroupID,
		string(ch.Difficulty), ch.PuzzleData, string(ch.Status),
	).Scan(&ch.ID, &ch.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("creating challenge: %w", err)
	}
	return &ch, nil
}

const challengeColumns = `
	id, challenger_id, challenged_id, group_id, difficulty, puzzle_data, status,
	challenger_time, challenger_score, challenger_mistakes,
	challenged_time, challenged_score, challenged_mistakes,
	created_at`

func scanChallenge(row pgx.Row) (*domain.Challenge, error) {
	var ch domain.Challenge
	err := row.Scan(
		&ch.ID, &ch.ChallengerID, &ch.ChallengedID, &ch.GroupID,
		&ch.Difficulty, &ch.PuzzleData, &ch.Status,
		&ch.Challenger.TimeSeconds, &ch.Challenger.Score, &ch.Challenger.Mistakes,
		&ch.Challenged.TimeSeconds, &ch.Challenged.Score, &ch.Challenged.Mistakes,
		&ch.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ch, nil
}

// GetChallenge retrieves a challenge by id.
func (r *Repository) GetChallenge(ctx context.Context, challengeID int64) (*domain.Challenge, error) {
	query := `SELECT` + challengeColumns + ` FROM challenges WHERE id = $1`
	ch, err := scanChallenge(r.pool.QueryRow(ctx, query, challengeID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrChallengeNotFound
		}
		return nil, fmt.Errorf("getting challenge: %w", err)
	}
	return ch, nil
}

// ListChallengesForPlayer retrieves challenges the player participates in.
func (r *Repository) ListChallengesForPlayer(ctx context.Context, playerID int64) ([]domain.Challenge, error) {
	query := `SELECT` + challengeColumns + `
		FROM challenges
		WHERE challenger_id = $1 OR challenged_id = $1
		ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, playerID)
	if err != nil {
		return nil, fmt.Errorf("listing challenges: %w", err)
	}
	defer rows.Close()

	var challenges []domain.Challenge
	for rows.Next() {
		ch, err := scanChallenge(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning challenge: %w", err)
		}
		challenges = append(challenges, *ch)
	}
	return challenges, nil
}

// UpdateChallenge persists the mutable fields of a challenge.
func (r *Repository) UpdateChallenge(ctx context.Context, ch *domain.Challenge) error {
	query := `
		UPDATE challenges SET
			status = $2,
			challenger_time = $3, challenger_score = $4, challenger_mistakes = $5,
			challenged_time = $6, challenged_score = $7, challenged_mistakes = $8
		WHERE id = $1
	`
	result, err := r.pool.Exec(ctx, query, ch.ID, string(ch.Status),
		ch.Challenger.TimeSeconds, ch.Challenger.Score, ch.Challenger.Mistakes,
		ch.Challenged.TimeSeconds, ch.Challenged.Score, ch.Challenged.Mistakes,
	)
	if err != nil {
		return fmt.Errorf("updating challenge: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrChallengeNotFound
	}
	return nil
}

// ResolveChallenge applies the outcome to both participants' group
// records and deletes the challenge row in one transaction. Completed
// challenges are not archived, and because the counters and the delete
// commit together a resolved challenge can never be replayed against
// the group records.
func (r *Repository) ResolveChallenge(ctx context.Context, ch *domain.Challenge, outcome domain.ContestOutcome) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := applyContestOutcome(ctx, tx, ch.GroupID, ch.ChallengerID, ch.ChallengedID, outcome); err != nil {
		return err
	}

	result, err := tx.Exec(ctx, `DELETE FROM challenges WHERE id = $1`, ch.ID)
	if err != nil {
		return fmt.Errorf("deleting challenge: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrChallengeNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing challenge resolution: %w", err)
	}
	return nil
}
