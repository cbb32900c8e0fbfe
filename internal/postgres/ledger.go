package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/sudoku-arena/internal/domain"
)

// ledgerColumns maps a difficulty to its slice of the daily_scores row
type ledgerColumns struct {
	bestTime   string
	bestTimeNM string
	games      string
	gamesNM    string
}

var difficultyLedgerColumns = map[domain.Difficulty]ledgerColumns{
	domain.DifficultyEasy: {
		bestTime: "best_time_easy", bestTimeNM: "best_time_easy_nm",
		games: "games_easy", gamesNM: "games_easy_nm",
	},
	domain.DifficultyMedium: {
		bestTime: "best_time_medium", bestTimeNM: "best_time_medium_nm",
		games: "games_medium", gamesNM: "games_medium_nm",
	},
	domain.DifficultyHard: {
		bestTime: "best_time_hard", bestTimeNM: "best_time_hard_nm",
		games: "games_hard", gamesNM: "games_hard_nm",
	},
}

// RecordCompletedGame merges one completed game into the player's record
// for the current day as a single insert-or-update statement, so
// concurrent submissions by the same player cannot lose an update.
// Best-time slots take the minimum, with 0 meaning unset; no-mistake
// slots and counters only move when the game had zero mistakes; the
// daily score accumulates.
func (r *Repository) RecordCompletedGame(ctx context.Context, playerID int64, game domain.GameSubmission, score int) error {
	cols, ok := difficultyLedgerColumns[game.Difficulty]
	if !ok {
		return domain.ErrInvalidDifficulty
	}

	query := fmt.Sprintf(`
		INSERT INTO daily_scores
			(player_id, play_date, %[1]s, %[2]s, %[3]s, %[4]s, daily_score)
		VALUES
			($1, CURRENT_DATE, $2,
			 CASE WHEN $3 = 0 THEN $2 ELSE 0 END,
			 1,
			 CASE WHEN $3 = 0 THEN 1 ELSE 0 END,
			 $4)
		ON CONFLICT (player_id, play_date) DO UPDATE SET
			%[1]s = LEAST(NULLIF(daily_scores.%[1]s, 0), EXCLUDED.%[1]s),
			%[2]s = CASE WHEN $3 = 0
				THEN LEAST(NULLIF(daily_scores.%[2]s, 0), $2)
				ELSE daily_scores.%[2]s END,
			%[3]s = daily_scores.%[3]s + 1,
			%[4]s = daily_scores.%[4]s + CASE WHEN $3 = 0 THEN 1 ELSE 0 END,
			daily_score = daily_scores.daily_score + $4
	`, cols.bestTime, cols.bestTimeNM, cols.games, cols.gamesNM)

	_, err := r.pool.Exec(ctx, query, playerID, game.TimeSeconds, game.Mistakes, score)
	if err != nil {
		return fmt.Errorf("recording completed game: %w", err)
	}
	return nil
}

// GetDailyScore retrieves a player's record for the current day.
func (r *Repository) GetDailyScore(ctx context.Context, playerID int64) (*domain.DailyScore, error) {
	query := `
		SELECT player_id, play_date,
			best_time_easy, best_time_medium, best_time_hard,
			best_time_easy_nm, best_time_medium_nm, best_time_hard_nm,
			games_easy, games_medium, games_hard,
			games_easy_nm, games_medium_nm, games_hard_nm,
			daily_score
		FROM daily_scores
		WHERE player_id = $1 AND play_date = CURRENT_DATE
	`
	var ds domain.DailyScore
	err := r.pool.QueryRow(ctx, query, playerID).Scan(
		&ds.PlayerID, &ds.PlayDate,
		&ds.BestTimeEasy, &ds.BestTimeMedium, &ds.BestTimeHard,
		&ds.BestTimeEasyNoMistakes, &ds.BestTimeMediumNoMistakes, &ds.BestTimeHardNoMistakes,
		&ds.GamesEasy, &ds.GamesMedium, &ds.GamesHard,
		&ds.GamesEasyNoMistakes, &ds.GamesMediumNoMistakes, &ds.GamesHardNoMistakes,
		&ds.DailyScore,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("getting daily score: %w", err)
	}
	return &ds, nil
}
