package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/sudoku-arena/internal/domain"
)

// TopPlayers aggregates daily score records into a ranked leaderboard.
// groupID restricts the scope to a group's members when non-nil; since
// restricts to records on or after that date when non-nil. Zero best
// times are treated as absent, players with no positive score are
// excluded, and ties on score break toward the faster best time.
func (r *Repository) TopPlayers(ctx context.Context, groupID *int64, since *time.Time, limit int) ([]domain.LeaderboardRow, error) {
	query := `
		SELECT p.id, p.username,
			SUM(d.daily_score) AS total_score,
			SUM(d.games_easy + d.games_medium + d.games_hard) AS total_games,
			MIN(LEAST(
				NULLIF(d.best_time_easy, 0),
				NULLIF(d.best_time_medium, 0),
				NULLIF(d.best_time_hard, 0))) AS best_time
		FROM daily_scores d
		JOIN players p ON p.id = d.player_id
	`
	args := []interface{}{}
	if groupID != nil {
		args = append(args, *groupID)
		query += fmt.Sprintf(`
		JOIN group_members gm ON gm.player_id = d.player_id AND gm.group_id = $%d`, len(args))
	}
	if since != nil {
		args = append(args, *since)
		query += fmt.Sprintf(`
		WHERE d.play_date >= $%d`, len(args))
	}
	args = append(args, limit)
	query += fmt.Sprintf(`
		GROUP BY p.id, p.username
		HAVING SUM(d.daily_score) > 0
		ORDER BY total_score DESC, best_time ASC NULLS LAST
		LIMIT $%d`, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying top players: %w", err)
	}
	defer rows.Close()

	var entries []domain.LeaderboardRow
	for rows.Next() {
		var row domain.LeaderboardRow
		err := rows.Scan(&row.PlayerID, &row.Username, &row.TotalScore, &row.TotalGames, &row.BestTime)
		if err != nil {
			return nil, fmt.Errorf("scanning leaderboard row: %w", err)
		}
		row.Rank = len(entries) + 1
		entries = append(entries, row)
	}
	return entries, nil
}

// PeriodTotals returns every player's summed daily score for a period,
// used to rebuild the realtime standings mirror.
func (r *Repository) PeriodTotals(ctx context.Context, since *time.Time) ([]domain.PlayerTotal, error) {
	query := `
		SELECT p.id, p.username, SUM(d.daily_score) AS total_score
		FROM daily_scores d
		JOIN players p ON p.id = d.player_id
	`
	args := []interface{}{}
	if since != nil {
		args = append(args, *since)
		query += `
		WHERE d.play_date >= $1`
	}
	query += `
		GROUP BY p.id, p.username
		HAVING SUM(d.daily_score) > 0`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying period totals: %w", err)
	}
	defer rows.Close()

	var totals []domain.PlayerTotal
	for rows.Next() {
		var t domain.PlayerTotal
		if err := rows.Scan(&t.PlayerID, &t.Username, &t.TotalScore); err != nil {
			return nil, fmt.Errorf("scanning period total: %w", err)
		}
		totals = append(totals, t)
	}
	return totals, nil
}
