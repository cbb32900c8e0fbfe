package postgres

import (
	"context"
	"fmt"

	"github.com/sudoku-arena/internal/domain"
)

// AwardMedal increments the player's count for a medal type, creating
// the row on first award. Counts never decrease.
func (r *Repository) AwardMedal(ctx context.Context, playerID int64, medalType domain.MedalType) error {
	query := `
		INSERT INTO medals (player_id, medal_type, description, number_of_medals)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (player_id, medal_type)
		DO UPDATE SET number_of_medals = medals.number_of_medals + 1
	`
	_, err := r.pool.Exec(ctx, query, playerID, string(medalType), medalType.Description())
	if err != nil {
		return fmt.Errorf("awarding medal: %w", err)
	}
	return nil
}

// ListMedals retrieves all medals held by a player.
func (r *Repository) ListMedals(ctx context.Context, playerID int64) ([]domain.Medal, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT player_id, medal_type, description, number_of_medals
		FROM medals
		WHERE player_id = $1
		ORDER BY medal_type
	`, playerID)
	if err != nil {
		return nil, fmt.Errorf("listing medals: %w", err)
	}
	defer rows.Close()

	var medals []domain.Medal
	for rows.Next() {
		var m domain.Medal
		if err := rows.Scan(&m.PlayerID, &m.Type, &m.Description, &m.Count); err != nil {
			return nil, fmt.Errorf("scanning medal: %w", err)
		}
		medals = append(medals, m)
	}
	return medals, nil
}
