package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/sudoku-arena/internal/domain"
)

// CreateGroup inserts a group and its creator as the initial leader in
// one transaction.
func (r *Repository) CreateGroup(ctx context.Context, group domain.Group, creatorID int64) (*domain.Group, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var passwordHash interface{}
	if group.PasswordHash != "" {
		passwordHash = group.PasswordHash
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO groups (name, description, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, group.Name, group.Description, passwordHash).Scan(&group.ID, &group.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("creating group: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO group_members (group_id, player_id, role)
		VALUES ($1, $2, $3)
	`, group.ID, creatorID, domain.RoleLeader)
	if err != nil {
		return nil, fmt.Errorf("adding group leader: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing group creation: %w", err)
	}

	group.Private = group.PasswordHash != ""
	return &group, nil
}

// GetGroup retrieves a group by id.
func (r *Repository) GetGroup(ctx context.Context, groupID int64) (*domain.Group, error) {
	var group domain.Group
	var passwordHash *string
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, description, password_hash, created_at
		FROM groups
		WHERE id = $1
	`, groupID).Scan(&group.ID, &group.Name, &group.Description, &passwordHash, &group.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrGroupNotFound
		}
		return nil, fmt.Errorf("getting group: %w", err)
	}
	if passwordHash != nil {
		group.PasswordHash = *passwordHash
		group.Private = true
	}
	return &group, nil
}

// AddMember inserts a membership row.
func (r *Repository) AddMember(ctx context.Context, groupID, playerID int64) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO group_members (group_id, player_id, role)
		VALUES ($1, $2, $3)
	`, groupID, playerID, domain.RoleMember)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyMember
		}
		return fmt.Errorf("adding group member: %w", err)
	}
	return nil
}

// RemoveMember deletes a membership row.
func (r *Repository) RemoveMember(ctx context.Context, groupID, playerID int64) error {
	result, err := r.pool.Exec(ctx, `
		DELETE FROM group_members WHERE group_id = $1 AND player_id = $2
	`, groupID, playerID)
	if err != nil {
		return fmt.Errorf("removing group member: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotGroupMember
	}
	return nil
}

// IsMember reports whether the player belongs to the group.
func (r *Repository) IsMember(ctx context.Context, groupID, playerID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM group_members WHERE group_id = $1 AND player_id = $2)
	`, groupID, playerID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking group membership: %w", err)
	}
	return exists, nil
}

// ListMembers retrieves all members of a group with their records.
func (r *Repository) ListMembers(ctx context.Context, groupID int64) ([]domain.GroupMember, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT gm.group_id, gm.player_id, p.username, gm.role,
			gm.wins, gm.losses, gm.draws, gm.joined_at
		FROM group_members gm
		JOIN players p ON p.id = gm.player_id
		WHERE gm.group_id = $1
		ORDER BY gm.wins DESC, gm.joined_at ASC
	`, groupID)
	if err != nil {
		return nil, fmt.Errorf("listing group members: %w", err)
	}
	defer rows.Close()

	var members []domain.GroupMember
	for rows.Next() {
		var m domain.GroupMember
		err := rows.Scan(&m.GroupID, &m.PlayerID, &m.Username, &m.Role,
			&m.Wins, &m.Losses, &m.Draws, &m.JoinedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning group member: %w", err)
		}
		members = append(members, m)
	}
	return members, nil
}

// ResolveContest applies a contest outcome to both participants' group
// records in a single transaction. On a decisive outcome the winner's
// wins and the loser's losses each move by one; on a draw both draw
// counters move. Partial application rolls back entirely.
func (r *Repository) ResolveContest(ctx context.Context, groupID, challengerID, challengedID int64, outcome domain.ContestOutcome) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := applyContestOutcome(ctx, tx, groupID, challengerID, challengedID, outcome); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing group records: %w", err)
	}
	return nil
}

// applyContestOutcome moves both participants' win/loss/draw counters
// inside the caller's transaction.
func applyContestOutcome(ctx context.Context, tx pgx.Tx, groupID, challengerID, challengedID int64, outcome domain.ContestOutcome) error {
	type update struct {
		column   string
		playerID int64
	}
	var updates []update
	switch outcome {
	case domain.OutcomeChallenger:
		updates = []update{{"wins", challengerID}, {"losses", challengedID}}
	case domain.OutcomeChallenged:
		updates = []update{{"wins", challengedID}, {"losses", challengerID}}
	case domain.OutcomeDraw:
		updates = []update{{"draws", challengerID}, {"draws", challengedID}}
	default:
		return domain.ErrInvalidRequest
	}

	for _, u := range updates {
		query := fmt.Sprintf(`
			UPDATE group_members SET %s = %s + 1
			WHERE group_id = $1 AND player_id = $2
		`, u.column, u.column)
		result, err := tx.Exec(ctx, query, groupID, u.playerID)
		if err != nil {
			return fmt.Errorf("updating group record: %w", err)
		}
		if result.RowsAffected() != 1 {
			return domain.ErrNotGroupMember
		}
	}
	return nil
}
