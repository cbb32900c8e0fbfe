package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sudoku-arena/internal/config"
	"github.com/sudoku-arena/internal/domain"
	"github.com/sudoku-arena/internal/postgres"
	"github.com/sudoku-arena/internal/redis"
)

// LeaderboardService answers leaderboard queries. Aggregated rankings
// come from PostgreSQL; the realtime view reads the Redis mirror.
type LeaderboardService struct {
	postgres  *postgres.Repository
	standings *redis.StandingsService
	config    *config.LeaderboardConfig
	logger    *slog.Logger
}

// NewLeaderboardService creates a new leaderboard service
func NewLeaderboardService(
	pg *postgres.Repository,
	standings *redis.StandingsService,
	cfg *config.LeaderboardConfig,
	logger *slog.Logger,
) *LeaderboardService {
	return &LeaderboardService{
		postgres:  pg,
		standings: standings,
		config:    cfg,
		logger:    logger,
	}
}

func (s *LeaderboardService) clampLimit(limit int) int {
	if limit <= 0 {
		return s.config.DefaultLimit
	}
	if limit > s.config.MaxLimit {
		return s.config.MaxLimit
	}
	return limit
}

// TopPlayers returns the ranked leaderboard for a scope and period.
// A nil groupID means global scope.
func (s *LeaderboardService) TopPlayers(ctx context.Context, groupID *int64, period domain.Period, limit int) ([]domain.LeaderboardRow, error) {
	if !period.Valid() {
		return nil, domain.ErrInvalidPeriod
	}
	limit = s.clampLimit(limit)

	var since *time.Time
	if start, bounded := period.Start(time.Now()); bounded {
		since = &start
	}

	rows, err := s.postgres.TopPlayers(ctx, groupID, since, limit)
	if err != nil {
		return nil, fmt.Errorf("aggregating leaderboard: %w", err)
	}
	return rows, nil
}

// GroupTopPlayers returns the leaderboard restricted to a group's
// members, verifying the group exists first.
func (s *LeaderboardService) GroupTopPlayers(ctx context.Context, groupID int64, period domain.Period, limit int) ([]domain.LeaderboardRow, error) {
	if _, err := s.postgres.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}
	return s.TopPlayers(ctx, &groupID, period, limit)
}

// Realtime returns the Redis standings mirror for a period, filling any
// usernames missing from the cache out of PostgreSQL.
func (s *LeaderboardService) Realtime(ctx context.Context, period domain.Period, limit int) ([]domain.RealtimeEntry, error) {
	if !period.Valid() {
		return nil, domain.ErrInvalidPeriod
	}
	limit = s.clampLimit(limit)

	entries, err := s.standings.TopN(ctx, period, limit, time.Now())
	if err != nil {
		return nil, fmt.Errorf("reading realtime standings: %w", err)
	}

	var missing []int64
	for _, e := range entries {
		if e.Username == "" {
			missing = append(missing, e.PlayerID)
		}
	}
	if len(missing) > 0 {
		names, err := s.postgres.GetUsernames(ctx, missing)
		if err != nil {
			s.logger.Warn("failed to resolve usernames", "error", err)
			return entries, nil
		}
		for i := range entries {
			if entries[i].Username == "" {
				entries[i].Username = names[entries[i].PlayerID]
			}
		}
	}
	return entries, nil
}

// PlayerRank returns the player's realtime rank for a period.
func (s *LeaderboardService) PlayerRank(ctx context.Context, period domain.Period, player domain.PlayerInfo) (*domain.RealtimeEntry, error) {
	if !period.Valid() {
		return nil, domain.ErrInvalidPeriod
	}
	entry, err := s.standings.PlayerRank(ctx, period, player.ID, time.Now())
	if err != nil {
		return nil, err
	}
	entry.Username = player.Username
	return entry, nil
}
