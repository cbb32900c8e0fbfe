package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sudoku-arena/internal/domain"
	"github.com/sudoku-arena/internal/postgres"
	"github.com/sudoku-arena/internal/redis"
	"github.com/sudoku-arena/internal/websocket"
)

// GameResult is returned to the player after a completed game is recorded
type GameResult struct {
	Score int `json:"score"`
}

// GameService records completed games: scoring, the daily ledger merge,
// medals, and the realtime standings mirror.
type GameService struct {
	postgres  *postgres.Repository
	standings *redis.StandingsService
	hub       *websocket.Hub
	logger    *slog.Logger
}

// NewGameService creates a new game service
func NewGameService(pg *postgres.Repository, standings *redis.StandingsService, logger *slog.Logger) *GameService {
	return &GameService{
		postgres:  pg,
		standings: standings,
		logger:    logger,
	}
}

// SetHub sets the WebSocket hub used for standings broadcasts
func (s *GameService) SetHub(hub *websocket.Hub) {
	s.hub = hub
}

// SubmitGame scores a completed game and merges it into the player's
// daily record. The ledger write is the unit of atomicity and its
// failure fails the request; the standings mirror and medal award are
// secondary and only logged on failure.
func (s *GameService) SubmitGame(ctx context.Context, player domain.PlayerInfo, sub domain.GameSubmission) (*GameResult, error) {
	if err := sub.Validate(); err != nil {
		return nil, err
	}

	score := domain.Score(sub.Difficulty, sub.TimeSeconds, sub.Mistakes)

	if err := s.postgres.RecordCompletedGame(ctx, player.ID, sub, score); err != nil {
		return nil, fmt.Errorf("ledger write failed: %w", err)
	}

	if sub.Mistakes == 0 {
		if err := s.postgres.AwardMedal(ctx, player.ID, domain.MedalFlawless); err != nil {
			s.logger.Warn("failed to award medal", "player_id", player.ID, "error", err)
		}
	}

	now := time.Now()
	if err := s.standings.RecordScore(ctx, player, int64(score), now); err != nil {
		s.logger.Warn("failed to update realtime standings", "player_id", player.ID, "error", err)
	} else {
		s.broadcastStandings(ctx, now)
	}

	return &GameResult{Score: score}, nil
}

// broadcastStandings pushes refreshed daily standings to subscribers.
func (s *GameService) broadcastStandings(ctx context.Context, now time.Time) {
	if s.hub == nil {
		return
	}
	entries, err := s.standings.TopN(ctx, domain.PeriodDay, 10, now)
	if err != nil {
		s.logger.Warn("failed to load standings for broadcast", "error", err)
		return
	}
	s.hub.BroadcastStandings(domain.PeriodDay, entries)
}

// TodayRecord returns the player's daily record for the current day.
func (s *GameService) TodayRecord(ctx context.Context, playerID int64) (*domain.DailyScore, error) {
	return s.postgres.GetDailyScore(ctx, playerID)
}

// Medals returns all medals held by the player.
func (s *GameService) Medals(ctx context.Context, playerID int64) ([]domain.Medal, error) {
	return s.postgres.ListMedals(ctx, playerID)
}
