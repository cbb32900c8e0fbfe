package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sudoku-arena/internal/config"
	"github.com/sudoku-arena/internal/domain"
)

// StandingsService mirrors period leaderboard totals in Redis sorted
// sets for cheap realtime reads and broadcast. PostgreSQL stays the
// system of record; the mirror is rebuilt from it on startup and on an
// interval by the sync worker.
type StandingsService struct {
	client *redis.Client
	logger *slog.Logger
}

// NewStandingsService creates a new Redis standings service
func NewStandingsService(cfg *config.RedisConfig, logger *slog.Logger) (*StandingsService, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	// Test connection
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	return &StandingsService{
		client: client,
		logger: logger,
	}, nil
}

// Close closes the Redis connection
func (s *StandingsService) Close() error {
	return s.client.Close()
}

// standingsKey returns the sorted-set key for a period window. Keys
// embed the period start so a new window naturally starts empty.
func standingsKey(period domain.Period, now time.Time) string {
	start, bounded := period.Start(now)
	if !bounded {
		return "arena:standings:all"
	}
	return fmt.Sprintf("arena:standings:%s:%s", period, start.Format("2006-01-02"))
}

// playerInfoKey returns the key for the cached player identity
func playerInfoKey(playerID int64) string {
	return fmt.Sprintf("arena:player:%d:info", playerID)
}

var allPeriods = []domain.Period{
	domain.PeriodAll, domain.PeriodDay, domain.PeriodWeek, domain.PeriodMonth,
}

// RecordScore adds a completed game's score to every period window for
// the player and refreshes the cached identity.
func (s *StandingsService) RecordScore(ctx context.Context, player domain.PlayerInfo, delta int64, now time.Time) error {
	pipe := s.client.TxPipeline()
	for _, period := range allPeriods {
		pipe.ZIncrBy(ctx, standingsKey(period, now), float64(delta), strconv.FormatInt(player.ID, 10))
	}
	info, err := json.Marshal(player)
	if err != nil {
		return fmt.Errorf("marshaling player info: %w", err)
	}
	pipe.Set(ctx, playerInfoKey(player.ID), info, 48*time.Hour)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("recording score in standings: %w", err)
	}
	return nil
}

// TopN returns the highest-scored entries for a period window, enriched
// with cached usernames where available.
func (s *StandingsService) TopN(ctx context.Context, period domain.Period, n int, now time.Time) ([]domain.RealtimeEntry, error) {
	key := standingsKey(period, now)
	results, err := s.client.ZRevRangeWithScores(ctx, key, 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("getting top standings: %w", err)
	}

	entries := make([]domain.RealtimeEntry, 0, len(results))
	for i, z := range results {
		playerID, err := strconv.ParseInt(z.Member.(string), 10, 64)
		if err != nil {
			continue
		}
		entries = append(entries, domain.RealtimeEntry{
			Rank:     int64(i + 1),
			PlayerID: playerID,
			Score:    int64(z.Score),
		})
	}

	if err := s.fillUsernames(ctx, entries); err != nil {
		s.logger.Warn("failed to enrich standings with usernames", "error", err)
	}
	return entries, nil
}

// PlayerRank returns a player's rank and score in a period window.
func (s *StandingsService) PlayerRank(ctx context.Context, period domain.Period, playerID int64, now time.Time) (*domain.RealtimeEntry, error) {
	key := standingsKey(period, now)
	member := strconv.FormatInt(playerID, 10)

	rank, err := s.client.ZRevRank(ctx, key, member).Result()
	if err == redis.Nil {
		return nil, domain.ErrPlayerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting player rank: %w", err)
	}

	score, err := s.client.ZScore(ctx, key, member).Result()
	if err != nil {
		return nil, fmt.Errorf("getting player score: %w", err)
	}

	return &domain.RealtimeEntry{
		Rank:     rank + 1,
		PlayerID: playerID,
		Score:    int64(score),
	}, nil
}

// RebuildPeriod atomically replaces a period window with totals computed
// from the ledger. The new set is staged under a temporary key and
// renamed over the live one.
func (s *StandingsService) RebuildPeriod(ctx context.Context, period domain.Period, totals []domain.PlayerTotal, now time.Time) error {
	key := standingsKey(period, now)
	staging := key + ":staging"

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, staging)
	for _, t := range totals {
		pipe.ZAdd(ctx, staging, redis.Z{
			Score:  float64(t.TotalScore),
			Member: strconv.FormatInt(t.PlayerID, 10),
		})
		info, err := json.Marshal(domain.PlayerInfo{ID: t.PlayerID, Username: t.Username})
		if err != nil {
			continue
		}
		pipe.Set(ctx, playerInfoKey(t.PlayerID), info, 48*time.Hour)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("staging standings rebuild: %w", err)
	}

	if len(totals) == 0 {
		if err := s.client.Del(ctx, key).Err(); err != nil {
			return fmt.Errorf("clearing standings: %w", err)
		}
		return nil
	}
	if err := s.client.Rename(ctx, staging, key).Err(); err != nil {
		return fmt.Errorf("swapping standings: %w", err)
	}
	return nil
}

// fillUsernames resolves cached identities for the given entries in one
// round trip. Entries without a cached identity are left as-is.
func (s *StandingsService) fillUsernames(ctx context.Context, entries []domain.RealtimeEntry) error {
	if len(entries) == 0 {
		return nil
	}
	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = playerInfoKey(e.PlayerID)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return err
	}
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var info domain.PlayerInfo
		if err := json.Unmarshal([]byte(raw), &info); err != nil {
			continue
		}
		entries[i].Username = info.Username
	}
	return nil
}
