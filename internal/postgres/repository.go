package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sudoku-arena/internal/config"
)

// Repository provides PostgreSQL-based data access
type Repository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(cfg *config.PostgresConfig, logger *slog.Logger) (*Repository, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConnections)
	poolConfig.MinConns = int32(cfg.MinConnections)
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	// Test connection
	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	return &Repository{
		pool:   pool,
		logger: logger,
	}, nil
}

// Close closes the database connection pool
func (r *Repository) Close() {
	r.pool.Close()
}

// Pool returns the underlying connection pool
func (r *Repository) Pool() *pgxpool.Pool {
	return r.pool
}

// RunMigrations executes database migrations
func (r *Repository) RunMigrations(ctx context.Context) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS players (
			id BIGSERIAL PRIMARY KEY,
			username VARCHAR(64) NOT NULL UNIQUE,
			email VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(100) NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS daily_scores (
			player_id BIGINT NOT NULL REFERENCES players(id) ON DELETE CASCADE,
			play_date DATE NOT NULL,
			best_time_easy INT NOT NULL DEFAULT 0,
			best_time_medium INT NOT NULL DEFAULT 0,
			best_time_hard INT NOT NULL DEFAULT 0,
			best_time_easy_nm INT NOT NULL DEFAULT 0,
			best_time_medium_nm INT NOT NULL DEFAULT 0,
			best_time_hard_nm INT NOT NULL DEFAULT 0,
			games_easy INT NOT NULL DEFAULT 0,
			games_medium INT NOT NULL DEFAULT 0,
			games_hard INT NOT NULL DEFAULT 0,
			games_easy_nm INT NOT NULL DEFAULT 0,
			games_medium_nm INT NOT NULL DEFAULT 0,
			games_hard_nm INT NOT NULL DEFAULT 0,
			daily_score BIGINT NOT NULL DEFAULT 0,
			PRIMARY KEY (player_id, play_date)
		)`,
		`CREATE TABLE IF NOT EXISTS groups (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(128) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			password_hash VARCHAR(100),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS group_members (
			group_id BIGINT NOT NULL REFERENCES groups(id) ON DELETE CASCADE,
			player_id BIGINT NOT NULL REFERENCES players(id) ON DELETE CASCADE,
			role VARCHAR(10) NOT NULL DEFAULT 'member',
			wins INT NOT NULL DEFAULT 0,
			losses INT NOT NULL DEFAULT 0,
			draws INT NOT NULL DEFAULT 0,
			joined_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (group_id, player_id)
		)`,
		`CREATE TABLE IF NOT EXISTS challenges (
			id BIGSERIAL PRIMARY KEY,
			challenger_id BIGINT NOT NULL REFERENCES players(id) ON DELETE CASCADE,
			challenged_id BIGINT NOT NULL REFERENCES players(id) ON DELETE CASCADE,
			group_id BIGINT NOT NULL REFERENCES groups(id) ON DELETE CASCADE,
			difficulty VARCHAR(10) NOT NULL,
			puzzle_data JSONB NOT NULL,
			status VARCHAR(20) NOT NULL,
			challenger_time INT NOT NULL DEFAULT 0,
			challenger_score INT NOT NULL DEFAULT 0,
			challenger_mistakes INT NOT NULL DEFAULT 0,
			challenged_time INT NOT NULL DEFAULT 0,
			challenged_score INT NOT NULL DEFAULT 0,
			challenged_mistakes INT NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS matches (
			id BIGSERIAL PRIMARY KEY,
			challenger_id BIGINT NOT NULL REFERENCES players(id) ON DELETE CASCADE,
			challenged_id BIGINT NOT NULL REFERENCES players(id) ON DELETE CASCADE,
			group_id BIGINT NOT NULL REFERENCES groups(id) ON DELETE CASCADE,
			difficulty VARCHAR(10) NOT NULL,
			puzzle_data JSONB NOT NULL,
			status VARCHAR(20) NOT NULL,
			challenger_started_at TIMESTAMP,
			challenger_completed_at TIMESTAMP,
			challenger_time INT NOT NULL DEFAULT 0,
			challenger_score INT NOT NULL DEFAULT 0,
			challenger_mistakes INT NOT NULL DEFAULT 0,
			challenged_started_at TIMESTAMP,
			challenged_completed_at TIMESTAMP,
			challenged_time INT NOT NULL DEFAULT 0,
			challenged_score INT NOT NULL DEFAULT 0,
			challenged_mistakes INT NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS medals (
			player_id BIGINT NOT NULL REFERENCES players(id) ON DELETE CASCADE,
			medal_type VARCHAR(32) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			number_of_medals INT NOT NULL DEFAULT 0,
			PRIMARY KEY (player_id, medal_type)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_daily_scores_date ON daily_scores(play_date)`,
		`CREATE INDEX IF NOT EXISTS idx_group_members_player ON group_members(player_id)`,
		`CREATE INDEX IF NOT EXISTS idx_challenges_challenged ON challenges(challenged_id, status)`,
		`CREATE INDEX IF NOT EXISTS idx_challenges_challenger ON challenges(challenger_id, status)`,
		`CREATE INDEX IF NOT EXISTS idx_matches_participants ON matches(challenger_id, challenged_id)`,
	}

	for _, migration := range migrations {
		_, err := r.pool.Exec(ctx, migration)
		if err != nil {
			return fmt.Errorf("executing migration: %w", err)
		}
	}

	r.logger.Info("database migrations completed")
	return nil
}
