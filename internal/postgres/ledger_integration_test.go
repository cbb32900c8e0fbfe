//go:build integration

package postgres

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sudoku-arena/internal/domain"
)

// newTestRepository connects to the database named by TEST_DATABASE_URL
// and runs the migrations. Tests that need a live database are skipped
// when the variable is unset.
func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connecting to test database: %v", err)
	}
	t.Cleanup(pool.Close)

	repo := &Repository{
		pool:   pool,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	if err := repo.RunMigrations(ctx); err != nil {
		t.Fatalf("running migrations: %v", err)
	}
	return repo
}

// createTestPlayer inserts a uniquely named player and removes it, and
// its daily records via cascade, when the test finishes.
func createTestPlayer(t *testing.T, repo *Repository, name string) *domain.Player {
	t.Helper()
	suffix := time.Now().UnixNano()
	player, err := repo.CreatePlayer(context.Background(), domain.Player{
		Username:     fmt.Sprintf("%s-%d", name, suffix),
		Email:        fmt.Sprintf("%s-%d@test.local", name, suffix),
		PasswordHash: "unused",
	})
	if err != nil {
		t.Fatalf("creating test player: %v", err)
	}
	t.Cleanup(func() {
		_, _ = repo.pool.Exec(context.Background(), `DELETE FROM players WHERE id = $1`, player.ID)
	})
	return player
}

func TestRecordCompletedGameMergesSameDay(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	player := createTestPlayer(t, repo, "merge")

	first := domain.GameSubmission{Difficulty: domain.DifficultyMedium, TimeSeconds: 500, Mistakes: 0}
	second := domain.GameSubmission{Difficulty: domain.DifficultyMedium, TimeSeconds: 420, Mistakes: 0}
	firstScore := domain.Score(first.Difficulty, first.TimeSeconds, first.Mistakes)
	secondScore := domain.Score(second.Difficulty, second.TimeSeconds, second.Mistakes)

	if err := repo.RecordCompletedGame(ctx, player.ID, first, firstScore); err != nil {
		t.Fatalf("recording first game: %v", err)
	}
	if err := repo.RecordCompletedGame(ctx, player.ID, second, secondScore); err != nil {
		t.Fatalf("recording second game: %v", err)
	}

	ds, err := repo.GetDailyScore(ctx, player.ID)
	if err != nil {
		t.Fatalf("getting daily score: %v", err)
	}
	if ds.GamesMedium != 2 {
		t.Errorf("games_medium = %d, want 2", ds.GamesMedium)
	}
	if ds.GamesMediumNoMistakes != 2 {
		t.Errorf("games_medium_nm = %d, want 2", ds.GamesMediumNoMistakes)
	}
	if ds.BestTimeMedium != 420 {
		t.Errorf("best_time_medium = %d, want 420", ds.BestTimeMedium)
	}
	if ds.BestTimeMediumNoMistakes != 420 {
		t.Errorf("best_time_medium_nm = %d, want 420", ds.BestTimeMediumNoMistakes)
	}
	if want := int64(firstScore + secondScore); ds.DailyScore != want {
		t.Errorf("daily_score = %d, want %d", ds.DailyScore, want)
	}
}

func TestRecordCompletedGameMistakesKeepCleanSlot(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	player := createTestPlayer(t, repo, "cleanslot")

	clean := domain.GameSubmission{Difficulty: domain.DifficultyMedium, TimeSeconds: 500, Mistakes: 0}
	faster := domain.GameSubmission{Difficulty: domain.DifficultyMedium, TimeSeconds: 300, Mistakes: 2}

	if err := repo.RecordCompletedGame(ctx, player.ID, clean, domain.Score(clean.Difficulty, clean.TimeSeconds, clean.Mistakes)); err != nil {
		t.Fatalf("recording clean game: %v", err)
	}
	if err := repo.RecordCompletedGame(ctx, player.ID, faster, domain.Score(faster.Difficulty, faster.TimeSeconds, faster.Mistakes)); err != nil {
		t.Fatalf("recording mistaken game: %v", err)
	}

	ds, err := repo.GetDailyScore(ctx, player.ID)
	if err != nil {
		t.Fatalf("getting daily score: %v", err)
	}
	// A faster but mistaken game improves the overall best time and
	// leaves the no-mistake slot alone.
	if ds.BestTimeMedium != 300 {
		t.Errorf("best_time_medium = %d, want 300", ds.BestTimeMedium)
	}
	if ds.BestTimeMediumNoMistakes != 500 {
		t.Errorf("best_time_medium_nm = %d, want 500", ds.BestTimeMediumNoMistakes)
	}
	if ds.GamesMedium != 2 {
		t.Errorf("games_medium = %d, want 2", ds.GamesMedium)
	}
	if ds.GamesMediumNoMistakes != 1 {
		t.Errorf("games_medium_nm = %d, want 1", ds.GamesMediumNoMistakes)
	}
}

func TestTopPlayersDayWindowExcludesOlderRecords(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	today := createTestPlayer(t, repo, "today")
	yesterday := createTestPlayer(t, repo, "yesterday")

	game := domain.GameSubmission{Difficulty: domain.DifficultyEasy, TimeSeconds: 400, Mistakes: 0}
	if err := repo.RecordCompletedGame(ctx, today.ID, game, domain.Score(game.Difficulty, game.TimeSeconds, game.Mistakes)); err != nil {
		t.Fatalf("recording today's game: %v", err)
	}
	_, err := repo.pool.Exec(ctx, `
		INSERT INTO daily_scores (player_id, play_date, best_time_easy, games_easy, daily_score)
		VALUES ($1, CURRENT_DATE - 1, 400, 1, 500)
	`, yesterday.ID)
	if err != nil {
		t.Fatalf("inserting yesterday's record: %v", err)
	}

	since, _ := domain.PeriodDay.Start(time.Now())
	ranked, err := repo.TopPlayers(ctx, nil, &since, 1000)
	if err != nil {
		t.Fatalf("querying day leaderboard: %v", err)
	}
	if !containsPlayer(ranked, today.ID) {
		t.Error("today's player missing from day window")
	}
	if containsPlayer(ranked, yesterday.ID) {
		t.Error("yesterday's record counted inside the day window")
	}

	allTime, err := repo.TopPlayers(ctx, nil, nil, 1000)
	if err != nil {
		t.Fatalf("querying all-time leaderboard: %v", err)
	}
	if !containsPlayer(allTime, yesterday.ID) {
		t.Error("yesterday's record missing from the unbounded leaderboard")
	}
}

func containsPlayer(rows []domain.LeaderboardRow, playerID int64) bool {
	for _, row := range rows {
		if row.PlayerID == playerID {
			return true
		}
	}
	return false
}
