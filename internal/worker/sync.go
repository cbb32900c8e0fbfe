package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/sudoku-arena/internal/config"
	"github.com/sudoku-arena/internal/domain"
	"github.com/sudoku-arena/internal/postgres"
	"github.com/sudoku-arena/internal/redis"
)

var syncPeriods = []domain.Period{
	domain.PeriodAll, domain.PeriodDay, domain.PeriodWeek, domain.PeriodMonth,
}

// SyncWorker periodically rebuilds the Redis standings mirror from the
// daily score ledger in PostgreSQL. The rebuild repairs drift and
// populates fresh period windows, so the mirror can always be recovered
// by replaying the ledger.
type SyncWorker struct {
	standings *redis.StandingsService
	postgres  *postgres.Repository
	config    *config.SyncConfig
	logger    *slog.Logger
	stopCh    chan struct{}
	doneCh    chan struct{}
	mu        sync.Mutex
	running   bool
}

// NewSyncWorker creates a new sync worker
func NewSyncWorker(
	standings *redis.StandingsService,
	pg *postgres.Repository,
	cfg *config.SyncConfig,
	logger *slog.Logger,
) *SyncWorker {
	return &SyncWorker{
		standings: standings,
		postgres:  pg,
		config:    cfg,
		logger:    logger,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start begins the background sync process
func (w *SyncWorker) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	w.logger.Info("sync worker started", "interval", w.config.Interval)

	go w.run(ctx)
	return nil
}

// Stop stops the background sync process
func (w *SyncWorker) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	w.mu.Lock()
	w.running = false
	w.mu.Unlock()

	w.logger.Info("sync worker stopped")
	return nil
}

// run is the main worker loop
func (w *SyncWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.syncAll(ctx)
		}
	}
}

// syncAll rebuilds every period window from the ledger
func (w *SyncWorker) syncAll(ctx context.Context) {
	w.logger.Info("starting standings sync cycle")
	startTime := time.Now()

	syncedCount := 0
	errorCount := 0

	for _, period := range syncPeriods {
		if err := w.SyncPeriod(ctx, period); err != nil {
			w.logger.Error("failed to sync standings period",
				"period", period,
				"error", err,
			)
			errorCount++
		} else {
			syncedCount++
		}
	}

	duration := time.Since(startTime)
	w.logger.Info("standings sync cycle completed",
		"duration", duration,
		"synced", syncedCount,
		"errors", errorCount,
	)
}

// SyncPeriod rebuilds a single period window from the ledger
func (w *SyncWorker) SyncPeriod(ctx context.Context, period domain.Period) error {
	w.logger.Debug("rebuilding standings period", "period", period)
	now := time.Now()

	var since *time.Time
	if start, bounded := period.Start(now); bounded {
		since = &start
	}

	totals, err := w.postgres.PeriodTotals(ctx, since)
	if err != nil {
		return err
	}

	if err := w.standings.RebuildPeriod(ctx, period, totals, now); err != nil {
		return err
	}

	w.logger.Debug("rebuilt standings period",
		"period", period,
		"player_count", len(totals),
	)
	return nil
}

// SyncAll rebuilds every period window. Called at startup so the mirror
// is populated before traffic arrives.
func (w *SyncWorker) SyncAll(ctx context.Context) error {
	w.logger.Info("rebuilding standings mirror from ledger")

	for _, period := range syncPeriods {
		if err := w.SyncPeriod(ctx, period); err != nil {
			w.logger.Error("failed to rebuild standings period",
				"period", period,
				"error", err,
			)
			// Continue with other periods
		}
	}

	w.logger.Info("completed standings mirror rebuild")
	return nil
}

// IsRunning returns whether the worker is currently running
func (w *SyncWorker) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// RunOnce runs a single sync cycle (useful for manual triggers)
func (w *SyncWorker) RunOnce(ctx context.Context) {
	w.syncAll(ctx)
}
