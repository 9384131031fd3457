package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/pingdesk/pingdesk/internal/console/store"
)

// HousekeepingService periodically prunes expired flows, parked
// registrations, and old debug log entries so the database does not grow
// without bound.
type HousekeepingService struct {
	Store        store.Store
	Logger       *slog.Logger
	Interval     time.Duration
	LogRetention time.Duration

	// Internal channels for lifecycle management
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a new housekeeping service with the given
// interval. If interval is 0 or negative, defaults to 1 hour; log retention
// defaults to 7 days.
func NewHousekeepingService(store store.Store, logger *slog.Logger, interval, logRetention time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}
	if logRetention <= 0 {
		logRetention = 7 * 24 * time.Hour
	}

	return &HousekeepingService{
		Store:        store,
		Logger:       logger,
		Interval:     interval,
		LogRetention: logRetention,
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
	}
}

// Start begins the background worker that periodically runs cleanup.
// Non-blocking; call Stop() to gracefully shut down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop gracefully shuts down the background worker. Blocks until any
// in-progress cleanup finishes.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run cleanup immediately on startup
	s.cleanup()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCh:
			return
		}
	}
}

// cleanup performs the actual deletions. Each deletion is independent;
// failures in one won't stop the others.
func (s *HousekeepingService) cleanup() {
	ctx := context.Background()
	s.Logger.Info("starting housekeeping cleanup")

	var successful int

	if err := s.Store.PendingRegistrations().DeleteExpiredPendingRegistrations(ctx); err != nil {
		s.Logger.Error("failed to delete expired pending registrations", "error", err)
	} else {
		s.Logger.Debug("deleted expired pending registrations")
		successful++
	}

	if err := s.Store.Flows().DeleteExpiredFlows(ctx); err != nil {
		s.Logger.Error("failed to delete expired flows", "error", err)
	} else {
		s.Logger.Debug("deleted expired flows")
		successful++
	}

	cutoff := time.Now().Add(-s.LogRetention)
	if err := s.Store.DebugLogs().DeleteLogsBefore(ctx, cutoff); err != nil {
		s.Logger.Error("failed to delete old debug logs", "error", err)
	} else {
		s.Logger.Debug("deleted old debug logs", "cutoff", cutoff)
		successful++
	}

	s.Logger.Info("housekeeping cleanup completed", "successful_cleanups", successful)
}
