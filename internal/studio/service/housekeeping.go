package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/trackroomhq/trackroom/internal/studio/store"
)

// HousekeepingService periodically removes expired login tokens and flips
// overdue pending invitations to the terminal expired status. Invitation rows
// are never deleted; the full history stays for audit.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a housekeeping worker. A non-positive
// interval defaults to 1 hour.
func NewHousekeepingService(st store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}
	return &HousekeepingService{
		Store:    st,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start launches the background worker. Non-blocking; call Stop to shut it
// down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping started", "interval", s.Interval)
}

// Stop shuts the worker down, blocking until any in-progress cleanup
// finishes.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run once at startup, then on the ticker.
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

// cleanup runs each sweep independently; one failing doesn't stop the others.
func (s *HousekeepingService) cleanup() {
	ctx := context.Background()
	now := time.Now().UTC()

	if err := s.Store.LoginTokens().DeleteExpiredLoginTokens(ctx, now); err != nil {
		s.Logger.Error("failed to delete expired login tokens", "error", err)
	}

	if err := s.Store.Invitations().MarkInvitationsExpired(ctx, now); err != nil {
		s.Logger.Error("failed to expire overdue invitations", "error", err)
	}
}
