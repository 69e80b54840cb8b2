// Package scheduler drives the optional cron-based snapshot refresh.
package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"

	"github.com/vistara-ai/vistara/internal/common"
	"github.com/vistara-ai/vistara/internal/services/snapshot"
)

// Service rebuilds the snapshot on a cron schedule. Refreshes never
// overlap: a rebuild still in flight causes the next tick to be
// skipped.
type Service struct {
	snapshots *snapshot.Service
	schedule  string
	enabled   bool
	cron      *cron.Cron
	logger    arbor.ILogger

	mu         sync.Mutex
	refreshing bool
	running    bool
	lastRun    *time.Time
	lastError  string
}

// NewService creates a scheduler from the refresh configuration.
func NewService(cfg *common.RefreshConfig, snapshots *snapshot.Service, logger arbor.ILogger) *Service {
	return &Service{
		snapshots: snapshots,
		schedule:  cfg.Schedule,
		enabled:   cfg.Enabled,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger,
	}
}

// Start registers the refresh job and starts the cron loop. A disabled
// scheduler starts as a no-op.
func (s *Service) Start() error {
	if !s.enabled {
		s.logger.Info().Msg("Scheduled refresh disabled")
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return fmt.Errorf("scheduler already running")
	}

	if _, err := s.cron.AddFunc(s.schedule, s.refresh); err != nil {
		return fmt.Errorf("failed to add refresh job: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info().
		Str("schedule", s.schedule).
		Msg("Scheduled refresh enabled")

	return nil
}

// Status is a point-in-time view of the refresh loop, reported by the
// status endpoint.
type Status struct {
	Enabled   bool       `json:"enabled"`
	Running   bool       `json:"running"`
	LastRun   *time.Time `json:"last_run,omitempty"`
	LastError string     `json:"last_error,omitempty"`
}

// Status reports the scheduler state and the outcome of the most
// recent refresh.
func (s *Service) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{
		Enabled:   s.enabled,
		Running:   s.running,
		LastRun:   s.lastRun,
		LastError: s.lastError,
	}
}

// Stop halts the cron loop. A running refresh finishes on its own.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.cron.Stop()
	s.running = false
	s.logger.Info().Msg("Scheduled refresh stopped")
}

func (s *Service) refresh() {
	s.mu.Lock()
	if s.refreshing {
		s.mu.Unlock()
		s.logger.Warn().Msg("Skipping scheduled refresh - previous refresh still running")
		return
	}
	s.refreshing = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.refreshing = false
		now := time.Now().UTC()
		s.lastRun = &now
		s.mu.Unlock()
	}()

	s.logger.Info().Msg("Scheduled snapshot refresh starting")

	if _, err := s.snapshots.Reload(); err != nil {
		s.mu.Lock()
		s.lastError = err.Error()
		s.mu.Unlock()
		s.logger.Error().Err(err).Msg("Scheduled snapshot refresh failed")
		return
	}

	s.mu.Lock()
	s.lastError = ""
	s.mu.Unlock()
}
