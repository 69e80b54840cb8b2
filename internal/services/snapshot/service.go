// Package snapshot owns the memoized analytics snapshot: one build of
// the full pipeline (aggregate, derive metrics, classify) shared
// read-only between presentation consumers until explicitly reloaded.
package snapshot

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ternarybob/arbor"

	"github.com/vistara-ai/vistara/internal/models"
	"github.com/vistara-ai/vistara/internal/services/analytics"
	"github.com/vistara-ai/vistara/internal/services/ingest"
)

// Service builds and caches the annotated table. The outlier model fit
// is part of snapshot construction, so repeated reads never refit.
type Service struct {
	aggregator *ingest.Aggregator
	classifier *analytics.Classifier
	logger     arbor.ILogger

	mu      sync.RWMutex
	current *models.Snapshot
}

// NewService creates a snapshot service over the pipeline stages.
func NewService(aggregator *ingest.Aggregator, classifier *analytics.Classifier, logger arbor.ILogger) *Service {
	return &Service{
		aggregator: aggregator,
		classifier: classifier,
		logger:     logger,
	}
}

// Load returns the current snapshot, building it on first use.
func (s *Service) Load() (*models.Snapshot, error) {
	s.mu.RLock()
	if s.current != nil {
		snap := s.current
		s.mu.RUnlock()
		return snap, nil
	}
	s.mu.RUnlock()

	return s.Reload()
}

// Current returns the cached snapshot without building, or nil when no
// build has happened yet.
func (s *Service) Current() *models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Reload discards the cached snapshot and rebuilds it from the source
// datasets. This is the only invalidation trigger.
func (s *Service) Reload() (*models.Snapshot, error) {
	start := time.Now()

	rows, err := s.aggregator.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load datasets: %w", err)
	}

	rows = analytics.ComputeMetrics(rows)
	s.classifier.Classify(rows)

	snap := &models.Snapshot{
		ID:       uuid.NewString(),
		LoadedAt: time.Now().UTC(),
		Rows:     rows,
	}

	s.mu.Lock()
	s.current = snap
	s.mu.Unlock()

	if snap.Empty() {
		s.logger.Warn().
			Str("snapshot_id", snap.ID).
			Msg("Snapshot built with zero rows - all categories were empty")
	} else {
		s.logger.Info().
			Str("snapshot_id", snap.ID).
			Int("rows", len(rows)).
			Dur("elapsed", time.Since(start)).
			Msg("Snapshot built")
	}

	return snap, nil
}
