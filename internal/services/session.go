package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kyohashi/idpos-visualizer/internal/dto"
	"github.com/kyohashi/idpos-visualizer/internal/errs"
	"github.com/kyohashi/idpos-visualizer/internal/models"
	"github.com/kyohashi/idpos-visualizer/internal/query"
	"github.com/kyohashi/idpos-visualizer/pkg/logger"
)

// cycleExecutor runs one orchestration cycle against the warehouse.
type cycleExecutor interface {
	Run(ctx context.Context, pred query.Predicate) (*models.ResultBundle, bool, error)
}

// sessionService owns the dashboard's session state: the single current
// FilterState and the single published ResultBundle. Filter edits only
// mutate state; execution happens on explicit Refresh.
//
// Cycles are ordered by a sequence number assigned at trigger time. A
// cycle's result is published only if no later-triggered cycle has
// published already, so a slow early cycle can never overwrite a newer
// bundle. Stale results are dropped silently, not treated as errors.
type sessionService struct {
	log      *slog.Logger
	executor cycleExecutor

	mu        sync.Mutex
	filters   models.FilterState
	bundle    *models.ResultBundle
	triggered uint64
	published uint64
}

func NewSessionService(log *slog.Logger, executor cycleExecutor, defaults models.FilterState) *sessionService {
	if defaults.Departments == nil {
		defaults.Departments = []string{}
	}
	return &sessionService{log: log, executor: executor, filters: defaults}
}

// Filters returns a copy of the current filter state.
func (s *sessionService) Filters() models.FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyFilters(s.filters)
}

// SetFilters replaces the session's filter state. It validates the date
// range invariant but does not trigger execution.
func (s *sessionService) SetFilters(f models.FilterState) error {
	if f.DateRange.End.Before(f.DateRange.Start) {
		return errs.NewValidationError("dateRange start must not be after end")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = copyFilters(f)
	return nil
}

// Bundle returns the currently published result bundle, nil before the
// first successful refresh.
func (s *sessionService) Bundle() *models.ResultBundle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bundle
}

// Refresh triggers one orchestration cycle from the current filter state.
// On fatal failure the previously published bundle is left untouched. A
// result arriving after a later-triggered cycle has published is reported
// as stale and discarded.
func (s *sessionService) Refresh(ctx context.Context) (dto.RefreshResult, error) {
	s.mu.Lock()
	s.triggered++
	seq := s.triggered
	filters := copyFilters(s.filters)
	s.mu.Unlock()

	cycleID := uuid.New().String()
	log, ctx := logger.With(ctx, "cycle_id", cycleID)

	pred := query.BuildPredicate(filters)
	started := time.Now()
	bundle, degraded, err := s.executor.Run(ctx, pred)
	if err != nil {
		return dto.RefreshResult{CycleID: cycleID}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq <= s.published {
		log.Info("discarding stale cycle result", "cycle_seq", seq, "published_seq", s.published)
		return dto.RefreshResult{CycleID: cycleID, Degraded: degraded, Stale: true}, nil
	}
	s.published = seq
	s.bundle = bundle

	log.Info("published result bundle",
		"cycle_seq", seq,
		"degraded", degraded,
		"duration_ms", time.Since(started).Milliseconds())
	return dto.RefreshResult{CycleID: cycleID, Degraded: degraded, Bundle: bundle}, nil
}

func copyFilters(f models.FilterState) models.FilterState {
	out := f
	out.Departments = make([]string, len(f.Departments))
	copy(out.Departments, f.Departments)
	return out
}
