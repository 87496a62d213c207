package services

import (
	"context"
	"log/slog"

	"github.com/kyohashi/idpos-visualizer/internal/models"
	"github.com/kyohashi/idpos-visualizer/internal/query"
	"github.com/kyohashi/idpos-visualizer/internal/warehouse"
	"github.com/kyohashi/idpos-visualizer/pkg/logger"
)

// warehousePool is the store surface the executor needs: one session per
// cycle, checked out at cycle start and released on every exit path.
type warehousePool interface {
	Acquire(ctx context.Context) (warehouse.Session, error)
}

type executorService struct {
	log  *slog.Logger
	pool warehousePool
}

func NewExecutorService(log *slog.Logger, pool warehousePool) *executorService {
	return &executorService{log: log, pool: pool}
}

// Run executes one orchestration cycle under the given predicate and
// assembles the result bundle. KPI, trend and category failures are fatal
// to the cycle. The demographic join is executed last and in isolation:
// on failure the bundle ships with empty demographics and degraded=true,
// because the primary view is still meaningful without the grid.
func (s *executorService) Run(ctx context.Context, pred query.Predicate) (bundle *models.ResultBundle, degraded bool, err error) {
	cat, err := query.BuildCatalog(pred)
	if err != nil {
		return nil, false, err
	}

	sess, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, false, err
	}
	defer sess.Release()

	kpi, err := sess.QueryKPI(ctx, cat.KPI)
	if err != nil {
		return nil, false, err
	}
	trend, err := sess.QueryTrend(ctx, cat.Trend)
	if err != nil {
		return nil, false, err
	}
	categories, err := sess.QueryCategories(ctx, cat.Categories)
	if err != nil {
		return nil, false, err
	}

	// Zero-row results publish as empty slices, never null, matching
	// the degraded demographics state.
	if trend == nil {
		trend = []models.TrendPoint{}
	}
	if categories == nil {
		categories = []models.CategorySales{}
	}

	bundle = &models.ResultBundle{
		KPI:          kpi,
		Trend:        trend,
		Categories:   categories,
		Demographics: []models.DemographicCell{},
	}

	demographics, err := sess.QueryDemographics(ctx, cat.Demographics)
	if err != nil {
		logger.FromContext(ctx).Warn("demographic query failed, serving cycle without demographics", "error", err)
		return bundle, true, nil
	}
	if demographics != nil {
		bundle.Demographics = demographics
	}
	return bundle, false, nil
}
