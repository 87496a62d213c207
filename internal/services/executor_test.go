package services

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/kyohashi/idpos-visualizer/internal/models"
	"github.com/kyohashi/idpos-visualizer/internal/query"
	"github.com/kyohashi/idpos-visualizer/internal/warehouse"
	"github.com/kyohashi/idpos-visualizer/pkg/helpers"
	"github.com/kyohashi/idpos-visualizer/pkg/logger"
)

// --- Fakes ---

type fakeWarehouseSession struct {
	kpi             models.KPISummary
	kpiErr          error
	trend           []models.TrendPoint
	trendErr        error
	categories      []models.CategorySales
	categoriesErr   error
	demographics    []models.DemographicCell
	demographicsErr error
	departments     []string
	departmentsErr  error

	queried  []string
	released bool
}

func (f *fakeWarehouseSession) QueryKPI(_ context.Context, d query.Descriptor) (models.KPISummary, error) {
	f.queried = append(f.queried, d.Name)
	return f.kpi, f.kpiErr
}

func (f *fakeWarehouseSession) QueryTrend(_ context.Context, d query.Descriptor) ([]models.TrendPoint, error) {
	f.queried = append(f.queried, d.Name)
	return f.trend, f.trendErr
}

func (f *fakeWarehouseSession) QueryCategories(_ context.Context, d query.Descriptor) ([]models.CategorySales, error) {
	f.queried = append(f.queried, d.Name)
	return f.categories, f.categoriesErr
}

func (f *fakeWarehouseSession) QueryDemographics(_ context.Context, d query.Descriptor) ([]models.DemographicCell, error) {
	f.queried = append(f.queried, d.Name)
	return f.demographics, f.demographicsErr
}

func (f *fakeWarehouseSession) ListDepartments(_ context.Context) ([]string, error) {
	return f.departments, f.departmentsErr
}

func (f *fakeWarehouseSession) Release() { f.released = true }

type fakeWarehousePool struct {
	sess       *fakeWarehouseSession
	acquireErr error
	acquires   int
}

func (f *fakeWarehousePool) Acquire(_ context.Context) (warehouse.Session, error) {
	f.acquires++
	if f.acquireErr != nil {
		return nil, f.acquireErr
	}
	return f.sess, nil
}

func testLog() *slog.Logger {
	return slog.New(logger.NewTestHandler(slog.LevelInfo))
}

func testPredicate() query.Predicate {
	return query.BuildPredicate(models.FilterState{
		DateRange: models.DateRange{
			Start: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2021, 12, 31, 0, 0, 0, 0, time.UTC),
		},
	})
}

func populatedSession() *fakeWarehouseSession {
	return &fakeWarehouseSession{
		kpi: models.KPISummary{TotalSales: 1234.5, Baskets: 42, Households: 17},
		trend: []models.TrendPoint{
			{WeekStart: time.Date(2021, 1, 4, 0, 0, 0, 0, time.UTC), Sales: 100},
		},
		categories: []models.CategorySales{
			{Category: "SOFT DRINKS", Sales: 300},
		},
		demographics: []models.DemographicCell{
			{AgeBracket: "25-34", IncomeBracket: "50-74K", Sales: 80},
		},
	}
}

// --- Tests ---

func TestExecutorRunAssemblesBundle(t *testing.T) {
	sess := populatedSession()
	pool := &fakeWarehousePool{sess: sess}
	svc := NewExecutorService(testLog(), pool)

	bundle, degraded, err := svc.Run(helpers.TestCtx(), testPredicate())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if degraded {
		t.Fatal("expected non-degraded cycle")
	}
	if bundle.KPI != sess.kpi {
		t.Errorf("KPI = %+v, want %+v", bundle.KPI, sess.kpi)
	}
	if len(bundle.Trend) != 1 || len(bundle.Categories) != 1 || len(bundle.Demographics) != 1 {
		t.Errorf("unexpected bundle shape: %+v", bundle)
	}
	if !sess.released {
		t.Error("session was not released")
	}

	want := []string{query.QueryKPI, query.QueryTrend, query.QueryCategories, query.QueryDemographics}
	if len(sess.queried) != len(want) {
		t.Fatalf("queried = %v, want %v", sess.queried, want)
	}
	for i := range want {
		if sess.queried[i] != want[i] {
			t.Errorf("queried[%d] = %q, want %q", i, sess.queried[i], want[i])
		}
	}
}

func TestExecutorRunPublishesEmptySlicesForZeroRows(t *testing.T) {
	sess := &fakeWarehouseSession{}
	pool := &fakeWarehousePool{sess: sess}
	svc := NewExecutorService(testLog(), pool)

	bundle, degraded, err := svc.Run(helpers.TestCtx(), testPredicate())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if degraded {
		t.Fatal("zero rows is a valid result, not a degraded cycle")
	}
	if bundle.Trend == nil || len(bundle.Trend) != 0 {
		t.Errorf("Trend = %#v, want empty slice", bundle.Trend)
	}
	if bundle.Categories == nil || len(bundle.Categories) != 0 {
		t.Errorf("Categories = %#v, want empty slice", bundle.Categories)
	}
	if bundle.Demographics == nil || len(bundle.Demographics) != 0 {
		t.Errorf("Demographics = %#v, want empty slice", bundle.Demographics)
	}
}

func TestExecutorRunIsolatesDemographicFailure(t *testing.T) {
	sess := populatedSession()
	sess.demographicsErr = errors.New("join exploded")
	pool := &fakeWarehousePool{sess: sess}
	svc := NewExecutorService(testLog(), pool)

	bundle, degraded, err := svc.Run(helpers.TestCtx(), testPredicate())
	if err != nil {
		t.Fatalf("demographic failure must not fail the cycle, got: %v", err)
	}
	if !degraded {
		t.Fatal("expected degraded cycle")
	}
	if bundle.Demographics == nil || len(bundle.Demographics) != 0 {
		t.Errorf("Demographics = %v, want empty slice", bundle.Demographics)
	}
	if bundle.KPI != sess.kpi || len(bundle.Trend) != 1 || len(bundle.Categories) != 1 {
		t.Errorf("primary results missing from degraded bundle: %+v", bundle)
	}
	if !sess.released {
		t.Error("session was not released")
	}
}

func TestExecutorRunFailsOnPrimaryQueryError(t *testing.T) {
	cases := []struct {
		name  string
		setup func(*fakeWarehouseSession)
	}{
		{"kpi", func(s *fakeWarehouseSession) { s.kpiErr = errors.New("boom") }},
		{"trend", func(s *fakeWarehouseSession) { s.trendErr = errors.New("boom") }},
		{"categories", func(s *fakeWarehouseSession) { s.categoriesErr = errors.New("boom") }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sess := populatedSession()
			tc.setup(sess)
			pool := &fakeWarehousePool{sess: sess}
			svc := NewExecutorService(testLog(), pool)

			bundle, _, err := svc.Run(helpers.TestCtx(), testPredicate())
			if err == nil {
				t.Fatal("expected cycle failure")
			}
			if bundle != nil {
				t.Errorf("failed cycle must not yield a bundle, got %+v", bundle)
			}
			if !sess.released {
				t.Error("session was not released on failure path")
			}
		})
	}
}

func TestExecutorRunAcquireFailure(t *testing.T) {
	acquireErr := errors.New("pool exhausted")
	pool := &fakeWarehousePool{acquireErr: acquireErr}
	svc := NewExecutorService(testLog(), pool)

	_, _, err := svc.Run(helpers.TestCtx(), testPredicate())
	if !errors.Is(err, acquireErr) {
		t.Fatalf("err = %v, want %v", err, acquireErr)
	}
}
