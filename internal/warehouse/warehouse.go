package warehouse

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kyohashi/idpos-visualizer/internal/errs"
	"github.com/kyohashi/idpos-visualizer/internal/models"
	"github.com/kyohashi/idpos-visualizer/internal/query"
)

// Session is one logical connection to the analytical store. Every query
// of a single orchestration cycle runs on the same Session so the cycle
// sees one best-effort-consistent snapshot. Release must be called on
// every exit path.
type Session interface {
	QueryKPI(ctx context.Context, d query.Descriptor) (models.KPISummary, error)
	QueryTrend(ctx context.Context, d query.Descriptor) ([]models.TrendPoint, error)
	QueryCategories(ctx context.Context, d query.Descriptor) ([]models.CategorySales, error)
	QueryDemographics(ctx context.Context, d query.Descriptor) ([]models.DemographicCell, error)
	ListDepartments(ctx context.Context) ([]string, error)
	Release()
}

// Warehouse wraps the pgx pool for the analytical store.
type Warehouse struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Warehouse {
	return &Warehouse{pool: pool}
}

// Acquire checks one connection out of the pool for the duration of a
// cycle or metadata load.
func (w *Warehouse) Acquire(ctx context.Context) (Session, error) {
	conn, err := w.pool.Acquire(ctx)
	if err != nil {
		return nil, errs.NewConnectivityError("failed to acquire warehouse connection", isTransient(err), err)
	}
	return &session{conn: conn}, nil
}

func (w *Warehouse) Ping(ctx context.Context) error {
	if err := w.pool.Ping(ctx); err != nil {
		return errs.NewConnectivityError("warehouse unreachable", isTransient(err), err)
	}
	return nil
}

// isTransient reports whether the failure is worth a user-initiated
// retry: timeouts and refused/broken connections rather than bad
// credentials or malformed DSNs.
func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// class 28: invalid authorization, not worth retrying
		return len(pgErr.Code) < 2 || pgErr.Code[:2] != "28"
	}
	return true
}

type session struct {
	conn *pgxpool.Conn
}

func (s *session) Release() {
	s.conn.Release()
}

func (s *session) QueryKPI(ctx context.Context, d query.Descriptor) (models.KPISummary, error) {
	var kpi models.KPISummary
	row := s.conn.QueryRow(ctx, d.SQL, d.Args...)
	if err := row.Scan(&kpi.TotalSales, &kpi.Baskets, &kpi.Households); err != nil {
		return models.KPISummary{}, errs.NewWarehouseError(d.Name, "failed to scan kpi aggregate", err)
	}
	return kpi, nil
}

func (s *session) QueryTrend(ctx context.Context, d query.Descriptor) ([]models.TrendPoint, error) {
	rows, err := s.conn.Query(ctx, d.SQL, d.Args...)
	if err != nil {
		return nil, errs.NewWarehouseError(d.Name, "trend query failed", err)
	}
	defer rows.Close()

	var points []models.TrendPoint
	for rows.Next() {
		var p models.TrendPoint
		if err := rows.Scan(&p.WeekStart, &p.Sales); err != nil {
			return nil, errs.NewWarehouseError(d.Name, "failed to scan trend row", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.NewWarehouseError(d.Name, "trend query failed", err)
	}
	return points, nil
}

func (s *session) QueryCategories(ctx context.Context, d query.Descriptor) ([]models.CategorySales, error) {
	rows, err := s.conn.Query(ctx, d.SQL, d.Args...)
	if err != nil {
		return nil, errs.NewWarehouseError(d.Name, "category query failed", err)
	}
	defer rows.Close()

	var cats []models.CategorySales
	for rows.Next() {
		var c models.CategorySales
		if err := rows.Scan(&c.Category, &c.Sales); err != nil {
			return nil, errs.NewWarehouseError(d.Name, "failed to scan category row", err)
		}
		cats = append(cats, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.NewWarehouseError(d.Name, "category query failed", err)
	}
	return cats, nil
}

func (s *session) QueryDemographics(ctx context.Context, d query.Descriptor) ([]models.DemographicCell, error) {
	rows, err := s.conn.Query(ctx, d.SQL, d.Args...)
	if err != nil {
		return nil, errs.NewWarehouseError(d.Name, "demographic query failed", err)
	}
	defer rows.Close()

	var cells []models.DemographicCell
	for rows.Next() {
		var c models.DemographicCell
		if err := rows.Scan(&c.AgeBracket, &c.IncomeBracket, &c.Sales); err != nil {
			return nil, errs.NewWarehouseError(d.Name, "failed to scan demographic row", err)
		}
		cells = append(cells, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.NewWarehouseError(d.Name, "demographic query failed", err)
	}
	return cells, nil
}

// ListDepartments feeds the filter control's choice list. It never
// applies the session filter state.
func (s *session) ListDepartments(ctx context.Context) ([]string, error) {
	rows, err := s.conn.Query(ctx, `SELECT DISTINCT department FROM sales_fact ORDER BY department`)
	if err != nil {
		return nil, errs.NewWarehouseError("departments", "department list query failed", err)
	}
	defer rows.Close()

	var departments []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, errs.NewWarehouseError("departments", "failed to scan department row", err)
		}
		departments = append(departments, d)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.NewWarehouseError("departments", "department list query failed", err)
	}
	return departments, nil
}
