package query

import (
	"github.com/doug-martin/goqu/v9"

	"github.com/kyohashi/idpos-visualizer/internal/errs"
)

// Query names, used for logging and error attribution.
const (
	QueryKPI          = "kpi"
	QueryTrend        = "trend"
	QueryCategories   = "categories"
	QueryDemographics = "demographics"
)

// CategoryLimit caps the category ranking.
const CategoryLimit = 10

// Descriptor is one fully parameterized query: SQL with bound-parameter
// placeholders plus the argument list. User input is never interpolated
// into the SQL text.
type Descriptor struct {
	Name string
	SQL  string
	Args []interface{}
}

// Catalog holds the four dashboard queries of one orchestration cycle,
// all instantiated from the same Predicate.
type Catalog struct {
	KPI          Descriptor
	Trend        Descriptor
	Categories   Descriptor
	Demographics Descriptor
}

// BuildCatalog instantiates the full query family from one shared
// predicate. Deterministic: the same predicate always renders the same
// descriptors.
func BuildCatalog(p Predicate) (Catalog, error) {
	var cat Catalog
	var err error

	if cat.KPI, err = buildKPI(p); err != nil {
		return cat, err
	}
	if cat.Trend, err = buildTrend(p); err != nil {
		return cat, err
	}
	if cat.Categories, err = buildCategories(p); err != nil {
		return cat, err
	}
	if cat.Demographics, err = buildDemographics(p); err != nil {
		return cat, err
	}
	return cat, nil
}

// All returns the descriptors in execution order, primary queries first.
func (c Catalog) All() []Descriptor {
	return []Descriptor{c.KPI, c.Trend, c.Categories, c.Demographics}
}

// buildKPI renders the single-row headline aggregate. COALESCE pins the
// zero-row case to 0 rather than NULL, so the bundle always carries
// displayable numbers.
func buildKPI(p Predicate) (Descriptor, error) {
	ds := pg.From(factTable).
		Prepared(true).
		Select(
			goqu.L("COALESCE(SUM(sales_fact.sales_value), 0)").As("total_sales"),
			goqu.COUNT(goqu.DISTINCT(fact_basketId)).As("baskets"),
			goqu.COUNT(goqu.DISTINCT(fact_householdId)).As("households"),
		).
		Where(p.Expressions()...)
	return toDescriptor(QueryKPI, ds)
}

// buildTrend renders weekly sales buckets. DATE_TRUNC('week', ...) starts
// buckets on the ISO week's Monday.
func buildTrend(p Predicate) (Descriptor, error) {
	ds := pg.From(factTable).
		Prepared(true).
		Select(
			goqu.L("DATE_TRUNC('week', sales_fact.txn_date)::date").As("week_start"),
			goqu.SUM(fact_salesValue).As("sales"),
		).
		Where(p.Expressions()...).
		GroupBy(goqu.L("week_start")).
		Order(goqu.L("week_start").Asc())
	return toDescriptor(QueryTrend, ds)
}

// buildCategories renders the top-N category ranking. Ties on summed
// sales break by category name ascending so the ranking is stable.
func buildCategories(p Predicate) (Descriptor, error) {
	ds := pg.From(factTable).
		Prepared(true).
		Select(
			fact_commodity.As("category"),
			goqu.SUM(fact_salesValue).As("sales"),
		).
		Where(p.Expressions()...).
		GroupBy(fact_commodity).
		Order(goqu.L("sales").Desc(), fact_commodity.Asc()).
		Limit(CategoryLimit)
	return toDescriptor(QueryCategories, ds)
}

// buildDemographics renders the age × income sales grid. This is the one
// cross-source join in the family and the executor treats its failure as
// non-fatal.
func buildDemographics(p Predicate) (Descriptor, error) {
	ds := pg.From(factTable).
		Prepared(true).
		Join(demoTable, goqu.On(fact_householdId.Eq(demo_householdId))).
		Select(
			demo_ageBracket.As("age_bracket"),
			demo_incomeBracket.As("income_bracket"),
			goqu.SUM(fact_salesValue).As("sales"),
		).
		Where(p.Expressions()...).
		GroupBy(demo_ageBracket, demo_incomeBracket).
		Order(demo_ageBracket.Asc(), demo_incomeBracket.Asc())
	return toDescriptor(QueryDemographics, ds)
}

func toDescriptor(name string, ds *goqu.SelectDataset) (Descriptor, error) {
	sql, args, err := ds.ToSQL()
	if err != nil {
		return Descriptor{}, errs.NewWarehouseError(name, "failed to render query", err)
	}
	return Descriptor{Name: name, SQL: sql, Args: args}, nil
}
