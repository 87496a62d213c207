package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyohashi/idpos-visualizer/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func filterState(start, end time.Time, departments ...string) models.FilterState {
	return models.FilterState{
		DateRange:   models.DateRange{Start: start, End: end},
		Departments: departments,
	}
}

func TestBuildPredicateDeterministic(t *testing.T) {
	f := filterState(date(2021, 1, 1), date(2021, 12, 31), "GROCERY", "DELI")

	a := BuildPredicate(f)
	b := BuildPredicate(f)

	catA, err := BuildCatalog(a)
	require.NoError(t, err)
	catB, err := BuildCatalog(b)
	require.NoError(t, err)

	assert.Equal(t, catA, catB)
}

func TestBuildPredicateCanonicalisesDepartments(t *testing.T) {
	a := BuildPredicate(filterState(date(2021, 1, 1), date(2021, 12, 31), "GROCERY", "DELI", "GROCERY"))
	b := BuildPredicate(filterState(date(2021, 1, 1), date(2021, 12, 31), "DELI", "GROCERY"))

	assert.Equal(t, a, b)
	assert.Equal(t, []string{"DELI", "GROCERY"}, a.Departments())
}

func TestBuildPredicateEmptyDepartmentsOmitsClause(t *testing.T) {
	p := BuildPredicate(filterState(date(2021, 1, 1), date(2021, 3, 31)))

	assert.Nil(t, p.Departments())

	cat, err := BuildCatalog(p)
	require.NoError(t, err)

	// No query in the family may filter on an empty membership list.
	for _, d := range cat.All() {
		where := whereClause(t, d.SQL)
		assert.NotContains(t, where, "department", "query %s", d.Name)
		assert.NotContains(t, where, "IN", "query %s", d.Name)
	}
}

func TestBuildPredicateDateBoundsAreBound(t *testing.T) {
	start, end := date(2021, 1, 1), date(2021, 3, 31)
	p := BuildPredicate(filterState(start, end))

	cat, err := BuildCatalog(p)
	require.NoError(t, err)

	for _, d := range cat.All() {
		require.GreaterOrEqual(t, len(d.Args), 2, "query %s", d.Name)
		assert.Equal(t, start, d.Args[0], "query %s", d.Name)
		assert.Equal(t, end, d.Args[1], "query %s", d.Name)
		// Bound parameters only: no literal dates in the SQL text.
		assert.NotContains(t, d.SQL, "2021", "query %s", d.Name)
	}
}

func TestBuildPredicateDepartmentValuesAreBound(t *testing.T) {
	p := BuildPredicate(filterState(date(2021, 1, 1), date(2021, 12, 31), "GROCERY", "DELI"))

	cat, err := BuildCatalog(p)
	require.NoError(t, err)

	for _, d := range cat.All() {
		require.GreaterOrEqual(t, len(d.Args), 4, "query %s", d.Name)
		assert.Equal(t, "DELI", d.Args[2], "query %s", d.Name)
		assert.Equal(t, "GROCERY", d.Args[3], "query %s", d.Name)
		assert.NotContains(t, d.SQL, "GROCERY", "query %s", d.Name)
	}
}
