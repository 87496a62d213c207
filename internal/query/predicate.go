package query

import (
	"sort"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/kyohashi/idpos-visualizer/internal/models"
)

// Predicate is the canonical filter condition shared by every query of one
// orchestration cycle. It is derived fresh from the filter state at cycle
// start and never mutated afterwards.
type Predicate struct {
	start       time.Time
	end         time.Time
	departments []string // sorted and deduplicated; nil when unfiltered
}

// BuildPredicate derives a Predicate from the filter state. Pure and
// deterministic: equal filter states yield byte-identical rendered
// constraints regardless of department order in the input. The caller is
// responsible for validating Start <= End before this point.
func BuildPredicate(f models.FilterState) Predicate {
	p := Predicate{start: f.DateRange.Start, end: f.DateRange.End}
	if len(f.Departments) == 0 {
		return p
	}
	seen := make(map[string]struct{}, len(f.Departments))
	for _, d := range f.Departments {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		p.departments = append(p.departments, d)
	}
	sort.Strings(p.departments)
	return p
}

// Expressions returns the WHERE clauses in fixed order: the date-range
// condition first, then the department membership condition when present.
// No membership condition is emitted for an empty department set, so an
// unfiltered state never produces an always-false IN ().
func (p Predicate) Expressions() []goqu.Expression {
	exprs := []goqu.Expression{fact_txnDate.Between(goqu.Range(p.start, p.end))}
	if len(p.departments) > 0 {
		exprs = append(exprs, fact_department.In(p.departments))
	}
	return exprs
}

// DateRange reports the predicate's inclusive date bounds.
func (p Predicate) DateRange() (start, end time.Time) {
	return p.start, p.end
}

// Departments reports the canonicalised department set, nil when the
// predicate carries no department condition.
func (p Predicate) Departments() []string {
	if p.departments == nil {
		return nil
	}
	out := make([]string, len(p.departments))
	copy(out, p.departments)
	return out
}
