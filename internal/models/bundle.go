package models

import "time"

// KPISummary is the single-row headline aggregate. Aggregates over zero
// matching rows report zeros, never nulls.
type KPISummary struct {
	TotalSales float64 `json:"totalSales"`
	Baskets    int64   `json:"baskets"`
	Households int64   `json:"households"`
}

// TrendPoint is one weekly bucket of the sales trend, keyed by the
// Monday starting its ISO week.
type TrendPoint struct {
	WeekStart time.Time `json:"weekStart"`
	Sales     float64   `json:"sales"`
}

// CategorySales is one entry of the top-category ranking.
type CategorySales struct {
	Category string  `json:"category"`
	Sales    float64 `json:"sales"`
}

// DemographicCell is one cell of the age × income sales grid.
type DemographicCell struct {
	AgeBracket    string  `json:"ageBracket"`
	IncomeBracket string  `json:"incomeBracket"`
	Sales         float64 `json:"sales"`
}

// ResultBundle is the immutable snapshot produced by one orchestration
// cycle. All four fields were computed under the same predicate. An empty
// Demographics slice is a valid degraded state, not an error.
type ResultBundle struct {
	KPI          KPISummary        `json:"kpi"`
	Trend        []TrendPoint      `json:"trend"`
	Categories   []CategorySales   `json:"categories"`
	Demographics []DemographicCell `json:"demographics"`
}
