package models

import "time"

// DateRange is an inclusive pair of calendar dates. Only the date part
// is significant; the query layer compares at day precision.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// FilterState holds the dashboard's current filter selections. The session
// owns exactly one instance for the process lifetime. Editing filters never
// executes queries by itself; only an explicit refresh does.
type FilterState struct {
	DateRange   DateRange `json:"dateRange"`
	Departments []string  `json:"departments"` // empty slice means no department filter
}

// DefaultFilterState covers the full demo dataset period with no
// department filter.
func DefaultFilterState() FilterState {
	return FilterState{
		DateRange: DateRange{
			Start: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2021, 12, 31, 0, 0, 0, 0, time.UTC),
		},
		Departments: []string{},
	}
}
