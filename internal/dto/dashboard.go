package dto

import "github.com/kyohashi/idpos-visualizer/internal/models"

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// --- Request types ---

// UpdateFiltersRequest is a partial update: absent fields keep their
// current values, so a client can adjust one filter without restating
// the rest.
type UpdateFiltersRequest struct {
	StartDate   *string  `json:"startDate,omitempty"`
	EndDate     *string  `json:"endDate,omitempty"`
	Departments []string `json:"departments,omitempty"`
}

// --- Response types ---

type FiltersResponse struct {
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	Departments []string `json:"departments"`
}

// RefreshResult is the outcome of one orchestration cycle. Stale means a
// later-triggered cycle published first and this cycle's bundle was
// discarded; Bundle is nil in that case. Degraded means the demographic
// sub-query failed and the published bundle carries empty demographics.
type RefreshResult struct {
	CycleID  string               `json:"cycleId"`
	Degraded bool                 `json:"degraded"`
	Stale    bool                 `json:"stale"`
	Bundle   *models.ResultBundle `json:"bundle,omitempty"`
}

type DepartmentsResponse struct {
	Departments []string `json:"departments"`
	Degraded    bool     `json:"degraded,omitempty"`
}
