package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kyohashi/idpos-visualizer/internal/dto"
	"github.com/kyohashi/idpos-visualizer/internal/errs"
	"github.com/kyohashi/idpos-visualizer/internal/models"
	"github.com/kyohashi/idpos-visualizer/internal/response"
	"github.com/kyohashi/idpos-visualizer/pkg/helpers"
	"github.com/kyohashi/idpos-visualizer/pkg/logger"
)

// SessionService is the dashboard session: filter state plus the
// currently published result bundle.
type SessionService interface {
	Filters() models.FilterState
	SetFilters(f models.FilterState) error
	Bundle() *models.ResultBundle
	Refresh(ctx context.Context) (dto.RefreshResult, error)
}

// MetadataService loads the department choice list.
type MetadataService interface {
	ListDepartments(ctx context.Context) ([]string, error)
}

type dashboardHandlers struct {
	ResponseHandler response.ResponseHandler
	Session         SessionService
	Metadata        MetadataService
}

func NewDashboardHandlers(deps *Deps) *dashboardHandlers {
	return &dashboardHandlers{
		ResponseHandler: deps.ResponseHandler,
		Session:         deps.Session,
		Metadata:        deps.Metadata,
	}
}

func (h *dashboardHandlers) DashboardRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.GetDashboard)
	r.Get("/filters", h.GetFilters)
	r.Put("/filters", h.UpdateFilters)
	r.Post("/refresh", h.Refresh)
	r.Get("/departments", h.GetDepartments)
	return r
}

// GetDashboard returns the currently published bundle; data is null
// before the first successful refresh.
func (h *dashboardHandlers) GetDashboard(w http.ResponseWriter, r *http.Request) {
	h.ResponseHandler.WriteSuccess(w, http.StatusOK, h.Session.Bundle())
}

func (h *dashboardHandlers) GetFilters(w http.ResponseWriter, r *http.Request) {
	h.ResponseHandler.WriteSuccess(w, http.StatusOK, filtersResponse(h.Session.Filters()))
}

// UpdateFilters applies a partial update to the session filter state.
// It never triggers query execution; the client refreshes explicitly.
func (h *dashboardHandlers) UpdateFilters(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateFiltersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("malformed request body"))
		return
	}
	state, err := parseFilters(h.Session.Filters(), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	if err := h.Session.SetFilters(state); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, http.StatusOK, filtersResponse(h.Session.Filters()))
}

// Refresh triggers one orchestration cycle and returns its outcome.
func (h *dashboardHandlers) Refresh(w http.ResponseWriter, r *http.Request) {
	result, err := h.Session.Refresh(r.Context())
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, http.StatusOK, result)
}

// GetDepartments returns the filter control's choice list. A warehouse
// failure degrades to an empty list with a warning instead of blocking
// dashboard load.
func (h *dashboardHandlers) GetDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.Metadata.ListDepartments(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Warn("department metadata unavailable, serving empty choice list", "error", err)
		h.ResponseHandler.WriteSuccess(w, http.StatusOK, dto.DepartmentsResponse{Departments: []string{}, Degraded: true})
		return
	}
	if departments == nil {
		departments = []string{}
	}
	h.ResponseHandler.WriteSuccess(w, http.StatusOK, dto.DepartmentsResponse{Departments: departments})
}

// parseFilters merges a partial update into the current filter state.
// Absent fields fall back to the current values.
func parseFilters(current models.FilterState, req dto.UpdateFiltersRequest) (models.FilterState, error) {
	start, err := time.Parse(dto.DateLayout, helpers.ValueOr(req.StartDate, current.DateRange.Start.Format(dto.DateLayout)))
	if err != nil {
		return models.FilterState{}, errs.NewValidationError("startDate must be a YYYY-MM-DD date")
	}
	end, err := time.Parse(dto.DateLayout, helpers.ValueOr(req.EndDate, current.DateRange.End.Format(dto.DateLayout)))
	if err != nil {
		return models.FilterState{}, errs.NewValidationError("endDate must be a YYYY-MM-DD date")
	}
	departments := req.Departments
	if departments == nil {
		departments = current.Departments
	}
	if departments == nil {
		departments = []string{}
	}
	for _, d := range departments {
		if d == "" {
			return models.FilterState{}, errs.NewValidationError("departments must not contain empty names")
		}
	}
	return models.FilterState{
		DateRange:   models.DateRange{Start: start, End: end},
		Departments: departments,
	}, nil
}

func filtersResponse(f models.FilterState) dto.FiltersResponse {
	return dto.FiltersResponse{
		StartDate:   f.DateRange.Start.Format(dto.DateLayout),
		EndDate:     f.DateRange.End.Format(dto.DateLayout),
		Departments: f.Departments,
	}
}
