package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/kyohashi/idpos-visualizer/internal/errs"
	"github.com/kyohashi/idpos-visualizer/internal/handlers"
	"github.com/kyohashi/idpos-visualizer/internal/middleware"
)

func NewRouter(deps *handlers.Deps) chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.NewLoggerMiddleware(deps.Log).LoggerMiddleware)

	dh := handlers.NewDashboardHandlers(deps)
	hh := handlers.NewHealthHandlers(deps)

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/dashboard", dh.DashboardRoutes())
	})
	r.Get("/healthz", hh.Healthz)

	// Unknown routes answer in the same JSON error shape as the API.
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		deps.ResponseHandler.HandleError(w, req, errs.NewNotFoundError("resource not found"))
	})
	return r
}
