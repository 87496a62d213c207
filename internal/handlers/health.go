package handlers

import (
	"context"
	"net/http"

	"github.com/kyohashi/idpos-visualizer/internal/response"
)

// WarehousePinger checks warehouse reachability.
type WarehousePinger interface {
	Ping(ctx context.Context) error
}

type healthHandlers struct {
	ResponseHandler response.ResponseHandler
	Warehouse       WarehousePinger
}

func NewHealthHandlers(deps *Deps) *healthHandlers {
	return &healthHandlers{
		ResponseHandler: deps.ResponseHandler,
		Warehouse:       deps.Warehouse,
	}
}

func (h *healthHandlers) Healthz(w http.ResponseWriter, r *http.Request) {
	if err := h.Warehouse.Ping(r.Context()); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}
