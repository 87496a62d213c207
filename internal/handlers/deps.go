package handlers

import (
	"log/slog"

	"github.com/kyohashi/idpos-visualizer/internal/response"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	Session         SessionService
	Metadata        MetadataService
	Warehouse       WarehousePinger
}
