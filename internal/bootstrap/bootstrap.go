package bootstrap

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kyohashi/idpos-visualizer/internal/config"
	"github.com/kyohashi/idpos-visualizer/pkg/logger"
)

type Bootstrap struct {
	Log       *slog.Logger
	Warehouse *pgxpool.Pool
}

func Run(cfg *config.Config) (*Bootstrap, error) {
	var err error
	applicationCtx := context.Background()
	bs := new(Bootstrap)

	bs.Log = logger.New(cfg.LogLevel, logger.NewStdoutHandler)
	bs.Warehouse, err = InitWarehouse(applicationCtx, cfg.WarehouseDSN)
	if err != nil {
		return bs, err
	}

	return bs, nil
}
