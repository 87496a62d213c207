package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/kyohashi/idpos-visualizer/internal/bootstrap"
	"github.com/kyohashi/idpos-visualizer/internal/config"
	"github.com/kyohashi/idpos-visualizer/internal/handlers"
	"github.com/kyohashi/idpos-visualizer/internal/models"
	"github.com/kyohashi/idpos-visualizer/internal/response"
	"github.com/kyohashi/idpos-visualizer/internal/router"
	"github.com/kyohashi/idpos-visualizer/internal/services"
	"github.com/kyohashi/idpos-visualizer/internal/warehouse"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	_ = godotenv.Load()

	// bootstrap
	cfg := config.New()
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)

	// warehouse
	wh := warehouse.New(bs.Warehouse)

	// services
	executor := services.NewExecutorService(bs.Log, wh)
	session := services.NewSessionService(bs.Log, executor, models.DefaultFilterState())
	metadata := services.NewMetadataService(bs.Log, wh)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = response.New(bs.Log)
	deps.Session = session
	deps.Metadata = metadata
	deps.Warehouse = wh

	// router
	r := router.NewRouter(deps)
	bs.Log.Info("dashboard API listening", "port", cfg.Port)
	err = http.ListenAndServe(":"+cfg.Port, r)
	exitOnError("server start failed", err, bs.Log)
}
