package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/kyohashi/idpos-visualizer/internal/bootstrap"
	"github.com/kyohashi/idpos-visualizer/internal/config"
	"github.com/kyohashi/idpos-visualizer/internal/ingest"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	_ = godotenv.Load()

	transactionsPath := flag.String("transactions", "./data/transaction_data.csv", "path to the transaction CSV")
	productsPath := flag.String("products", "./data/product.csv", "path to the product CSV")
	demographicsPath := flag.String("demographics", "./data/hh_demographic.csv", "path to the household demographic CSV")
	flag.Parse()

	cfg := config.New()
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Warehouse.Close()

	ctx := context.Background()

	products, err := readProducts(*productsPath)
	exitOnError("failed to read products", err, bs.Log)

	facts, skipped, err := readTransactions(*transactionsPath, products)
	exitOnError("failed to read transactions", err, bs.Log)
	if skipped > 0 {
		bs.Log.Warn("skipped transactions referencing unknown products", "skipped", skipped)
	}

	demographics, err := readDemographics(*demographicsPath)
	exitOnError("failed to read demographics", err, bs.Log)

	loader := ingest.NewLoader(bs.Warehouse)
	exitOnError("failed to create schema", loader.CreateSchema(ctx), bs.Log)

	factCount, err := loader.LoadFacts(ctx, facts)
	exitOnError("failed to load sales facts", err, bs.Log)
	bs.Log.Info("loaded sales facts", "rows", factCount)

	demoCount, err := loader.LoadDemographics(ctx, demographics)
	exitOnError("failed to load demographics", err, bs.Log)
	bs.Log.Info("loaded household demographics", "rows", demoCount)
}

func readProducts(path string) (map[int64]ingest.Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ingest.ReadProducts(f)
}

func readTransactions(path string, products map[int64]ingest.Product) ([]ingest.FactRow, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()
	return ingest.ReadTransactions(f, products)
}

func readDemographics(path string) ([]ingest.DemographicRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ingest.ReadDemographics(f)
}
