package main

import (
	"flag"
	"os"

	"github.com/kyohashi/idpos-visualizer/internal/seed"
	"github.com/kyohashi/idpos-visualizer/pkg/logger"
)

// Standalone demo-data generator. Writes the three source CSVs that
// cmd/ingest loads into the warehouse.
func main() {
	outDir := flag.String("out", "./data", "directory for the generated CSV files")
	rngSeed := flag.Int64("seed", 42, "random seed; the same seed reproduces the same dataset")
	flag.Parse()

	log := logger.New("info", logger.NewStdoutHandler)

	ds := seed.Generate(*rngSeed)
	if err := ds.WriteCSVs(*outDir); err != nil {
		log.Error("failed to write demo data", "error", err)
		os.Exit(1)
	}

	log.Info("demo data generated",
		"households", len(ds.Households),
		"products", len(ds.Products),
		"transactions", len(ds.Transactions),
		"dir", *outDir)
}
