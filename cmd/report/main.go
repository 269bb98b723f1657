// Package main writes a Markdown report and per-table CSVs for one filter selection.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"vehicle-market-lab/internal/app"
	"vehicle-market-lab/internal/config"
	"vehicle-market-lab/internal/dashboard"
	"vehicle-market-lab/internal/domain"
	"vehicle-market-lab/internal/logging"
	"vehicle-market-lab/internal/recordstore"
	"vehicle-market-lab/internal/reporting"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Parse flags
	outputDir := flag.String("output-dir", "output", "Output directory for generated files")
	dataSource := flag.String("data-source", string(cfg.DataSource), "Data source: csv, parquet, postgres, clickhouse")
	dataPath := flag.String("data-path", cfg.DataPath, "Dataset file for csv and parquet sources")
	yearMin := flag.Int("year-min", 0, "Minimum model year (default: dataset minimum)")
	yearMax := flag.Int("year-max", 0, "Maximum model year (default: dataset maximum)")
	priceMin := flag.Float64("price-min", 0, "Minimum price (default: dataset minimum)")
	priceMax := flag.Float64("price-max", 0, "Maximum price (default: dataset maximum)")
	condition := flag.String("condition", domain.ConditionAll, "Condition or \"all\"")
	flag.Parse()

	cfg.DataSource = domain.SourceKind(strings.ToLower(*dataSource))
	cfg.DataPath = *dataPath

	logger := logging.Must(cfg.LogDev)
	defer func() { _ = logger.Sync() }()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	ctx := context.Background()

	source, closeSource, err := app.OpenSource(ctx, cfg)
	if err != nil {
		logger.Fatal("open data source", zap.Error(err))
	}
	defer closeSource()

	service := dashboard.NewService(recordstore.NewCache(source, logger), nil, logger)

	filters, err := service.Filters(ctx)
	if err != nil {
		logger.Fatal("load dataset", zap.Error(err))
	}

	// Only flags given on the command line override the dataset defaults.
	params := filters.Defaults
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "year-min":
			params.YearMin = *yearMin
		case "year-max":
			params.YearMax = *yearMax
		case "price-min":
			params.PriceMin = *priceMin
		case "price-max":
			params.PriceMax = *priceMax
		case "condition":
			params.Condition = *condition
		}
	})

	written, err := reporting.NewGenerator(service).Generate(ctx, params, *outputDir)
	if err != nil {
		logger.Fatal("generate report", zap.Error(err))
	}

	for _, path := range written {
		fmt.Printf("  %s\n", path)
	}
	logger.Info("report generated", zap.String("output_dir", *outputDir), zap.Int("files", len(written)))
}
