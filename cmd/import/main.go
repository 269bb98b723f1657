// Package main imports a listing file (CSV or Parquet) into PostgreSQL or ClickHouse,
// or converts a CSV file to Parquet.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"vehicle-market-lab/internal/config"
	"vehicle-market-lab/internal/domain"
	"vehicle-market-lab/internal/logging"
	"vehicle-market-lab/internal/observability"
	"vehicle-market-lab/internal/storage"
	chstore "vehicle-market-lab/internal/storage/clickhouse"
	"vehicle-market-lab/internal/storage/csvfile"
	"vehicle-market-lab/internal/storage/migrations"
	"vehicle-market-lab/internal/storage/parquetfile"
	pgstore "vehicle-market-lab/internal/storage/postgres"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Parse flags
	input := flag.String("input", cfg.DataPath, "Listing file to import (.csv or .parquet)")
	target := flag.String("target", "", "Import target: postgres, clickhouse or parquet")
	output := flag.String("output", "", "Output file for the parquet target")
	postgresDSN := flag.String("postgres-dsn", cfg.PostgresDSN, "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", cfg.ClickHouseDSN, "ClickHouse connection string")
	table := flag.String("table", cfg.Table, "Target table")
	batchSize := flag.Int("batch-size", 5000, "Listings per insert batch")
	flag.Parse()

	logger := logging.Must(cfg.LogDev)
	defer func() { _ = logger.Sync() }()

	if *input == "" || *target == "" {
		fmt.Fprintln(os.Stderr, "Error: --input and --target are required")
		flag.Usage()
		os.Exit(1)
	}
	if *batchSize <= 0 {
		logger.Fatal("--batch-size must be positive")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	start := time.Now()
	listings, err := readInput(ctx, *input)
	if err != nil {
		logger.Fatal("read input", zap.String("input", *input), zap.Error(err))
	}
	logger.Info("input loaded", zap.String("input", *input), zap.Int("listings", len(listings)))

	switch strings.ToLower(*target) {
	case "parquet":
		if *output == "" {
			logger.Fatal("--output is required for the parquet target")
		}
		if err := parquetfile.WriteFile(*output, listings); err != nil {
			logger.Fatal("write parquet", zap.Error(err))
		}
		observability.RecordImport("parquet", len(listings))
		logger.Info("parquet written", zap.String("output", *output), zap.Duration("elapsed", time.Since(start)))
		return

	case string(domain.SourcePostgres):
		pool, err := pgstore.NewPool(ctx, *postgresDSN)
		if err != nil {
			logger.Fatal("connect to postgres", zap.Error(err))
		}
		defer pool.Close()

		if err := migrations.RunPostgresMigrations(ctx, pool, *table, logger); err != nil {
			logger.Fatal("apply postgres migrations", zap.Error(err))
		}
		importAll(ctx, logger, pgstore.NewListingStore(pool, *table), "postgres", listings, *batchSize)

	case string(domain.SourceClickHouse):
		conn, err := migrations.RunClickhouseMigrations(ctx, *clickhouseDSN, *table, logger)
		if err != nil {
			logger.Fatal("apply clickhouse migrations", zap.Error(err))
		}
		defer conn.Close()

		importAll(ctx, logger, chstore.NewListingStore(conn, *table), "clickhouse", listings, *batchSize)

	default:
		logger.Fatal("unknown target", zap.String("target", *target))
	}

	logger.Info("import complete", zap.Duration("elapsed", time.Since(start)))
}

// readInput loads listings from a CSV or Parquet file, chosen by extension.
func readInput(ctx context.Context, path string) ([]*domain.Listing, error) {
	var source storage.ListingSource
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		source = csvfile.NewSource(path)
	case ".parquet":
		source = parquetfile.NewSource(path)
	default:
		return nil, fmt.Errorf("unsupported input extension %q", filepath.Ext(path))
	}
	return source.LoadAll(ctx)
}

// importAll inserts listings in batches and logs progress.
func importAll(ctx context.Context, logger *zap.Logger, store storage.ListingStore, target string, listings []*domain.Listing, batchSize int) {
	for i := 0; i < len(listings); i += batchSize {
		end := min(i+batchSize, len(listings))
		if err := store.InsertBulk(ctx, listings[i:end]); err != nil {
			logger.Fatal("insert batch", zap.Int("offset", i), zap.Error(err))
		}
		observability.RecordImport(target, end-i)
		logger.Info("batch inserted", zap.Int("offset", i), zap.Int("rows", end-i))
	}

	count, err := store.Count(ctx)
	if err != nil {
		logger.Fatal("count listings", zap.Error(err))
	}
	logger.Info("listings stored", zap.String("target", target), zap.Int("total", count))
}
