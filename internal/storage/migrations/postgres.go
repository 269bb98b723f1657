package migrations

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"vehicle-market-lab/internal/observability"
	pgstore "vehicle-market-lab/internal/storage/postgres"
)

// RunPostgresMigrations creates the listings table (pgstore.DefaultTable when
// table is empty) and checks that it carries every listing column.
// The SQL is idempotent, so rerunning against an existing table is safe.
func RunPostgresMigrations(ctx context.Context, pool *pgstore.Pool, table string, logger *zap.Logger) error {
	if table == "" {
		table = pgstore.DefaultTable
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	migrations, err := Load(DialectPostgres, table)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		start := time.Now()
		_, err := pool.Exec(ctx, m.SQL)
		observability.RecordMigration(string(DialectPostgres), time.Since(start).Seconds(), err)
		if err != nil {
			return fmt.Errorf("apply migration %s: %w", m.Name, err)
		}
		logger.Info("migration applied",
			zap.String("database", string(DialectPostgres)),
			zap.String("file", m.Name),
			zap.String("table", table),
			zap.Duration("elapsed", time.Since(start)),
		)
	}

	return CheckPostgresSchema(ctx, pool, table)
}

// CheckPostgresSchema verifies that table exists in the current schema and has
// every listing column. Returns storage.ErrSourceMissing or storage.ErrSchema.
func CheckPostgresSchema(ctx context.Context, pool *pgstore.Pool, table string) error {
	rows, err := pool.Query(ctx, `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_schema = current_schema() AND table_name = $1
	`, table)
	if err != nil {
		return fmt.Errorf("inspect table %s: %w", table, err)
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("scan column of %s: %w", table, err)
		}
		columns = append(columns, name)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("inspect table %s: %w", table, err)
	}

	return checkColumns(table, columns)
}
