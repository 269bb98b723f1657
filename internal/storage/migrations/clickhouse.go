package migrations

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"vehicle-market-lab/internal/observability"
	chstore "vehicle-market-lab/internal/storage/clickhouse"
)

// RunClickhouseMigrations creates the database named in dsn and the listings
// table (chstore.DefaultTable when table is empty), then checks the table's
// columns. The returned connection is bound to that database.
func RunClickhouseMigrations(ctx context.Context, dsn, table string, logger *zap.Logger) (*chstore.Conn, error) {
	if table == "" {
		table = chstore.DefaultTable
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	database, err := chstore.DatabaseFromDSN(dsn)
	if err != nil {
		return nil, err
	}
	if database == "" {
		return nil, fmt.Errorf("clickhouse dsn %q names no database", dsn)
	}
	if err := checkIdentifier("database", database); err != nil {
		return nil, err
	}

	migrations, err := Load(DialectClickHouse, table)
	if err != nil {
		return nil, err
	}

	if err := createDatabase(ctx, dsn, database); err != nil {
		return nil, err
	}

	conn, err := chstore.NewConnWithDatabase(ctx, dsn, database)
	if err != nil {
		return nil, fmt.Errorf("connect clickhouse database %s: %w", database, err)
	}

	if err := applyClickhouse(ctx, conn, migrations, table, logger); err != nil {
		conn.Close()
		return nil, err
	}
	if err := CheckClickhouseSchema(ctx, conn, table); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

func createDatabase(ctx context.Context, dsn, database string) error {
	admin, err := chstore.NewConnWithDatabase(ctx, dsn, "")
	if err != nil {
		return fmt.Errorf("connect clickhouse server: %w", err)
	}
	defer admin.Close()

	if err := admin.Exec(ctx, "CREATE DATABASE IF NOT EXISTS "+database); err != nil {
		return fmt.Errorf("create database %s: %w", database, err)
	}
	return nil
}

// applyClickhouse runs each statement on its own; the native protocol
// executes one statement per call.
func applyClickhouse(ctx context.Context, conn *chstore.Conn, migrations []Migration, table string, logger *zap.Logger) error {
	for _, m := range migrations {
		stmts, err := statements(m.SQL)
		if err != nil {
			return fmt.Errorf("parse migration %s: %w", m.Name, err)
		}

		start := time.Now()
		for _, stmt := range stmts {
			if err = conn.Exec(ctx, stmt); err != nil {
				break
			}
		}
		observability.RecordMigration(string(DialectClickHouse), time.Since(start).Seconds(), err)
		if err != nil {
			return fmt.Errorf("apply migration %s: %w", m.Name, err)
		}

		logger.Info("migration applied",
			zap.String("database", string(DialectClickHouse)),
			zap.String("file", m.Name),
			zap.String("table", table),
			zap.Int("statements", len(stmts)),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
	return nil
}

// CheckClickhouseSchema verifies that table exists in the connection's
// database and has every listing column. Returns storage.ErrSourceMissing or
// storage.ErrSchema.
func CheckClickhouseSchema(ctx context.Context, conn *chstore.Conn, table string) error {
	rows, err := conn.Query(ctx,
		"SELECT name FROM system.columns WHERE database = currentDatabase() AND table = ?", table)
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

// statements splits a migration file at semicolons outside single-quoted
// literals. Lines starting with -- are dropped first. An unterminated
// literal is an error.
func statements(sql string) ([]string, error) {
	var body strings.Builder
	for _, line := range strings.Split(sql, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		body.WriteString(line)
		body.WriteByte('\n')
	}

	var (
		out     []string
		current strings.Builder
		quoted  bool
	)
	flush := func() {
		if stmt := strings.TrimSpace(current.String()); stmt != "" {
			out = append(out, stmt)
		}
		current.Reset()
	}

	for _, r := range body.String() {
		switch {
		case r == '\'':
			// '' inside a literal toggles twice and stays quoted
			quoted = !quoted
		case r == ';' && !quoted:
			flush()
			continue
		}
		current.WriteRune(r)
	}
	if quoted {
		return nil, fmt.Errorf("unterminated string literal")
	}
	flush()
	return out, nil
}
