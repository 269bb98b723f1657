package clickhouse

import (
	"context"
	"fmt"
	"strings"
	"time"

	"vehicle-market-lab/internal/domain"
	"vehicle-market-lab/internal/storage"
)

// DefaultTable is the listings table created by the migrations.
const DefaultTable = "listings"

// ListingStore implements storage.ListingStore using ClickHouse.
// Rows carry an explicit seq column so storage order survives merges.
type ListingStore struct {
	conn  *Conn
	table string
}

// NewListingStore creates a new ListingStore over table.
// An empty table name selects DefaultTable.
func NewListingStore(conn *Conn, table string) *ListingStore {
	if table == "" {
		table = DefaultTable
	}
	return &ListingStore{conn: conn, table: table}
}

// Compile-time interface check.
var _ storage.ListingStore = (*ListingStore)(nil)

// Identity derives the dataset version from row count, highest seq and last ingest time.
func (s *ListingStore) Identity(ctx context.Context) (domain.SourceIdentity, error) {
	query := fmt.Sprintf(`
		SELECT count(), max(seq), toUnixTimestamp64Milli(max(ingested_at))
		FROM %s
	`, quoteIdent(s.table))

	var (
		count, maxSeq uint64
		ingestedMs    int64
	)
	if err := s.conn.QueryRow(ctx, query).Scan(&count, &maxSeq, &ingestedMs); err != nil {
		return domain.SourceIdentity{}, s.wrapErr("identity", err)
	}

	return domain.SourceIdentity{
		Kind:     domain.SourceClickHouse,
		Location: s.table,
		Version:  fmt.Sprintf("%d-%d-%d", count, maxSeq, ingestedMs),
	}, nil
}

// LoadAll reads every listing ordered by seq ASC.
func (s *ListingStore) LoadAll(ctx context.Context) (listings []*domain.Listing, err error) {
	defer observeQuery("load_listings", time.Now(), &err)

	query := fmt.Sprintf(`
		SELECT price, odometer, model_year, condition, type, is_4wd
		FROM %s
		ORDER BY seq ASC
	`, quoteIdent(s.table))

	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, s.wrapErr("load listings", err)
	}
	defer rows.Close()

	return scanListings(rows)
}

// InsertBulk appends listings in a single batch. Fails entire batch on invalid input.
func (s *ListingStore) InsertBulk(ctx context.Context, listings []*domain.Listing) (err error) {
	if len(listings) == 0 {
		return nil
	}
	defer observeQuery("insert_listings", time.Now(), &err)

	for _, l := range listings {
		if err := storage.ValidateListing(l); err != nil {
			return err
		}
	}

	next, err := s.nextSeq(ctx)
	if err != nil {
		return err
	}

	batch, err := s.conn.PrepareBatch(ctx, fmt.Sprintf(`
		INSERT INTO %s (
			seq, price, odometer, model_year, condition, type, is_4wd, ingested_at
		)
	`, quoteIdent(s.table)))
	if err != nil {
		return s.wrapErr("prepare batch", err)
	}

	now := time.Now().UTC()
	for i, l := range listings {
		err = batch.Append(
			next+uint64(i), l.Price, l.Odometer, int32(l.ModelYear),
			l.Condition, l.Type, l.Is4WD, now,
		)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}
	return nil
}

// Count returns the number of stored listings.
func (s *ListingStore) Count(ctx context.Context) (int, error) {
	var n uint64
	query := fmt.Sprintf(`SELECT count() FROM %s`, quoteIdent(s.table))
	if err := s.conn.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, s.wrapErr("count listings", err)
	}
	return int(n), nil
}

// nextSeq returns the first free seq value.
func (s *ListingStore) nextSeq(ctx context.Context) (uint64, error) {
	var count, maxSeq uint64
	query := fmt.Sprintf(`SELECT count(), max(seq) FROM %s`, quoteIdent(s.table))
	if err := s.conn.QueryRow(ctx, query).Scan(&count, &maxSeq); err != nil {
		return 0, s.wrapErr("next seq", err)
	}
	if count == 0 {
		return 0, nil
	}
	return maxSeq + 1, nil
}

// wrapErr maps missing tables and columns to storage errors.
func (s *ListingStore) wrapErr(op string, err error) error {
	switch {
	case isUnknownTableError(err):
		return fmt.Errorf("%w: table %s", storage.ErrSourceMissing, s.table)
	case isUnknownColumnError(err):
		return fmt.Errorf("%w: %s: %v", storage.ErrSchema, op, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// scanListings scans multiple rows.
func scanListings(rows chRows) ([]*domain.Listing, error) {
	var listings []*domain.Listing

	for rows.Next() {
		var (
			l    domain.Listing
			year int32
		)

		err := rows.Scan(
			&l.Price, &l.Odometer, &year,
			&l.Condition, &l.Type, &l.Is4WD,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scan listing row: %v", storage.ErrSchema, err)
		}

		l.ModelYear = int(year)
		listings = append(listings, &l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate listing rows: %w", err)
	}

	return listings, nil
}

// quoteIdent quotes a table name for ClickHouse.
func quoteIdent(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}
