package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"vehicle-market-lab/internal/domain"
	"vehicle-market-lab/internal/storage"
)

// DefaultTable is the listings table created by the migrations.
const DefaultTable = "listings"

// ListingStore implements storage.ListingStore using PostgreSQL.
type ListingStore struct {
	pool  *Pool
	table string
}

// NewListingStore creates a new ListingStore over table.
// An empty table name selects DefaultTable.
func NewListingStore(pool *Pool, table string) *ListingStore {
	if table == "" {
		table = DefaultTable
	}
	return &ListingStore{pool: pool, table: table}
}

// Compile-time interface check.
var _ storage.ListingStore = (*ListingStore)(nil)

// Identity derives the dataset version from row count, highest id and last ingest time.
func (s *ListingStore) Identity(ctx context.Context) (domain.SourceIdentity, error) {
	query := fmt.Sprintf(`
		SELECT count(*), COALESCE(max(id), 0), COALESCE(max(ingested_at), 'epoch'::timestamptz)
		FROM %s
	`, pgx.Identifier{s.table}.Sanitize())

	var (
		count, maxID int64
		ingestedAt   time.Time
	)
	err := s.pool.QueryRow(ctx, query).Scan(&count, &maxID, &ingestedAt)
	if err != nil {
		return domain.SourceIdentity{}, s.wrapErr("identity", err)
	}

	return domain.SourceIdentity{
		Kind:     domain.SourcePostgres,
		Location: s.table,
		Version:  fmt.Sprintf("%d-%d-%d", count, maxID, ingestedAt.UnixNano()),
	}, nil
}

// LoadAll reads every listing ordered by id ASC.
func (s *ListingStore) LoadAll(ctx context.Context) (listings []*domain.Listing, err error) {
	defer observeQuery("load_listings", time.Now(), &err)

	query := fmt.Sprintf(`
		SELECT price, odometer, model_year, condition, type, is_4wd
		FROM %s
		ORDER BY id ASC
	`, pgx.Identifier{s.table}.Sanitize())

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, s.wrapErr("load listings", err)
	}
	defer rows.Close()

	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan listing: %v", storage.ErrSchema, err)
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, s.wrapErr("iterate listings", err)
	}

	return listings, nil
}

// InsertBulk copies listings into the table in one COPY. Fails entire batch on invalid input.
func (s *ListingStore) InsertBulk(ctx context.Context, listings []*domain.Listing) (err error) {
	if len(listings) == 0 {
		return nil
	}
	defer observeQuery("insert_listings", time.Now(), &err)

	rows := make([][]any, len(listings))
	for i, l := range listings {
		if err := storage.ValidateListing(l); err != nil {
			return err
		}
		rows[i] = []any{l.Price, l.Odometer, l.ModelYear, l.Condition, l.Type, l.Is4WD}
	}

	_, err = s.pool.CopyFrom(ctx,
		pgx.Identifier{s.table},
		[]string{"price", "odometer", "model_year", "condition", "type", "is_4wd"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return s.wrapErr("copy listings", err)
	}
	return nil
}

// Count returns the number of stored listings.
func (s *ListingStore) Count(ctx context.Context) (int, error) {
	query := fmt.Sprintf(`SELECT count(*) FROM %s`, pgx.Identifier{s.table}.Sanitize())

	var n int64
	if err := s.pool.QueryRow(ctx, query).Scan(&n); err != nil {
		if isNotFoundError(err) {
			return 0, nil
		}
		return 0, s.wrapErr("count listings", err)
	}
	return int(n), nil
}

// wrapErr maps missing tables and columns to storage errors.
func (s *ListingStore) wrapErr(op string, err error) error {
	switch {
	case isUndefinedTableError(err):
		return fmt.Errorf("%w: table %s", storage.ErrSourceMissing, s.table)
	case isUndefinedColumnError(err):
		return fmt.Errorf("%w: %s: %v", storage.ErrSchema, op, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// scanListing scans a single row into Listing.
func scanListing(row pgx.Row) (*domain.Listing, error) {
	var (
		l    domain.Listing
		year int32
	)

	err := row.Scan(
		&l.Price,
		&l.Odometer,
		&year,
		&l.Condition,
		&l.Type,
		&l.Is4WD,
	)
	if err != nil {
		return nil, err
	}

	l.ModelYear = int(year)
	return &l, nil
}
