// Package parquetfile reads listings from the preprocessed Parquet dataset.
package parquetfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/parquet-go/parquet-go"

	"vehicle-market-lab/internal/domain"
	"vehicle-market-lab/internal/storage"
	"vehicle-market-lab/internal/storage/csvfile"
)

// Row is the Parquet schema of one listing.
type Row struct {
	Price     float64 `parquet:"price"`
	Odometer  float64 `parquet:"odometer"`
	ModelYear int64   `parquet:"model_year"`
	Condition string  `parquet:"condition"`
	Type      string  `parquet:"type"`
	Is4WD     *bool   `parquet:"is_4wd,optional"`
}

// Source implements storage.ListingSource over a Parquet file.
type Source struct {
	path string
}

// NewSource creates a Parquet listing source for path.
func NewSource(path string) *Source {
	return &Source{path: path}
}

// Compile-time interface check.
var _ storage.ListingSource = (*Source)(nil)

// Identity returns path, modification time and size of the file.
func (s *Source) Identity(_ context.Context) (domain.SourceIdentity, error) {
	return csvfile.FileIdentity(domain.SourceParquet, s.path)
}

// LoadAll reads every row of the file in storage order.
func (s *Source) LoadAll(ctx context.Context) ([]*domain.Listing, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", storage.ErrSourceMissing, s.path)
		}
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", s.path, err)
	}

	pf, err := parquet.OpenFile(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("%w: open parquet: %v", storage.ErrSchema, err)
	}
	if err := checkColumns(pf.Schema()); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := parquet.Read[Row](f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("%w: read rows: %v", storage.ErrSchema, err)
	}

	listings := make([]*domain.Listing, len(rows))
	for i := range rows {
		l := FromRow(rows[i])
		if err := storage.ValidateListing(l); err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", storage.ErrSchema, i, err)
		}
		listings[i] = l
	}
	return listings, nil
}

// checkColumns fails with ErrSchema if a required column is absent.
func checkColumns(schema *parquet.Schema) error {
	present := make(map[string]bool)
	for _, field := range schema.Fields() {
		present[strings.ToLower(field.Name())] = true
	}

	var missing []string
	for _, col := range domain.Columns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing columns %s", storage.ErrSchema, strings.Join(missing, ", "))
	}
	return nil
}

// FromRow converts a Parquet row to a listing.
func FromRow(r Row) *domain.Listing {
	return &domain.Listing{
		Price:     r.Price,
		Odometer:  r.Odometer,
		ModelYear: int(r.ModelYear),
		Condition: r.Condition,
		Type:      r.Type,
		Is4WD:     r.Is4WD,
	}
}

// ToRow converts a listing to its Parquet row.
func ToRow(l *domain.Listing) Row {
	return Row{
		Price:     l.Price,
		Odometer:  l.Odometer,
		ModelYear: int64(l.ModelYear),
		Condition: l.Condition,
		Type:      l.Type,
		Is4WD:     l.Is4WD,
	}
}

// WriteFile writes listings to path as Parquet.
func WriteFile(path string, listings []*domain.Listing) error {
	rows := make([]Row, len(listings))
	for i, l := range listings {
		rows[i] = ToRow(l)
	}
	if err := parquet.WriteFile(path, rows); err != nil {
		return fmt.Errorf("write parquet %s: %w", path, err)
	}
	return nil
}
