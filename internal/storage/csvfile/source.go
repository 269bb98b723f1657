// Package csvfile reads listings from a CSV file with a header row.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"vehicle-market-lab/internal/domain"
	"vehicle-market-lab/internal/storage"
)

// Source implements storage.ListingSource over a CSV file.
type Source struct {
	path string
}

// NewSource creates a CSV listing source for path.
func NewSource(path string) *Source {
	return &Source{path: path}
}

// Compile-time interface check.
var _ storage.ListingSource = (*Source)(nil)

// Identity returns path, modification time and size of the file.
func (s *Source) Identity(_ context.Context) (domain.SourceIdentity, error) {
	return FileIdentity(domain.SourceCSV, s.path)
}

// FileIdentity builds the identity of a dataset file from its path, mtime and size.
func FileIdentity(kind domain.SourceKind, path string) (domain.SourceIdentity, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.SourceIdentity{}, fmt.Errorf("%w: %s", storage.ErrSourceMissing, path)
		}
		return domain.SourceIdentity{}, fmt.Errorf("stat %s: %w", path, err)
	}
	return domain.SourceIdentity{
		Kind:     kind,
		Location: path,
		Version:  fmt.Sprintf("%d-%d", info.ModTime().UnixNano(), info.Size()),
	}, nil
}

// LoadAll reads every row of the file.
func (s *Source) LoadAll(ctx context.Context) ([]*domain.Listing, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", storage.ErrSourceMissing, s.path)
		}
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.Close()

	return Read(ctx, f)
}

// Read parses listings from r. Columns are matched by header name in any order;
// extra columns are ignored.
func Read(ctx context.Context, r io.Reader) ([]*domain.Listing, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", storage.ErrSchema)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var listings []*domain.Listing
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}

		// Check for cancellation every few thousand rows
		if line%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		l, err := parseRecord(record, idx)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		listings = append(listings, l)
	}

	return listings, nil
}

// columnIndex maps every required column to its position in header.
func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var missing []string
	for _, col := range domain.Columns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing columns %s", storage.ErrSchema, strings.Join(missing, ", "))
	}
	return idx, nil
}

func parseRecord(record []string, idx map[string]int) (*domain.Listing, error) {
	field := func(col string) string {
		return strings.TrimSpace(record[idx[col]])
	}

	price, err := strconv.ParseFloat(field(domain.ColumnPrice), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: price: %v", storage.ErrSchema, err)
	}
	odometer, err := strconv.ParseFloat(field(domain.ColumnOdometer), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: odometer: %v", storage.ErrSchema, err)
	}
	year, err := ParseYear(field(domain.ColumnModelYear))
	if err != nil {
		return nil, err
	}
	is4wd, err := ParseNullableBool(field(domain.ColumnIs4WD))
	if err != nil {
		return nil, err
	}

	l := &domain.Listing{
		Price:     price,
		Odometer:  odometer,
		ModelYear: year,
		Condition: field(domain.ColumnCondition),
		Type:      field(domain.ColumnType),
		Is4WD:     is4wd,
	}
	if err := storage.ValidateListing(l); err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrSchema, err)
	}
	return l, nil
}

// ParseYear accepts integer years, also when written as floats ("2015.0").
func ParseYear(s string) (int, error) {
	if y, err := strconv.Atoi(s); err == nil {
		return y, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0, fmt.Errorf("%w: model_year %q", storage.ErrSchema, s)
	}
	return int(f), nil
}

// ParseNullableBool parses a boolean flag; blank and null markers yield nil.
func ParseNullableBool(s string) (*bool, error) {
	switch strings.ToLower(s) {
	case "", "nan", "null", "none", "na", "<na>":
		return nil, nil
	case "1", "1.0":
		v := true
		return &v, nil
	case "0", "0.0":
		v := false
		return &v, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return nil, fmt.Errorf("%w: is_4wd %q", storage.ErrSchema, s)
	}
	return &v, nil
}
