// Package migrations creates and checks the listings table in PostgreSQL and ClickHouse.
package migrations

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strings"

	"vehicle-market-lab/internal/domain"
	"vehicle-market-lab/internal/storage"
)

//go:embed postgres/*.sql clickhouse/*.sql
var files embed.FS

// Dialect selects the migration set of one database.
type Dialect string

const (
	DialectPostgres   Dialect = "postgres"
	DialectClickHouse Dialect = "clickhouse"
)

// tablePlaceholder is replaced with the listings table name in every file.
const tablePlaceholder = "{{table}}"

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,62}$`)

// Migration is one embedded SQL file rendered for a listings table.
type Migration struct {
	Name string
	SQL  string
}

// Load returns the migrations of d in file order with table substituted.
// table must be a plain SQL identifier.
func Load(d Dialect, table string) ([]Migration, error) {
	if err := checkIdentifier("table", table); err != nil {
		return nil, err
	}

	names, err := fs.Glob(files, path.Join(string(d), "*.sql"))
	if err != nil {
		return nil, fmt.Errorf("list %s migrations: %w", d, err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no embedded migrations for %q", d)
	}
	sort.Strings(names)

	out := make([]Migration, 0, len(names))
	for _, name := range names {
		data, err := fs.ReadFile(files, name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		out = append(out, Migration{
			Name: path.Base(name),
			SQL:  strings.ReplaceAll(string(data), tablePlaceholder, table),
		})
	}
	return out, nil
}

func checkIdentifier(kind, name string) error {
	if !identifier.MatchString(name) {
		return fmt.Errorf("%w: %s name %q is not a plain identifier", storage.ErrInvalidInput, kind, name)
	}
	return nil
}

// checkColumns compares the columns found for table with the listing schema.
// No columns at all means the table does not exist.
func checkColumns(table string, found []string) error {
	if len(found) == 0 {
		return fmt.Errorf("%w: table %s", storage.ErrSourceMissing, table)
	}

	present := make(map[string]bool, len(found))
	for _, c := range found {
		present[strings.ToLower(c)] = true
	}

	var missing []string
	for _, col := range domain.Columns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: table %s lacks %s", storage.ErrSchema, table, strings.Join(missing, ", "))
	}
	return nil
}
