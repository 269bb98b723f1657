package domain

import "fmt"

// SourceKind names the backing store of a listing dataset.
type SourceKind string

const (
	SourceCSV        SourceKind = "csv"
	SourceParquet    SourceKind = "parquet"
	SourcePostgres   SourceKind = "postgres"
	SourceClickHouse SourceKind = "clickhouse"
	SourceMemory     SourceKind = "memory"
)

// IsValid checks if the kind is a known value.
func (k SourceKind) IsValid() bool {
	switch k {
	case SourceCSV, SourceParquet, SourcePostgres, SourceClickHouse, SourceMemory:
		return true
	}
	return false
}

// SourceIdentity identifies one version of a dataset.
// Two identities are equal only if the dataset is unchanged.
type SourceIdentity struct {
	Kind     SourceKind `json:"kind"`
	Location string     `json:"location"` // file path or table name
	Version  string     `json:"version"`  // mtime+size for files, row stats for tables
}

// String returns a stable textual form used as a cache key.
func (id SourceIdentity) String() string {
	return fmt.Sprintf("%s:%s@%s", id.Kind, id.Location, id.Version)
}
