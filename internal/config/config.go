// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"vehicle-market-lab/internal/domain"
)

// Environment keys.
const (
	KeyDataSource       = "DATA_SOURCE"
	KeyDataPath         = "DATA_PATH"
	KeyTable            = "DATA_TABLE"
	KeyPostgresDSN      = "POSTGRES_DSN"
	KeyClickHouseDSN    = "CLICKHOUSE_DSN"
	KeyHTTPAddr         = "HTTP_ADDR"
	KeyRedisAddr        = "REDIS_ADDR"
	KeyViewCacheSize    = "VIEW_CACHE_SIZE"
	KeyViewCacheTTL     = "VIEW_CACHE_TTL"
	KeyLogDev           = "LOG_DEV"
	KeyIncludeRowsLimit = "INCLUDE_ROWS_LIMIT"
)

// Config holds all runtime settings.
type Config struct {
	DataSource       domain.SourceKind `validate:"required,oneof=csv parquet postgres clickhouse memory"`
	DataPath         string
	Table            string
	PostgresDSN      string
	ClickHouseDSN    string
	HTTPAddr         string `validate:"required"`
	RedisAddr        string
	ViewCacheSize    int           `validate:"gte=0"`
	ViewCacheTTL     time.Duration `validate:"gte=0"`
	LogDev           bool
	IncludeRowsLimit int `validate:"gte=0"`
}

// Load reads envFile (if it exists) into the process environment and
// resolves every key with its default. Variables already set in the
// environment take precedence over the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		DataSource:       domain.SourceKind(strings.ToLower(v.GetString(KeyDataSource))),
		DataPath:         v.GetString(KeyDataPath),
		Table:            v.GetString(KeyTable),
		PostgresDSN:      v.GetString(KeyPostgresDSN),
		ClickHouseDSN:    v.GetString(KeyClickHouseDSN),
		HTTPAddr:         v.GetString(KeyHTTPAddr),
		RedisAddr:        v.GetString(KeyRedisAddr),
		ViewCacheSize:    v.GetInt(KeyViewCacheSize),
		ViewCacheTTL:     v.GetDuration(KeyViewCacheTTL),
		LogDev:           v.GetBool(KeyLogDev),
		IncludeRowsLimit: v.GetInt(KeyIncludeRowsLimit),
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyDataSource, string(domain.SourceParquet))
	v.SetDefault(KeyDataPath, "data/vehicles_clean.parquet")
	v.SetDefault(KeyTable, "listings")
	v.SetDefault(KeyHTTPAddr, ":8080")
	v.SetDefault(KeyViewCacheSize, 256)
	v.SetDefault(KeyViewCacheTTL, 10*time.Minute)
	v.SetDefault(KeyLogDev, false)
	v.SetDefault(KeyIncludeRowsLimit, 5000)
}

// Validate checks field constraints and the settings required by the data source.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	switch c.DataSource {
	case domain.SourceCSV, domain.SourceParquet:
		if c.DataPath == "" {
			return fmt.Errorf("invalid config: %s is required for %s source", KeyDataPath, c.DataSource)
		}
	case domain.SourcePostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("invalid config: %s is required for postgres source", KeyPostgresDSN)
		}
	case domain.SourceClickHouse:
		if c.ClickHouseDSN == "" {
			return fmt.Errorf("invalid config: %s is required for clickhouse source", KeyClickHouseDSN)
		}
	}
	return nil
}
