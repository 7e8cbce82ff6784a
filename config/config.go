package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/viper"
)

/* Config is a helper package. Values come from an optional .env (TOML)
 * file in the working directory, overridden by environment variables.
 */

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Port     string `mapstructure:"PORT"`
	DBDriver string `mapstructure:"DB_DRIVER"`

	SQLitePath string `mapstructure:"SQLITE_PATH"`

	PostgresHost               string `mapstructure:"POSTGRES_HOST"`
	PostgresPort               string `mapstructure:"POSTGRES_PORT"`
	PostgresUser               string `mapstructure:"POSTGRES_USER"`
	PostgresPassword           string `mapstructure:"POSTGRES_PASSWORD"`
	PostgresDB                 string `mapstructure:"POSTGRES_DB"`
	PostgresSSLMode            string `mapstructure:"POSTGRES_SSLMODE"`
	PostgresMaxOpenConns       int    `mapstructure:"POSTGRES_MAX_OPEN_CONNS"`
	PostgresMaxIdleConns       int    `mapstructure:"POSTGRES_MAX_IDLE_CONNS"`
	PostgresConnMaxLifeMinutes int    `mapstructure:"POSTGRES_CONN_MAX_LIFE_MINUTES"`

	GoogleBooksURL    string        `mapstructure:"GOOGLE_BOOKS_URL"`
	GoogleBooksAPIKey string        `mapstructure:"GOOGLE_BOOKS_API_KEY"`
	EnrichmentTimeout time.Duration `mapstructure:"ENRICHMENT_TIMEOUT"`
	EnrichmentRate    float64       `mapstructure:"ENRICHMENT_RATE"`
	EnrichmentBurst   int           `mapstructure:"ENRICHMENT_BURST"`

	LogLevel string `mapstructure:"LOG_LEVEL"`
	LogJSON  bool   `mapstructure:"LOG_JSON"`

	SeedFile string `mapstructure:"SEED_FILE"`
}

var defaults = map[string]any{
	"PORT":                           "8080",
	"DB_DRIVER":                      DriverSQLite,
	"SQLITE_PATH":                    "data/library.sqlite",
	"POSTGRES_HOST":                  "localhost",
	"POSTGRES_PORT":                  "5432",
	"POSTGRES_USER":                  "",
	"POSTGRES_PASSWORD":              "",
	"POSTGRES_DB":                    "",
	"POSTGRES_SSLMODE":               "disable",
	"POSTGRES_MAX_OPEN_CONNS":        25,
	"POSTGRES_MAX_IDLE_CONNS":        5,
	"POSTGRES_CONN_MAX_LIFE_MINUTES": 5,
	"GOOGLE_BOOKS_URL":               "https://www.googleapis.com/books/v1",
	"GOOGLE_BOOKS_API_KEY":           "",
	"ENRICHMENT_TIMEOUT":             "10s",
	"ENRICHMENT_RATE":                10.0,
	"ENRICHMENT_BURST":               20,
	"LOG_LEVEL":                      "info",
	"LOG_JSON":                       false,
	"SEED_FILE":                      "seed.yaml",
}

// GetConfig reads .env from the working directory if present, then the environment
func GetConfig() (*Config, error) {
	return load(".")
}

func load(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetConfigName(".env")
	v.SetConfigType("toml")
	v.AddConfigPath(path)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("parsing config data: %w", err)
	}
	return &config, nil
}

// ValidatePostgres checks that the Postgres connection settings are complete
func (c *Config) ValidatePostgres() error {
	if c.PostgresHost == "" {
		return fmt.Errorf("POSTGRES_HOST is required")
	}
	if c.PostgresUser == "" {
		return fmt.Errorf("POSTGRES_USER is required")
	}
	if c.PostgresDB == "" {
		return fmt.Errorf("POSTGRES_DB is required")
	}
	return nil
}

// PostgresConnectionString builds a lib/pq URL from the Postgres settings
func (c *Config) PostgresConnectionString() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.PostgresUser, c.PostgresPassword),
		Host:     c.PostgresHost + ":" + c.PostgresPort,
		Path:     "/" + c.PostgresDB,
		RawQuery: url.Values{"sslmode": {c.PostgresSSLMode}}.Encode(),
	}
	return u.String()
}

func (c *Config) GetPostgresMaxOpenConns() int {
	if c.PostgresMaxOpenConns <= 0 {
		return 25
	}
	return c.PostgresMaxOpenConns
}

func (c *Config) GetPostgresMaxIdleConns() int {
	if c.PostgresMaxIdleConns <= 0 {
		return 5
	}
	return c.PostgresMaxIdleConns
}

func (c *Config) GetPostgresConnMaxLifeMinutes() int {
	if c.PostgresConnMaxLifeMinutes <= 0 {
		return 5
	}
	return c.PostgresConnMaxLifeMinutes
}

// Validate checks the settings every binary depends on
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverPostgres:
		if err := c.ValidatePostgres(); err != nil {
			return err
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required")
		}
	default:
		return fmt.Errorf("unknown DB_DRIVER %q (expected %q or %q)", c.DBDriver, DriverPostgres, DriverSQLite)
	}
	if c.EnrichmentTimeout <= 0 {
		return fmt.Errorf("ENRICHMENT_TIMEOUT must be positive")
	}
	return nil
}
