package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
)

// Config holds everything the application needs to run. Values come from
// environment variables (a .env file is loaded in main for development).
type Config struct {
	Address string `env:"ADDRESS" envDefault:":8080"`

	// MySQL catalog database
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"3306"`
	DBUser     string `env:"DB_USER,required"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME,required"`

	// OpenSearch index used by the resolver
	SearchAddresses []string `env:"SEARCH_ADDRESSES" envSeparator:"," envDefault:"http://localhost:9200"`
	SearchUser      string   `env:"SEARCH_USER"`
	SearchPassword  string   `env:"SEARCH_PASSWORD"`
	PrimaryIndex    string   `env:"SEARCH_PRIMARY_INDEX" envDefault:"items"`
	SecondaryIndex  string   `env:"SEARCH_SECONDARY_INDEX" envDefault:"items_secondary"`

	// Optional redis cache for store lookups. Empty address disables caching.
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// Resolver scoring thresholds
	ResolverAcceptScore   float64 `env:"RESOLVER_ACCEPT_SCORE" envDefault:"0.6"`
	ResolverFloorScore    float64 `env:"RESOLVER_FLOOR_SCORE" envDefault:"0.3"`
	ResolverAmbiguityBand float64 `env:"RESOLVER_AMBIGUITY_BAND" envDefault:"0.08"`
	ResolverTopN          int     `env:"RESOLVER_TOP_N" envDefault:"5"`

	// Upper bound on concurrent per-mention resolutions within one cart build
	CartMaxConcurrent int `env:"CART_MAX_CONCURRENT" envDefault:"4"`
}

// Load parses the configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	return cfg, nil
}

// DSN builds the MySQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}
