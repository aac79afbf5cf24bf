// Package config loads and exposes application configuration (TOML).
package config

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Default configuration values used when a field is missing in TOML.
const (
	DefaultConfigPath        = "config.toml"
	DefaultHTTPAddr          = ":8080"
	DefaultJWTExpiresIn      = "24h"
	DefaultPGHost            = "127.0.0.1"
	DefaultPGPort            = 5432
	DefaultPGUser            = "postgres"
	DefaultPGDatabase        = "chirp"
	DefaultPGSSLMode         = "disable"
	DefaultStorageDriver     = StorageDriverPostgres
	DefaultMongoURI          = "mongodb://127.0.0.1:27017"
	DefaultMongoDatabase     = "chirp"
	DefaultDirectoryProvider = DirectoryProviderLocal
	DefaultDirectoryTimeout  = 10
	DefaultDirectoryRPS      = 20
	DefaultRedisAddr         = "127.0.0.1:6379"
	DefaultRedisTTLSeconds   = 60
)

// Post storage drivers.
const (
	StorageDriverPostgres = "postgres"
	StorageDriverMongo    = "mongo"
)

// Identity directory providers.
const (
	DirectoryProviderLocal = "local"
	DirectoryProviderHTTP  = "http"
)

// Config is the root application configuration loaded from TOML.
type Config struct {
	Log       LogConfig       `toml:"log"`
	Server    ServerConfig    `toml:"server"`
	Auth      AuthConfig      `toml:"auth"`
	Postgres  PostgresConfig  `toml:"postgres"`
	Storage   StorageConfig   `toml:"storage"`
	Mongo     MongoConfig     `toml:"mongo"`
	Directory DirectoryConfig `toml:"directory"`
	Redis     RedisConfig     `toml:"redis"`
}

// LogConfig holds logging level and format (e.g. level=info, format=text).
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// ServerConfig holds the HTTP server listen address.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// AuthConfig holds JWT secret and token expiry (e.g. 24h).
type AuthConfig struct {
	JWTSecret    string `toml:"jwt_secret"`
	JWTExpiresIn string `toml:"jwt_expires_in"`
}

// PostgresConfig holds PostgreSQL connection parameters.
type PostgresConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Database string `toml:"database"`
	SSLMode  string `toml:"sslmode"`
}

// StorageConfig selects the post store backend ("postgres" or "mongo").
type StorageConfig struct {
	Driver string `toml:"driver"`
}

// MongoConfig holds the MongoDB connection used when storage.driver is "mongo".
type MongoConfig struct {
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}

// DirectoryConfig selects the identity directory used to resolve post authors.
// The "local" provider reads the users table; "http" calls a hosted identity provider.
type DirectoryConfig struct {
	Provider          string `toml:"provider"`
	BaseURL           string `toml:"base_url"`
	SecretKey         string `toml:"secret_key"`
	TimeoutSeconds    int    `toml:"timeout_seconds"`
	RequestsPerSecond int    `toml:"requests_per_second"`
}

// RedisConfig configures the author summary cache in front of the directory.
type RedisConfig struct {
	Enabled    bool   `toml:"enabled"`
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	TTLSeconds int    `toml:"ttl_seconds"`
}

// Load reads and parses the TOML config file at path and applies default values for missing fields.
func Load(path string) (Config, error) {
	cfg := Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Addr: DefaultHTTPAddr,
		},
		Auth: AuthConfig{
			JWTExpiresIn: DefaultJWTExpiresIn,
		},
		Postgres: PostgresConfig{
			Host:     DefaultPGHost,
			Port:     DefaultPGPort,
			User:     DefaultPGUser,
			Database: DefaultPGDatabase,
			SSLMode:  DefaultPGSSLMode,
		},
		Storage: StorageConfig{
			Driver: DefaultStorageDriver,
		},
		Mongo: MongoConfig{
			URI:      DefaultMongoURI,
			Database: DefaultMongoDatabase,
		},
		Directory: DirectoryConfig{
			Provider:          DefaultDirectoryProvider,
			TimeoutSeconds:    DefaultDirectoryTimeout,
			RequestsPerSecond: DefaultDirectoryRPS,
		},
		Redis: RedisConfig{
			Addr:       DefaultRedisAddr,
			TTLSeconds: DefaultRedisTTLSeconds,
		},
	}

	if path == "" {
		path = DefaultConfigPath
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}
	cfg.Storage.Driver = strings.ToLower(strings.TrimSpace(cfg.Storage.Driver))
	cfg.Directory.Provider = strings.ToLower(strings.TrimSpace(cfg.Directory.Provider))

	return cfg, nil
}
