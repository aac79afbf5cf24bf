// Package boot provides runtime configuration derived from config plus environment overrides.
package boot

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/memohai/chirp/internal/config"
)

// RuntimeConfig holds parsed runtime settings (JWT, server address, directory timing).
// Values may be overridden by environment variables (HTTP_ADDR, JWT_SECRET, DIRECTORY_SECRET_KEY).
type RuntimeConfig struct {
	JwtSecret          string
	JwtExpiresIn       time.Duration
	ServerAddr         string
	DirectorySecretKey string
	DirectoryTimeout   time.Duration
	CacheTTL           time.Duration
}

// ProvideRuntimeConfig builds RuntimeConfig from the given config and applies env overrides.
func ProvideRuntimeConfig(cfg config.Config) (*RuntimeConfig, error) {
	ret := &RuntimeConfig{
		JwtSecret:          cfg.Auth.JWTSecret,
		ServerAddr:         cfg.Server.Addr,
		DirectorySecretKey: cfg.Directory.SecretKey,
		DirectoryTimeout:   time.Duration(cfg.Directory.TimeoutSeconds) * time.Second,
		CacheTTL:           time.Duration(cfg.Redis.TTLSeconds) * time.Second,
	}

	if value := os.Getenv("HTTP_ADDR"); value != "" {
		ret.ServerAddr = value
	}
	if value := os.Getenv("JWT_SECRET"); value != "" {
		ret.JwtSecret = value
	}
	if value := os.Getenv("DIRECTORY_SECRET_KEY"); value != "" {
		ret.DirectorySecretKey = value
	}

	if strings.TrimSpace(ret.JwtSecret) == "" {
		return nil, errors.New("jwt secret is required")
	}
	jwtExpiresIn, err := time.ParseDuration(cfg.Auth.JWTExpiresIn)
	if err != nil {
		return nil, fmt.Errorf("invalid jwt expires in: %w", err)
	}
	if jwtExpiresIn <= 0 {
		return nil, fmt.Errorf("invalid jwt expires in: %s", cfg.Auth.JWTExpiresIn)
	}
	ret.JwtExpiresIn = jwtExpiresIn

	if ret.DirectoryTimeout <= 0 {
		ret.DirectoryTimeout = config.DefaultDirectoryTimeout * time.Second
	}
	if cfg.Directory.Provider == config.DirectoryProviderHTTP {
		if strings.TrimSpace(cfg.Directory.BaseURL) == "" {
			return nil, errors.New("directory base_url is required for the http provider")
		}
		if strings.TrimSpace(ret.DirectorySecretKey) == "" {
			return nil, errors.New("directory secret_key is required for the http provider")
		}
	}
	return ret, nil
}
