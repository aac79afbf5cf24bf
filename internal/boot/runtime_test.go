package boot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memohai/chirp/internal/config"
)

func baseConfig() config.Config {
	return config.Config{
		Server:    config.ServerConfig{Addr: ":8080"},
		Auth:      config.AuthConfig{JWTSecret: "secret", JWTExpiresIn: "1h"},
		Directory: config.DirectoryConfig{Provider: config.DirectoryProviderLocal, TimeoutSeconds: 3},
		Redis:     config.RedisConfig{TTLSeconds: 30},
	}
}

func TestProvideRuntimeConfig(t *testing.T) {
	rc, err := ProvideRuntimeConfig(baseConfig())
	require.NoError(t, err)

	assert.Equal(t, time.Hour, rc.JwtExpiresIn)
	assert.Equal(t, ":8080", rc.ServerAddr)
	assert.Equal(t, 3*time.Second, rc.DirectoryTimeout)
	assert.Equal(t, 30*time.Second, rc.CacheTTL)
}

func TestProvideRuntimeConfigEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":7070")
	t.Setenv("JWT_SECRET", "from-env")

	cfg := baseConfig()
	cfg.Auth.JWTSecret = ""
	rc, err := ProvideRuntimeConfig(cfg)
	require.NoError(t, err)

	assert.Equal(t, ":7070", rc.ServerAddr)
	assert.Equal(t, "from-env", rc.JwtSecret)
}

func TestProvideRuntimeConfigErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"missing secret", func(c *config.Config) { c.Auth.JWTSecret = " " }},
		{"bad expiry", func(c *config.Config) { c.Auth.JWTExpiresIn = "soon" }},
		{"negative expiry", func(c *config.Config) { c.Auth.JWTExpiresIn = "-1h" }},
		{"http directory without url", func(c *config.Config) {
			c.Directory.Provider = config.DirectoryProviderHTTP
			c.Directory.SecretKey = "sk"
		}},
		{"http directory without key", func(c *config.Config) {
			c.Directory.Provider = config.DirectoryProviderHTTP
			c.Directory.BaseURL = "https://id.example.com"
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			tt.mutate(&cfg)
			_, err := ProvideRuntimeConfig(cfg)
			assert.Error(t, err)
		})
	}
}
