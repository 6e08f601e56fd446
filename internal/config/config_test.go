package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"APP_ENV", "HTTP_PORT", "STORE_DRIVER", "APP_MIGRATE", "JWT_SECRET", "JWT_TTL", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(k, "")
	}

	c := Load()

	assert.Equal(t, "dev", c.Env)
	assert.Equal(t, "8080", c.HTTPPort)
	assert.Equal(t, "postgres", c.StoreDriver)
	assert.False(t, c.Migrate)
	assert.Equal(t, time.Hour, c.JWTTTL)
	assert.Equal(t, []string{"*"}, c.CORSOrigins)
	assert.Equal(t, 10*time.Second, c.ShutdownTimeout)
	require.NoError(t, c.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("APP_MIGRATE", "true")
	t.Setenv("JWT_TTL", "30m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")

	c := Load()

	assert.Equal(t, "memory", c.StoreDriver)
	assert.True(t, c.Migrate)
	assert.Equal(t, 30*time.Minute, c.JWTTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, c.CORSOrigins)
}

func TestValidate(t *testing.T) {
	base := Config{StoreDriver: "postgres", DatabaseURL: "postgres://x", JWTSecret: "s3cret", JWTTTL: time.Hour}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"ok", func(*Config) {}, false},
		{"memory without dsn", func(c *Config) { c.StoreDriver = "memory"; c.DatabaseURL = "" }, false},
		{"postgres without dsn", func(c *Config) { c.DatabaseURL = "" }, true},
		{"unknown driver", func(c *Config) { c.StoreDriver = "mongo" }, true},
		{"zero ttl", func(c *Config) { c.JWTTTL = 0 }, true},
		{"prod default secret", func(c *Config) { c.Env = "prod"; c.JWTSecret = defaultJWTSecret }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
