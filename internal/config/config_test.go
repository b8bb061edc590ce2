package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FileAndDefaults(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
host = "db"
password = "from-file"

[auth]
jwt_secret = "file-secret"
issuer = "salon-auth"

[booking]
allow_cancel_confirmed = false

[ratelimit]
trusted_proxies = ["10.0.0.0/8"]

[kafka]
enabled = true
brokers = ["kafka:9092"]
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 10, cfg.Server.ReadTimeout)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "file-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, "admin", cfg.Auth.AdminRole)
	assert.False(t, cfg.Booking.AllowCancelConfirmed)
	assert.Equal(t, []string{"kafka:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, []string{"10.0.0.0/8"}, cfg.RateLimit.TrustedProxies)
	assert.True(t, cfg.RateLimit.Enabled)
	loc, err := cfg.Booking.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
	assert.Equal(t, "booking.status_changed", cfg.Kafka.Topic)
	assert.Equal(t, "@every 1m", cfg.Jobs.StatusGaugeSpec)
	assert.Contains(t, cfg.Database.DSN(), "host=db port=5432")
}

func TestLoad_EnvOverridesSecrets(t *testing.T) {
	t.Setenv("DB_PASSWORD", "env-password")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")

	path := writeConfig(t, `
[database]
password = "from-file"

[auth]
jwt_secret = "file-secret"
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "env-password", cfg.Database.Password)
	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, `[server`))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "no jwt secret", mutate: func(c *Config) { c.Auth.JWTSecret = "" }},
		{name: "bad port", mutate: func(c *Config) { c.Server.HTTPPort = 70000 }},
		{name: "kafka without brokers", mutate: func(c *Config) { c.Kafka.Enabled = true }},
		{name: "zero burst", mutate: func(c *Config) { c.RateLimit.Burst = 0 }},
		{name: "metrics path", mutate: func(c *Config) { c.Metrics.Path = "metrics" }},
		{name: "negative ttl", mutate: func(c *Config) { c.Wizard.SessionTTL = -1 }},
		{name: "unknown timezone", mutate: func(c *Config) { c.Booking.Timezone = "Mars/Olympus" }},
		{name: "bad trusted proxy", mutate: func(c *Config) { c.RateLimit.TrustedProxies = []string{"10.0.0.0/8", "lb.local"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Auth.JWTSecret = "secret"
			require.NoError(t, cfg.Validate())

			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
