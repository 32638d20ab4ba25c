package config

import (
	"os"
	"path/filepath"
	"testing"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
host = "db"
dbname = "salon_test"

[redis]
addr = "redis:6379"

[kafka]
brokers = "kafka-1:9092,kafka-2:9092"

[booking]
max_commit_attempts = 5
default_timezone = "Europe/Moscow"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 5000, cfg.Redis.LockTTL)
	assert.True(t, cfg.Kafka.Enabled())
	assert.Equal(t, 5, cfg.Booking.MaxCommitAttempts)

	loc, err := cfg.Booking.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Moscow", loc.String())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.Kafka.Enabled())
	assert.Equal(t, 3, cfg.Booking.MaxCommitAttempts)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SALON_HTTP_PORT", "7000")
	t.Setenv("SALON_DB_HOST", "pg")
	t.Setenv("SALON_METRICS_ENABLED", "true")
	t.Setenv("SALON_KAFKA_BROKERS", "localhost:9092")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.Server.HTTPPort)
	assert.Equal(t, "pg", cfg.Database.Host)
	assert.True(t, cfg.Metrics.Enabled)
	assert.True(t, cfg.Kafka.Enabled())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		file string
	}{
		{name: "port not a number", env: map[string]string{"SALON_HTTP_PORT": "http"}},
		{name: "bad bool", env: map[string]string{"SALON_METRICS_ENABLED": "maybe"}},
		{name: "unknown timezone", env: map[string]string{"SALON_DEFAULT_TIMEZONE": "Mars/Olympus"}},
		{name: "zero attempts", file: "[booking]\nmax_commit_attempts = 0\n"},
		{name: "broken toml", file: "[server\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.file != "" {
				path = writeConfig(t, tt.file)
			}

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "h", Port: 1, User: "u", Password: "p", DBName: "d", SSLMode: "disable"}
	assert.Equal(t, "host=h port=1 user=u password=p dbname=d sslmode=disable", d.DSN())
}
