package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reeltrack/reeltrack/pkg/database"
)

func TestDefaultsValidate(t *testing.T) {
	cfg := GetDefaults()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 0.0, cfg.Tracking.MinRating)
	assert.Equal(t, 10.0, cfg.Tracking.MaxRating)
	assert.Equal(t, 20, cfg.Pagination.DefaultPageSize)
	assert.Len(t, DefaultCursorKey, 32)
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reeltrack.yaml")
	yaml := `
database:
  driver: sqlite
  path: /var/lib/reeltrack/data.db
events:
  driver: memory
tracking:
  max_rating: 5
  catalog_cache_ttl: 30s
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("REELTRACK_LOGGER_LEVEL", "debug")
	t.Setenv("REELTRACK_DATABASE_MAX_OPEN_CONNS", "3")
	t.Setenv("REELTRACK_EVENTS_NATS_URL", "nats://broker:4222")

	cfg := GetDefaults()
	require.NoError(t, NewManager(ServiceName).LoadConfig(cfg))

	assert.Equal(t, database.DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "/var/lib/reeltrack/data.db", cfg.Database.Path)
	assert.Equal(t, 3, cfg.Database.MaxOpenConns)
	assert.Equal(t, EventsDriverMemory, cfg.Events.Driver)
	assert.Equal(t, "nats://broker:4222", cfg.Events.NATS.URL)
	assert.Equal(t, 5.0, cfg.Tracking.MaxRating)
	assert.Equal(t, 30*time.Second, cfg.Tracking.CatalogCacheTTL)
	assert.Equal(t, "debug", cfg.Logger.Level)
	// untouched defaults survive
	assert.Equal(t, "REELTRACK", cfg.Events.NATS.Stream)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*TrackerConfig)
		errMsg string
	}{
		{"missing name", func(c *TrackerConfig) { c.Service.Name = "" }, "service name"},
		{"bad driver", func(c *TrackerConfig) { c.Database.Driver = "oracle" }, "unsupported database driver"},
		{"short key", func(c *TrackerConfig) { c.Pagination.CursorEncryptionKey = "short" }, "32 bytes"},
		{"default key in prod", func(c *TrackerConfig) { c.Service.Environment = "production" }, "production"},
		{"inverted rating", func(c *TrackerConfig) { c.Tracking.MinRating = 10 }, "min rating"},
		{"kafka without topic", func(c *TrackerConfig) {
			c.Events.Driver = EventsDriverKafka
			c.Events.Kafka.Topic = ""
		}, "kafka"},
		{"unknown events driver", func(c *TrackerConfig) { c.Events.Driver = "carrier-pigeon" }, "events driver"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetDefaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestToLoggerConfig(t *testing.T) {
	cfg := LoggerConfig{Level: "warn", Format: "console", OutputPath: "stderr"}.ToLoggerConfig()
	assert.Equal(t, "warn", cfg.Level)
	assert.Equal(t, "console", cfg.Encoding)
	assert.Equal(t, []string{"stderr"}, cfg.OutputPaths)
}
