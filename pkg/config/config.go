package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/reeltrack/reeltrack/pkg/database"
)

// Config is the interface that all loadable configs must implement.
type Config interface {
	Validate() error
}

// TrackerConfig is the full reeltrack configuration.
type TrackerConfig struct {
	Service    ServiceConfig    `koanf:"service"`
	Database   database.Config  `koanf:"database"`
	Logger     LoggerConfig     `koanf:"logger"`
	Pagination PaginationConfig `koanf:"pagination"`
	Events     EventsConfig     `koanf:"events"`
	Tracking   TrackingConfig   `koanf:"tracking"`
}

// ServiceConfig contains service-specific metadata.
type ServiceConfig struct {
	Name        string `koanf:"name"`
	Version     string `koanf:"version"`
	Environment string `koanf:"environment"` // dev, staging, production
}

// LoggerConfig contains logging configuration.
type LoggerConfig struct {
	Level       string `koanf:"level"`  // debug, info, warn, error
	Format      string `koanf:"format"` // json, console
	Development bool   `koanf:"development"`
	OutputPath  string `koanf:"output_path"` // stdout, stderr, or file path
}

// PaginationConfig contains pagination configuration.
type PaginationConfig struct {
	CursorEncryptionKey string        `koanf:"cursor_encryption_key"`
	MaxPageSize         int           `koanf:"max_page_size"`
	DefaultPageSize     int           `koanf:"default_page_size"`
	CursorExpiration    time.Duration `koanf:"cursor_expiration"`
}

// EventsConfig selects where domain events go after commit.
type EventsConfig struct {
	Driver string      `koanf:"driver"` // none, memory, nats, kafka
	NATS   NATSConfig  `koanf:"nats"`
	Kafka  KafkaConfig `koanf:"kafka"`
}

// NATSConfig contains JetStream settings.
type NATSConfig struct {
	URL           string        `koanf:"url"`
	Stream        string        `koanf:"stream"`
	SubjectPrefix string        `koanf:"subject_prefix"`
	MaxAge        time.Duration `koanf:"max_age"`
}

// KafkaConfig contains producer settings.
type KafkaConfig struct {
	Brokers  []string `koanf:"brokers"`
	Topic    string   `koanf:"topic"`
	ClientID string   `koanf:"client_id"`
}

// TrackingConfig holds engagement rules.
type TrackingConfig struct {
	MinRating         float64       `koanf:"min_rating"`
	MaxRating         float64       `koanf:"max_rating"`
	MaxCommentLength  int           `koanf:"max_comment_length"`
	MaxListNameLength int           `koanf:"max_list_name_length"`
	CatalogCacheTTL   time.Duration `koanf:"catalog_cache_ttl"`
}

// Manager handles configuration loading and parsing.
type Manager struct {
	k           *koanf.Koanf
	serviceName string
	configPaths []string
}

// NewManager creates a new configuration manager.
func NewManager(serviceName string) *Manager {
	return &Manager{
		k:           koanf.New("."),
		serviceName: serviceName,
		configPaths: getDefaultConfigPaths(serviceName),
	}
}

// LoadConfig loads configuration from all sources.
func (m *Manager) LoadConfig(cfg Config) error {
	// 1. Load defaults from the struct itself
	if err := m.k.Load(structs.Provider(cfg, "koanf"), nil); err != nil {
		return fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Load from config files (in order of precedence)
	for _, path := range m.configPaths {
		if err := m.loadFromFile(path); err != nil {
			if !os.IsNotExist(err) {
				return fmt.Errorf("failed to load config from %s: %w", path, err)
			}
		}
	}

	// 3. Load from environment variables
	if err := m.loadFromEnv(); err != nil {
		return fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := m.k.Unmarshal("", cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// GetString returns a string value for the given key.
func (m *Manager) GetString(key string) string {
	return m.k.String(key)
}

func (m *Manager) loadFromFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}

	var parser koanf.Parser
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return fmt.Errorf("unsupported config file format: %s", ext)
	}

	return m.k.Load(file.Provider(path), parser)
}

// loadFromEnv maps REELTRACK_DATABASE_SSL_MODE to database.ssl_mode: the
// first segment names the section, the rest is the field.
func (m *Manager) loadFromEnv() error {
	prefix := strings.ToUpper(m.serviceName) + "_"

	return m.k.Load(env.Provider(prefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, prefix))
		parts := strings.SplitN(key, "_", 2)
		if len(parts) == 1 {
			return parts[0]
		}
		if parts[0] == "events" {
			// events.nats.url, events.kafka.brokers
			sub := strings.SplitN(parts[1], "_", 2)
			if len(sub) == 2 && (sub[0] == "nats" || sub[0] == "kafka") {
				return "events." + sub[0] + "." + sub[1]
			}
		}
		return parts[0] + "." + parts[1]
	}), nil)
}

func getDefaultConfigPaths(serviceName string) []string {
	paths := []string{
		"config.yaml",
		"config.json",
		fmt.Sprintf("%s.yaml", serviceName),
		fmt.Sprintf("%s.json", serviceName),
		"configs/config.yaml",
		"configs/config.json",
		fmt.Sprintf("configs/%s.yaml", serviceName),
		fmt.Sprintf("configs/%s.json", serviceName),
		fmt.Sprintf("configs/%s.%s.yaml", serviceName, getEnvironment()),
		fmt.Sprintf("configs/%s.%s.json", serviceName, getEnvironment()),
	}

	// CONFIG_PATH is loaded last so it wins over the defaults.
	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		paths = append(paths, configPath)
	}

	return paths
}

func getEnvironment() string {
	if env := os.Getenv("ENVIRONMENT"); env != "" {
		return env
	}
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "dev"
}

// Validate validates the configuration.
func (c *TrackerConfig) Validate() error {
	if c.Service.Name == "" {
		return errors.New("service name is required")
	}

	switch c.Database.Driver {
	case database.DriverPostgres:
		if c.Database.Host == "" {
			return errors.New("database host is required")
		}
		if c.Database.Port <= 0 || c.Database.Port > 65535 {
			return fmt.Errorf("invalid database port: %d", c.Database.Port)
		}
	case database.DriverSQLite:
		if c.Database.Path == "" {
			return errors.New("database path is required for sqlite")
		}
	default:
		return fmt.Errorf("unsupported database driver: %q", c.Database.Driver)
	}

	if len(c.Pagination.CursorEncryptionKey) != 32 {
		return errors.New("pagination cursor encryption key must be 32 bytes")
	}
	if IsProduction(&c.Service) && c.Pagination.CursorEncryptionKey == DefaultCursorKey {
		return errors.New("pagination cursor encryption key must be set in production (REELTRACK_PAGINATION_CURSOR_ENCRYPTION_KEY)")
	}
	if c.Pagination.DefaultPageSize <= 0 || c.Pagination.DefaultPageSize > c.Pagination.MaxPageSize {
		return fmt.Errorf("default page size must be between 1 and %d", c.Pagination.MaxPageSize)
	}

	switch c.Events.Driver {
	case EventsDriverNone, EventsDriverMemory:
	case EventsDriverNATS:
		if c.Events.NATS.URL == "" {
			return errors.New("nats url is required when events.driver is nats")
		}
	case EventsDriverKafka:
		if len(c.Events.Kafka.Brokers) == 0 || c.Events.Kafka.Topic == "" {
			return errors.New("kafka brokers and topic are required when events.driver is kafka")
		}
	default:
		return fmt.Errorf("unsupported events driver: %q", c.Events.Driver)
	}

	if c.Tracking.MinRating >= c.Tracking.MaxRating {
		return fmt.Errorf("min rating %v must be below max rating %v", c.Tracking.MinRating, c.Tracking.MaxRating)
	}
	if c.Tracking.MaxListNameLength <= 0 {
		return errors.New("max list name length must be positive")
	}

	return nil
}

// GetDefaults returns default configuration values.
func GetDefaults() *TrackerConfig {
	return &TrackerConfig{
		Service: ServiceConfig{
			Name:        ServiceName,
			Environment: "dev",
		},
		Database: database.DefaultConfig(),
		Logger: LoggerConfig{
			Level:       "info",
			Format:      "json",
			Development: false,
			OutputPath:  "stdout",
		},
		Pagination: PaginationConfig{
			CursorEncryptionKey: DefaultCursorKey,
			MaxPageSize:         DefaultMaxPageSize,
			DefaultPageSize:     DefaultPageSize,
			CursorExpiration:    24 * time.Hour,
		},
		Events: EventsConfig{
			Driver: EventsDriverNone,
			NATS: NATSConfig{
				URL:           "nats://localhost:4222",
				Stream:        "REELTRACK",
				SubjectPrefix: "reeltrack",
				MaxAge:        7 * 24 * time.Hour,
			},
			Kafka: KafkaConfig{
				Brokers:  []string{"localhost:9092"},
				Topic:    "reeltrack.events",
				ClientID: ServiceName,
			},
		},
		Tracking: TrackingConfig{
			MinRating:         DefaultMinRating,
			MaxRating:         DefaultMaxRating,
			MaxCommentLength:  DefaultMaxCommentLength,
			MaxListNameLength: DefaultMaxListNameLength,
			CatalogCacheTTL:   DefaultCatalogCacheTTL,
		},
	}
}
