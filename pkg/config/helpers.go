package config

import (
	"fmt"

	"github.com/reeltrack/reeltrack/pkg/logger"
	"github.com/reeltrack/reeltrack/pkg/pagination"
)

// LoadServiceConfig is a generic helper to load service configuration
func LoadServiceConfig[T Config](serviceName string, cfg T) error {
	manager := NewManager(serviceName)
	return manager.LoadConfig(cfg)
}

// Load reads the reeltrack configuration from defaults, files and env.
func Load() (*TrackerConfig, error) {
	cfg := GetDefaults()
	if err := LoadServiceConfig(ServiceName, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ToLoggerConfig converts to the logger package config.
func (c LoggerConfig) ToLoggerConfig() *logger.Config {
	cfg := logger.DefaultConfig()
	if c.Development {
		cfg = logger.DevelopmentConfig()
	}
	if c.Level != "" {
		cfg.Level = c.Level
	}
	if c.Format != "" {
		cfg.Encoding = c.Format
	}
	if c.OutputPath != "" {
		cfg.OutputPaths = []string{c.OutputPath}
	}
	return cfg
}

// ToPaginatorOptions converts to paginator options.
func (c PaginationConfig) ToPaginatorOptions() pagination.Options {
	return pagination.Options{
		DefaultSize: c.DefaultPageSize,
		MaxSize:     c.MaxPageSize,
		MaxAge:      c.CursorExpiration,
	}
}

// IsProduction returns true if running in production environment
func IsProduction(cfg *ServiceConfig) bool {
	return cfg.Environment == "production" || cfg.Environment == "prod"
}

// MustLoad loads config and panics on error (for main functions)
func MustLoad() *TrackerConfig {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load %s config: %v", ServiceName, err))
	}
	return cfg
}
