package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/reeltrack/reeltrack/internal/container"
	"github.com/reeltrack/reeltrack/pkg/config"
	"github.com/reeltrack/reeltrack/pkg/errors"
	"github.com/reeltrack/reeltrack/pkg/logger"
)

type rootOptions struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "reeltrack",
		Short:         "Track what you watch",
		Long:          `reeltrack keeps a movie and tv show catalog together with each user's reviews, watched history, watchlist and custom lists.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to a YAML or JSON config file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Override the configured log level")

	cmd.AddCommand(
		newMigrateCmd(opts),
		newCatalogCmd(opts),
		newReviewCmd(opts),
		newWatchedCmd(opts),
		newWatchlistCmd(opts),
		newListCmd(opts),
		newCountsCmd(opts),
	)
	return cmd
}

func (o *rootOptions) load() (*config.TrackerConfig, *logger.ZapLogger, error) {
	if o.configPath != "" {
		if err := os.Setenv("CONFIG_PATH", o.configPath); err != nil {
			return nil, nil, err
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	logCfg := cfg.Logger.ToLoggerConfig()
	if o.logLevel != "" {
		logCfg.Level = o.logLevel
	}
	logCfg.InitialFields = map[string]interface{}{
		"service":     cfg.Service.Name,
		"environment": cfg.Service.Environment,
	}
	// stdout carries command output
	if len(logCfg.OutputPaths) == 1 && logCfg.OutputPaths[0] == "stdout" {
		logCfg.OutputPaths = []string{"stderr"}
	}

	log, err := logCfg.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("building logger: %w", err)
	}
	return cfg, log, nil
}

// withTracker wires the services for the lifetime of fn.
func (o *rootOptions) withTracker(ctx context.Context, fn func(ctx context.Context, c *container.TrackerContainer) error) error {
	cfg, log, err := o.load()
	if err != nil {
		return err
	}
	defer log.Sync()

	c, cleanup, err := container.InitializeTracker(cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	return fn(ctx, c)
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func exitCode(err error) int {
	switch errors.TypeOf(err) {
	case errors.ErrorTypeValidation, errors.ErrorTypeInvalidReference:
		return 2
	case errors.ErrorTypeNotFound:
		return 3
	case errors.ErrorTypeForbidden:
		return 4
	case errors.ErrorTypeConflict:
		return 5
	default:
		return 1
	}
}
