// Package game parses game command flags and starts the play server.
package game

import (
	"context"
	"flag"
	"time"

	entrypoint "github.com/NickTran11/masterbait/internal/platform/cmd"
	"github.com/NickTran11/masterbait/internal/platform/logging"
	server "github.com/NickTran11/masterbait/internal/services/play/app"
	"github.com/NickTran11/masterbait/internal/services/play/domain/catalog"
)

// Config holds game command configuration.
type Config struct {
	Port                int           `env:"GAME_PORT"            envDefault:"8082"`
	Addr                string        `env:"GAME_ADDR"`
	CountdownInterval   time.Duration `env:"COUNTDOWN_INTERVAL"   envDefault:"1s"`
	DistractionInterval time.Duration `env:"DISTRACTION_INTERVAL" envDefault:"6500ms"`
	LogLevel            string        `env:"LOG_LEVEL"            envDefault:"info"`
	Seed                int64         `env:"SEED"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The play server port")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "The play server listen address (overrides -port)")
	fs.DurationVar(&cfg.CountdownInterval, "countdown-interval", cfg.CountdownInterval, "Interval of one countdown tick")
	fs.DurationVar(&cfg.DistractionInterval, "distraction-interval", cfg.DistractionInterval, "Interval between hard-mode distractions")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed for sessions (0 picks one)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the play gRPC service.
func Run(ctx context.Context, cfg Config) error {
	logger, err := logging.New(cfg.LogLevel, nil)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	cat, err := catalog.Default()
	if err != nil {
		return err
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceGame, logger, func(ctx context.Context) error {
		return server.Run(ctx, server.Config{
			Addr:                cfg.Addr,
			Port:                cfg.Port,
			Catalog:             cat,
			Logger:              logging.Component(logger, entrypoint.ServiceGame),
			Seed:                cfg.Seed,
			CountdownInterval:   cfg.CountdownInterval,
			DistractionInterval: cfg.DistractionInterval,
		})
	})
}
