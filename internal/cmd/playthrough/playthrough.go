// Package playthrough parses playthrough command flags and runs Lua scripts
// against an in-process play session.
package playthrough

import (
	"context"
	"errors"
	"flag"
	"io"
	"strings"
	"time"

	entrypoint "github.com/NickTran11/masterbait/internal/platform/cmd"
	"github.com/NickTran11/masterbait/internal/platform/logging"
	"github.com/NickTran11/masterbait/internal/tools/playthrough"
)

// Config holds playthrough command configuration.
type Config struct {
	Files      []string      `env:"PLAYTHROUGH_FILES"    envSeparator:","`
	Assertions bool          `env:"PLAYTHROUGH_ASSERT"   envDefault:"true"`
	Verbose    bool          `env:"PLAYTHROUGH_VERBOSE"`
	Parallel   int           `env:"PLAYTHROUGH_PARALLEL" envDefault:"4"`
	Timeout    time.Duration `env:"PLAYTHROUGH_TIMEOUT"  envDefault:"10s"`
	Seed       int64         `env:"SEED"                 envDefault:"1"`
}

// ParseConfig parses environment and flags into a Config. Positional
// arguments are added to the file list.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	files := strings.Join(cfg.Files, ",")
	fs.StringVar(&files, "files", files, "comma-separated playthrough lua files")
	fs.BoolVar(&cfg.Assertions, "assert", cfg.Assertions, "enable assertions (disable to log expectations)")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "enable verbose logging")
	fs.IntVar(&cfg.Parallel, "parallel", cfg.Parallel, "how many files run at once")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "timeout per step")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed for the session")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	cfg.Files = nil
	for _, f := range strings.Split(files, ",") {
		if f = strings.TrimSpace(f); f != "" {
			cfg.Files = append(cfg.Files, f)
		}
	}
	cfg.Files = append(cfg.Files, fs.Args()...)
	return cfg, nil
}

// Run executes the playthrough command. Logs go to errOut.
func Run(ctx context.Context, cfg Config, errOut io.Writer) error {
	if errOut == nil {
		errOut = io.Discard
	}
	if len(cfg.Files) == 0 {
		return errors.New("at least one playthrough file is required")
	}

	level := "warn"
	if cfg.Verbose {
		level = "info"
	}
	logger, err := logging.New(level, errOut)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	mode := playthrough.AssertionStrict
	if !cfg.Assertions {
		mode = playthrough.AssertionLogOnly
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServicePlaythrough, logger, func(ctx context.Context) error {
		return playthrough.RunFiles(ctx, playthrough.Config{
			Seed:       cfg.Seed,
			Timeout:    cfg.Timeout,
			Assertions: mode,
			Verbose:    cfg.Verbose,
			Parallel:   cfg.Parallel,
			Logger:     logging.Component(logger, entrypoint.ServicePlaythrough),
		}, cfg.Files)
	})
}
